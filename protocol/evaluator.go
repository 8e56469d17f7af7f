//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package protocol

import (
	"strconv"

	"github.com/gabes-mpc/gabes/circuit"
	"github.com/gabes-mpc/gabes/internal/env"
	"github.com/gabes-mpc/gabes/ot"
	"github.com/gabes-mpc/gabes/p2p"
)

// Evaluator drives the evaluator side of the protocol over an already
// accepted conn (§4.9). scheme is the evaluator's own, locally
// resolved garbling scheme: the garbler announces its scheme name
// first, and Evaluator refuses to proceed unless it matches scheme,
// rather than trusting the wire and garbling/evaluating under
// whatever the garbler happens to claim (§8 scenario 5). ownedInputs
// maps every evaluator-owned input-wire identifier to its bit value;
// every other identifier is assumed garbler-owned. It returns the
// plaintext output bit.
func Evaluator(conn *p2p.Conn, scheme circuit.Scheme, ownedInputs map[string]byte, cfg *env.Config) (byte, error) {
	rnd := cfg.GetRandom()

	schemeName, err := conn.ReceiveString()
	if err != nil {
		return 0, err
	}
	if schemeName != scheme.Name() {
		return 0, &ProtocolError{Phase: "scheme",
			Reason: "garbler announced scheme " + schemeName + ", evaluator configured for " + scheme.Name()}
	}

	circ, err := receiveCircuit(conn)
	if err != nil {
		return 0, err
	}
	if err := conn.SendAck(); err != nil {
		return 0, err
	}

	ids, err := receiveInputOrder(conn)
	if err != nil {
		return 0, err
	}
	if err := checkInputOrder(ids, circ.InputIdentifiers()); err != nil {
		return 0, err
	}
	if err := conn.SendAck(); err != nil {
		return 0, err
	}

	garblerClaimed, err := receiveOwnership(conn, len(ids))
	if err != nil {
		return 0, err
	}
	if err := reconcileOwnership(ids, garblerClaimed, ownedInputs); err != nil {
		return 0, err
	}
	if err := conn.SendAck(); err != nil {
		return 0, err
	}

	labels := make(map[string]ot.Label, len(ids))
	for _, id := range ids {
		if bit, owned := ownedInputs[id]; owned {
			label, err := runOTReceiver(conn, rnd, bit)
			if err != nil {
				return 0, err
			}
			labels[id] = label
		} else {
			label, err := receiveLabel(conn)
			if err != nil {
				return 0, err
			}
			labels[id] = label
		}
	}

	out, err := circuit.Eval(circ, scheme, labels)
	if err != nil {
		return 0, err
	}

	if err := sendLabel(conn, out); err != nil {
		return 0, err
	}
	if err := conn.Flush(); err != nil {
		return 0, err
	}

	result, err := conn.ReceiveByte()
	if err != nil {
		return 0, err
	}
	return result, nil
}

func checkInputOrder(got, want []string) error {
	if len(got) != len(want) {
		return &ProtocolError{Phase: "inputs", Reason: "input-wire count mismatch"}
	}
	for i := range got {
		if got[i] != want[i] {
			return &ProtocolError{Phase: "inputs", Reason: "input-wire ordering mismatch at position " + strconv.Itoa(i)}
		}
	}
	return nil
}
