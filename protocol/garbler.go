//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package protocol

import (
	"github.com/gabes-mpc/gabes/circuit"
	"github.com/gabes-mpc/gabes/internal/env"
	"github.com/gabes-mpc/gabes/p2p"
)

// Garbler drives the garbler side of the protocol end to end over
// conn (§4.9). ownedInputs maps every garbler-owned input-wire
// identifier to its bit value (0 or 1); every other identifier in
// circ.InputIdentifiers is assumed evaluator-owned and is transferred
// by oblivious transfer. It returns the plaintext output bit both
// parties agree on.
func Garbler(conn *p2p.Conn, circ *circuit.Circuit, scheme circuit.Scheme, ownedInputs map[string]byte, cfg *env.Config) (byte, error) {
	rnd := cfg.GetRandom()

	garbled, err := circuit.Garble(rnd, circ, scheme)
	if err != nil {
		return 0, err
	}

	if err := conn.SendString(scheme.Name()); err != nil {
		return 0, err
	}
	if err := sendCircuit(conn, circ); err != nil {
		return 0, err
	}
	if err := conn.WaitForAck(); err != nil {
		return 0, err
	}

	ids := circ.InputIdentifiers()
	if err := sendInputOrder(conn, ids); err != nil {
		return 0, err
	}
	if err := conn.WaitForAck(); err != nil {
		return 0, err
	}

	if err := sendOwnership(conn, ids, ownedInputs); err != nil {
		return 0, err
	}
	if err := conn.WaitForAck(); err != nil {
		return 0, err
	}

	for _, id := range ids {
		wire, ok := garbled.Wires[id]
		if !ok {
			return 0, &ProtocolError{Phase: "inputs", Reason: "no garbled wire for " + id}
		}
		if bit, owned := ownedInputs[id]; owned {
			if err := sendLabel(conn, wire.Label(bit)); err != nil {
				return 0, err
			}
			if err := conn.Flush(); err != nil {
				return 0, err
			}
		} else {
			if err := runOTSender(conn, rnd, wire.False, wire.True); err != nil {
				return 0, err
			}
		}
	}

	outLabel, err := receiveLabel(conn)
	if err != nil {
		return 0, err
	}
	outWire, ok := garbled.Wires[circ.OutputWire()]
	if !ok {
		return 0, &ProtocolError{Phase: "output", Reason: "no garbled wire for circuit output"}
	}

	var result byte
	switch {
	case outLabel.Equal(outWire.False):
		result = 0
	case outLabel.Equal(outWire.True):
		result = 1
	default:
		return 0, &ProtocolError{Phase: "output", Reason: "evaluator's output label matches neither garbled value"}
	}

	if err := conn.SendByte(result); err != nil {
		return 0, err
	}
	if err := conn.Flush(); err != nil {
		return 0, err
	}
	return result, nil
}
