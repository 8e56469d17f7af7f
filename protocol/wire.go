//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package protocol

import (
	"github.com/gabes-mpc/gabes/circuit"
	"github.com/gabes-mpc/gabes/ot"
	"github.com/gabes-mpc/gabes/p2p"
)

// sendLabel writes a single wire label (§6 wire format: 16-byte value
// + 1-byte select bit).
func sendLabel(conn *p2p.Conn, l ot.Label) error {
	var buf ot.LabelData
	return conn.Send(l.Bytes(&buf))
}

func receiveLabel(conn *p2p.Conn) (ot.Label, error) {
	data, err := conn.Receive()
	if err != nil {
		return ot.Label{}, err
	}
	var l ot.Label
	if err := l.SetBytes(data); err != nil {
		return ot.Label{}, &ProtocolError{Phase: "label", Reason: err.Error()}
	}
	return l, nil
}

// sendCircuit transmits the cleaned circuit: its textual structure
// (§4.5 grammar, round-trippable through circuit.ParseString) followed
// by every gate's garbled table in postOrder sequence. The grammar
// carries no table syntax, so tables travel as a parallel, separately
// framed sequence instead of being interleaved into the text.
func sendCircuit(conn *p2p.Conn, circ *circuit.Circuit) error {
	if err := conn.SendString(circ.String()); err != nil {
		return err
	}
	tables := circuit.Tables(circ)
	if err := conn.SendUint32(len(tables)); err != nil {
		return err
	}
	for _, rows := range tables {
		if err := conn.SendUint32(len(rows)); err != nil {
			return err
		}
		for _, row := range rows {
			if err := conn.Send(row); err != nil {
				return err
			}
		}
	}
	return conn.Flush()
}

func receiveCircuit(conn *p2p.Conn) (*circuit.Circuit, error) {
	src, err := conn.ReceiveString()
	if err != nil {
		return nil, err
	}
	circ, err := circuit.ParseString("wire", src)
	if err != nil {
		return nil, &ProtocolError{Phase: "circuit", Reason: err.Error()}
	}

	n, err := conn.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	tables := make([][][]byte, n)
	for i := range tables {
		rowCount, err := conn.ReceiveUint32()
		if err != nil {
			return nil, err
		}
		rows := make([][]byte, rowCount)
		for j := range rows {
			row, err := conn.Receive()
			if err != nil {
				return nil, err
			}
			rows[j] = row
		}
		tables[i] = rows
	}
	if err := circuit.SetTables(circ, tables); err != nil {
		return nil, &ProtocolError{Phase: "circuit", Reason: err.Error()}
	}
	return circ, nil
}

// sendInputOrder and receiveInputOrder exchange the circuit's
// input-wire identifier ordering explicitly (§4.9 garbler step 4),
// even though both parties derive the same order by parsing the same
// circuit text independently — the explicit round-trip lets the
// evaluator catch an input-order mismatch before any OT runs,
// rather than only via a ProtocolError deep into per-wire exchange.
func sendInputOrder(conn *p2p.Conn, ids []string) error {
	if err := conn.SendUint32(len(ids)); err != nil {
		return err
	}
	for _, id := range ids {
		if err := conn.SendString(id); err != nil {
			return err
		}
	}
	return conn.Flush()
}

func receiveInputOrder(conn *p2p.Conn) ([]string, error) {
	n, err := conn.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	ids := make([]string, n)
	for i := range ids {
		id, err := conn.ReceiveString()
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// sendOwnership and receiveOwnership exchange which party claims
// which input wire, aligned to the ids order already agreed on by
// sendInputOrder/receiveInputOrder. Garbler and evaluator each pick
// their phase-4 send/receive branch independently from their own
// ownedInputs map, so without this explicit exchange an overlapping
// or orphaned claim desyncs the per-wire loop instead of failing
// cleanly (§8 scenario 6).
func sendOwnership(conn *p2p.Conn, ids []string, owned map[string]byte) error {
	if err := conn.SendUint32(len(ids)); err != nil {
		return err
	}
	for _, id := range ids {
		var b byte
		if _, ok := owned[id]; ok {
			b = 1
		}
		if err := conn.SendByte(b); err != nil {
			return err
		}
	}
	return conn.Flush()
}

func receiveOwnership(conn *p2p.Conn, want int) ([]bool, error) {
	n, err := conn.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	if n != want {
		return nil, &ProtocolError{Phase: "inputs", Reason: "ownership-bitmap length mismatch"}
	}
	claimed := make([]bool, n)
	for i := range claimed {
		b, err := conn.ReceiveByte()
		if err != nil {
			return nil, err
		}
		claimed[i] = b != 0
	}
	return claimed, nil
}

// reconcileOwnership fails unless exactly one party claims each input
// wire: garblerClaimed[i] reports whether the garbler owns ids[i];
// owned is the evaluator's own ownership map.
func reconcileOwnership(ids []string, garblerClaimed []bool, owned map[string]byte) error {
	for i, id := range ids {
		_, evaluatorOwns := owned[id]
		switch {
		case garblerClaimed[i] && evaluatorOwns:
			return &ProtocolError{Phase: "inputs", Reason: "wire " + id + " claimed by both parties"}
		case !garblerClaimed[i] && !evaluatorOwns:
			return &ProtocolError{Phase: "inputs", Reason: "wire " + id + " claimed by neither party"}
		}
	}
	return nil
}
