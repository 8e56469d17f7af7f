//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package protocol

import (
	"crypto/rsa"
	"io"
	"math/big"

	"github.com/gabes-mpc/gabes/ot"
	"github.com/gabes-mpc/gabes/p2p"
)

// otKeyBits is the RSA modulus size used for every transfer (§4.8): a
// fresh keypair is generated per evaluator-owned input wire, never
// reused across wires.
const otKeyBits = ot.MinKeyBits

// runOTSender plays the garbler side of one 1-out-of-2 transfer of
// (label0, label1), the exact five-message flow of §4.8.
func runOTSender(conn *p2p.Conn, rnd io.Reader, label0, label1 ot.Label) error {
	sender, err := ot.NewSender(rnd, otKeyBits)
	if err != nil {
		return err
	}

	var buf0, buf1 ot.LabelData
	xfer, err := sender.NewTransfer(label0.Bytes(&buf0), label1.Bytes(&buf1))
	if err != nil {
		return err
	}

	pub := sender.PublicKey()
	if err := conn.SendUint32(pub.E); err != nil {
		return err
	}
	if err := conn.Send(pub.N.Bytes()); err != nil {
		return err
	}
	x0, x1 := xfer.RandomMessages()
	if err := conn.Send(x0); err != nil {
		return err
	}
	if err := conn.Send(x1); err != nil {
		return err
	}
	if err := conn.Flush(); err != nil {
		return err
	}

	v, err := conn.Receive()
	if err != nil {
		return err
	}
	xfer.ReceiveV(v)

	m0p, m1p, err := xfer.Messages()
	if err != nil {
		return err
	}
	if err := conn.Send(m0p); err != nil {
		return err
	}
	if err := conn.Send(m1p); err != nil {
		return err
	}
	return conn.Flush()
}

// runOTReceiver plays the evaluator side of one transfer, recovering
// the label for bit.
func runOTReceiver(conn *p2p.Conn, rnd io.Reader, bit byte) (ot.Label, error) {
	e, err := conn.ReceiveUint32()
	if err != nil {
		return ot.Label{}, err
	}
	nBytes, err := conn.Receive()
	if err != nil {
		return ot.Label{}, err
	}
	pub := &rsa.PublicKey{E: e, N: new(big.Int).SetBytes(nBytes)}

	receiver, err := ot.NewReceiver(rnd, pub)
	if err != nil {
		return ot.Label{}, err
	}
	xfer, err := receiver.NewTransfer(uint(bit))
	if err != nil {
		return ot.Label{}, err
	}

	x0, err := conn.Receive()
	if err != nil {
		return ot.Label{}, err
	}
	x1, err := conn.Receive()
	if err != nil {
		return ot.Label{}, err
	}
	if err := xfer.ReceiveRandomMessages(x0, x1); err != nil {
		return ot.Label{}, err
	}

	if err := conn.Send(xfer.V()); err != nil {
		return ot.Label{}, err
	}
	if err := conn.Flush(); err != nil {
		return ot.Label{}, err
	}

	m0p, err := conn.Receive()
	if err != nil {
		return ot.Label{}, err
	}
	m1p, err := conn.Receive()
	if err != nil {
		return ot.Label{}, err
	}
	if err := xfer.ReceiveMessages(m0p, m1p); err != nil {
		return ot.Label{}, err
	}

	mb, _ := xfer.Message()
	var label ot.Label
	if err := label.SetBytes(mb); err != nil {
		return ot.Label{}, &ProtocolError{Phase: "ot", Reason: err.Error()}
	}
	return label, nil
}
