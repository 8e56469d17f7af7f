//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"io"

	"github.com/gabes-mpc/gabes/ot"
)

// freeXORScheme is Free-XOR (§4.6(d)): every wire in the circuit
// shares one global offset R, so XOR/XNOR gates cost zero
// ciphertexts (the evaluator XORs its two input labels directly).
// AND/OR/NAND fall back to GRR3's three-row construction, with their
// output wire's true label forced onto the same global offset so it
// stays free-XOR-combinable with the rest of the circuit; NOT is free,
// same as XOR/XNOR.
type freeXORScheme struct{}

func (freeXORScheme) Name() string           { return "freexor" }
func (freeXORScheme) UsesGlobalOffset() bool { return true }

func (freeXORScheme) GarbleGate(rnd io.Reader, g *Gate, left, right Wire, global *ot.Label, tweak uint32) (Wire, [][]byte, error) {
	switch g.Type {
	case XOR:
		output := freeXORWire(left, right)
		return output, nil, nil
	case XNOR:
		output := invert(freeXORWire(left, right))
		return output, nil, nil
	case NOT:
		return invert(left), nil, nil
	}

	return grr3GarbleBinary(rnd, g, left, right, global, tweak)
}

func (freeXORScheme) EvaluateGate(g *Gate, table [][]byte, left, right ot.Label, tweak uint32) (ot.Label, error) {
	switch g.Type {
	case XOR:
		out := left
		out.Xor(right)
		return out, nil
	case XNOR:
		out := left
		out.Xor(right)
		return out, nil
	case NOT:
		return left, nil
	}
	return grr3Scheme{}.EvaluateGate(g, table, left, right, tweak)
}

// freeXORWire combines two offset-compatible wires into their XOR,
// free of any ciphertext: the output false label is the XOR of the
// two false labels, and (since both wires share the same global
// offset) the true label follows for free too (§4.6(d)).
func freeXORWire(left, right Wire) Wire {
	f := left.False
	f.Xor(right.False)
	t := f
	t.Xor(*left.R)
	return Wire{False: f, True: t, R: left.R}
}
