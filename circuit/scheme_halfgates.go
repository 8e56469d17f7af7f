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

// halfGatesScheme is Half-Gates (§4.6(f)): free XOR/XNOR/NOT under a
// global offset R, and a two-row AND built from a "generator half"
// and an "evaluator half" that each leak only one bit of the other
// party's input through R. OR and NAND are synthesized from AND by
// De Morgan's laws, entirely as garbler-side relabeling (invert is
// free), so they cost the same two rows and evaluate with the
// identical formula as AND.
type halfGatesScheme struct{}

func (halfGatesScheme) Name() string           { return "halfgates" }
func (halfGatesScheme) UsesGlobalOffset() bool { return true }

// halfGateTweak domain-separates the evaluator half's hash calls from
// the generator half's, so the same gate tweak never keys both.
const halfGateTweak = 0x48414c46 // "HALF"

func (halfGatesScheme) GarbleGate(rnd io.Reader, g *Gate, left, right Wire, global *ot.Label, tweak uint32) (Wire, [][]byte, error) {
	switch g.Type {
	case XOR:
		return freeXORWire(left, right), nil, nil
	case XNOR:
		return invert(freeXORWire(left, right)), nil, nil
	case NOT:
		return invert(left), nil, nil
	case OR:
		output, table, err := garbleHalfGatesAND(invert(left), invert(right), *global, tweak)
		return invert(output), table, err
	case NAND:
		output, table, err := garbleHalfGatesAND(left, right, *global, tweak)
		return invert(output), table, err
	}
	return garbleHalfGatesAND(left, right, *global, tweak)
}

func (halfGatesScheme) EvaluateGate(g *Gate, table [][]byte, left, right ot.Label, tweak uint32) (ot.Label, error) {
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
	// AND, OR and NAND all decrypt with the same formula: De Morgan
	// composition only changes which physical label the garbler
	// called "false", never the table or the labels exchanged.
	return evalHalfGatesAND(table, left, right, tweak)
}

// garbleHalfGatesAND builds the two-row half-gates AND table (§4.6(f),
// "Two Halves Make a Whole"). pa and pb are the input wires' genuine
// per-wire select bits: fixing either to a constant degenerates the
// construction, since the generator half's two branches would then
// collapse to the same value.
func garbleHalfGatesAND(left, right Wire, r ot.Label, tweak uint32) (Wire, [][]byte, error) {
	a0, a1 := left.False, left.True
	b0, b1 := right.False, right.True
	pa := a0.S()
	pb := b0.S()

	tweakG := tweak
	tweakE := tweak ^ halfGateTweak

	hA0, err := zeroRowLabelUnary(a0, tweakG)
	if err != nil {
		return Wire{}, nil, err
	}
	hA1, err := zeroRowLabelUnary(a1, tweakG)
	if err != nil {
		return Wire{}, nil, err
	}
	tg := hA0
	tg.Xor(hA1)
	if pb {
		tg.Xor(r)
	}
	wg0 := hA0
	if pa {
		wg0.Xor(tg)
	}

	hB0, err := zeroRowLabelUnary(b0, tweakE)
	if err != nil {
		return Wire{}, nil, err
	}
	hB1, err := zeroRowLabelUnary(b1, tweakE)
	if err != nil {
		return Wire{}, nil, err
	}
	te := hB0
	te.Xor(hB1)
	te.Xor(a0)
	we0 := hB0
	if pb {
		xored := te
		xored.Xor(a0)
		we0.Xor(xored)
	}

	c0 := wg0
	c0.Xor(we0)
	c1 := c0
	c1.Xor(r)

	rr := r
	output := Wire{False: c0, True: c1, R: &rr}
	return output, [][]byte{labelBytes(tg), labelBytes(te)}, nil
}

// evalHalfGatesAND recovers the output label from the two published
// rows and the evaluator's actual input labels (§4.6(f)).
func evalHalfGatesAND(table [][]byte, a, b ot.Label, tweak uint32) (ot.Label, error) {
	tg, err := labelFromBytes(table[0])
	if err != nil {
		return ot.Label{}, err
	}
	te, err := labelFromBytes(table[1])
	if err != nil {
		return ot.Label{}, err
	}

	tweakG := tweak
	tweakE := tweak ^ halfGateTweak

	hA, err := zeroRowLabelUnary(a, tweakG)
	if err != nil {
		return ot.Label{}, err
	}
	wg := hA
	if a.S() {
		wg.Xor(tg)
	}

	hB, err := zeroRowLabelUnary(b, tweakE)
	if err != nil {
		return ot.Label{}, err
	}
	we := hB
	if b.S() {
		xored := te
		xored.Xor(a)
		we.Xor(xored)
	}

	out := wg
	out.Xor(we)
	return out, nil
}
