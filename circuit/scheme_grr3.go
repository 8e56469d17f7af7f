//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"io"

	"github.com/gabes-mpc/gabes/gabescrypto"
	"github.com/gabes-mpc/gabes/ot"
)

// grr3Scheme is garbled row reduction (§4.6(c)): whichever row would
// land at point-and-permute slot 0 is never transmitted. Its output
// label is instead fixed, at construction time, to a deterministic
// function of that row's two input labels, which both garbler and
// evaluator can reconstruct without a table entry (§9). Which logical
// (a,b) combination lands at slot 0 depends on the input wires'
// select bits, which are private per-wire coin flips — so the
// omitted row is not a fixed "all-false" row, it is simply "whichever
// row idx() resolves to 0", the same row an evaluator would land on.
type grr3Scheme struct{}

func (grr3Scheme) Name() string          { return "grr3" }
func (grr3Scheme) UsesGlobalOffset() bool { return false }

// zeroRowLabel returns the output label reserved for whichever row
// maps to slot 0, reconstructable by anyone holding a and b (§4.6(c)).
func zeroRowLabel(a, b ot.Label, tweak uint32) (ot.Label, error) {
	keyA := toSymmetricKey(rowKeyUnaryLabel(a, tweak))
	keyB := toSymmetricKey(rowKeyUnaryLabel(b, tweak))
	zero, err := gabescrypto.GenerateZeroCiphertext(keyA, keyB, 17)
	if err != nil {
		return ot.Label{}, err
	}
	var label ot.Label
	if err := label.SetBytes(zero[:17]); err != nil {
		return ot.Label{}, err
	}
	return label, nil
}

// zeroRowLabelUnary is the NOT-gate counterpart: only one input
// label feeds the construction, so it plays both roles.
func zeroRowLabelUnary(a ot.Label, tweak uint32) (ot.Label, error) {
	keyA := toSymmetricKey(rowKeyUnaryLabel(a, tweak))
	zero, err := gabescrypto.GenerateZeroCiphertext(keyA, keyA, 17)
	if err != nil {
		return ot.Label{}, err
	}
	var label ot.Label
	if err := label.SetBytes(zero[:17]); err != nil {
		return ot.Label{}, err
	}
	return label, nil
}

// rowKeyUnaryLabel mixes a single label with the gate tweak, the same
// way rowKeyUnary does, but returns a Label rather than an AEAD key
// so callers can feed it to toSymmetricKey in either role (a or b).
func rowKeyUnaryLabel(a ot.Label, tweak uint32) ot.Label {
	mixed := a
	mixed.Mul2()
	mixed.Xor(ot.NewTweak(tweak))
	return mixed
}

func (grr3Scheme) GarbleGate(rnd io.Reader, g *Gate, left, right Wire, global *ot.Label, tweak uint32) (Wire, [][]byte, error) {
	if g.Type.IsUnary() {
		return grr3GarbleUnary(rnd, g, left, tweak)
	}
	return grr3GarbleBinary(rnd, g, left, right, nil, tweak)
}

func grr3GarbleUnary(rnd io.Reader, g *Gate, left Wire, tweak uint32) (Wire, [][]byte, error) {
	var zeroAt byte // the bit value of a that lands at idxUnary==0
	if left.False.S() {
		zeroAt = 1
	}
	zeroLabel, err := zeroRowLabelUnary(left.Label(zeroAt), tweak)
	if err != nil {
		return Wire{}, nil, err
	}
	otherLabel, err := ot.NewLabel(rnd)
	if err != nil {
		return Wire{}, nil, err
	}
	otherLabel.SetS(!zeroLabel.S())

	zeroOutBit := g.Type.Eval(zeroAt == 1)
	output := assignWire(zeroOutBit, zeroLabel, otherLabel)

	oneAt := byte(1) - zeroAt
	oneLabel := left.Label(oneAt)
	oneOutBit := g.Type.Eval(oneAt == 1)
	key := rowKeyUnary(oneLabel, tweak)
	ct, err := gabescrypto.Encrypt(rnd, key, labelBytes(output.Label(boolToByte(oneOutBit))))
	if err != nil {
		return Wire{}, nil, err
	}
	return output, [][]byte{ct}, nil
}

// grr3GarbleBinary garbles a two-input gate using garbled row
// reduction (§4.6(c)). When offset is nil, the output wire's true
// label is an independent fresh draw, matching grr3Scheme's own,
// non-offset wires. When offset is non-nil, the output's true label
// is forced to differ from its false label by exactly *offset,
// instead: this is how Free-XOR and FleXOR reuse GRR3's three-row
// construction for their non-XOR gates while still producing a wire
// whose labels are offset-related the way every other wire in those
// schemes is (§4.6(d), §4.6(e)).
func grr3GarbleBinary(rnd io.Reader, g *Gate, left, right Wire, offset *ot.Label, tweak uint32) (Wire, [][]byte, error) {
	type combo struct {
		a, b int
	}
	var combos [4]combo
	var zero combo
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			i := idx(left.Label(byte(a)), right.Label(byte(b)))
			combos[i] = combo{a, b}
			if i == 0 {
				zero = combo{a, b}
			}
		}
	}

	zeroLabelA := left.Label(byte(zero.a))
	zeroLabelB := right.Label(byte(zero.b))
	zeroLabel, err := zeroRowLabel(zeroLabelA, zeroLabelB, tweak)
	if err != nil {
		return Wire{}, nil, err
	}
	var otherLabel ot.Label
	if offset != nil {
		otherLabel = zeroLabel
		otherLabel.Xor(*offset)
	} else {
		otherLabel, err = ot.NewLabel(rnd)
		if err != nil {
			return Wire{}, nil, err
		}
		otherLabel.SetS(!zeroLabel.S())
	}

	zeroOutBit := g.Type.Eval(zero.a == 1, zero.b == 1)
	output := assignWire(zeroOutBit, zeroLabel, otherLabel)
	if offset != nil {
		r := *offset
		output.R = &r
	}

	rows := make([][]byte, 3)
	for i := 1; i < 4; i++ {
		c := combos[i]
		aLabel := left.Label(byte(c.a))
		bLabel := right.Label(byte(c.b))
		outBit := g.Type.Eval(c.a == 1, c.b == 1)
		key := rowKey(aLabel, bLabel, tweak)
		ct, err := gabescrypto.Encrypt(rnd, key, labelBytes(output.Label(boolToByte(outBit))))
		if err != nil {
			return Wire{}, nil, err
		}
		rows[i-1] = ct
	}
	return output, rows, nil
}

// assignWire places zeroLabel at the output bit it was derived for
// and otherLabel at the complementary bit.
func assignWire(zeroOutBit bool, zeroLabel, otherLabel ot.Label) Wire {
	if zeroOutBit {
		return Wire{False: otherLabel, True: zeroLabel}
	}
	return Wire{False: zeroLabel, True: otherLabel}
}

func (grr3Scheme) EvaluateGate(g *Gate, table [][]byte, left, right ot.Label, tweak uint32) (ot.Label, error) {
	if g.Type.IsUnary() {
		if idxUnary(left) == 0 {
			return zeroRowLabelUnary(left, tweak)
		}
		key := rowKeyUnary(left, tweak)
		plain, err := gabescrypto.Decrypt(key, table[0])
		if err != nil {
			return ot.Label{}, err
		}
		return labelFromBytes(plain)
	}

	i := idx(left, right)
	if i == 0 {
		return zeroRowLabel(left, right, tweak)
	}
	key := rowKey(left, right, tweak)
	plain, err := gabescrypto.Decrypt(key, table[i-1])
	if err != nil {
		return ot.Label{}, err
	}
	return labelFromBytes(plain)
}
