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

// fleXORScheme is FleXOR (§4.6(e)): every wire carries its own
// independent offset rather than one shared global R. An XOR gate
// whose two inputs already share an offset is free, exactly like
// Free-XOR; when they differ, one input is translated onto the
// other's offset with a single-ciphertext rekey before the free XOR
// combine. Non-XOR gates draw a fresh offset for their output wire
// and garble with GRR3's three-row construction against it.
type fleXORScheme struct{}

func (fleXORScheme) Name() string           { return "flexor" }
func (fleXORScheme) UsesGlobalOffset() bool { return false }

// translateTweak domain-separates a translation gate's key derivation
// from the tweak of the XOR gate it serves.
const translateTweak = 0x5452414e // "TRAN"

func (fleXORScheme) GarbleGate(rnd io.Reader, g *Gate, left, right Wire, global *ot.Label, tweak uint32) (Wire, [][]byte, error) {
	switch g.Type {
	case XOR, XNOR:
		return flexorXOR(rnd, g, left, right, tweak)
	case NOT:
		return invert(left), nil, nil
	}

	r, err := ot.NewLabel(rnd)
	if err != nil {
		return Wire{}, nil, err
	}
	r.SetS(true)
	return grr3GarbleBinary(rnd, g, left, right, &r, tweak)
}

func flexorXOR(rnd io.Reader, g *Gate, left, right Wire, tweak uint32) (Wire, [][]byte, error) {
	var table [][]byte
	rightAligned := right
	if !left.R.Equal(*right.R) {
		translated, ct, err := translateWire(rnd, right, *left.R, tweak)
		if err != nil {
			return Wire{}, nil, err
		}
		rightAligned = translated
		table = [][]byte{ct}
	}

	output := freeXORWire(left, rightAligned)
	if g.Type == XNOR {
		output = invert(output)
	}
	return output, table, nil
}

func (fleXORScheme) EvaluateGate(g *Gate, table [][]byte, left, right ot.Label, tweak uint32) (ot.Label, error) {
	switch g.Type {
	case NOT:
		return left, nil
	case XOR, XNOR:
		rightAligned := right
		if len(table) == 1 {
			aligned, err := evalTranslate(right, table[0], tweak)
			if err != nil {
				return ot.Label{}, err
			}
			rightAligned = aligned
		}
		out := left
		out.Xor(rightAligned)
		return out, nil
	}
	return grr3Scheme{}.EvaluateGate(g, table, left, right, tweak)
}

// translateWire re-keys src onto the target offset with a single
// ciphertext (§4.6(e)). The translated label for whichever of src's
// two physical labels actually has select bit 0 is a deterministic
// function of that label, computable directly by anyone holding it;
// the other translated label is recovered by decrypting the single
// published row, keyed on src's select-bit-1 label. src's select bit
// is a private per-wire coin flip, so this is not always src.False.
func translateWire(rnd io.Reader, src Wire, target ot.Label, tweak uint32) (Wire, []byte, error) {
	zero, one := src.False, src.True
	zeroIsFalse := true
	if src.False.S() {
		zero, one = src.True, src.False
		zeroIsFalse = false
	}

	newZero, err := zeroRowLabelUnary(zero, tweak^translateTweak)
	if err != nil {
		return Wire{}, nil, err
	}
	newOne := newZero
	newOne.Xor(target)

	key := rowKeyUnary(one, tweak^translateTweak)
	ct, err := gabescrypto.Encrypt(rnd, key, labelBytes(newOne))
	if err != nil {
		return Wire{}, nil, err
	}
	t := target
	if zeroIsFalse {
		return Wire{False: newZero, True: newOne, R: &t}, ct, nil
	}
	return Wire{False: newOne, True: newZero, R: &t}, ct, nil
}

// evalTranslate recovers the translated label for whichever physical
// label (false or true) the evaluator actually holds.
func evalTranslate(actual ot.Label, ct []byte, tweak uint32) (ot.Label, error) {
	if !actual.S() {
		return zeroRowLabelUnary(actual, tweak^translateTweak)
	}
	key := rowKeyUnary(actual, tweak^translateTweak)
	plain, err := gabescrypto.Decrypt(key, ct)
	if err != nil {
		return ot.Label{}, err
	}
	return labelFromBytes(plain)
}
