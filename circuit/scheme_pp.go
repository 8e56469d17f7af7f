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

// ppScheme is the point-and-permute four-row table (§4.6(b)): rows
// are addressed directly by the input labels' select bits, so the
// evaluator decrypts exactly one row instead of searching. Only
// ppScheme uses ppGarble/ppEvaluate; Free-XOR and FleXOR garble their
// non-XOR gates with GRR3 instead.
type ppScheme struct{}

func (ppScheme) Name() string          { return "pp" }
func (ppScheme) UsesGlobalOffset() bool { return false }

func (ppScheme) GarbleGate(rnd io.Reader, g *Gate, left, right Wire, global *ot.Label, tweak uint32) (Wire, [][]byte, error) {
	output, err := NewFreshWire(rnd)
	if err != nil {
		return Wire{}, nil, err
	}
	table, err := ppGarble(rnd, g, left, right, output, tweak)
	return output, table, err
}

func (ppScheme) EvaluateGate(g *Gate, table [][]byte, left, right ot.Label, tweak uint32) (ot.Label, error) {
	return ppEvaluate(g, table, left, right, tweak)
}

func ppGarble(rnd io.Reader, g *Gate, left, right, output Wire, tweak uint32) ([][]byte, error) {
	if g.Type.IsUnary() {
		rows := make([][]byte, 2)
		for a := 0; a < 2; a++ {
			aLabel := left.Label(byte(a))
			outBit := g.Type.Eval(a == 1)
			key := rowKeyUnary(aLabel, tweak)
			ct, err := gabescrypto.Encrypt(rnd, key, labelBytes(output.Label(boolToByte(outBit))))
			if err != nil {
				return nil, err
			}
			rows[idxUnary(aLabel)] = ct
		}
		return rows, nil
	}

	rows := make([][]byte, 4)
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			aLabel := left.Label(byte(a))
			bLabel := right.Label(byte(b))
			outBit := g.Type.Eval(a == 1, b == 1)
			key := rowKey(aLabel, bLabel, tweak)
			ct, err := gabescrypto.Encrypt(rnd, key, labelBytes(output.Label(boolToByte(outBit))))
			if err != nil {
				return nil, err
			}
			rows[idx(aLabel, bLabel)] = ct
		}
	}
	return rows, nil
}

func ppEvaluate(g *Gate, table [][]byte, left, right ot.Label, tweak uint32) (ot.Label, error) {
	var key gabescrypto.SymmetricKey
	var row []byte
	if g.Type.IsUnary() {
		key = rowKeyUnary(left, tweak)
		row = table[idxUnary(left)]
	} else {
		key = rowKey(left, right, tweak)
		row = table[idx(left, right)]
	}

	plain, err := gabescrypto.Decrypt(key, row)
	if err != nil {
		return ot.Label{}, err
	}
	return labelFromBytes(plain)
}
