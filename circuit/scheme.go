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

// Scheme garbles and evaluates a single gate (§4.6). Each of the six
// schemes named in §4.6 implements this interface once.
type Scheme interface {
	// Name is the scheme's wire-protocol name, used in the garbler's
	// handshake (§4.9) and the CLI's -cl/-pp/-grr3/-free/-fle/-half
	// flags (§6).
	Name() string

	// UsesGlobalOffset reports whether every wire in the circuit must
	// share one global offset R (Free-XOR, Half-Gates, §4.3).
	UsesGlobalOffset() bool

	// GarbleGate allocates g's output wire and produces its garbled
	// table in one step, since several schemes (Free-XOR's XOR gates,
	// GRR3's row reduction, Half-Gates' De Morgan gates) derive the
	// output wire's labels from g.Type and the input wires rather than
	// drawing them independently. left/right are the gate's already
	// garbled input wires (right is the zero value for NOT). global,
	// under a global-offset scheme, is that offset; otherwise nil.
	// tweak distinguishes this gate's derived keys from every other
	// gate's (§4.1, "makeK").
	GarbleGate(rnd io.Reader, g *Gate, left, right Wire, global *ot.Label, tweak uint32) (output Wire, table [][]byte, err error)

	// EvaluateGate recovers the output label given the gate's garbled
	// table and the evaluator's input labels.
	EvaluateGate(g *Gate, table [][]byte, left, right ot.Label, tweak uint32) (ot.Label, error)
}

// Schemes indexes the six schemes by their wire-protocol name (§4.6,
// §6).
var Schemes = map[string]Scheme{
	"classical": classicalScheme{},
	"pp":        ppScheme{},
	"grr3":      grr3Scheme{},
	"freexor":   freeXORScheme{},
	"flexor":    fleXORScheme{},
	"halfgates": halfGatesScheme{},
}

// LookupScheme resolves a wire-protocol scheme name, used by the CLI's
// scheme flags (§6). The evaluator does not look up the garbler's
// announced name; it compares it with its own scheme's Name (§4.9).
func LookupScheme(name string) (Scheme, error) {
	s, ok := Schemes[name]
	if !ok {
		return nil, &SchemeError{Name: name}
	}
	return s, nil
}

// rowKey derives the AEAD key for one garbled-table row from the two
// input labels and a gate tweak (§4.1). It is the AEAD-era
// counterpart of the teacher's "makeK": it mixes the labels the same
// way, 2*a XOR 4*b XOR tweak, and uses the 128-bit result directly as
// an AEAD key rather than as input to a stream cipher.
func rowKey(a, b ot.Label, tweak uint32) gabescrypto.SymmetricKey {
	mixed := a
	mixed.Mul2()
	bTweaked := b
	bTweaked.Mul4()
	mixed.Xor(bTweaked)
	mixed.Xor(ot.NewTweak(tweak))

	var key gabescrypto.SymmetricKey
	var buf [16]byte
	mixed.GetData(&buf)
	copy(key[:], buf[:])
	return key
}

// rowKeyUnary derives the AEAD key for a unary (NOT) gate's row.
func rowKeyUnary(a ot.Label, tweak uint32) gabescrypto.SymmetricKey {
	mixed := a
	mixed.Mul2()
	mixed.Xor(ot.NewTweak(tweak))

	var key gabescrypto.SymmetricKey
	var buf [16]byte
	mixed.GetData(&buf)
	copy(key[:], buf[:])
	return key
}

// labelBytes serializes a label (value + select bit) for use as an
// AEAD plaintext.
func labelBytes(l ot.Label) []byte {
	var data ot.LabelData
	return append([]byte{}, l.Bytes(&data)...)
}

// labelFromBytes parses a label previously serialized by labelBytes.
func labelFromBytes(b []byte) (ot.Label, error) {
	var l ot.Label
	if err := l.SetBytes(b); err != nil {
		return ot.Label{}, err
	}
	return l, nil
}

// toSymmetricKey truncates a label's value to a 128-bit AEAD key.
func toSymmetricKey(l ot.Label) gabescrypto.SymmetricKey {
	var key gabescrypto.SymmetricKey
	var buf [16]byte
	l.GetData(&buf)
	copy(key[:], buf[:])
	return key
}

// idx returns the point-and-permute row index for a binary gate
// (§4.6(b)): 2*a.S()+b.S().
func idx(a, b ot.Label) int {
	i := 0
	if a.S() {
		i += 2
	}
	if b.S() {
		i++
	}
	return i
}

// idxUnary returns the point-and-permute row index for a unary gate.
func idxUnary(a ot.Label) int {
	if a.S() {
		return 1
	}
	return 0
}

// invert returns a wire with its false/true labels swapped. The
// offset R, if any, is unchanged (XOR of the two labels is
// commutative), so invert is free under every offset scheme (§4.6(e),
// §4.6(f)): it is pure garbler-side bookkeeping, never transmitted.
func invert(w Wire) Wire {
	w.False, w.True = w.True, w.False
	return w
}
