//
// label_test.go
//
// Copyright (c) 2019-2024 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"crypto/rand"
	"testing"
)

func TestLabelSBit(t *testing.T) {
	label := &Label{
		D0: 0xffffffffffffffff,
		D1: 0xffffffffffffffff,
	}

	label.SetS(true)
	if label.D0 != 0xffffffffffffffff {
		t.Fatal("failed to set S-bit")
	}

	label.SetS(false)
	if label.D0 != 0x7fffffffffffffff {
		t.Fatalf("failed to clear S-bit: %x", label.D0)
	}
}

func TestLabelMul(t *testing.T) {
	label := &Label{
		D1: 0xffffffffffffffff,
	}
	label.Mul2()
	if label.D0 != 0x1 {
		t.Fatalf("Mul2 D0 failed")
	}
	if label.D1 != 0xfffffffffffffffe {
		t.Fatalf("Mul2 D1 failed: %x", label.D1)
	}

	label = &Label{
		D1: 0xffffffffffffffff,
	}
	label.Mul4()
	if label.D0 != 0x3 {
		t.Fatalf("Mul4 D0 failed")
	}
	if label.D1 != 0xfffffffffffffffc {
		t.Fatalf("Mul4 D1 failed")
	}
}

func TestLabelBytesRoundTrip(t *testing.T) {
	l, err := NewLabel(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	l.SetS(true)

	var buf LabelData
	data := l.Bytes(&buf)

	var l2 Label
	if err := l2.SetBytes(data); err != nil {
		t.Fatal(err)
	}
	if !l.Equal(l2) {
		t.Fatalf("label round-trip mismatch: %s != %s", l, l2)
	}
	if !l2.S() {
		t.Fatal("select bit lost in round-trip")
	}
}

func TestLabelXorInverse(t *testing.T) {
	a, _ := NewLabel(rand.Reader)
	b, _ := NewLabel(rand.Reader)

	c := a
	c.Xor(b)
	c.Xor(b)
	if !c.Equal(a) {
		t.Fatal("XOR is not its own inverse")
	}
}
