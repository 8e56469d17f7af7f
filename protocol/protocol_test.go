//
// protocol_test.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package protocol

import (
	"testing"

	"github.com/gabes-mpc/gabes/circuit"
	"github.com/gabes-mpc/gabes/internal/env"
	"github.com/gabes-mpc/gabes/p2p"
)

// millionaireCircuit computes x > y for 4-bit unsigned x, y (§8
// scenario 1), built from per-bit greater-than/equal terms combined
// most-significant-bit first:
//
//	gt_i = x_i AND NOT y_i
//	eq_i = x_i XNOR y_i
//	result = gt0 OR (eq0 AND (gt1 OR (eq1 AND (gt2 OR (eq2 AND gt3)))))
const millionaireCircuit = `
GATE(OR, out,
  GATE(AND, g0, x0, GATE(NOT, n0, y0)),
  GATE(AND, g0b, GATE(XNOR, e0, x0, y0),
    GATE(OR, out1,
      GATE(AND, g1, x1, GATE(NOT, n1, y1)),
      GATE(AND, g1b, GATE(XNOR, e1, x1, y1),
        GATE(OR, out2,
          GATE(AND, g2, x2, GATE(NOT, n2, y2)),
          GATE(AND, g2b, GATE(XNOR, e2, x2, y2),
            GATE(AND, g3, x3, GATE(NOT, n3, y3))
          )
        )
      )
    )
  )
)
`

func runEndToEnd(t *testing.T, scheme circuit.Scheme, circuitSrc string, garblerInputs, evaluatorInputs map[string]byte) byte {
	t.Helper()

	gConn, eConn := p2p.Pipe()
	cfg := &env.Config{}

	circ, err := circuit.ParseString("test", circuitSrc)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	type garblerResult struct {
		bit byte
		err error
	}
	done := make(chan garblerResult, 1)
	go func() {
		bit, err := Garbler(gConn, circ, scheme, garblerInputs, cfg)
		done <- garblerResult{bit, err}
	}()

	evalBit, err := Evaluator(eConn, scheme, evaluatorInputs, cfg)
	if err != nil {
		t.Fatalf("Evaluator: %v", err)
	}

	res := <-done
	if res.err != nil {
		t.Fatalf("Garbler: %v", res.err)
	}
	if res.bit != evalBit {
		t.Fatalf("garbler and evaluator disagree: garbler=%d evaluator=%d", res.bit, evalBit)
	}
	return evalBit
}

func TestMillionaireAllSchemes(t *testing.T) {
	// x = 1010, y = 0101: x > y, expected output bit 1.
	garblerInputs := map[string]byte{"x0": 1, "x1": 0, "x2": 1, "x3": 0}
	evaluatorInputs := map[string]byte{"y0": 0, "y1": 1, "y2": 0, "y3": 1}

	for name, scheme := range circuit.Schemes {
		t.Run(name, func(t *testing.T) {
			got := runEndToEnd(t, scheme, millionaireCircuit, garblerInputs, evaluatorInputs)
			if got != 1 {
				t.Errorf("scheme %s: got %d, expected 1", name, got)
			}
		})
	}
}

func TestANDSingletonsAllSchemes(t *testing.T) {
	const src = `GATE(AND, out, a, b)`

	cases := []struct {
		a, b, want byte
	}{
		{1, 1, 1},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	}

	for name, scheme := range circuit.Schemes {
		for _, c := range cases {
			t.Run(name, func(t *testing.T) {
				got := runEndToEnd(t, scheme, src,
					map[string]byte{"a": c.a},
					map[string]byte{"b": c.b})
				if got != c.want {
					t.Errorf("scheme %s: AND(%d,%d): got %d, expected %d",
						name, c.a, c.b, got, c.want)
				}
			})
		}
	}
}

// TestSchemeMismatch checks that a garbler and evaluator configured
// with different schemes fail the handshake with a ProtocolError
// instead of silently garbling and evaluating under different rules
// (§8 scenario 5).
func TestSchemeMismatch(t *testing.T) {
	gConn, eConn := p2p.Pipe()
	cfg := &env.Config{}

	circ, err := circuit.ParseString("test", `GATE(AND, out, a, b)`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := Garbler(gConn, circ, circuit.Schemes["grr3"], map[string]byte{"a": 1}, cfg)
		done <- err
	}()

	_, err = Evaluator(eConn, circuit.Schemes["classical"], map[string]byte{"b": 1}, cfg)
	if err == nil {
		t.Fatalf("expected a scheme-mismatch error, got nil")
	}
	protoErr, ok := err.(*ProtocolError)
	if !ok {
		t.Fatalf("expected *ProtocolError, got %T: %v", err, err)
	}
	if protoErr.Phase != "scheme" {
		t.Errorf("ProtocolError.Phase = %q, want %q", protoErr.Phase, "scheme")
	}

	// Unblock the garbler, which is stuck mid-write with nobody
	// reading on the other end of the pipe.
	eConn.Close()
	<-done
}

// TestDuplicateOwnershipRejected checks that an identifier both
// parties claim to own is rejected with a ProtocolError during phase
// 4, rather than desyncing the per-wire label/OT exchange (§8
// scenario 6).
func TestDuplicateOwnershipRejected(t *testing.T) {
	gConn, eConn := p2p.Pipe()
	cfg := &env.Config{}

	circ, err := circuit.ParseString("test", `GATE(AND, out, a, b)`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	scheme := circuit.Schemes["classical"]

	done := make(chan error, 1)
	go func() {
		// The garbler claims both "a" and "b", overlapping with the
		// evaluator's claim on "b".
		_, err := Garbler(gConn, circ, scheme, map[string]byte{"a": 1, "b": 0}, cfg)
		done <- err
	}()

	_, err = Evaluator(eConn, scheme, map[string]byte{"b": 1}, cfg)
	if err == nil {
		t.Fatalf("expected a ProtocolError, got nil")
	}
	protoErr, ok := err.(*ProtocolError)
	if !ok {
		t.Fatalf("expected *ProtocolError, got %T: %v", err, err)
	}
	if protoErr.Phase != "inputs" {
		t.Errorf("ProtocolError.Phase = %q, want %q", protoErr.Phase, "inputs")
	}

	eConn.Close()
	<-done
}

// TestOrphanedWireRejected checks that an identifier neither party
// claims is rejected the same way an overlapping claim is, rather
// than one side blocking on a label the other never sends.
func TestOrphanedWireRejected(t *testing.T) {
	gConn, eConn := p2p.Pipe()
	cfg := &env.Config{}

	circ, err := circuit.ParseString("test", `GATE(AND, out, a, b)`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	scheme := circuit.Schemes["classical"]

	done := make(chan error, 1)
	go func() {
		_, err := Garbler(gConn, circ, scheme, map[string]byte{"a": 1}, cfg)
		done <- err
	}()

	_, err = Evaluator(eConn, scheme, map[string]byte{}, cfg)
	if err == nil {
		t.Fatalf("expected a ProtocolError, got nil")
	}
	if _, ok := err.(*ProtocolError); !ok {
		t.Fatalf("expected *ProtocolError, got %T: %v", err, err)
	}

	eConn.Close()
	<-done
}
