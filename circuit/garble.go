//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"io"

	"github.com/gabes-mpc/gabes/ot"
)

// Garbled is the result of garbling a circuit under a scheme: the
// garbler's private per-wire labels (needed to send the garbler's own
// input labels and to receive the evaluator's via OT) and, for
// global-offset schemes, the shared offset R (§4.3, §4.9).
type Garbled struct {
	Wires  map[string]Wire
	Global *ot.Label
}

// Garble walks circ bottom-up, drawing fresh input wires and filling
// in every gate's Table in place (§3 lifecycle step 1, §4.5's shared
// postOrder walk). circ should be the garbler's own working copy; call
// Circuit.Clean on it afterward to obtain the value sent to the
// evaluator, since Garble leaves labels/offsets nowhere but the
// returned Garbled.Wires.
func Garble(rnd io.Reader, circ *Circuit, scheme Scheme) (*Garbled, error) {
	wires := make(map[string]Wire, len(circ.Inputs)+circ.NumGates())

	var global *ot.Label
	if scheme.UsesGlobalOffset() {
		r, err := ot.NewLabel(rnd)
		if err != nil {
			return nil, err
		}
		r.SetS(true)
		global = &r
	}

	for _, id := range circ.Inputs {
		w, err := newWire(rnd, scheme, global)
		if err != nil {
			return nil, fmt.Errorf("circuit: garbling input %q: %w", id, err)
		}
		wires[id] = w
	}

	tweak := uint32(0)
	err := postOrder(circ.Root, func(g *Gate) error {
		left, err := resolveOperand(g.Left, wires)
		if err != nil {
			return err
		}
		var right Wire
		if !g.Type.IsUnary() {
			right, err = resolveOperand(g.Right, wires)
			if err != nil {
				return err
			}
		}

		output, table, err := scheme.GarbleGate(rnd, g, left, right, global, tweak)
		if err != nil {
			return fmt.Errorf("circuit: garbling gate %q: %w", g.Output, err)
		}
		g.Table = table
		wires[g.Output] = output
		tweak++
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Garbled{Wires: wires, Global: global}, nil
}

// newWire draws a fresh wire for a circuit input, using an offset wire
// under the shared global R for global-offset schemes, an offset wire
// under its own random R for FleXOR, and an independent fresh wire
// otherwise (§4.3).
func newWire(rnd io.Reader, scheme Scheme, global *ot.Label) (Wire, error) {
	if scheme.UsesGlobalOffset() {
		return NewOffsetWire(rnd, *global)
	}
	if _, ok := scheme.(fleXORScheme); ok {
		r, err := ot.NewLabel(rnd)
		if err != nil {
			return Wire{}, err
		}
		r.SetS(true)
		return NewOffsetWire(rnd, r)
	}
	return NewFreshWire(rnd)
}

// resolveOperand returns the already-garbled wire an operand refers
// to: a leaf is one of the circuit's named input wires, a nested gate
// is the sub-gate's output wire, already computed by the postOrder
// walk by the time any ancestor asks for it.
func resolveOperand(o *GateOperand, wires map[string]Wire) (Wire, error) {
	id := o.Wire
	if !o.IsLeaf() {
		id = o.Sub.Output
	}
	w, ok := wires[id]
	if !ok {
		return Wire{}, fmt.Errorf("circuit: wire %q has no garbled label", id)
	}
	return w, nil
}
