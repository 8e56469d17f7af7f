//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"

	"github.com/gabes-mpc/gabes/ot"
)

// Eval walks circ bottom-up exactly as Garble does, resolving each
// gate's output label from its garbled table and the evaluator's
// input labels instead of drawing fresh wires (§3 lifecycle step 4,
// §4.5). inputs must supply exactly one label per circ.InputIdentifiers
// entry — labels for the evaluator's own inputs received over OT,
// labels for the garbler's inputs received from the garbler directly.
func Eval(circ *Circuit, scheme Scheme, inputs map[string]ot.Label) (ot.Label, error) {
	labels := make(map[string]ot.Label, len(circ.Inputs)+circ.NumGates())
	for _, id := range circ.Inputs {
		l, ok := inputs[id]
		if !ok {
			return ot.Label{}, fmt.Errorf("circuit: missing input label for wire %q", id)
		}
		labels[id] = l
	}

	tweak := uint32(0)
	err := postOrder(circ.Root, func(g *Gate) error {
		left, err := resolveLabel(g.Left, labels)
		if err != nil {
			return err
		}
		var right ot.Label
		if !g.Type.IsUnary() {
			right, err = resolveLabel(g.Right, labels)
			if err != nil {
				return err
			}
		}

		out, err := scheme.EvaluateGate(g, g.Table, left, right, tweak)
		if err != nil {
			return fmt.Errorf("circuit: evaluating gate %q: %w", g.Output, err)
		}
		labels[g.Output] = out
		tweak++
		return nil
	})
	if err != nil {
		return ot.Label{}, err
	}

	return labels[circ.OutputWire()], nil
}

func resolveLabel(o *GateOperand, labels map[string]ot.Label) (ot.Label, error) {
	id := o.Wire
	if !o.IsLeaf() {
		id = o.Sub.Output
	}
	l, ok := labels[id]
	if !ok {
		return ot.Label{}, fmt.Errorf("circuit: wire %q has no evaluated label", id)
	}
	return l, nil
}
