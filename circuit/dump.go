//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"io"
	"strconv"

	"github.com/markkurossi/tabulate"
	"github.com/markkurossi/text/superscript"
)

// gateTypes lists the six gate types in a fixed display order, used
// by Dump and Stats' callers.
var gateTypes = []GateType{AND, OR, XOR, NAND, XNOR, NOT}

// Dump renders a one-row gate-count table for the circuit, annotating
// each gate-type header with the per-gate ciphertext cost scheme
// would spend on it (e.g. "AND²" for Half-Gates' two-row AND), the
// way the teacher's bmr/peer.go annotates peer/consumer ids with
// superscript.Itoa and apps/garbled/objdump.go tabulates circuit gate
// counts (§4.5, §6).
func (c *Circuit) Dump(w io.Writer, name string, scheme Scheme) error {
	stats := c.Stats()

	tab := tabulate.New(tabulate.Github)
	tab.Header("File")
	for _, gt := range gateTypes {
		tab.Header(gt.String() + superscript.Itoa(gateCost(scheme, gt))).SetAlign(tabulate.MR)
	}
	tab.Header("Gates").SetAlign(tabulate.MR)

	row := tab.Row()
	row.Column(name)
	for _, gt := range gateTypes {
		row.Column(strconv.Itoa(stats[gt]))
	}
	row.Column(strconv.Itoa(c.NumGates()))

	tab.Print(w)
	return nil
}

// gateCost returns the number of ciphertexts scheme spends garbling
// one gate of type gt, ignoring input-dependent variation (FleXOR's
// XOR translation gate is the one case where the true cost depends on
// runtime wire offsets rather than gt alone; gateCost reports its
// worst case, one ciphertext).
func gateCost(scheme Scheme, gt GateType) int {
	free := gt == XOR || gt == XNOR || gt == NOT
	switch scheme.Name() {
	case "classical", "pp":
		if gt == NOT {
			return 2
		}
		return 4
	case "grr3":
		if gt == NOT {
			return 1
		}
		return 3
	case "freexor":
		if free {
			return 0
		}
		return 3
	case "flexor":
		if gt == NOT {
			return 0
		}
		if gt == XOR || gt == XNOR {
			return 1
		}
		return 3
	case "halfgates":
		if free {
			return 0
		}
		return 2
	default:
		return 0
	}
}

