//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"io"
)

// Render writes a Graphviz dot rendering of the circuit to out,
// adapted from the teacher's flat-gate-list Dot into a walk over the
// gate tree: every gate and every wire identifier it touches becomes
// a node, inputs rank together at the top and the single circuit
// output ranks alone at the bottom (§4.5, §6 EXPANSION).
func (c *Circuit) Render(out io.Writer) error {
	ids := make(map[*Gate]string, c.NumGates())
	var outputs []string
	n := 0
	if err := postOrder(c.Root, func(g *Gate) error {
		ids[g] = fmt.Sprintf("g%d", n)
		n++
		outputs = append(outputs, g.Output)
		return nil
	}); err != nil {
		return err
	}

	fmt.Fprintf(out, "digraph circuit\n{\n")
	fmt.Fprintf(out, "  overlap=scale;\n")
	fmt.Fprintf(out, "  node\t[fontname=\"Helvetica\"];\n")

	fmt.Fprintf(out, "  {\n    node [shape=plaintext];\n")
	for _, id := range c.Inputs {
		fmt.Fprintf(out, "    w_%s\t[label=\"%s\"];\n", id, id)
	}
	for _, id := range outputs {
		fmt.Fprintf(out, "    w_%s\t[label=\"%s\"];\n", id, id)
	}
	fmt.Fprintf(out, "  }\n")

	fmt.Fprintf(out, "  {\n    node [shape=box];\n")
	if err := postOrder(c.Root, func(g *Gate) error {
		fmt.Fprintf(out, "    %s\t[label=\"%s\"];\n", ids[g], g.Type)
		return nil
	}); err != nil {
		return err
	}
	fmt.Fprintf(out, "  }\n")

	fmt.Fprintf(out, "  {  rank=same")
	for _, id := range c.Inputs {
		fmt.Fprintf(out, "; w_%s", id)
	}
	fmt.Fprintf(out, ";}\n")
	fmt.Fprintf(out, "  {  rank=same; w_%s;}\n", c.OutputWire())

	if err := postOrder(c.Root, func(g *Gate) error {
		for _, operand := range g.Children() {
			if operand.IsLeaf() {
				fmt.Fprintf(out, "  w_%s -> %s;\n", operand.Wire, ids[g])
			} else {
				fmt.Fprintf(out, "  %s -> %s;\n", ids[operand.Sub], ids[g])
			}
		}
		fmt.Fprintf(out, "  %s -> w_%s;\n", ids[g], g.Output)
		return nil
	}); err != nil {
		return err
	}

	fmt.Fprintf(out, "}\n")
	return nil
}
