//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package circuit implements the garbled boolean circuit data model:
// the gate tree, its textual parsing, and the garbling schemes that
// turn a plaintext circuit into garbled tables (§3, §4.4-§4.6).
package circuit

import (
	"fmt"
	"io"

	"github.com/gabes-mpc/gabes/ot"
)

// GateType identifies a boolean gate type (§3).
type GateType byte

// The six supported gate types.
const (
	AND GateType = iota
	OR
	XOR
	NAND
	XNOR
	NOT
)

func (t GateType) String() string {
	switch t {
	case AND:
		return "AND"
	case OR:
		return "OR"
	case XOR:
		return "XOR"
	case NAND:
		return "NAND"
	case XNOR:
		return "XNOR"
	case NOT:
		return "NOT"
	default:
		return fmt.Sprintf("{GateType %d}", t)
	}
}

// IsUnary reports whether the gate type takes a single input (NOT is
// the only one, §4.4).
func (t GateType) IsUnary() bool {
	return t == NOT
}

// truthTable holds the single 4-bit truth-table constant per binary
// gate type (§9): row index is 2*a+b, value is the output bit.
var truthTable = map[GateType][4]bool{
	AND:  {false, false, false, true},
	OR:   {false, true, true, true},
	XOR:  {false, true, true, false},
	NAND: {true, true, true, false},
	XNOR: {true, false, false, true},
}

// notTable is NOT's two-row truth table.
var notTable = [2]bool{true, false}

// Eval evaluates the gate's truth table in the clear. It is used by
// tests and by the classical scheme's garbling step, never by the
// evaluator (who never sees plaintext bits).
func (t GateType) Eval(a bool, b ...bool) bool {
	if t == NOT {
		return notTable[boolIdx(a)]
	}
	var bv bool
	if len(b) > 0 {
		bv = b[0]
	}
	row, ok := truthTable[t]
	if !ok {
		panic(fmt.Sprintf("circuit: unsupported gate type %s", t))
	}
	return row[2*boolIdx(a)+boolIdx(bv)]
}

func boolIdx(b bool) int {
	if b {
		return 1
	}
	return 0
}

// GateOperand is either a nested sub-gate or a leaf wire identifier
// (§4.5: "<left>/<right> is either a wire identifier token or a
// nested GATE(...)").
type GateOperand struct {
	Sub  *Gate
	Wire string
}

// IsLeaf reports whether the operand is a wire-identifier leaf.
func (o *GateOperand) IsLeaf() bool {
	return o == nil || o.Sub == nil
}

func (o *GateOperand) String() string {
	if o.IsLeaf() {
		return o.Wire
	}
	return o.Sub.String()
}

// Gate is one node of the circuit tree (§3, §4.4).
type Gate struct {
	Type   GateType
	Left   *GateOperand
	Right  *GateOperand // nil when Type == NOT
	Output string

	// Table is the garbled table for this gate. Its shape depends on
	// the active scheme (§4.6): nil/empty for free XOR gates, 2 rows
	// for Half-Gates AND, 3 rows for GRR3, 4 rows (2 for NOT) for
	// classical/point-and-permute.
	Table [][]byte
}

func (g *Gate) String() string {
	if g.Type.IsUnary() {
		return fmt.Sprintf("GATE(%s, %s, %s)", g.Type, g.Output, g.Left)
	}
	return fmt.Sprintf("GATE(%s, %s, %s, %s)", g.Type, g.Output, g.Left, g.Right)
}

// Children returns the gate's operands in left-to-right order.
func (g *Gate) Children() []*GateOperand {
	if g.Type.IsUnary() {
		return []*GateOperand{g.Left}
	}
	return []*GateOperand{g.Left, g.Right}
}

// Circuit is a tree of gates rooted at the output gate (§3). Leaves
// are input-wire identifiers.
type Circuit struct {
	Root   *Gate
	Inputs []string // stable first-seen traversal order (§3)
}

// InputIdentifiers returns the circuit's input-wire identifiers in
// stable order.
func (c *Circuit) InputIdentifiers() []string {
	out := make([]string, len(c.Inputs))
	copy(out, c.Inputs)
	return out
}

// OutputWire returns the identifier of the root gate's output wire.
func (c *Circuit) OutputWire() string {
	return c.Root.Output
}

func (c *Circuit) String() string {
	return c.Root.String()
}

// Clean returns a deep copy of the circuit containing only
// structure and garbled tables (§3 lifecycle, §4.5 "Cleaning"). The
// gate tree never carries labels or offsets (those live in the
// garbler's private wire table during garbling), so cleaning here
// amounts to a defensive deep copy that the garbler can safely hand
// to the transport layer without aliasing its own working tree.
func (c *Circuit) Clean() *Circuit {
	return &Circuit{
		Root:   cleanGate(c.Root),
		Inputs: c.InputIdentifiers(),
	}
}

func cleanGate(g *Gate) *Gate {
	if g == nil {
		return nil
	}
	clean := &Gate{
		Type:   g.Type,
		Output: g.Output,
		Table:  cloneTable(g.Table),
	}
	if g.Left != nil {
		clean.Left = cleanOperand(g.Left)
	}
	if g.Right != nil {
		clean.Right = cleanOperand(g.Right)
	}
	return clean
}

func cleanOperand(o *GateOperand) *GateOperand {
	if o.IsLeaf() {
		return &GateOperand{Wire: o.Wire}
	}
	return &GateOperand{Sub: cleanGate(o.Sub)}
}

func cloneTable(t [][]byte) [][]byte {
	if t == nil {
		return nil
	}
	out := make([][]byte, len(t))
	for i, row := range t {
		out[i] = append([]byte{}, row...)
	}
	return out
}

// NumGates returns the total number of gate nodes in the tree.
func (c *Circuit) NumGates() int {
	return countGates(c.Root)
}

func countGates(g *Gate) int {
	if g == nil {
		return 0
	}
	n := 1
	if !g.Left.IsLeaf() {
		n += countGates(g.Left.Sub)
	}
	if g.Right != nil && !g.Right.IsLeaf() {
		n += countGates(g.Right.Sub)
	}
	return n
}

// Stats returns per-gate-type counts for the circuit, used by Dump
// and the `gabes stats` CLI subcommand.
func (c *Circuit) Stats() map[GateType]int {
	stats := make(map[GateType]int)
	walkGates(c.Root, func(g *Gate) {
		stats[g.Type]++
	})
	return stats
}

func walkGates(g *Gate, fn func(*Gate)) {
	if g == nil {
		return
	}
	if !g.Left.IsLeaf() {
		walkGates(g.Left.Sub, fn)
	}
	if g.Right != nil && !g.Right.IsLeaf() {
		walkGates(g.Right.Sub, fn)
	}
	fn(g)
}

// postOrder visits every gate in the tree rooted at g, children
// before parents, stopping at the first error visit returns. Garble
// and Eval are both a single instantiation of this walk, one garbling
// a gate and the other evaluating it (§4.5).
func postOrder(g *Gate, visit func(*Gate) error) error {
	if g == nil {
		return nil
	}
	if !g.Left.IsLeaf() {
		if err := postOrder(g.Left.Sub, visit); err != nil {
			return err
		}
	}
	if g.Right != nil && !g.Right.IsLeaf() {
		if err := postOrder(g.Right.Sub, visit); err != nil {
			return err
		}
	}
	return visit(g)
}

// Wire holds the garbler's private view of one circuit wire: its two
// labels and, under offset schemes, the offset R such that
// True.value = False.value XOR R (§3, §4.3).
type Wire struct {
	False ot.Label
	True  ot.Label
	R     *ot.Label
}

// NewFreshWire draws two independent random labels (§4.3,
// classical/PP/GRR3 wires). Each wire's false label keeps whatever
// select bit it happens to draw — point-and-permute's security
// depends on that bit being an unpublished per-wire coin flip, not a
// fixed value repeated across the circuit — and the true label's
// select bit is forced only to differ from it, which every scheme
// needs to tell the two labels of a wire apart by index.
func NewFreshWire(rnd io.Reader) (Wire, error) {
	f, err := ot.NewLabel(rnd)
	if err != nil {
		return Wire{}, err
	}
	tr, err := ot.NewLabel(rnd)
	if err != nil {
		return Wire{}, err
	}
	tr.SetS(!f.S())
	return Wire{False: f, True: tr}, nil
}

// NewOffsetWire draws a random false label and derives the true
// label as false XOR r (§4.3, offset schemes). r's own select bit
// must be 1 (§3 invariant), so the true label's select bit always
// differs from the false label's, whatever the false label's bit
// happens to be.
func NewOffsetWire(rnd io.Reader, r ot.Label) (Wire, error) {
	f, err := ot.NewLabel(rnd)
	if err != nil {
		return Wire{}, err
	}
	tr := f
	tr.Xor(r)
	rr := r
	return Wire{False: f, True: tr, R: &rr}, nil
}

// Rebalance replaces the wire's true label against a new target
// offset, keeping the false label fixed (§4.3). FleXOR does not call
// it: its translation step (translateWire) re-keys both labels.
func (w *Wire) Rebalance(target ot.Label) {
	tr := w.False
	tr.Xor(target)
	w.True = tr
	r := target
	w.R = &r
}

// Label returns the wire's label for the given bit value.
func (w Wire) Label(bit byte) ot.Label {
	if bit == 0 {
		return w.False
	}
	return w.True
}
