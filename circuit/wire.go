//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import "fmt"

// Tables collects every gate's garbled table in the same postOrder
// sequence Garble and Eval walk the tree in (§4.5), so a freshly
// parsed circuit on the wire can have its tables reattached with
// SetTables without needing a table format baked into the circuit
// grammar itself.
func Tables(c *Circuit) [][][]byte {
	var tables [][][]byte
	_ = postOrder(c.Root, func(g *Gate) error {
		tables = append(tables, g.Table)
		return nil
	})
	return tables
}

// SetTables assigns tables, previously collected by Tables, back onto
// c's gates in the same postOrder sequence.
func SetTables(c *Circuit, tables [][][]byte) error {
	i := 0
	err := postOrder(c.Root, func(g *Gate) error {
		if i >= len(tables) {
			return fmt.Errorf("circuit: table count mismatch: expected %d, got %d", i+1, len(tables))
		}
		g.Table = tables[i]
		i++
		return nil
	})
	if err != nil {
		return err
	}
	if i != len(tables) {
		return fmt.Errorf("circuit: table count mismatch: circuit has %d gates, got %d tables", i, len(tables))
	}
	return nil
}
