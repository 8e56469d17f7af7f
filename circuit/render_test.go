//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderProducesValidDot(t *testing.T) {
	circ, err := ParseString("test", `GATE(AND, out, GATE(XOR, t1, a, b), GATE(NOT, t2, c))`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	var buf bytes.Buffer
	if err := circ.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	dot := buf.String()

	if !strings.HasPrefix(dot, "digraph circuit") {
		t.Errorf("Render output doesn't start with \"digraph circuit\": %q", dot)
	}
	if !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Errorf("Render output doesn't end with a closing brace: %q", dot)
	}
	for _, id := range []string{"a", "b", "c", "t1", "t2", "out"} {
		if !strings.Contains(dot, "w_"+id) {
			t.Errorf("Render output missing wire node for %q", id)
		}
	}
	for _, gt := range []string{"AND", "XOR", "NOT"} {
		if !strings.Contains(dot, `label="`+gt+`"`) {
			t.Errorf("Render output missing a gate node labeled %q", gt)
		}
	}
}
