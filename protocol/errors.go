//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package protocol

import "fmt"

// ProtocolError reports a message that arrived in the wrong phase or
// the wrong shape: a scheme name other than the evaluator's own, an
// input-wire ordering
// that doesn't match the parsed circuit, an output label that
// matches neither of the garbler's own labels (§4.9, §7).
type ProtocolError struct {
	Phase  string
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol: %s: %s", e.Phase, e.Reason)
}
