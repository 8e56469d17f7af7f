//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"errors"
	"fmt"

	"github.com/gabes-mpc/gabes/circuit"
	"github.com/gabes-mpc/gabes/gabescrypto"
	"github.com/gabes-mpc/gabes/p2p"
	"github.com/gabes-mpc/gabes/protocol"
)

// usageError reports CLI misuse (§7): bad flag combinations, missing
// mandatory flags. Reported to the user with help text, exit code 1.
type usageError struct {
	Reason string
}

func (e *usageError) Error() string {
	return e.Reason
}

// exitCode maps an error to the exit-code taxonomy of §6/§7: 0
// success, 1 usage error, 2 parse error, 3 network error, 4 protocol
// error, 5 decryption/consistency error. err == nil returns 0.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var usage *usageError
	var parseErr *circuit.ParseError
	var schemeErr *circuit.SchemeError
	var netErr *p2p.NetworkError
	var protoErr *protocol.ProtocolError
	var decErr *gabescrypto.DecryptionError

	switch {
	case errors.As(err, &usage):
		return 1
	case errors.As(err, &parseErr), errors.As(err, &schemeErr):
		return 2
	case errors.As(err, &netErr):
		return 3
	case errors.As(err, &protoErr):
		return 4
	case errors.As(err, &decErr):
		return 5
	default:
		return 1
	}
}

func usageErrorf(format string, args ...interface{}) error {
	return &usageError{Reason: fmt.Sprintf(format, args...)}
}
