// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

import (
	"errors"
	"fmt"
)

// Errors
var (
	// ErrInvalidSave is the sentinel wrapped by every structural decode
	// failure: bad magic, negative lengths, invalid UTF-8, an unknown
	// peg-type or save-type byte, a save_type/circuit_states mismatch, or a
	// dangling parent/peg/net reference. Use errors.Is(err, ErrInvalidSave)
	// rather than matching on message text.
	ErrInvalidSave = errors.New("blotter: invalid save")

	// ErrInvalidPegAddress is returned by Sandbox.AddWire when an endpoint
	// cannot be resolved, or both endpoints are outputs.
	ErrInvalidPegAddress = errors.New("blotter: invalid peg address")
)

// IncompatibleVersionError is returned by Read when the save-version byte
// doesn't match any known codec.
type IncompatibleVersionError struct {
	Version byte
}

func (e *IncompatibleVersionError) Error() string {
	return fmt.Sprintf("blotter: incompatible save version %d", e.Version)
}

// ioError wraps an error from the caller's reader or writer so it can be
// told apart from a structural ErrInvalidSave failure by the caller, while
// still unwrapping to the original error.
func ioError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("blotter: %s: %w", op, err)
}

// invalidSavef wraps ErrInvalidSave with a formatted detail message, so
// errors.Is(err, ErrInvalidSave) keeps working regardless of the message.
func invalidSavef(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidSave)...)
}

// assertf panics with a formatted message. It guards engine invariants that
// should never be violated by correct code (e.g. the net-state bitset
// falling out of sync with the net store); it signals a bug in this
// package, not a user-recoverable condition, so it is never used for
// decode or sandbox-mutation failures.
func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf("blotter: invariant violated: "+format, args...))
	}
}
