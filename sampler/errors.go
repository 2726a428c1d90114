// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package sampler

import "errors"

// Error kinds.
// Use errors.Is to test the kind of an error
// returned by a Sampler.
var (
	// ErrConfig is the kind of the errors
	// produced by an unusable band or transform.
	// It is fatal for the sampler.
	ErrConfig = errors.New("configuration error")

	// ErrIO is the kind of the errors
	// produced when reading a cell fails.
	ErrIO = errors.New("i/o error")
)

// An Error is an error of a given kind
// produced while building or using a Sampler.
type Error struct {
	Kind error  // ErrConfig or ErrIO
	Op   string // operation that fails
	Err  error  // underlying error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns both the kind
// and the underlying error.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
