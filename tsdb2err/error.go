// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tsdb2err provides the structured error taxonomy shared by the
// reflective descriptor model, the text-format parser, and the JSON codec:
// their failures carry one of a small, fixed set of codes rather than an
// ad-hoc error string. The exception is the JSON codec's reflective
// Decode and Write paths, which report an unsupported Go type as a plain
// error with no code.
package tsdb2err

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code classifies why an operation failed.
type Code int

const (
	// InvalidArgument means the input is syntactically or structurally
	// malformed (e.g. unparseable text-format or JSON).
	InvalidArgument Code = iota + 1
	// FailedPrecondition means the caller misused the reflective API
	// itself (e.g. asked for a field that doesn't exist on the message).
	FailedPrecondition
	// OutOfRange means an index or oneof selector was outside its valid
	// domain.
	OutOfRange
	// Unimplemented means the input exercises a feature that is
	// recognized but deliberately not supported (e.g. a \uXXXX escape
	// outside the \u00XX range).
	Unimplemented
)

func (c Code) String() string {
	switch c {
	case InvalidArgument:
		return "invalid_argument"
	case FailedPrecondition:
		return "failed_precondition"
	case OutOfRange:
		return "out_of_range"
	case Unimplemented:
		return "unimplemented"
	default:
		return "unknown"
	}
}

// Error is a structured error carrying one of the Code values above.
type Error struct {
	code  Code
	msg   string
	cause error
}

// New creates an Error with no wrapped cause.
func New(code Code, format string, args ...any) *Error {
	return &Error{code: code, msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error that wraps cause, attaching a new stack trace to it
// via github.com/pkg/errors.WithStack.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{code: code, msg: fmt.Sprintf(format, args...), cause: errors.WithStack(cause)}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.msg)
}

// Unwrap supports errors.Is/errors.As against the wrapped cause.
func (e *Error) Unwrap() error { return e.cause }

// GetCode returns the structured code of err if it is (or wraps) an *Error,
// and ok=false otherwise.
func GetCode(err error) (code Code, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.code, true
	}
	return 0, false
}

// Is supports errors.Is(err, tsdb2err.InvalidArgument) and similar by
// treating a bare Code value as a sentinel matching any *Error with that
// code.
func (c Code) Is(err error) bool {
	code, ok := GetCode(err)
	return ok && code == c
}

// InvalidArgumentf is a convenience constructor for the common case.
func InvalidArgumentf(format string, args ...any) *Error {
	return New(InvalidArgument, format, args...)
}

// FailedPreconditionf is a convenience constructor for the common case.
func FailedPreconditionf(format string, args ...any) *Error {
	return New(FailedPrecondition, format, args...)
}

// OutOfRangef is a convenience constructor for the common case.
func OutOfRangef(format string, args ...any) *Error {
	return New(OutOfRange, format, args...)
}

// Unimplementedf is a convenience constructor for the common case.
func Unimplementedf(format string, args ...any) *Error {
	return New(Unimplemented, format, args...)
}
