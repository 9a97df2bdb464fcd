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

// Package assert holds invariant checks for structural bugs: conditions
// that indicate a defect in this module's own code, never something a
// caller's input can trigger. Violations panic immediately rather than
// propagating a confusing error from somewhere downstream.
package assert

import "fmt"

// That panics with msg if cond is false.
func That(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

// Unreachable panics unconditionally; call it from a branch that the
// caller's own logic has already proven can never execute.
func Unreachable(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
