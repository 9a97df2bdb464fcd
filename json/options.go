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

package json

// LineFeedType selects the line-feed sequence a pretty Stringifier emits.
type LineFeedType uint8

const (
	LF LineFeedType = iota
	CRLF
	CR
)

func (t LineFeedType) sequence() string {
	switch t {
	case CRLF:
		return "\r\n"
	case CR:
		return "\r"
	default:
		return "\n"
	}
}

// ParseOptions configures Parser behavior.
type ParseOptions struct {
	// AllowExtraFields, when true, makes unrecognized object keys on a
	// struct/record decode get silently skipped rather than erroring.
	AllowExtraFields bool
	// FastSkipping, when true, makes skipping an unrecognized field scan
	// only the bracket structure rather than fully validating the inner
	// string/number syntax. Strings are still scanned far enough to
	// handle nested quotes correctly.
	FastSkipping bool
}

// DefaultParseOptions returns the default options: AllowExtraFields=true,
// FastSkipping=false.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{AllowExtraFields: true}
}

// StringifyOptions configures Stringifier behavior.
type StringifyOptions struct {
	Pretty           bool
	LineFeedType     LineFeedType
	IndentWidth      int
	TrailingNewline  bool
	OutputEmptyFields bool
}

// DefaultStringifyOptions returns the default options: compact output,
// IndentWidth=2 (used only when Pretty is later set true).
func DefaultStringifyOptions() StringifyOptions {
	return StringifyOptions{IndentWidth: 2}
}
