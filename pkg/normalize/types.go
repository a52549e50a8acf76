// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package normalize

import (
	"fmt"
)

// 🏷️ SkipReason explains why a label was left alone.
type SkipReason int

const (
	SkipEmpty      SkipReason = iota + 1 // userId is empty or whitespace
	SkipNonNumeric                       // userId or label has a non-digit
	SkipTooShort                         // userId is shorter than LabelLength
)

// String returns the short tag of the reason.
func (r SkipReason) String() string {
	switch r {
	case SkipEmpty:
		return "empty"
	case SkipNonNumeric:
		return "non-numeric"
	case SkipTooShort:
		return "too-short"
	default:
		return "unknown"
	}
}

func (r SkipReason) message() string {
	switch r {
	case SkipEmpty:
		return "userId is null or empty"
	case SkipNonNumeric:
		return "userId or label is not numeric"
	case SkipTooShort:
		return fmt.Sprintf("userId length is less than %d", LabelLength)
	default:
		return "of an unknown reason"
	}
}

// 📝 Decision records one skipped userId/label pair.
type Decision struct {
	File   string     // file label the decision belongs to
	Entry  int        // registration index
	Reason SkipReason // why the pair was skipped
}

// String renders the decision as a run log line.
func (d Decision) String() string {
	return fmt.Sprintf("For file %s, %s skipped because %s", d.File, EntryName(d.Entry), d.Reason.message())
}

// 📦 Result is the outcome of normalizing one document.
type Result struct {
	File         string     // file label passed to Normalize
	Text         string     // document text after normalization
	Decisions    []Decision // skip decisions in evaluation order
	Replacements int        // labels actually changed
}

// Changed reports whether any label was rewritten.
func (r *Result) Changed() bool {
	return r.Replacements > 0
}

// Lines renders the decisions as run log lines.
func (r *Result) Lines() []string {
	lines := make([]string, len(r.Decisions))
	for i, d := range r.Decisions {
		lines[i] = d.String()
	}
	return lines
}

// Count returns how many decisions carry the given reason.
func (r *Result) Count(reason SkipReason) int {
	count := 0
	for _, d := range r.Decisions {
		if d.Reason == reason {
			count++
		}
	}
	return count
}

func (r *Result) skip(n int, reason SkipReason) {
	r.Decisions = append(r.Decisions, Decision{
		File:   r.File,
		Entry:  n,
		Reason: reason,
	})
}

// ❌ ParseError is returned when a document is not well formed markup.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ❌ SerializationError is returned when a normalized document cannot be
// written back to text.
type SerializationError struct {
	File string
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serializing %s: %v", e.File, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
