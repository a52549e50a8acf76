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
	"strings"

	"github.com/walteh/regnorm/pkg/document"
	"gitlab.com/tozd/go/errors"
)

const (
	// MaxEntries is the highest registration index examined. Entries above it
	// are never looked at.
	MaxEntries = 100

	// LabelLength is how many trailing userId characters make up a label.
	LabelLength = 5
)

// UserIDAttr returns the identifier attribute name of entry n.
func UserIDAttr(n int) string {
	return fmt.Sprintf("reg.%d.auth.userId", n)
}

// LabelAttr returns the label attribute name of entry n.
func LabelAttr(n int) string {
	return fmt.Sprintf("reg.%d.label", n)
}

// EntryName returns the name used for entry n in decision records.
func EntryName(n int) string {
	return strings.ReplaceAll(LabelAttr(n), ".label", "")
}

// 🎯 Normalize recomputes every registration label in text from the tail of
// its userId.
//
// The returned Result holds the new text (identical to text when nothing was
// replaced), the ordered skip decisions and the replacement count. fileLabel
// is only used to format decisions. Malformed markup yields a *ParseError.
func Normalize(text, fileLabel string) (*Result, error) {
	doc, err := document.Parse(text)
	if err != nil {
		return nil, errors.WithStack(&ParseError{File: fileLabel, Err: err})
	}

	res := &Result{
		File: fileLabel,
		Text: text,
	}

	for n := 1; n <= MaxEntries; n++ {
		normalizeEntry(doc, n, res)
	}

	if res.Replacements == 0 {
		return res, nil
	}

	out, err := doc.String()
	if err != nil {
		return nil, errors.WithStack(&SerializationError{File: fileLabel, Err: err})
	}
	res.Text = out

	return res, nil
}

// normalizeEntry applies the label rule to entry n.
//
// Label candidates are taken from the set of elements carrying the userId
// attribute, not from a separate label lookup, so every userId element is
// paired with every other userId element of the same entry.
func normalizeEntry(doc *document.Document, n int, res *Result) {
	userAttr := UserIDAttr(n)
	labelAttr := LabelAttr(n)

	nodes := doc.ElementsWithAttr(userAttr)
	for _, uNode := range nodes {
		userID, _ := uNode.Attr(userAttr)
		if strings.TrimSpace(userID) == "" {
			res.skip(n, SkipEmpty)
			continue
		}

		for _, lNode := range nodes {
			label, ok := lNode.Attr(labelAttr)
			if !ok || !isNumeric(userID) || !isNumeric(label) {
				res.skip(n, SkipNonNumeric)
				continue
			}

			if len(userID) < LabelLength {
				res.skip(n, SkipTooShort)
				continue
			}

			derived := deriveLabel(userID)
			if label == derived {
				continue
			}

			lNode.SetAttr(labelAttr, derived)
			res.Replacements++
		}
	}
}

// isNumeric reports whether every byte of s is an ASCII decimal digit. The
// empty string is numeric.
func isNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// deriveLabel returns the last LabelLength characters of a numeric userId.
func deriveLabel(userID string) string {
	if len(userID) <= LabelLength {
		return userID
	}
	return userID[len(userID)-LabelLength:]
}
