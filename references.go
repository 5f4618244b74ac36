// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package qmd

import (
	"strings"

	"golang.org/x/text/cases"
)

var labelCaseFolder = cases.Fold()

// normalizeLabel implements CommonMark's link label matching rule:
// Unicode case folding plus collapsing of interior whitespace runs to
// a single space, after trimming leading and trailing whitespace. Two
// labels refer to the same definition if and only if their normalized
// forms are equal.
func normalizeLabel(label string) string {
	folded := labelCaseFolder.String(strings.TrimSpace(label))
	var b strings.Builder
	b.Grow(len(folded))
	lastWasSpace := false
	for _, r := range folded {
		if isUnicodeSpace(r) {
			if !lastWasSpace {
				b.WriteByte(' ')
			}
			lastWasSpace = true
			continue
		}
		lastWasSpace = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

func isUnicodeSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}

// ReferenceMap indexes the link reference definitions recovered from a
// parsed [Tree], keyed by normalized label.
type ReferenceMap struct {
	defs map[string]*Node
}

// NewReferenceMap walks tree, collecting every LinkReferenceDefinition
// node keyed by its normalized label. A document with more than one
// definition sharing a label keeps the first, matching CommonMark's
// first-definition-wins rule.
func NewReferenceMap(tree *Tree) *ReferenceMap {
	rm := &ReferenceMap{defs: map[string]*Node{}}
	Walk(tree.Root, &WalkOptions{
		Pre: func(c *Cursor) bool {
			n := c.Node()
			if n.Kind() == LinkReferenceDefinition {
				if _, exists := rm.defs[n.Reference()]; !exists {
					rm.defs[n.Reference()] = n
				}
			}
			return true
		},
	})
	return rm
}

// Lookup returns the definition for label (normalized internally), and
// whether one was found.
func (rm *ReferenceMap) Lookup(label string) (*Node, bool) {
	n, ok := rm.defs[normalizeLabel(label)]
	return n, ok
}
