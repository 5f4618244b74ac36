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

import "testing"

// TestParseLeafTokensStaySortedAndInBounds checks the structural
// property the green tree actually promises: every leaf token's span
// lies within source, and tokens never overlap or run backwards in
// document order. This is what lets a formatter trust Span()-based
// slicing anywhere in the tree.
func TestParseLeafTokensStaySortedAndInBounds(t *testing.T) {
	sources := []string{
		"Hello world\n",
		"# Title\n\nBody paragraph.\n",
		"> a blockquote\n> spanning two lines\n",
		"- one\n- two\n- three\n",
		"```go\nfmt.Println(1)\n```\n",
		"Term\n: a definition\n",
		"| a | b |\n| - | - |\n| 1 | 2 |\n",
		"***\n",
	}
	for _, src := range sources {
		tree := Parse([]byte(src), DefaultConfig())
		prevEnd := 0
		Walk(tree.Root, &WalkOptions{
			Pre: func(c *Cursor) bool {
				n := c.Node()
				if !n.IsToken() {
					return true
				}
				sp := n.Span()
				if sp.Start < 0 || sp.End > len(src) || sp.Start > sp.End {
					t.Errorf("Parse(%q): token %v has out-of-bounds span %v", src, n.Kind(), sp)
				}
				if sp.Start < prevEnd {
					t.Errorf("Parse(%q): token %v span %v overlaps previous token ending at %d", src, n.Kind(), sp, prevEnd)
				}
				prevEnd = sp.End
				return true
			},
		})
	}
}

// TestParseLinePrefixesAreCarriedAsTokens checks that a multi-line
// block quote carries its opening "> " marker as a Delim token, while
// the second line's "> " is not a separate Delim: its bytes sit inside
// the paragraph's line-join token.
func TestParseLinePrefixesAreCarriedAsTokens(t *testing.T) {
	const src = "> a blockquote\n> spanning two lines\n"
	tree := Parse([]byte(src), DefaultConfig())
	var markerTexts []string
	Walk(tree.Root, &WalkOptions{
		Pre: func(c *Cursor) bool {
			if c.Node().Kind() == Delim {
				markerTexts = append(markerTexts, tree.NodeText(c.Node()))
			}
			return true
		},
	})
	if len(markerTexts) != 1 {
		t.Fatalf("Parse(%q): found %d Delim marker(s) %q, want exactly 1 (the opening marker; the continuation line's marker is absorbed into the paragraph's own line-join token)", src, len(markerTexts), markerTexts)
	}
	if markerTexts[0] != "> " {
		t.Errorf("Parse(%q): opening marker text = %q, want %q", src, markerTexts[0], "> ")
	}
}

func TestParseHeadingLevel(t *testing.T) {
	tree := Parse([]byte("### Three\n"), DefaultConfig())
	heading := tree.Root.Child(0)
	if heading.Kind() != HEADING {
		t.Fatalf("first child kind = %v, want HEADING", heading.Kind())
	}
	if got := heading.HeadingLevel(); got != 3 {
		t.Errorf("HeadingLevel() = %d, want 3", got)
	}
}

func TestParseListTightness(t *testing.T) {
	tight := Parse([]byte("- one\n- two\n"), DefaultConfig())
	list := tight.Root.Child(0)
	if !list.IsTightList() {
		t.Error("tight list source parsed as loose")
	}

	loose := Parse([]byte("- one\n\n- two\n"), DefaultConfig())
	list2 := loose.Root.Child(0)
	if list2.IsTightList() {
		t.Error("loose list source parsed as tight")
	}
}

func TestParseOrderedListStart(t *testing.T) {
	tree := Parse([]byte("3. one\n4. two\n"), DefaultConfig())
	list := tree.Root.Child(0)
	if !list.IsOrderedList() {
		t.Fatal("expected ordered list")
	}
	if got := list.ListStart(); got != 3 {
		t.Errorf("ListStart() = %d, want 3", got)
	}
}

func TestParseFencedCodeInfoString(t *testing.T) {
	tree := Parse([]byte("```go\ncode\n```\n"), DefaultConfig())
	fence := tree.Root.Child(0)
	if fence.Kind() != FencedCode {
		t.Fatalf("kind = %v, want FencedCode", fence.Kind())
	}
	info := fence.InfoString()
	if info == nil {
		t.Fatal("InfoString() = nil")
	}
	if got := tree.NodeText(info); got != "go" {
		t.Errorf("InfoString text = %q, want %q", got, "go")
	}
}
