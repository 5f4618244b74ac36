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

func parseDefaultInlines(s string) []*Node {
	return parseInlines([]byte(s), 0, len(s), DefaultConfig())
}

func soleKind(t *testing.T, nodes []*Node) SyntaxKind {
	t.Helper()
	if len(nodes) != 1 {
		t.Fatalf("got %d inline nodes, want 1", len(nodes))
	}
	return nodes[0].Kind()
}

func TestParseEmphasisAndStrong(t *testing.T) {
	nodes := parseDefaultInlines("*em* and **strong**")
	if nodes[0].Kind() != Emphasis {
		t.Errorf("first node kind = %v, want Emphasis", nodes[0].Kind())
	}
	var strong *Node
	for _, n := range nodes {
		if n.Kind() == Strong {
			strong = n
		}
	}
	if strong == nil {
		t.Fatal("no Strong node found")
	}
}

func TestParseStrikeoutVsSubscript(t *testing.T) {
	if got := soleKind(t, parseDefaultInlines("~~deleted~~")); got != Strikeout {
		t.Errorf("~~deleted~~ kind = %v, want Strikeout", got)
	}
	nodes := parseDefaultInlines("a~2~b")
	var sub *Node
	for _, n := range nodes {
		if n.Kind() == Subscript {
			sub = n
		}
	}
	if sub == nil {
		t.Fatal("a~2~b: no Subscript node found")
	}
}

func TestParseSuperscript(t *testing.T) {
	nodes := parseDefaultInlines("x^2^")
	var sup *Node
	for _, n := range nodes {
		if n.Kind() == Superscript {
			sup = n
		}
	}
	if sup == nil {
		t.Fatal("x^2^: no Superscript node found")
	}
}

func TestParseInlineFootnoteNotConfusedWithSuperscript(t *testing.T) {
	nodes := parseDefaultInlines("^[a note]")
	if got := soleKind(t, nodes); got != InlineFootnote {
		t.Errorf("^[a note] kind = %v, want InlineFootnote", got)
	}
}

func TestParseCodeSpan(t *testing.T) {
	nodes := parseDefaultInlines("`code`")
	if got := soleKind(t, nodes); got != InlineCode {
		t.Errorf("`code` kind = %v, want InlineCode", got)
	}
}

func TestParseMathSpan(t *testing.T) {
	nodes := parseDefaultInlines("$x^2$")
	if got := soleKind(t, nodes); got != InlineMath {
		t.Errorf("$x^2$ kind = %v, want InlineMath", got)
	}
}

func TestParseAutolink(t *testing.T) {
	nodes := parseDefaultInlines("<https://example.com>")
	if got := soleKind(t, nodes); got != Autolink {
		t.Errorf("autolink kind = %v, want Autolink", got)
	}
}

func TestParseCharacterReference(t *testing.T) {
	nodes := parseDefaultInlines("&amp;")
	if got := soleKind(t, nodes); got != CharacterReference {
		t.Errorf("&amp; kind = %v, want CharacterReference", got)
	}
}

func TestParseInlineLinkWithTitle(t *testing.T) {
	src := `[text](https://example.com "a title")`
	nodes := parseDefaultInlines(src)
	if got := soleKind(t, nodes); got != Link {
		t.Fatalf("link kind = %v, want Link", got)
	}
	link := nodes[0]
	dest := link.FirstChildOfKind(LinkDestination)
	if dest == nil {
		t.Fatal("link has no LinkDestination child")
	}
	if got := string(spanSlice([]byte(src), dest.Span())); got != "https://example.com" {
		t.Errorf("destination text = %q, want %q", got, "https://example.com")
	}
	title := link.FirstChildOfKind(LinkTitle)
	if title == nil {
		t.Fatal("link has no LinkTitle child")
	}
}

func TestParseImageInline(t *testing.T) {
	nodes := parseDefaultInlines("![alt](img.png)")
	if got := soleKind(t, nodes); got != Image {
		t.Errorf("image kind = %v, want Image", got)
	}
}

func TestParseReferenceStyleLink(t *testing.T) {
	nodes := parseDefaultInlines("[text][My Label]")
	if got := soleKind(t, nodes); got != Link {
		t.Fatalf("link kind = %v, want Link", got)
	}
	if got, want := nodes[0].Reference(), normalizeLabel("My Label"); got != want {
		t.Errorf("reference label = %q, want %q", got, want)
	}
}

func TestParseShortcutReferenceLink(t *testing.T) {
	nodes := parseDefaultInlines("[My Label]")
	if got := soleKind(t, nodes); got != Link {
		t.Fatalf("link kind = %v, want Link", got)
	}
	if got, want := nodes[0].Reference(), normalizeLabel("My Label"); got != want {
		t.Errorf("reference label = %q, want %q", got, want)
	}
}

func TestParseEscapedPunctuationIsLiteral(t *testing.T) {
	nodes := parseDefaultInlines(`\*not emphasis\*`)
	for _, n := range nodes {
		if n.Kind() == Emphasis || n.Kind() == Strong {
			t.Errorf("escaped asterisks produced %v, want plain text", n.Kind())
		}
	}
}
