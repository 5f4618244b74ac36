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

// Node is an element of the green tree: either a structural node with
// children, or a token holding a span of source bytes. Nodes are
// immutable once [Parse] returns; the tree may be shared freely by
// reference.
//
// A Node is a token (leaf with no children) when Children is nil.
// Concatenating the source slices of every token in document order,
// depth-first, reproduces the document's content: container prefixes
// (blockquote ">", list markers, the opening fence of a code or math
// block) and multi-line joins are represented by their own tokens
// rather than discarded. The closing fence of a code or math block and
// both fence lines of a fenced div are not tokens; only their node's
// span covers them. Tokens do
// not separately account for every byte of incidental formatting
// whitespace (such as the single space after an ATX "#" marker, or the
// newline that terminates the last line of a block); the printer
// reconstructs that layout rather than replaying it, since reformatting
// it is the whole point of [Format].
type Node struct {
	kind     SyntaxKind
	span     Span
	children []*Node

	// indent is a kind-specific datum.
	// For ListItem, it is the content column continuation lines must reach.
	// For FencedCode and MathBlock, it is the indentation, in columns, of
	// the opening fence; body lines are kept as written.
	indent int

	// n is a kind-specific datum.
	// For HEADING, it is the 1-based level.
	// For FencedCode and MathBlock, it is the fence character count.
	// For a ListItem/List, it is the ordered-list start number (-1 if unordered).
	n int

	// char is a kind-specific datum: the fence character (` or ~ or : or $)
	// or the list/definition marker delimiter byte.
	char byte

	loose bool // List/ListItem: loose vs. tight

	// ref is the normalized reference label for a node that participates
	// in label matching (LinkReferenceDefinition, a reference-style Link
	// or Image, FootnoteRef).
	ref string
}

// Kind returns the node's syntax kind.
func (n *Node) Kind() SyntaxKind {
	if n == nil {
		return 0
	}
	return n.kind
}

// Span returns the node's byte range in the tree's source.
func (n *Node) Span() Span {
	if n == nil {
		return NullSpan()
	}
	return n.span
}

// IsToken reports whether the node is a leaf token rather than a
// structural node.
func (n *Node) IsToken() bool {
	return n != nil && n.children == nil
}

// ChildCount returns the number of children the node has.
func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// Child returns the i'th child of the node.
func (n *Node) Child(i int) *Node {
	return n.children[i]
}

// Children returns the node's children. The caller must not mutate the
// returned slice.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// ChildrenOfKind returns the direct children with the given kind.
func (n *Node) ChildrenOfKind(kind SyntaxKind) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildOfKind returns the first direct child with the given kind,
// or nil if there is none.
func (n *Node) FirstChildOfKind(kind SyntaxKind) *Node {
	for _, c := range n.children {
		if c.kind == kind {
			return c
		}
	}
	return nil
}

// Text returns the source text the node covers.
func (n *Node) Text(source []byte) string {
	return string(spanSlice(source, n.Span()))
}

// HeadingLevel returns the 1-based heading level for a HEADING node, or
// zero otherwise.
func (n *Node) HeadingLevel() int {
	if n.Kind() != HEADING {
		return 0
	}
	return n.n
}

// IsOrderedList reports whether the block is a List or ListItem using
// an ordered-list marker.
func (n *Node) IsOrderedList() bool {
	return n != nil && (n.char == '.' || n.char == ')')
}

// IsTightList reports whether the block is a tight List or ListItem.
func (n *Node) IsTightList() bool {
	return n != nil && (n.kind == List || n.kind == ListItem) && !n.loose
}

// ListStart returns the start number of an ordered List, or the number
// written on an ordered ListItem's own marker, or -1 if the list is
// unordered.
func (n *Node) ListStart() int {
	if !n.IsOrderedList() {
		return -1
	}
	return n.n
}

// InfoString returns the INFO_STRING child for a FencedCode block, or
// nil if there is none.
func (n *Node) InfoString() *Node {
	if n.Kind() != FencedCode {
		return nil
	}
	return n.FirstChildOfKind(InfoString)
}

// FenceChar and FenceCount describe the opening fence of a FencedCode or
// MathBlock node.
func (n *Node) FenceChar() byte  { return n.char }
func (n *Node) FenceCount() int  { return n.n }

// Reference returns the normalized reference label for a node that
// participates in CommonMark label matching, or the empty string.
func (n *Node) Reference() string {
	if n == nil {
		return ""
	}
	return n.ref
}

func (n *Node) close(end int) {
	if n.span.isOpen() {
		n.span.End = end
	}
}

func (n *Node) lastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// newToken creates a closed leaf token.
func newToken(kind SyntaxKind, span Span) *Node {
	return &Node{kind: kind, span: span}
}

// Tree is the result of [Parse]: a concrete syntax tree together with
// the source it was parsed from. Not every source byte is carried by a
// token; see [Node].
type Tree struct {
	Source []byte
	Root   *Node
}

// NodeText is a convenience wrapper for n.Text(t.Source).
func (t *Tree) NodeText(n *Node) string {
	return n.Text(t.Source)
}
