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

// SyntaxKind is a closed enumeration of every node and token kind that can
// appear in a [Tree]: a single tag space shared by structural nodes,
// inline nodes, and trivia tokens.
type SyntaxKind uint16

const (
	// DOCUMENT is the root of every tree.
	DOCUMENT SyntaxKind = 1 + iota

	// Structural (block) nodes.

	PARAGRAPH
	HEADING
	ATXHeadingMarker
	SetextHeadingUnderline
	HeadingContent
	BlockQuote
	List
	ListItem
	ListMarker
	DefinitionList
	DefinitionItem
	DefinitionTerm
	DefinitionBody
	FencedDiv
	FencedCode
	IndentedCode
	InfoString
	MathBlock
	LineBlock
	LineBlockLine
	PipeTable
	PipeTableRow
	PipeTableDelimiterRow
	PipeTableCell
	Frontmatter
	HTMLComment
	ThematicBreak
	LinkReferenceDefinition

	// Inline nodes.

	Text
	Emphasis
	Strong
	Strikeout
	Subscript
	Superscript
	InlineCode
	InlineMath
	Link
	Image
	LinkDestination
	LinkTitle
	LinkLabel
	Autolink
	RawTex
	RawHTML
	FootnoteRef
	InlineFootnote
	CharacterReference
	HardLineBreak
	SoftLineBreak

	// Trivia.

	Whitespace
	Newline
	FenceMarker
	Pipe
	Delim

	numSyntaxKinds
)

// IsBlock reports whether the kind denotes a structural (block) node.
func (k SyntaxKind) IsBlock() bool {
	switch k {
	case DOCUMENT, PARAGRAPH, HEADING, ATXHeadingMarker, SetextHeadingUnderline,
		HeadingContent, BlockQuote, List, ListItem, ListMarker, DefinitionList,
		DefinitionItem, DefinitionTerm, DefinitionBody, FencedDiv, FencedCode,
		IndentedCode, InfoString, MathBlock, LineBlock, LineBlockLine, PipeTable,
		PipeTableRow, PipeTableDelimiterRow, PipeTableCell, Frontmatter,
		HTMLComment, ThematicBreak, LinkReferenceDefinition:
		return true
	default:
		return false
	}
}

// IsInline reports whether the kind denotes an inline node.
func (k SyntaxKind) IsInline() bool {
	switch k {
	case Text, Emphasis, Strong, Strikeout, Subscript, Superscript, InlineCode,
		InlineMath, Link, Image, LinkDestination, LinkTitle, LinkLabel, Autolink,
		RawTex, RawHTML, FootnoteRef, InlineFootnote, CharacterReference,
		HardLineBreak, SoftLineBreak:
		return true
	default:
		return false
	}
}

// IsHeading reports whether the kind is an ATX or setext heading.
func (k SyntaxKind) IsHeading() bool {
	return k == HEADING
}

// IsCode reports whether the kind is a fenced or indented code block.
func (k SyntaxKind) IsCode() bool {
	return k == FencedCode || k == IndentedCode
}

// unbreakable reports whether an inline atom of this kind may never be
// split across output lines by the pretty-printer.
func (k SyntaxKind) unbreakable() bool {
	switch k {
	case InlineCode, InlineMath, RawTex, RawHTML, HTMLComment, Autolink,
		CharacterReference, Subscript, Superscript, Strikeout, Link, Image,
		InlineFootnote, FootnoteRef:
		return true
	default:
		return false
	}
}
