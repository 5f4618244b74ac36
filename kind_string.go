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

import "strconv"

// syntaxKindNames holds the display name for every SyntaxKind, indexed by
// kind-1. Kept as a plain slice rather than a stringer-generated packed
// string table since the enumeration is still growing, and a plain slice
// is easier to keep honest by hand.
var syntaxKindNames = [...]string{
	DOCUMENT - 1:                  "DOCUMENT",
	PARAGRAPH - 1:                 "PARAGRAPH",
	HEADING - 1:                   "HEADING",
	ATXHeadingMarker - 1:          "ATX_HEADING_MARKER",
	SetextHeadingUnderline - 1:    "SETEXT_HEADING_UNDERLINE",
	HeadingContent - 1:            "HEADING_CONTENT",
	BlockQuote - 1:                "BLOCK_QUOTE",
	List - 1:                      "LIST",
	ListItem - 1:                  "LIST_ITEM",
	ListMarker - 1:                "LIST_MARKER",
	DefinitionList - 1:            "DEFINITION_LIST",
	DefinitionItem - 1:            "DEFINITION_ITEM",
	DefinitionTerm - 1:            "DEFINITION_TERM",
	DefinitionBody - 1:            "DEFINITION_BODY",
	FencedDiv - 1:                 "FENCED_DIV",
	FencedCode - 1:                "FENCED_CODE",
	IndentedCode - 1:              "INDENTED_CODE",
	InfoString - 1:                "INFO_STRING",
	MathBlock - 1:                 "MATH_BLOCK",
	LineBlock - 1:                 "LINE_BLOCK",
	LineBlockLine - 1:             "LINE_BLOCK_LINE",
	PipeTable - 1:                 "PIPE_TABLE",
	PipeTableRow - 1:              "PIPE_TABLE_ROW",
	PipeTableDelimiterRow - 1:     "PIPE_TABLE_DELIMITER_ROW",
	PipeTableCell - 1:             "PIPE_TABLE_CELL",
	Frontmatter - 1:               "FRONTMATTER",
	HTMLComment - 1:               "HTML_COMMENT",
	ThematicBreak - 1:             "THEMATIC_BREAK",
	LinkReferenceDefinition - 1:   "LINK_REFERENCE_DEFINITION",
	Text - 1:                      "TEXT",
	Emphasis - 1:                  "EMPHASIS",
	Strong - 1:                    "STRONG",
	Strikeout - 1:                 "STRIKEOUT",
	Subscript - 1:                 "SUBSCRIPT",
	Superscript - 1:               "SUPERSCRIPT",
	InlineCode - 1:                "INLINE_CODE",
	InlineMath - 1:                "INLINE_MATH",
	Link - 1:                      "LINK",
	Image - 1:                     "IMAGE",
	LinkDestination - 1:           "LINK_DESTINATION",
	LinkTitle - 1:                 "LINK_TITLE",
	LinkLabel - 1:                 "LINK_LABEL",
	Autolink - 1:                  "AUTOLINK",
	RawTex - 1:                    "RAW_TEX",
	RawHTML - 1:                   "RAW_HTML",
	FootnoteRef - 1:               "FOOTNOTE_REF",
	InlineFootnote - 1:            "INLINE_FOOTNOTE",
	CharacterReference - 1:        "CHARACTER_REFERENCE",
	HardLineBreak - 1:             "HARD_LINE_BREAK",
	SoftLineBreak - 1:             "SOFT_LINE_BREAK",
	Whitespace - 1:                "WHITESPACE",
	Newline - 1:                   "NEWLINE",
	FenceMarker - 1:               "FENCE_MARKER",
	Pipe - 1:                      "PIPE",
	Delim - 1:                     "DELIM",
}

func (k SyntaxKind) String() string {
	i := int(k) - 1
	if i < 0 || i >= len(syntaxKindNames) || syntaxKindNames[i] == "" {
		return "SyntaxKind(" + strconv.Itoa(int(k)) + ")"
	}
	return syntaxKindNames[i]
}
