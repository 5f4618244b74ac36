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

// Package htmlscan classifies raw HTML fragments encountered while
// parsing a document. It never renders or sanitizes HTML; it only
// answers "what is this" so the block and inline parsers can decide
// how much of the surrounding text a raw HTML construct consumes.
package htmlscan

import (
	"bytes"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TagKind reports how a recognized opening tag affects HTML block
// detection, mirroring CommonMark's seven HTML block condition types
// collapsed to the ones this package distinguishes.
type TagKind int

const (
	// NotTag means the input did not start with a recognizable tag.
	NotTag TagKind = iota
	// Comment is a "<!--" ... "-->" span.
	Comment
	// RawBlockElement is a tag from the CommonMark "block-level HTML
	// tag name" set (e.g. div, pre, script) that can start an HTML
	// block ended only by a blank line.
	RawBlockElement
	// GenericTag is any other opening, closing, or self-closing tag.
	GenericTag
)

// blockLevelAtoms is the set of tag names whose opening tag can start
// a CommonMark HTML block (condition 6), reusing golang.org/x/net's
// parsed atom table instead of a hand-maintained string set.
var blockLevelAtoms = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Base: true,
	atom.Basefont: true, atom.Blockquote: true, atom.Body: true, atom.Caption: true,
	atom.Center: true, atom.Col: true, atom.Colgroup: true, atom.Dd: true,
	atom.Details: true, atom.Dialog: true, atom.Dir: true, atom.Div: true,
	atom.Dl: true, atom.Dt: true, atom.Fieldset: true, atom.Figcaption: true,
	atom.Figure: true, atom.Footer: true, atom.Form: true, atom.Frame: true,
	atom.Frameset: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Head: true, atom.Header: true, atom.Hr: true,
	atom.Html: true, atom.Iframe: true, atom.Legend: true, atom.Li: true,
	atom.Link: true, atom.Main: true, atom.Menu: true, atom.Menuitem: true,
	atom.Nav: true, atom.Noframes: true, atom.Ol: true, atom.Optgroup: true,
	atom.Option: true, atom.P: true, atom.Param: true, atom.Pre: true,
	atom.Section: true, atom.Source: true, atom.Summary: true, atom.Table: true,
	atom.Tbody: true, atom.Td: true, atom.Tfoot: true, atom.Th: true,
	atom.Thead: true, atom.Title: true, atom.Tr: true, atom.Track: true, atom.Ul: true,
}

// Classify tokenizes the start of src and reports what kind of HTML
// construct begins there, together with the tag name recognized (empty
// for Comment, where the caller instead scans for the closing "-->").
func Classify(src []byte) (kind TagKind, name string) {
	z := html.NewTokenizer(bytes.NewReader(src))
	tt := z.Next()
	switch tt {
	case html.CommentToken:
		return Comment, ""
	case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
		rawName, _ := z.TagName()
		a := atom.Lookup(rawName)
		if blockLevelAtoms[a] {
			return RawBlockElement, string(rawName)
		}
		return GenericTag, string(rawName)
	default:
		return NotTag, ""
	}
}

// IsCommentStart reports whether src begins with an HTML comment
// opener.
func IsCommentStart(src []byte) bool {
	kind, _ := Classify(src)
	return kind == Comment
}
