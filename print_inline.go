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

import "strings"

// atom is a single unbreakable unit of inline output: either a plain
// word (breakable at the spaces surrounding it) or an inline construct
// from SyntaxKind.unbreakable that must never be split across lines.
type atom struct {
	text string
	// breakAfter records that the source had an explicit soft line
	// break after this atom. Wrap mode ignores it (any atom boundary
	// is breakable); Preserve mode honors it to reproduce the
	// source's own line breaks.
	breakAfter bool
	hardBreak  bool // the source had a hard line break after this atom
	// glued records that this atom directly abuts the previous one in
	// the source, with no whitespace between them (e.g. the "O" in
	// "H~2~O"). No space is inserted before a glued atom even though
	// it is otherwise an independent breakable unit.
	glued bool
}

// printInlineSequence renders nodes without reflow, used inside
// contexts (table cells, headings, line-block lines) that are already
// bounded to one output line.
func (p *printer) printInlineSequence(nodes []*Node) {
	for _, n := range nodes {
		p.writeRaw(p.inlineText(n))
	}
}

// fillInlines renders nodes as a paragraph: [Config.Wrap] selects
// between greedy-fill reflow to Config.LineWidth and reproducing the
// source's own line breaks exactly.
func (p *printer) fillInlines(nodes []*Node) {
	atoms := p.atomize(nodes)
	if p.cfg.Wrap == Preserve {
		p.emitPreserving(atoms)
		return
	}
	p.emitFilled(atoms)
}

// atomize flattens an inline node sequence into a list of atoms:
// breakable words from Text runs split on whitespace, and unbreakable
// spans (CharacterReference among them) rendered as single opaque atoms.
func (p *printer) atomize(nodes []*Node) []atom {
	var atoms []atom
	prevEnd := 0
	havePrev := false
	src := p.tree.Source
	for _, n := range nodes {
		start := n.Span().Start
		glued := havePrev && start == prevEnd && start > 0 && start < len(src) &&
			!isWhitespaceByte(src[start-1]) && !isWhitespaceByte(src[start])
		switch {
		case n.Kind() == SoftLineBreak:
			if len(atoms) > 0 {
				atoms[len(atoms)-1].breakAfter = true
			}
			// A line break always stands in for whitespace, regardless
			// of whether its own span happens to abut the next node's.
			havePrev = false
			continue
		case n.Kind() == HardLineBreak:
			if len(atoms) > 0 {
				atoms[len(atoms)-1].hardBreak = true
			}
			havePrev = false
			continue
		case n.Kind() == Text:
			for i, w := range strings.Fields(p.tree.NodeText(n)) {
				atoms = append(atoms, atom{text: w, glued: glued && i == 0})
			}
		case n.Kind().unbreakable():
			atoms = append(atoms, atom{text: p.inlineText(n), glued: glued})
		default:
			// A breakable compound node (Emphasis/Strong spanning
			// multiple words): recurse and let its own words remain
			// individually breakable, but keep its delimiters glued to
			// the adjacent word by rendering it as one atom when it
			// contains no internal space, otherwise splitting on the
			// rendered text's own whitespace.
			text := p.inlineText(n)
			for i, w := range strings.Fields(text) {
				atoms = append(atoms, atom{text: w, glued: glued && i == 0})
			}
		}
		prevEnd = n.Span().End
		havePrev = true
	}
	return atoms
}

func (p *printer) emitFilled(atoms []atom) {
	for i, a := range atoms {
		needsSpace := i > 0 && !a.glued && p.lineWidth > len(p.prefix())
		width := len(a.text)
		if needsSpace {
			width++
		}
		if !a.glued && !p.cfg.unlimited() && p.lineWidth+width > p.cfg.LineWidth && p.lineWidth > len(p.prefix()) {
			p.finishLine()
			needsSpace = false
		}
		if needsSpace {
			p.writeRaw(" ")
		}
		p.writeRaw(a.text)
		if a.hardBreak {
			p.writeRaw("\\")
			p.finishLine()
		}
	}
}

// emitPreserving renders atoms joined by single spaces, breaking the
// output line exactly where a SoftLineBreak or HardLineBreak appeared
// in the source.
func (p *printer) emitPreserving(atoms []atom) {
	for i, a := range atoms {
		if i > 0 && !a.glued && !p.lineEmpty {
			p.writeRaw(" ")
		}
		p.writeRaw(a.text)
		switch {
		case a.hardBreak:
			p.writeRaw("\\")
			p.finishLine()
		case a.breakAfter && i < len(atoms)-1:
			p.finishLine()
		}
	}
}

func inlineOpenDelim(kind SyntaxKind) string {
	switch kind {
	case Emphasis:
		return "_"
	case Strong:
		return "**"
	case Strikeout:
		return "~~"
	case Subscript:
		return "~"
	case Superscript:
		return "^"
	case Link:
		return "["
	case Image:
		return "!["
	case InlineFootnote:
		return "^["
	default:
		return ""
	}
}

func inlineCloseDelim(kind SyntaxKind) string {
	switch kind {
	case Emphasis:
		return "_"
	case Strong:
		return "**"
	case Strikeout:
		return "~~"
	case Subscript:
		return "~"
	case Superscript:
		return "^"
	case Link, Image:
		return "]"
	case InlineFootnote:
		return "]"
	default:
		return ""
	}
}
