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
	"bytes"
	"strings"

	"github.com/quarto-dev/qmdfmt/internal/htmlscan"
)

// contentLine is a line of input that has had zero or more ancestor
// container prefixes already consumed. start and end delimit the
// remaining, unconsumed content; newlineEnd is the offset just past the
// line's own newline byte (or len(source) on the final line), so a
// caller that needs to reclaim the newline for a token span can do so.
type contentLine struct {
	start, end, newlineEnd int
}

func (cl contentLine) bytes(source []byte) []byte { return source[cl.start:cl.end] }
func (cl contentLine) blank(source []byte) bool    { return isBlankLine(cl.bytes(source)) }

// blockParser holds the state threaded through block-level parsing.
type blockParser struct {
	source []byte
	cfg    *Config
}

// Parse builds a concrete syntax [Tree] from source according to cfg. A
// nil cfg uses [DefaultConfig]. Not every source byte is carried by a
// token; see [Node] for which are.
func Parse(source []byte, cfg *Config) *Tree {
	cfg = cfg.withDefaults()
	source = NormalizeSource(source)
	p := &blockParser{source: source, cfg: cfg}
	lines := p.contentLines()

	var children []*Node
	if fm, rest := p.takeFrontmatter(lines); fm != nil {
		children = append(children, fm)
		lines = rest
	}
	children = append(children, p.parseBlockChildren(lines, 0)...)

	root := &Node{kind: DOCUMENT, children: children}
	root.span = spanOfChildren(children, len(source))
	return &Tree{Source: source, Root: root}
}

// spanOfChildren computes the smallest span covering every child, or a
// zero-length span at fallback if there are none.
func spanOfChildren(children []*Node, fallback int) Span {
	if len(children) == 0 {
		return Span{Start: fallback, End: fallback}
	}
	start := children[0].Span().Start
	end := children[len(children)-1].Span().End
	return Span{Start: start, End: end}
}

// contentLines splits the source into per-line byte ranges with no
// ancestor prefix yet consumed.
func (p *blockParser) contentLines() []contentLine {
	lines, offsets := splitLines(p.source)
	out := make([]contentLine, len(lines))
	for i, ln := range lines {
		start := offsets[i]
		end := start + len(ln)
		newlineEnd := end
		if end < len(p.source) && p.source[end] == '\r' {
			newlineEnd++
		}
		if newlineEnd < len(p.source) && p.source[newlineEnd] == '\n' {
			newlineEnd++
		}
		out[i] = contentLine{start: start, end: end, newlineEnd: newlineEnd}
	}
	return out
}

// takeFrontmatter recognizes a YAML frontmatter block: "---" alone on
// the first line, a body of arbitrary lines, and a closing "---" or
// "...". The body is never interpreted, only delimited.
func (p *blockParser) takeFrontmatter(lines []contentLine) (*Node, []contentLine) {
	if len(lines) == 0 || strings.TrimRight(string(lines[0].bytes(p.source)), " \t\r") != "---" {
		return nil, lines
	}
	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimRight(string(lines[i].bytes(p.source)), " \t\r")
		if trimmed == "---" || trimmed == "..." {
			node := &Node{
				kind: Frontmatter,
				span: Span{Start: lines[0].start, End: lines[i].end},
			}
			return node, lines[i+1:]
		}
	}
	return nil, lines
}

// parseBlockChildren parses a maximal run of sibling blocks from lines,
// whose content has already had depth levels of ancestor prefix
// stripped.
func (p *blockParser) parseBlockChildren(lines []contentLine, depth int) []*Node {
	var out []*Node
	i := 0
	for i < len(lines) {
		if lines[i].blank(p.source) {
			out = append(out, newToken(Newline, Span{Start: lines[i].start, End: lines[i].newlineEnd}))
			i++
			continue
		}

		if node, consumed := p.tryBlockQuote(lines[i:], depth); node != nil {
			out = append(out, node)
			i += consumed
			continue
		}
		if p.cfg.Extensions.FencedDivs {
			if node, consumed := p.tryFencedDiv(lines[i:], depth); node != nil {
				out = append(out, node)
				i += consumed
				continue
			}
		}
		if node, consumed := p.tryList(lines[i:], depth); node != nil {
			out = append(out, node)
			i += consumed
			continue
		}
		if p.cfg.Extensions.DefinitionLists {
			if node, consumed := p.tryDefinitionList(lines[i:], depth); node != nil {
				out = append(out, node)
				i += consumed
				continue
			}
		}
		if node, consumed := p.tryFencedCode(lines[i:]); node != nil {
			out = append(out, node)
			i += consumed
			continue
		}
		if p.cfg.Extensions.TexMathDollars {
			if node, consumed := p.tryMathBlock(lines[i:]); node != nil {
				out = append(out, node)
				i += consumed
				continue
			}
		}
		if node, consumed := p.tryIndentedCode(lines[i:], depth); node != nil {
			out = append(out, node)
			i += consumed
			continue
		}
		if node := p.tryThematicBreak(lines[i]); node != nil {
			out = append(out, node)
			i++
			continue
		}
		if node, consumed := p.tryATXHeading(lines[i]); node != nil {
			out = append(out, node)
			i += consumed
			continue
		}
		if node, consumed := p.tryHTMLComment(lines[i:]); node != nil {
			out = append(out, node)
			i += consumed
			continue
		}
		if p.cfg.Extensions.LineBlocks {
			if node, consumed := p.tryLineBlock(lines[i:]); node != nil {
				out = append(out, node)
				i += consumed
				continue
			}
		}
		if p.cfg.Extensions.PipeTables {
			if node, consumed := p.tryPipeTable(lines[i:]); node != nil {
				out = append(out, node)
				i += consumed
				continue
			}
		}

		node, consumed := p.parseParagraph(lines[i:])
		out = append(out, node)
		i += consumed
	}
	return out
}

// --- Block quote -----------------------------------------------------

func (p *blockParser) tryBlockQuote(lines []contentLine, depth int) (*Node, int) {
	cols, _ := leadingIndent(lines[0].bytes(p.source))
	if cols >= 4 {
		return nil, 0
	}
	raw := lines[0].bytes(p.source)
	idx := byteIndexAtColumn(raw, cols)
	if idx >= len(raw) || raw[idx] != '>' {
		return nil, 0
	}

	var inner []contentLine
	var markers []*Node
	n := 0
	for n < len(lines) {
		raw := lines[n].bytes(p.source)
		cols, bytesConsumed := leadingIndent(raw)
		idx := byteIndexAtColumn(raw, cols)
		if cols < 4 && idx < len(raw) && raw[idx] == '>' {
			markerEnd := idx + 1
			if markerEnd < len(raw) && (raw[markerEnd] == ' ' || raw[markerEnd] == '\t') {
				markerEnd++
			}
			markerStart := lines[n].start
			markers = append(markers, newToken(Delim, Span{Start: markerStart, End: markerStart + markerEnd}))
			inner = append(inner, contentLine{
				start:      markerStart + markerEnd,
				end:        lines[n].end,
				newlineEnd: lines[n].newlineEnd,
			})
			n++
			continue
		}
		_ = bytesConsumed
		if lines[n].blank(p.source) {
			break
		}
		if n > 0 && p.isLazyContinuation(lines[n]) {
			inner = append(inner, lines[n])
			markers = append(markers, nil)
			n++
			continue
		}
		break
	}
	if n == 0 {
		return nil, 0
	}

	children := p.parseBlockChildren(inner, depth+1)
	node := &Node{kind: BlockQuote, children: mergeMarkers(markers, children)}
	node.span = spanOfChildren(node.children, lines[n-1].end)
	return node, n
}

// mergeMarkers interleaves per-line prefix marker tokens with the
// parsed block children they introduced, preserving the children's
// relative order and source position. A nil marker (lazy continuation)
// contributes nothing. A marker whose line was absorbed as a
// continuation line of the previous child (e.g. a second line joined
// into the same multi-line paragraph via its own internal line-break
// token) is dropped: that child already accounts for the marker's
// bytes internally, and re-emitting it here would duplicate them.
func mergeMarkers(markers []*Node, children []*Node) []*Node {
	out := make([]*Node, 0, len(markers)+len(children))
	ci := 0
	for _, m := range markers {
		if m != nil && ci > 0 && children[ci-1].Span().End > m.Span().Start {
			continue
		}
		if m != nil {
			out = append(out, m)
		}
		for ci < len(children) && children[ci].Span().Start <= markerEndOr(m) {
			out = append(out, children[ci])
			ci++
		}
	}
	out = append(out, children[ci:]...)
	return out
}

func markerEndOr(m *Node) int {
	if m == nil {
		return -1
	}
	return m.Span().End
}

// isLazyContinuation reports whether line can continue a paragraph
// inside a container without repeating the container's own marker.
func (p *blockParser) isLazyContinuation(line contentLine) bool {
	raw := line.bytes(p.source)
	if isBlankLine(raw) {
		return false
	}
	if p.tryThematicBreak(line) != nil {
		return false
	}
	if lvl, _ := p.tryATXHeading(line); lvl != nil {
		return false
	}
	cols, bytesConsumed := leadingIndent(raw)
	if raw[bytesConsumed] == '>' {
		return false
	}
	if _, ok := parseListMarker(raw[bytesConsumed:], cols); ok {
		return false
	}
	return cols < 4
}

// --- Fenced div --------------------------------------------------------

func (p *blockParser) tryFencedDiv(lines []contentLine, depth int) (*Node, int) {
	raw := lines[0].bytes(p.source)
	cols, bytesConsumed := leadingIndent(raw)
	if cols >= 4 {
		return nil, 0
	}
	rest := raw[bytesConsumed:]
	count := fenceRun(rest, ':')
	if count < 3 {
		return nil, 0
	}

	var inner []contentLine
	n := 1
	closeLine := -1
	for n < len(lines) {
		r := lines[n].bytes(p.source)
		c, b := leadingIndent(r)
		if c < 4 {
			tail := r[b:]
			cnt := fenceRun(tail, ':')
			if cnt >= count && isBlankLine(tail[cnt:]) {
				closeLine = n
				break
			}
		}
		inner = append(inner, lines[n])
		n++
	}

	children := p.parseBlockChildren(inner, depth+1)
	end := lines[n-1].end
	consumed := n
	if closeLine >= 0 {
		end = lines[closeLine].end
		consumed = closeLine + 1
	}
	node := &Node{
		kind:     FencedDiv,
		children: children,
		n:        count,
		char:     ':',
		span:     Span{Start: lines[0].start, End: end},
	}
	return node, consumed
}

// --- Lists -------------------------------------------------------------

// listMarker describes a recognized bullet or ordered list marker.
type listMarker struct {
	char       byte // '-', '*', '+', '.', ')'
	ordered    bool
	start      int // ordered-list start number
	markerEnd  int // byte index just past the marker and following space(s)
	contentCol int // column at which item content begins
}

func parseListMarker(raw []byte, baseCols int) (listMarker, bool) {
	i := 0
	for i < len(raw) && raw[i] == ' ' {
		i++
	}
	if i >= len(raw) {
		return listMarker{}, false
	}
	var m listMarker
	switch raw[i] {
	case '-', '*', '+':
		m.char = raw[i]
		i++
	default:
		digits := 0
		for i+digits < len(raw) && raw[i+digits] >= '0' && raw[i+digits] <= '9' {
			digits++
		}
		if digits == 0 || digits > 9 {
			return listMarker{}, false
		}
		if i+digits >= len(raw) || (raw[i+digits] != '.' && raw[i+digits] != ')') {
			return listMarker{}, false
		}
		n := 0
		for k := 0; k < digits; k++ {
			n = n*10 + int(raw[i+k]-'0')
		}
		m.ordered = true
		m.start = n
		m.char = raw[i+digits]
		i += digits + 1
	}
	markerCols := baseCols + i
	spaces := 0
	for i+spaces < len(raw) && raw[i+spaces] == ' ' {
		spaces++
		if spaces == 5 {
			break
		}
	}
	if i+spaces >= len(raw) || isBlankLine(raw[i:]) {
		// Blank or space-exhausted item: content starts one column
		// after the marker.
		m.markerEnd = i
		m.contentCol = markerCols + 1
		return m, true
	}
	if spaces == 0 {
		return listMarker{}, false
	}
	m.markerEnd = i + spaces
	m.contentCol = markerCols + spaces
	return m, true
}

func (p *blockParser) tryList(lines []contentLine, depth int) (*Node, int) {
	raw := lines[0].bytes(p.source)
	baseCols, _ := leadingIndent(raw)
	if baseCols >= 4 {
		return nil, 0
	}
	idx := byteIndexAtColumn(raw, baseCols)
	first, ok := parseListMarker(raw[idx:], baseCols)
	if !ok {
		return nil, 0
	}

	var items []*Node
	n := 0
	blankBetween := false
	loose := false
	for n < len(lines) {
		if p.tryThematicBreak(lines[n]) != nil {
			break
		}
		raw := lines[n].bytes(p.source)
		cols, _ := leadingIndent(raw)
		if cols >= 4 {
			break
		}
		idx := byteIndexAtColumn(raw, cols)
		m, ok := parseListMarker(raw[idx:], cols)
		if !ok || m.char != first.char || m.ordered != first.ordered {
			if blankBetween && n > 0 {
				break
			}
			break
		}
		item, consumed, itemLoose := p.parseListItem(lines[n:], m, depth)
		if itemLoose {
			loose = true
		}
		items = append(items, item)
		n += consumed
		blankBetween = n < len(lines) && lines[n].blank(p.source)
		if blankBetween {
			// Blank lines between items do not end the list; a
			// non-matching marker, or no marker, after the gap ends it.
			la := n
			for la < len(lines) && lines[la].blank(p.source) {
				la++
			}
			if la >= len(lines) {
				n = la
				break
			}
			nraw := lines[la].bytes(p.source)
			ncols, _ := leadingIndent(nraw)
			nidx := byteIndexAtColumn(nraw, ncols)
			if nm, ok := parseListMarker(nraw[nidx:], ncols); !ok || nm.char != first.char || nm.ordered != first.ordered || ncols >= 4 {
				n = la
				break
			}
			loose = true
			n = la
		}
	}
	if n == 0 {
		return nil, 0
	}

	for _, it := range items {
		it.loose = loose
	}
	node := &Node{
		kind:     List,
		children: items,
		n:        first.start,
		char:     first.char,
		loose:    loose,
	}
	if !first.ordered {
		node.n = -1
	}
	node.span = spanOfChildren(items, lines[n-1].end)
	return node, n
}

func (p *blockParser) parseListItem(lines []contentLine, m listMarker, depth int) (*Node, int, bool) {
	markerStart := lines[0].start
	markerByteEnd := byteIndexAtColumn(lines[0].bytes(p.source), 0) + m.markerEnd
	marker := newToken(ListMarker, Span{Start: markerStart, End: markerStart + markerByteEnd})

	var inner []contentLine
	inner = append(inner, contentLine{
		start:      markerStart + markerByteEnd,
		end:        lines[0].end,
		newlineEnd: lines[0].newlineEnd,
	})

	n := 1
	sawBlank := false
	containedBlank := false
	for n < len(lines) {
		raw := lines[n].bytes(p.source)
		if isBlankLine(raw) {
			sawBlank = true
			containedBlank = true
			inner = append(inner, lines[n])
			n++
			continue
		}
		cols, _ := leadingIndent(raw)
		if cols >= m.contentCol {
			if sawBlank {
				containedBlank = true
			}
			sawBlank = false
			idx := byteIndexAtColumn(raw, m.contentCol)
			inner = append(inner, contentLine{
				start:      lines[n].start + idx,
				end:        lines[n].end,
				newlineEnd: lines[n].newlineEnd,
			})
			n++
			continue
		}
		if sawBlank {
			break
		}
		if p.isLazyContinuation(lines[n]) {
			inner = append(inner, lines[n])
			n++
			continue
		}
		break
	}
	// Trim the trailing blank lines that only separate this item from
	// whatever follows it.
	for len(inner) > 0 && inner[len(inner)-1].blank(p.source) && n > 1 {
		if !lines[n-1].blank(p.source) {
			break
		}
		inner = inner[:len(inner)-1]
		n--
	}

	children := p.parseBlockChildren(inner, depth+1)
	node := &Node{
		kind:     ListItem,
		children: append([]*Node{marker}, children...),
		indent:   m.contentCol,
		char:     m.char,
		n:        m.start,
	}
	if !m.ordered {
		node.n = -1
	}
	node.span = Span{Start: markerStart, End: lines[n-1].end}
	return node, n, containedBlank
}

// --- Definition lists ----------------------------------------------------

func (p *blockParser) tryDefinitionList(lines []contentLine, depth int) (*Node, int) {
	if len(lines) < 2 {
		return nil, 0
	}
	if lines[0].blank(p.source) {
		return nil, 0
	}
	if cols, _ := leadingIndent(lines[0].bytes(p.source)); cols >= 4 {
		return nil, 0
	}
	next := lines[1]
	if !isDefinitionMarker(next.bytes(p.source)) {
		return nil, 0
	}

	var items []*Node
	i := 0
	for i < len(lines) {
		if lines[i].blank(p.source) {
			break
		}
		if i+1 >= len(lines) || !isDefinitionMarker(lines[i+1].bytes(p.source)) {
			break
		}
		term := &Node{
			kind:     DefinitionTerm,
			children: p.parseInline(lines[i]),
			span:     Span{Start: lines[i].start, End: lines[i].end},
		}
		j := i + 1
		var bodies []*Node
		for j < len(lines) && isDefinitionMarker(lines[j].bytes(p.source)) {
			raw := lines[j].bytes(p.source)
			cols, bytesConsumed := leadingIndent(raw)
			_ = cols
			markerEnd := bytesConsumed + 1
			for markerEnd < len(raw) && raw[markerEnd] == ' ' {
				markerEnd++
			}
			var bodyInner []contentLine
			bodyInner = append(bodyInner, contentLine{
				start:      lines[j].start + markerEnd,
				end:        lines[j].end,
				newlineEnd: lines[j].newlineEnd,
			})
			k := j + 1
			for k < len(lines) {
				raw := lines[k].bytes(p.source)
				if isBlankLine(raw) || isDefinitionMarker(raw) {
					break
				}
				cols, _ := leadingIndent(raw)
				if cols < 4 && !p.isLazyContinuation(lines[k]) {
					break
				}
				bodyInner = append(bodyInner, lines[k])
				k++
			}
			body := &Node{
				kind:     DefinitionBody,
				children: p.parseBlockChildren(bodyInner, depth+1),
			}
			body.span = spanOfChildren(body.children, lines[k-1].end)
			bodies = append(bodies, body)
			j = k
		}
		item := &Node{
			kind:     DefinitionItem,
			children: append([]*Node{term}, bodies...),
		}
		item.span = spanOfChildren(item.children, lines[j-1].end)
		items = append(items, item)
		i = j
		for i < len(lines) && lines[i].blank(p.source) {
			i++
		}
	}
	if len(items) == 0 {
		return nil, 0
	}
	node := &Node{kind: DefinitionList, children: items}
	node.span = spanOfChildren(items, lines[i-1].end)
	return node, i
}

func isDefinitionMarker(raw []byte) bool {
	cols, bytesConsumed := leadingIndent(raw)
	return cols < 4 && bytesConsumed < len(raw) && raw[bytesConsumed] == ':'
}

// --- Fenced code and math blocks ----------------------------------------

func (p *blockParser) tryFencedCode(lines []contentLine) (*Node, int) {
	return p.tryFence(lines, FencedCode, '`', '~')
}

func (p *blockParser) tryMathBlock(lines []contentLine) (*Node, int) {
	return p.tryFence(lines, MathBlock, '$', 0)
}

func (p *blockParser) tryFence(lines []contentLine, kind SyntaxKind, chars ...byte) (*Node, int) {
	raw := lines[0].bytes(p.source)
	cols, bytesConsumed := leadingIndent(raw)
	if cols >= 4 {
		return nil, 0
	}
	rest := raw[bytesConsumed:]
	var ch byte
	var count int
	for _, c := range chars {
		if c == 0 {
			continue
		}
		if n := fenceRun(rest, c); n >= 3 {
			ch, count = c, n
			break
		}
	}
	if count == 0 {
		return nil, 0
	}
	infoRaw := rest[count:]
	if ch == '`' && bytes.IndexByte(infoRaw, '`') >= 0 {
		return nil, 0
	}

	var children []*Node
	markerStart := lines[0].start + bytesConsumed
	children = append(children, newToken(FenceMarker, Span{Start: markerStart, End: markerStart + count}))
	if trimmed := strings.TrimSpace(string(infoRaw)); trimmed != "" {
		infoStart := lines[0].start + bytesConsumed + count
		for infoStart < lines[0].end && (p.source[infoStart] == ' ' || p.source[infoStart] == '\t') {
			infoStart++
		}
		infoEnd := lines[0].end
		for infoEnd > infoStart && (p.source[infoEnd-1] == ' ' || p.source[infoEnd-1] == '\t') {
			infoEnd--
		}
		children = append(children, &Node{kind: InfoString, span: Span{Start: infoStart, End: infoEnd}})
	}

	n := 1
	closeLine := -1
	for n < len(lines) {
		r := lines[n].bytes(p.source)
		c, b := leadingIndent(r)
		if c < 4 {
			tail := r[b:]
			if cnt := fenceRun(tail, ch); cnt >= count && isBlankLine(tail[cnt:]) {
				closeLine = n
				break
			}
		}
		n++
	}
	bodyEndLine := n
	if closeLine >= 0 {
		bodyEndLine = closeLine
	}
	if bodyEndLine > 1 {
		children = append(children, newToken(Text, Span{
			Start: lines[1].start,
			End:   lines[bodyEndLine-1].end,
		}))
	}

	consumed := bodyEndLine
	end := lines[bodyEndLine-1].end
	if closeLine >= 0 {
		consumed = closeLine + 1
		end = lines[closeLine].end
	} else if bodyEndLine == 0 {
		consumed = 1
		end = lines[0].end
	}
	node := &Node{
		kind:     kind,
		children: children,
		indent:   cols,
		n:        count,
		char:     ch,
		span:     Span{Start: lines[0].start, End: end},
	}
	return node, consumed
}

// --- Indented code -------------------------------------------------------

func (p *blockParser) tryIndentedCode(lines []contentLine, depth int) (*Node, int) {
	_ = depth
	cols, _ := leadingIndent(lines[0].bytes(p.source))
	if cols < 4 {
		return nil, 0
	}
	n := 0
	lastNonBlank := -1
	for n < len(lines) {
		raw := lines[n].bytes(p.source)
		if isBlankLine(raw) {
			n++
			continue
		}
		c, _ := leadingIndent(raw)
		if c < 4 {
			break
		}
		lastNonBlank = n
		n++
	}
	if lastNonBlank < 0 {
		return nil, 0
	}
	node := &Node{
		kind:   IndentedCode,
		indent: 4,
		span:   Span{Start: lines[0].start, End: lines[lastNonBlank].end},
	}
	return node, lastNonBlank + 1
}

// --- Thematic break and ATX heading ---------------------------------------

func (p *blockParser) tryThematicBreak(line contentLine) *Node {
	cols, bytesConsumed := leadingIndent(line.bytes(p.source))
	if cols >= 4 {
		return nil
	}
	if !isThematicBreak(line.bytes(p.source)[bytesConsumed:]) {
		return nil
	}
	return newToken(ThematicBreak, Span{Start: line.start, End: line.end})
}

func (p *blockParser) tryATXHeading(line contentLine) (*Node, int) {
	raw := line.bytes(p.source)
	cols, bytesConsumed := leadingIndent(raw)
	if cols >= 4 {
		return nil, 0
	}
	level := atxHeadingLevel(raw[bytesConsumed:])
	if level == 0 {
		return nil, 0
	}
	markerStart := line.start + bytesConsumed
	markerEnd := markerStart + level
	contentStart := markerEnd
	for contentStart < line.end && (p.source[contentStart] == ' ' || p.source[contentStart] == '\t') {
		contentStart++
	}
	contentEnd := line.end
	for contentEnd > contentStart && (p.source[contentEnd-1] == ' ' || p.source[contentEnd-1] == '\t' || p.source[contentEnd-1] == '#') {
		contentEnd--
	}
	if contentEnd < contentStart {
		contentEnd = contentStart
	}
	marker := newToken(ATXHeadingMarker, Span{Start: markerStart, End: markerEnd})
	content := &Node{
		kind:     HeadingContent,
		children: p.parseInline(contentLine{start: contentStart, end: contentEnd}),
		span:     Span{Start: contentStart, End: contentEnd},
	}
	node := &Node{
		kind:     HEADING,
		n:        level,
		children: []*Node{marker, content},
		span:     Span{Start: line.start, End: line.end},
	}
	return node, 1
}

// --- HTML comment (block level) -------------------------------------------

func (p *blockParser) tryHTMLComment(lines []contentLine) (*Node, int) {
	raw := lines[0].bytes(p.source)
	cols, bytesConsumed := leadingIndent(raw)
	if cols >= 4 {
		return nil, 0
	}
	if !htmlscan.IsCommentStart(raw[bytesConsumed:]) {
		return nil, 0
	}
	n := 0
	for n < len(lines) {
		if idx := bytes.Index(lines[n].bytes(p.source), []byte("-->")); idx >= 0 {
			return newToken(HTMLComment, Span{Start: lines[0].start, End: lines[n].end}), n + 1
		}
		n++
	}
	return nil, 0
}

// --- Line blocks -----------------------------------------------------------

func (p *blockParser) tryLineBlock(lines []contentLine) (*Node, int) {
	raw := lines[0].bytes(p.source)
	cols, bytesConsumed := leadingIndent(raw)
	if cols >= 4 || bytesConsumed >= len(raw) || raw[bytesConsumed] != '|' {
		return nil, 0
	}
	var children []*Node
	n := 0
	for n < len(lines) {
		r := lines[n].bytes(p.source)
		c, b := leadingIndent(r)
		if c >= 4 || b >= len(r) || r[b] != '|' {
			break
		}
		contentStart := b + 1
		if contentStart < len(r) && r[contentStart] == ' ' {
			contentStart++
		}
		marker := newToken(Pipe, Span{Start: lines[n].start + b, End: lines[n].start + contentStart})
		line := &Node{
			kind:     LineBlockLine,
			children: append([]*Node{marker}, p.parseInline(contentLine{start: lines[n].start + contentStart, end: lines[n].end})...),
			span:     Span{Start: lines[n].start, End: lines[n].end},
		}
		children = append(children, line)
		n++
	}
	if n == 0 {
		return nil, 0
	}
	node := &Node{kind: LineBlock, children: children}
	node.span = spanOfChildren(children, lines[n-1].end)
	return node, n
}

// --- Pipe tables -------------------------------------------------------------

func (p *blockParser) tryPipeTable(lines []contentLine) (*Node, int) {
	if len(lines) < 2 {
		return nil, 0
	}
	header := lines[0].bytes(p.source)
	if bytes.IndexByte(header, '|') < 0 {
		return nil, 0
	}
	delim := lines[1].bytes(p.source)
	if !isPipeDelimiterRow(delim) {
		return nil, 0
	}

	headerRow := p.parsePipeRow(lines[0], PipeTableRow)
	delimRow := p.parsePipeRow(lines[1], PipeTableDelimiterRow)
	children := []*Node{headerRow, delimRow}

	n := 2
	for n < len(lines) {
		raw := lines[n].bytes(p.source)
		if isBlankLine(raw) || bytes.IndexByte(raw, '|') < 0 {
			break
		}
		children = append(children, p.parsePipeRow(lines[n], PipeTableRow))
		n++
	}
	node := &Node{kind: PipeTable, children: children}
	node.span = spanOfChildren(children, lines[n-1].end)
	return node, n
}

func isPipeDelimiterRow(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	sawColonOrDash := false
	for _, b := range trimmed {
		switch b {
		case '|', ' ', '\t':
		case '-', ':':
			sawColonOrDash = true
		default:
			return false
		}
	}
	return sawColonOrDash
}

func (p *blockParser) parsePipeRow(line contentLine, kind SyntaxKind) *Node {
	raw := line.bytes(p.source)
	var cells []*Node
	cellStart := line.start
	i := 0
	inCode := false
	for i < len(raw) {
		switch raw[i] {
		case '\\':
			i++
		case '`':
			inCode = !inCode
		case '|':
			if !inCode {
				cellEnd := line.start + i
				cells = append(cells, p.pipeCell(kind, cellStart, cellEnd))
				cellStart = cellEnd + 1
			}
		}
		i++
	}
	cells = append(cells, p.pipeCell(kind, cellStart, line.end))
	return &Node{kind: kind, children: cells, span: Span{Start: line.start, End: line.end}}
}

func (p *blockParser) pipeCell(rowKind SyntaxKind, start, end int) *Node {
	for start < end && (p.source[start] == ' ' || p.source[start] == '\t') {
		start++
	}
	for end > start && (p.source[end-1] == ' ' || p.source[end-1] == '\t') {
		end--
	}
	if rowKind == PipeTableDelimiterRow {
		return &Node{kind: PipeTableCell, span: Span{Start: start, End: end}}
	}
	return &Node{
		kind:     PipeTableCell,
		children: p.parseInline(contentLine{start: start, end: end}),
		span:     Span{Start: start, End: end},
	}
}

// --- Paragraph ---------------------------------------------------------------

func (p *blockParser) parseParagraph(lines []contentLine) (*Node, int) {
	n := 0
	for n < len(lines) {
		raw := lines[n].bytes(p.source)
		if isBlankLine(raw) {
			break
		}
		if n > 0 {
			cols, bytesConsumed := leadingIndent(raw)
			if cols < 4 {
				if ch := setextUnderlineChar(raw[bytesConsumed:]); ch != 0 {
					return p.closeSetextParagraph(lines, n, ch)
				}
			}
			if p.tryThematicBreak(lines[n]) != nil {
				break
			}
			if lvl, _ := p.tryATXHeading(lines[n]); lvl != nil {
				break
			}
			if cols >= 4 {
				break
			}
			if idx := byteIndexAtColumn(raw, cols); idx < len(raw) && (raw[idx] == '>' || raw[idx] == '#') {
				break
			}
			if _, ok := parseListMarker(raw[bytesConsumed:], cols); ok {
				break
			}
		}
		n++
	}
	if n == 0 {
		n = 1
	}
	return p.onCloseParagraph(lines[:n]), n
}

func (p *blockParser) closeSetextParagraph(lines []contentLine, underlineIdx int, ch byte) (*Node, int) {
	textLines := lines[:underlineIdx]
	underline := lines[underlineIdx]
	level := 1
	if ch == '-' {
		level = 2
	}
	content := &Node{
		kind:     HeadingContent,
		children: p.parseInlineMultiline(textLines),
		span:     spanOfLines(textLines),
	}
	marker := newToken(SetextHeadingUnderline, Span{Start: underline.start, End: underline.end})
	node := &Node{
		kind:     HEADING,
		n:        level,
		children: []*Node{content, marker},
		span:     Span{Start: textLines[0].start, End: underline.end},
	}
	return node, underlineIdx + 1
}

func spanOfLines(lines []contentLine) Span {
	if len(lines) == 0 {
		return NullSpan()
	}
	return Span{Start: lines[0].start, End: lines[len(lines)-1].end}
}

// onCloseParagraph builds the PARAGRAPH node and, per spec.md's
// link-reference-definition recovery rule, peels any "[label]: dest
// "title"" prefix lines from the front of the paragraph. The result is
// the lone definition when nothing else remains, or otherwise a
// synthetic DOCUMENT group holding the definitions followed by the
// paragraph, in source order.
func (p *blockParser) onCloseParagraph(lines []contentLine) *Node {
	var refDefs []*Node
	for len(lines) > 0 {
		def, rest, ok := p.tryLinkReferenceDefinition(lines)
		if !ok {
			break
		}
		refDefs = append(refDefs, def)
		lines = rest
	}
	if len(lines) == 0 {
		if len(refDefs) == 1 {
			return refDefs[0]
		}
		group := &Node{kind: DOCUMENT, children: refDefs}
		group.span = spanOfChildren(refDefs, 0)
		return group
	}
	para := &Node{
		kind:     PARAGRAPH,
		children: p.parseInlineMultiline(lines),
		span:     spanOfLines(lines),
	}
	if len(refDefs) == 0 {
		return para
	}
	all := append(refDefs, para)
	group := &Node{kind: DOCUMENT, children: all}
	group.span = spanOfChildren(all, 0)
	return group
}

// tryLinkReferenceDefinition recognizes a single "[label]: dest" line
// at the front of lines. Everything after the colon on that line, a
// title included, becomes part of the definition's span; a title on the
// following line is not recognized.
func (p *blockParser) tryLinkReferenceDefinition(lines []contentLine) (*Node, []contentLine, bool) {
	raw := lines[0].bytes(p.source)
	cols, bytesConsumed := leadingIndent(raw)
	if cols >= 4 || bytesConsumed >= len(raw) || raw[bytesConsumed] != '[' {
		return nil, lines, false
	}
	rest := raw[bytesConsumed:]
	closeIdx := bytes.IndexByte(rest, ']')
	if closeIdx < 0 || closeIdx+1 >= len(rest) || rest[closeIdx+1] != ':' {
		return nil, lines, false
	}
	label := string(rest[1:closeIdx])
	if strings.TrimSpace(label) == "" {
		return nil, lines, false
	}
	destStart := closeIdx + 2
	for destStart < len(rest) && (rest[destStart] == ' ' || rest[destStart] == '\t') {
		destStart++
	}
	if destStart >= len(rest) {
		return nil, lines, false
	}
	destEnd := len(rest)
	for destEnd > destStart && (rest[destEnd-1] == ' ' || rest[destEnd-1] == '\t') {
		destEnd--
	}
	end := lines[0].start + bytesConsumed + destEnd
	node := &Node{
		kind: LinkReferenceDefinition,
		ref:  normalizeLabel(label),
		span: Span{Start: lines[0].start, End: end},
	}
	return node, lines[1:], true
}

// parseInline parses the inline content of a single physical line.
func (p *blockParser) parseInline(line contentLine) []*Node {
	return parseInlines(p.source, line.start, line.end, p.cfg)
}

// parseInlineMultiline parses inline content spanning several physical
// lines, inserting a SoftLineBreak (or HardLineBreak for a
// trailing-backslash/two-space break) token between them.
func (p *blockParser) parseInlineMultiline(lines []contentLine) []*Node {
	var out []*Node
	for i, ln := range lines {
		out = append(out, p.parseInline(ln)...)
		if i < len(lines)-1 {
			breakKind := SoftLineBreak
			if p.hasHardBreakMarker(ln) {
				breakKind = HardLineBreak
			}
			out = append(out, newToken(breakKind, Span{Start: ln.end, End: lines[i+1].start}))
		}
	}
	return out
}

func (p *blockParser) hasHardBreakMarker(line contentLine) bool {
	raw := line.bytes(p.source)
	trimmed := bytes.TrimRight(raw, " ")
	if len(trimmed) > 0 && trimmed[len(trimmed)-1] == '\\' {
		return true
	}
	return len(raw)-len(trimmed) >= 2
}
