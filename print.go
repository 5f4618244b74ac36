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
)

// Format parses source and renders it back out as Quarto-flavored
// Markdown according to cfg. Format never fails: a malformed external
// formatter invocation or an unrecognized construct degrades to
// reproducing the original text rather than returning an error.
func Format(source []byte, cfg *Config) string {
	cfg = cfg.withDefaults()
	tree := Parse(source, cfg)
	p := &printer{tree: tree, cfg: cfg, refs: NewReferenceMap(tree)}
	p.printBlocks(tree.Root.Children(), nil)
	p.ensureLineEnded()
	return p.out.String()
}

// printer renders a parsed [Tree] back to text. It threads a stack of
// container-prefix strings ("> ", "  ", "| "); every emitted line is
// preceded by the current stack joined together.
type printer struct {
	tree *Tree
	cfg  *Config
	refs *ReferenceMap

	out   strings.Builder
	stack []string // container prefixes, outermost first

	lineWidth int    // current output line's column count
	lineEmpty bool   // true until the first byte of the current line is written
}

func (p *printer) prefix() string {
	return strings.Join(p.stack, "")
}

// writeRaw appends s to the output, tracking column width for fill
// decisions. s must not contain a newline.
func (p *printer) writeRaw(s string) {
	if s == "" {
		return
	}
	if p.lineEmpty {
		p.out.WriteString(p.prefix())
		p.lineWidth = len(p.prefix())
		p.lineEmpty = false
	}
	p.out.WriteString(s)
	p.lineWidth += len(s)
}

func (p *printer) finishLine() {
	if p.lineEmpty {
		p.out.WriteString(strings.TrimRight(p.prefix(), " "))
	}
	p.out.WriteByte('\n')
	p.lineWidth = 0
	p.lineEmpty = true
}

// ensureLineEnded finishes the current line only if content has been
// written to it since the last finishLine. Call sites that follow a
// block whose own printing already finished its last line use this
// instead of finishLine to avoid emitting a spurious blank line.
func (p *printer) ensureLineEnded() {
	if !p.lineEmpty {
		p.finishLine()
	}
}

func (p *printer) blankLine() {
	p.finishLine()
}

func (p *printer) pushPrefix(s string) { p.stack = append(p.stack, s) }
func (p *printer) popPrefix()          { p.stack = p.stack[:len(p.stack)-1] }

// printBlocks renders a sequence of sibling block nodes. A Newline
// trivia child supplies its own blank-line separator (see printBlock);
// for any other adjacent pair, printBlocks only ends the previous
// block's line; it does not insert a blank one, so two blocks with no
// blank line between them in the source stay adjacent in the output.
func (p *printer) printBlocks(nodes []*Node, parent *Node) {
	for i, n := range nodes {
		if i > 0 && n.Kind() != Newline {
			p.ensureLineEnded()
		}
		p.printBlock(n)
	}
}

func (p *printer) printBlock(n *Node) {
	switch n.Kind() {
	case PARAGRAPH:
		p.printParagraph(n)
	case HEADING:
		p.printHeading(n)
	case ThematicBreak:
		p.writeRaw("---")
		p.finishLine()
	case BlockQuote:
		p.printBlockQuote(n)
	case List:
		p.printList(n)
	case DefinitionList:
		p.printDefinitionList(n)
	case FencedDiv:
		p.printFencedDiv(n)
	case FencedCode:
		p.printFence(n, "")
	case MathBlock:
		p.printFence(n, "")
	case IndentedCode:
		p.printIndentedCode(n)
	case LineBlock:
		p.printLineBlock(n)
	case PipeTable:
		p.printPipeTable(n)
	case Frontmatter:
		p.printFrontmatter(n)
	case HTMLComment:
		p.printVerbatim(n)
	case LinkReferenceDefinition:
		p.printLinkReferenceDefinition(n)
	case Newline:
		p.blankLine()
	case DOCUMENT:
		// A paragraph preceded by recovered link reference definitions
		// is wrapped in a synthetic DOCUMENT group; flatten it here.
		p.printBlocks(n.Children(), nil)
	default:
		p.printVerbatim(n)
	}
}

func (p *printer) printVerbatim(n *Node) {
	text := p.tree.NodeText(n)
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			p.finishLine()
		}
		p.writeRaw(strings.TrimRight(line, "\r"))
	}
}

func (p *printer) printFrontmatter(n *Node) {
	text := p.tree.NodeText(n)
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		p.printVerbatim(n)
		return
	}
	body := strings.Join(lines[1:len(lines)-1], "\n")
	if fmtCfg, ok := p.cfg.Formatters["yaml"]; ok && fmtCfg.Enabled {
		if formatted, err := runExternalFormatter(fmtCfg, p.cfg.FormatterTimeout, body); err == nil {
			body = strings.TrimRight(formatted, "\n")
		} else if p.cfg.OnWarning != nil {
			p.cfg.OnWarning(FormatWarning{Lang: "yaml", Err: err})
		}
	}
	p.writeRaw(lines[0])
	p.finishLine()
	if body != "" {
		for _, line := range strings.Split(body, "\n") {
			p.writeRaw(line)
			p.finishLine()
		}
	}
	p.writeRaw(lines[len(lines)-1])
	p.finishLine()
}

func (p *printer) printLinkReferenceDefinition(n *Node) {
	p.printVerbatim(n)
	p.finishLine()
}

// printHeading renders both ATX and setext headings as ATX, unless
// Config.PreserveSetext is set: a setext heading then stays setext, with
// its underline character kept and its underline as wide as the heading
// text (at least three characters).
func (p *printer) printHeading(n *Node) {
	content := n.FirstChildOfKind(HeadingContent)
	underline := n.FirstChildOfKind(SetextHeadingUnderline)
	if underline != nil && p.cfg.PreserveSetext {
		p.printInlineSequence(content.Children())
		width := p.lastLineLen() - len(p.prefix())
		p.finishLine()
		ch := "="
		if p.tree.NodeText(underline) != "" && p.tree.NodeText(underline)[0] == '-' {
			ch = "-"
		}
		p.writeRaw(strings.Repeat(ch, max(3, width)))
		p.finishLine()
		return
	}
	p.writeRaw(strings.Repeat("#", n.HeadingLevel()) + " ")
	p.printInlineSequence(content.Children())
	p.finishLine()
}

func (p *printer) lastLineLen() int { return p.lineWidth }

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (p *printer) printParagraph(n *Node) {
	p.fillInlines(n.Children())
	p.finishLine()
}

func (p *printer) printBlockQuote(n *Node) {
	p.pushPrefix("> ")
	p.printBlocks(blockChildrenOnly(n), n)
	p.popPrefix()
}

// blockChildrenOnly filters out marker/trivia tokens a container holds
// directly (e.g. a ListItem's ListMarker), leaving only structural
// content children to be printed as a block sequence.
func blockChildrenOnly(n *Node) []*Node {
	var out []*Node
	for _, c := range n.Children() {
		if (c.Kind().IsBlock() && c.Kind() != ListMarker) || c.Kind() == DOCUMENT {
			out = append(out, c)
		}
	}
	return out
}

func (p *printer) printList(n *Node) {
	items := n.ChildrenOfKind(ListItem)
	num := n.ListStart()
	if num < 0 {
		num = 1
	}
	for i, item := range items {
		if i > 0 {
			if !n.IsTightList() {
				p.blankLine()
			}
		}
		itemNum := num
		if !p.cfg.RenumberOrderedLists {
			if own := item.ListStart(); own >= 0 {
				itemNum = own
			}
		}
		p.printListItem(item, n.IsOrderedList(), itemNum)
		num++
	}
}

func (p *printer) printListItem(item *Node, ordered bool, num int) {
	var marker string
	if ordered {
		marker = itoa(num) + "."
	} else {
		marker = "-"
	}
	marker += " "
	p.writeRaw(marker)
	p.pushPrefix(strings.Repeat(" ", len(marker)))
	children := blockChildrenOnly(item)
	for i, c := range children {
		if i > 0 {
			// Back up: first line of item already carries the marker,
			// so only insert the blank-line separator for loose items
			// after the first child.
			if !item.IsTightList() {
				p.blankLine()
			}
		}
		if i == 0 {
			// Suppress the prefix for the very first emitted line
			// since the marker already occupies that column width.
			p.printBlockInline(c)
		} else {
			p.printBlock(c)
		}
	}
	p.popPrefix()
	p.ensureLineEnded()
}

// printBlockInline prints a block's first line without re-emitting the
// container prefix (the marker already occupies that space).
func (p *printer) printBlockInline(n *Node) {
	p.printBlock(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func (p *printer) printDefinitionList(n *Node) {
	for i, item := range n.Children() {
		if i > 0 {
			p.blankLine()
		}
		term := item.FirstChildOfKind(DefinitionTerm)
		p.printInlineSequence(term.Children())
		p.finishLine()
		for _, body := range item.ChildrenOfKind(DefinitionBody) {
			p.writeRaw(": ")
			p.pushPrefix("  ")
			children := blockChildrenOnly(body)
			for j, c := range children {
				if j > 0 {
					p.blankLine()
				}
				if j == 0 {
					p.printBlockInline(c)
				} else {
					p.printBlock(c)
				}
			}
			p.popPrefix()
			p.ensureLineEnded()
		}
	}
}

func (p *printer) printFencedDiv(n *Node) {
	fence := strings.Repeat(":", max(3, n.FenceCount()))
	opener := p.tree.NodeText(n)
	if i := strings.IndexByte(opener, '\n'); i >= 0 {
		opener = opener[:i]
	}
	attrs := strings.TrimLeft(strings.TrimLeft(opener, " \t"), ":")
	p.writeRaw(fence + strings.TrimRight(attrs, " \t\r"))
	p.finishLine()
	p.printBlocks(blockChildrenOnly(n), n)
	p.writeRaw(fence)
	p.finishLine()
}

func (p *printer) printFence(n *Node, indent string) {
	fenceCh := string(n.FenceChar())
	fence := strings.Repeat(fenceCh, max(3, n.FenceCount()))
	p.writeRaw(fence)
	if info := n.InfoString(); info != nil {
		p.writeRaw(p.tree.NodeText(info))
	}
	p.finishLine()

	body := fenceBody(n, p.tree.Source)
	lang := ""
	if info := n.InfoString(); info != nil {
		lang = strings.Fields(p.tree.NodeText(info))[0]
	}
	if fmtCfg, ok := p.cfg.Formatters[lang]; ok && fmtCfg.Enabled && n.Kind() == FencedCode {
		if formatted, err := runExternalFormatter(fmtCfg, p.cfg.FormatterTimeout, body); err == nil {
			body = strings.TrimRight(formatted, "\n")
		} else if p.cfg.OnWarning != nil {
			p.cfg.OnWarning(FormatWarning{Lang: lang, Err: err})
		}
	}
	if body != "" {
		for _, line := range strings.Split(body, "\n") {
			p.writeRaw(strings.TrimRight(line, "\r"))
			p.finishLine()
		}
	}
	p.writeRaw(fence)
	p.finishLine()
}

func fenceBody(n *Node, source []byte) string {
	text := n.FirstChildOfKind(Text)
	if text == nil {
		return ""
	}
	return text.Text(source)
}

func (p *printer) printIndentedCode(n *Node) {
	text := p.tree.NodeText(n)
	for _, line := range strings.Split(text, "\n") {
		stripped := string(stripLeadingSpaces([]byte(line), 4))
		p.writeRaw(stripped)
		p.finishLine()
	}
}

func (p *printer) printLineBlock(n *Node) {
	for _, line := range n.Children() {
		p.writeRaw("| ")
		content := line.Children()[1:]
		p.printInlineSequence(content)
		p.finishLine()
	}
}

func (p *printer) printPipeTable(n *Node) {
	rows := n.Children()
	widths := pipeColumnWidths(rows, p.tree.Source)
	for ri, row := range rows {
		p.writeRaw("|")
		for ci, cell := range row.Children() {
			w := 3
			if ci < len(widths) {
				w = widths[ci]
			}
			if row.Kind() == PipeTableDelimiterRow {
				spec := strings.TrimSpace(p.tree.NodeText(cell))
				dashes := strings.Repeat("-", w)
				if strings.HasPrefix(spec, ":") {
					dashes = ":" + dashes[1:]
				}
				if strings.HasSuffix(spec, ":") {
					dashes = dashes[:len(dashes)-1] + ":"
				}
				p.writeRaw(" " + dashes + " |")
				continue
			}
			text := p.cellText(cell)
			pad := w - displayWidth(text)
			if pad < 0 {
				pad = 0
			}
			p.writeRaw(" " + text + strings.Repeat(" ", pad) + " |")
		}
		p.finishLine()
		_ = ri
	}
}

func (p *printer) cellText(cell *Node) string {
	var b strings.Builder
	for _, c := range cell.Children() {
		b.WriteString(p.inlineText(c))
	}
	return b.String()
}

func (p *printer) inlineText(n *Node) string {
	if n.IsToken() {
		return p.tree.NodeText(n)
	}
	if n.Kind() == Link || n.Kind() == Image {
		return p.inlineLinkText(n)
	}
	var b strings.Builder
	b.WriteString(inlineOpenDelim(n.Kind()))
	for _, c := range n.Children() {
		b.WriteString(p.inlineText(c))
	}
	b.WriteString(inlineCloseDelim(n.Kind()))
	return b.String()
}

// inlineLinkText renders a Link or Image node, preferring its original
// inline-destination form when present and otherwise falling back to a
// reference form using its normalized label.
func (p *printer) inlineLinkText(n *Node) string {
	var b strings.Builder
	b.WriteString(inlineOpenDelim(n.Kind()))
	dest := n.FirstChildOfKind(LinkDestination)
	title := n.FirstChildOfKind(LinkTitle)
	for _, c := range n.Children() {
		if c.Kind() == LinkDestination || c.Kind() == LinkTitle {
			continue
		}
		b.WriteString(p.inlineText(c))
	}
	b.WriteByte(']')
	switch {
	case dest != nil:
		b.WriteByte('(')
		b.WriteString(p.tree.NodeText(dest))
		if title != nil {
			b.WriteByte(' ')
			b.WriteString(p.tree.NodeText(title))
		}
		b.WriteByte(')')
	case n.Reference() != "":
		b.WriteByte('[')
		b.WriteString(n.Reference())
		b.WriteByte(']')
	}
	return b.String()
}

func pipeColumnWidths(rows []*Node, source []byte) []int {
	var widths []int
	for _, row := range rows {
		if row.Kind() == PipeTableDelimiterRow {
			continue
		}
		for i, cell := range row.Children() {
			w := displayWidth(cell.Text(source))
			for i >= len(widths) {
				widths = append(widths, 3)
			}
			if w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func displayWidth(s string) int { return len([]rune(s)) }
