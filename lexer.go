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

// tabStop is the column width CommonMark assigns to a tab when computing
// indentation: tabs advance to the next multiple of 4.
const tabStop = 4

// leadingIndent returns the indentation of line in both columns (tabs
// expanded to the next tab stop) and bytes consumed reaching that
// column.
func leadingIndent(line []byte) (cols, bytes int) {
	for bytes < len(line) {
		switch line[bytes] {
		case ' ':
			cols++
		case '\t':
			cols += tabStop - cols%tabStop
		default:
			return cols, bytes
		}
		bytes++
	}
	return cols, bytes
}

// byteIndexAtColumn returns the byte offset into line at which column
// target is reached, expanding tabs as leadingIndent does. If target
// falls in the middle of a tab's expansion, the offset just past that
// tab is returned (the partial column cannot be represented in bytes).
func byteIndexAtColumn(line []byte, target int) int {
	col, i := 0, 0
	for i < len(line) && col < target {
		switch line[i] {
		case ' ':
			col++
		case '\t':
			col += tabStop - col%tabStop
		default:
			return i
		}
		i++
	}
	return i
}

// stripLeadingSpaces removes up to n columns of leading space/tab
// indentation from line, expanding tabs and re-emitting any partial tab
// as spaces so byte accounting elsewhere stays simple.
func stripLeadingSpaces(line []byte, n int) []byte {
	if n <= 0 {
		return line
	}
	col, i := 0, 0
	for i < len(line) && col < n {
		switch line[i] {
		case ' ':
			col++
		case '\t':
			col += tabStop - col%tabStop
		default:
			return line[i:]
		}
		if i < len(line) {
			i++
		}
	}
	if col <= n {
		return line[min(i, len(line)):]
	}
	overshoot := col - n
	rest := line[i:]
	out := make([]byte, 0, overshoot+len(rest))
	for k := 0; k < overshoot; k++ {
		out = append(out, ' ')
	}
	return append(out, rest...)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// isBlankLine reports whether line contains only whitespace.
func isBlankLine(line []byte) bool {
	for _, b := range line {
		if b != ' ' && b != '\t' {
			return false
		}
	}
	return true
}

// fenceRun reports the length of the run of ch (backtick, tilde, colon,
// or dollar) that starts at the first byte of s; leading spaces are not
// skipped. A zero count means s does not start with ch.
func fenceRun(s []byte, ch byte) (count int) {
	for count < len(s) && s[count] == ch {
		count++
	}
	return count
}

// splitLines splits source into lines, preserving neither the
// terminating "\n" nor a preceding "\r". Byte offsets of each line's
// start within source are returned alongside the lines themselves so
// callers can build spans. A source that ends with a newline does not
// produce a final, phantom empty line the way strings.Split would: the
// newline terminates the preceding line rather than introducing a new
// empty one.
func splitLines(source []byte) (lines [][]byte, offsets []int) {
	start := 0
	for i := 0; i <= len(source); i++ {
		if i == len(source) || source[i] == '\n' {
			if i == len(source) && i == start && len(source) > 0 {
				break
			}
			end := i
			if end > start && source[end-1] == '\r' {
				end--
			}
			lines = append(lines, source[start:end])
			offsets = append(offsets, start)
			start = i + 1
		}
	}
	return lines, offsets
}

// isThematicBreak reports whether the trimmed content of line (already
// known to have acceptable indentation) is a thematic break: three or
// more matching *, -, or _ characters, optionally separated by spaces
// or tabs, and nothing else.
func isThematicBreak(content []byte) bool {
	var marker byte
	count := 0
	for _, b := range content {
		switch b {
		case ' ', '\t':
			continue
		case '*', '-', '_':
			if marker == 0 {
				marker = b
			} else if b != marker {
				return false
			}
			count++
		default:
			return false
		}
	}
	return count >= 3
}

// atxHeadingLevel returns the ATX heading level (1-6) if content begins
// with 1-6 '#' characters followed by a space, tab, or end of line, and
// zero otherwise.
func atxHeadingLevel(content []byte) int {
	n := 0
	for n < len(content) && content[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return 0
	}
	if n == len(content) {
		return n
	}
	if content[n] == ' ' || content[n] == '\t' {
		return n
	}
	return 0
}

// setextUnderlineChar returns '=' or '-' if the trimmed content is a
// valid setext heading underline (a run of only that character), and 0
// otherwise.
func setextUnderlineChar(content []byte) byte {
	trimmed := strings.TrimRight(string(content), " \t")
	if trimmed == "" {
		return 0
	}
	ch := trimmed[0]
	if ch != '=' && ch != '-' {
		return 0
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != ch {
			return 0
		}
	}
	return ch
}
