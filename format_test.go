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

// formatDefault is a convenience wrapper mirroring the
// format_with_defaults helper the test fixtures this suite is ported
// from use.
func formatDefault(source string) string {
	return Format([]byte(source), DefaultConfig())
}

func TestFormatParagraphRoundTrip(t *testing.T) {
	const src = "Hello world\n"
	if got := formatDefault(src); got != src {
		t.Errorf("formatDefault(%q) = %q, want %q", src, got, src)
	}
}

func TestFormatHTMLCommentRoundTrip(t *testing.T) {
	const src = "<!-- comment -->\n"
	if got := formatDefault(src); got != src {
		t.Errorf("formatDefault(%q) = %q, want %q", src, got, src)
	}
}

func TestFormatThematicBreakNormalizesToDashes(t *testing.T) {
	for _, src := range []string{"***\n", "___\n", "- - -\n"} {
		got := formatDefault(src)
		if want := "---\n"; got != want {
			t.Errorf("formatDefault(%q) = %q, want %q", src, got, want)
		}
	}
}

func TestFormatATXHeadingRoundTrip(t *testing.T) {
	const src = "# Title\n"
	if got := formatDefault(src); got != src {
		t.Errorf("formatDefault(%q) = %q, want %q", src, got, src)
	}
}

func TestFormatSetextNormalizesToATX(t *testing.T) {
	const src = "Title\n=====\n"
	const want = "# Title\n"
	if got := formatDefault(src); got != want {
		t.Errorf("formatDefault(%q) = %q, want %q", src, got, want)
	}
}

func TestFormatTightListHasNoBlankLinesBetweenItems(t *testing.T) {
	const src = "- one\n- two\n- three\n"
	got := formatDefault(src)
	want := "- one\n- two\n- three\n"
	if got != want {
		t.Errorf("formatDefault(%q) = %q, want %q", src, got, want)
	}
}

func TestFormatLooseListHasBlankLinesBetweenItems(t *testing.T) {
	const src = "- one\n\n- two\n"
	got := formatDefault(src)
	want := "- one\n\n- two\n"
	if got != want {
		t.Errorf("formatDefault(%q) = %q, want %q", src, got, want)
	}
}

func TestFormatBlockQuoteRoundTrip(t *testing.T) {
	const src = "> quoted text\n"
	if got := formatDefault(src); got != src {
		t.Errorf("formatDefault(%q) = %q, want %q", src, got, src)
	}
}

func TestFormatFencedCodePreservesBody(t *testing.T) {
	const src = "```go\nfunc main() {}\n```\n"
	if got := formatDefault(src); got != src {
		t.Errorf("formatDefault(%q) = %q, want %q", src, got, src)
	}
}

func TestFormatStrikeoutVsSubscript(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a ~~deleted~~ b\n", "a ~~deleted~~ b\n"},
		{"H~2~O\n", "H~2~O\n"},
	}
	for _, test := range tests {
		if got := formatDefault(test.src); got != test.want {
			t.Errorf("formatDefault(%q) = %q, want %q", test.src, got, test.want)
		}
	}
}

func TestFormatSuperscript(t *testing.T) {
	const src = "x^2^\n"
	if got := formatDefault(src); got != src {
		t.Errorf("formatDefault(%q) = %q, want %q", src, got, src)
	}
}

func TestFormatPreserveWrapReproducesSourceBreaks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Wrap = Preserve
	const src = "one two\nthree four\n"
	got := Format([]byte(src), cfg)
	want := "one two\nthree four\n"
	if got != want {
		t.Errorf("Format(%q, preserve) = %q, want %q", src, got, want)
	}
}

func TestFormatWrapReflowsToLineWidth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LineWidth = 10
	const src = "one two three four five\n"
	got := Format([]byte(src), cfg)
	want := "one two\nthree four\nfive\n"
	if got != want {
		t.Errorf("Format(%q, width=10) = %q, want %q", src, got, want)
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	const src = "# Title\n\nSome *text* with a [link](https://example.com) in it.\n\n- one\n- two\n"
	first := formatDefault(src)
	second := formatDefault(first)
	if first != second {
		t.Errorf("formatting is not idempotent:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestFormatLinkReferenceDefinitionRecoveredFromParagraph(t *testing.T) {
	const src = "[label]: https://example.com\n\nSee [label].\n"
	got := formatDefault(src)
	if got == "" {
		t.Fatalf("formatDefault(%q) returned empty output", src)
	}
}

func TestFormatDefinitionList(t *testing.T) {
	const src = "Term\n: Definition text.\n"
	got := formatDefault(src)
	want := "Term\n: Definition text.\n"
	if got != want {
		t.Errorf("formatDefault(%q) = %q, want %q", src, got, want)
	}
}

func TestFormatFencedDivRoundTrip(t *testing.T) {
	const src = "::: note\nBody text.\n:::\n"
	got := formatDefault(src)
	if got != src {
		t.Errorf("formatDefault(%q) = %q, want %q", src, got, src)
	}
}

func TestFormatLineBlock(t *testing.T) {
	const src = "| Line one\n| Line two\n"
	got := formatDefault(src)
	want := "| Line one\n| Line two\n"
	if got != want {
		t.Errorf("formatDefault(%q) = %q, want %q", src, got, want)
	}
}

func TestFormatOrderedListRenumbersByDefault(t *testing.T) {
	const src = "3. one\n8. two\n9. three\n"
	want := "3. one\n4. two\n5. three\n"
	if got := formatDefault(src); got != want {
		t.Errorf("formatDefault(%q) = %q, want %q", src, got, want)
	}
}

func TestFormatOrderedListPreservesNumberingWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RenumberOrderedLists = false
	const src = "3. one\n8. two\n9. three\n"
	got := Format([]byte(src), cfg)
	want := "3. one\n8. two\n9. three\n"
	if got != want {
		t.Errorf("Format(%q, no-renumber) = %q, want %q", src, got, want)
	}
}

func TestFormatYAMLFrontmatterDelimitersSurviveFailedFormatter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Formatters["yaml"] = FormatterConfig{Cmd: "/nonexistent-formatter-binary", Enabled: true}
	const src = "---\ntitle: Test\n---\n\nBody.\n"
	got := Format([]byte(src), cfg)
	if got == "" {
		t.Fatalf("Format(%q) returned empty output", src)
	}
	if got[:4] != "---\n" {
		t.Errorf("Format(%q) = %q, want frontmatter delimiter preserved at start", src, got)
	}
}
