// Copyright 2024 Ross Light
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

import "time"

// WrapMode selects how the pretty-printer reflows paragraph and
// block-quote text.
type WrapMode int

const (
	// Wrap reflows text to Config.LineWidth columns. This is the default.
	Wrap WrapMode = iota
	// Preserve reproduces the source's line breaks exactly.
	Preserve
)

func (m WrapMode) String() string {
	if m == Preserve {
		return "preserve"
	}
	return "wrap"
}

// Flavor selects the inline-extension preset a [Config] starts from.
type Flavor int

const (
	// Quarto enables the full Quarto-flavored extension set: math,
	// fenced divs, definition lists, line blocks, strikeout, subscript,
	// superscript, inline footnotes, pipe tables, and raw TeX.
	Quarto Flavor = iota
	// CommonMark enables only the base CommonMark inline grammar.
	CommonMark
)

// Extensions is the set of optional block/inline constructs a [Config]
// recognizes. Each flag independently gates a construct; a disabled
// construct's delimiters are left as literal text rather than causing a
// parse failure.
type Extensions struct {
	TexMathDollars   bool
	FencedDivs       bool
	DefinitionLists  bool
	LineBlocks       bool
	Strikeout        bool
	Subscript        bool
	Superscript      bool
	InlineFootnotes  bool
	PipeTables       bool
	// RawTex gates nothing: the inline parser does not recognize raw
	// TeX commands, so they stay plain text whatever its value.
	RawTex bool
}

func extensionsForFlavor(f Flavor) Extensions {
	switch f {
	case CommonMark:
		return Extensions{}
	default:
		return Extensions{
			TexMathDollars:  true,
			FencedDivs:      true,
			DefinitionLists: true,
			LineBlocks:      true,
			Strikeout:       true,
			Subscript:       true,
			Superscript:     true,
			InlineFootnotes: true,
			PipeTables:      true,
			RawTex:          true,
		}
	}
}

// FormatterConfig describes an external formatter subprocess for a
// fenced code block or frontmatter language tag.
type FormatterConfig struct {
	// Cmd is the executable to run.
	Cmd string
	// Args are the arguments passed to Cmd. When Stdin is false, the
	// path to a temporary file holding the body is appended as the
	// final argument.
	Args []string
	// Enabled gates whether the formatter is invoked at all.
	Enabled bool
	// Stdin selects whether the body is piped to the process's standard
	// input (true) or written to a temporary file whose path is passed
	// as an argument (false).
	Stdin bool
}

// FormatWarning describes a non-fatal event encountered while formatting,
// such as an external formatter that failed or timed out. Format never
// fails outright; a caller that wants visibility into degraded output
// supplies Config.OnWarning.
type FormatWarning struct {
	// Lang is the code-fence or frontmatter language tag that triggered
	// the warning.
	Lang string
	// Err is the underlying cause (spawn failure, non-zero exit,
	// timeout, or invalid UTF-8 output).
	Err error
}

// Config controls how [Parse] and [Format] interpret and render a
// document. The zero Config is invalid; use [DefaultConfig] or start
// from it. Config is never mutated by this package.
type Config struct {
	// LineWidth is the reflow budget in columns. Zero means unlimited.
	LineWidth int
	// Wrap selects the paragraph/block-quote reflow strategy.
	Wrap WrapMode
	// Flavor selects the starting extension preset; Extensions further
	// refines it.
	Flavor Flavor
	// Extensions is the resolved set of optional constructs to
	// recognize. DefaultConfig and NewConfig populate this from Flavor;
	// callers may override individual flags afterward.
	Extensions Extensions
	// Formatters maps a code-fence or frontmatter language tag to an
	// external formatter invocation.
	Formatters map[string]FormatterConfig
	// FormatterTimeout bounds how long an external formatter may run
	// before its output is discarded. Zero uses a 5 second default.
	FormatterTimeout time.Duration
	// OnWarning, if non-nil, is called for each non-fatal event
	// encountered while formatting. It must not retain the FormatWarning
	// or mutate shared state without its own synchronization, since the
	// LSP collaborator may format documents from multiple goroutines
	// even though a single Format call never does.
	OnWarning func(FormatWarning)
	// PreserveSetext, if true, keeps setext headings as setext rather
	// than normalizing them to ATX.
	PreserveSetext bool
	// RenumberOrderedLists renumbers ordered-list markers from their
	// first item's start value when true (the default). When false, the
	// source numbering of every item is preserved verbatim.
	RenumberOrderedLists bool
}

// DefaultConfig returns the Config used when [Parse] or [Format] is
// called with a nil Config: 80-column wrapping, Quarto flavor, and no
// external formatters configured.
func DefaultConfig() *Config {
	return NewConfig(Quarto)
}

// NewConfig returns a Config seeded with the extension preset for
// flavor and spec.md §6's other defaults.
func NewConfig(flavor Flavor) *Config {
	return &Config{
		LineWidth:            80,
		Wrap:                 Wrap,
		Flavor:               flavor,
		Extensions:           extensionsForFlavor(flavor),
		Formatters:           map[string]FormatterConfig{},
		FormatterTimeout:     5 * time.Second,
		RenumberOrderedLists: true,
	}
}

// withDefaults returns cfg with zero-value fields filled in, never
// mutating cfg. A nil cfg yields [DefaultConfig].
func (cfg *Config) withDefaults() *Config {
	if cfg == nil {
		return DefaultConfig()
	}
	if cfg.LineWidth < 0 {
		panic("qmd: Config.LineWidth must not be negative")
	}
	out := *cfg
	if out.Formatters == nil {
		out.Formatters = map[string]FormatterConfig{}
	}
	if out.FormatterTimeout <= 0 {
		out.FormatterTimeout = 5 * time.Second
	}
	return &out
}

// unlimited reports whether width should be treated as having no reflow
// budget, per spec.md §7's "treat 0 as unlimited" resolution.
func (cfg *Config) unlimited() bool {
	return cfg.LineWidth == 0
}
