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

// Package qmd provides a parser and pretty-printer for Quarto-flavored
// Markdown (.qmd) documents.
//
// The package exposes two entry points: [Parse], which turns a source
// document into a concrete syntax tree whose tokens carry most, but not
// all, of the source bytes (see [Node]), and [Format], which
// reflows that tree back into a normalized document according to a
// [Config]. Formatting is idempotent: formatting already-formatted text
// returns it unchanged.
package qmd
