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

import "go4.org/bytereplacer"

// sourceReplacer performs the two line-ending/NUL substitutions
// CommonMark requires before any other processing: every "\r\n" and
// lone "\r" becomes "\n", and every NUL byte becomes U+FFFD. Doing this
// as a single bytereplacer pass keeps it allocation-light compared to
// running strings.ReplaceAll twice.
var sourceReplacer = bytereplacer.New(
	"\r\n", "\n",
	"\r", "\n",
	"\x00", "�",
)

// NormalizeSource applies CommonMark's line-ending and NUL-byte
// normalization. [Parse] and [Format] call this internally; it is
// exported so a caller that wants to diff normalized source against
// formatted output does not have to duplicate the rule.
func NormalizeSource(source []byte) []byte {
	return sourceReplacer.Replace(source)
}
