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

func TestNullSpan(t *testing.T) {
	s := NullSpan()
	if s.IsValid() {
		t.Errorf("NullSpan().IsValid() = true, want false")
	}
}

func TestSpanLen(t *testing.T) {
	tests := []struct {
		span Span
		want int
	}{
		{Span{Start: 0, End: 0}, 0},
		{Span{Start: 3, End: 10}, 7},
	}
	for _, test := range tests {
		if got := test.span.Len(); got != test.want {
			t.Errorf("Span{%d,%d}.Len() = %d, want %d", test.span.Start, test.span.End, got, test.want)
		}
	}
}

func TestSpanSlice(t *testing.T) {
	source := []byte("hello world")
	got := string(spanSlice(source, Span{Start: 6, End: 11}))
	if want := "world"; got != want {
		t.Errorf("spanSlice(...) = %q, want %q", got, want)
	}
}
