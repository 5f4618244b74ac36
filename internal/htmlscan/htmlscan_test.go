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

package htmlscan

import "testing"

func TestClassifyComment(t *testing.T) {
	kind, name := Classify([]byte("<!-- a comment -->"))
	if kind != Comment {
		t.Errorf("Classify(comment) kind = %v, want Comment", kind)
	}
	if name != "" {
		t.Errorf("Classify(comment) name = %q, want empty", name)
	}
}

func TestClassifyRawBlockElement(t *testing.T) {
	for _, src := range [][]byte{
		[]byte("<div>"),
		[]byte("<div class=\"x\">"),
		[]byte("</div>"),
		[]byte("<pre>"),
		[]byte("<hr>"),
	} {
		kind, name := Classify(src)
		if kind != RawBlockElement {
			t.Errorf("Classify(%q) kind = %v, want RawBlockElement", src, kind)
		}
		if name == "" {
			t.Errorf("Classify(%q) name = empty, want a tag name", src)
		}
	}
}

func TestClassifyGenericTag(t *testing.T) {
	kind, name := Classify([]byte("<span>text</span>"))
	if kind != GenericTag {
		t.Errorf("Classify(<span>) kind = %v, want GenericTag", kind)
	}
	if name != "span" {
		t.Errorf("Classify(<span>) name = %q, want %q", name, "span")
	}
}

func TestClassifySelfClosingTag(t *testing.T) {
	kind, _ := Classify([]byte("<br/>"))
	if kind != GenericTag {
		t.Errorf("Classify(<br/>) kind = %v, want GenericTag", kind)
	}
}

func TestClassifyNotTag(t *testing.T) {
	kind, name := Classify([]byte("just plain text"))
	if kind != NotTag {
		t.Errorf("Classify(plain text) kind = %v, want NotTag", kind)
	}
	if name != "" {
		t.Errorf("Classify(plain text) name = %q, want empty", name)
	}
}

func TestIsCommentStart(t *testing.T) {
	if !IsCommentStart([]byte("<!-- x -->")) {
		t.Error("IsCommentStart(comment) = false, want true")
	}
	if IsCommentStart([]byte("<div>")) {
		t.Error("IsCommentStart(<div>) = true, want false")
	}
	if IsCommentStart([]byte("not html at all")) {
		t.Error("IsCommentStart(plain text) = true, want false")
	}
}
