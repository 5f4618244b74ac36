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

// A Cursor describes a [Node] encountered during [Walk].
type Cursor struct {
	node   *Node
	parent *Node
	index  int
}

// Node returns the current node.
func (c *Cursor) Node() *Node { return c.node }

// Parent returns the parent of the current node, or nil at the root.
func (c *Cursor) Parent() *Node { return c.parent }

// Index returns the index of the current node in its parent's children,
// or -1 at the root.
func (c *Cursor) Index() int { return c.index }

// WalkOptions is the set of parameters to [Walk].
type WalkOptions struct {
	// Pre is called for each node before its children are traversed. If
	// Pre returns false, the node's children are skipped and Post is not
	// called for that node.
	Pre func(c *Cursor) bool
	// Post is called for each node after its children are traversed. If
	// Post returns false, traversal stops immediately.
	Post func(c *Cursor) bool
}

// Walk traverses root and its descendants depth-first, calling
// opts.Pre and opts.Post.
func Walk(root *Node, opts *WalkOptions) {
	type frame struct {
		Cursor
		post bool
	}

	stack := []frame{{Cursor: Cursor{node: root, index: -1}}}
	cursor := new(Cursor)
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if curr.post {
			if opts.Post != nil {
				*cursor = curr.Cursor
				if !opts.Post(cursor) {
					return
				}
			}
			continue
		}

		if opts.Pre != nil {
			*cursor = curr.Cursor
			if !opts.Pre(cursor) {
				continue
			}
		}
		curr.post = true
		stack = append(stack, curr)
		for i := curr.node.ChildCount() - 1; i >= 0; i-- {
			stack = append(stack, frame{Cursor: Cursor{
				parent: curr.node,
				node:   curr.node.Child(i),
				index:  i,
			}})
		}
	}
}
