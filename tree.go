// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package avltree

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Tree is an AVL tree holding unique keys in ascending order.
//
// A Tree is not safe for concurrent use. Callers that share one across
// goroutines must guard it themselves.
type Tree[T any] struct {
	root    *node[T]
	compare func(a, b T) int
	size    int
}

// New returns an empty tree ordered by cmp.Compare.
func New[T cmp.Ordered]() *Tree[T] {
	return NewFunc(cmp.Compare[T])
}

// NewFunc returns an empty tree ordered by compare, which must return a
// negative number when a < b, zero when a == b and a positive number when a > b.
func NewFunc[T any](compare func(a, b T) int) *Tree[T] {
	return &Tree[T]{compare: compare}
}

// Insert adds key to the tree. It reports false if the key was already present,
// in which case the tree is left untouched.
func (tree *Tree[T]) Insert(key T) bool {
	var added bool
	tree.root = tree.insertRecursive(tree.root, key, &added)
	if added {
		tree.size++
	}
	return added
}

func (tree *Tree[T]) insertRecursive(n *node[T], key T, added *bool) *node[T] {
	if n == nil {
		*added = true
		return newNode(key)
	}

	switch c := tree.compare(key, n.key); {
	case c < 0:
		n.left = tree.insertRecursive(n.left, key, added)
	case c > 0:
		n.right = tree.insertRecursive(n.right, key, added)
	default:
		return n
	}

	return balance(n)
}

// Remove deletes key from the tree. It reports false if the key was not present.
func (tree *Tree[T]) Remove(key T) bool {
	var removed bool
	tree.root = tree.removeRecursive(tree.root, key, &removed)
	if removed {
		tree.size--
	}
	return removed
}

func (tree *Tree[T]) removeRecursive(n *node[T], key T, removed *bool) *node[T] {
	if n == nil {
		return nil // Key not found
	}

	switch c := tree.compare(key, n.key); {
	case c < 0:
		n.left = tree.removeRecursive(n.left, key, removed)
	case c > 0:
		n.right = tree.removeRecursive(n.right, key, removed)
	default:
		*removed = true
		left, right := n.left, n.right
		n.left, n.right = nil, nil

		if right == nil {
			return left
		}

		// Replace n with its in-order successor.
		successor := findMin(right)
		successor.right = removeMin(right)
		successor.left = left
		return balance(successor)
	}

	return balance(n)
}

// findMin returns the leftmost node of a non-empty subtree.
func findMin[T any](n *node[T]) *node[T] {
	if n == nil {
		panic("avltree: findMin on empty subtree")
	}
	for n.left != nil {
		n = n.left
	}
	return n
}

// removeMin detaches the leftmost node of a non-empty subtree and returns the
// rebalanced remainder.
func removeMin[T any](n *node[T]) *node[T] {
	if n == nil {
		panic("avltree: removeMin on empty subtree")
	}
	if n.left == nil {
		return n.right
	}
	n.left = removeMin(n.left)
	return balance(n)
}

// Contains reports whether key is stored in the tree.
func (tree *Tree[T]) Contains(key T) bool {
	return tree.search(tree.root, key)
}

func (tree *Tree[T]) search(n *node[T], key T) bool {
	if n == nil {
		return false
	}

	switch c := tree.compare(key, n.key); {
	case c < 0:
		return tree.search(n.left, key)
	case c > 0:
		return tree.search(n.right, key)
	default:
		return true
	}
}

// All returns an iterator over the keys in ascending order. Each range over
// the iterator walks the tree as it is at that moment. The tree must not be
// modified while an iteration is in progress.
func (tree *Tree[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		inOrder(tree.root, yield)
	}
}

func inOrder[T any](n *node[T], yield func(T) bool) bool {
	if n == nil {
		return true
	}
	return inOrder(n.left, yield) && yield(n.key) && inOrder(n.right, yield)
}

// Keys returns every key in ascending order.
func (tree *Tree[T]) Keys() []T {
	return slices.Collect(tree.All())
}

// Len returns the number of keys in the tree.
func (tree *Tree[T]) Len() int {
	return tree.size
}

// Height returns the height of the root, 0 for an empty tree.
func (tree *Tree[T]) Height() int {
	return height(tree.root)
}

// Min returns the smallest key, or false if the tree is empty.
func (tree *Tree[T]) Min() (T, bool) {
	if tree.root == nil {
		var zero T
		return zero, false
	}
	return findMin(tree.root).key, true
}

// Max returns the largest key, or false if the tree is empty.
func (tree *Tree[T]) Max() (T, bool) {
	n := tree.root
	if n == nil {
		var zero T
		return zero, false
	}
	for n.right != nil {
		n = n.right
	}
	return n.key, true
}

// Clear removes every key.
func (tree *Tree[T]) Clear() {
	tree.root = nil
	tree.size = 0
}

// String renders the keys in ascending order separated by single spaces.
func (tree *Tree[T]) String() string {
	var sb strings.Builder
	first := true
	for key := range tree.All() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprint(&sb, key)
	}
	return sb.String()
}
