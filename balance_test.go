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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// build assembles a subtree by hand with correct heights.
func build(key int, left, right *node[int]) *node[int] {
	n := &node[int]{key: key, left: left, right: right}
	updateHeight(n)
	return n
}

func leaf(key int) *node[int] {
	return build(key, nil, nil)
}

func shape(n *node[int]) []int {
	if n == nil {
		return nil
	}
	out := []int{n.key}
	out = append(out, shape(n.left)...)
	return append(out, shape(n.right)...)
}

func TestHeightAndBalanceFactor(t *testing.T) {
	assert.Equal(t, 0, height[int](nil))

	n := build(2, leaf(1), nil)
	assert.Equal(t, 2, height(n))
	assert.Equal(t, -1, balanceFactor(n))

	n = build(2, nil, build(3, nil, leaf(4)))
	assert.Equal(t, 3, height(n))
	assert.Equal(t, 2, balanceFactor(n))
}

func TestBalanceRotations(t *testing.T) {
	testCases := []struct {
		Name      string
		Input     *node[int]
		WantShape []int // pre-order keys
	}{
		{
			Name:      "small left",
			Input:     build(1, nil, build(2, nil, leaf(3))),
			WantShape: []int{2, 1, 3},
		},
		{
			Name:      "small right",
			Input:     build(3, build(2, leaf(1), nil), nil),
			WantShape: []int{2, 1, 3},
		},
		{
			Name:      "big left",
			Input:     build(1, nil, build(3, leaf(2), nil)),
			WantShape: []int{2, 1, 3},
		},
		{
			Name:      "big right",
			Input:     build(3, build(1, nil, leaf(2)), nil),
			WantShape: []int{2, 1, 3},
		},
		{
			Name:      "big left moves grandchildren",
			Input:     build(10, leaf(5), build(30, build(20, leaf(15), leaf(25)), leaf(40))),
			WantShape: []int{20, 10, 5, 15, 30, 25, 40},
		},
		{
			Name:      "balanced node untouched",
			Input:     build(2, leaf(1), leaf(3)),
			WantShape: []int{2, 1, 3},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			got := balance(tc.Input)
			assert.Equal(t, tc.WantShape, shape(got))

			tree := New[int]()
			tree.root = got
			tree.size = len(tc.WantShape)
			require.NoError(t, tree.Validate())
		})
	}
}

func TestBalanceTieBreakPrefersSmallRotation(t *testing.T) {
	// Right child is exactly balanced after the left leaf goes away.
	tree := New[int]()
	for _, k := range []int{20, 10, 30, 25, 35} {
		tree.Insert(k)
	}
	require.Equal(t, 20, tree.root.key)

	tree.Remove(10)
	require.NoError(t, tree.Validate())
	assert.Equal(t, []int{30, 20, 25, 35}, shape(tree.root))

	// Mirror image.
	tree = New[int]()
	for _, k := range []int{20, 10, 30, 5, 15} {
		tree.Insert(k)
	}
	tree.Remove(30)
	require.NoError(t, tree.Validate())
	assert.Equal(t, []int{10, 5, 20, 15}, shape(tree.root))
}

func TestRemoveUsesInOrderSuccessor(t *testing.T) {
	tree := New[int]()
	for _, k := range []int{50, 30, 70, 60, 80, 65} {
		tree.Insert(k)
	}
	require.NoError(t, tree.Validate())

	// 60 is the root with two children; 65 replaces it.
	require.Equal(t, 60, tree.root.key)
	tree.Remove(60)
	require.NoError(t, tree.Validate())
	assert.Equal(t, 65, tree.root.key)
	assert.Equal(t, []int{30, 50, 65, 70, 80}, tree.Keys())
	assert.False(t, tree.Contains(60))
}

func TestFindMinPanicsOnEmptySubtree(t *testing.T) {
	assert.Panics(t, func() { findMin[int](nil) })
	assert.Panics(t, func() { removeMin[int](nil) })
}

func TestRemoveMin(t *testing.T) {
	n := build(4, build(2, leaf(1), leaf(3)), build(6, leaf(5), leaf(7)))

	n = removeMin(n)
	assert.Equal(t, []int{4, 2, 3, 6, 5, 7}, shape(n))

	n = removeMin(removeMin(n))
	tree := New[int]()
	tree.root = n
	tree.size = 4
	require.NoError(t, tree.Validate())
	assert.Equal(t, []int{4, 5, 6, 7}, tree.Keys())
}

func TestValidateDetectsCorruption(t *testing.T) {
	testCases := []struct {
		Name string
		Root *node[int]
		Size int
	}{
		{Name: "order", Root: build(2, leaf(3), nil), Size: 2},
		{Name: "height", Root: &node[int]{key: 2, left: leaf(1), height: 5}, Size: 2},
		{Name: "balance", Root: build(1, nil, build(2, nil, leaf(3))), Size: 3},
		{Name: "size", Root: build(2, leaf(1), leaf(3)), Size: 4},
		{Name: "deep order", Root: build(5, build(2, leaf(1), leaf(6)), leaf(8)), Size: 5},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tree := New[int]()
			tree.root = tc.Root
			tree.size = tc.Size
			assert.ErrorIs(t, tree.Validate(), ErrInvariant)
		})
	}
}
