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

// node is a single stored key. A node exclusively owns its children.
type node[T any] struct {
	key    T
	left   *node[T]
	right  *node[T]
	height int // longest path to a leaf, counting this node
}

func newNode[T any](key T) *node[T] {
	return &node[T]{key: key, height: 1}
}

func height[T any](n *node[T]) int {
	if n == nil {
		return 0
	}
	return n.height
}

// balanceFactor is negative for left-heavy nodes and positive for right-heavy ones.
func balanceFactor[T any](n *node[T]) int {
	return height(n.right) - height(n.left)
}

func updateHeight[T any](n *node[T]) {
	n.height = max(height(n.left), height(n.right)) + 1
}
