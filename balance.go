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

// rotateLeft makes the right child the new subtree root. Its left child is
// reattached as the old root's right child.
//
//	  a                b
//	l   b     ->     a   r
//	   c r          l c
func rotateLeft[T any](a *node[T]) *node[T] {
	b := a.right
	a.right = b.left
	b.left = a

	updateHeight(a)
	updateHeight(b)

	return b
}

// rotateRight is the mirror image of rotateLeft.
//
//	   a            b
//	 b   r   ->   l   a
//	l c              c r
func rotateRight[T any](a *node[T]) *node[T] {
	b := a.left
	a.left = b.right
	b.right = a

	updateHeight(a)
	updateHeight(b)

	return b
}

// bigRotateLeft handles a right child that leans left: the right child's left
// child ends up as the subtree root.
//
//	   a                  c
//	l     b     ->     a     b
//	    c   r         l m   n r
//	   m n
func bigRotateLeft[T any](a *node[T]) *node[T] {
	a.right = rotateRight(a.right)
	return rotateLeft(a)
}

func bigRotateRight[T any](a *node[T]) *node[T] {
	a.left = rotateLeft(a.left)
	return rotateRight(a)
}

// balance restores the AVL bound at n, assuming both subtrees already satisfy
// it, and returns the new subtree root. A child with equal grandchild heights
// always gets the small rotation.
func balance[T any](n *node[T]) *node[T] {
	updateHeight(n)

	switch bf := balanceFactor(n); {
	case bf < -1:
		if height(n.left.right) <= height(n.left.left) {
			return rotateRight(n)
		}
		return bigRotateRight(n)
	case bf > 1:
		if height(n.right.left) <= height(n.right.right) {
			return rotateLeft(n)
		}
		return bigRotateLeft(n)
	}

	return n
}
