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
	"errors"
	"fmt"
)

// ErrInvariant is wrapped by every error returned from Validate.
var ErrInvariant = errors.New("avltree: invariant violated")

// Validate walks the whole tree and checks ordering, stored heights, the AVL
// balance bound and the key count without trusting any cached state. It
// returns nil for a well-formed tree.
func (tree *Tree[T]) Validate() error {
	count, _, err := tree.validateNode(tree.root, nil, nil)
	if err != nil {
		return err
	}
	if count != tree.size {
		return fmt.Errorf("%w: size is %d but tree holds %d keys", ErrInvariant, tree.size, count)
	}
	return nil
}

// validateNode returns the number of nodes and the recomputed height of the
// subtree rooted at n. lo and hi bound the keys allowed in the subtree.
func (tree *Tree[T]) validateNode(n *node[T], lo, hi *T) (int, int, error) {
	if n == nil {
		return 0, 0, nil
	}

	if lo != nil && tree.compare(n.key, *lo) <= 0 {
		return 0, 0, fmt.Errorf("%w: key %v is not greater than %v", ErrInvariant, n.key, *lo)
	}
	if hi != nil && tree.compare(n.key, *hi) >= 0 {
		return 0, 0, fmt.Errorf("%w: key %v is not less than %v", ErrInvariant, n.key, *hi)
	}

	leftCount, leftHeight, err := tree.validateNode(n.left, lo, &n.key)
	if err != nil {
		return 0, 0, err
	}
	rightCount, rightHeight, err := tree.validateNode(n.right, &n.key, hi)
	if err != nil {
		return 0, 0, err
	}

	h := max(leftHeight, rightHeight) + 1
	if n.height != h {
		return 0, 0, fmt.Errorf("%w: key %v stores height %d, want %d", ErrInvariant, n.key, n.height, h)
	}
	if bf := rightHeight - leftHeight; bf < -1 || bf > 1 {
		return 0, 0, fmt.Errorf("%w: key %v has balance factor %d", ErrInvariant, n.key, bf)
	}

	return leftCount + rightCount + 1, h, nil
}
