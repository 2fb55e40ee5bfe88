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

// Package avltree implements a generic self-balancing binary search tree.
//
// Every insertion and removal rebuilds the path from the changed node back to
// the root, recomputing stored subtree heights and applying single or double
// rotations wherever a node's subtrees differ in height by more than one.
// Insert, Remove and Contains run in O(log n); All yields keys in ascending
// order.
//
//	tree := avltree.New[int]()
//	for _, k := range []int{10, 20, 30, 40, 50, 25} {
//		tree.Insert(k)
//	}
//	tree.Remove(30)
//	fmt.Println(tree) // 10 20 25 40 50
package avltree
