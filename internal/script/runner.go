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

package script

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cybrota/avltree"
)

// Stats counts what a replay did.
type Stats struct {
	Ops        int
	Added      int
	Duplicates int
	Removed    int
	Missing    int
	Hits       int
	Misses     int
}

// Runner replays parsed operations against a tree and writes one result line
// per key or query to Out.
type Runner[T any] struct {
	Tree *avltree.Tree[T]
	Keys KeyParser[T]
	Out  io.Writer

	// Validate runs the tree's invariant checker after every mutating operation.
	Validate bool
	Logger   *slog.Logger
}

func NewRunner[T any](tree *avltree.Tree[T], keys KeyParser[T], out io.Writer) *Runner[T] {
	return &Runner[T]{
		Tree:   tree,
		Keys:   keys,
		Out:    out,
		Logger: slog.Default(),
	}
}

// Run executes ops in order. It stops at the first key that fails to parse,
// the first invariant violation, or when ctx is cancelled.
func (r *Runner[T]) Run(ctx context.Context, ops []Op) (Stats, error) {
	var stats Stats

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		keys, err := r.parseKeys(op)
		if err != nil {
			return stats, err
		}

		switch op.Verb {
		case VerbInsert:
			for i, k := range keys {
				if r.Tree.Insert(k) {
					stats.Added++
					r.printf("insert %s: added\n", op.Args[i])
				} else {
					stats.Duplicates++
					r.printf("insert %s: duplicate\n", op.Args[i])
				}
			}
		case VerbRemove:
			for i, k := range keys {
				if r.Tree.Remove(k) {
					stats.Removed++
					r.printf("remove %s: removed\n", op.Args[i])
				} else {
					stats.Missing++
					r.printf("remove %s: missing\n", op.Args[i])
				}
			}
		case VerbContains:
			for i, k := range keys {
				found := r.Tree.Contains(k)
				if found {
					stats.Hits++
				} else {
					stats.Misses++
				}
				r.printf("contains %s: %t\n", op.Args[i], found)
			}
		case VerbPrint:
			r.printf("%s\n", r.Tree)
		case VerbLen:
			r.printf("len %d\n", r.Tree.Len())
		case VerbHeight:
			r.printf("height %d\n", r.Tree.Height())
		case VerbCheck:
			if err := r.Tree.Validate(); err != nil {
				return stats, fmt.Errorf("line %d: %w", op.Line, err)
			}
			r.printf("ok\n")
		case VerbClear:
			r.Tree.Clear()
		default:
			return stats, &ParseError{Line: op.Line, Msg: fmt.Sprintf("unknown operation %q", op.Verb)}
		}
		stats.Ops++

		if r.Validate && mutates(op.Verb) {
			if err := r.Tree.Validate(); err != nil {
				return stats, fmt.Errorf("line %d: %w", op.Line, err)
			}
		}

		r.Logger.Debug("replayed operation", "line", op.Line, "op", string(op.Verb), "keys", len(keys), "len", r.Tree.Len(), "height", r.Tree.Height())
	}

	return stats, nil
}

func (r *Runner[T]) parseKeys(op Op) ([]T, error) {
	if len(op.Args) == 0 {
		return nil, nil
	}
	keys := make([]T, 0, len(op.Args))
	for _, arg := range op.Args {
		k, err := r.Keys(arg)
		if err != nil {
			return nil, &ParseError{Line: op.Line, Msg: err.Error()}
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func (r *Runner[T]) printf(format string, args ...any) {
	fmt.Fprintf(r.Out, format, args...)
}

func mutates(v Verb) bool {
	return v == VerbInsert || v == VerbRemove || v == VerbClear
}
