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

// Package stress drives an AVL tree through long seeded sequences of random
// inserts and removals, checking it against a reference set as it goes.
package stress

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/willf/bloom"

	"github.com/cybrota/avltree"
)

const (
	bloomFalsePositiveRate = 0.01
	progressStep           = 1000
)

// ErrMismatch is wrapped by every error reporting that the tree disagreed
// with the reference set or broke the AVL height bound.
var ErrMismatch = errors.New("stress: tree disagrees with reference model")

type Options struct {
	Operations    int
	KeySpace      int     // keys are drawn from [0, KeySpace)
	RemoveRatio   float64 // probability that an operation is a removal
	Seed          uint64
	ValidateEvery int // 0 validates only at the end

	// Progress receives a progress bar when non-nil.
	Progress io.Writer
}

type Result struct {
	Operations  int
	Inserted    int
	Removed     int
	Duplicates  int
	Missing     int
	NeverSeen   int // keys the bloom filter proves were never inserted
	FinalLen    int
	FinalHeight int
	Elapsed     time.Duration
}

// MaxHeight is the AVL worst-case height for n keys, 1.44*log2(n+2), computed
// with a little slack and rounded down.
func MaxHeight(n int) int {
	return int(math.Floor(1.45 * math.Log2(float64(n+2))))
}

// Run applies opts.Operations random operations to tree, which may already
// hold keys. It returns an error wrapping ErrMismatch or avltree.ErrInvariant
// as soon as a check fails.
func Run(ctx context.Context, tree *avltree.Tree[int], opts Options) (*Result, error) {
	if opts.Operations <= 0 || opts.KeySpace <= 0 {
		return nil, fmt.Errorf("stress: operations and key space must be positive")
	}

	start := time.Now()
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	model := make(map[int]struct{}, tree.Len())
	for k := range tree.All() {
		model[k] = struct{}{}
	}
	seen := bloom.NewWithEstimates(uint(opts.KeySpace+len(model)), bloomFalsePositiveRate)
	for k := range model {
		seen.AddString(strconv.Itoa(k))
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(opts.Operations,
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("stress"),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(opts.Progress)
			}),
		)
	}

	res := &Result{}
	for i := 0; i < opts.Operations; i++ {
		if i%progressStep == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		k := rng.IntN(opts.KeySpace)
		_, present := model[k]
		if rng.Float64() < opts.RemoveRatio {
			if tree.Remove(k) != present {
				return res, fmt.Errorf("%w: op %d: remove(%d) reported %t", ErrMismatch, i, k, !present)
			}
			if present {
				delete(model, k)
				res.Removed++
			} else {
				res.Missing++
			}
		} else {
			if tree.Insert(k) == present {
				return res, fmt.Errorf("%w: op %d: insert(%d) reported %t", ErrMismatch, i, k, present)
			}
			if present {
				res.Duplicates++
			} else {
				model[k] = struct{}{}
				seen.AddString(strconv.Itoa(k))
				res.Inserted++
			}
		}
		res.Operations++

		if opts.ValidateEvery > 0 && res.Operations%opts.ValidateEvery == 0 {
			if err := check(tree, model); err != nil {
				return res, fmt.Errorf("op %d: %w", i, err)
			}
		}
		if bar != nil && res.Operations%progressStep == 0 {
			_ = bar.Add(progressStep)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if err := check(tree, model); err != nil {
		return res, err
	}
	for k := range opts.KeySpace {
		found := tree.Contains(k)
		if !seen.TestString(strconv.Itoa(k)) {
			if found {
				return res, fmt.Errorf("%w: key %d was never inserted but is present", ErrMismatch, k)
			}
			res.NeverSeen++
			continue
		}
		if _, want := model[k]; found != want {
			return res, fmt.Errorf("%w: contains(%d) reported %t", ErrMismatch, k, found)
		}
	}

	res.FinalLen = tree.Len()
	res.FinalHeight = tree.Height()
	res.Elapsed = time.Since(start)
	return res, nil
}

func check(tree *avltree.Tree[int], model map[int]struct{}) error {
	if err := tree.Validate(); err != nil {
		return err
	}
	if tree.Len() != len(model) {
		return fmt.Errorf("%w: tree holds %d keys, model %d", ErrMismatch, tree.Len(), len(model))
	}
	if h, limit := tree.Height(), MaxHeight(tree.Len()); h > limit {
		return fmt.Errorf("%w: height %d exceeds %d for %d keys", ErrMismatch, h, limit, tree.Len())
	}
	return nil
}
