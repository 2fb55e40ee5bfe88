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

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/cybrota/avltree"
	"github.com/cybrota/avltree/internal/stress"
)

func newStressCmd() *cobra.Command {
	var (
		ops        int
		keySpace   int
		seed       uint64
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run random inserts and removals, checking every invariant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			opts := stress.Options{
				Operations:    cfg.Stress.Operations,
				KeySpace:      cfg.Stress.KeySpace,
				RemoveRatio:   cfg.Stress.RemoveRatio,
				Seed:          cfg.Stress.Seed,
				ValidateEvery: cfg.Stress.ValidateEvery,
			}
			if cmd.Flags().Changed("ops") {
				opts.Operations = ops
			}
			if cmd.Flags().Changed("key-space") {
				opts.KeySpace = keySpace
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed = seed
			}
			if cfg.Stress.Progress && !noProgress {
				opts.Progress = cmd.ErrOrStderr()
			}

			res, err := stress.Run(cmd.Context(), avltree.New[int](), opts)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), opts, res)
			return nil
		},
	}
	cmd.Flags().IntVar(&ops, "ops", 0, "number of operations (overrides config)")
	cmd.Flags().IntVar(&keySpace, "key-space", 0, "keys are drawn from [0, key-space) (overrides config)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (overrides config)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "do not draw a progress bar")

	return cmd
}

func printResult(w io.Writer, opts stress.Options, res *stress.Result) {
	fmt.Fprintln(w, titleStyle.Render("Stress run"))
	fmt.Fprintln(w, row("seed", opts.Seed))
	fmt.Fprintln(w, row("operations", res.Operations))
	fmt.Fprintln(w, row("inserted", res.Inserted))
	fmt.Fprintln(w, row("duplicates", res.Duplicates))
	fmt.Fprintln(w, row("removed", res.Removed))
	fmt.Fprintln(w, row("missing", res.Missing))
	fmt.Fprintln(w, row("never inserted", res.NeverSeen))
	fmt.Fprintln(w, row("final size", res.FinalLen))
	fmt.Fprintln(w, row("final height", fmt.Sprintf("%d (limit %d)", res.FinalHeight, stress.MaxHeight(res.FinalLen))))
	fmt.Fprintln(w, row("elapsed", res.Elapsed.Round(time.Millisecond)))
	fmt.Fprintln(w, okStyle.Render("all invariants held"))
}
