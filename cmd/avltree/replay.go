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
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cybrota/avltree"
	"github.com/cybrota/avltree/internal/config"
	"github.com/cybrota/avltree/internal/script"
)

func newReplayCmd() *cobra.Command {
	var (
		keyType    string
		noValidate bool
	)

	cmd := &cobra.Command{
		Use:   "replay script...",
		Short: "Run operation scripts against a fresh tree",
		Long: `Replay parses each script and applies its operations, in order, to one tree.
Each line holds an operation (insert, remove, contains, print, len, height,
check, clear) followed by its keys.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if keyType != "" {
				cfg.Keys.Type = keyType
			}
			validate := cfg.Replay.Validate && !noValidate

			cache := script.NewCache(cfg.Replay.CacheTTL)
			switch cfg.Keys.Type {
			case config.KeyTypeInt:
				return replay(cmd.Context(), cmd.OutOrStdout(), cache, avltree.New[int](), script.IntKeys, validate, args)
			case config.KeyTypeString:
				return replay(cmd.Context(), cmd.OutOrStdout(), cache, avltree.New[string](), script.StringKeys, validate, args)
			default:
				return fmt.Errorf("unsupported key type %q", cfg.Keys.Type)
			}
		},
	}
	cmd.Flags().StringVar(&keyType, "keys", "", "key type: int or string (overrides config)")
	cmd.Flags().BoolVar(&noValidate, "no-validate", false, "skip the invariant check after each mutation")

	return cmd
}

func replay[T any](ctx context.Context, out io.Writer, cache *script.Cache, tree *avltree.Tree[T], keys script.KeyParser[T], validate bool, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	runner := script.NewRunner(tree, keys, out)
	runner.Validate = validate

	var total script.Stats
	for _, path := range paths {
		ops, err := cache.Load(path)
		if err != nil {
			return err
		}

		slog.Debug("replaying script", "path", path, "ops", len(ops))
		stats, err := runner.Run(ctx, ops)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		total.Ops += stats.Ops
		total.Added += stats.Added
		total.Duplicates += stats.Duplicates
		total.Removed += stats.Removed
		total.Missing += stats.Missing
		total.Hits += stats.Hits
		total.Misses += stats.Misses
	}

	slog.Info("replay finished",
		"scripts", len(paths),
		"ops", total.Ops,
		"added", total.Added,
		"duplicates", total.Duplicates,
		"removed", total.Removed,
		"missing", total.Missing,
		"hits", total.Hits,
		"misses", total.Misses,
		"len", tree.Len(),
		"height", tree.Height(),
	)
	return nil
}
