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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cybrota/avltree/internal/config"
)

func configPath(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration, creating the default file if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(cmd)
			if err != nil {
				return fmt.Errorf("failed to get config path: %w", err)
			}

			created := false
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				if err := config.WriteDefault(path); err != nil {
					return err
				}
				created = true
			}

			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			displaySettings(cmd.OutOrStdout(), path, created, cfg)
			return nil
		},
	}
}

func displaySettings(w io.Writer, path string, created bool, cfg *config.Config) {
	fmt.Fprintln(w, titleStyle.Render("avltree configuration"))
	if created {
		fmt.Fprintln(w, row("config file", path+" (newly created)"))
	} else {
		fmt.Fprintln(w, row("config file", path))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, row("keys.type", cfg.Keys.Type))
	fmt.Fprintln(w, row("replay.validate", cfg.Replay.Validate))
	fmt.Fprintln(w, row("replay.cache_ttl", cfg.Replay.CacheTTL))
	fmt.Fprintln(w, row("stress.operations", cfg.Stress.Operations))
	fmt.Fprintln(w, row("stress.key_space", cfg.Stress.KeySpace))
	fmt.Fprintln(w, row("stress.remove_ratio", cfg.Stress.RemoveRatio))
	fmt.Fprintln(w, row("stress.seed", cfg.Stress.Seed))
	fmt.Fprintln(w, row("stress.validate_every", cfg.Stress.ValidateEvery))
	fmt.Fprintln(w, row("stress.progress", cfg.Stress.Progress))
	fmt.Fprintln(w)
	fmt.Fprintln(w, hintStyle.Render("Edit "+path+" to change these settings."))
}
