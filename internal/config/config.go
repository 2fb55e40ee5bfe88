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

// Package config loads the YAML settings used by the avltree command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const fileName = ".avltree.yaml"

// Key types understood by the replay command.
const (
	KeyTypeInt    = "int"
	KeyTypeString = "string"
)

type KeysConfig struct {
	Type string `yaml:"type"`
}

type ReplayConfig struct {
	Validate bool          `yaml:"validate"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type StressConfig struct {
	Operations    int     `yaml:"operations"`
	KeySpace      int     `yaml:"key_space"`
	RemoveRatio   float64 `yaml:"remove_ratio"`
	Seed          uint64  `yaml:"seed"`
	ValidateEvery int     `yaml:"validate_every"`
	Progress      bool    `yaml:"progress"`
}

type Config struct {
	Keys   KeysConfig   `yaml:"keys"`
	Replay ReplayConfig `yaml:"replay"`
	Stress StressConfig `yaml:"stress"`
}

// Default returns the settings used when no configuration file exists.
func Default() *Config {
	return &Config{
		Keys: KeysConfig{
			Type: KeyTypeInt,
		},
		Replay: ReplayConfig{
			Validate: true,
			CacheTTL: 30 * time.Minute,
		},
		Stress: StressConfig{
			Operations:    100000,
			KeySpace:      5000,
			RemoveRatio:   0.4,
			Seed:          1,
			ValidateEvery: 1000,
			Progress:      true,
		},
	}
}

// DefaultPath returns ~/.avltree.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, fileName), nil
}

// Load reads the configuration at path, or at DefaultPath when path is empty.
// A missing file yields the defaults. Settings left out of the file keep
// their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// WriteDefault writes the default configuration to path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate rejects settings the commands cannot run with.
func (c *Config) Validate() error {
	switch c.Keys.Type {
	case KeyTypeInt, KeyTypeString:
	default:
		return fmt.Errorf("keys.type must be %q or %q, got %q", KeyTypeInt, KeyTypeString, c.Keys.Type)
	}

	if c.Replay.CacheTTL <= 0 {
		return fmt.Errorf("replay.cache_ttl must be positive, got %s", c.Replay.CacheTTL)
	}

	s := c.Stress
	if s.Operations <= 0 {
		return fmt.Errorf("stress.operations must be positive, got %d", s.Operations)
	}
	if s.KeySpace <= 0 {
		return fmt.Errorf("stress.key_space must be positive, got %d", s.KeySpace)
	}
	if s.RemoveRatio < 0 || s.RemoveRatio > 1 {
		return fmt.Errorf("stress.remove_ratio must be within [0, 1], got %g", s.RemoveRatio)
	}
	if s.ValidateEvery < 0 {
		return fmt.Errorf("stress.validate_every must not be negative, got %d", s.ValidateEvery)
	}

	return nil
}
