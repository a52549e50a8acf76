// Copyright 2025 walteh LLC
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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultPattern matches the per-user phone configuration files
	DefaultPattern = "*-user.cfg"
	// MaxWorkers bounds concurrent file processing
	MaxWorkers = 64
)

// 🚦 ErrorPolicy decides what a run does when a file cannot be processed
type ErrorPolicy string

const (
	PolicySkip  ErrorPolicy = "skip"  // record the failure and continue
	PolicyAbort ErrorPolicy = "abort" // stop the run at the first failure
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration
type Config struct {
	SearchFolder string      `json:"search_folder,omitempty" yaml:"search_folder,omitempty" toml:"search_folder" hcl:"search_folder,optional"`
	Pattern      string      `json:"pattern,omitempty" yaml:"pattern,omitempty" toml:"pattern" hcl:"pattern,optional"`
	LogsDir      string      `json:"logs_dir,omitempty" yaml:"logs_dir,omitempty" toml:"logs_dir" hcl:"logs_dir,optional"`
	OnError      ErrorPolicy `json:"on_error,omitempty" yaml:"on_error,omitempty" toml:"on_error" hcl:"on_error,optional"`
	Workers      int         `json:"workers,omitempty" yaml:"workers,omitempty" toml:"workers" hcl:"workers,optional"`
	Backup       bool        `json:"backup,omitempty" yaml:"backup,omitempty" toml:"backup" hcl:"backup,optional"`
	DryRun       bool        `json:"dry_run,omitempty" yaml:"dry_run,omitempty" toml:"dry_run" hcl:"dry_run,optional"`
}

// 🏭 Default returns a validated configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// 🎯 Load loads the configuration from a file.
//
// Relative search_folder and logs_dir values are resolved against the
// directory holding the config file.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	base := filepath.Dir(path)
	if cfg.SearchFolder != "" && !filepath.IsAbs(cfg.SearchFolder) {
		cfg.SearchFolder = filepath.Join(base, cfg.SearchFolder)
	}
	if cfg.LogsDir != "" && !filepath.IsAbs(cfg.LogsDir) {
		cfg.LogsDir = filepath.Join(base, cfg.LogsDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid and applies defaults
func (cfg *Config) Validate() error {
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(cfg.Pattern) {
		return errors.Errorf("pattern %q is not a valid glob", cfg.Pattern)
	}

	switch cfg.OnError {
	case "":
		cfg.OnError = PolicySkip
	case PolicySkip, PolicyAbort:
	default:
		return errors.Errorf("on_error must be %q or %q, got %q", PolicySkip, PolicyAbort, cfg.OnError)
	}

	switch {
	case cfg.Workers < 0:
		return errors.Errorf("workers must not be negative")
	case cfg.Workers == 0:
		cfg.Workers = 1
	case cfg.Workers > MaxWorkers:
		return errors.Errorf("workers must be at most %d", MaxWorkers)
	}

	if cfg.SearchFolder != "" {
		cfg.SearchFolder = filepath.Clean(cfg.SearchFolder)
	}
	if cfg.LogsDir != "" {
		cfg.LogsDir = filepath.Clean(cfg.LogsDir)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	folder := cfg.SearchFolder
	if folder == "" {
		folder = "<default folder>"
	}
	mode := "write"
	if cfg.DryRun {
		mode = "dry-run"
	}
	return fmt.Sprintf("%s/**/%s (%s, on_error=%s, workers=%d)", folder, cfg.Pattern, mode, cfg.OnError, cfg.Workers)
}
