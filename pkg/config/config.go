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
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/muterstage/pkg/stage"
	"gitlab.com/tozd/go/errors"
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

// 🩺 RepairArgs configures the repair steps run on the staged copy. Empty fields
// fall back to the stage package defaults.
type RepairArgs struct {
	Prune            []string `json:"prune,omitempty" yaml:"prune,omitempty" hcl:"prune,optional"`
	Shell            []string `json:"shell,omitempty" yaml:"shell,omitempty" hcl:"shell,optional"`
	ResolveCommand   string   `json:"resolve_command,omitempty" yaml:"resolve_command,omitempty" hcl:"resolve_command,optional"`
	FixupScript      string   `json:"fixup_script,omitempty" yaml:"fixup_script,omitempty" hcl:"fixup_script,optional"`
	NativeLibrary    string   `json:"native_library,omitempty" yaml:"native_library,omitempty" hcl:"native_library,optional"`
	LibrarySearchDir string   `json:"library_search_dir,omitempty" yaml:"library_search_dir,omitempty" hcl:"library_search_dir,optional"`
	Skip             []string `json:"skip,omitempty" yaml:"skip,omitempty" hcl:"skip,optional"`
}

// 📚 Config represents the complete configuration
type Config struct {
	MutatedRoot string      `json:"mutated_root,omitempty" yaml:"mutated_root,omitempty" hcl:"mutated_root,optional"`
	Replace     bool        `json:"replace,omitempty" yaml:"replace,omitempty" hcl:"replace,optional"`
	Repair      *RepairArgs `json:"repair,omitempty" yaml:"repair,omitempty" hcl:"repair,block"`
}

// Default returns an empty configuration; every value comes from the stage defaults
func Default() *Config {
	return &Config{}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 LoadOptional loads path, returning the default configuration when it does not exist
func LoadOptional(ctx context.Context, path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no configuration file, using defaults")
			return Default(), nil
		}
		return nil, errors.Errorf("checking config file: %w", err)
	}
	return Load(ctx, path)
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Repair == nil {
		return nil
	}
	r := cfg.Repair

	for _, pattern := range r.Prune {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("repair.prune: invalid pattern %q", pattern)
		}
		if err := checkRelative("repair.prune", pattern); err != nil {
			return err
		}
	}

	for field, path := range map[string]string{
		"repair.fixup_script":       r.FixupScript,
		"repair.native_library":     r.NativeLibrary,
		"repair.library_search_dir": r.LibrarySearchDir,
	} {
		if path == "" {
			continue
		}
		if err := checkRelative(field, path); err != nil {
			return err
		}
	}

	for _, name := range r.Skip {
		if _, err := stage.ParseStep(name); err != nil {
			return errors.Errorf("repair.skip: %w", err)
		}
	}

	return nil
}

// checkRelative rejects paths that would leave the staged directory
func checkRelative(field, path string) error {
	if filepath.IsAbs(path) {
		return errors.Errorf("%s: %q must be relative to the project", field, path)
	}
	clean := filepath.ToSlash(filepath.Clean(path))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.Errorf("%s: %q escapes the project", field, path)
	}
	return nil
}

// 🔧 StageOptions converts the configuration into executor options
func (cfg *Config) StageOptions() stage.Options {
	opts := stage.DefaultOptions()
	opts.Replace = cfg.Replace

	r := cfg.Repair
	if r == nil {
		return opts
	}

	if len(r.Prune) > 0 {
		opts.PrunePatterns = append([]string(nil), r.Prune...)
	}
	if len(r.Shell) > 0 {
		opts.Shell = append([]string(nil), r.Shell...)
	}
	if r.ResolveCommand != "" {
		opts.ResolveCommand = r.ResolveCommand
	}
	if r.FixupScript != "" {
		opts.FixupScript = r.FixupScript
	}
	if r.NativeLibrary != "" {
		opts.NativeLibrary = r.NativeLibrary
	}
	if r.LibrarySearchDir != "" {
		opts.LibrarySearchDir = r.LibrarySearchDir
	}
	for _, name := range r.Skip {
		if step, err := stage.ParseStep(name); err == nil {
			opts.Disabled = append(opts.Disabled, step)
		}
	}

	return opts
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	root := cfg.MutatedRoot
	if strings.TrimSpace(root) == "" {
		root = "<sibling>"
	}
	return fmt.Sprintf("mutated_root=%s replace=%t", root, cfg.Replace)
}
