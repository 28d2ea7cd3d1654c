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

// Package destination computes where a project's staged copy lives.
//
// The copy of <parent>/<name> is <parent>/<name>_mutated, unless an override root
// is given, in which case it is <root>/<name>_mutated. An override root that cannot be
// created is ignored.
package destination

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

const (
	// EnvMutatedRoot overrides the parent directory of staged copies
	EnvMutatedRoot = "MUTER_MUTATED_ROOT"

	// Suffix is appended to the project directory name
	Suffix = "_mutated"
)

// 🎯 Resolver resolves staging destinations
type Resolver struct {
	// OverrideRoot is used as the parent of the staged copy when non-blank
	OverrideRoot string
	// Home expands "~"; defaults to the user's home directory
	Home string
}

// 📍 Resolve returns the staging destination for projectDir. It never fails.
func Resolve(ctx context.Context, projectDir, overrideRoot string) string {
	return Resolver{OverrideRoot: overrideRoot}.Resolve(ctx, projectDir)
}

// 📍 Resolve returns the staging destination for projectDir. Relative paths are made
// absolute first. The override root is created (with parents) when used; any failure
// falls back to the sibling directory.
func (r Resolver) Resolve(ctx context.Context, projectDir string) string {
	logger := zerolog.Ctx(ctx)

	projectDir = absolute(projectDir)
	mutatedName := filepath.Base(projectDir) + Suffix

	if root := strings.TrimSpace(r.OverrideRoot); root != "" {
		expanded := absolute(ExpandHome(root, r.home()))
		err := os.MkdirAll(expanded, 0o755)
		if err == nil {
			return filepath.Join(expanded, mutatedName)
		}
		logger.Debug().Err(err).Str("root", expanded).Msg("override root unusable, using sibling directory")
	}

	return filepath.Join(filepath.Dir(projectDir), mutatedName)
}

// absolute returns the cleaned absolute form of path, or the cleaned path when the
// working directory is unavailable
func absolute(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

func (r Resolver) home() string {
	if r.Home != "" {
		return r.Home
	}
	return xdg.Home
}

// 🏠 ExpandHome replaces a leading "~" or "~/" in path with home. "~user" is not
// supported and is returned unchanged.
func ExpandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return filepath.Join(home, path[2:])
	}
	return path
}
