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
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/walteh/muterstage/pkg/destination"
	"gitlab.com/tozd/go/errors"
)

// LookupFunc reads an environment variable; os.LookupEnv fits
type LookupFunc func(key string) (string, bool)

// 🌱 ApplyEnv overrides file settings with the environment. A blank
// MUTER_MUTATED_ROOT leaves the configured root alone.
func (cfg *Config) ApplyEnv(lookup LookupFunc) {
	if lookup == nil {
		return
	}
	if root, ok := lookup(destination.EnvMutatedRoot); ok && strings.TrimSpace(root) != "" {
		cfg.MutatedRoot = root
	}
}

// 📄 LoadDotEnv loads variables from a .env file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Errorf("checking env file: %w", err)
	}

	if err := godotenv.Load(path); err != nil {
		return errors.Errorf("loading env file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loaded env file")
	return nil
}
