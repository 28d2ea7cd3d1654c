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

package stage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// 🧹 PruneArtifacts removes build output matching patterns (relative to dir).
// Removal failures end up in the result, never in an error.
func PruneArtifacts(ctx context.Context, dir string, patterns []string) StepResult {
	logger := zerolog.Ctx(ctx)
	fsys := os.DirFS(dir)

	removed := 0
	var failures []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", pattern, err))
			continue
		}
		for _, match := range matches {
			target := filepath.Join(dir, filepath.FromSlash(match))
			if err := os.RemoveAll(target); err != nil {
				logger.Debug().Err(err).Str("path", match).Msg("error removing build artifact")
				failures = append(failures, fmt.Sprintf("%s: %v", match, err))
				continue
			}
			logger.Debug().Str("path", match).Str("pattern", pattern).Msg("removed build artifact")
			removed++
		}
	}

	switch {
	case len(failures) > 0:
		return failed(StepPruneArtifacts, strings.Join(failures, "; "))
	case removed == 0:
		return skipped(StepPruneArtifacts, "no build artifacts found")
	default:
		return ok(StepPruneArtifacts)
	}
}
