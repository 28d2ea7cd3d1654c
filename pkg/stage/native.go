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

	"github.com/rs/zerolog"
)

// 🔗 LinkNativeRuntime makes the prebuilt library at library (relative to dir) visible in
// the toolchain's search directory searchDir by symlinking it there.
func LinkNativeRuntime(ctx context.Context, dir, library, searchDir string) StepResult {
	if library == "" || searchDir == "" {
		return skipped(StepLinkNativeRuntime, "no native library configured")
	}

	libPath, err := filepath.Abs(filepath.Join(dir, library))
	if err != nil {
		return failed(StepLinkNativeRuntime, err.Error())
	}
	if _, err := os.Stat(libPath); err != nil {
		return skipped(StepLinkNativeRuntime, "native library not present")
	}

	var failures []string

	linkDir := filepath.Join(dir, searchDir)
	if err := os.MkdirAll(linkDir, 0o755); err != nil {
		failures = append(failures, fmt.Sprintf("creating %s: %v", searchDir, err))
	}

	linkPath := filepath.Join(linkDir, filepath.Base(library))
	if _, err := os.Lstat(linkPath); err == nil {
		if err := os.RemoveAll(linkPath); err != nil {
			failures = append(failures, fmt.Sprintf("removing stale %s: %v", filepath.Base(library), err))
		}
	}

	target := libPath
	if real, err := filepath.EvalSymlinks(libPath); err == nil {
		target = real
	}

	if err := os.Symlink(target, linkPath); err != nil {
		failures = append(failures, fmt.Sprintf("linking %s: %v", filepath.Base(library), err))
	}

	if len(failures) > 0 {
		return failed(StepLinkNativeRuntime, strings.Join(failures, "; "))
	}

	zerolog.Ctx(ctx).Debug().Str("link", linkPath).Str("target", target).Msg("linked native runtime")
	return ok(StepLinkNativeRuntime)
}
