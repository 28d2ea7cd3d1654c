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
	"os"
	"path/filepath"
	"strings"
)

// 🩹 ApplyPatch runs the fix-up script at script (relative to dir) if the project has one
func ApplyPatch(ctx context.Context, dir string, shell []string, script string) StepResult {
	if script == "" {
		return skipped(StepApplyPatch, "no fix-up script configured")
	}

	if _, err := os.Stat(filepath.Join(dir, script)); err != nil {
		return skipped(StepApplyPatch, "fix-up script not present")
	}

	// invoked relative to the working directory, like the project's own tooling does
	rel := filepath.ToSlash(script)
	if !strings.HasPrefix(rel, "/") && !strings.HasPrefix(rel, "./") {
		rel = "./" + rel
	}

	if err := runShell(ctx, dir, shell, shellQuote(rel)); err != nil {
		return failed(StepApplyPatch, err.Error())
	}
	return ok(StepApplyPatch)
}
