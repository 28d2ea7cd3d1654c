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
	"strings"
)

// 📦 ResolveDependencies runs the package manager's resolve command inside dir.
// A failure here is expected to be retried by the build that runs the tests.
func ResolveDependencies(ctx context.Context, dir string, shell []string, command string) StepResult {
	if strings.TrimSpace(command) == "" {
		return skipped(StepResolveDependencies, "no resolve command configured")
	}

	if err := runShell(ctx, dir, shell, command); err != nil {
		return failed(StepResolveDependencies, err.Error())
	}
	return ok(StepResolveDependencies)
}
