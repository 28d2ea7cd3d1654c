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
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🐚 runShell runs script through shell with dir as working directory and waits for it.
// No timeout is applied.
func runShell(ctx context.Context, dir string, shell []string, script string) error {
	if len(shell) == 0 {
		return errors.Errorf("no shell configured")
	}

	args := append(append([]string(nil), shell[1:]...), script)
	cmd := exec.CommandContext(ctx, shell[0], args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	zerolog.Ctx(ctx).Debug().
		Str("command", script).
		Strs("shell", shell).
		Str("dir", dir).
		Msg("running command")

	err := cmd.Run()

	zerolog.Ctx(ctx).Trace().Str("command", script).Str("output", out.String()).Msg("command output")

	if err != nil {
		if last := lastLine(out.String()); last != "" {
			return errors.Errorf("running %q: %w: %s", script, err, last)
		}
		return errors.Errorf("running %q: %w", script, err)
	}
	return nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}

// shellQuote quotes s for POSIX shells
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
