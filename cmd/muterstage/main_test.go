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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootStage(t *testing.T) {
	newProject := func(t *testing.T) (string, string) {
		tmp := t.TempDir()
		project := filepath.Join(tmp, "App")
		require.NoError(t, os.MkdirAll(filepath.Join(project, "DerivedData"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(project, "Package.swift"), []byte("// swift-tools-version:5.9\n"), 0o644))

		cfg := writeConfig(t, tmp, "muterstage.yaml", `
repair:
  shell: [sh, -c]
  resolve_command: "true"
`)
		return project, cfg
	}

	check := func(t *testing.T, out, want string) {
		assert.Equal(t, want+"\n", out)

		_, err := os.Stat(filepath.Join(want, "Package.swift"))
		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(want, "DerivedData"))
		assert.True(t, os.IsNotExist(err))
	}

	t.Run("sibling", func(t *testing.T) {
		t.Setenv("MUTER_MUTATED_ROOT", "")
		project, cfg := newProject(t)

		out, err := runRoot(t, "stage", project, "-c", cfg, "--env-file", filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		check(t, out, project+"_mutated")
	})

	t.Run("env_root", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "mutants")
		t.Setenv("MUTER_MUTATED_ROOT", root)
		project, cfg := newProject(t)

		out, err := runRoot(t, "stage", project, "--config", cfg, "--env-file", filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		check(t, out, filepath.Join(root, "App_mutated"))
	})

	t.Run("dotenv_root", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "mutants")
		// registers the restore, then clears it so the dotenv value applies
		t.Setenv("MUTER_MUTATED_ROOT", "")
		require.NoError(t, os.Unsetenv("MUTER_MUTATED_ROOT"))
		project, cfg := newProject(t)
		dotenv := writeConfig(t, t.TempDir(), ".env", "MUTER_MUTATED_ROOT="+root+"\n")

		out, err := runRoot(t, "stage", project, "-c", cfg, "--env-file", dotenv)
		require.NoError(t, err)
		check(t, out, filepath.Join(root, "App_mutated"))
	})

	t.Run("flag_beats_env", func(t *testing.T) {
		t.Setenv("MUTER_MUTATED_ROOT", filepath.Join(t.TempDir(), "from-env"))
		root := filepath.Join(t.TempDir(), "from-flag")
		project, cfg := newProject(t)

		out, err := runRoot(t, "stage", project, "-c", cfg, "--mutated-root", root, "--env-file", filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		check(t, out, filepath.Join(root, "App_mutated"))
	})
}

func TestRootExplicitConfigMustExist(t *testing.T) {
	_, err := runRoot(t, "resolve", t.TempDir(), "-c", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestRootInvalidConfig(t *testing.T) {
	cfg := writeConfig(t, t.TempDir(), "c.yaml", "repair:\n  skip: [polish]\n")
	_, err := runRoot(t, "resolve", t.TempDir(), "-c", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown repair step")
}

func TestDebugFlagSetsLogLevel(t *testing.T) {
	t.Setenv("MUTER_MUTATED_ROOT", "")
	prev := zerolog.DefaultContextLogger
	t.Cleanup(func() { zerolog.DefaultContextLogger = prev })
	envFile := filepath.Join(t.TempDir(), "missing.env")

	_, err := runRoot(t, "resolve", t.TempDir(), "-d", "--env-file", envFile)
	require.NoError(t, err)
	require.NotNil(t, zerolog.DefaultContextLogger)
	assert.Equal(t, zerolog.DebugLevel, zerolog.DefaultContextLogger.GetLevel())

	_, err = runRoot(t, "resolve", t.TempDir(), "--env-file", envFile)
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, zerolog.DefaultContextLogger.GetLevel())
}

func TestVersion(t *testing.T) {
	out, err := runRoot(t, "version", "-c", filepath.Join(t.TempDir(), "ignored.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "🚀 muterstage version info:")
	assert.Contains(t, out, "Go:")

	formatted := FormatVersion(&VersionInfo{
		Version:   "v1.2.3",
		GoVersion: "go1.23.5",
		Platform:  "darwin/arm64",
		Revision:  "abc123",
		Time:      "2025-01-01T00:00:00Z",
		Modified:  true,
	})
	assert.Equal(t, `🚀 muterstage version info:
Version:   v1.2.3
Revision:  abc123 (modified)
Built:     2025-01-01T00:00:00Z
Go:        go1.23.5
Platform:  darwin/arm64
`, formatted)
}
