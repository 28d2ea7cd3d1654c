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

package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/muterstage/cmd/muterstage/opts"
	"github.com/walteh/muterstage/pkg/config"
	"github.com/walteh/muterstage/pkg/log"
	"github.com/walteh/muterstage/pkg/stage"
	"github.com/walteh/muterstage/pkg/state"
	"github.com/walteh/muterstage/pkg/testutils"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🧪 testOpts returns root options that run repairs through sh and capture the console
func testOpts(t *testing.T) (*opts.RootOpts, *bytes.Buffer) {
	var console bytes.Buffer
	return &opts.RootOpts{
		Config: &config.Config{
			Repair: &config.RepairArgs{
				Shell:          []string{"sh", "-c"},
				ResolveCommand: "true",
			},
		},
		Console: log.New(&console, zerolog.New(zerolog.NewTestWriter(t))),
	}, &console
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(testutils.Context(t))
	return out.String(), err
}

func TestStageCommand(t *testing.T) {
	o, console := testOpts(t)
	project := testutils.NewProject(t, "App")
	root := filepath.Join(t.TempDir(), "mutants")

	out, err := execute(t, NewStageCmd(o), project, "--mutated-root", root)
	require.NoError(t, err)

	want := filepath.Join(root, "App_mutated")
	assert.Equal(t, want+"\n", out)

	content, err := os.ReadFile(filepath.Join(want, "Sources", "App", "main.swift"))
	require.NoError(t, err)
	assert.Equal(t, "print(\"hello\")\n", string(content))

	_, err = os.Stat(filepath.Join(want, ".build"))
	assert.True(t, os.IsNotExist(err), ".build should be pruned")

	text := console.String()
	assert.Contains(t, text, "staging App")
	assert.Contains(t, text, "staged at")
	assert.NotContains(t, text, "repair step(s) failed")
	for _, step := range stage.Steps() {
		assert.Contains(t, text, string(step))
	}
}

func TestStageCommandWarnsOnRepairFailure(t *testing.T) {
	o, console := testOpts(t)
	o.Config.Repair.ResolveCommand = "exit 3"
	project := testutils.NewProject(t, "App")

	out, err := execute(t, NewStageCmd(o), project)
	require.NoError(t, err, "repair failures must not fail the command")
	assert.Equal(t, project+"_mutated\n", out)
	assert.Contains(t, console.String(), "1 repair step(s) failed")
}

func TestStageCommandYAMLReport(t *testing.T) {
	o, _ := testOpts(t)
	project := testutils.NewProject(t, "App")

	out, err := execute(t, NewStageCmd(o), project, "--format", "yaml", "--skip", "apply-patch")
	require.NoError(t, err)

	var report stage.Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))

	assert.Equal(t, project+"_mutated", report.Destination)
	require.Len(t, report.Steps, 4)
	result := func(step stage.Step) stage.StepResult {
		r, ok := report.Result(step)
		require.True(t, ok, "missing %s", step)
		return r
	}
	assert.Equal(t, stage.OutcomeOK, result(stage.StepPruneArtifacts).Outcome)
	assert.Equal(t, stage.OutcomeOK, result(stage.StepResolveDependencies).Outcome)
	assert.Equal(t, stage.OutcomeSkipped, result(stage.StepApplyPatch).Outcome)
	assert.Equal(t, "disabled", result(stage.StepApplyPatch).Reason)
}

func TestStageCommandReplace(t *testing.T) {
	project := testutils.NewProject(t, "App")

	o, _ := testOpts(t)
	_, err := execute(t, NewStageCmd(o), project)
	require.NoError(t, err)

	o, _ = testOpts(t)
	_, err = execute(t, NewStageCmd(o), project)
	require.Error(t, err)
	assert.ErrorIs(t, err, stage.ErrProjectCopyFailed)

	o, _ = testOpts(t)
	_, err = execute(t, NewStageCmd(o), project, "--replace")
	require.NoError(t, err)
}

func TestStageCommandWritesState(t *testing.T) {
	o, _ := testOpts(t)
	project := testutils.NewProject(t, "App")
	stateFile := filepath.Join(t.TempDir(), "state.yaml")

	_, err := execute(t, NewStageCmd(o), project, "--state", stateFile)
	require.NoError(t, err)

	s, err := state.LoadState(context.Background(), stateFile)
	require.NoError(t, err)
	assert.Equal(t, project, s.ProjectDirectory)
	assert.Equal(t, project+"_mutated", s.MutatedProjectDirectory)
}

func TestStageCommandErrors(t *testing.T) {
	tests := []struct {
		name        string
		args        func(project string) []string
		errContains string
		copyFailure bool
	}{
		{
			name:        "unknown_skip",
			args:        func(project string) []string { return []string{project, "--skip", "polish"} },
			errContains: "unknown repair step",
		},
		{
			name:        "unknown_format",
			args:        func(project string) []string { return []string{project, "--format", "xml"} },
			errContains: "unknown format",
		},
		{
			name:        "missing_project",
			args:        func(project string) []string { return []string{filepath.Join(project, "nope")} },
			errContains: "project copy failed",
			copyFailure: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _ := testOpts(t)
			project := testutils.NewProject(t, "App")

			_, err := execute(t, NewStageCmd(o), tt.args(project)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.Equal(t, tt.copyFailure, errors.Is(err, stage.ErrProjectCopyFailed))
		})
	}
}

func TestResolveCommand(t *testing.T) {
	project := testutils.NewProject(t, "App")

	t.Run("sibling", func(t *testing.T) {
		o, _ := testOpts(t)
		out, err := execute(t, NewResolveCmd(o), project)
		require.NoError(t, err)
		assert.Equal(t, project+"_mutated\n", out)

		_, err = os.Stat(project + "_mutated")
		assert.True(t, os.IsNotExist(err), "resolve must not copy")
	})

	t.Run("config_root", func(t *testing.T) {
		o, _ := testOpts(t)
		o.Config.MutatedRoot = filepath.Join(t.TempDir(), "from-config")
		out, err := execute(t, NewResolveCmd(o), project)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(o.Config.MutatedRoot, "App_mutated")+"\n", out)
	})

	t.Run("flag_wins", func(t *testing.T) {
		o, _ := testOpts(t)
		o.Config.MutatedRoot = filepath.Join(t.TempDir(), "from-config")
		root := filepath.Join(t.TempDir(), "from-flag")
		out, err := execute(t, NewResolveCmd(o), project, "--mutated-root", root)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "App_mutated")+"\n", out)
	})
}
