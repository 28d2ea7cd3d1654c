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
	"context"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/muterstage/cmd/muterstage/opts"
	"github.com/walteh/muterstage/pkg/notify"
	"github.com/walteh/muterstage/pkg/operation"
	"github.com/walteh/muterstage/pkg/stage"
	"github.com/walteh/muterstage/pkg/state"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

// NewStageCmd creates the stage command
func NewStageCmd(o *opts.RootOpts) *cobra.Command {
	var (
		mutatedRoot string
		replace     bool
		skip        []string
		format      string
		stateFile   string
	)

	cmd := &cobra.Command{
		Use:   "stage [project-dir]",
		Short: "Copy a project into its mutation workspace and repair the copy",
		Long: `Stage copies the project to <name>_mutated, next to the project or under
$MUTER_MUTATED_ROOT, and then repairs the copy in order:
1. Remove build artifacts copied from the original
2. Resolve package dependencies
3. Run the project's fix-up script
4. Link the native runtime library into the build search path

Only a failed copy is an error. Repair failures are reported and staging continues.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if format != formatText && format != formatYAML {
				return errors.Errorf("unknown format %q: expected %s or %s", format, formatText, formatYAML)
			}

			projectDir, err := projectDirectory(args)
			if err != nil {
				return err
			}

			cfg := *o.Config
			if cmd.Flags().Changed("mutated-root") {
				cfg.MutatedRoot = mutatedRoot
			}
			if cmd.Flags().Changed("replace") {
				cfg.Replace = replace
			}

			stageOpts := cfg.StageOptions()
			for _, name := range skip {
				step, err := stage.ParseStep(name)
				if err != nil {
					return errors.Errorf("--skip: %w", err)
				}
				stageOpts.Disabled = append(stageOpts.Disabled, step)
			}

			o.Console.Header("staging " + filepath.Base(projectDir))

			copyStep := &operation.CopyProjectToTempDirectory{
				Executor: stage.NewExecutor(stageOpts, notify.NewCenter(o.Console)),
			}

			s := state.New(projectDir)
			err = operation.NewRunner(nil).Run(ctx, s,
				&operation.CreateMutatedProjectDirectory{OverrideRoot: cfg.MutatedRoot},
				copyStep,
			)
			if err != nil {
				o.Console.Close()
				return errors.Errorf("staging %s: %w", projectDir, err)
			}

			if stateFile != "" {
				if err := state.WriteState(ctx, stateFile, s); err != nil {
					return errors.Errorf("writing state: %w", err)
				}
			}

			if err := printReport(ctx, cmd.OutOrStdout(), o, format, copyStep.Report); err != nil {
				return err
			}

			// repair failures never fail the command; the copy is still usable
			if failed := copyStep.Report.Failed(); len(failed) > 0 {
				o.Console.Warningf("%d repair step(s) failed; the staged copy may need them before it builds", len(failed))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mutatedRoot, "mutated-root", "", "directory to stage under instead of next to the project")
	cmd.Flags().BoolVar(&replace, "replace", false, "remove an existing staged copy first")
	cmd.Flags().StringArrayVar(&skip, "skip", nil, "repair step to skip (repeatable)")
	cmd.Flags().StringVar(&format, "format", formatText, "report format: text or yaml")
	cmd.Flags().StringVar(&stateFile, "state", "", "write the resulting state to this file")

	return cmd
}

// printReport writes the staged path and step results. Text goes to the console with
// only the destination on w so scripts can capture it.
func printReport(ctx context.Context, w io.Writer, o *opts.RootOpts, format string, report *stage.Report) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return errors.Errorf("encoding report: %w", err)
		}
		return enc.Close()
	}

	o.Console.LogReport(ctx, report)
	if _, err := io.WriteString(w, report.Destination+"\n"); err != nil {
		return errors.Errorf("writing destination: %w", err)
	}
	return nil
}

// projectDirectory returns the absolute project path named by args, defaulting to "."
func projectDirectory(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Errorf("getting absolute project path: %w", err)
	}
	return abs, nil
}
