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
	"io/fs"
	"os"
	"slices"

	"github.com/rs/zerolog"
	"github.com/walteh/muterstage/pkg/notify"
	"gitlab.com/tozd/go/errors"
)

// Layout the repair steps expect inside a staged project.
const (
	DefaultResolveCommand   = "swift package resolve --skip-update"
	DefaultFixupScript      = "Tools/scripts/fix-swiftbox2d-casefold.sh"
	DefaultNativeLibrary    = "ThirdParty/CXX/audioFlux/build/macOSBuild/libaudioflux.dylib"
	DefaultLibrarySearchDir = ".build/arm64-apple-macosx/debug"
)

// DefaultPrunePatterns are the build output directories removed from every copy
func DefaultPrunePatterns() []string {
	return []string{".build", "Derived", "DerivedData"}
}

// DefaultShell is the command prefix subprocesses run through
func DefaultShell() []string {
	return []string{"/usr/bin/env", "bash", "-lc"}
}

// 🔧 Options configures an Executor
type Options struct {
	PrunePatterns    []string
	Shell            []string
	ResolveCommand   string
	FixupScript      string
	NativeLibrary    string
	LibrarySearchDir string

	// Disabled steps are reported as skipped without running
	Disabled []Step

	// Replace removes an existing destination before copying instead of failing
	Replace bool
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		PrunePatterns:    DefaultPrunePatterns(),
		Shell:            DefaultShell(),
		ResolveCommand:   DefaultResolveCommand,
		FixupScript:      DefaultFixupScript,
		NativeLibrary:    DefaultNativeLibrary,
		LibrarySearchDir: DefaultLibrarySearchDir,
	}
}

// 🏗️ Executor copies a project into its staging destination and repairs the copy
type Executor struct {
	opts   Options
	center *notify.Center
}

// 🏭 NewExecutor creates an executor. center may be nil.
func NewExecutor(opts Options, center *notify.Center) *Executor {
	return &Executor{
		opts:   opts,
		center: center,
	}
}

// Options returns the executor's options
func (e *Executor) Options() Options {
	return e.opts
}

// 🏃 Stage copies projectDir to destination and runs every repair step on the copy.
// Only a failed copy is returned as an error (a *ProjectCopyFailedError).
func (e *Executor) Stage(ctx context.Context, projectDir, destination string) (*Report, error) {
	logger := zerolog.Ctx(ctx)

	e.center.Post(ctx, notify.Notification{Event: notify.ProjectCopyStarted})

	if e.opts.Replace {
		if err := removeExisting(destination); err != nil {
			return nil, projectCopyFailed(err)
		}
	}

	logger.Debug().Str("from", projectDir).Str("to", destination).Msg("copying project")
	if err := copyTree(ctx, projectDir, destination); err != nil {
		return nil, projectCopyFailed(err)
	}

	report := e.Repair(ctx, destination)

	e.center.Post(ctx, notify.Notification{Event: notify.ProjectCopyFinished, Object: destination})

	return report, nil
}

// 🩺 Repair runs the repair steps against an already staged directory. Steps are
// independent; each one runs whatever happened to the ones before it.
func (e *Executor) Repair(ctx context.Context, destination string) *Report {
	report := &Report{Destination: destination}

	for _, step := range Steps() {
		var res StepResult
		if slices.Contains(e.opts.Disabled, step) {
			res = skipped(step, "disabled")
		} else {
			res = e.run(ctx, step, destination)
		}
		res.log(ctx)
		report.Steps = append(report.Steps, res)
	}

	return report
}

func (e *Executor) run(ctx context.Context, step Step, destination string) StepResult {
	switch step {
	case StepPruneArtifacts:
		return PruneArtifacts(ctx, destination, e.opts.PrunePatterns)
	case StepResolveDependencies:
		return ResolveDependencies(ctx, destination, e.opts.Shell, e.opts.ResolveCommand)
	case StepApplyPatch:
		return ApplyPatch(ctx, destination, e.opts.Shell, e.opts.FixupScript)
	case StepLinkNativeRuntime:
		return LinkNativeRuntime(ctx, destination, e.opts.NativeLibrary, e.opts.LibrarySearchDir)
	default:
		return failed(step, "unknown step")
	}
}

func removeExisting(path string) error {
	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Errorf("checking destination: %w", err)
	}
	if err := os.RemoveAll(path); err != nil {
		return errors.Errorf("removing previous destination: %w", err)
	}
	return nil
}
