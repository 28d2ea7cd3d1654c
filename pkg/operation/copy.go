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

package operation

import (
	"context"

	"github.com/walteh/muterstage/pkg/stage"
	"github.com/walteh/muterstage/pkg/state"
	"gitlab.com/tozd/go/errors"
)

// 📦 CopyProjectToTempDirectory copies the project into the resolved destination and
// repairs the copy
type CopyProjectToTempDirectory struct {
	Executor *stage.Executor

	// Report is the last staging report; nil until Run succeeds
	Report *stage.Report
}

func (op *CopyProjectToTempDirectory) Name() string {
	return "copy-project-to-temp-directory"
}

// 🏃 Run stages the project. The returned error is always a *stage.ProjectCopyFailedError
// once the inputs are valid.
func (op *CopyProjectToTempDirectory) Run(ctx context.Context, s *state.State) ([]state.Change, error) {
	if op.Executor == nil {
		return nil, errors.Errorf("executor is required")
	}
	if s.ProjectDirectory == "" {
		return nil, errors.Errorf("project directory is required")
	}
	if s.MutatedProjectDirectory == "" {
		return nil, errors.Errorf("mutated project directory has not been resolved")
	}

	report, err := op.Executor.Stage(ctx, s.ProjectDirectory, s.MutatedProjectDirectory)
	if err != nil {
		return nil, err
	}
	op.Report = report

	return nil, nil
}
