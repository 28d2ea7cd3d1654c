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

	"github.com/rs/zerolog"
	"github.com/walteh/muterstage/pkg/state"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Runner executes pipeline steps one after another
type Runner struct {
	logger *zerolog.Logger
}

// 🏗️ NewRunner creates a new runner; a nil logger means the context logger
func NewRunner(logger *zerolog.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// 🏃 Run executes steps in order, recording each step's changes before the next one
// starts. The first failing step stops the run.
func (r *Runner) Run(ctx context.Context, s *state.State, steps ...Step) error {
	logger := r.logger
	if logger == nil {
		logger = zerolog.Ctx(ctx)
	}

	for _, step := range steps {
		logger.Debug().Str("step", step.Name()).Msg("running step")

		changes, err := step.Run(ctx, s)
		if err != nil {
			return errors.Errorf("%s: %w", step.Name(), err)
		}

		s.Apply(ctx, changes...)
	}
	return nil
}
