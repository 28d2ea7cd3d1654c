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
	"github.com/walteh/muterstage/pkg/destination"
	"github.com/walteh/muterstage/pkg/state"
	"gitlab.com/tozd/go/errors"
)

// 📍 CreateMutatedProjectDirectory decides where the staged copy goes. It does not copy.
type CreateMutatedProjectDirectory struct {
	OverrideRoot string
}

func (op *CreateMutatedProjectDirectory) Name() string {
	return "create-mutated-project-directory"
}

// 🏃 Run resolves the destination and records it
func (op *CreateMutatedProjectDirectory) Run(ctx context.Context, s *state.State) ([]state.Change, error) {
	if s.ProjectDirectory == "" {
		return nil, errors.Errorf("project directory is required")
	}

	dest := destination.Resolve(ctx, s.ProjectDirectory, op.OverrideRoot)

	zerolog.Ctx(ctx).Debug().
		Str("project", s.ProjectDirectory).
		Str("destination", dest).
		Msg("resolved staging destination")

	return []state.Change{state.MutatedDirectoryCreated{Path: dest}}, nil
}
