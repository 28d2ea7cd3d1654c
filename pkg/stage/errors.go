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
	"gitlab.com/tozd/go/errors"
)

// ErrProjectCopyFailed matches any ProjectCopyFailedError via errors.Is
var ErrProjectCopyFailed = errors.New("project copy failed")

// 💥 ProjectCopyFailedError is the only error Stage returns
type ProjectCopyFailedError struct {
	Reason string
	Err    error
}

func (e *ProjectCopyFailedError) Error() string {
	return "project copy failed: " + e.Reason
}

func (e *ProjectCopyFailedError) Unwrap() error {
	return e.Err
}

func (e *ProjectCopyFailedError) Is(target error) bool {
	return target == ErrProjectCopyFailed
}

func projectCopyFailed(err error) error {
	return &ProjectCopyFailedError{Reason: err.Error(), Err: err}
}
