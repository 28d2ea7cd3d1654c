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
	"fmt"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Step names a repair step run after the copy
type Step string

const (
	StepPruneArtifacts      Step = "prune-artifacts"
	StepResolveDependencies Step = "resolve-dependencies"
	StepApplyPatch          Step = "apply-patch"
	StepLinkNativeRuntime   Step = "link-native-runtime"
)

// Steps lists the repair steps in execution order
func Steps() []Step {
	return []Step{
		StepPruneArtifacts,
		StepResolveDependencies,
		StepApplyPatch,
		StepLinkNativeRuntime,
	}
}

// ParseStep converts a step name into a Step
func ParseStep(name string) (Step, error) {
	for _, s := range Steps() {
		if string(s) == name {
			return s, nil
		}
	}
	return "", errors.Errorf("unknown repair step %q", name)
}

// 📊 Outcome is the result of a single repair step
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// StepResult records how a repair step went. Failed results carry a reason and are
// never turned into errors.
type StepResult struct {
	Step    Step    `json:"step" yaml:"step"`
	Outcome Outcome `json:"outcome" yaml:"outcome"`
	Reason  string  `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func ok(step Step) StepResult {
	return StepResult{Step: step, Outcome: OutcomeOK}
}

func skipped(step Step, reason string) StepResult {
	return StepResult{Step: step, Outcome: OutcomeSkipped, Reason: reason}
}

func failed(step Step, reason string) StepResult {
	return StepResult{Step: step, Outcome: OutcomeFailed, Reason: reason}
}

func (r StepResult) String() string {
	if r.Reason == "" {
		return fmt.Sprintf("%s: %s", r.Step, r.Outcome)
	}
	return fmt.Sprintf("%s: %s (%s)", r.Step, r.Outcome, r.Reason)
}

// log writes the result to the context logger; skips at debug, failures at warn
func (r StepResult) log(ctx context.Context) {
	logger := zerolog.Ctx(ctx)
	var ev *zerolog.Event
	switch r.Outcome {
	case OutcomeFailed:
		ev = logger.Warn()
	case OutcomeSkipped:
		ev = logger.Debug()
	default:
		ev = logger.Info()
	}
	ev.Str("step", string(r.Step)).
		Str("outcome", string(r.Outcome)).
		Str("reason", r.Reason).
		Msg("repair step finished")
}

// 📋 Report is what a staging run produced
type Report struct {
	Destination string       `json:"destination" yaml:"destination"`
	Steps       []StepResult `json:"steps" yaml:"steps"`
}

// Result returns the result recorded for step
func (r *Report) Result(step Step) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Step == step {
			return s, true
		}
	}
	return StepResult{}, false
}

// Failed returns the repair steps that failed
func (r *Report) Failed() []StepResult {
	var out []StepResult
	for _, s := range r.Steps {
		if s.Outcome == OutcomeFailed {
			out = append(out, s)
		}
	}
	return out
}
