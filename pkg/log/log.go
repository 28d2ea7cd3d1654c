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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/muterstage/pkg/notify"
	"github.com/walteh/muterstage/pkg/stage"
)

// 🎨 Display configuration
const (
	stepIndent   = 4  // spaces to indent step entries
	stepWidth    = 22 // width for the step name
	outcomeWidth = 8  // width for the outcome
)

// 🎯 Logger prints staging progress for humans and mirrors it to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex

	spinner bool
	spin    *pterm.SpinnerPrinter
}

// 🏭 New creates a new logger writing to console
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// WithSpinner shows a spinner while the project is being copied. Only useful on a terminal.
func (l *Logger) WithSpinner(enabled bool) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.spinner = enabled
	return l
}

// 📣 Notify reports copy progress
func (l *Logger) Notify(ctx context.Context, n notify.Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch n.Event {
	case notify.ProjectCopyStarted:
		l.zlog.Info().Msg("copying project")
		if l.spinner {
			spin, err := pterm.DefaultSpinner.WithWriter(l.console).WithRemoveWhenDone(true).Start("copying project")
			if err == nil {
				l.spin = spin
				return
			}
			l.zlog.Debug().Err(err).Msg("starting spinner")
		}
		fmt.Fprintf(l.console, "%s %s\n",
			color.New(color.FgMagenta).Sprint("◆"),
			color.New(color.Bold).Sprint("copying project"))
	case notify.ProjectCopyFinished:
		l.stopSpinner()
		l.zlog.Info().Str("destination", n.Object).Msg("project copied")
		fmt.Fprintf(l.console, "%s %s %s\n",
			color.New(color.FgGreen).Sprint("✓"),
			"staged at",
			color.New(color.FgCyan).Sprint(n.Object))
	}
}

func (l *Logger) stopSpinner() {
	if l.spin == nil {
		return
	}
	if err := l.spin.Stop(); err != nil {
		l.zlog.Debug().Err(err).Msg("stopping spinner")
	}
	l.spin = nil
}

// 📝 formatStepResult formats a repair step result for display
func (l *Logger) formatStepResult(r stage.StepResult) string {
	var symbol rune
	var symbolColor color.Attribute
	switch r.Outcome {
	case stage.OutcomeOK:
		symbol = '✓'
		symbolColor = color.FgGreen
	case stage.OutcomeFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	line := fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", stepIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", stepWidth, r.Step),
		color.New(symbolColor).Sprint(fmt.Sprintf("%-*s", outcomeWidth, r.Outcome)))
	if r.Reason != "" {
		line += " " + color.New(color.Faint).Sprint(r.Reason)
	}
	return line
}

// 📝 LogReport prints one line per repair step
func (l *Logger) LogReport(ctx context.Context, report *stage.Report) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, r := range report.Steps {
		fmt.Fprintln(l.console, l.formatStepResult(r))
	}

	l.zlog.Info().
		Str("destination", report.Destination).
		Int("steps", len(report.Steps)).
		Int("failed", len(report.Failed())).
		Msg("staging complete")
}

// 📝 Close stops anything still drawing; used when staging aborts mid-copy
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopSpinner()
}

// 📝 Header prints the command banner
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("muterstage")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warningf prints a formatted warning
func (l *Logger) Warningf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Errorf prints a formatted error; any spinner still running is stopped first
func (l *Logger) Errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopSpinner()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}
