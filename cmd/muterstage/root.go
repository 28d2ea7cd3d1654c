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
	"context"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/muterstage/cmd/muterstage/opts"
	"github.com/walteh/muterstage/pkg/config"
	"github.com/walteh/muterstage/pkg/log"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	envFile    string
	debugLog   bool
)

// loadRootOpts reads the environment and configuration into o. Precedence is
// command flags, then the environment, then the config file.
func loadRootOpts(cmd *cobra.Command, o *opts.RootOpts) error {
	ctx := cmd.Context()

	if err := config.LoadDotEnv(ctx, envFile); err != nil {
		return errors.Errorf("loading env: %w", err)
	}

	var cfg *config.Config
	var err error
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(ctx, configFile)
	} else {
		cfg, err = config.LoadOptional(ctx, configFile)
	}
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	cfg.ApplyEnv(os.LookupEnv)

	zerolog.Ctx(ctx).Debug().Stringer("config", cfg).Msg("configuration loaded")

	// the spinner redraws over debug output, so only use it for quiet terminal runs
	spinner := !debugLog && isatty.IsTerminal(os.Stderr.Fd())

	o.Config = cfg
	o.Console = log.New(os.Stderr, *zerolog.Ctx(ctx)).WithSpinner(spinner)
	return nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".muterstage.yaml", "config file path (.yaml, .hcl or .json)")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")
	cmd.PersistentFlags().BoolVarP(&debugLog, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context) context.Context {
	level := zerolog.WarnLevel
	if debugLog {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger.WithContext(ctx)
}
