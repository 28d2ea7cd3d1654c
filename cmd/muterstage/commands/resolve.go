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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/muterstage/cmd/muterstage/opts"
	"github.com/walteh/muterstage/pkg/destination"
)

// NewResolveCmd creates the resolve command
func NewResolveCmd(o *opts.RootOpts) *cobra.Command {
	var mutatedRoot string

	cmd := &cobra.Command{
		Use:   "resolve [project-dir]",
		Short: "Print where the project would be staged",
		Long: `Resolve prints the staging destination without copying anything. An override
root that does not exist yet is created, the same as during stage.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir, err := projectDirectory(args)
			if err != nil {
				return err
			}

			root := o.Config.MutatedRoot
			if cmd.Flags().Changed("mutated-root") {
				root = mutatedRoot
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), destination.Resolve(cmd.Context(), projectDir, root))
			return err
		},
	}

	cmd.Flags().StringVar(&mutatedRoot, "mutated-root", "", "directory to stage under instead of next to the project")

	return cmd
}
