// Copyright 2016-2018, Pulumi Corporation.
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
	"github.com/spf13/cobra"

	"github.com/pulumi/lumi/pkg/compiler/core"
	"github.com/pulumi/lumi/pkg/util/cmdutil"
)

func newCheckCmd() *cobra.Command {
	var interactive bool
	cmd := &cobra.Command{
		Use:   "check [project-or-trees...]",
		Short: "Bind and type check a program, printing its diagnostics",
		Long: "Bind and type check a program, printing its diagnostics\n" +
			"\n" +
			"By default, the project is detected from the current directory.  Optionally, a path to a\n" +
			"project elsewhere, or a list of syntax tree files, can be given instead.",
		Run: cmdutil.RunFunc(func(cmd *cobra.Command, args []string) error {
			opts := core.DefaultOptions()
			opts.Interactive = interactive
			comp, _, err := loadCompilation(args, opts)
			if err != nil {
				return err
			}
			return report(comp.Diagnostics())
		}),
	}

	addInteractiveFlag(cmd.PersistentFlags(), &interactive)

	return cmd
}
