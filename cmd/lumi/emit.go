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
	"io"

	"github.com/spf13/cobra"

	"github.com/pulumi/lumi/pkg/compiler/core"
	"github.com/pulumi/lumi/pkg/util/cmdutil"
)

func newEmitCmd() *cobra.Command {
	var output string
	var target string
	cmd := &cobra.Command{
		Use:   "emit [project-or-trees...]",
		Short: "Compile a program and print its LLVM IR",
		Run: cmdutil.RunFunc(func(cmd *cobra.Command, args []string) error {
			opts := core.DefaultOptions()
			comp, _, err := loadCompilation(args, opts)
			if err != nil {
				return err
			}
			if target != "" {
				comp.Options().Target = target
			}

			mod, diags, err := comp.Emit()
			if err != nil {
				cmdutil.Report(diags)
				return err
			}
			if err = report(diags); err != nil {
				return err
			}
			return writeOutput(output, func(w io.Writer) error {
				_, werr := io.WriteString(w, mod.String())
				return werr
			})
		}),
	}

	addOutputFlag(cmd.PersistentFlags(), &output, "Write the module to this file instead of stdout")
	cmd.PersistentFlags().StringVar(
		&target, "target", "",
		"The target triple recorded in the module; overrides the project's")

	return cmd
}
