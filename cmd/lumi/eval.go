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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pulumi/lumi/pkg/compiler"
	"github.com/pulumi/lumi/pkg/compiler/core"
	"github.com/pulumi/lumi/pkg/compiler/eval"
	"github.com/pulumi/lumi/pkg/util/cmdutil"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [project | submissions...]",
		Short: "Evaluate a program, or a series of interactive submissions",
		Long: "Evaluate a program, or a series of interactive submissions\n" +
			"\n" +
			"Given a project (by default, the one in the current directory), its entry function is\n" +
			"run after the globals are initialized.  Given syntax tree files, each is treated as one\n" +
			"submission of an interactive session: every submission sees the globals declared by the\n" +
			"previous ones, and the value of its last expression is printed.  A submission with errors\n" +
			"is skipped, and the session goes on from the last good one.",
		Run: cmdutil.RunFunc(func(cmd *cobra.Command, args []string) error {
			interp := eval.New(cmdutil.Diag(), os.Stdin, os.Stdout)

			if isProjectArg(args) {
				comp, _, err := loadCompilation(args, core.DefaultOptions())
				if err != nil {
					return err
				}
				res := comp.Evaluate(interp)
				if err = report(comp.Diagnostics()); err != nil {
					return err
				}
				if !res.Evaluated {
					return cmdutil.ErrDiagnosed
				}
				return nil
			}

			opts := core.DefaultOptions()
			opts.Interactive = true
			var session *compiler.Compilation
			failed := false
			for _, arg := range args {
				trees, err := compiler.LoadTrees(cmdutil.Diag(), arg)
				if err != nil {
					failed = true
					continue
				}

				var comp *compiler.Compilation
				if session == nil {
					comp = compiler.New(opts, trees...)
				} else {
					comp = session.Continue(trees...)
				}

				res := comp.Evaluate(interp)
				if report(comp.Diagnostics()) != nil || !res.Evaluated {
					failed = true
					continue
				}
				session = comp
				if s := eval.Format(res.Value); res.Value != nil && s != "" {
					fmt.Println(s)
				}
			}
			if failed {
				return cmdutil.ErrDiagnosed
			}
			return nil
		}),
	}

	return cmd
}
