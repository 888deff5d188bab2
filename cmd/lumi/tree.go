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

func newTreeCmd() *cobra.Command {
	var interactive bool
	cmd := &cobra.Command{
		Use:   "tree [project-or-trees...]",
		Short: "Print the lowered bound tree of every function",
		Run: cmdutil.RunFunc(func(cmd *cobra.Command, args []string) error {
			opts := core.DefaultOptions()
			opts.Interactive = interactive
			comp, _, err := loadCompilation(args, opts)
			if err != nil {
				return err
			}
			if err = writeOutput("", func(w io.Writer) error { return comp.WriteTrees(w) }); err != nil {
				return err
			}
			return report(comp.Diagnostics())
		}),
	}

	addInteractiveFlag(cmd.PersistentFlags(), &interactive)

	return cmd
}

func newCFGCmd() *cobra.Command {
	var function string
	var output string
	cmd := &cobra.Command{
		Use:   "cfg [project-or-trees...]",
		Short: "Print the control flow graph of a function in Graphviz's dot language",
		Long: "Print the control flow graph of a function in Graphviz's dot language\n" +
			"\n" +
			"The graph is built from the function's lowered body.  The entry function is used unless\n" +
			"another one is named with --function, either by its full path or by its name.",
		Run: cmdutil.RunFunc(func(cmd *cobra.Command, args []string) error {
			comp, _, err := loadCompilation(args, core.DefaultOptions())
			if err != nil {
				return err
			}
			if err = report(comp.Diagnostics()); err != nil {
				return err
			}
			return writeOutput(output, func(w io.Writer) error {
				return comp.WriteControlFlowGraph(w, function)
			})
		}),
	}

	cmd.PersistentFlags().StringVarP(
		&function, "function", "f", "",
		"The function to graph; defaults to the entry function")
	addOutputFlag(cmd.PersistentFlags(), &output, "Write the graph to this file instead of stdout")

	return cmd
}
