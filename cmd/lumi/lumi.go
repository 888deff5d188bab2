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
	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/pulumi/lumi/pkg/util/cmdutil"
)

// NewLumiCmd creates a new Lumi Cmd instance.
func NewLumiCmd() *cobra.Command {
	var logToStderr bool
	var verbose int
	var noColor bool
	cmd := &cobra.Command{
		Use:   "lumi",
		Short: "Lumi compiles syntax trees into native executables",
		Long: "Lumi compiles syntax trees into native executables\n" +
			"\n" +
			"Lumi binds and type checks the syntax trees produced by the Lumi parser, lowers them, and\n" +
			"then either evaluates the result or emits it as an LLVM IR module.  Programs are described\n" +
			"by a Lumi.yaml project file, or given as a list of syntax tree files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmdutil.InitLogging(logToStderr, verbose)
			if noColor {
				cmdutil.DisableInteractive = true
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			glog.Flush()
		},
	}

	cmd.PersistentFlags().BoolVar(&logToStderr, "logtostderr", false, "Log to stderr instead of to files")
	cmd.PersistentFlags().IntVarP(
		&verbose, "verbose", "v", 0, "Enable verbose logging (e.g., v=3); anything >3 is very verbose")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Never colorize diagnostics")

	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newEmitCmd())
	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newEvalCmd())
	cmd.AddCommand(newTreeCmd())
	cmd.AddCommand(newCFGCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
