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
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pulumi/lumi/pkg/compiler/core"
	"github.com/pulumi/lumi/pkg/util/cmdutil"
	"github.com/pulumi/lumi/pkg/workspace"
)

func newBuildCmd() *cobra.Command {
	var output string
	var llc string
	var linker string
	cmd := &cobra.Command{
		Use:   "build [project-or-trees...]",
		Short: "Compile a program into a native executable",
		Long: "Compile a program into a native executable\n" +
			"\n" +
			"The program is emitted as LLVM IR, compiled into an object file with llc, and linked\n" +
			"with the linker (gcc by default).  The tools can be changed in the project's toolchain\n" +
			"settings, or with the --llc and --linker flags.",
		Run: cmdutil.RunFunc(func(cmd *cobra.Command, args []string) error {
			comp, proj, err := loadCompilation(args, core.DefaultOptions())
			if err != nil {
				return err
			}

			tc := workspace.DefaultToolchain()
			if proj != nil {
				tc = proj.GetToolchain()
				if output == "" {
					output = proj.OutputPath()
				}
			}
			if output == "" {
				output = "a.out"
			}
			if llc != "" {
				tc.LLC = llc
			}
			if linker != "" {
				tc.Linker = linker
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()
			diags, err := comp.Build(ctx, output, tc)
			if rerr := report(diags); rerr != nil {
				return rerr
			}
			if err != nil {
				return err
			}

			if info, err := os.Stat(output); err == nil {
				fmt.Printf("Built %v (%v)\n", output, humanize.Bytes(uint64(info.Size())))
			}
			return nil
		}),
	}

	addOutputFlag(cmd.PersistentFlags(), &output, "The executable to write; defaults to the project's output, or a.out")
	cmd.PersistentFlags().StringVar(
		&llc, "llc", "",
		"The llc binary to compile the IR with")
	cmd.PersistentFlags().StringVar(
		&linker, "linker", "",
		"The linker driver to link the object file with")

	return cmd
}
