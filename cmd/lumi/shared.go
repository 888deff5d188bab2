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
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/pulumi/lumi/pkg/compiler"
	"github.com/pulumi/lumi/pkg/compiler/core"
	compilererrors "github.com/pulumi/lumi/pkg/compiler/errors"
	"github.com/pulumi/lumi/pkg/diag"
	"github.com/pulumi/lumi/pkg/util/cmdutil"
	"github.com/pulumi/lumi/pkg/util/contract"
	"github.com/pulumi/lumi/pkg/workspace"
)

// isProjectArg is true when the arguments name a project rather than syntax trees: no arguments at all (the current
// directory), a directory, or a project file.
func isProjectArg(args []string) bool {
	if len(args) == 0 {
		return true
	}
	if len(args) > 1 {
		return false
	}
	if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
		return true
	}
	return workspace.IsProjectFile(args[0], nil)
}

// loadProject detects and loads the project the given path belongs to.  Problems are reported to the sink, in which
// case cmdutil.ErrDiagnosed is returned.
func loadProject(path string) (*workspace.Project, error) {
	d := cmdutil.Diag()
	file, err := workspace.DetectProject(path, d)
	if err != nil {
		d.Errorf(compilererrors.ErrorIO, err)
		return nil, cmdutil.ErrDiagnosed
	}
	if file == "" {
		d.Errorf(compilererrors.ErrorMissingProject, path)
		return nil, cmdutil.ErrDiagnosed
	}

	proj, err := workspace.LoadProject(file)
	if err != nil {
		doc := diag.NewDocument(file)
		if _, isio := errors.Cause(err).(*os.PathError); isio {
			d.Errorf(compilererrors.ErrorCouldNotReadProject.AtLocation(doc, nil), err)
		} else {
			d.Errorf(compilererrors.ErrorIllegalProjectSyntax.AtLocation(doc, nil), err)
		}
		return nil, cmdutil.ErrDiagnosed
	}
	if len(proj.Sources) == 0 {
		d.Errorf(compilererrors.ErrorNoSources.AtLocation(diag.NewDocument(file), nil), proj.Name)
		return nil, cmdutil.ErrDiagnosed
	}
	return proj, nil
}

// loadCompilation creates a compilation out of the command's arguments: either the sources of a project, or the
// syntax tree files given directly.  The project is nil in the latter case.
func loadCompilation(args []string, opts *core.Options) (*compiler.Compilation, *workspace.Project, error) {
	var proj *workspace.Project
	paths := args
	if isProjectArg(args) {
		where := "."
		if len(args) > 0 {
			where = args[0]
		}
		var err error
		if proj, err = loadProject(where); err != nil {
			return nil, nil, err
		}
		opts = proj.Options(opts)
		paths = proj.SourcePaths()
	}

	trees, err := compiler.LoadTrees(cmdutil.Diag(), paths...)
	if err != nil {
		glog.V(3).Infof("Loading syntax trees failed: %v", err)
		return nil, nil, cmdutil.ErrDiagnosed
	}
	return compiler.New(opts, trees...), proj, nil
}

// report prints a compilation's diagnostics, returning cmdutil.ErrDiagnosed if there were errors.
func report(diags *diag.List) error {
	cmdutil.Report(diags)
	if diags.HasErrors() {
		return cmdutil.ErrDiagnosed
	}
	return nil
}

// writeOutput writes to the named file, or to stdout if the name is empty or "-".
func writeOutput(path string, write func(w io.Writer) error) error {
	if path == "" || path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %v", path)
	}
	if err = write(f); err != nil {
		contract.IgnoreClose(f)
		return errors.Wrapf(err, "writing %v", path)
	}
	return errors.Wrapf(f.Close(), "closing %v", path)
}

// addOutputFlag registers the usual -o/--output flag.
func addOutputFlag(flags *pflag.FlagSet, output *string, usage string) {
	flags.StringVarP(output, "output", "o", "", usage)
}

// addInteractiveFlag registers the --interactive flag of the commands that can treat trees as submissions.
func addInteractiveFlag(flags *pflag.FlagSet, interactive *bool) {
	flags.BoolVar(interactive, "interactive", false,
		"Treat the trees as interactive submissions, which need no entry function")
}
