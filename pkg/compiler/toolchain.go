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

package compiler

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/llir/llvm/ir"
	"github.com/pkg/errors"

	"github.com/pulumi/lumi/pkg/compiler/ast"
	compilererrors "github.com/pulumi/lumi/pkg/compiler/errors"
	"github.com/pulumi/lumi/pkg/diag"
	"github.com/pulumi/lumi/pkg/encoding"
	"github.com/pulumi/lumi/pkg/util/contract"
	"github.com/pulumi/lumi/pkg/workspace"
)

// LoadTrees reads the syntax trees at the given paths.  Trees that can't be read are reported to the sink, and all
// of their errors are returned together.
func LoadTrees(d diag.Sink, paths ...string) ([]*ast.SyntaxTree, error) {
	var trees []*ast.SyntaxTree
	var result error
	for _, path := range paths {
		tree, err := encoding.ReadSyntaxTree(path)
		if err != nil {
			if d != nil {
				d.Errorf(compilererrors.ErrorCouldNotReadTree.AtLocation(diag.NewDocument(path), nil), path, err)
			}
			result = multierror.Append(result, err)
			continue
		}
		trees = append(trees, tree)
	}
	return trees, result
}

// Build emits the program and turns it into an executable at the given path with the given toolchain.  The
// diagnostics are returned either way; an error is returned if the program had errors or a step failed.
func (c *Compilation) Build(ctx context.Context, output string, tc *workspace.Toolchain) (*diag.List, error) {
	mod, diags, err := c.Emit()
	if err != nil {
		return diags, err
	}
	if mod == nil {
		return diags, errors.Errorf("%d errors prevented building %v", diags.Errors(), output)
	}
	return diags, Link(ctx, mod, output, tc, diags)
}

// Link compiles a module into an object file with llc and links it into an executable.  The output file is locked
// for the duration, so that concurrent builds of the same program don't clobber each other.  Failed steps are also
// reported to the diagnostics, if any are given.
func Link(ctx context.Context, mod *ir.Module, output string, tc *workspace.Toolchain, diags *diag.List) error {
	contract.Require(mod != nil, "mod")
	contract.Require(output != "", "output")
	tc = tc.WithDefaults()

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return errors.Wrapf(err, "creating the directory of %v", output)
	}

	lock := flock.New(output + ".lock")
	locked, err := lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return errors.Wrapf(err, "locking %v", output)
	}
	contract.Assertf(locked, "TryLockContext returned without the lock and without an error")
	defer func() {
		contract.IgnoreError(lock.Unlock())
		contract.IgnoreError(os.Remove(lock.Path()))
	}()

	tmp, err := os.MkdirTemp("", "lumi")
	if err != nil {
		return errors.Wrap(err, "creating a temporary directory")
	}

	result := link(ctx, mod, tmp, output, tc, diags)
	if err := os.RemoveAll(tmp); err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "removing %v", tmp))
	}
	return result
}

func link(ctx context.Context, mod *ir.Module, tmp, output string, tc *workspace.Toolchain, diags *diag.List) error {
	ll := filepath.Join(tmp, "module.ll")
	obj := filepath.Join(tmp, "module.o")
	if err := os.WriteFile(ll, []byte(mod.String()), 0600); err != nil {
		return errors.Wrapf(err, "writing %v", ll)
	}

	llcArgs := append([]string{ll, "-o=" + obj, "-filetype=obj", "-relocation-model=pic"}, tc.LLCFlags...)
	if err := runStage(ctx, "llc", tc.LLC, llcArgs, diags); err != nil {
		return err
	}

	linkArgs := append([]string{obj, "-o", output}, tc.LinkerFlags...)
	if err := runStage(ctx, "link", tc.Linker, linkArgs, diags); err != nil {
		return err
	}

	if info, err := os.Stat(output); err == nil {
		glog.V(3).Infof("Built %v (%v)", output, humanize.Bytes(uint64(info.Size())))
	}
	return nil
}

// runStage runs one external tool, turning a failure, and whatever the tool printed, into an error.
func runStage(ctx context.Context, stage, tool string, args []string, diags *diag.List) error {
	glog.V(5).Infof("Running %v: %v %v", stage, tool, strings.Join(args, " "))

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(out.String()); msg != "" {
			err = errors.Wrap(err, msg)
		}
		err = errors.Wrapf(err, "running %v", tool)
		if diags != nil {
			diags.Errorf(compilererrors.ErrorToolchainStage, stage, err)
		}
		return err
	}
	return nil
}
