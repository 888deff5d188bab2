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

// Package compiler ties the phases together: a Compilation binds a set of syntax trees, lowers them into a program,
// and then either evaluates that program or emits it as an IR module.
package compiler

import (
	"io"

	"github.com/golang/glog"
	"github.com/llir/llvm/ir"
	"github.com/pkg/errors"

	"github.com/pulumi/lumi/pkg/compiler/ast"
	"github.com/pulumi/lumi/pkg/compiler/binder"
	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/cfg"
	"github.com/pulumi/lumi/pkg/compiler/core"
	"github.com/pulumi/lumi/pkg/compiler/emit"
	compilererrors "github.com/pulumi/lumi/pkg/compiler/errors"
	"github.com/pulumi/lumi/pkg/compiler/eval"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/diag"
	"github.com/pulumi/lumi/pkg/util/contract"
)

// Compilation is one unit of compilation: a set of syntax trees, plus the compilation it continues, if any.  Every
// phase runs lazily, at most once, the first time its result is asked for.
type Compilation struct {
	Previous *Compilation      // the compilation this one continues; nil for the first.
	Trees    []*ast.SyntaxTree // the syntax trees being compiled.
	ctx      *core.Context     // the state shared with every compilation of the same session.
	global   *binder.BoundGlobalScope
	program  *binder.BoundProgram
}

// EvaluationResult is the outcome of evaluating a compilation.
type EvaluationResult struct {
	Value     eval.Value         // the entry's result; nil for Unit entries and failed evaluations.
	Evaluated bool               // true if the program ran to completion.
	Errors    []*diag.Diagnostic // the errors that prevented evaluation, sorted by span.
	Warnings  []*diag.Diagnostic // the warnings and style hints, sorted by span.
}

// New starts a new session with the given options and compiles the given trees in it.
func New(opts *core.Options, trees ...*ast.SyntaxTree) *Compilation {
	if opts == nil {
		opts = core.DefaultOptions()
	}
	return &Compilation{Trees: trees, ctx: core.NewContext(opts)}
}

// Continue compiles more trees on top of this compilation: the new compilation sees every global this one declared.
// This is how interactive sessions submit one snippet after another.
func (c *Compilation) Continue(trees ...*ast.SyntaxTree) *Compilation {
	return &Compilation{Previous: c, Trees: trees, ctx: c.ctx}
}

// Context returns the session state shared by this compilation and every one chained to it.
func (c *Compilation) Context() *core.Context {
	return c.ctx
}

// Options returns the options of this compilation's session.
func (c *Compilation) Options() *core.Options {
	return c.ctx.Opts
}

// GlobalScope binds the declarations and top-level statements of the trees.
func (c *Compilation) GlobalScope() *binder.BoundGlobalScope {
	if c.global == nil {
		var prev *binder.BoundGlobalScope
		if c.Previous != nil {
			// The previous program is bound first: binding a global scope replaces the session's namespaces.
			c.Previous.Program()
			prev = c.Previous.GlobalScope()
		}
		if glog.V(3) {
			glog.V(3).Infof("Binding global scope of %d trees", len(c.Trees))
		}
		c.global = binder.BindGlobalScope(prev, c.ctx, c.Trees)
	}
	return c.global
}

// Program binds, checks and lowers every function body, chaining onto the previous compilation's program.
func (c *Compilation) Program() *binder.BoundProgram {
	if c.program == nil {
		global := c.GlobalScope()
		var prev *binder.BoundProgram
		if c.Previous != nil {
			prev = c.Previous.Program()
		}
		if glog.V(3) {
			glog.V(3).Infof("Binding program with entry %v", global.Entry.Path())
		}
		c.program = binder.BindProgram(prev, c.ctx, global)
	}
	return c.program
}

// Diagnostics returns every diagnostic of this compilation, sorted by span.  Function bodies are only bound once the
// global scope is free of errors, so errors in declarations don't cascade into every body that uses them.
func (c *Compilation) Diagnostics() *diag.List {
	diags := diag.NewList(diag.FormatOptions{})
	diags.Append(c.GlobalScope().Diagnostics)
	if !diags.HasErrors() {
		diags.Append(c.Program().Diagnostics)
	}
	diags.SortBySpan()
	return diags
}

// Evaluate runs the program with the given interpreter, provided it compiled without errors.
func (c *Compilation) Evaluate(interp eval.Interpreter) *EvaluationResult {
	contract.Require(interp != nil, "interp")

	diags := c.Diagnostics()
	res := &EvaluationResult{Errors: diags.ErrorList(), Warnings: diags.NonErrorList()}
	if diags.HasErrors() {
		glog.V(3).Infof("Skipping evaluation: %d errors", diags.Errors())
		return res
	}

	res.Value, res.Evaluated = interp.Evaluate(c.Program())
	return res
}

// Emit translates the program into an IR module, provided it compiled without errors.  The diagnostics are returned
// either way; an error is only returned when emission itself failed, which is always a compiler defect.
func (c *Compilation) Emit() (*ir.Module, *diag.List, error) {
	diags := c.Diagnostics()
	if diags.HasErrors() {
		glog.V(3).Infof("Skipping emission: %d errors", diags.Errors())
		return nil, diags, nil
	}

	mod, err := emit.Emit(c.Program(), c.ctx.Opts)
	if err != nil {
		diags.Errorf(compilererrors.ErrorInternalEmit, err)
		return nil, diags, err
	}
	return mod, diags, nil
}

// WriteTrees writes every function of the program, followed by its lowered body.  Functions of previous compilations
// aren't included.
func (c *Compilation) WriteTrees(w io.Writer) error {
	prog := c.Program()
	if len(prog.Init.Statements) > 0 {
		if _, err := io.WriteString(w, "<init>\n"); err != nil {
			return err
		}
		if err := bound.Print(w, prog.Init); err != nil {
			return err
		}
	}
	for _, fb := range prog.Functions {
		if _, err := io.WriteString(w, fb.Function.Path()+" "+fb.Function.String()+": "+
			fb.Function.Return.Name()+"\n"); err != nil {
			return err
		}
		if fb.Body == nil {
			if _, err := io.WriteString(w, "    extern\n"); err != nil {
				return err
			}
			continue
		}
		if err := bound.Print(w, fb.Body); err != nil {
			return err
		}
	}
	return nil
}

// Function finds a function of the program by its path, or by its name when the path isn't found.
func (c *Compilation) Function(name string) (*binder.FunctionBody, bool) {
	var byName *binder.FunctionBody
	for _, fb := range c.Program().Functions {
		if fb.Function.Path() == name {
			return fb, true
		}
		if byName == nil && fb.Function.Name() == name {
			byName = fb
		}
	}
	return byName, byName != nil
}

// WriteControlFlowGraph writes the control flow graph of a function in Graphviz's dot language.  The entry function
// is used when no name is given.
func (c *Compilation) WriteControlFlowGraph(w io.Writer, name string) error {
	var fn *symbols.Function
	var body *bound.BlockStatement
	if name == "" {
		prog := c.Program()
		fb, has := prog.Lookup(prog.Entry)
		if !has {
			return errors.New("the program has no entry function")
		}
		fn, body = fb.Function, fb.Body
	} else {
		fb, has := c.Function(name)
		if !has {
			return errors.Errorf("function '%v' not found", name)
		}
		fn, body = fb.Function, fb.Body
	}
	if body == nil {
		return errors.Errorf("function '%v' is extern and has no body", fn.Path())
	}
	return cfg.WriteDot(w, cfg.Build(body), fn.Path())
}
