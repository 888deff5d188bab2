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

// Package eval interprets lowered Lumi programs.  It backs the interactive prompt and the `eval` command.
package eval

import (
	"bufio"
	"io"

	"github.com/golang/glog"

	"github.com/pulumi/lumi/pkg/compiler/binder"
	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/errors"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/diag"
	"github.com/pulumi/lumi/pkg/util/contract"
)

// MaxCallDepth is the number of nested calls after which evaluation gives up.
const MaxCallDepth = 10000

// Interpreter evaluates bound programs.  The values of globals survive from one evaluation to the next, so the
// programs of an interactive session can be evaluated one after the other by the same interpreter.
type Interpreter interface {
	Diag() diag.Sink

	// Evaluate runs the program's global initializers and then its entry function, returning the entry's result.
	// The boolean is false if a runtime error was reported.
	Evaluate(prog *binder.BoundProgram) (Value, bool)
	// EvaluateFunction calls a single function of the program with the given arguments.
	EvaluateFunction(prog *binder.BoundProgram, fn *symbols.Function, args ...Value) (Value, bool)
}

// New creates an interpreter reporting runtime errors to the given sink.  The builtin I/O functions read lines from
// stdin and write to stdout.
func New(d diag.Sink, stdin io.Reader, stdout io.Writer) Interpreter {
	contract.Require(d != nil, "d")
	contract.Require(stdin != nil, "stdin")
	contract.Require(stdout != nil, "stdout")
	return &evaluator{
		diag:    d,
		stdin:   bufio.NewReader(stdin),
		stdout:  stdout,
		globals: make(globalMap),
		labels:  make(labelMap),
	}
}

type evaluator struct {
	diag    diag.Sink
	stdin   *bufio.Reader
	stdout  io.Writer
	prog    *binder.BoundProgram // the program under evaluation.
	fn      *symbols.Function    // the function under evaluation, nil while initializing globals.
	frame   *frame               // the locals of the function under evaluation.
	depth   int                  // the number of nested calls.
	globals globalMap            // the values of every global assigned so far.
	labels  labelMap             // the statement index of every label, by body.
}

type globalMap map[*symbols.Variable]*cell
type labelMap map[*bound.BlockStatement]map[*bound.Label]int

// frame holds the locals and parameters of one activation.
type frame struct {
	locals map[*symbols.Variable]*cell
}

func newFrame() *frame {
	return &frame{locals: make(map[*symbols.Variable]*cell)}
}

var _ Interpreter = (*evaluator)(nil)

func (e *evaluator) Diag() diag.Sink { return e.diag }

func (e *evaluator) Evaluate(prog *binder.BoundProgram) (Value, bool) {
	contract.Require(prog != nil, "prog")
	contract.Require(prog.Entry != nil, "prog.Entry")
	contract.Requiref(!prog.Diagnostics.HasErrors(), "prog", "programs with errors can't be evaluated")
	glog.V(3).Infof("Evaluating program with entry %v", prog.Entry)
	e.prog = prog
	defer e.dumpEvalState(7)

	if prog.Init != nil {
		e.fn, e.frame = nil, newFrame()
		if _, uw := e.evalBody(prog.Init); uw != nil && uw.Abort() {
			return nil, false
		}
	}
	return e.invoke(prog.Entry, nil)
}

func (e *evaluator) EvaluateFunction(prog *binder.BoundProgram, fn *symbols.Function, args ...Value) (Value, bool) {
	contract.Require(prog != nil, "prog")
	contract.Require(fn != nil, "fn")
	contract.Requiref(len(args) == len(fn.Params), "args", "%v takes %v arguments", fn, len(fn.Params))
	glog.V(3).Infof("Evaluating function %v", fn.Path())
	e.prog = prog
	defer e.dumpEvalState(7)
	return e.invoke(fn, args)
}

func (e *evaluator) invoke(fn *symbols.Function, args []Value) (Value, bool) {
	ret, uw := e.evalCall(fn, args)
	if uw != nil {
		contract.Assert(uw.Abort())
		return nil, false
	}
	return ret, true
}

// dumpEvalState logs the evaluator's current state at the given log-level.
func (e *evaluator) dumpEvalState(v glog.Level) {
	if glog.V(v) {
		glog.V(v).Infof("Evaluator state dump:")
		glog.V(v).Infof("=====================")
		for sym, c := range e.globals {
			glog.V(v).Infof("Global %v: %v", sym.Path(), Format(c.value))
		}
	}
}

// where names the code under evaluation in runtime errors.
func (e *evaluator) where() string {
	if e.fn == nil {
		return "the global initializers"
	}
	return e.fn.Path()
}

// abort reports a runtime error at the function under evaluation and abandons the evaluation.
func (e *evaluator) abort(err *diag.Diag, args ...interface{}) *Unwind {
	var at diag.Diagable
	if e.fn != nil && e.fn.Node != nil {
		at = e.fn.Node
	}
	e.Diag().Errorf(err.At(at), args...)
	return NewAbortUnwind()
}

// Functions

func (e *evaluator) evalCall(fn *symbols.Function, args []Value) (Value, *Unwind) {
	if glog.V(7) {
		glog.V(7).Infof("Evaluating call to %v with %v arguments", fn.Path(), len(args))
	}
	if builtin, isbuiltin := builtins[fn]; isbuiltin {
		return builtin(e, args)
	}

	body, has := e.prog.Lookup(fn)
	if !has {
		return nil, e.abort(errors.ErrorUnresolvedFunction, fn.Path())
	}
	if body.Body == nil {
		return nil, e.abort(errors.ErrorCantEvaluateExtern, fn.Path())
	}
	if e.depth >= MaxCallDepth {
		return nil, e.abort(errors.ErrorStackOverflow, fn.Path(), MaxCallDepth)
	}

	// Save the prior function and frame, set up the new ones, and restore them upon exit.
	priorFn, priorFrame := e.fn, e.frame
	e.fn, e.frame = fn, newFrame()
	e.depth++
	defer func() {
		e.fn, e.frame = priorFn, priorFrame
		e.depth--
	}()

	contract.Assert(len(args) == len(fn.Params))
	for i, param := range fn.Params {
		e.frame.locals[param] = &cell{value: args[i]}
	}

	ret, uw := e.evalBody(body.Body)
	if uw != nil && uw.Abort() {
		return nil, uw
	}
	return ret, nil
}

// Statements

// evalBody runs a lowered body.  Lowered bodies are a flat list of statements in which labels and jumps are the only
// control flow, so evaluation is a loop over a statement index.
func (e *evaluator) evalBody(body *bound.BlockStatement) (Value, *Unwind) {
	labels := e.labelsOf(body)
	for i := 0; i < len(body.Statements); {
		switch s := body.Statements[i].(type) {
		case *bound.LabelStatement, *bound.NopStatement:
			i++
		case *bound.GotoStatement:
			i = e.target(labels, s.Label)
		case *bound.ConditionalGotoStatement:
			cond, uw := e.evalExpression(s.Condition)
			if uw != nil {
				return nil, uw
			}
			if cond.(bool) == s.JumpIfTrue {
				i = e.target(labels, s.Label)
			} else {
				i++
			}
		case *bound.ReturnStatement:
			var ret Value
			if s.Expression != nil {
				var uw *Unwind
				if ret, uw = e.evalExpression(s.Expression); uw != nil {
					return nil, uw
				}
			}
			return ret, NewReturnUnwind(ret)
		case *bound.ExpressionStatement:
			if _, uw := e.evalExpression(s.Expression); uw != nil {
				return nil, uw
			}
			i++
		case *bound.VariableDeclaration:
			if uw := e.evalVariableDeclaration(s); uw != nil {
				return nil, uw
			}
			i++
		default:
			contract.Failf("Unexpected %v in a lowered body", s.Kind())
		}
	}
	return nil, nil
}

// labelsOf indexes the labels of a body, remembering the result for later calls.
func (e *evaluator) labelsOf(body *bound.BlockStatement) map[*bound.Label]int {
	if labels, has := e.labels[body]; has {
		return labels
	}
	labels := make(map[*bound.Label]int)
	for i, s := range body.Statements {
		if ls, islabel := s.(*bound.LabelStatement); islabel {
			labels[ls.Label] = i
		}
	}
	e.labels[body] = labels
	return labels
}

func (e *evaluator) target(labels map[*bound.Label]int, label *bound.Label) int {
	i, has := labels[label]
	contract.Assertf(has, "Jump to missing label %v", label)
	return i
}

func (e *evaluator) evalVariableDeclaration(node *bound.VariableDeclaration) *Unwind {
	value := zero(node.Variable.Ty)
	if node.Initializer != nil {
		var uw *Unwind
		if value, uw = e.evalExpression(node.Initializer); uw != nil {
			return uw
		}
	}
	if glog.V(7) {
		glog.V(7).Infof("Declaring %v = %v", node.Variable.MangledName(), Format(value))
	}
	e.declare(node.Variable).value = value
	return nil
}

// declare creates the storage of a variable, replacing any previous one.  Locals declared in a loop get a new cell
// on every iteration, so references taken in earlier iterations keep their own value.
func (e *evaluator) declare(v *symbols.Variable) *cell {
	c := &cell{}
	if v.IsGlobal() {
		e.globals[v] = c
	} else {
		e.frame.locals[v] = c
	}
	return c
}

// lookup finds the storage of a variable.  Globals of previous submissions that haven't been initialized, for
// instance because their initializer failed, read as their zero value.
func (e *evaluator) lookup(v *symbols.Variable) *cell {
	if v.IsGlobal() {
		if c, has := e.globals[v]; has {
			return c
		}
	} else if c, has := e.frame.locals[v]; has {
		return c
	}
	c := e.declare(v)
	if v.Constant != nil {
		c.value = v.Constant.Value
	} else {
		c.value = zero(v.Ty)
	}
	return c
}
