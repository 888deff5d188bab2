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

package binder

import (
	"github.com/golang/glog"

	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/cfg"
	"github.com/pulumi/lumi/pkg/compiler/core"
	"github.com/pulumi/lumi/pkg/compiler/errors"
	"github.com/pulumi/lumi/pkg/compiler/lower"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
	"github.com/pulumi/lumi/pkg/diag"
)

// FunctionBody is a function together with its lowered body; the body is nil for extern functions.
type FunctionBody struct {
	Function *symbols.Function
	Body     *bound.BlockStatement
}

// BoundProgram is the lowered form of one compilation: every function body, and the statements initializing the
// globals.  Like global scopes, programs of an interactive session chain onto the previous one.
type BoundProgram struct {
	Previous    *BoundProgram
	Diagnostics *diag.List
	Entry       *symbols.Function
	Functions   []*FunctionBody       // every function, nested ones included, in binding order.
	Init        *bound.BlockStatement // the lowered top-level statements; empty in interactive sessions.
	Structs     []*symbols.StructType // every struct type known to the session.
	Globals     []*symbols.Variable   // the global variables declared by this compilation.
	bodies      map[*symbols.Function]*FunctionBody
}

// Lookup finds the body of a function declared by this program or any previous one.
func (p *BoundProgram) Lookup(fn *symbols.Function) (*FunctionBody, bool) {
	for prog := p; prog != nil; prog = prog.Previous {
		if body, has := prog.bodies[fn]; has {
			return body, true
		}
	}
	return nil, false
}

// NewBoundProgram creates a program out of already lowered function bodies.  The program has no diagnostics and no
// global initializers.
func NewBoundProgram(previous *BoundProgram, entry *symbols.Function, fns ...*FunctionBody) *BoundProgram {
	prog := &BoundProgram{
		Previous:    previous,
		Diagnostics: diag.NewList(diag.FormatOptions{}),
		Entry:       entry,
		Init:        &bound.BlockStatement{},
		bodies:      make(map[*symbols.Function]*FunctionBody),
	}
	for _, fb := range fns {
		prog.add(fb.Function, fb.Body)
	}
	return prog
}

// BindProgram binds, checks and lowers the body of every function of a global scope, nested functions included, and
// lowers the top-level statements.  In interactive sessions, the top-level statements become the entry's body and
// the last of them, if it is an expression with a value, becomes the result.
func BindProgram(previous *BoundProgram, ctx *core.Context, global *BoundGlobalScope) *BoundProgram {
	prog := NewBoundProgram(previous, global.Entry)
	prog.Structs = ctx.Types.Structs()
	for _, sym := range global.Symbols {
		if v, isvar := sym.(*symbols.Variable); isvar {
			prog.Globals = append(prog.Globals, v)
		}
	}

	queue := append([]*pendingFunction(nil), global.functions...)
	for len(queue) > 0 {
		pf := queue[0]
		queue = queue[1:]
		body, nested := bindFunction(ctx, prog.Diagnostics, pf)
		prog.add(pf.fn, body)
		queue = append(queue, nested...)
	}

	if ctx.Interactive() {
		prog.Init = &bound.BlockStatement{}
		prog.add(global.Entry, lower.Lower(&bound.BlockStatement{Statements: interactiveBody(global.Statements)}))
	} else {
		prog.Init = lower.Lower(&bound.BlockStatement{Statements: global.Statements})
		if global.Entry.Node == nil {
			prog.add(global.Entry, &bound.BlockStatement{})
		}
	}
	if ctx.Opts.DumpTrees {
		if glog.V(3) {
			glog.V(3).Infof("Lowered top-level statements:\n%v", bound.String(prog.Init))
		}
	}
	return prog
}

func (p *BoundProgram) add(fn *symbols.Function, body *bound.BlockStatement) {
	fb := &FunctionBody{Function: fn, Body: body}
	p.Functions = append(p.Functions, fb)
	p.bodies[fn] = fb
}

// interactiveBody turns the statements of a submission into a body returning Any.  A trailing assignment yields the
// value it stored.
func interactiveBody(stmts []bound.Statement) []bound.Statement {
	body := append([]bound.Statement(nil), stmts...)
	if n := len(body); n > 0 {
		if es, isexpr := body[n-1].(*bound.ExpressionStatement); isexpr {
			if assign, isassign := es.Expression.(*bound.AssignmentExpression); isassign {
				if ty := assign.Value.Type(); ty != types.Unit && !types.IsError(ty) {
					tmp := symbols.NewLocalVariable(lower.TemporaryName, ty, true, nil, nil)
					value := &bound.VariableExpression{Variable: tmp}
					return append(body[:n-1],
						&bound.VariableDeclaration{Variable: tmp, Initializer: assign.Value},
						&bound.ExpressionStatement{Expression: &bound.AssignmentExpression{Target: assign.Target, Value: value}},
						&bound.ReturnStatement{Expression: toAny(value)},
					)
				}
			} else if ty := es.Expression.Type(); ty != types.Unit && !types.IsError(ty) {
				body[n-1] = &bound.ReturnStatement{Expression: toAny(es.Expression)}
				return body
			}
		}
	}
	return append(body, &bound.ReturnStatement{Expression: toAny(bound.NewLiteral("", types.String))})
}

func toAny(e bound.Expression) bound.Expression {
	if e.Type() == types.Any {
		return e
	}
	return &bound.CastExpression{Ty: types.Any, Expression: e}
}

// bindFunction binds and lowers one function body, returning the nested functions it declared.
func bindFunction(ctx *core.Context, diags diag.Sink, pf *pendingFunction) (*bound.BlockStatement, []*pendingFunction) {
	fn, decl := pf.fn, pf.decl
	if glog.V(3) {
		glog.V(3).Infof("Binding function %v", fn.Path())
	}
	if fn.Meta.Extern {
		return nil, nil
	}

	b := newBinder(ctx, diags, pf.scope, fn)
	var body *bound.BlockStatement
	switch {
	case decl.IsLambda():
		b.lambda = true
		value := b.bindExpressionOrUnit(decl.Lambda)
		var s bound.Statement
		if fn.Return == types.Unit {
			s = &bound.ExpressionStatement{Expression: value}
		} else {
			s = &bound.ReturnStatement{Expression: b.convert(decl.Lambda, value, fn.Return)}
		}
		body = lower.Lower(&bound.BlockStatement{Statements: []bound.Statement{s}}, fn.Params...)
	case decl.Body != nil:
		body = lower.Lower(b.bindBlockStatement(decl.Body), fn.Params...)
		if fn.Return != types.Unit && !types.IsError(fn.Return) && !cfg.AllPathsReturn(body) {
			b.Diag().Errorf(errors.ErrorAllPathsMustReturn.At(decl.Name))
		}
	default:
		body = &bound.BlockStatement{}
		if fn.Return != types.Unit && !types.IsError(fn.Return) {
			b.Diag().Errorf(errors.ErrorAllPathsMustReturn.At(decl.Name))
		}
	}

	if ctx.Opts.DumpTrees {
		if glog.V(3) {
			glog.V(3).Infof("Lowered %v:\n%v", fn.Path(), bound.String(body))
		}
	}
	return body, b.nested
}

