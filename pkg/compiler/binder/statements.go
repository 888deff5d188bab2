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
	"strconv"

	"github.com/pulumi/lumi/pkg/compiler/ast"
	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/errors"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
	"github.com/pulumi/lumi/pkg/util/contract"
)

func (b *Binder) bindStatement(node ast.Statement) bound.Statement {
	contract.Require(node != nil, "node")
	switch n := node.(type) {
	case *ast.BlockStatement:
		return b.bindBlockStatement(n)
	case *ast.ExpressionStatement:
		return b.bindExpressionStatement(n)
	case *ast.VariableDeclaration:
		return b.bindVariableDeclaration(n)
	case *ast.IfStatement:
		return b.bindIfStatement(n)
	case *ast.WhileStatement:
		return b.bindWhileStatement(n)
	case *ast.ForStatement:
		return b.bindForStatement(n)
	case *ast.BreakStatement:
		return b.bindJump(n, "break")
	case *ast.ContinueStatement:
		return b.bindJump(n, "continue")
	case *ast.ReturnStatement:
		return b.bindReturnStatement(n)
	case *ast.FunctionDeclaration:
		b.bindNestedFunction(n)
		return &bound.NopStatement{}
	case *ast.UseStatement:
		b.bindUse(n)
		return &bound.NopStatement{}
	}
	contract.Failf("Unrecognized statement kind: %v", node.GetKind())
	return nil
}

func (b *Binder) bindBlockStatement(node *ast.BlockStatement) *bound.BlockStatement {
	defer b.pushScope()()
	stmts := make([]bound.Statement, 0, len(node.Statements))
	for _, s := range node.Statements {
		stmts = append(stmts, b.bindStatement(s))
	}
	return &bound.BlockStatement{Statements: stmts}
}

// bindExpressionStatement only accepts expressions that do something: assignments and calls.  Interactive
// submissions and lambda bodies may also evaluate expressions just for their value.
func (b *Binder) bindExpressionStatement(node *ast.ExpressionStatement) bound.Statement {
	e := b.bindExpressionOrUnit(node.Expression)
	switch e.(type) {
	case *bound.AssignmentExpression, *bound.CallExpression, *bound.ErrorExpression:
	default:
		if !b.lambda && !(b.ctx.Interactive() && b.topLevel()) {
			b.Diag().Errorf(errors.ErrorInvalidExpressionStatement.At(node))
		}
	}
	return &bound.ExpressionStatement{Expression: e}
}

func (b *Binder) bindVariableDeclaration(node *ast.VariableDeclaration) bound.Statement {
	var ty symbols.Type
	var init bound.Expression
	if node.Type != nil {
		ty = b.bindType(node.Type)
		init = b.bindConversion(node.Initializer, ty)
	} else {
		init = b.bindExpression(node.Initializer)
		ty = init.Type()
	}

	readOnly := node.IsReadOnly()
	var constant *symbols.Constant
	if readOnly {
		constant = bound.Constant(init)
	}

	name := node.Name.Ident
	var v *symbols.Variable
	if b.global() {
		v = symbols.NewGlobalVariable(name, ty, readOnly, constant, b.namespace.Path+"."+name, node)
	} else {
		v = symbols.NewLocalVariable(name, ty, readOnly, constant, node)
		b.locals[v] = true
	}
	if b.declare(node.Name, v) && v.IsGlobal() {
		b.globals = append(b.globals, v)
	}
	return &bound.VariableDeclaration{Variable: v, Initializer: init}
}

func (b *Binder) bindIfStatement(node *ast.IfStatement) bound.Statement {
	cond := b.bindExpressionOfType(node.Condition, types.Bool)
	res := &bound.IfStatement{Condition: cond, Then: b.bindBlockStatement(node.Then)}
	if node.Else != nil {
		if block, isblock := node.Else.Statement.(*ast.BlockStatement); isblock && len(block.Statements) == 1 {
			if _, isif := block.Statements[0].(*ast.IfStatement); isif {
				b.Diag().Stylef(errors.StyleElseIf.At(node.Else))
			}
		}
		res.Else = b.bindStatement(node.Else.Statement)
	}
	return res
}

func (b *Binder) bindWhileStatement(node *ast.WhileStatement) bound.Statement {
	cond := b.bindExpressionOfType(node.Condition, types.Bool)
	brk, cont, pop := b.pushLoop()
	defer pop()
	return &bound.WhileStatement{Condition: cond, Body: b.bindBlockStatement(node.Body), Break: brk, Continue: cont}
}

func (b *Binder) bindForStatement(node *ast.ForStatement) bound.Statement {
	lower := b.bindExpressionOfType(node.Lower, types.Int)
	upper := b.bindExpressionOfType(node.Upper, types.Int)

	defer b.pushScope()()
	v := symbols.NewLocalVariable(node.Variable.Ident, types.Int, false, nil, node.Variable)
	b.locals[v] = true
	b.declare(node.Variable, v)

	brk, cont, pop := b.pushLoop()
	defer pop()
	return &bound.ForStatement{
		Variable: v,
		Lower:    lower,
		Upper:    upper,
		Body:     b.bindBlockStatement(node.Body),
		Break:    brk,
		Continue: cont,
	}
}

// bindJump binds `break` and `continue` to the labels of the innermost loop.
func (b *Binder) bindJump(node ast.Statement, keyword string) bound.Statement {
	if len(b.loops) == 0 {
		b.Diag().Errorf(errors.ErrorBreakContinueOutsideLoop.At(node), keyword)
		return &bound.ExpressionStatement{Expression: &bound.ErrorExpression{}}
	}
	l := b.loops[len(b.loops)-1]
	if keyword == "break" {
		return &bound.GotoStatement{Label: l.brk}
	}
	return &bound.GotoStatement{Label: l.cont}
}

func (b *Binder) bindReturnStatement(node *ast.ReturnStatement) bound.Statement {
	if b.function == nil {
		b.Diag().Errorf(errors.ErrorReturnOutsideFunction.At(node))
		if node.Expression != nil {
			b.bindExpressionOrUnit(node.Expression)
		}
		return &bound.ExpressionStatement{Expression: &bound.ErrorExpression{}}
	}

	ret := b.function.Return
	switch {
	case node.Expression == nil:
		if ret != types.Unit && !types.IsError(ret) {
			b.Diag().Errorf(errors.ErrorCantReturnWithoutValue.At(node))
		}
		return &bound.ReturnStatement{}
	case ret == types.Unit:
		// Returning the result of a Unit call is fine; it just runs before the function returns.
		e := b.bindExpressionOrUnit(node.Expression)
		if e.Type() != types.Unit && !types.IsError(e.Type()) {
			b.Diag().Errorf(errors.ErrorCantReturnInUnitFunction.At(node.Expression))
			return &bound.ReturnStatement{}
		}
		return &bound.BlockStatement{Statements: []bound.Statement{
			&bound.ExpressionStatement{Expression: e},
			&bound.ReturnStatement{},
		}}
	}
	return &bound.ReturnStatement{Expression: b.bindConversion(node.Expression, ret)}
}

// bindNestedFunction declares a function found inside a body.  It gets a session-unique path, and its body is bound
// once the enclosing body is done.
func (b *Binder) bindNestedFunction(node *ast.FunctionDeclaration) {
	var prefix string
	if b.function != nil {
		prefix = b.function.Namespace()
	} else if b.namespace != nil {
		prefix = b.namespace.Path
	}
	path := prefix + "." + node.Name.Ident + "." + strconv.Itoa(b.ctx.NextAnonymousID())
	if fn := b.declareFunction(node, path, false); fn != nil {
		b.nested = append(b.nested, &pendingFunction{fn: fn, decl: node, scope: b.scope})
	}
}

// bindUse makes a namespace visible in the current scope.
func (b *Binder) bindUse(node *ast.UseStatement) {
	path := make([]string, len(node.Path))
	for i, seg := range node.Path {
		path[i] = seg.Ident
	}
	ns := b.scope.LookupNamespace(path)
	if ns == nil {
		b.Diag().Errorf(errors.ErrorIncorrectUseStatement.At(node), node.Dotted())
		return
	}
	b.scope.Use(&symbols.Use{Namespace: ns, Include: node.Include})
}
