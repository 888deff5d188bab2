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

// Package lower rewrites bound function bodies into the form code generation works on: a single flat list of
// simple statements, labels and jumps, with no structured control flow and no nested blocks left.
package lower

import (
	"github.com/golang/glog"

	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
	"github.com/pulumi/lumi/pkg/util/contract"
)

// UpperBoundName and TemporaryName are the names of the hidden variables the lowerer introduces.  They can't clash
// with user identifiers, since those never start with a dot.
const (
	UpperBoundName = ".upperBound"
	TemporaryName  = ".tmp"
)

// Lower rewrites a bound body into a flat, lowered block and removes its dead code.  The names of params are reserved,
// so that no local ends up sharing a name with one of them.
func Lower(body bound.Statement, params ...*symbols.Variable) *bound.BlockStatement {
	contract.Require(body != nil, "body")
	l := &lowerer{labels: bound.LabelGenerator{Prefix: "L"}}
	rewritten := l.rewriteStatement(body)
	result := RemoveDeadCode(flatten(rewritten, params))
	if glog.V(9) {
		glog.V(9).Infof("Lowered body:\n%v", bound.String(result))
	}
	return result
}

// lowerer holds the label counter of a single Lower invocation.
type lowerer struct {
	labels bound.LabelGenerator
}

func block(stmts ...bound.Statement) *bound.BlockStatement {
	return &bound.BlockStatement{Statements: stmts}
}

func (l *lowerer) rewriteStatement(s bound.Statement) bound.Statement {
	switch n := s.(type) {
	case *bound.BlockStatement:
		stmts := make([]bound.Statement, len(n.Statements))
		for i, child := range n.Statements {
			stmts[i] = l.rewriteStatement(child)
		}
		return block(stmts...)
	case *bound.ExpressionStatement:
		return &bound.ExpressionStatement{Expression: l.rewriteExpression(n.Expression)}
	case *bound.VariableDeclaration:
		var init bound.Expression
		if n.Initializer != nil {
			init = l.rewriteExpression(n.Initializer)
		}
		return &bound.VariableDeclaration{Variable: n.Variable, Initializer: init}
	case *bound.IfStatement:
		return l.rewriteIf(n)
	case *bound.WhileStatement:
		return l.rewriteWhile(n)
	case *bound.ForStatement:
		return l.rewriteFor(n)
	case *bound.ConditionalGotoStatement:
		return l.rewriteConditionalGoto(n)
	case *bound.ReturnStatement:
		if n.Expression == nil {
			return n
		}
		return &bound.ReturnStatement{Expression: l.rewriteExpression(n.Expression)}
	case *bound.LabelStatement, *bound.GotoStatement, *bound.NopStatement:
		return n
	}
	contract.Failf("Unrecognized bound statement kind: %v", s.Kind())
	return nil
}

// rewriteIf turns
//
//	if <cond> <then>
//
// into
//
//	goto end unless <cond>
//	<then>
//	end:
//
// and, with an else clause, into
//
//	goto else unless <cond>
//	<then>
//	goto end
//	else:
//	<else>
//	end:
func (l *lowerer) rewriteIf(node *bound.IfStatement) bound.Statement {
	end := l.labels.Next()
	if node.Else == nil {
		return l.rewriteStatement(block(
			&bound.ConditionalGotoStatement{Label: end, Condition: node.Condition, JumpIfTrue: false},
			node.Then,
			&bound.LabelStatement{Label: end},
		))
	}
	els := l.labels.Next()
	return l.rewriteStatement(block(
		&bound.ConditionalGotoStatement{Label: els, Condition: node.Condition, JumpIfTrue: false},
		node.Then,
		&bound.GotoStatement{Label: end},
		&bound.LabelStatement{Label: els},
		node.Else,
		&bound.LabelStatement{Label: end},
	))
}

// rewriteWhile turns
//
//	while <cond> <body>
//
// into
//
//	continue:
//	goto break unless <cond>
//	<body>
//	goto continue
//	break:
func (l *lowerer) rewriteWhile(node *bound.WhileStatement) bound.Statement {
	return l.rewriteStatement(block(
		&bound.LabelStatement{Label: node.Continue},
		&bound.ConditionalGotoStatement{Label: node.Break, Condition: node.Condition, JumpIfTrue: false},
		node.Body,
		&bound.GotoStatement{Label: node.Continue},
		&bound.LabelStatement{Label: node.Break},
	))
}

// rewriteFor turns
//
//	for <var> in <lower>..<upper> <body>
//
// into
//
//	var <var> = <lower>
//	val .upperBound = <upper>
//	while <var> <= .upperBound {
//	    <body>
//	    continue:
//	    <var> = <var> + 1
//	}
//
// The upper bound is evaluated once, before the first iteration.
func (l *lowerer) rewriteFor(node *bound.ForStatement) bound.Statement {
	upper := symbols.NewLocalVariable(UpperBoundName, types.Int, true, bound.Constant(node.Upper), nil)
	variable := &bound.VariableExpression{Variable: node.Variable}
	condition := &bound.BinaryExpression{
		Left:     variable,
		Operator: bound.BindBinaryOperator("<=", types.Int, types.Int),
		Right:    &bound.VariableExpression{Variable: upper},
	}
	increment := &bound.ExpressionStatement{Expression: &bound.AssignmentExpression{
		Target: variable,
		Value: &bound.BinaryExpression{
			Left:     variable,
			Operator: bound.BindBinaryOperator("+", types.Int, types.Int),
			Right:    bound.NewLiteral(int64(1), types.Int),
		},
	}}
	loop := &bound.WhileStatement{
		Condition: condition,
		Body:      block(node.Body, &bound.LabelStatement{Label: node.Continue}, increment),
		Break:     node.Break,
		Continue:  l.labels.Next(),
	}
	return l.rewriteStatement(block(
		&bound.VariableDeclaration{Variable: node.Variable, Initializer: node.Lower},
		&bound.VariableDeclaration{Variable: upper, Initializer: node.Upper},
		loop,
	))
}

// rewriteConditionalGoto replaces jumps on constant conditions by either an unconditional jump or nothing at all.
func (l *lowerer) rewriteConditionalGoto(node *bound.ConditionalGotoStatement) bound.Statement {
	cond := l.rewriteExpression(node.Condition)
	if c := bound.Constant(cond); c != nil {
		if b, isbool := c.Value.(bool); isbool {
			if b == node.JumpIfTrue {
				return &bound.GotoStatement{Label: node.Label}
			}
			return &bound.NopStatement{}
		}
	}
	return &bound.ConditionalGotoStatement{Label: node.Label, Condition: cond, JumpIfTrue: node.JumpIfTrue}
}

func (l *lowerer) rewriteExpressions(es []bound.Expression) []bound.Expression {
	if es == nil {
		return nil
	}
	res := make([]bound.Expression, len(es))
	for i, e := range es {
		if e != nil {
			res[i] = l.rewriteExpression(e)
		}
	}
	return res
}

func (l *lowerer) rewriteExpression(e bound.Expression) bound.Expression {
	switch n := e.(type) {
	case *bound.LiteralExpression, *bound.VariableExpression, *bound.ReferenceExpression,
		*bound.ErrorExpression, *bound.NamespaceFieldAccess:
		return n
	case *bound.UnaryExpression:
		return &bound.UnaryExpression{Operator: n.Operator, Operand: l.rewriteExpression(n.Operand)}
	case *bound.BinaryExpression:
		return l.rewriteBinary(n)
	case *bound.AssignmentExpression:
		return &bound.AssignmentExpression{Target: l.rewriteExpression(n.Target), Value: l.rewriteExpression(n.Value)}
	case *bound.CallExpression:
		return &bound.CallExpression{Function: n.Function, Arguments: l.rewriteExpressions(n.Arguments)}
	case *bound.CastExpression:
		return &bound.CastExpression{Ty: n.Ty, Expression: l.rewriteExpression(n.Expression)}
	case *bound.StructFieldAccess:
		return &bound.StructFieldAccess{Struct: l.rewriteExpression(n.Struct), Field: n.Field}
	case *bound.PointerAccess:
		return &bound.PointerAccess{Pointer: l.rewriteExpression(n.Pointer), Index: l.rewriteExpression(n.Index)}
	case *bound.StructInitialization:
		return &bound.StructInitialization{Ty: n.Ty, Fields: l.rewriteExpressions(n.Fields)}
	case *bound.PointerArrayInitialization:
		res := &bound.PointerArrayInitialization{Ty: n.Ty, Elements: l.rewriteExpressions(n.Elements)}
		if n.Length != nil {
			res.Length = l.rewriteExpression(n.Length)
		}
		return res
	case *bound.BlockExpression:
		stmts := make([]bound.Statement, len(n.Statements))
		for i, s := range n.Statements {
			stmts[i] = l.rewriteStatement(s)
		}
		return &bound.BlockExpression{Statements: stmts, Ty: n.Ty}
	case *bound.IfExpression:
		return l.rewriteIfExpression(n)
	}
	contract.Failf("Unrecognized bound expression kind: %v", e.Kind())
	return nil
}

// rewriteBinary makes `&&` and `||` short-circuit when their right operand is not pure, by turning them into
// conditionals: `a && b` becomes `if a { b } else { false }` and `a || b` becomes `if a { true } else { b }`.
func (l *lowerer) rewriteBinary(n *bound.BinaryExpression) bound.Expression {
	if (n.Operator.Op == bound.LogicAnd || n.Operator.Op == bound.LogicOr) && !IsPure(n.Right) {
		then, els := n.Right, bound.Expression(bound.NewLiteral(false, types.Bool))
		if n.Operator.Op == bound.LogicOr {
			then, els = bound.NewLiteral(true, types.Bool), n.Right
		}
		return l.rewriteIfExpression(&bound.IfExpression{Condition: n.Left, Then: then, Else: els, Ty: types.Bool})
	}
	return &bound.BinaryExpression{
		Left:     l.rewriteExpression(n.Left),
		Operator: n.Operator,
		Right:    l.rewriteExpression(n.Right),
	}
}

// rewriteIfExpression turns a value producing conditional into a block that assigns either branch to a hidden
// temporary and then yields it.  Conditionals without a value just run one of their branches.
func (l *lowerer) rewriteIfExpression(node *bound.IfExpression) bound.Expression {
	els, end := l.labels.Next(), l.labels.Next()
	if node.Ty == types.Unit {
		return l.rewriteExpression(&bound.BlockExpression{Ty: types.Unit, Statements: []bound.Statement{
			&bound.ConditionalGotoStatement{Label: els, Condition: node.Condition, JumpIfTrue: false},
			&bound.ExpressionStatement{Expression: node.Then},
			&bound.GotoStatement{Label: end},
			&bound.LabelStatement{Label: els},
			&bound.ExpressionStatement{Expression: node.Else},
			&bound.LabelStatement{Label: end},
		}})
	}

	tmp := symbols.NewLocalVariable(TemporaryName, node.Ty, false, nil, nil)
	assign := func(value bound.Expression) bound.Statement {
		return &bound.ExpressionStatement{Expression: &bound.AssignmentExpression{
			Target: &bound.VariableExpression{Variable: tmp},
			Value:  value,
		}}
	}
	var init bound.Expression
	if zero := bound.ZeroValue(node.Ty); zero != nil {
		init = zero
	}
	return l.rewriteExpression(&bound.BlockExpression{Ty: node.Ty, Statements: []bound.Statement{
		&bound.VariableDeclaration{Variable: tmp, Initializer: init},
		&bound.ConditionalGotoStatement{Label: els, Condition: node.Condition, JumpIfTrue: false},
		assign(node.Then),
		&bound.GotoStatement{Label: end},
		&bound.LabelStatement{Label: els},
		assign(node.Else),
		&bound.LabelStatement{Label: end},
		&bound.ExpressionStatement{Expression: &bound.VariableExpression{Variable: tmp}},
	}})
}

// IsPure is true if evaluating the expression can neither change state nor trap.  Calls, assignments and
// allocations change state; indexing a pointer, reading a field through a possibly null struct, and integer division
// or remainder can abort evaluation.  Only pure operands may be evaluated without being asked for.
func IsPure(e bound.Expression) bool {
	pure := true
	bound.Inspect(e, func(n bound.Node) bool {
		switch n := n.(type) {
		case *bound.CallExpression, *bound.AssignmentExpression, *bound.BlockExpression, *bound.IfExpression,
			*bound.StructInitialization, *bound.PointerArrayInitialization,
			*bound.PointerAccess, *bound.StructFieldAccess:
			pure = false
		case *bound.BinaryExpression:
			if (n.Operator.Op == bound.Div || n.Operator.Op == bound.Rem) && types.IsInteger(n.Operator.OperandType()) {
				pure = false
			}
		}
		return pure
	})
	return pure
}
