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

package lower

import (
	"strconv"
	"strings"

	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
	"github.com/pulumi/lumi/pkg/util/contract"
)

// flattener turns a rewritten tree into a single list of statements.  Blocks disappear, block expressions are
// hoisted in front of the statement that uses them, and locals from different blocks that share a name are renamed
// apart, since they all end up in one function-wide scope.
type flattener struct {
	stmts   []bound.Statement
	taken   map[string]bool                       // real names already used by the function's locals.
	renamed map[*symbols.Variable]*symbols.Variable // locals that had to be renamed, by original.
}

func flatten(s bound.Statement, params []*symbols.Variable) *bound.BlockStatement {
	f := &flattener{
		taken:   make(map[string]bool),
		renamed: make(map[*symbols.Variable]*symbols.Variable),
	}
	for _, p := range params {
		f.taken[p.RealName] = true
	}
	f.statement(s)
	return &bound.BlockStatement{Statements: f.stmts}
}

func (f *flattener) emit(s bound.Statement) {
	f.stmts = append(f.stmts, s)
}

func (f *flattener) statement(s bound.Statement) {
	switch n := s.(type) {
	case *bound.BlockStatement:
		for _, child := range n.Statements {
			f.statement(child)
		}
	case *bound.NopStatement:
		// Dropped.
	case *bound.LabelStatement, *bound.GotoStatement:
		f.emit(n)
	case *bound.ExpressionStatement:
		if e := f.expression(n.Expression); e != nil {
			f.emit(&bound.ExpressionStatement{Expression: e})
		}
	case *bound.VariableDeclaration:
		var init bound.Expression
		if n.Initializer != nil {
			init = f.value(n.Initializer)
		}
		f.emit(&bound.VariableDeclaration{Variable: f.declare(n.Variable), Initializer: init})
	case *bound.ConditionalGotoStatement:
		f.emit(&bound.ConditionalGotoStatement{
			Label:      n.Label,
			Condition:  f.value(n.Condition),
			JumpIfTrue: n.JumpIfTrue,
		})
	case *bound.ReturnStatement:
		if n.Expression == nil {
			f.emit(n)
		} else {
			f.emit(&bound.ReturnStatement{Expression: f.value(n.Expression)})
		}
	default:
		contract.Failf("Unexpected %v in a rewritten body", s.Kind())
	}
}

// declare records a local's declaration, renaming it if its name is already in use.
func (f *flattener) declare(v *symbols.Variable) *symbols.Variable {
	if v.IsGlobal() {
		return v
	}
	if f.taken[v.RealName] {
		base := strings.TrimPrefix(v.RealName, ".")
		for i := 1; ; i++ {
			if nm := ".l_" + base + strconv.Itoa(i); !f.taken[nm] {
				nv := v.Renamed(nm)
				f.renamed[v] = nv
				v = nv
				break
			}
		}
	}
	f.taken[v.RealName] = true
	return v
}

func (f *flattener) variable(v *symbols.Variable) *symbols.Variable {
	if nv, has := f.renamed[v]; has {
		return nv
	}
	return v
}

// value flattens an expression that must produce a value.
func (f *flattener) value(e bound.Expression) bound.Expression {
	res := f.expression(e)
	contract.Assertf(res != nil, "Expected %v to have a value", e.Kind())
	return res
}

// expression flattens an expression, hoisting any statements it contains.  It returns nil for block expressions
// without a value.
func (f *flattener) expression(e bound.Expression) bound.Expression {
	switch n := e.(type) {
	case *bound.LiteralExpression, *bound.NamespaceFieldAccess, *bound.ErrorExpression:
		return n
	case *bound.VariableExpression:
		if v := f.variable(n.Variable); v != n.Variable {
			return &bound.VariableExpression{Variable: v}
		}
		return n
	case *bound.ReferenceExpression:
		if v := f.variable(n.Variable); v != n.Variable {
			return &bound.ReferenceExpression{Variable: v, Ty: n.Ty}
		}
		return n
	case *bound.UnaryExpression:
		return &bound.UnaryExpression{Operator: n.Operator, Operand: f.value(n.Operand)}
	case *bound.BinaryExpression:
		ops := f.operands(n.Left, n.Right)
		return &bound.BinaryExpression{Left: ops[0], Operator: n.Operator, Right: ops[1]}
	case *bound.AssignmentExpression:
		return f.assignment(n)
	case *bound.CallExpression:
		return &bound.CallExpression{Function: n.Function, Arguments: f.operands(n.Arguments...)}
	case *bound.CastExpression:
		return &bound.CastExpression{Ty: n.Ty, Expression: f.value(n.Expression)}
	case *bound.StructFieldAccess:
		return &bound.StructFieldAccess{Struct: f.value(n.Struct), Field: n.Field}
	case *bound.PointerAccess:
		ops := f.operands(n.Pointer, n.Index)
		return &bound.PointerAccess{Pointer: ops[0], Index: ops[1]}
	case *bound.StructInitialization:
		if n.Fields == nil {
			return n
		}
		return &bound.StructInitialization{Ty: n.Ty, Fields: f.operands(n.Fields...)}
	case *bound.PointerArrayInitialization:
		ops := f.operands(append(append([]bound.Expression(nil), n.Elements...), n.Length)...)
		res := &bound.PointerArrayInitialization{Ty: n.Ty, Length: ops[len(ops)-1]}
		if n.Elements != nil {
			res.Elements = ops[:len(ops)-1]
		}
		return res
	case *bound.BlockExpression:
		if len(n.Statements) == 0 {
			return nil
		}
		last := len(n.Statements) - 1
		result, hasResult := n.Statements[last].(*bound.ExpressionStatement)
		if !hasResult || n.Ty == types.Unit {
			for _, s := range n.Statements {
				f.statement(s)
			}
			return nil
		}
		for _, s := range n.Statements[:last] {
			f.statement(s)
		}
		return f.value(result.Expression)
	}
	contract.Failf("Unexpected %v in a rewritten body", e.Kind())
	return nil
}

func (f *flattener) assignment(n *bound.AssignmentExpression) bound.Expression {
	switch t := n.Target.(type) {
	case *bound.StructFieldAccess:
		ops := f.operands(t.Struct, n.Value)
		return &bound.AssignmentExpression{Target: &bound.StructFieldAccess{Struct: ops[0], Field: t.Field}, Value: ops[1]}
	case *bound.PointerAccess:
		ops := f.operands(t.Pointer, t.Index, n.Value)
		return &bound.AssignmentExpression{Target: &bound.PointerAccess{Pointer: ops[0], Index: ops[1]}, Value: ops[2]}
	}
	value := f.value(n.Value)
	return &bound.AssignmentExpression{Target: f.value(n.Target), Value: value}
}

// operands flattens the operands of an expression from left to right.  When an operand hoists statements, the
// operands to its left are spilled into temporaries first, so that they are still evaluated before it.  Nil operands
// stay nil.
func (f *flattener) operands(es ...bound.Expression) []bound.Expression {
	res := make([]bound.Expression, len(es))
	for i, e := range es {
		if e == nil {
			continue
		}
		mark := len(f.stmts)
		res[i] = f.value(e)
		if len(f.stmts) == mark || i == 0 {
			continue
		}
		hoisted := append([]bound.Statement(nil), f.stmts[mark:]...)
		f.stmts = f.stmts[:mark]
		for j := 0; j < i; j++ {
			if res[j] != nil && !isStable(res[j]) {
				res[j] = f.spill(res[j])
			}
		}
		f.stmts = append(f.stmts, hoisted...)
	}
	return res
}

// spill evaluates an expression into a fresh read-only temporary.
func (f *flattener) spill(e bound.Expression) bound.Expression {
	tmp := f.declare(symbols.NewLocalVariable(TemporaryName, e.Type(), true, nil, nil))
	f.emit(&bound.VariableDeclaration{Variable: tmp, Initializer: e})
	return &bound.VariableExpression{Variable: tmp}
}

// isStable is true for expressions whose value can't be changed by statements that run after them.
func isStable(e bound.Expression) bool {
	switch n := e.(type) {
	case *bound.LiteralExpression, *bound.ReferenceExpression:
		return true
	case *bound.VariableExpression:
		return n.Variable.ReadOnly
	}
	return false
}
