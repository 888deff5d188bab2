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

	"github.com/pulumi/lumi/pkg/compiler/ast"
	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/errors"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
	"github.com/pulumi/lumi/pkg/diag"
	"github.com/pulumi/lumi/pkg/util/contract"
)

// bindExpression binds an expression that must produce a value.
func (b *Binder) bindExpression(node ast.Expression) bound.Expression {
	e := b.bindExpressionOrUnit(node)
	if e.Type() == types.Unit {
		b.Diag().Errorf(errors.ErrorExpressionMustHaveValue.At(node))
		return &bound.ErrorExpression{}
	}
	return e
}

// bindExpressionOrUnit binds an expression that may or may not produce a value.
func (b *Binder) bindExpressionOrUnit(node ast.Expression) bound.Expression {
	e := b.bindExpressionInternal(node)
	if nfa, isnfa := e.(*bound.NamespaceFieldAccess); isnfa {
		// A namespace on its own isn't a value.
		b.undefinedName(node, nfa.Path)
		return &bound.ErrorExpression{}
	}
	return e
}

// bindExpressionOfType binds an expression whose type must be exactly ty.
func (b *Binder) bindExpressionOfType(node ast.Expression, ty symbols.Type) bound.Expression {
	e := b.bindExpression(node)
	if !types.IsError(e.Type()) && e.Type() != ty {
		b.Diag().Errorf(errors.ErrorWrongType.At(node), e.Type(), ty)
		return &bound.ErrorExpression{}
	}
	return e
}

// bindConversion binds an expression whose type must be ty or one of its subtypes.  Subtypes are converted
// explicitly.
func (b *Binder) bindConversion(node ast.Expression, ty symbols.Type) bound.Expression {
	return b.convert(node, b.bindExpression(node), ty)
}

func (b *Binder) convert(node diag.Diagable, e bound.Expression, ty symbols.Type) bound.Expression {
	from := e.Type()
	switch {
	case types.IsError(from) || types.IsError(ty) || from == ty:
		return e
	case symbols.IsOfType(from, ty):
		return &bound.CastExpression{Ty: ty, Expression: e}
	}
	b.Diag().Errorf(errors.ErrorWrongType.At(node), from, ty)
	return &bound.ErrorExpression{}
}

// bindExpressionInternal binds any expression.  Dot accesses may bind to a bare namespace, which callers have to
// either extend or reject.
func (b *Binder) bindExpressionInternal(node ast.Expression) bound.Expression {
	contract.Require(node != nil, "node")
	if glog.V(7) {
		glog.V(7).Infof("Binding %v", node.GetKind())
	}
	switch n := node.(type) {
	case *ast.LiteralExpression:
		return b.bindLiteralExpression(n)
	case *ast.NameExpression:
		if v := b.lookupVariable(n.Name); v != nil {
			return &bound.VariableExpression{Variable: v}
		}
		return &bound.ErrorExpression{}
	case *ast.ParenthesizedExpression:
		return b.bindExpressionOrUnit(n.Expression)
	case *ast.UnaryExpression:
		return b.bindUnaryExpression(n)
	case *ast.BinaryExpression:
		if n.IsDot() {
			return b.bindDotAccess(n)
		}
		return b.bindBinaryExpression(n)
	case *ast.AssignmentExpression:
		return b.bindAssignmentExpression(n)
	case *ast.CallExpression:
		return b.bindCallExpression(n)
	case *ast.IfExpression:
		return b.bindIfExpression(n.Condition, n.Then, n.Else, n)
	case *ast.IndexExpression:
		return b.bindIndexExpression(n)
	case *ast.ReferenceExpression:
		return b.bindReferenceExpression(n)
	case *ast.StructInitialization:
		return b.bindStructInitialization(n)
	case *ast.PointerArrayInitialization:
		return b.bindPointerArrayInitialization(n)
	}
	contract.Failf("Unrecognized expression kind: %v", node.GetKind())
	return nil
}

func (b *Binder) bindLiteralExpression(node *ast.LiteralExpression) bound.Expression {
	var ty symbols.Type
	if node.Type == "" {
		switch node.Value.(type) {
		case int64:
			ty = types.Int
		case float64:
			ty = types.Double
		case bool:
			ty = types.Bool
		case string:
			ty = types.String
		default:
			contract.Failf("Unexpected literal value %v (%T)", node.Value, node.Value)
		}
	} else {
		ty = b.ctx.Types.Lookup(node.Type)
		if ty == nil {
			b.Diag().Errorf(errors.ErrorUndefinedType.At(node), node.Type)
			return &bound.ErrorExpression{}
		}
		if !literalFits(node.Value, ty) {
			b.Diag().Errorf(errors.ErrorValueNotOfType.At(node), node.Value, ty)
			return &bound.ErrorExpression{}
		}
	}
	return bound.NewLiteral(node.Value, ty)
}

// literalFits is true if a literal value can be written with an explicit type: integers for any numeric type,
// fractions for floats, and booleans and strings for their own types.
func literalFits(v interface{}, ty symbols.Type) bool {
	switch v.(type) {
	case int64:
		return types.IsNumeric(ty)
	case float64:
		return types.IsFloat(ty)
	case bool:
		return ty == types.Bool
	case string:
		return ty == types.String
	}
	return false
}

func (b *Binder) bindUnaryExpression(node *ast.UnaryExpression) bound.Expression {
	operand := b.bindExpression(node.Operand)
	if types.IsError(operand.Type()) {
		return &bound.ErrorExpression{}
	}
	op := bound.BindUnaryOperator(node.Operator.Text, operand.Type())
	if op == nil {
		b.Diag().Errorf(errors.ErrorUnaryOperator.At(node.Operator), node.Operator.Text, operand.Type())
		return &bound.ErrorExpression{}
	}
	return &bound.UnaryExpression{Operator: op, Operand: operand}
}

func (b *Binder) bindBinaryExpression(node *ast.BinaryExpression) bound.Expression {
	left := b.bindExpression(node.Left)
	right := b.bindExpression(node.Right)
	if types.IsError(left.Type()) || types.IsError(right.Type()) {
		return &bound.ErrorExpression{}
	}
	op := bound.BindBinaryOperator(node.Operator.Text, left.Type(), right.Type())
	if op == nil {
		b.Diag().Errorf(errors.ErrorBinaryOperator.At(node.Operator), node.Operator.Text, left.Type(), right.Type())
		return &bound.ErrorExpression{}
	}
	return &bound.BinaryExpression{Left: left, Operator: op, Right: right}
}

func (b *Binder) bindAssignmentExpression(node *ast.AssignmentExpression) bound.Expression {
	target := b.bindAssignmentTarget(node.Target)
	if target == nil {
		// Still bind the value so that its own errors are reported.
		b.bindExpressionOrUnit(node.Value)
		return &bound.ErrorExpression{}
	}
	value := b.bindConversion(node.Value, target.Type())
	if _, iserr := value.(*bound.ErrorExpression); iserr {
		return value
	}
	return &bound.AssignmentExpression{Target: target, Value: value}
}

// bindAssignmentTarget binds the left side of an assignment, which must be a mutable variable, a struct field or a
// pointer element.  Failures are reported and return nil.
func (b *Binder) bindAssignmentTarget(node ast.Expression) bound.Expression {
	var target bound.Expression
	switch n := node.(type) {
	case *ast.NameExpression:
		v := b.lookupVariable(n.Name)
		if v == nil {
			return nil
		}
		target = &bound.VariableExpression{Variable: v}
	case *ast.IndexExpression:
		target = b.bindIndexExpression(n)
	case *ast.BinaryExpression:
		if !n.IsDot() {
			b.Diag().Errorf(errors.ErrorNotAssignable.At(node))
			return nil
		}
		target = b.bindExpressionOrUnit(n)
	default:
		b.Diag().Errorf(errors.ErrorNotAssignable.At(node))
		return nil
	}

	switch t := target.(type) {
	case *bound.ErrorExpression:
		return nil
	case *bound.VariableExpression:
		if t.Variable.ReadOnly {
			b.Diag().Errorf(errors.ErrorVariableIsImmutable.At(node), t.Variable.Name())
			return nil
		}
	case *bound.StructFieldAccess, *bound.PointerAccess:
	default:
		b.Diag().Errorf(errors.ErrorNotAssignable.At(node))
		return nil
	}
	if types.IsError(target.Type()) {
		return nil
	}
	return target
}

// bindIfExpression binds a conditional used for its value.  Each branch's value is its trailing expression
// statement, and both branches must agree on the type.  Without an else clause the conditional has no value.
func (b *Binder) bindIfExpression(cond ast.Expression, then *ast.BlockStatement, els *ast.ElseClause,
	node ast.Node) bound.Expression {
	c := b.bindExpressionOfType(cond, types.Bool)
	t := b.bindBlockExpression(then)

	var e bound.Expression
	var at diag.Diagable = node
	if els == nil {
		e = &bound.BlockExpression{Ty: types.Unit}
	} else {
		at = els
		switch s := els.Statement.(type) {
		case *ast.BlockStatement:
			e = b.bindBlockExpression(s)
		case *ast.IfStatement:
			e = b.bindIfExpression(s.Condition, s.Then, s.Else, s)
		case *ast.ExpressionStatement:
			e = b.bindExpressionOrUnit(s.Expression)
		default:
			e = b.bindBlockExpression(&ast.BlockStatement{NodeValue: els.NodeValue, Statements: []ast.Statement{s}})
		}
	}

	if types.IsError(c.Type()) || types.IsError(t.Type()) || types.IsError(e.Type()) {
		return &bound.ErrorExpression{}
	}
	if t.Type() != e.Type() {
		b.Diag().Errorf(errors.ErrorWrongType.At(at), e.Type(), t.Type())
		return &bound.ErrorExpression{}
	}
	return &bound.IfExpression{Condition: c, Then: t, Else: e, Ty: t.Type()}
}

// bindBlockExpression binds a block whose trailing expression statement, if any, is its value.
func (b *Binder) bindBlockExpression(node *ast.BlockStatement) *bound.BlockExpression {
	defer b.pushScope()()
	res := &bound.BlockExpression{Ty: types.Unit}
	for i, s := range node.Statements {
		if es, isexpr := s.(*ast.ExpressionStatement); isexpr && i == len(node.Statements)-1 {
			value := b.bindExpressionOrUnit(es.Expression)
			res.Statements = append(res.Statements, &bound.ExpressionStatement{Expression: value})
			res.Ty = value.Type()
			break
		}
		res.Statements = append(res.Statements, b.bindStatement(s))
	}
	return res
}

func (b *Binder) bindIndexExpression(node *ast.IndexExpression) bound.Expression {
	target := b.bindExpression(node.Target)
	index := b.bindExpression(node.Index)
	if types.IsError(target.Type()) || types.IsError(index.Type()) {
		return &bound.ErrorExpression{}
	}
	if _, isptr := target.Type().(*symbols.PointerType); !isptr {
		b.Diag().Errorf(errors.ErrorNotIndexable.At(node.Target), target.Type())
		return &bound.ErrorExpression{}
	}
	if !types.IsInteger(index.Type()) {
		b.Diag().Errorf(errors.ErrorWrongType.At(node.Index), index.Type(), types.Int)
		return &bound.ErrorExpression{}
	}
	return &bound.PointerAccess{Pointer: target, Index: index}
}

func (b *Binder) bindReferenceExpression(node *ast.ReferenceExpression) bound.Expression {
	v := b.lookupVariable(node.Name)
	if v == nil || types.IsError(v.Ty) {
		return &bound.ErrorExpression{}
	}
	return &bound.ReferenceExpression{Variable: v, Ty: b.ctx.Types.Pointer(v.Ty)}
}

func (b *Binder) bindStructInitialization(node *ast.StructInitialization) bound.Expression {
	ty := b.bindType(node.Type)
	st, isstruct := ty.(*symbols.StructType)
	if !isstruct {
		if !types.IsError(ty) {
			b.Diag().Errorf(errors.ErrorWrongType.At(node.Type), ty, "struct")
		}
		for _, f := range node.Fields {
			b.bindExpression(f.Value)
		}
		return &bound.ErrorExpression{}
	}

	ok := true
	fields := make([]bound.Expression, len(st.Fields))
	for _, f := range node.Fields {
		idx := st.FieldIndex(f.Name.Ident)
		switch {
		case idx < 0:
			b.Diag().Errorf(errors.ErrorUndefinedField.At(f.Name), st, f.Name.Ident)
			b.bindExpression(f.Value)
			ok = false
		case fields[idx] != nil:
			b.Diag().Errorf(errors.ErrorSymbolAlreadyDeclared.At(f.Name), f.Name.Ident)
			b.bindExpression(f.Value)
			ok = false
		default:
			fields[idx] = b.bindConversion(f.Value, st.Fields[idx].Type)
			if _, iserr := fields[idx].(*bound.ErrorExpression); iserr {
				ok = false
			}
		}
	}
	if !ok {
		return &bound.ErrorExpression{}
	}
	return &bound.StructInitialization{Ty: st, Fields: fields}
}

func (b *Binder) bindPointerArrayInitialization(node *ast.PointerArrayInitialization) bound.Expression {
	ty := b.bindType(node.Type)
	ptr, isptr := ty.(*symbols.PointerType)
	if !isptr {
		if !types.IsError(ty) {
			b.Diag().Errorf(errors.ErrorWrongType.At(node.Type), ty, symbols.PointerTypeName)
		}
		return &bound.ErrorExpression{}
	}

	res := &bound.PointerArrayInitialization{Ty: ptr}
	ok := true
	if node.Length != nil {
		length := b.bindExpression(node.Length)
		switch {
		case types.IsError(length.Type()):
			ok = false
		case !types.IsInteger(length.Type()):
			b.Diag().Errorf(errors.ErrorWrongType.At(node.Length), length.Type(), types.Int)
			ok = false
		}
		res.Length = length
	}
	for _, e := range node.Elements {
		elem := b.bindConversion(e, ptr.Element)
		if _, iserr := elem.(*bound.ErrorExpression); iserr {
			ok = false
		}
		res.Elements = append(res.Elements, elem)
	}
	if !ok {
		return &bound.ErrorExpression{}
	}
	return res
}
