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
	"strings"

	"github.com/golang/glog"

	"github.com/pulumi/lumi/pkg/compiler/ast"
	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/errors"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
	"github.com/pulumi/lumi/pkg/diag"
)

// bindCallExpression binds calls, which are either casts to a named type, calls to a function in scope, or calls to a
// function in a namespace.
func (b *Binder) bindCallExpression(node *ast.CallExpression) bound.Expression {
	switch callee := node.Function.(type) {
	case *ast.NameExpression:
		name := callee.Name.Ident
		if ty := b.ctx.Types.Lookup(name); ty != nil && len(node.Arguments) == 1 {
			return b.bindCast(node.Arguments[0], ty)
		}
		return b.bindCallTo(node, callee.Name, []string{name})
	case *ast.BinaryExpression:
		if callee.IsDot() {
			right, isname := callee.Right.(*ast.NameExpression)
			if !isname {
				b.Diag().Errorf(errors.ErrorCantBeAfterDot.At(callee.Right))
				return &bound.ErrorExpression{}
			}
			switch left := b.bindDotLeft(callee.Left).(type) {
			case *bound.NamespaceFieldAccess:
				return b.bindCallTo(node, right.Name, append(strings.Split(left.Path, "."), right.Name.Ident))
			case *bound.ErrorExpression:
				return left
			}
		}
	}
	b.Diag().Errorf(errors.ErrorNotCallable.At(node.Function), node.Function.GetKind())
	return &bound.ErrorExpression{}
}

// bindCast binds a conversion written as a call to a type, e.g. `Int(x)`.  Identity casts are elided.
func (b *Binder) bindCast(node ast.Expression, ty symbols.Type) bound.Expression {
	e := b.bindExpression(node)
	if types.IsError(e.Type()) {
		return &bound.ErrorExpression{}
	}
	conv := types.Classify(e.Type(), ty)
	if !conv.Exists() {
		b.Diag().Errorf(errors.ErrorCantCast.At(node), e.Type(), ty)
		return &bound.ErrorExpression{}
	}
	if conv.IsIdentity() {
		return e
	}
	return &bound.CastExpression{Ty: ty, Expression: e}
}

// bindCallTo binds the arguments of a call and resolves the callee's path against their types.  Arguments may be of a
// subtype of the parameter's type, in which case they are cast.  Calls with an erroneous argument bind to an error
// without looking the callee up.
func (b *Binder) bindCallTo(node *ast.CallExpression, callee diag.Diagable, path []string) bound.Expression {
	args := make([]bound.Expression, len(node.Arguments))
	sig := make(symbols.Types, len(node.Arguments))
	broken := false
	for i, a := range node.Arguments {
		args[i] = b.bindExpressionOrUnit(a)
		sig[i] = args[i].Type()
		broken = broken || types.IsError(sig[i])
	}
	// An erroneous argument has been reported already, and no overload can match it.
	if broken {
		return &bound.ErrorExpression{}
	}

	sym, found := b.scope.TryLookup(path, sig)
	if !found {
		b.undefinedName(callee, strings.Join(path, "."))
		return &bound.ErrorExpression{}
	}
	fn, isfn := sym.(*symbols.Function)
	if !isfn {
		b.Diag().Errorf(errors.ErrorNotCallable.At(callee), sym.Name())
		return &bound.ErrorExpression{}
	}
	if glog.V(5) {
		glog.V(5).Infof("Resolved call to %v as %v", strings.Join(path, "."), fn.Path())
	}

	params := fn.Params
	switch {
	case len(args) > len(params):
		var first diag.Diagable = node.Arguments[len(params)]
		if len(params) > 0 && len(node.Separators) >= len(params) {
			first = node.Separators[len(params)-1]
		}
		span := ast.Span{Loc: locOf(first).Through(node.Arguments[len(args)-1].GetLoc())}
		b.Diag().Errorf(errors.ErrorWrongArgumentCount.At(span), fn.Name(), len(args), len(params))
		return &bound.ErrorExpression{}
	case len(args) < len(params):
		var at diag.Diagable = node
		if node.RightBracket != nil {
			at = node.RightBracket
		}
		b.Diag().Errorf(errors.ErrorWrongArgumentCount.At(at), fn.Name(), len(args), len(params))
		return &bound.ErrorExpression{}
	}

	ok := true
	for i, arg := range args {
		param := params[i]
		switch {
		case !symbols.IsOfType(arg.Type(), param.Ty):
			b.Diag().Errorf(errors.ErrorWrongArgumentType.At(node.Arguments[i]), param.Name(), arg.Type(), param.Ty)
			ok = false
		case arg.Type() != param.Ty:
			args[i] = &bound.CastExpression{Ty: param.Ty, Expression: arg}
		}
	}
	if !ok {
		return &bound.ErrorExpression{}
	}
	return &bound.CallExpression{Function: fn, Arguments: args}
}

// locOf returns the location of a node or token.
func locOf(n diag.Diagable) *ast.Location {
	if node, isnode := n.(ast.Node); isnode {
		return node.GetLoc()
	}
	return nil
}

// bindDotLeft binds the left side of a dot.  A name that doesn't denote a symbol is taken to start a namespace path.
func (b *Binder) bindDotLeft(node ast.Expression) bound.Expression {
	if name, isname := node.(*ast.NameExpression); isname {
		if _, found := b.scope.TryLookup([]string{name.Name.Ident}, nil); !found {
			return &bound.NamespaceFieldAccess{Path: name.Name.Ident}
		}
	}
	return b.bindExpressionInternal(node)
}

// bindDotAccess binds `left.right`, which is a namespace member, a function call in a namespace, or a struct field.
func (b *Binder) bindDotAccess(node *ast.BinaryExpression) bound.Expression {
	switch node.Right.(type) {
	case *ast.NameExpression, *ast.CallExpression:
	default:
		b.Diag().Errorf(errors.ErrorCantBeAfterDot.At(node.Right))
		b.bindExpressionInternal(node.Left)
		return &bound.ErrorExpression{}
	}

	left := b.bindDotLeft(node.Left)
	if nfa, isnfa := left.(*bound.NamespaceFieldAccess); isnfa {
		return b.bindNamespaceMember(nfa, node.Right)
	}
	if types.IsError(left.Type()) {
		return &bound.ErrorExpression{}
	}

	right, isname := node.Right.(*ast.NameExpression)
	if !isname {
		b.Diag().Errorf(errors.ErrorNotCallable.At(node.Right), node.Right.GetKind())
		return &bound.ErrorExpression{}
	}
	st, isstruct := left.Type().(*symbols.StructType)
	if !isstruct {
		b.Diag().Errorf(errors.ErrorUndefinedField.At(right), left.Type(), right.Name.Ident)
		return &bound.ErrorExpression{}
	}
	idx := st.FieldIndex(right.Name.Ident)
	if idx < 0 {
		b.Diag().Errorf(errors.ErrorUndefinedField.At(right), st, right.Name.Ident)
		return &bound.ErrorExpression{}
	}
	return &bound.StructFieldAccess{Struct: left, Field: idx}
}

// bindNamespaceMember resolves the right side of a dot whose left side is a namespace path.  A name that isn't a
// member extends the path further.
func (b *Binder) bindNamespaceMember(nfa *bound.NamespaceFieldAccess, right ast.Expression) bound.Expression {
	prefix := strings.Split(nfa.Path, ".")
	switch r := right.(type) {
	case *ast.NameExpression:
		path := append(prefix, r.Name.Ident)
		sym, found := b.scope.TryLookup(path, nil)
		if !found {
			return &bound.NamespaceFieldAccess{Path: strings.Join(path, ".")}
		}
		v, isvar := sym.(*symbols.Variable)
		if !isvar {
			b.Diag().Errorf(errors.ErrorExpressionMustHaveValue.At(r))
			return &bound.ErrorExpression{}
		}
		return &bound.VariableExpression{Variable: v}
	case *ast.CallExpression:
		if callee, isname := r.Function.(*ast.NameExpression); isname {
			return b.bindCallTo(r, callee.Name, append(prefix, callee.Name.Ident))
		}
		b.Diag().Errorf(errors.ErrorNotCallable.At(r.Function), r.Function.GetKind())
		return &bound.ErrorExpression{}
	}
	b.Diag().Errorf(errors.ErrorCantBeAfterDot.At(right))
	return &bound.ErrorExpression{}
}
