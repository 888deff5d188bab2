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

package encoding

import (
	"github.com/pkg/errors"

	"github.com/pulumi/lumi/pkg/compiler/ast"
)

func decodeExpression(v interface{}) (ast.Expression, error) {
	obj, ok := asObject(v)
	if !ok {
		return nil, errors.Errorf("an expression must be an object; got %T", v)
	}
	kind, err := nodeKind(obj, "Expression")
	if err != nil {
		return nil, err
	}
	switch kind {
	// Literals
	case ast.LiteralExpressionKind:
		return decodeLiteralExpression(obj)

	// Names
	case ast.NameExpressionKind:
		return decodeNameExpression(obj)
	case ast.ReferenceExpressionKind:
		return decodeReferenceExpression(obj)

	// Operators
	case ast.ParenthesizedExpressionKind:
		return decodeParenthesizedExpression(obj)
	case ast.UnaryExpressionKind:
		return decodeUnaryExpression(obj)
	case ast.BinaryExpressionKind:
		return decodeBinaryExpression(obj)
	case ast.AssignmentExpressionKind:
		return decodeAssignmentExpression(obj)

	// Calls and conditionals
	case ast.CallExpressionKind:
		return decodeCallExpression(obj)
	case ast.IfExpressionKind:
		return decodeIfExpression(obj)

	// Memory
	case ast.IndexExpressionKind:
		return decodeIndexExpression(obj)
	case ast.StructInitializationKind:
		return decodeStructInitialization(obj)
	case ast.PointerArrayInitializationKind:
		return decodePointerArrayInitialization(obj)

	default:
		return nil, errors.Errorf("unrecognized Expression kind: %v", kind)
	}
}

func fieldExpression(obj Object, ty ast.NodeKind, key string, required bool) (ast.Expression, error) {
	v, has := obj[key]
	if !has || v == nil {
		if required {
			return nil, errMissing(ty, key)
		}
		return nil, nil
	}
	expr, err := decodeExpression(v)
	if err != nil {
		return nil, errors.Wrapf(err, "%v.%v", ty, key)
	}
	return expr, nil
}

func fieldExpressions(obj Object, ty ast.NodeKind, key string) ([]ast.Expression, error) {
	arr, err := fieldArray(obj, ty, key, false)
	if err != nil {
		return nil, err
	}
	var exprs []ast.Expression
	for i, e := range arr {
		expr, err := decodeExpression(e)
		if err != nil {
			return nil, errors.Wrapf(err, "%v.%v[%d]", ty, key, i)
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func decodeLiteralExpression(obj Object) (*ast.LiteralExpression, error) {
	kind := ast.LiteralExpressionKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	lit := &ast.LiteralExpression{NodeValue: nv}
	v, has := obj["value"]
	if !has || v == nil {
		return nil, errMissing(kind, "value")
	}
	switch t := v.(type) {
	case bool, string:
		lit.Value = t
	default:
		n, ok := number(v)
		if !ok {
			return nil, errWrongType(kind, "value", "a bool, number or string", v)
		}
		lit.Value = n
	}
	if lit.Type, err = fieldString(obj, kind, "type", false); err != nil {
		return nil, err
	}
	return lit, nil
}

func decodeNameExpression(obj Object) (*ast.NameExpression, error) {
	kind := ast.NameExpressionKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	expr := &ast.NameExpression{NodeValue: nv}
	if expr.Name, err = decodeIdentifier(obj, kind, "name", true); err != nil {
		return nil, err
	}
	return expr, nil
}

func decodeReferenceExpression(obj Object) (*ast.ReferenceExpression, error) {
	kind := ast.ReferenceExpressionKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	expr := &ast.ReferenceExpression{NodeValue: nv}
	if expr.Name, err = decodeIdentifier(obj, kind, "name", true); err != nil {
		return nil, err
	}
	return expr, nil
}

func decodeParenthesizedExpression(obj Object) (*ast.ParenthesizedExpression, error) {
	kind := ast.ParenthesizedExpressionKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	expr := &ast.ParenthesizedExpression{NodeValue: nv}
	if expr.Expression, err = fieldExpression(obj, kind, "expression", true); err != nil {
		return nil, err
	}
	return expr, nil
}

func decodeUnaryExpression(obj Object) (*ast.UnaryExpression, error) {
	kind := ast.UnaryExpressionKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	expr := &ast.UnaryExpression{NodeValue: nv}
	if expr.Operator, err = decodeToken(obj, kind, "operator", true); err != nil {
		return nil, err
	}
	if expr.Operand, err = fieldExpression(obj, kind, "operand", true); err != nil {
		return nil, err
	}
	return expr, nil
}

func decodeBinaryExpression(obj Object) (*ast.BinaryExpression, error) {
	kind := ast.BinaryExpressionKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	expr := &ast.BinaryExpression{NodeValue: nv}
	if expr.Left, err = fieldExpression(obj, kind, "left", true); err != nil {
		return nil, err
	}
	if expr.Operator, err = decodeToken(obj, kind, "operator", true); err != nil {
		return nil, err
	}
	if expr.Right, err = fieldExpression(obj, kind, "right", true); err != nil {
		return nil, err
	}
	return expr, nil
}

func decodeAssignmentExpression(obj Object) (*ast.AssignmentExpression, error) {
	kind := ast.AssignmentExpressionKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	expr := &ast.AssignmentExpression{NodeValue: nv}
	if expr.Target, err = fieldExpression(obj, kind, "target", true); err != nil {
		return nil, err
	}
	if expr.Equals, err = decodeToken(obj, kind, "equals", false); err != nil {
		return nil, err
	}
	if expr.Value, err = fieldExpression(obj, kind, "value", true); err != nil {
		return nil, err
	}
	return expr, nil
}

func decodeCallExpression(obj Object) (*ast.CallExpression, error) {
	kind := ast.CallExpressionKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	expr := &ast.CallExpression{NodeValue: nv}
	if expr.Function, err = fieldExpression(obj, kind, "function", true); err != nil {
		return nil, err
	}
	if expr.Arguments, err = fieldExpressions(obj, kind, "arguments"); err != nil {
		return nil, err
	}
	seps, err := fieldArray(obj, kind, "separators", false)
	if err != nil {
		return nil, err
	}
	for i := range seps {
		sep, err := decodeToken(Object{"sep": seps[i]}, kind, "sep", true)
		if err != nil {
			return nil, errors.Wrapf(err, "separators[%d]", i)
		}
		expr.Separators = append(expr.Separators, sep)
	}
	if expr.RightBracket, err = decodeToken(obj, kind, "rightBracket", false); err != nil {
		return nil, err
	}
	return expr, nil
}

func decodeIfExpression(obj Object) (*ast.IfExpression, error) {
	kind := ast.IfExpressionKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	expr := &ast.IfExpression{NodeValue: nv}
	if expr.Condition, err = fieldExpression(obj, kind, "condition", true); err != nil {
		return nil, err
	}
	if expr.Then, err = fieldBlock(obj, kind, "then", true); err != nil {
		return nil, err
	}
	if expr.Else, err = decodeElseClause(obj, kind); err != nil {
		return nil, err
	}
	return expr, nil
}

func decodeIndexExpression(obj Object) (*ast.IndexExpression, error) {
	kind := ast.IndexExpressionKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	expr := &ast.IndexExpression{NodeValue: nv}
	if expr.Target, err = fieldExpression(obj, kind, "target", true); err != nil {
		return nil, err
	}
	if expr.Index, err = fieldExpression(obj, kind, "index", true); err != nil {
		return nil, err
	}
	return expr, nil
}

func decodeStructInitialization(obj Object) (*ast.StructInitialization, error) {
	kind := ast.StructInitializationKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	expr := &ast.StructInitialization{NodeValue: nv}
	if expr.Type, err = decodeTypeClause(obj, kind, "type", true); err != nil {
		return nil, err
	}
	fields, err := fieldArray(obj, kind, "fields", false)
	if err != nil {
		return nil, err
	}
	for i, f := range fields {
		o, ok := asObject(f)
		if !ok {
			return nil, errors.Errorf("fields[%d] must be an object; got %T", i, f)
		}
		fnv, err := nodeValue(o, ast.FieldInitializerKind)
		if err != nil {
			return nil, err
		}
		init := &ast.FieldInitializer{NodeValue: fnv}
		if init.Name, err = decodeIdentifier(o, ast.FieldInitializerKind, "name", true); err != nil {
			return nil, err
		}
		if init.Value, err = fieldExpression(o, ast.FieldInitializerKind, "value", true); err != nil {
			return nil, err
		}
		expr.Fields = append(expr.Fields, init)
	}
	return expr, nil
}

func decodePointerArrayInitialization(obj Object) (*ast.PointerArrayInitialization, error) {
	kind := ast.PointerArrayInitializationKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	expr := &ast.PointerArrayInitialization{NodeValue: nv}
	if expr.Type, err = decodeTypeClause(obj, kind, "type", true); err != nil {
		return nil, err
	}
	if expr.Elements, err = fieldExpressions(obj, kind, "elements"); err != nil {
		return nil, err
	}
	if expr.Length, err = fieldExpression(obj, kind, "length", false); err != nil {
		return nil, err
	}
	if expr.Length != nil && len(expr.Elements) > 0 {
		return nil, errors.Errorf("%v has both elements and a length", kind)
	}
	return expr, nil
}
