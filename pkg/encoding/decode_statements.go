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

func decodeStatement(v interface{}) (ast.Statement, error) {
	obj, ok := asObject(v)
	if !ok {
		return nil, errors.Errorf("a statement must be an object; got %T", v)
	}
	kind, err := nodeKind(obj, "Statement")
	if err != nil {
		return nil, err
	}
	switch kind {
	// Blocks
	case ast.BlockStatementKind:
		return decodeBlockStatement(obj)

	// Declarations
	case ast.VariableDeclarationKind:
		return decodeVariableDeclaration(obj)
	case ast.FunctionDeclarationKind:
		return decodeFunctionDeclaration(obj)
	case ast.UseStatementKind:
		return decodeUseStatement(obj)

	// Branches
	case ast.IfStatementKind:
		return decodeIfStatement(obj)
	case ast.WhileStatementKind:
		return decodeWhileStatement(obj)
	case ast.ForStatementKind:
		return decodeForStatement(obj)
	case ast.BreakStatementKind:
		nv, err := nodeValue(obj, kind)
		if err != nil {
			return nil, err
		}
		return &ast.BreakStatement{NodeValue: nv}, nil
	case ast.ContinueStatementKind:
		nv, err := nodeValue(obj, kind)
		if err != nil {
			return nil, err
		}
		return &ast.ContinueStatement{NodeValue: nv}, nil
	case ast.ReturnStatementKind:
		return decodeReturnStatement(obj)

	// Miscellaneous
	case ast.ExpressionStatementKind:
		return decodeExpressionStatement(obj)

	default:
		return nil, errors.Errorf("unrecognized Statement kind: %v", kind)
	}
}

func fieldStatement(obj Object, ty ast.NodeKind, key string, required bool) (ast.Statement, error) {
	v, has := obj[key]
	if !has || v == nil {
		if required {
			return nil, errMissing(ty, key)
		}
		return nil, nil
	}
	stmt, err := decodeStatement(v)
	if err != nil {
		return nil, errors.Wrapf(err, "%v.%v", ty, key)
	}
	return stmt, nil
}

func fieldBlock(obj Object, ty ast.NodeKind, key string, required bool) (*ast.BlockStatement, error) {
	stmt, err := fieldStatement(obj, ty, key, required)
	if err != nil || stmt == nil {
		return nil, err
	}
	block, ok := stmt.(*ast.BlockStatement)
	if !ok {
		return nil, errors.Errorf("%v field '%v' must be a %v; got %v", ty, key, ast.BlockStatementKind, stmt.GetKind())
	}
	return block, nil
}

func decodeBlockStatement(obj Object) (*ast.BlockStatement, error) {
	kind := ast.BlockStatementKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	block := &ast.BlockStatement{NodeValue: nv}
	stmts, err := fieldArray(obj, kind, "statements", false)
	if err != nil {
		return nil, err
	}
	for i, s := range stmts {
		stmt, err := decodeStatement(s)
		if err != nil {
			return nil, errors.Wrapf(err, "statements[%d]", i)
		}
		block.Statements = append(block.Statements, stmt)
	}
	return block, nil
}

func decodeVariableDeclaration(obj Object) (*ast.VariableDeclaration, error) {
	kind := ast.VariableDeclarationKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	decl := &ast.VariableDeclaration{NodeValue: nv}
	if decl.Keyword, err = fieldString(obj, kind, "keyword", false); err != nil {
		return nil, err
	}
	switch decl.Keyword {
	case "":
		decl.Keyword = ast.ValKeyword
	case ast.ValKeyword, ast.VarKeyword:
	default:
		return nil, errors.Errorf("%v keyword must be '%v' or '%v'; got '%v'",
			kind, ast.ValKeyword, ast.VarKeyword, decl.Keyword)
	}
	if decl.Name, err = decodeIdentifier(obj, kind, "name", true); err != nil {
		return nil, err
	}
	if decl.Type, err = decodeTypeClause(obj, kind, "type", false); err != nil {
		return nil, err
	}
	if decl.Initializer, err = fieldExpression(obj, kind, "initializer", true); err != nil {
		return nil, err
	}
	return decl, nil
}

func decodeUseStatement(obj Object) (*ast.UseStatement, error) {
	kind := ast.UseStatementKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	use := &ast.UseStatement{NodeValue: nv}
	path, err := fieldArray(obj, kind, "path", true)
	if err != nil {
		return nil, err
	}
	for i := range path {
		seg, err := decodeIdentifier(Object{"seg": path[i]}, kind, "seg", true)
		if err != nil {
			return nil, errors.Wrapf(err, "path[%d]", i)
		}
		use.Path = append(use.Path, seg)
	}
	if len(use.Path) == 0 {
		return nil, errors.Errorf("%v path must not be empty", kind)
	}
	if use.Include, err = fieldBool(obj, kind, "include"); err != nil {
		return nil, err
	}
	return use, nil
}

func decodeElseClause(obj Object, ty ast.NodeKind) (*ast.ElseClause, error) {
	e, err := fieldObject(obj, ty, "else", false)
	if err != nil || e == nil {
		return nil, err
	}
	nv, err := nodeValue(e, ast.ElseClauseKind)
	if err != nil {
		return nil, err
	}
	clause := &ast.ElseClause{NodeValue: nv}
	if clause.Statement, err = fieldStatement(e, ast.ElseClauseKind, "statement", true); err != nil {
		return nil, err
	}
	return clause, nil
}

func decodeIfStatement(obj Object) (*ast.IfStatement, error) {
	kind := ast.IfStatementKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStatement{NodeValue: nv}
	if stmt.Condition, err = fieldExpression(obj, kind, "condition", true); err != nil {
		return nil, err
	}
	if stmt.Then, err = fieldBlock(obj, kind, "then", true); err != nil {
		return nil, err
	}
	if stmt.Else, err = decodeElseClause(obj, kind); err != nil {
		return nil, err
	}
	return stmt, nil
}

func decodeWhileStatement(obj Object) (*ast.WhileStatement, error) {
	kind := ast.WhileStatementKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	stmt := &ast.WhileStatement{NodeValue: nv}
	if stmt.Condition, err = fieldExpression(obj, kind, "condition", true); err != nil {
		return nil, err
	}
	if stmt.Body, err = fieldBlock(obj, kind, "body", true); err != nil {
		return nil, err
	}
	return stmt, nil
}

func decodeForStatement(obj Object) (*ast.ForStatement, error) {
	kind := ast.ForStatementKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	stmt := &ast.ForStatement{NodeValue: nv}
	if stmt.Variable, err = decodeIdentifier(obj, kind, "variable", true); err != nil {
		return nil, err
	}
	if stmt.Lower, err = fieldExpression(obj, kind, "lower", true); err != nil {
		return nil, err
	}
	if stmt.Upper, err = fieldExpression(obj, kind, "upper", true); err != nil {
		return nil, err
	}
	if stmt.Body, err = fieldBlock(obj, kind, "body", true); err != nil {
		return nil, err
	}
	return stmt, nil
}

func decodeReturnStatement(obj Object) (*ast.ReturnStatement, error) {
	kind := ast.ReturnStatementKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	stmt := &ast.ReturnStatement{NodeValue: nv}
	if stmt.Expression, err = fieldExpression(obj, kind, "expression", false); err != nil {
		return nil, err
	}
	return stmt, nil
}

func decodeExpressionStatement(obj Object) (*ast.ExpressionStatement, error) {
	kind := ast.ExpressionStatementKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	stmt := &ast.ExpressionStatement{NodeValue: nv}
	if stmt.Expression, err = fieldExpression(obj, kind, "expression", true); err != nil {
		return nil, err
	}
	return stmt, nil
}
