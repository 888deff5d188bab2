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

// Package encoding unmarshals the serialized syntax trees produced by the Lumi parser.  Because of their polymorphic
// structure, we cannot rely on the standard JSON and YAML unmarshaling routines.  Instead, each polymorphic family
// (members, statements, expressions) is decoded "by hand", switching on the node's kind.
package encoding

import (
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/pulumi/lumi/pkg/compiler/ast"
)

// DecodeSyntaxTree unmarshals the entire contents of the given byte array into a syntax tree.
func DecodeSyntaxTree(m Marshaler, b []byte) (*ast.SyntaxTree, error) {
	// First convert the whole contents into a weakly typed tree.  Although it would be more efficient to walk the
	// token stream, token by token, this allows us to reuse existing YAML packages in addition to JSON ones.
	var raw interface{}
	if err := m.Unmarshal(b, &raw); err != nil {
		return nil, errors.Wrap(err, "unmarshaling syntax tree")
	}
	obj, ok := asObject(raw)
	if !ok {
		return nil, errors.Errorf("a syntax tree must be an object; got %T", raw)
	}

	tree, err := decodeSyntaxTree(obj)
	if err != nil {
		return nil, err
	}
	ast.AttachFile(tree)

	if glog.V(9) {
		glog.V(9).Infof("Decoded syntax tree %v:\n%v", tree.File, spew.Sdump(tree))
	}
	return tree, nil
}

// ReadSyntaxTree reads and decodes a serialized syntax tree from disk, picking the marshaler by file extension.
func ReadSyntaxTree(path string) (*ast.SyntaxTree, error) {
	m, ext := Detect(path)
	if m == nil {
		return nil, errors.Errorf("%v: unrecognized syntax tree extension '%v'", path, ext)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading syntax tree %v", path)
	}
	tree, err := DecodeSyntaxTree(m, b)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding syntax tree %v", path)
	}
	if tree.File == "" {
		tree.File = path
		ast.AttachFile(tree)
	}
	return tree, nil
}

func decodeSyntaxTree(obj Object) (*ast.SyntaxTree, error) {
	kind, err := nodeKind(obj, "SyntaxTree")
	if err != nil {
		return nil, err
	}
	if kind != ast.SyntaxTreeKind {
		return nil, errors.Errorf("expected a %v at the root; got %v", ast.SyntaxTreeKind, kind)
	}
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	tree := &ast.SyntaxTree{NodeValue: nv}
	if tree.ProjectPath, err = fieldString(obj, kind, "projectPath", true); err != nil {
		return nil, err
	}
	if tree.File, err = fieldString(obj, kind, "file", false); err != nil {
		return nil, err
	}

	members, err := fieldArray(obj, kind, "members", false)
	if err != nil {
		return nil, err
	}
	for i, m := range members {
		member, err := decodeMember(m)
		if err != nil {
			return nil, errors.Wrapf(err, "members[%d]", i)
		}
		tree.Members = append(tree.Members, member)
	}

	diags, err := fieldArray(obj, kind, "diagnostics", false)
	if err != nil {
		return nil, err
	}
	for i, d := range diags {
		o, ok := asObject(d)
		if !ok {
			return nil, errors.Errorf("diagnostics[%d] must be an object; got %T", i, d)
		}
		diag := &ast.Diagnostic{}
		if diag.Severity, err = fieldString(o, kind, "severity", false); err != nil {
			return nil, err
		}
		if diag.Severity == "" {
			diag.Severity = "error"
		}
		if diag.Message, err = fieldString(o, kind, "message", true); err != nil {
			return nil, err
		}
		if diag.Loc, err = decodeLocation(o, kind); err != nil {
			return nil, err
		}
		tree.Diagnostics = append(tree.Diagnostics, diag)
	}
	return tree, nil
}

func decodeMember(v interface{}) (ast.Member, error) {
	obj, ok := asObject(v)
	if !ok {
		return nil, errors.Errorf("a member must be an object; got %T", v)
	}
	kind, err := nodeKind(obj, "Member")
	if err != nil {
		return nil, err
	}
	switch kind {
	case ast.FunctionDeclarationKind:
		return decodeFunctionDeclaration(obj)
	case ast.StructDeclarationKind:
		return decodeStructDeclaration(obj)
	case ast.VariableDeclarationKind:
		return decodeVariableDeclaration(obj)
	case ast.UseStatementKind:
		return decodeUseStatement(obj)
	case ast.ReplStatementKind:
		return decodeReplStatement(obj)
	default:
		return nil, errors.Errorf("unrecognized Member kind: %v", kind)
	}
}

func decodeIdentifier(obj Object, ty ast.NodeKind, key string, required bool) (*ast.Identifier, error) {
	v, has := obj[key]
	if !has || v == nil {
		if required {
			return nil, errMissing(ty, key)
		}
		return nil, nil
	}
	// A bare string is accepted as shorthand for a location-less identifier.
	if s, ok := v.(string); ok {
		return &ast.Identifier{NodeValue: ast.NodeValue{Kind: ast.IdentifierKind}, Ident: s}, nil
	}
	o, ok := asObject(v)
	if !ok {
		return nil, errWrongType(ty, key, "an identifier", v)
	}
	nv, err := nodeValue(o, ast.IdentifierKind)
	if err != nil {
		return nil, err
	}
	ident, err := fieldString(o, ast.IdentifierKind, "ident", true)
	if err != nil {
		return nil, err
	}
	return &ast.Identifier{NodeValue: nv, Ident: ident}, nil
}

func decodeToken(obj Object, ty ast.NodeKind, key string, required bool) (*ast.Token, error) {
	v, has := obj[key]
	if !has || v == nil {
		if required {
			return nil, errMissing(ty, key)
		}
		return nil, nil
	}
	if s, ok := v.(string); ok {
		return &ast.Token{NodeValue: ast.NodeValue{Kind: ast.TokenKind}, Text: s}, nil
	}
	o, ok := asObject(v)
	if !ok {
		return nil, errWrongType(ty, key, "a token", v)
	}
	nv, err := nodeValue(o, ast.TokenKind)
	if err != nil {
		return nil, err
	}
	text, err := fieldString(o, ast.TokenKind, "text", false)
	if err != nil {
		return nil, err
	}
	return &ast.Token{NodeValue: nv, Text: text}, nil
}

func decodeTypeClause(obj Object, ty ast.NodeKind, key string, required bool) (*ast.TypeClause, error) {
	v, has := obj[key]
	if !has || v == nil {
		if required {
			return nil, errMissing(ty, key)
		}
		return nil, nil
	}
	if s, ok := v.(string); ok {
		return &ast.TypeClause{
			NodeValue: ast.NodeValue{Kind: ast.TypeClauseKind},
			Name:      &ast.Identifier{NodeValue: ast.NodeValue{Kind: ast.IdentifierKind}, Ident: s},
		}, nil
	}
	o, ok := asObject(v)
	if !ok {
		return nil, errWrongType(ty, key, "a type clause", v)
	}
	nv, err := nodeValue(o, ast.TypeClauseKind)
	if err != nil {
		return nil, err
	}
	clause := &ast.TypeClause{NodeValue: nv}
	if clause.Name, err = decodeIdentifier(o, ast.TypeClauseKind, "name", true); err != nil {
		return nil, err
	}
	if clause.Param, err = decodeTypeClause(o, ast.TypeClauseKind, "param", false); err != nil {
		return nil, err
	}
	return clause, nil
}

func decodeFunctionDeclaration(obj Object) (*ast.FunctionDeclaration, error) {
	kind := ast.FunctionDeclarationKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	fn := &ast.FunctionDeclaration{NodeValue: nv}
	if fn.Name, err = decodeIdentifier(obj, kind, "name", true); err != nil {
		return nil, err
	}
	if fn.ReturnType, err = decodeTypeClause(obj, kind, "returnType", false); err != nil {
		return nil, err
	}

	params, err := fieldArray(obj, kind, "params", false)
	if err != nil {
		return nil, err
	}
	for i, p := range params {
		o, ok := asObject(p)
		if !ok {
			return nil, errors.Errorf("params[%d] must be an object; got %T", i, p)
		}
		pnv, err := nodeValue(o, ast.ParameterKind)
		if err != nil {
			return nil, err
		}
		param := &ast.Parameter{NodeValue: pnv}
		if param.Name, err = decodeIdentifier(o, ast.ParameterKind, "name", true); err != nil {
			return nil, err
		}
		if param.Type, err = decodeTypeClause(o, ast.ParameterKind, "type", true); err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, param)
	}

	annotations, err := fieldArray(obj, kind, "annotations", false)
	if err != nil {
		return nil, err
	}
	for i, a := range annotations {
		o, ok := asObject(a)
		if !ok {
			return nil, errors.Errorf("annotations[%d] must be an object; got %T", i, a)
		}
		anv, err := nodeValue(o, ast.AnnotationKind)
		if err != nil {
			return nil, err
		}
		annotation := &ast.Annotation{NodeValue: anv}
		if annotation.Name, err = decodeIdentifier(o, ast.AnnotationKind, "name", true); err != nil {
			return nil, err
		}
		if value, err := fieldExpression(o, ast.AnnotationKind, "value", false); err != nil {
			return nil, err
		} else if value != nil {
			lit, ok := value.(*ast.LiteralExpression)
			if !ok {
				return nil, errors.Errorf("annotation values must be literals; got %v", value.GetKind())
			}
			annotation.Value = lit
		}
		fn.Annotations = append(fn.Annotations, annotation)
	}

	if fn.Body, err = fieldBlock(obj, kind, "body", false); err != nil {
		return nil, err
	}
	if fn.Lambda, err = fieldExpression(obj, kind, "expression", false); err != nil {
		return nil, err
	}
	if fn.Body != nil && fn.Lambda != nil {
		return nil, errors.Errorf("%v '%v' has both a body and an expression", kind, fn.Name.Ident)
	}
	return fn, nil
}

func decodeStructDeclaration(obj Object) (*ast.StructDeclaration, error) {
	kind := ast.StructDeclarationKind
	nv, err := nodeValue(obj, kind)
	if err != nil {
		return nil, err
	}
	decl := &ast.StructDeclaration{NodeValue: nv}
	if decl.Name, err = decodeIdentifier(obj, kind, "name", true); err != nil {
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
		fnv, err := nodeValue(o, ast.StructFieldKind)
		if err != nil {
			return nil, err
		}
		field := &ast.StructField{NodeValue: fnv}
		if field.Name, err = decodeIdentifier(o, ast.StructFieldKind, "name", true); err != nil {
			return nil, err
		}
		if field.Type, err = decodeTypeClause(o, ast.StructFieldKind, "type", true); err != nil {
			return nil, err
		}
		decl.Fields = append(decl.Fields, field)
	}
	return decl, nil
}

func decodeReplStatement(obj Object) (*ast.ReplStatement, error) {
	nv, err := nodeValue(obj, ast.ReplStatementKind)
	if err != nil {
		return nil, err
	}
	repl := &ast.ReplStatement{NodeValue: nv}
	if repl.Statement, err = fieldStatement(obj, ast.ReplStatementKind, "statement", true); err != nil {
		return nil, err
	}
	return repl, nil
}
