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

package ast

import (
	"reflect"

	"github.com/golang/glog"

	"github.com/pulumi/lumi/pkg/util/contract"
)

// Visitor is a pluggable interface invoked during walks of an AST.
type Visitor interface {
	// Visit visits the given AST node.  If it returns nil, the calling code will stop visiting immediately after the
	// call to Visit returns.  If it returns a non-nil Visitor, the calling code will continue visiting.
	Visit(node Node) Visitor

	// After is invoked after visitation of a given node.
	After(node Node)
}

// Walk visits an AST node and all of its children.  It walks the AST in depth-first order.  A pre- and/or
// post-visitation Visitor object may be supplied in order to hook into this walk at the right moments.
func Walk(v Visitor, node Node) {
	contract.Requiref(node != nil, "node", "!= nil")

	if glog.V(9) {
		glog.V(9).Infof("AST visitor walk: pre-visit %v", reflect.TypeOf(node))
	}

	// First visit the node; only proceed if the visitor says to do so (and use its returned visitor below).
	if v = v.Visit(node); v == nil {
		return
	}

	// Switch on the node type and walk any children in source order.
	switch n := node.(type) {
	// Nodes
	case *Identifier, *Token:
		// No children, nothing to do.
	case *TypeClause:
		Walk(v, n.Name)
		if n.Param != nil {
			Walk(v, n.Param)
		}
	case *SyntaxTree:
		for _, member := range n.Members {
			Walk(v, member)
		}

	// Members
	case *FunctionDeclaration:
		for _, annotation := range n.Annotations {
			Walk(v, annotation)
		}
		Walk(v, n.Name)
		for _, param := range n.Params {
			Walk(v, param)
		}
		if n.ReturnType != nil {
			Walk(v, n.ReturnType)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}
		if n.Lambda != nil {
			Walk(v, n.Lambda)
		}
	case *Annotation:
		Walk(v, n.Name)
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *Parameter:
		Walk(v, n.Name)
		Walk(v, n.Type)
	case *StructDeclaration:
		Walk(v, n.Name)
		for _, field := range n.Fields {
			Walk(v, field)
		}
	case *StructField:
		Walk(v, n.Name)
		Walk(v, n.Type)
	case *ReplStatement:
		Walk(v, n.Statement)

	// Statements
	case *BlockStatement:
		for _, stmt := range n.Statements {
			Walk(v, stmt)
		}
	case *ExpressionStatement:
		Walk(v, n.Expression)
	case *VariableDeclaration:
		Walk(v, n.Name)
		if n.Type != nil {
			Walk(v, n.Type)
		}
		Walk(v, n.Initializer)
	case *UseStatement:
		for _, seg := range n.Path {
			Walk(v, seg)
		}
	case *IfStatement:
		Walk(v, n.Condition)
		Walk(v, n.Then)
		if n.Else != nil {
			Walk(v, n.Else)
		}
	case *ElseClause:
		Walk(v, n.Statement)
	case *WhileStatement:
		Walk(v, n.Condition)
		Walk(v, n.Body)
	case *ForStatement:
		Walk(v, n.Variable)
		Walk(v, n.Lower)
		Walk(v, n.Upper)
		Walk(v, n.Body)
	case *ReturnStatement:
		if n.Expression != nil {
			Walk(v, n.Expression)
		}
	case *BreakStatement, *ContinueStatement:
		// No children, nothing to do.

	// Expressions
	case *LiteralExpression:
		// No children, nothing to do.
	case *NameExpression:
		Walk(v, n.Name)
	case *ParenthesizedExpression:
		Walk(v, n.Expression)
	case *UnaryExpression:
		Walk(v, n.Operator)
		Walk(v, n.Operand)
	case *BinaryExpression:
		Walk(v, n.Left)
		Walk(v, n.Operator)
		Walk(v, n.Right)
	case *AssignmentExpression:
		Walk(v, n.Target)
		Walk(v, n.Value)
	case *CallExpression:
		Walk(v, n.Function)
		for _, arg := range n.Arguments {
			Walk(v, arg)
		}
	case *IfExpression:
		Walk(v, n.Condition)
		Walk(v, n.Then)
		if n.Else != nil {
			Walk(v, n.Else)
		}
	case *IndexExpression:
		Walk(v, n.Target)
		Walk(v, n.Index)
	case *ReferenceExpression:
		Walk(v, n.Name)
	case *StructInitialization:
		Walk(v, n.Type)
		for _, field := range n.Fields {
			Walk(v, field)
		}
	case *FieldInitializer:
		Walk(v, n.Name)
		Walk(v, n.Value)
	case *PointerArrayInitialization:
		Walk(v, n.Type)
		for _, elem := range n.Elements {
			Walk(v, elem)
		}
		if n.Length != nil {
			Walk(v, n.Length)
		}

	default:
		contract.Failf("Unrecognized AST node during walk: %v", n.GetKind())
	}

	// Finally let the visitor know that we are done processing this node.
	v.After(node)
	if glog.V(9) {
		glog.V(9).Infof("AST visitor walk: post-after %v", reflect.TypeOf(node))
	}
}

// Inspector is an anonymous visitation struct that implements the Visitor interface.
type Inspector struct {
	V Visitator
	A Afterator
}

func (v Inspector) Visit(node Node) Visitor {
	if v.V != nil {
		if !v.V(node) {
			return nil
		}
	}
	return v
}

func (v Inspector) After(node Node) {
	if v.A != nil {
		v.A(node)
	}
}

// Visitator is a very simple Visitor implementation; it simply returns true to continue visitation, or false to stop.
type Visitator func(Node) bool

func (v Visitator) Visit(node Node) Visitor {
	if v(node) {
		return v
	}
	return nil
}

func (v Visitator) After(node Node) {
	// nothing to do.
}

// Afterator is a very simple Visitor implementation; it simply runs after visitation has occurred on nodes.
type Afterator func(Node)

func (a Afterator) Visit(node Node) Visitor {
	// nothing to do.
	return a
}

func (a Afterator) After(node Node) {
	a(node)
}

// AttachFile stamps the tree's file name onto every location that doesn't carry one.
func AttachFile(tree *SyntaxTree) {
	if tree.File == "" {
		return
	}
	file := tree.File
	Walk(Visitator(func(n Node) bool {
		if loc := n.GetLoc(); loc != nil && loc.File == nil {
			loc.File = &file
		}
		return true
	}), tree)
	for _, d := range tree.Diagnostics {
		if d.Loc != nil && d.Loc.File == nil {
			d.Loc.File = &file
		}
	}
}
