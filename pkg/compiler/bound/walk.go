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

package bound

import (
	"github.com/golang/glog"

	"github.com/pulumi/lumi/pkg/util/contract"
)

// Visitor is a pluggable interface invoked during walks of a bound tree.
type Visitor interface {
	// Visit visits the given node.  If it returns nil, the children of the node are skipped.
	Visit(node Node) Visitor
	// After is invoked after visitation of a given node.
	After(node Node)
}

// Walk visits a bound node and all of its children in depth-first, evaluation order.
func Walk(v Visitor, node Node) {
	contract.Requiref(node != nil, "node", "!= nil")
	if glog.V(9) {
		glog.V(9).Infof("Bound tree walk: pre-visit %v", node.Kind())
	}

	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	// Statements
	case *BlockStatement:
		for _, s := range n.Statements {
			Walk(v, s)
		}
	case *ExpressionStatement:
		Walk(v, n.Expression)
	case *VariableDeclaration:
		if n.Initializer != nil {
			Walk(v, n.Initializer)
		}
	case *IfStatement:
		Walk(v, n.Condition)
		Walk(v, n.Then)
		if n.Else != nil {
			Walk(v, n.Else)
		}
	case *WhileStatement:
		Walk(v, n.Condition)
		Walk(v, n.Body)
	case *ForStatement:
		Walk(v, n.Lower)
		Walk(v, n.Upper)
		Walk(v, n.Body)
	case *ConditionalGotoStatement:
		Walk(v, n.Condition)
	case *ReturnStatement:
		if n.Expression != nil {
			Walk(v, n.Expression)
		}
	case *LabelStatement, *GotoStatement, *NopStatement:
		// No children.

	// Expressions
	case *UnaryExpression:
		Walk(v, n.Operand)
	case *BinaryExpression:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *AssignmentExpression:
		Walk(v, n.Target)
		Walk(v, n.Value)
	case *CallExpression:
		for _, arg := range n.Arguments {
			Walk(v, arg)
		}
	case *CastExpression:
		Walk(v, n.Expression)
	case *StructFieldAccess:
		Walk(v, n.Struct)
	case *BlockExpression:
		for _, s := range n.Statements {
			Walk(v, s)
		}
	case *IfExpression:
		Walk(v, n.Condition)
		Walk(v, n.Then)
		Walk(v, n.Else)
	case *PointerAccess:
		Walk(v, n.Pointer)
		Walk(v, n.Index)
	case *StructInitialization:
		for _, f := range n.Fields {
			if f != nil {
				Walk(v, f)
			}
		}
	case *PointerArrayInitialization:
		for _, e := range n.Elements {
			Walk(v, e)
		}
		if n.Length != nil {
			Walk(v, n.Length)
		}
	case *LiteralExpression, *VariableExpression, *ReferenceExpression, *NamespaceFieldAccess, *ErrorExpression:
		// No children.

	default:
		contract.Failf("Unrecognized bound node kind: %v", node.Kind())
	}

	v.After(node)
}

// Visitation is a Visitor that calls a function before visiting children; returning false skips them.
type Visitation func(Node) bool

func (f Visitation) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

func (f Visitation) After(node Node) {}

// Inspect calls f for node and every node beneath it, skipping the children of nodes for which f returns false.
func Inspect(node Node, f func(Node) bool) {
	Walk(Visitation(f), node)
}
