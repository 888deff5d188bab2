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

// Expression is a statement that yields a value.
type Expression interface {
	Node
	expression()
}

// LiteralExpression is a constant.  Value holds an int64, float64, bool or string; Type optionally names the exact
// primitive type (for instance "I32" or "Float") when the literal was written with a suffix.
type LiteralExpression struct {
	NodeValue
	Value interface{} `json:"value"`
	Type  string      `json:"type,omitempty"`
}

var _ Node = (*LiteralExpression)(nil)
var _ Expression = (*LiteralExpression)(nil)

const LiteralExpressionKind NodeKind = "LiteralExpression"

func (node *LiteralExpression) expression() {}

// NameExpression refers to a symbol by name.
type NameExpression struct {
	NodeValue
	Name *Identifier `json:"name"`
}

var _ Node = (*NameExpression)(nil)
var _ Expression = (*NameExpression)(nil)

const NameExpressionKind NodeKind = "NameExpression"

func (node *NameExpression) expression() {}

// ParenthesizedExpression is `( e )`.
type ParenthesizedExpression struct {
	NodeValue
	Expression Expression `json:"expression"`
}

var _ Node = (*ParenthesizedExpression)(nil)
var _ Expression = (*ParenthesizedExpression)(nil)

const ParenthesizedExpressionKind NodeKind = "ParenthesizedExpression"

func (node *ParenthesizedExpression) expression() {}

// UnaryExpression applies a prefix operator.
type UnaryExpression struct {
	NodeValue
	Operator *Token     `json:"operator"`
	Operand  Expression `json:"operand"`
}

var _ Node = (*UnaryExpression)(nil)
var _ Expression = (*UnaryExpression)(nil)

const UnaryExpressionKind NodeKind = "UnaryExpression"

func (node *UnaryExpression) expression() {}

// DotOperator is the binary operator used for namespace and field access.
const DotOperator = "."

// BinaryExpression applies an infix operator.  The "." operator denotes dot access rather than arithmetic.
type BinaryExpression struct {
	NodeValue
	Left     Expression `json:"left"`
	Operator *Token     `json:"operator"`
	Right    Expression `json:"right"`
}

var _ Node = (*BinaryExpression)(nil)
var _ Expression = (*BinaryExpression)(nil)

const BinaryExpressionKind NodeKind = "BinaryExpression"

func (node *BinaryExpression) expression() {}

// IsDot is true if this is a dot access rather than an operator application.
func (node *BinaryExpression) IsDot() bool { return node.Operator.Text == DotOperator }

// AssignmentExpression stores a value into a variable, a struct field or a pointer element.
type AssignmentExpression struct {
	NodeValue
	Target Expression `json:"target"`
	Equals *Token     `json:"equals"`
	Value  Expression `json:"value"`
}

var _ Node = (*AssignmentExpression)(nil)
var _ Expression = (*AssignmentExpression)(nil)

const AssignmentExpressionKind NodeKind = "AssignmentExpression"

func (node *AssignmentExpression) expression() {}

// CallExpression calls a function, or converts a value when the callee names a type.
type CallExpression struct {
	NodeValue
	Function     Expression   `json:"function"`
	Arguments    []Expression `json:"arguments,omitempty"`
	Separators   []*Token     `json:"separators,omitempty"` // the commas between arguments.
	RightBracket *Token       `json:"rightBracket"`
}

var _ Node = (*CallExpression)(nil)
var _ Expression = (*CallExpression)(nil)

const CallExpressionKind NodeKind = "CallExpression"

func (node *CallExpression) expression() {}

// IfExpression is a conditional used for its value: `val x = if c { 1 } else { 2 }`.  The value of each branch is its
// trailing expression statement.
type IfExpression struct {
	NodeValue
	Condition Expression      `json:"condition"`
	Then      *BlockStatement `json:"then"`
	Else      *ElseClause     `json:"else,omitempty"`
}

var _ Node = (*IfExpression)(nil)
var _ Expression = (*IfExpression)(nil)

const IfExpressionKind NodeKind = "IfExpression"

func (node *IfExpression) expression() {}

// IndexExpression reads an element of a pointer array: `p[i]`.
type IndexExpression struct {
	NodeValue
	Target Expression `json:"target"`
	Index  Expression `json:"index"`
}

var _ Node = (*IndexExpression)(nil)
var _ Expression = (*IndexExpression)(nil)

const IndexExpressionKind NodeKind = "IndexExpression"

func (node *IndexExpression) expression() {}

// ReferenceExpression takes the address of a variable: `&x`.
type ReferenceExpression struct {
	NodeValue
	Name *Identifier `json:"name"`
}

var _ Node = (*ReferenceExpression)(nil)
var _ Expression = (*ReferenceExpression)(nil)

const ReferenceExpressionKind NodeKind = "ReferenceExpression"

func (node *ReferenceExpression) expression() {}

// FieldInitializer is one `name: value` pair of a struct initialization.
type FieldInitializer struct {
	NodeValue
	Name  *Identifier `json:"name"`
	Value Expression  `json:"value"`
}

var _ Node = (*FieldInitializer)(nil)

const FieldInitializerKind NodeKind = "FieldInitializer"

// StructInitialization allocates a struct value: `Point { x: 1, y: 2 }`.
type StructInitialization struct {
	NodeValue
	Type   *TypeClause         `json:"type"`
	Fields []*FieldInitializer `json:"fields,omitempty"`
}

var _ Node = (*StructInitialization)(nil)
var _ Expression = (*StructInitialization)(nil)

const StructInitializationKind NodeKind = "StructInitialization"

func (node *StructInitialization) expression() {}

// PointerArrayInitialization allocates an array behind a pointer, either from elements (`Ptr[Int] { 1, 2 }`) or with
// a length (`Ptr[Int](n)`).
type PointerArrayInitialization struct {
	NodeValue
	Type     *TypeClause  `json:"type"`
	Elements []Expression `json:"elements,omitempty"`
	Length   Expression   `json:"length,omitempty"`
}

var _ Node = (*PointerArrayInitialization)(nil)
var _ Expression = (*PointerArrayInitialization)(nil)

const PointerArrayInitializationKind NodeKind = "PointerArrayInitialization"

func (node *PointerArrayInitialization) expression() {}
