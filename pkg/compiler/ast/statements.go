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

// Statement is an element inside of an executable function body.
type Statement interface {
	Node
	statement()
}

// BlockStatement is a grouping of statements that enjoy their own lexical scope.
type BlockStatement struct {
	NodeValue
	Statements []Statement `json:"statements"`
}

var _ Node = (*BlockStatement)(nil)
var _ Statement = (*BlockStatement)(nil)

const BlockStatementKind NodeKind = "BlockStatement"

func (node *BlockStatement) statement() {}

// ExpressionStatement evaluates an expression for its side-effects.
type ExpressionStatement struct {
	NodeValue
	Expression Expression `json:"expression"`
}

var _ Node = (*ExpressionStatement)(nil)
var _ Statement = (*ExpressionStatement)(nil)

const ExpressionStatementKind NodeKind = "ExpressionStatement"

func (node *ExpressionStatement) statement() {}

// Variable declaration keywords.
const (
	ValKeyword = "val"
	VarKeyword = "var"
)

// VariableDeclaration declares a variable, either at the top-level of a namespace or locally.
type VariableDeclaration struct {
	NodeValue
	Keyword     string      `json:"keyword"` // "val" (read-only) or "var".
	Name        *Identifier `json:"name"`
	Type        *TypeClause `json:"type,omitempty"`
	Initializer Expression  `json:"initializer"`
}

var _ Node = (*VariableDeclaration)(nil)
var _ Member = (*VariableDeclaration)(nil)
var _ Statement = (*VariableDeclaration)(nil)

const VariableDeclarationKind NodeKind = "VariableDeclaration"

func (node *VariableDeclaration) member()    {}
func (node *VariableDeclaration) statement() {}

func (node *VariableDeclaration) IsReadOnly() bool { return node.Keyword == ValKeyword }

// UseStatement makes a namespace, or with Include all of its members, visible in the current scope.
type UseStatement struct {
	NodeValue
	Path    []*Identifier `json:"path"`
	Include bool          `json:"include,omitempty"` // `use a.b*`
}

var _ Node = (*UseStatement)(nil)
var _ Member = (*UseStatement)(nil)
var _ Statement = (*UseStatement)(nil)

const UseStatementKind NodeKind = "UseStatement"

func (node *UseStatement) member()    {}
func (node *UseStatement) statement() {}

// Dotted joins the path segments.
func (node *UseStatement) Dotted() string {
	s := ""
	for i, seg := range node.Path {
		if i > 0 {
			s += "."
		}
		s += seg.Ident
	}
	return s
}

// IfStatement is a conditional.  Used as an expression it is an IfExpression instead.
type IfStatement struct {
	NodeValue
	Condition Expression      `json:"condition"`
	Then      *BlockStatement `json:"then"`
	Else      *ElseClause     `json:"else,omitempty"`
}

var _ Node = (*IfStatement)(nil)
var _ Statement = (*IfStatement)(nil)

const IfStatementKind NodeKind = "IfStatement"

func (node *IfStatement) statement() {}

// ElseClause is the `else ...` part of a conditional; its location starts at the keyword.
type ElseClause struct {
	NodeValue
	Statement Statement `json:"statement"` // a block, or another if for `else if`.
}

var _ Node = (*ElseClause)(nil)

const ElseClauseKind NodeKind = "ElseClause"

// WhileStatement loops while its condition holds.
type WhileStatement struct {
	NodeValue
	Condition Expression      `json:"condition"`
	Body      *BlockStatement `json:"body"`
}

var _ Node = (*WhileStatement)(nil)
var _ Statement = (*WhileStatement)(nil)

const WhileStatementKind NodeKind = "WhileStatement"

func (node *WhileStatement) statement() {}

// ForStatement loops over an inclusive integer range: `for i in lo..hi {}`.
type ForStatement struct {
	NodeValue
	Variable *Identifier     `json:"variable"`
	Lower    Expression      `json:"lower"`
	Upper    Expression      `json:"upper"`
	Body     *BlockStatement `json:"body"`
}

var _ Node = (*ForStatement)(nil)
var _ Statement = (*ForStatement)(nil)

const ForStatementKind NodeKind = "ForStatement"

func (node *ForStatement) statement() {}

// BreakStatement leaves the innermost loop.
type BreakStatement struct {
	NodeValue
}

var _ Node = (*BreakStatement)(nil)
var _ Statement = (*BreakStatement)(nil)

const BreakStatementKind NodeKind = "BreakStatement"

func (node *BreakStatement) statement() {}

// ContinueStatement jumps to the next iteration of the innermost loop.
type ContinueStatement struct {
	NodeValue
}

var _ Node = (*ContinueStatement)(nil)
var _ Statement = (*ContinueStatement)(nil)

const ContinueStatementKind NodeKind = "ContinueStatement"

func (node *ContinueStatement) statement() {}

// ReturnStatement leaves the current function, optionally with a value.
type ReturnStatement struct {
	NodeValue
	Expression Expression `json:"expression,omitempty"`
}

var _ Node = (*ReturnStatement)(nil)
var _ Statement = (*ReturnStatement)(nil)

const ReturnStatementKind NodeKind = "ReturnStatement"

func (node *ReturnStatement) statement() {}
