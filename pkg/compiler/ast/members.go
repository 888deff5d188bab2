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

// Member is a top-level declaration of a syntax tree.
type Member interface {
	Node
	member()
}

// Annotation decorates a function declaration, e.g. `[entry]` or `[cname("puts")]`.
type Annotation struct {
	NodeValue
	Name  *Identifier        `json:"name"`
	Value *LiteralExpression `json:"value,omitempty"`
}

var _ Node = (*Annotation)(nil)

const AnnotationKind NodeKind = "Annotation"

// Parameter is a single named and typed function parameter.
type Parameter struct {
	NodeValue
	Name *Identifier `json:"name"`
	Type *TypeClause `json:"type"`
}

var _ Node = (*Parameter)(nil)

const ParameterKind NodeKind = "Parameter"

// FunctionDeclaration declares a function.  Exactly one of Body and Lambda is set unless the function is extern.
type FunctionDeclaration struct {
	NodeValue
	Name        *Identifier     `json:"name"`
	Params      []*Parameter    `json:"params,omitempty"`
	ReturnType  *TypeClause     `json:"returnType,omitempty"`
	Annotations []*Annotation   `json:"annotations,omitempty"`
	Body        *BlockStatement `json:"body,omitempty"`
	Lambda      Expression      `json:"expression,omitempty"` // a lambda body: `fn f(): Int -> 42`.
}

var _ Node = (*FunctionDeclaration)(nil)
var _ Member = (*FunctionDeclaration)(nil)
var _ Statement = (*FunctionDeclaration)(nil)

const FunctionDeclarationKind NodeKind = "FunctionDeclaration"

func (node *FunctionDeclaration) member()    {}
func (node *FunctionDeclaration) statement() {}

// IsLambda is true when the function's body is a single expression.
func (node *FunctionDeclaration) IsLambda() bool { return node.Lambda != nil }

// StructField is a single field of a struct declaration.
type StructField struct {
	NodeValue
	Name *Identifier `json:"name"`
	Type *TypeClause `json:"type"`
}

var _ Node = (*StructField)(nil)

const StructFieldKind NodeKind = "StructField"

// StructDeclaration declares a named struct type with ordered fields.
type StructDeclaration struct {
	NodeValue
	Name   *Identifier    `json:"name"`
	Fields []*StructField `json:"fields,omitempty"`
}

var _ Node = (*StructDeclaration)(nil)
var _ Member = (*StructDeclaration)(nil)

const StructDeclarationKind NodeKind = "StructDeclaration"

func (node *StructDeclaration) member() {}

// ReplStatement wraps a statement typed directly at the top-level, as happens in interactive sessions.
type ReplStatement struct {
	NodeValue
	Statement Statement `json:"statement"`
}

var _ Node = (*ReplStatement)(nil)
var _ Member = (*ReplStatement)(nil)

const ReplStatementKind NodeKind = "ReplStatement"

func (node *ReplStatement) member() {}
