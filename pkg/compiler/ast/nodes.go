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

// Package ast contains the syntax tree produced by the Lumi parser.  The parser itself lives outside of this
// repository; it hands trees over in a serialized form that package encoding turns back into these nodes.
//
// All nodes are discriminated by a kind and carry an optional source location, which is what diagnostics attach to.
package ast

import (
	"github.com/pulumi/lumi/pkg/diag"
)

// Node is a discriminated type for all serialized blocks and instructions.
type Node interface {
	nd()
	GetKind() NodeKind                       // the node kind.
	GetLoc() *Location                       // an optional location associated with this node.
	Where() (*diag.Document, *diag.Location) // source location information for this node.
}

var _ diag.Diagable = (Node)(nil)

// NodeKind is a type discriminator, indicating what sort of kind a node instance represents.  Note that RTTI frequently
// takes its place, however (a) the kind is part of the serialized form, and (b) can be useful for debugging.
type NodeKind string

// NodeValue is embedded by every concrete node.
type NodeValue struct {
	Kind NodeKind  `json:"kind"`
	Loc  *Location `json:"loc,omitempty"`
}

var _ diag.Diagable = (*NodeValue)(nil)

func (node *NodeValue) nd()               {}
func (node *NodeValue) GetKind() NodeKind { return node.Kind }
func (node *NodeValue) GetLoc() *Location { return node.Loc }

func (node *NodeValue) Where() (*diag.Document, *diag.Location) {
	return Where(node.Loc)
}

// Where converts a syntax location into its diagnostics counterpart.
func Where(loc *Location) (*diag.Document, *diag.Location) {
	if loc == nil {
		return nil, nil
	}
	var doc *diag.Document
	if loc.File != nil {
		doc = diag.NewDocument(*loc.File)
	}
	var end *diag.Pos
	if loc.End != nil {
		end = &diag.Pos{Line: int(loc.End.Line), Column: int(loc.End.Column), Offset: int(loc.End.Offset)}
	}
	return doc, &diag.Location{
		Start: diag.Pos{Line: int(loc.Start.Line), Column: int(loc.Start.Column), Offset: int(loc.Start.Offset)},
		End:   end,
	}
}

// Span is a bare location that can be handed to diagnostics, e.g. for a range covering several nodes.
type Span struct {
	Loc *Location
}

func (s Span) Where() (*diag.Document, *diag.Location) { return Where(s.Loc) }

// Identifier represents a simple string token associated with its source location context.
type Identifier struct {
	NodeValue
	Ident string `json:"ident"` // a valid identifier: (letter | "_") (letter | digit | "_")*
}

var _ Node = (*Identifier)(nil)

const IdentifierKind NodeKind = "Identifier"

// Token is a piece of punctuation or a keyword whose location matters to diagnostics (operators, brackets, etc).
type Token struct {
	NodeValue
	Text string `json:"text"`
}

var _ Node = (*Token)(nil)

const TokenKind NodeKind = "Token"

// TypeClause names a type, e.g. `Int` or `Ptr[Int]`.
type TypeClause struct {
	NodeValue
	Name  *Identifier `json:"name"`
	Param *TypeClause `json:"param,omitempty"` // the element type of a generic type such as Ptr.
}

var _ Node = (*TypeClause)(nil)

const TypeClauseKind NodeKind = "TypeClause"

// String renders the clause the way it was written.
func (t *TypeClause) String() string {
	if t.Param == nil {
		return t.Name.Ident
	}
	return t.Name.Ident + "[" + t.Param.String() + "]"
}

// Diagnostic is a message produced by the parser, passed through to the compiler's diagnostics untouched.
type Diagnostic struct {
	Severity string    `json:"severity"` // "error", "warning" or "style".
	Message  string    `json:"message"`
	Loc      *Location `json:"loc,omitempty"`
}

func (d *Diagnostic) Where() (*diag.Document, *diag.Location) { return Where(d.Loc) }

// SyntaxTree is the root node of one parsed source file.
type SyntaxTree struct {
	NodeValue
	ProjectPath string        `json:"projectPath"` // the dot-separated namespace the members are declared in.
	File        string        `json:"file,omitempty"`
	Members     []Member      `json:"members"`
	Diagnostics []*Diagnostic `json:"diagnostics,omitempty"`
}

var _ Node = (*SyntaxTree)(nil)

const SyntaxTreeKind NodeKind = "SyntaxTree"
