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

// Package bound contains the bound tree: the syntax tree after names have been resolved to symbols and every
// expression has been given a type.  The binder produces it, the lowerer rewrites it into a flat list of statements
// and jumps, and both the emitter and the evaluator consume that lowered form.
//
// The node families are closed: Statement and Expression can only be implemented inside this package, and every
// consumer dispatches with a type switch whose default case fails, so that a new node kind can't slip through
// unnoticed.
package bound

import (
	"github.com/pulumi/lumi/pkg/compiler/symbols"
)

// Node is the base interface of all bound tree nodes.
type Node interface {
	bnd()
	Kind() NodeKind // the node kind.
}

// NodeKind is a type discriminator, indicating what sort of kind a node instance represents.
type NodeKind string

// Statement is a bound statement.
type Statement interface {
	Node
	statement()
}

// Expression is a bound expression.  Every expression has a resolved type; error expressions, and expressions
// consuming them, have the error type.
type Expression interface {
	Node
	expression()
	Type() symbols.Type
}
