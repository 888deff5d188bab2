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
	"github.com/pulumi/lumi/pkg/compiler/symbols"
)

// BlockStatement is a sequence of statements.
type BlockStatement struct {
	Statements []Statement
}

var _ Statement = (*BlockStatement)(nil)

const BlockStatementKind NodeKind = "BlockStatement"

func (node *BlockStatement) bnd()           {}
func (node *BlockStatement) statement()     {}
func (node *BlockStatement) Kind() NodeKind { return BlockStatementKind }

// ExpressionStatement evaluates an expression and discards its value.
type ExpressionStatement struct {
	Expression Expression
}

var _ Statement = (*ExpressionStatement)(nil)

const ExpressionStatementKind NodeKind = "ExpressionStatement"

func (node *ExpressionStatement) bnd()           {}
func (node *ExpressionStatement) statement()     {}
func (node *ExpressionStatement) Kind() NodeKind { return ExpressionStatementKind }

// VariableDeclaration declares a variable and initializes it.
type VariableDeclaration struct {
	Variable    *symbols.Variable
	Initializer Expression // nil to start out with the type's zero value.
}

var _ Statement = (*VariableDeclaration)(nil)

const VariableDeclarationKind NodeKind = "VariableDeclaration"

func (node *VariableDeclaration) bnd()           {}
func (node *VariableDeclaration) statement()     {}
func (node *VariableDeclaration) Kind() NodeKind { return VariableDeclarationKind }

// IfStatement runs Then if the condition holds and Else, if any, otherwise.
type IfStatement struct {
	Condition Expression
	Then      Statement
	Else      Statement // may be nil.
}

var _ Statement = (*IfStatement)(nil)

const IfStatementKind NodeKind = "IfStatement"

func (node *IfStatement) bnd()           {}
func (node *IfStatement) statement()     {}
func (node *IfStatement) Kind() NodeKind { return IfStatementKind }

// WhileStatement loops while its condition holds.  The labels are the targets of break and continue statements
// inside of the body.
type WhileStatement struct {
	Condition Expression
	Body      Statement
	Break     *Label
	Continue  *Label
}

var _ Statement = (*WhileStatement)(nil)

const WhileStatementKind NodeKind = "WhileStatement"

func (node *WhileStatement) bnd()           {}
func (node *WhileStatement) statement()     {}
func (node *WhileStatement) Kind() NodeKind { return WhileStatementKind }

// ForStatement loops over the inclusive range Lower..Upper.
type ForStatement struct {
	Variable *symbols.Variable
	Lower    Expression
	Upper    Expression
	Body     Statement
	Break    *Label
	Continue *Label
}

var _ Statement = (*ForStatement)(nil)

const ForStatementKind NodeKind = "ForStatement"

func (node *ForStatement) bnd()           {}
func (node *ForStatement) statement()     {}
func (node *ForStatement) Kind() NodeKind { return ForStatementKind }

// LabelStatement marks a jump target.
type LabelStatement struct {
	Label *Label
}

var _ Statement = (*LabelStatement)(nil)

const LabelStatementKind NodeKind = "LabelStatement"

func (node *LabelStatement) bnd()           {}
func (node *LabelStatement) statement()     {}
func (node *LabelStatement) Kind() NodeKind { return LabelStatementKind }

// GotoStatement jumps unconditionally.
type GotoStatement struct {
	Label *Label
}

var _ Statement = (*GotoStatement)(nil)

const GotoStatementKind NodeKind = "GotoStatement"

func (node *GotoStatement) bnd()           {}
func (node *GotoStatement) statement()     {}
func (node *GotoStatement) Kind() NodeKind { return GotoStatementKind }

// ConditionalGotoStatement jumps if the condition equals JumpIfTrue, and falls through otherwise.
type ConditionalGotoStatement struct {
	Label      *Label
	Condition  Expression
	JumpIfTrue bool
}

var _ Statement = (*ConditionalGotoStatement)(nil)

const ConditionalGotoStatementKind NodeKind = "ConditionalGotoStatement"

func (node *ConditionalGotoStatement) bnd()           {}
func (node *ConditionalGotoStatement) statement()     {}
func (node *ConditionalGotoStatement) Kind() NodeKind { return ConditionalGotoStatementKind }

// ReturnStatement leaves the function, with a value unless the function returns Unit.
type ReturnStatement struct {
	Expression Expression // may be nil.
}

var _ Statement = (*ReturnStatement)(nil)

const ReturnStatementKind NodeKind = "ReturnStatement"

func (node *ReturnStatement) bnd()           {}
func (node *ReturnStatement) statement()     {}
func (node *ReturnStatement) Kind() NodeKind { return ReturnStatementKind }

// NopStatement does nothing.  It stands in for statements that were removed or couldn't be bound.
type NopStatement struct{}

var _ Statement = (*NopStatement)(nil)

const NopStatementKind NodeKind = "NopStatement"

func (node *NopStatement) bnd()           {}
func (node *NopStatement) statement()     {}
func (node *NopStatement) Kind() NodeKind { return NopStatementKind }

// IsJump is true for the statements that end a basic block.
func IsJump(s Statement) bool {
	switch s.(type) {
	case *GotoStatement, *ConditionalGotoStatement, *ReturnStatement:
		return true
	}
	return false
}
