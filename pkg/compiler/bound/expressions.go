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
	"github.com/pulumi/lumi/pkg/compiler/types"
)

// LiteralExpression is a constant.  Value holds an int64 for signed integers, a uint64 for unsigned ones, a float64
// for floats, or a bool or string.
type LiteralExpression struct {
	Value interface{}
	Ty    symbols.Type
}

var _ Expression = (*LiteralExpression)(nil)

const LiteralExpressionKind NodeKind = "LiteralExpression"

func (node *LiteralExpression) bnd()               {}
func (node *LiteralExpression) expression()        {}
func (node *LiteralExpression) Kind() NodeKind     { return LiteralExpressionKind }
func (node *LiteralExpression) Type() symbols.Type { return node.Ty }

// NewLiteral creates a literal, normalizing the value to the representation of its type.
func NewLiteral(value interface{}, ty symbols.Type) *LiteralExpression {
	return &LiteralExpression{Value: Normalize(value, ty), Ty: ty}
}

// ZeroValue returns the literal a variable of the given type starts out with, or nil for types without one (structs,
// pointers and Any, whose zero value is the null pointer).
func ZeroValue(ty symbols.Type) *LiteralExpression {
	switch {
	case ty == types.Bool:
		return NewLiteral(false, ty)
	case ty == types.String:
		return NewLiteral("", ty)
	case types.IsNumeric(ty):
		return NewLiteral(int64(0), ty)
	}
	return nil
}

// VariableExpression reads a variable.
type VariableExpression struct {
	Variable *symbols.Variable
}

var _ Expression = (*VariableExpression)(nil)

const VariableExpressionKind NodeKind = "VariableExpression"

func (node *VariableExpression) bnd()               {}
func (node *VariableExpression) expression()        {}
func (node *VariableExpression) Kind() NodeKind     { return VariableExpressionKind }
func (node *VariableExpression) Type() symbols.Type { return node.Variable.Ty }

// UnaryExpression applies a prefix operator.
type UnaryExpression struct {
	Operator *UnaryOperator
	Operand  Expression
}

var _ Expression = (*UnaryExpression)(nil)

const UnaryExpressionKind NodeKind = "UnaryExpression"

func (node *UnaryExpression) bnd()               {}
func (node *UnaryExpression) expression()        {}
func (node *UnaryExpression) Kind() NodeKind     { return UnaryExpressionKind }
func (node *UnaryExpression) Type() symbols.Type { return node.Operator.Result }

// BinaryExpression applies an infix operator.
type BinaryExpression struct {
	Left     Expression
	Operator *BinaryOperator
	Right    Expression
}

var _ Expression = (*BinaryExpression)(nil)

const BinaryExpressionKind NodeKind = "BinaryExpression"

func (node *BinaryExpression) bnd()               {}
func (node *BinaryExpression) expression()        {}
func (node *BinaryExpression) Kind() NodeKind     { return BinaryExpressionKind }
func (node *BinaryExpression) Type() symbols.Type { return node.Operator.Result }

// AssignmentExpression stores a value.  The target is a VariableExpression, a StructFieldAccess or a PointerAccess.
// Assignments have no value themselves.
type AssignmentExpression struct {
	Target Expression
	Value  Expression
}

var _ Expression = (*AssignmentExpression)(nil)

const AssignmentExpressionKind NodeKind = "AssignmentExpression"

func (node *AssignmentExpression) bnd()               {}
func (node *AssignmentExpression) expression()        {}
func (node *AssignmentExpression) Kind() NodeKind     { return AssignmentExpressionKind }
func (node *AssignmentExpression) Type() symbols.Type { return types.Unit }

// CallExpression calls a function.
type CallExpression struct {
	Function  *symbols.Function
	Arguments []Expression
}

var _ Expression = (*CallExpression)(nil)

const CallExpressionKind NodeKind = "CallExpression"

func (node *CallExpression) bnd()               {}
func (node *CallExpression) expression()        {}
func (node *CallExpression) Kind() NodeKind     { return CallExpressionKind }
func (node *CallExpression) Type() symbols.Type { return node.Function.Return }

// CastExpression converts a value to another type.  Identity casts are never bound.
type CastExpression struct {
	Ty         symbols.Type
	Expression Expression
}

var _ Expression = (*CastExpression)(nil)

const CastExpressionKind NodeKind = "CastExpression"

func (node *CastExpression) bnd()               {}
func (node *CastExpression) expression()        {}
func (node *CastExpression) Kind() NodeKind     { return CastExpressionKind }
func (node *CastExpression) Type() symbols.Type { return node.Ty }

// StructFieldAccess reads the field with the given index out of a struct value.
type StructFieldAccess struct {
	Struct Expression
	Field  int
}

var _ Expression = (*StructFieldAccess)(nil)

const StructFieldAccessKind NodeKind = "StructFieldAccess"

func (node *StructFieldAccess) bnd()           {}
func (node *StructFieldAccess) expression()    {}
func (node *StructFieldAccess) Kind() NodeKind { return StructFieldAccessKind }

func (node *StructFieldAccess) Type() symbols.Type {
	return node.StructType().Fields[node.Field].Type
}

// StructType returns the type of the struct being accessed.
func (node *StructFieldAccess) StructType() *symbols.StructType {
	return node.Struct.Type().(*symbols.StructType)
}

// FieldName returns the name of the accessed field.
func (node *StructFieldAccess) FieldName() string {
	return node.StructType().Fields[node.Field].Name
}

// BlockExpression runs statements.  If its type isn't Unit, the final statement is an expression statement whose
// value is the value of the block.
type BlockExpression struct {
	Statements []Statement
	Ty         symbols.Type
}

var _ Expression = (*BlockExpression)(nil)

const BlockExpressionKind NodeKind = "BlockExpression"

func (node *BlockExpression) bnd()               {}
func (node *BlockExpression) expression()        {}
func (node *BlockExpression) Kind() NodeKind     { return BlockExpressionKind }
func (node *BlockExpression) Type() symbols.Type { return node.Ty }

// IfExpression is a conditional that produces a value.  Both branches are required and share its type.
type IfExpression struct {
	Condition Expression
	Then      Expression
	Else      Expression
	Ty        symbols.Type
}

var _ Expression = (*IfExpression)(nil)

const IfExpressionKind NodeKind = "IfExpression"

func (node *IfExpression) bnd()               {}
func (node *IfExpression) expression()        {}
func (node *IfExpression) Kind() NodeKind     { return IfExpressionKind }
func (node *IfExpression) Type() symbols.Type { return node.Ty }

// ReferenceExpression takes the address of a variable.
type ReferenceExpression struct {
	Variable *symbols.Variable
	Ty       *symbols.PointerType
}

var _ Expression = (*ReferenceExpression)(nil)

const ReferenceExpressionKind NodeKind = "ReferenceExpression"

func (node *ReferenceExpression) bnd()               {}
func (node *ReferenceExpression) expression()        {}
func (node *ReferenceExpression) Kind() NodeKind     { return ReferenceExpressionKind }
func (node *ReferenceExpression) Type() symbols.Type { return node.Ty }

// PointerAccess reads the element at an index of a pointer array.
type PointerAccess struct {
	Pointer Expression
	Index   Expression
}

var _ Expression = (*PointerAccess)(nil)

const PointerAccessKind NodeKind = "PointerAccess"

func (node *PointerAccess) bnd()           {}
func (node *PointerAccess) expression()    {}
func (node *PointerAccess) Kind() NodeKind { return PointerAccessKind }

func (node *PointerAccess) Type() symbols.Type {
	return node.Pointer.Type().(*symbols.PointerType).Element
}

// StructInitialization allocates a struct.  Fields holds one initializer per field of the type, in field order; a
// nil entry leaves the field zeroed.
type StructInitialization struct {
	Ty     *symbols.StructType
	Fields []Expression
}

var _ Expression = (*StructInitialization)(nil)

const StructInitializationKind NodeKind = "StructInitialization"

func (node *StructInitialization) bnd()               {}
func (node *StructInitialization) expression()        {}
func (node *StructInitialization) Kind() NodeKind     { return StructInitializationKind }
func (node *StructInitialization) Type() symbols.Type { return node.Ty }

// PointerArrayInitialization allocates an array behind a pointer, either holding the given elements, or Length
// zeroed elements.
type PointerArrayInitialization struct {
	Ty       *symbols.PointerType
	Elements []Expression
	Length   Expression // set only when Elements is empty.
}

var _ Expression = (*PointerArrayInitialization)(nil)

const PointerArrayInitializationKind NodeKind = "PointerArrayInitialization"

func (node *PointerArrayInitialization) bnd()               {}
func (node *PointerArrayInitialization) expression()        {}
func (node *PointerArrayInitialization) Kind() NodeKind     { return PointerArrayInitializationKind }
func (node *PointerArrayInitialization) Type() symbols.Type { return node.Ty }

// NamespaceFieldAccess is a dotted path that named a namespace rather than a value.  It only exists while binding
// the left side of a longer dotted path; the binder never lets one escape into the tree.
type NamespaceFieldAccess struct {
	Path string
}

var _ Expression = (*NamespaceFieldAccess)(nil)

const NamespaceFieldAccessKind NodeKind = "NamespaceFieldAccess"

func (node *NamespaceFieldAccess) bnd()               {}
func (node *NamespaceFieldAccess) expression()        {}
func (node *NamespaceFieldAccess) Kind() NodeKind     { return NamespaceFieldAccessKind }
func (node *NamespaceFieldAccess) Type() symbols.Type { return types.Error }

// ErrorExpression replaces an expression that couldn't be bound.
type ErrorExpression struct{}

var _ Expression = (*ErrorExpression)(nil)

const ErrorExpressionKind NodeKind = "ErrorExpression"

func (node *ErrorExpression) bnd()               {}
func (node *ErrorExpression) expression()        {}
func (node *ErrorExpression) Kind() NodeKind     { return ErrorExpressionKind }
func (node *ErrorExpression) Type() symbols.Type { return types.Error }
