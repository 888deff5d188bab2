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

// UnaryOperatorKind is the operation a unary operator performs.
type UnaryOperatorKind int

const (
	Identity UnaryOperatorKind = iota
	Negation
	LogicalNot
)

// UnaryOperator is a prefix operator resolved for a specific operand type.
type UnaryOperator struct {
	Syntax  string
	Op      UnaryOperatorKind
	Operand symbols.Type
	Result  symbols.Type
}

func (op *UnaryOperator) String() string { return op.Syntax }

// BinaryOperatorKind is the operation a binary operator performs.
type BinaryOperatorKind int

const (
	Add BinaryOperatorKind = iota
	Sub
	Mul
	Div
	Rem
	BitAnd
	BitOr
	LogicAnd
	LogicOr
	Less
	Greater
	Equal
	GreaterOrEqual
	LessOrEqual
	NotEqual
	IdentityEqual
	NotIdentityEqual
)

var binarySyntax = map[BinaryOperatorKind]string{
	Add:              "+",
	Sub:              "-",
	Mul:              "*",
	Div:              "/",
	Rem:              "%",
	BitAnd:           "&",
	BitOr:            "|",
	LogicAnd:         "&&",
	LogicOr:          "||",
	Less:             "<",
	Greater:          ">",
	Equal:            "==",
	GreaterOrEqual:   ">=",
	LessOrEqual:      "<=",
	NotEqual:         "!=",
	IdentityEqual:    "===",
	NotIdentityEqual: "!==",
}

func (k BinaryOperatorKind) String() string { return binarySyntax[k] }

// IsComparison is true for operators producing a Bool from non-Bool operands.
func (k BinaryOperatorKind) IsComparison() bool {
	return k >= Less
}

// BinaryOperator is an infix operator resolved for specific operand types.
type BinaryOperator struct {
	Syntax string
	Op     BinaryOperatorKind
	Left   symbols.Type
	Right  symbols.Type
	Result symbols.Type
}

func (op *BinaryOperator) String() string { return op.Syntax }

// OperandType is the type both operands are widened to before the operation is applied.
func (op *BinaryOperator) OperandType() symbols.Type {
	return Wider(op.Left, op.Right)
}

var (
	unaryOperators  []*UnaryOperator
	binaryOperators []*BinaryOperator
)

func init() {
	integers := []symbols.Type{
		types.I8, types.I16, types.I32, types.Int, types.U8, types.U16, types.U32, types.U64,
	}
	floats := []symbols.Type{types.Float, types.Double}

	unary := func(op UnaryOperatorKind, syntax string, ty symbols.Type) {
		unaryOperators = append(unaryOperators, &UnaryOperator{Syntax: syntax, Op: op, Operand: ty, Result: ty})
	}
	unary(LogicalNot, "!", types.Bool)
	for _, ty := range append(integers, floats...) {
		unary(Identity, "+", ty)
		unary(Negation, "-", ty)
	}

	binary := func(ty symbols.Type, ops ...BinaryOperatorKind) {
		for _, op := range ops {
			result := ty
			if op.IsComparison() {
				result = types.Bool
			}
			binaryOperators = append(binaryOperators, &BinaryOperator{
				Syntax: op.String(), Op: op, Left: ty, Right: ty, Result: result,
			})
		}
	}
	for _, ty := range integers {
		binary(ty, Add, Sub, Mul, Div, Rem, BitAnd, BitOr,
			Less, Greater, Equal, LessOrEqual, GreaterOrEqual, NotEqual, IdentityEqual, NotIdentityEqual)
	}
	for _, ty := range floats {
		binary(ty, Add, Sub, Mul, Div, Rem, Less, Greater, Equal, LessOrEqual, GreaterOrEqual, NotEqual)
	}
	binary(types.Bool, BitAnd, BitOr, LogicAnd, LogicOr)
	binaryOperators = append(binaryOperators,
		&BinaryOperator{Syntax: "==", Op: Equal, Left: types.Bool, Right: types.Bool, Result: types.Bool},
		&BinaryOperator{Syntax: "!=", Op: NotEqual, Left: types.Bool, Right: types.Bool, Result: types.Bool},
		&BinaryOperator{Syntax: "===", Op: IdentityEqual, Left: types.Bool, Right: types.Bool, Result: types.Bool},
		&BinaryOperator{Syntax: "!==", Op: NotIdentityEqual, Left: types.Bool, Right: types.Bool, Result: types.Bool},
	)
	binary(types.String, Add, Equal, NotEqual, IdentityEqual, NotIdentityEqual)
}

// BindUnaryOperator finds the operator for the given syntax and operand type, or nil if there is none.
func BindUnaryOperator(syntax string, operand symbols.Type) *UnaryOperator {
	for _, op := range unaryOperators {
		if op.Syntax == syntax && op.Operand == operand {
			return op
		}
	}
	return nil
}

// BindBinaryOperator finds the operator for the given syntax and operand types, or nil if there is none.  Integers
// of the same signedness but different widths, and Float with Double, combine at the wider of the two types.
func BindBinaryOperator(syntax string, left, right symbols.Type) *BinaryOperator {
	if left == right {
		return lookupBinary(syntax, left)
	}
	wide := Wider(left, right)
	if wide == nil {
		return nil
	}
	op := lookupBinary(syntax, wide)
	if op == nil {
		return nil
	}
	widened := *op
	widened.Left, widened.Right = left, right
	return &widened
}

func lookupBinary(syntax string, ty symbols.Type) *BinaryOperator {
	for _, op := range binaryOperators {
		if op.Syntax == syntax && op.Left == ty {
			return op
		}
	}
	return nil
}

// Wider returns the wider of two numeric types that can be combined without changing their representation: two
// integers of the same signedness, or two floats.  It returns nil if the types can't be combined.
func Wider(a, b symbols.Type) symbols.Type {
	if a == b {
		return a
	}
	pa, pb := types.Primitive(a), types.Primitive(b)
	if pa == nil || pb == nil || pa.Numeric == symbols.NotNumeric || pa.Numeric != pb.Numeric {
		return nil
	}
	if pa.Bits >= pb.Bits {
		return a
	}
	return b
}
