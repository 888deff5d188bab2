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

package emit

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	irtypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
)

// value emits an expression and returns its value, or nil for expressions without one.
func (fe *functionEmitter) value(e bound.Expression) value.Value {
	switch n := e.(type) {
	case *bound.LiteralExpression:
		return fe.literal(n)
	case *bound.VariableExpression:
		return fe.block().NewLoad(fe.e.typ(fe.name, n.Type()), fe.address(n.Variable))
	case *bound.ReferenceExpression:
		return fe.address(n.Variable)
	case *bound.UnaryExpression:
		return fe.unary(n)
	case *bound.BinaryExpression:
		return fe.binary(n)
	case *bound.AssignmentExpression:
		fe.assign(n)
		return nil
	case *bound.CallExpression:
		return fe.call(n)
	case *bound.CastExpression:
		return fe.cast(fe.value(n.Expression), n.Expression.Type(), n.Ty)
	case *bound.StructFieldAccess:
		addr := fe.fieldAddress(n)
		return fe.block().NewLoad(fe.e.typ(fe.name, n.Type()), addr)
	case *bound.PointerAccess:
		addr := fe.elementAddress(n)
		return fe.block().NewLoad(fe.e.typ(fe.name, n.Type()), addr)
	case *bound.StructInitialization:
		return fe.structInitialization(n)
	case *bound.PointerArrayInitialization:
		return fe.pointerArrayInitialization(n)
	case *bound.BlockExpression, *bound.IfExpression:
		fe.failf("%v wasn't lowered", e.Kind())
	case *bound.ErrorExpression, *bound.NamespaceFieldAccess:
		fe.failf("%v reached emission", e.Kind())
	default:
		fe.failf("unrecognized expression %v", e.Kind())
	}
	return nil
}

func (fe *functionEmitter) literal(n *bound.LiteralExpression) value.Value {
	c := fe.e.constant(n.Value, n.Ty)
	if c == nil {
		fe.failf("literal %v has no constant of type %v", n.Value, n.Ty)
	}
	return c
}

func (fe *functionEmitter) unary(n *bound.UnaryExpression) value.Value {
	operand := fe.value(n.Operand)
	switch n.Operator.Op {
	case bound.Identity:
		return operand
	case bound.Negation:
		switch t := operand.Type().(type) {
		case *irtypes.IntType:
			return fe.block().NewSub(constant.NewInt(t, 0), operand)
		case *irtypes.FloatType:
			return fe.block().NewFNeg(operand)
		}
	case bound.LogicalNot:
		return fe.block().NewXor(operand, constant.NewBool(true))
	}
	fe.failf("no instruction for unary %v of %v", n.Operator, n.Operand.Type())
	return nil
}

// binary emits an arithmetic instruction when there is one for the operator, and a comparison otherwise.  Operands
// are widened to the operator's operand type first.
func (fe *functionEmitter) binary(n *bound.BinaryExpression) value.Value {
	ty := n.Operator.OperandType()
	left := fe.widen(fe.value(n.Left), n.Left.Type(), ty)
	right := fe.widen(fe.value(n.Right), n.Right.Type(), ty)
	op := n.Operator.Op

	if ty == types.String {
		return fe.stringOperation(op, left, right)
	}
	if v := fe.arithmetic(op, ty, left, right); v != nil {
		return v
	}
	if types.IsFloat(ty) {
		if pred, has := floatComparisons[op]; has {
			return fe.block().NewFCmp(pred, left, right)
		}
	} else if pred, has := intComparison(op, ty); has {
		return fe.block().NewICmp(pred, left, right)
	}
	fe.failf("no instruction for %v %v %v", n.Left.Type(), n.Operator, n.Right.Type())
	return nil
}

// arithmetic emits the instruction applying an operator to operands of the given type, or returns nil if the
// operator is a comparison.
func (fe *functionEmitter) arithmetic(op bound.BinaryOperatorKind, ty symbols.Type, x, y value.Value) value.Value {
	b := fe.block()
	switch {
	case ty == types.Bool:
		switch op {
		case bound.BitAnd, bound.LogicAnd:
			return b.NewAnd(x, y)
		case bound.BitOr, bound.LogicOr:
			return b.NewOr(x, y)
		}
	case types.IsFloat(ty):
		switch op {
		case bound.Add:
			return b.NewFAdd(x, y)
		case bound.Sub:
			return b.NewFSub(x, y)
		case bound.Mul:
			return b.NewFMul(x, y)
		case bound.Div:
			return b.NewFDiv(x, y)
		case bound.Rem:
			return b.NewFRem(x, y)
		}
	case types.IsInteger(ty):
		signed := types.Primitive(ty).IsSigned()
		switch op {
		case bound.Add:
			return b.NewAdd(x, y)
		case bound.Sub:
			return b.NewSub(x, y)
		case bound.Mul:
			return b.NewMul(x, y)
		case bound.Div:
			if signed {
				return b.NewSDiv(x, y)
			}
			return b.NewUDiv(x, y)
		case bound.Rem:
			if signed {
				return b.NewSRem(x, y)
			}
			return b.NewURem(x, y)
		case bound.BitAnd:
			return b.NewAnd(x, y)
		case bound.BitOr:
			return b.NewOr(x, y)
		}
	}
	return nil
}

// intComparison returns the predicate comparing two integers or booleans with an operator, if there is one.
func intComparison(op bound.BinaryOperatorKind, ty symbols.Type) (enum.IPred, bool) {
	signed := ty == types.Bool || types.Primitive(ty) != nil && types.Primitive(ty).IsSigned()
	switch op {
	case bound.Equal, bound.IdentityEqual:
		return enum.IPredEQ, true
	case bound.NotEqual, bound.NotIdentityEqual:
		return enum.IPredNE, true
	}
	if !types.IsInteger(ty) {
		return 0, false
	}
	switch op {
	case bound.Less:
		if signed {
			return enum.IPredSLT, true
		}
		return enum.IPredULT, true
	case bound.Greater:
		if signed {
			return enum.IPredSGT, true
		}
		return enum.IPredUGT, true
	case bound.LessOrEqual:
		if signed {
			return enum.IPredSLE, true
		}
		return enum.IPredULE, true
	case bound.GreaterOrEqual:
		if signed {
			return enum.IPredSGE, true
		}
		return enum.IPredUGE, true
	}
	return 0, false
}

var floatComparisons = map[bound.BinaryOperatorKind]enum.FPred{
	bound.Equal:          enum.FPredOEQ,
	bound.NotEqual:       enum.FPredUNE,
	bound.Less:           enum.FPredOLT,
	bound.Greater:        enum.FPredOGT,
	bound.LessOrEqual:    enum.FPredOLE,
	bound.GreaterOrEqual: enum.FPredOGE,
}

// stringOperation concatenates or compares strings.  Equality compares the characters, identity the pointers.
func (fe *functionEmitter) stringOperation(op bound.BinaryOperatorKind, left, right value.Value) value.Value {
	b := fe.block()
	switch op {
	case bound.Add:
		return fe.concat(left, right)
	case bound.Equal, bound.NotEqual:
		cmp := b.NewCall(fe.e.runtimeFunction("strcmp"), left, right)
		pred := enum.IPredEQ
		if op == bound.NotEqual {
			pred = enum.IPredNE
		}
		return b.NewICmp(pred, cmp, constant.NewInt(irtypes.I32, 0))
	case bound.IdentityEqual:
		return b.NewICmp(enum.IPredEQ, left, right)
	case bound.NotIdentityEqual:
		return b.NewICmp(enum.IPredNE, left, right)
	}
	fe.failf("no instruction for String %v String", op)
	return nil
}

// concat copies both strings into a fresh heap allocation.
func (fe *functionEmitter) concat(left, right value.Value) value.Value {
	b := fe.block()
	strlen := fe.e.runtimeFunction("strlen")
	n := b.NewAdd(b.NewCall(strlen, left), b.NewCall(strlen, right))
	size := b.NewAdd(n, constant.NewInt(irtypes.I64, 1))
	res := b.NewCall(fe.e.runtimeFunction("malloc"), size)
	b.NewCall(fe.e.runtimeFunction("strcpy"), res, left)
	b.NewCall(fe.e.runtimeFunction("strcat"), res, right)
	return res
}

func (fe *functionEmitter) assign(n *bound.AssignmentExpression) {
	var addr value.Value
	switch t := n.Target.(type) {
	case *bound.VariableExpression:
		addr = fe.address(t.Variable)
	case *bound.StructFieldAccess:
		addr = fe.fieldAddress(t)
	case *bound.PointerAccess:
		addr = fe.elementAddress(t)
	default:
		fe.failf("%v can't be assigned to", n.Target.Kind())
	}
	val := fe.value(n.Value)
	if val == nil {
		fe.failf("assigned %v has no value", n.Value.Kind())
	}
	fe.block().NewStore(val, addr)
}

// call emits a call, and returns nil for callees without a result.
func (fe *functionEmitter) call(n *bound.CallExpression) value.Value {
	args := make([]value.Value, len(n.Arguments))
	for i, arg := range n.Arguments {
		if args[i] = fe.value(arg); args[i] == nil {
			fe.failf("argument %d of %v has no value", i, n.Function.Path())
		}
	}
	callee := fe.e.declare(n.Function)
	res := fe.block().NewCall(callee, args...)
	if callee.Sig.RetType.Equal(irtypes.Void) {
		return nil
	}
	return res
}

// fieldAddress computes the address of a struct field.
func (fe *functionEmitter) fieldAddress(n *bound.StructFieldAccess) value.Value {
	base := fe.value(n.Struct)
	layout := fe.e.structType(fe.name, n.StructType())
	return fe.fieldPointer(layout, base, n.Field)
}

func (fe *functionEmitter) fieldPointer(layout *irtypes.StructType, base value.Value, field int) value.Value {
	return fe.block().NewGetElementPtr(layout, base,
		constant.NewInt(irtypes.I32, 0), constant.NewInt(irtypes.I32, int64(field)))
}

// elementAddress computes the address of an element of a pointer array.
func (fe *functionEmitter) elementAddress(n *bound.PointerAccess) value.Value {
	base := fe.value(n.Pointer)
	index := fe.value(n.Index)
	return fe.block().NewGetElementPtr(fe.e.typ(fe.name, n.Type()), base, index)
}

// allocate calls calloc for count zeroed elements of a type, and returns the memory as a pointer to the type.
func (fe *functionEmitter) allocate(elem irtypes.Type, count value.Value) value.Value {
	b := fe.block()
	mem := b.NewCall(fe.e.runtimeFunction("calloc"), count, sizeOf(elem))
	if ptr := irtypes.NewPointer(elem); !ptr.Equal(bytePtr) {
		return b.NewBitCast(mem, ptr)
	}
	return mem
}

// structInitialization allocates a zeroed struct on the heap and stores the initialized fields.
func (fe *functionEmitter) structInitialization(n *bound.StructInitialization) value.Value {
	layout := fe.e.structType(fe.name, n.Ty)
	ptr := fe.allocate(layout, constant.NewInt(irtypes.I64, 1))
	for i, field := range n.Fields {
		if field == nil {
			continue
		}
		val := fe.value(field)
		fe.block().NewStore(val, fe.fieldPointer(layout, ptr, i))
	}
	return ptr
}

// pointerArrayInitialization allocates a zeroed array on the heap, and stores the given elements, if any.
func (fe *functionEmitter) pointerArrayInitialization(n *bound.PointerArrayInitialization) value.Value {
	ptrType, isptr := fe.e.typ(fe.name, n.Ty).(*irtypes.PointerType)
	if !isptr {
		fe.failf("pointer array of %v isn't a pointer", n.Ty)
	}
	elem := ptrType.ElemType
	var count value.Value
	if n.Length != nil {
		count = fe.cast(fe.value(n.Length), n.Length.Type(), types.Int)
	} else {
		count = constant.NewInt(irtypes.I64, int64(len(n.Elements)))
	}
	ptr := fe.allocate(elem, count)
	for i, el := range n.Elements {
		val := fe.value(el)
		addr := fe.block().NewGetElementPtr(elem, ptr, constant.NewInt(irtypes.I64, int64(i)))
		fe.block().NewStore(val, addr)
	}
	return ptr
}
