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
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	irtypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
)

// bytePtr is the type of strings, of Any, and of the C runtime's untyped memory.
var bytePtr = irtypes.NewPointer(irtypes.I8)

// typ returns the IR type values of a type are represented with.  Strings, structs, pointers and Any are all
// pointers: strings to NUL-terminated characters, structs to their heap allocated layout, and Any to the boxed value.
func (e *emitter) typ(fn string, t symbols.Type) irtypes.Type {
	switch tt := t.(type) {
	case *symbols.StructType:
		return irtypes.NewPointer(e.structType(fn, tt))
	case *symbols.PointerType:
		elem := e.typ(fn, tt.Element)
		if elem.Equal(irtypes.Void) {
			return bytePtr
		}
		return irtypes.NewPointer(elem)
	case *symbols.PrimitiveType:
		switch {
		case tt == types.Unit:
			return irtypes.Void
		case tt == types.Bool:
			return irtypes.I1
		case tt == types.String, tt == types.Any:
			return bytePtr
		case tt.IsInteger():
			return intType(tt.Bits)
		case tt == types.Float:
			return irtypes.Float
		case tt == types.Double:
			return irtypes.Double
		}
	}
	failf(fn, "type %v has no representation", t)
	return nil
}

func intType(bits int) *irtypes.IntType {
	switch bits {
	case 1:
		return irtypes.I1
	case 8:
		return irtypes.I8
	case 16:
		return irtypes.I16
	case 32:
		return irtypes.I32
	case 64:
		return irtypes.I64
	}
	return irtypes.NewInt(uint64(bits))
}

// bits returns the width of an integer or floating point type, and 0 for every other type.
func bits(t irtypes.Type) uint64 {
	switch tt := t.(type) {
	case *irtypes.IntType:
		return tt.BitSize
	case *irtypes.FloatType:
		if tt.Kind == irtypes.FloatKindFloat {
			return 32
		}
		return 64
	}
	return 0
}

func isPointer(t irtypes.Type) bool {
	_, isptr := t.(*irtypes.PointerType)
	return isptr
}

// sizeOf computes the allocation size of a type as the address of the element after the first one, counted from
// null.
func sizeOf(t irtypes.Type) constant.Constant {
	end := constant.NewGetElementPtr(t, constant.NewNull(irtypes.NewPointer(t)), constant.NewInt(irtypes.I32, 1))
	return constant.NewPtrToInt(end, irtypes.I64)
}

// widen extends a numeric value of type from to the wider type to: integers keep their sign, floats grow to double.
func (fe *functionEmitter) widen(v value.Value, from, to symbols.Type) value.Value {
	if from == to {
		return v
	}
	target := fe.e.typ(fe.name, to)
	if bits(v.Type()) == bits(target) {
		return v
	}
	switch {
	case types.IsInteger(from) && types.IsInteger(to):
		if types.Primitive(from).IsSigned() {
			return fe.block().NewSExt(v, target)
		}
		return fe.block().NewZExt(v, target)
	case types.IsFloat(from) && types.IsFloat(to):
		return fe.block().NewFPExt(v, target)
	}
	fe.failf("can't widen %v to %v", from, to)
	return nil
}

// cast converts a value between two types the binder accepted a cast for.
func (fe *functionEmitter) cast(v value.Value, from, to symbols.Type) value.Value {
	if from == to {
		return v
	}
	if to == types.Any {
		return fe.box(v, from)
	}

	target := fe.e.typ(fe.name, to)
	switch {
	case isPointer(v.Type()) && isPointer(target):
		// Strings, structs and pointers share the representation of Any; only the pointee type changes.
		if v.Type().Equal(target) {
			return v
		}
		return fe.block().NewBitCast(v, target)
	case types.IsInteger(from) && types.IsInteger(to):
		fromBits, toBits := bits(v.Type()), bits(target)
		switch {
		case fromBits == toBits:
			return v
		case fromBits > toBits:
			return fe.block().NewTrunc(v, target)
		case types.Primitive(from).IsSigned():
			return fe.block().NewSExt(v, target)
		default:
			return fe.block().NewZExt(v, target)
		}
	case from == types.Bool && types.IsInteger(to):
		return fe.block().NewZExt(v, target)
	case types.IsInteger(from) && types.IsFloat(to):
		if types.Primitive(from).IsSigned() {
			return fe.block().NewSIToFP(v, target)
		}
		return fe.block().NewUIToFP(v, target)
	case types.IsFloat(from) && types.IsInteger(to):
		if types.Primitive(to).IsSigned() {
			return fe.block().NewFPToSI(v, target)
		}
		return fe.block().NewFPToUI(v, target)
	case types.IsFloat(from) && types.IsFloat(to):
		if bits(v.Type()) < bits(target) {
			return fe.block().NewFPExt(v, target)
		}
		return fe.block().NewFPTrunc(v, target)
	}
	fe.failf("no conversion from %v to %v", from, to)
	return nil
}

// box turns a value into an Any.  Values already represented as pointers only change their pointee type; booleans
// and integers are extended to 64 bits, floats reinterpreted as the bits of a double, and the result stored in the
// pointer itself.
func (fe *functionEmitter) box(v value.Value, from symbols.Type) value.Value {
	b := func() *ir.Block { return fe.block() }
	switch {
	case isPointer(v.Type()):
		if v.Type().Equal(bytePtr) {
			return v
		}
		return b().NewBitCast(v, bytePtr)
	case from == types.Bool:
		v = b().NewZExt(v, irtypes.I64)
	case types.IsInteger(from):
		if bits(v.Type()) < 64 {
			if types.Primitive(from).IsSigned() {
				v = b().NewSExt(v, irtypes.I64)
			} else {
				v = b().NewZExt(v, irtypes.I64)
			}
		}
	case types.IsFloat(from):
		if bits(v.Type()) < 64 {
			v = b().NewFPExt(v, irtypes.Double)
		}
		v = b().NewBitCast(v, irtypes.I64)
	default:
		fe.failf("can't box a %v", from)
	}
	return b().NewIntToPtr(v, bytePtr)
}
