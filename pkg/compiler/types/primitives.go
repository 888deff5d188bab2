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

// Package types holds the builtin types of Lumi, the per-session type table and the conversion rules between types.
package types

import (
	"github.com/pulumi/lumi/pkg/compiler/symbols"
)

// Roots of the subtyping relation.
var (
	Any      = symbols.NewAbstractType("Any", nil)
	Integer  = symbols.NewAbstractType("Integer", Any)
	UInteger = symbols.NewAbstractType("UInteger", Any)
)

// All of the primitive types.
var (
	Unit   = symbols.NewPrimitiveType("Unit", nil, symbols.NotNumeric, 0)
	Bool   = symbols.NewPrimitiveType("Bool", Any, symbols.NotNumeric, 1)
	I8     = symbols.NewPrimitiveType("I8", Integer, symbols.SignedInteger, 8)
	I16    = symbols.NewPrimitiveType("I16", Integer, symbols.SignedInteger, 16)
	I32    = symbols.NewPrimitiveType("I32", Integer, symbols.SignedInteger, 32)
	Int    = symbols.NewPrimitiveType("Int", Integer, symbols.SignedInteger, 64)
	U8     = symbols.NewPrimitiveType("U8", UInteger, symbols.UnsignedInteger, 8)
	U16    = symbols.NewPrimitiveType("U16", UInteger, symbols.UnsignedInteger, 16)
	U32    = symbols.NewPrimitiveType("U32", UInteger, symbols.UnsignedInteger, 32)
	U64    = symbols.NewPrimitiveType("U64", UInteger, symbols.UnsignedInteger, 64)
	Float  = symbols.NewPrimitiveType("Float", Any, symbols.FloatingPoint, 32)
	Double = symbols.NewPrimitiveType("Double", Any, symbols.FloatingPoint, 64)
	String = symbols.NewPrimitiveType("String", Any, symbols.NotNumeric, 0)
	Error  = symbols.NewPrimitiveType("?", nil, symbols.NotNumeric, 0)
)

// Primitives contains a map of all primitive types that user code may name, keyed by their name.
var Primitives = map[string]symbols.Type{
	Any.Nm:    Any,
	Unit.Nm:   Unit,
	Bool.Nm:   Bool,
	I8.Nm:     I8,
	I16.Nm:    I16,
	I32.Nm:    I32,
	Int.Nm:    Int,
	U8.Nm:     U8,
	U16.Nm:    U16,
	U32.Nm:    U32,
	U64.Nm:    U64,
	Float.Nm:  Float,
	Double.Nm: Double,
	String.Nm: String,
}

// IsError is true for the error type, which poisons every expression that consumes it.
func IsError(t symbols.Type) bool {
	return t == Error
}

// Primitive returns the primitive behind a type, or nil for structs and pointers.
func Primitive(t symbols.Type) *symbols.PrimitiveType {
	p, _ := t.(*symbols.PrimitiveType)
	return p
}

// IsInteger is true for every signed or unsigned integer type.
func IsInteger(t symbols.Type) bool {
	p := Primitive(t)
	return p != nil && p.IsInteger()
}

// IsFloat is true for Float and Double.
func IsFloat(t symbols.Type) bool {
	p := Primitive(t)
	return p != nil && p.IsFloat()
}

// IsNumeric is true for integers and floats.
func IsNumeric(t symbols.Type) bool {
	return IsInteger(t) || IsFloat(t)
}

// IsPointer is true for `Ptr[T]` types.
func IsPointer(t symbols.Type) bool {
	_, ok := t.(*symbols.PointerType)
	return ok
}

// IsStruct is true for user-declared struct types.
func IsStruct(t symbols.Type) bool {
	_, ok := t.(*symbols.StructType)
	return ok
}
