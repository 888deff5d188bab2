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

package symbols

import (
	"strings"

	"github.com/pulumi/lumi/pkg/diag"
)

// Type is a type symbol that can be used for typechecking operations.
type Type interface {
	Symbol
	typesym()
	Parent() Type // the supertype, or nil at the root.
}

// Types is a list of type symbols.
type Types []Type

// String renders a list of types as a parameter list, e.g. `Int, Bool`.
func (ts Types) String() string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Name()
	}
	return strings.Join(names, ", ")
}

// Equal is true if both lists hold the identical types in the same order.
func (ts Types) Equal(other Types) bool {
	if len(ts) != len(other) {
		return false
	}
	for i := range ts {
		if ts[i] != other[i] {
			return false
		}
	}
	return true
}

// IsOfType returns true if t is other or one of other's subtypes.
func IsOfType(t Type, other Type) bool {
	for ; t != nil; t = t.Parent() {
		if t == other {
			return true
		}
	}
	return false
}

// NumericClass describes how a primitive's values are represented at runtime.
type NumericClass int

const (
	NotNumeric NumericClass = iota
	SignedInteger
	UnsignedInteger
	FloatingPoint
)

// PrimitiveType is a builtin type.  Abstract primitives only exist as parents for the subtyping relation.
type PrimitiveType struct {
	Nm       string
	Super    Type
	Numeric  NumericClass
	Bits     int  // the width of numeric types and Bool.
	Abstract bool // true if no value ever has this exact type.
}

var _ Symbol = (*PrimitiveType)(nil)
var _ Type = (*PrimitiveType)(nil)

func (node *PrimitiveType) typesym()            {}
func (node *PrimitiveType) Name() string        { return node.Nm }
func (node *PrimitiveType) Kind() Kind          { return TypeKind }
func (node *PrimitiveType) Tree() diag.Diagable { return nil }
func (node *PrimitiveType) Parent() Type        { return node.Super }
func (node *PrimitiveType) String() string      { return node.Nm }

func (node *PrimitiveType) IsInteger() bool {
	return node.Numeric == SignedInteger || node.Numeric == UnsignedInteger
}
func (node *PrimitiveType) IsFloat() bool  { return node.Numeric == FloatingPoint }
func (node *PrimitiveType) IsSigned() bool { return node.Numeric == SignedInteger }

// NewPrimitiveType allocates a primitive type.  Non-numeric primitives pass NotNumeric and zero bits.
func NewPrimitiveType(nm string, super Type, numeric NumericClass, bits int) *PrimitiveType {
	return &PrimitiveType{Nm: nm, Super: super, Numeric: numeric, Bits: bits}
}

// NewAbstractType allocates a primitive that only serves as a supertype.
func NewAbstractType(nm string, super Type) *PrimitiveType {
	return &PrimitiveType{Nm: nm, Super: super, Abstract: true}
}

// Field is a single named slot of a struct.
type Field struct {
	Name string
	Type Type
}

// StructType is a user-declared record with ordered fields.
type StructType struct {
	Nm     string
	Super  Type
	Fields []*Field
	Node   diag.Diagable
}

var _ Symbol = (*StructType)(nil)
var _ Type = (*StructType)(nil)

func (node *StructType) typesym()            {}
func (node *StructType) Name() string        { return node.Nm }
func (node *StructType) Kind() Kind          { return TypeKind }
func (node *StructType) Tree() diag.Diagable { return node.Node }
func (node *StructType) Parent() Type        { return node.Super }
func (node *StructType) String() string      { return node.Nm }

// FieldIndex returns the index of the named field, or -1 if there is no such field.
func (node *StructType) FieldIndex(name string) int {
	for i, f := range node.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// NewStructType allocates a struct type; fields are filled in once all types of the compilation are known.
func NewStructType(nm string, super Type, node diag.Diagable) *StructType {
	return &StructType{Nm: nm, Super: super, Node: node}
}

// PointerType is a pointer to (an array of) values of the element type, written `Ptr[T]`.
type PointerType struct {
	Element Type
	Super   Type
}

var _ Symbol = (*PointerType)(nil)
var _ Type = (*PointerType)(nil)

const PointerTypeName = "Ptr"

func (node *PointerType) typesym()            {}
func (node *PointerType) Name() string        { return PointerTypeName + "[" + node.Element.Name() + "]" }
func (node *PointerType) Kind() Kind          { return TypeKind }
func (node *PointerType) Tree() diag.Diagable { return nil }
func (node *PointerType) Parent() Type        { return node.Super }
func (node *PointerType) String() string      { return node.Name() }

// NewPointerType allocates a pointer type.  Callers intern these so that identity comparisons work.
func NewPointerType(elem Type, super Type) *PointerType {
	return &PointerType{Element: elem, Super: super}
}
