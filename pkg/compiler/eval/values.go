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

package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
)

// Value is a runtime value.  Primitives use the representation of bound literals (int64, uint64, float64, bool and
// string); structs, pointer arrays and references are *Struct, *Array and *Reference; values of type Any are *Boxed.
// Unit and the null pointer are nil.
type Value interface{}

// Struct is an allocated struct.  It is shared by every variable holding it.
type Struct struct {
	Type   *symbols.StructType
	Fields []Value
}

func (s *Struct) String() string {
	var b strings.Builder
	b.WriteString(s.Type.Name())
	b.WriteString(" {")
	for i, f := range s.Type.Fields {
		if i > 0 {
			b.WriteRune(',')
		}
		fmt.Fprintf(&b, " %v: %v", f.Name, Format(s.Fields[i]))
	}
	b.WriteString(" }")
	return b.String()
}

// Array is the storage behind a pointer created by a pointer array initialization.
type Array struct {
	Type     *symbols.PointerType
	Elements []Value
}

func (a *Array) String() string {
	elems := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		elems[i] = Format(e)
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// Reference is a pointer to a variable, created by taking its address.
type Reference struct {
	Type     *symbols.PointerType
	Variable *symbols.Variable
	cell     *cell
}

func (r *Reference) String() string { return "&" + r.Variable.Name() }

// Boxed is a value converted to Any.  It remembers the type the value had before the conversion.
type Boxed struct {
	Value Value
	Type  symbols.Type
}

func (b *Boxed) String() string { return Format(b.Value) }

// cell holds the value of one variable.
type cell struct {
	value Value
}

// Format renders a value the way the interactive prompt displays it.
func Format(v Value) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprintf("%v", v)
}

// TypeOf returns the dynamic type of a value of type Any, or Any itself for the null pointer.
func TypeOf(v Value) symbols.Type {
	switch x := v.(type) {
	case *Boxed:
		return x.Type
	case *Struct:
		return x.Type
	case *Array:
		return x.Type
	case *Reference:
		return x.Type
	}
	return types.Any
}

// zero is the value a variable of the given type starts out with.
func zero(ty symbols.Type) Value {
	if lit := bound.ZeroValue(ty); lit != nil {
		return lit.Value
	}
	return nil
}

// convert casts a value from one type to another, following the same rules as code generation: numbers are
// truncated or extended to the target type, pointers are reinterpreted, and Any boxes and unboxes.
func convert(v Value, from, to symbols.Type) Value {
	switch {
	case from == to:
		return v
	case to == types.Any:
		if v == nil {
			return nil
		}
		if _, boxed := v.(*Boxed); boxed {
			return v
		}
		return &Boxed{Value: v, Type: from}
	case from == types.Any:
		inner := v
		if b, boxed := v.(*Boxed); boxed {
			inner = b.Value
		}
		if to == types.String {
			if inner == nil {
				return ""
			}
			if _, isstr := inner.(string); !isstr {
				return Format(inner)
			}
		}
		return inner
	case types.IsPointer(from) && types.IsPointer(to):
		return v
	}
	return bound.Normalize(v, to)
}
