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

package types

import (
	"github.com/golang/glog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/util/contract"
)

// Table is the per-session registry of named types.  It starts out with the primitives; struct declarations add to
// it, and pointer types are interned on demand so that identical pointer types are the same symbol.
type Table struct {
	named    map[string]symbols.Type
	pointers map[symbols.Type]*symbols.PointerType
}

// NewTable creates a table holding just the primitive types.
func NewTable() *Table {
	t := &Table{
		named:    make(map[string]symbols.Type),
		pointers: make(map[symbols.Type]*symbols.PointerType),
	}
	for nm, ty := range Primitives {
		t.named[nm] = ty
	}
	return t
}

// Lookup finds a named type, returning nil if there is none.
func (t *Table) Lookup(nm string) symbols.Type {
	return t.named[nm]
}

// DeclareStruct registers a struct type; it returns false if the name is taken.
func (t *Table) DeclareStruct(st *symbols.StructType) bool {
	contract.Require(st != nil, "st")
	if _, has := t.named[st.Nm]; has {
		return false
	}
	t.named[st.Nm] = st
	if glog.V(5) {
		glog.V(5).Infof("Declared struct type %v", st.Nm)
	}
	return true
}

// Pointer returns the interned `Ptr[elem]` type.
func (t *Table) Pointer(elem symbols.Type) *symbols.PointerType {
	contract.Require(elem != nil, "elem")
	if p, has := t.pointers[elem]; has {
		return p
	}
	p := symbols.NewPointerType(elem, Any)
	t.pointers[elem] = p
	return p
}

// Names returns the sorted names of every named type.
func (t *Table) Names() []string {
	names := maps.Keys(t.named)
	slices.Sort(names)
	return names
}

// Structs returns every registered struct type, sorted by name.
func (t *Table) Structs() []*symbols.StructType {
	var structs []*symbols.StructType
	for _, nm := range t.Names() {
		if st, ok := t.named[nm].(*symbols.StructType); ok {
			structs = append(structs, st)
		}
	}
	return structs
}
