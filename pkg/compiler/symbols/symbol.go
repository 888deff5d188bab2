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

// Package symbols contains the fully bound symbol information that the binder produces and later phases consume.
package symbols

import (
	"fmt"

	"github.com/pulumi/lumi/pkg/diag"
)

// Kind discriminates the different symbols.
type Kind int

const (
	GlobalVariableKind Kind = iota
	LocalVariableKind
	ParameterKind
	TypeKind
	FunctionKind
)

func (k Kind) String() string {
	switch k {
	case GlobalVariableKind:
		return "global variable"
	case LocalVariableKind:
		return "local variable"
	case ParameterKind:
		return "parameter"
	case TypeKind:
		return "type"
	case FunctionKind:
		return "function"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Symbol is the base interface for all Lumi symbol types.
type Symbol interface {
	Name() string        // the simple name for this symbol.
	Kind() Kind          // the kind of symbol.
	Tree() diag.Diagable // the diagnosable tree associated with this symbol, if any.
	String() string      // implement Stringer for easy formatting (e.g., in error messages).
}

var _ fmt.Stringer = (Symbol)(nil)

// Visible is a symbol that can be referred to from outside of its declaring scope by a dotted path.
type Visible interface {
	Symbol
	Path() string        // the fully qualified, dotted path, e.g. `app.util.max`.
	MangledName() string // the name used for this symbol in emitted code.
}

// Metadata holds the annotations a function was declared with.
type Metadata struct {
	Inline bool   // [inline]
	Extern bool   // [extern]: declared here, defined by the linker.
	Entry  bool   // [entry]: the program's entry point.
	CName  string // [cname("...")]: overrides the mangled name.
}
