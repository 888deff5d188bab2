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

// EntryMangledName is the external name every entry function is emitted under.
const EntryMangledName = "main"

// Function is a named, possibly overloaded, function.
type Function struct {
	Nm     string
	Params []*Variable
	Return Type          // the return type; Unit for functions returning nothing.
	FnPath string        // the dotted path, e.g. `app.util.max`; nested functions get a synthetic path.
	Node   diag.Diagable // the declaring node, nil for builtins and synthesized functions.
	Meta   Metadata
}

var _ Symbol = (*Function)(nil)
var _ Visible = (*Function)(nil)

func (node *Function) Name() string        { return node.Nm }
func (node *Function) Kind() Kind          { return FunctionKind }
func (node *Function) Tree() diag.Diagable { return node.Node }
func (node *Function) Path() string        { return node.FnPath }

func (node *Function) String() string {
	return node.Nm + "(" + node.Signature().String() + ")"
}

// Signature returns the parameter types in order.
func (node *Function) Signature() Types {
	sig := make(Types, len(node.Params))
	for i, p := range node.Params {
		sig[i] = p.Ty
	}
	return sig
}

// MangledName honors a cname override, uses the fixed entry name for the entry function, and otherwise appends the
// parameter types to the path so that overloads get distinct names.
func (node *Function) MangledName() string {
	if node.Meta.CName != "" {
		return node.Meta.CName
	}
	if node.Meta.Entry {
		return EntryMangledName
	}
	if len(node.Params) == 0 {
		return node.FnPath
	}
	var b strings.Builder
	b.WriteString(node.FnPath)
	for _, p := range node.Params {
		b.WriteRune('$')
		b.WriteString(p.Ty.Name())
	}
	return b.String()
}

// Namespace returns the path of the namespace a function was declared in.
func (node *Function) Namespace() string {
	if i := strings.LastIndexByte(node.FnPath, '.'); i >= 0 {
		return node.FnPath[:i]
	}
	return ""
}

// NewFunction allocates a function symbol.
func NewFunction(nm string, params []*Variable, ret Type, path string, node diag.Diagable, meta Metadata) *Function {
	return &Function{Nm: nm, Params: params, Return: ret, FnPath: path, Node: node, Meta: meta}
}
