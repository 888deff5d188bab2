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
	"github.com/pulumi/lumi/pkg/diag"
)

// Constant is a value known at compile time, used for folding conditions.
type Constant struct {
	Value interface{} // an int64, uint64, float64, bool or string.
}

// Variable is a global, local or parameter.
type Variable struct {
	Nm       string        // the declared name.
	K        Kind          // GlobalVariableKind, LocalVariableKind or ParameterKind.
	Ty       Type          // the variable's type.
	ReadOnly bool          // true for `val` declarations and parameters.
	Constant *Constant     // the folded initializer of a read-only variable, if any.
	RealName string        // the name used in lowered code; differs from Nm when renamed to avoid collisions.
	VarPath  string        // the dotted path of globals; empty for locals.
	Node     diag.Diagable // the declaring node, if any.
}

var _ Symbol = (*Variable)(nil)

func (node *Variable) Name() string        { return node.Nm }
func (node *Variable) Kind() Kind          { return node.K }
func (node *Variable) Tree() diag.Diagable { return node.Node }
func (node *Variable) Type() Type          { return node.Ty }
func (node *Variable) String() string      { return node.Nm }

// IsGlobal is true for variables declared at the top-level of a namespace.
func (node *Variable) IsGlobal() bool { return node.K == GlobalVariableKind }

// Path returns the qualified path of a global.
func (node *Variable) Path() string { return node.VarPath }

// MangledName is the global's path; locals and parameters use their real name.
func (node *Variable) MangledName() string {
	if node.IsGlobal() {
		return node.VarPath
	}
	return node.RealName
}

// Renamed returns a copy of a local variable under a different real name.  The original is left untouched, so other
// references to it keep their meaning.
func (node *Variable) Renamed(realName string) *Variable {
	cp := *node
	cp.RealName = realName
	return &cp
}

// NewGlobalVariable creates a variable at the top-level of the namespace with the given path.
func NewGlobalVariable(nm string, ty Type, readOnly bool, constant *Constant, path string, node diag.Diagable) *Variable {
	return &Variable{
		Nm: nm, K: GlobalVariableKind, Ty: ty, ReadOnly: readOnly, Constant: constant,
		RealName: nm, VarPath: path, Node: node,
	}
}

// NewLocalVariable creates a function-local (or hidden temporary) variable.
func NewLocalVariable(nm string, ty Type, readOnly bool, constant *Constant, node diag.Diagable) *Variable {
	return &Variable{
		Nm: nm, K: LocalVariableKind, Ty: ty, ReadOnly: readOnly, Constant: constant, RealName: nm, Node: node,
	}
}

// NewParameter creates a function parameter; parameters are always read-only.
func NewParameter(nm string, ty Type, node diag.Diagable) *Variable {
	return &Variable{Nm: nm, K: ParameterKind, Ty: ty, ReadOnly: true, RealName: nm, Node: node}
}
