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

package binder

import (
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
)

// The namespaces the builtin functions live in.
const (
	IONamespace   = "lumi.io"
	UtilNamespace = "lumi.util"
)

// The functions every interactive session can call without a `use`.  They are extern: the evaluator implements them.
var (
	Print   = builtin("print", IONamespace, types.Unit, symbols.NewParameter("text", types.String, nil))
	Println = builtin("println", IONamespace, types.Unit, symbols.NewParameter("text", types.String, nil))
	Readln  = builtin("readln", IONamespace, types.String)
	Typeof  = builtin("typeof", UtilNamespace, types.String, symbols.NewParameter("value", types.Any, nil))
)

// Builtins returns every builtin function.
func Builtins() []*symbols.Function {
	return []*symbols.Function{Print, Println, Readln, Typeof}
}

func builtin(name string, ns string, ret symbols.Type, params ...*symbols.Variable) *symbols.Function {
	return symbols.NewFunction(name, params, ret, ns+"."+name, nil, symbols.Metadata{Extern: true})
}
