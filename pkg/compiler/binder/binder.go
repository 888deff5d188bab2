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

// Package binder resolves the names and types of syntax trees, producing bound trees.  Binding happens in two steps:
// BindGlobalScope declares everything visible at the top-level of a compilation and binds top-level statements, and
// BindProgram then binds, checks and lowers the body of every function.
package binder

import (
	"fmt"
	"strings"

	"github.com/golang/glog"

	"github.com/pulumi/lumi/pkg/compiler/ast"
	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/core"
	"github.com/pulumi/lumi/pkg/compiler/errors"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
	"github.com/pulumi/lumi/pkg/diag"
	"github.com/pulumi/lumi/pkg/util/contract"
	"github.com/pulumi/lumi/pkg/util/suggest"
)

// Binder binds the statements of one function body, or the top-level statements of a compilation.
type Binder struct {
	ctx       *core.Context
	diags     diag.Sink
	scope     *symbols.Scope             // the current (mutable) scope.
	namespace *symbols.Namespace         // the namespace of top-level statements, nil inside functions.
	function  *symbols.Function          // the function being bound, nil at the top-level.
	lambda    bool                       // true if the function's body is a single expression.
	loops     []loop                     // the enclosing loops, innermost last.
	loopIDs   int                        // the last loop id handed out, for naming break and continue labels.
	locals    map[*symbols.Variable]bool // the parameters and locals owned by the function being bound.
	globals   []*symbols.Variable        // the global variables declared by top-level statements.
	nested    []*pendingFunction         // nested functions found while binding, to be bound later.
}

// loop holds the jump targets of `break` and `continue` inside one loop.
type loop struct {
	brk  *bound.Label
	cont *bound.Label
}

// pendingFunction is a declared function whose body still has to be bound.
type pendingFunction struct {
	fn    *symbols.Function
	decl  *ast.FunctionDeclaration
	scope *symbols.Scope // the scope the function was declared in.
}

// newBinder allocates a binder for a function body declared inside scope, or for the top-level statements of a
// namespace when fn is nil, in which case declarations go straight into the namespace's scope.
func newBinder(ctx *core.Context, diags diag.Sink, scope *symbols.Scope, fn *symbols.Function) *Binder {
	contract.Require(ctx != nil, "ctx")
	contract.Require(diags != nil, "diags")
	contract.Require(scope != nil, "scope")
	b := &Binder{
		ctx:      ctx,
		diags:    diags,
		scope:    scope,
		function: fn,
		locals:   make(map[*symbols.Variable]bool),
	}
	if fn != nil {
		b.scope = scope.Push()
		for _, param := range fn.Params {
			b.scope.TryDeclare(param)
			b.locals[param] = true
		}
	}
	return b
}

func (b *Binder) Diag() diag.Sink {
	return b.diags
}

// pushScope enters a new lexical scope; the returned function restores the prior one.
func (b *Binder) pushScope() func() {
	prior := b.scope
	b.scope = prior.Push()
	return func() { b.scope = prior }
}

// pushLoop enters a loop with fresh break and continue labels; the returned function leaves it again.
func (b *Binder) pushLoop() (*bound.Label, *bound.Label, func()) {
	b.loopIDs++
	l := loop{
		brk:  &bound.Label{Name: fmt.Sprintf("B%x", b.loopIDs)},
		cont: &bound.Label{Name: fmt.Sprintf("C%x", b.loopIDs)},
	}
	b.loops = append(b.loops, l)
	return l.brk, l.cont, func() { b.loops = b.loops[:len(b.loops)-1] }
}

// global is true if a variable declared right now is a global: it is directly inside a namespace.
func (b *Binder) global() bool {
	return b.namespace != nil && b.scope == b.namespace.Scope
}

// topLevel is true while binding statements outside of any function.
func (b *Binder) topLevel() bool {
	return b.function == nil
}

// bindType binds a type clause to a type symbol.  Unknown types are reported and bind to the error type.
func (b *Binder) bindType(node *ast.TypeClause) symbols.Type {
	contract.Require(node != nil, "node")
	name := node.Name.Ident
	if node.Param != nil {
		if name != symbols.PointerTypeName {
			b.Diag().Errorf(errors.ErrorUndefinedType.At(node), node.String())
			return types.Error
		}
		elem := b.bindType(node.Param)
		if types.IsError(elem) {
			return types.Error
		}
		return b.ctx.Types.Pointer(elem)
	}
	if ty := b.ctx.Types.Lookup(name); ty != nil {
		return ty
	}
	if glog.V(5) {
		glog.V(5).Infof("Failed to bind type '%v'", node)
	}
	b.Diag().Errorf(errors.ErrorUndefinedType.At(node), node.String())
	return types.Error
}

// bindOptionalType binds a type clause that may be omitted, in which case the type is Unit.
func (b *Binder) bindOptionalType(node *ast.TypeClause) symbols.Type {
	if node == nil {
		return types.Unit
	}
	return b.bindType(node)
}

// lookupVariable resolves a name that must denote a variable of the current function, a global, or one that is
// visible from a chained compilation.  Failures are reported and return nil.
func (b *Binder) lookupVariable(name *ast.Identifier) *symbols.Variable {
	sym, found := b.scope.TryLookup([]string{name.Ident}, nil)
	if !found {
		b.undefinedName(name, name.Ident)
		return nil
	}
	v, isvar := sym.(*symbols.Variable)
	if !isvar {
		b.Diag().Errorf(errors.ErrorExpressionMustHaveValue.At(name))
		return nil
	}
	if !v.IsGlobal() && !b.locals[v] {
		b.Diag().Errorf(errors.ErrorCantCaptureVariable.At(name), v.Name())
		return nil
	}
	return v
}

// undefinedName reports a name that can't be resolved, suggesting a visible one that is spelled similarly.
func (b *Binder) undefinedName(node diag.Diagable, name string) {
	last := name[strings.LastIndexByte(name, '.')+1:]
	b.Diag().Errorf(errors.ErrorUndefinedName.At(node), name, suggest.DidYouMean(last, b.scope.Names()))
}

// declare declares a symbol in the current scope, reporting a clash with an existing one.
func (b *Binder) declare(node diag.Diagable, sym symbols.Symbol) bool {
	if !b.scope.TryDeclare(sym) {
		b.Diag().Errorf(errors.ErrorSymbolAlreadyDeclared.At(node), sym.Name())
		return false
	}
	return true
}
