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
	"github.com/golang/glog"

	"github.com/pulumi/lumi/pkg/compiler/ast"
	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/core"
	"github.com/pulumi/lumi/pkg/compiler/errors"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
	"github.com/pulumi/lumi/pkg/diag"
)

// BoundGlobalScope is everything declared at the top-level of one compilation: its symbols, its top-level statements
// and the entry function.  Interactive sessions chain each submission onto the previous one.
type BoundGlobalScope struct {
	Previous    *BoundGlobalScope
	Diagnostics *diag.List
	Symbols     []symbols.Symbol     // the functions and global variables declared, in declaration order.
	Statements  []bound.Statement    // the bound top-level statements, in source order.
	Entry       *symbols.Function    // the entry function; synthesized if none was declared.
	Namespaces  []*symbols.Namespace // the namespaces the syntax trees declared members in.
	functions   []*pendingFunction   // the functions whose bodies BindProgram binds.
}

// BindGlobalScope declares the members of the given syntax trees and binds their top-level statements.  Syntax
// diagnostics attached to the trees are carried over into the result's diagnostics.
func BindGlobalScope(previous *BoundGlobalScope, ctx *core.Context, trees []*ast.SyntaxTree) *BoundGlobalScope {
	diags := diag.NewList(diag.FormatOptions{})
	ctx.Namespaces = symbols.NewNamespaces(nil)
	ctx.Namespaces.SetRoot(createParentScopes(previous, ctx.Namespaces.Root(), ctx.Interactive()))
	if ctx.Interactive() {
		for _, fn := range Builtins() {
			ctx.Namespaces.GetOrCreate(fn.Namespace()).TryDeclare(fn)
		}
	}

	res := &BoundGlobalScope{Previous: previous, Diagnostics: diags}

	// Create every namespace up front, ancestors included, so that members can refer to each other in any order.
	binders := make([]*Binder, len(trees))
	for i, tree := range trees {
		for _, d := range tree.Diagnostics {
			diags.Logf(syntaxSeverity(d.Severity), diag.RawMessage(d.Message).At(d))
		}
		path := tree.ProjectPath
		if path == "" {
			path = ctx.Opts.ModuleName
		}
		ns := ctx.Namespaces.GetOrCreate(path)
		if glog.V(3) {
			glog.V(3).Infof("Binding syntax tree %v into namespace %v", tree.File, ns.Path)
		}
		binders[i] = newBinder(ctx, diags, ns.Scope, nil)
		binders[i].namespace = ns
		res.Namespaces = append(res.Namespaces, ns)
	}

	// Struct names come first, then their fields, so that struct fields and signatures may mention any struct.
	structs := make(map[*ast.StructDeclaration]*symbols.StructType)
	eachMember(trees, binders, func(b *Binder, m ast.Member) {
		if node, isstruct := m.(*ast.StructDeclaration); isstruct {
			st := symbols.NewStructType(node.Name.Ident, types.Any, node)
			if !ctx.Types.DeclareStruct(st) {
				b.Diag().Errorf(errors.ErrorSymbolAlreadyDeclared.At(node.Name), node.Name.Ident)
				return
			}
			structs[node] = st
		}
	})
	eachMember(trees, binders, func(b *Binder, m ast.Member) {
		if node, isstruct := m.(*ast.StructDeclaration); isstruct && structs[node] != nil {
			b.bindStructFields(node, structs[node])
		}
	})
	eachMember(trees, binders, func(b *Binder, m ast.Member) {
		if node, isuse := m.(*ast.UseStatement); isuse {
			b.bindUse(node)
		}
	})
	eachMember(trees, binders, func(b *Binder, m ast.Member) {
		if node, isfunc := m.(*ast.FunctionDeclaration); isfunc {
			if fn := b.declareFunction(node, b.namespace.Path+"."+node.Name.Ident, true); fn != nil {
				res.Symbols = append(res.Symbols, fn)
				res.functions = append(res.functions, &pendingFunction{fn: fn, decl: node, scope: b.scope})
			}
		}
	})
	eachMember(trees, binders, func(b *Binder, m ast.Member) {
		switch node := m.(type) {
		case *ast.VariableDeclaration:
			res.Statements = append(res.Statements, b.bindVariableDeclaration(node))
		case *ast.ReplStatement:
			res.Statements = append(res.Statements, b.bindStatement(node.Statement))
		}
	})
	for _, b := range binders {
		for _, v := range b.globals {
			res.Symbols = append(res.Symbols, v)
		}
		for _, pf := range b.nested {
			// Functions declared by top-level statements stay visible to later submissions.
			if pf.scope == b.namespace.Scope {
				res.Symbols = append(res.Symbols, pf.fn)
			}
			res.functions = append(res.functions, pf)
		}
	}

	res.Entry = selectEntry(ctx, diags, res.Symbols)
	checkMangledNames(ctx, diags, res.Entry, res.functions)
	return res
}

// checkMangledNames reports functions that would be emitted under a name another function of the compilation already
// has.  Extern functions may share a name, since they all declare the same external function.
func checkMangledNames(ctx *core.Context, diags diag.Sink, entry *symbols.Function, fns []*pendingFunction) {
	seen := make(map[string]*symbols.Function)
	if ctx.Interactive() && entry != nil {
		seen[entry.MangledName()] = entry
	}
	for _, pf := range fns {
		name := pf.fn.MangledName()
		prior, has := seen[name]
		if !has {
			seen[name] = pf.fn
			continue
		}
		if prior != pf.fn && !(prior.Meta.Extern && pf.fn.Meta.Extern) {
			diags.Errorf(errors.ErrorMangledNameConflict.At(pf.decl.Name), pf.fn.Path(), name, prior.Path())
		}
	}
}

// eachMember visits the members of every tree with the tree's binder.
func eachMember(trees []*ast.SyntaxTree, binders []*Binder, visit func(b *Binder, m ast.Member)) {
	for i, tree := range trees {
		for _, m := range tree.Members {
			visit(binders[i], m)
		}
	}
}

func syntaxSeverity(sev string) diag.Severity {
	switch sev {
	case "warning":
		return diag.Warning
	case "style":
		return diag.Style
	}
	return diag.Error
}

// createParentScopes builds the scope chain a compilation's namespaces are parented to: a root scope holding the
// builtins of interactive sessions, and one scope per previous submission, oldest outermost, so that newer
// declarations shadow older ones.
func createParentScopes(previous *BoundGlobalScope, root *symbols.Scope, interactive bool) *symbols.Scope {
	var chain []*BoundGlobalScope
	for p := previous; p != nil; p = p.Previous {
		chain = append(chain, p)
	}

	parent := root
	if interactive {
		for _, fn := range Builtins() {
			parent.TryDeclare(fn)
		}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		parent = parent.Push()
		for _, sym := range chain[i].Symbols {
			parent.TryDeclare(sym)
		}
	}
	return parent
}

// selectEntry picks the entry function among the declared ones.  Interactive sessions always get a synthesized entry
// returning Any, which runs the submission's top-level statements.
func selectEntry(ctx *core.Context, diags diag.Sink, syms []symbols.Symbol) *symbols.Function {
	if !ctx.Interactive() {
		var entry *symbols.Function
		invalid := false
		for _, sym := range syms {
			fn, isfn := sym.(*symbols.Function)
			if !isfn || !fn.Meta.Entry {
				continue
			}
			at := entryNode(fn)
			if len(fn.Params) != 0 || fn.Return != types.Unit {
				diags.Errorf(errors.ErrorInvalidEntrySignature.At(at), fn.Path())
				invalid = true
				continue
			}
			if prior := ctx.AddEntry(fn); prior != nil {
				diags.Errorf(errors.ErrorMultipleEntryFunctions.At(at), prior.Path())
				continue
			}
			entry = fn
		}
		if entry != nil {
			return entry
		}
		if !invalid {
			diags.Errorf(errors.ErrorNoMainFunction)
		}
	}

	ret := types.Unit
	if ctx.Interactive() {
		ret = types.Any
	}
	return symbols.NewFunction(symbols.EntryMangledName, nil, ret, symbols.EntryMangledName, nil,
		symbols.Metadata{Entry: true})
}

func entryNode(fn *symbols.Function) diag.Diagable {
	if decl, isdecl := fn.Node.(*ast.FunctionDeclaration); isdecl {
		return decl.Name
	}
	return fn.Node
}

// bindStructFields binds the fields of a struct type whose name has already been declared.
func (b *Binder) bindStructFields(node *ast.StructDeclaration, st *symbols.StructType) {
	for _, f := range node.Fields {
		if st.FieldIndex(f.Name.Ident) >= 0 {
			b.Diag().Errorf(errors.ErrorSymbolAlreadyDeclared.At(f.Name), f.Name.Ident)
			continue
		}
		st.Fields = append(st.Fields, &symbols.Field{Name: f.Name.Ident, Type: b.bindType(f.Type)})
	}
}

// declareFunction binds a function's signature and annotations and declares it in the current scope.  Only top-level
// functions may be entries.  It returns nil if the function couldn't be declared.
func (b *Binder) declareFunction(node *ast.FunctionDeclaration, path string, topLevel bool) *symbols.Function {
	var meta symbols.Metadata
	for _, a := range node.Annotations {
		switch name := a.Name.Ident; {
		case name == "inline" && a.Value == nil:
			meta.Inline = true
		case name == "extern" && a.Value == nil:
			meta.Extern = true
		case name == "entry" && a.Value == nil && topLevel:
			meta.Entry = true
		case name == "cname" && a.Value != nil:
			if s, isstr := a.Value.Value.(string); isstr && s != "" {
				meta.CName = s
				continue
			}
			b.Diag().Errorf(errors.ErrorInvalidAnnotation.At(a), name)
		default:
			b.Diag().Errorf(errors.ErrorInvalidAnnotation.At(a), name)
		}
	}

	var params []*symbols.Variable
	seen := make(map[string]bool)
	for _, p := range node.Params {
		name := p.Name.Ident
		if seen[name] {
			b.Diag().Errorf(errors.ErrorParamAlreadyExists.At(p.Name), name)
			continue
		}
		seen[name] = true
		params = append(params, symbols.NewParameter(name, b.bindType(p.Type), p))
	}

	fn := symbols.NewFunction(node.Name.Ident, params, b.bindOptionalType(node.ReturnType), path, node, meta)
	if !b.declare(node.Name, fn) {
		return nil
	}
	if glog.V(5) {
		glog.V(5).Infof("Declared function %v as %v", fn, fn.MangledName())
	}
	return fn
}
