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

// Package emit translates lowered programs into LLVM IR modules.
package emit

import (
	"strconv"

	"github.com/golang/glog"
	"github.com/iancoleman/strcase"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	irtypes "github.com/llir/llvm/ir/types"
	"github.com/pkg/errors"

	"github.com/pulumi/lumi/pkg/compiler/binder"
	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/core"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/util/contract"
)

const (
	// InitFunctionName is the name of the module constructor that initializes the globals.
	InitFunctionName = ".init"
	// ConstructorPriority is the priority the init function is registered with.
	ConstructorPriority = 65535
)

// Emit translates a lowered program, together with the programs it chains onto, into a module.  The program must be
// free of errors.  Only the entry of the last program is emitted; the globals and functions of previous ones are
// carried over.
func Emit(prog *binder.BoundProgram, opts *core.Options) (mod *ir.Module, err error) {
	contract.Require(prog != nil, "prog")
	contract.Require(opts != nil, "opts")
	if prog.Diagnostics.HasErrors() {
		return nil, errors.New("cannot emit a program with errors")
	}

	defer func() {
		if r := recover(); r != nil {
			ie, isinternal := r.(*InternalError)
			if !isinternal {
				panic(r)
			}
			mod, err = nil, errors.Wrapf(ie, "emitting module %v", opts.ModuleName)
		}
	}()

	if glog.V(3) {
		glog.V(3).Infof("Emitting module %v", opts.ModuleName)
		defer glog.V(3).Infof("Emitting module %v completed", opts.ModuleName)
	}

	e := &emitter{
		mod:     ir.NewModule(),
		structs: make(map[*symbols.StructType]*irtypes.StructType),
		globals: make(map[*symbols.Variable]*ir.Global),
		folded:  make(map[*symbols.Variable]bool),
		funcs:   make(map[string]*ir.Func),
		defined: make(map[string]bool),
		strs:    make(map[string]constant.Constant),
	}
	e.mod.SourceFilename = opts.ModuleName
	e.mod.TargetTriple = opts.Target
	e.emitProgram(prog)
	return e.mod, nil
}

// emitter holds the module being built.
type emitter struct {
	mod     *ir.Module
	structs map[*symbols.StructType]*irtypes.StructType
	globals map[*symbols.Variable]*ir.Global
	folded  map[*symbols.Variable]bool // globals whose initial value is part of their definition.
	funcs   map[string]*ir.Func        // every function of the module, declared or defined, by name.
	defined map[string]bool
	strs    map[string]constant.Constant
}

func (e *emitter) emitProgram(prog *binder.BoundProgram) {
	var chain []*binder.BoundProgram
	for p := prog; p != nil; p = p.Previous {
		chain = append([]*binder.BoundProgram{p}, chain...)
	}

	e.emitStructs(prog.Structs)

	var inits []bound.Statement
	for _, p := range chain {
		for _, g := range p.Globals {
			e.emitGlobal(g)
		}
		if p.Init != nil {
			inits = append(inits, p.Init.Statements...)
		}
	}

	for _, p := range chain {
		for _, fb := range p.Functions {
			if fb.Function.Meta.Entry && p != prog {
				continue
			}
			e.emitFunction(fb)
		}
	}

	if len(inits) > 0 {
		init := e.define(InitFunctionName, InitFunctionName, irtypes.Void)
		init.Linkage = enum.LinkageInternal
		newFunctionEmitter(e, nil, init).emitBody(inits)
		e.addConstructor(init)
	}
}

// emitStructs defines a layout for every struct type.  All layouts are named before any is filled in, so that fields
// may point to any struct, including their own.
func (e *emitter) emitStructs(structs []*symbols.StructType) {
	taken := make(map[string]bool)
	for _, st := range structs {
		name := strcase.ToCamel(st.Name())
		for base, i := name, 1; taken[name]; i++ {
			name = base + "." + strconv.Itoa(i)
		}
		taken[name] = true
		layout := irtypes.NewStruct()
		e.mod.NewTypeDef(name, layout)
		e.structs[st] = layout
	}
	for _, st := range structs {
		layout := e.structs[st]
		for _, f := range st.Fields {
			layout.Fields = append(layout.Fields, e.typ("", f.Type))
		}
	}
}

func (e *emitter) structType(fn string, st *symbols.StructType) *irtypes.StructType {
	layout, has := e.structs[st]
	if !has {
		failf(fn, "struct %v has no layout", st.Name())
	}
	return layout
}

// emitGlobal defines a global.  Read-only globals with a constant initializer get that value directly; all other
// globals start out zeroed and are assigned by the init function.
func (e *emitter) emitGlobal(v *symbols.Variable) {
	ty := e.typ("", v.Ty)
	var init constant.Constant = constant.NewZeroInitializer(ty)
	if v.ReadOnly && v.Constant != nil {
		if c := e.constant(v.Constant.Value, v.Ty); c != nil {
			init = c
			e.folded[v] = true
		}
	}
	g := e.mod.NewGlobalDef(v.MangledName(), init)
	g.Linkage = enum.LinkageInternal
	e.globals[v] = g
}

// constant returns the IR constant for a folded value, or nil if the type has no constant form.
func (e *emitter) constant(value interface{}, ty symbols.Type) constant.Constant {
	switch v := value.(type) {
	case bool:
		return constant.NewBool(v)
	case int64:
		if it, isint := e.typ("", ty).(*irtypes.IntType); isint {
			return constant.NewInt(it, v)
		}
	case uint64:
		if it, isint := e.typ("", ty).(*irtypes.IntType); isint {
			return constant.NewInt(it, int64(v))
		}
	case float64:
		if ft, isfloat := e.typ("", ty).(*irtypes.FloatType); isfloat {
			if ft.Kind == irtypes.FloatKindFloat {
				v = float64(float32(v))
			}
			return constant.NewFloat(ft, v)
		}
	case string:
		return e.stringConstant(v)
	}
	return nil
}

// stringConstant returns a pointer to a private, NUL-terminated copy of the text.  Equal texts share a constant.
func (e *emitter) stringConstant(text string) constant.Constant {
	if c, has := e.strs[text]; has {
		return c
	}
	data := constant.NewCharArrayFromString(text + "\x00")
	g := e.mod.NewGlobalDef(".str."+strconv.Itoa(len(e.strs)), data)
	g.Immutable = true
	g.Linkage = enum.LinkagePrivate
	g.UnnamedAddr = enum.UnnamedAddrUnnamedAddr
	zero := constant.NewInt(irtypes.I64, 0)
	ref := constant.NewGetElementPtr(data.Typ, g, zero, zero)
	ref.InBounds = true
	e.strs[text] = ref
	return ref
}

func (e *emitter) global(fn string, v *symbols.Variable) *ir.Global {
	g, has := e.globals[v]
	if !has {
		failf(fn, "global %v was never defined", v.Path())
	}
	return g
}

// addConstructor registers a function to run before the entry, through `llvm.global_ctors`.
func (e *emitter) addConstructor(fn *ir.Func) {
	entry := irtypes.NewStruct(irtypes.I32, irtypes.NewPointer(fn.Sig), bytePtr)
	ctor := constant.NewStruct(entry, constant.NewInt(irtypes.I32, ConstructorPriority), fn, constant.NewNull(bytePtr))
	g := e.mod.NewGlobalDef("llvm.global_ctors", constant.NewArray(irtypes.NewArray(1, entry), ctor))
	g.Linkage = enum.LinkageAppending
}

// emitFunction declares extern functions and defines all others.
func (e *emitter) emitFunction(fb *binder.FunctionBody) {
	sym := fb.Function
	name := sym.MangledName()
	if glog.V(5) {
		glog.V(5).Infof("Emitting function %v as %v", sym.Path(), name)
	}
	if fb.Body == nil {
		e.declare(sym)
		return
	}

	params := make([]*ir.Param, len(sym.Params))
	for i, p := range sym.Params {
		params[i] = ir.NewParam(p.RealName, e.typ(name, p.Ty))
	}
	fn := e.define(sym.Path(), name, e.returnType(sym), params...)
	if sym.Meta.Inline {
		fn.FuncAttrs = append(fn.FuncAttrs, enum.FuncAttrAlwaysInline)
	}
	newFunctionEmitter(e, sym, fn).emitBody(fb.Body.Statements)
}

// define creates the function a body is emitted into.  A function that calls made known before it is defined keeps
// its identity, so those calls refer to the definition.  Every name can only be defined once.
func (e *emitter) define(path, name string, ret irtypes.Type, params ...*ir.Param) *ir.Func {
	if e.defined[name] {
		failf(name, "%v is defined twice; the second definition is %v", name, path)
	}
	e.defined[name] = true

	fn, has := e.funcs[name]
	if !has {
		fn = e.mod.NewFunc(name, ret, params...)
		e.funcs[name] = fn
		return fn
	}
	ptypes := make([]irtypes.Type, len(params))
	for i, p := range params {
		ptypes[i] = p.Typ
	}
	if !fn.Sig.Equal(irtypes.NewFunc(ret, ptypes...)) {
		failf(name, "%v was used as %v before being defined as %v", path, fn.Sig, irtypes.NewFunc(ret, ptypes...))
	}
	fn.Params = params
	return fn
}

// declare makes a function callable, declaring it unless the module already has it.
func (e *emitter) declare(sym *symbols.Function) *ir.Func {
	name := sym.MangledName()
	params := make([]irtypes.Type, len(sym.Params))
	for i, p := range sym.Params {
		params[i] = e.typ(name, p.Ty)
	}
	return e.declareFunc(name, e.returnType(sym), params...)
}

func (e *emitter) declareFunc(name string, ret irtypes.Type, params ...irtypes.Type) *ir.Func {
	sig := irtypes.NewFunc(ret, params...)
	if fn, has := e.funcs[name]; has {
		if !fn.Sig.Equal(sig) {
			failf(name, "function is used both as %v and as %v", fn.Sig, sig)
		}
		return fn
	}
	refs := make([]*ir.Param, len(params))
	for i, p := range params {
		refs[i] = ir.NewParam("", p)
	}
	fn := e.mod.NewFunc(name, ret, refs...)
	e.funcs[name] = fn
	return fn
}

// returnType is the IR result type of a function.  Entry functions returning nothing return an i32 exit status.
func (e *emitter) returnType(sym *symbols.Function) irtypes.Type {
	ret := e.typ(sym.MangledName(), sym.Return)
	if sym.Meta.Entry && ret.Equal(irtypes.Void) {
		return irtypes.I32
	}
	return ret
}

// The C runtime functions emitted code relies on.
var runtime = map[string]struct {
	ret    irtypes.Type
	params []irtypes.Type
}{
	"calloc": {bytePtr, []irtypes.Type{irtypes.I64, irtypes.I64}},
	"malloc": {bytePtr, []irtypes.Type{irtypes.I64}},
	"strcat": {bytePtr, []irtypes.Type{bytePtr, bytePtr}},
	"strcmp": {irtypes.I32, []irtypes.Type{bytePtr, bytePtr}},
	"strcpy": {bytePtr, []irtypes.Type{bytePtr, bytePtr}},
	"strlen": {irtypes.I64, []irtypes.Type{bytePtr}},
}

// runtimeFunction declares a C runtime function on first use.
func (e *emitter) runtimeFunction(name string) *ir.Func {
	sig, has := runtime[name]
	contract.Assertf(has, "Unknown runtime function %v", name)
	return e.declareFunc(name, sig.ret, sig.params...)
}
