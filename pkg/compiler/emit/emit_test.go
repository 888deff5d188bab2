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

package emit_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	irtypes "github.com/llir/llvm/ir/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulumi/lumi/pkg/compiler/ast"
	"github.com/pulumi/lumi/pkg/compiler/binder"
	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/core"
	"github.com/pulumi/lumi/pkg/compiler/emit"
	compilererrors "github.com/pulumi/lumi/pkg/compiler/errors"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
	"github.com/pulumi/lumi/pkg/diag"
	"github.com/pulumi/lumi/pkg/encoding"
)

func options() *core.Options {
	opts := core.DefaultOptions()
	opts.ModuleName = "test"
	return opts
}

func function(path string, ret symbols.Type, params ...*symbols.Variable) *symbols.Function {
	name := path[strings.LastIndexByte(path, '.')+1:]
	return symbols.NewFunction(name, params, ret, path, nil, symbols.Metadata{})
}

func read(v *symbols.Variable) *bound.VariableExpression { return &bound.VariableExpression{Variable: v} }

func ret(e bound.Expression) *bound.ReturnStatement { return &bound.ReturnStatement{Expression: e} }

func binary(l bound.Expression, op string, r bound.Expression) *bound.BinaryExpression {
	return &bound.BinaryExpression{Left: l, Operator: bound.BindBinaryOperator(op, l.Type(), r.Type()), Right: r}
}

func def(fn *symbols.Function, stmts ...bound.Statement) *binder.FunctionBody {
	return &binder.FunctionBody{Function: fn, Body: &bound.BlockStatement{Statements: stmts}}
}

func program(fns ...*binder.FunctionBody) *binder.BoundProgram {
	return &binder.BoundProgram{
		Diagnostics: diag.NewList(diag.FormatOptions{}),
		Functions:   fns,
		Init:        &bound.BlockStatement{},
	}
}

func emitModule(t *testing.T, prog *binder.BoundProgram) *ir.Module {
	mod, err := emit.Emit(prog, options())
	require.NoError(t, err)
	return mod
}

func lookup(t *testing.T, mod *ir.Module, name string) *ir.Func {
	for _, fn := range mod.Funcs {
		if fn.Name() == name {
			return fn
		}
	}
	require.Failf(t, "missing function", "no function %v in:\n%v", name, mod)
	return nil
}

func functionNames(mod *ir.Module) []string {
	var names []string
	for _, fn := range mod.Funcs {
		names = append(names, fn.Name())
	}
	return names
}

func blockNames(fn *ir.Func) []string {
	var names []string
	for _, b := range fn.Blocks {
		names = append(names, b.Name())
	}
	return names
}

// kinds lists the instructions of a block by their type name, followed by the terminator's.
func kinds(b *ir.Block) []string {
	var res []string
	for _, inst := range b.Insts {
		res = append(res, strings.TrimPrefix(fmt.Sprintf("%T", inst), "*ir."))
	}
	return append(res, strings.TrimPrefix(fmt.Sprintf("%T", b.Term), "*ir."))
}

func returned(t *testing.T, b *ir.Block) *ir.TermRet {
	r, isret := b.Term.(*ir.TermRet)
	require.True(t, isret, "block %v ends in %T", b.Name(), b.Term)
	return r
}

func TestEmitWhileLoop(t *testing.T) {
	t.Parallel()

	const src = `
kind: SyntaxTree
projectPath: app
members:
  - kind: FunctionDeclaration
    name: main
    annotations: [{name: entry}]
    body:
      kind: BlockStatement
      statements:
        - {kind: VariableDeclaration, keyword: var, name: i, initializer: {kind: LiteralExpression, value: 0}}
        - kind: WhileStatement
          condition:
            kind: BinaryExpression
            left: {kind: NameExpression, name: i}
            operator: "<"
            right: {kind: LiteralExpression, value: 3}
          body:
            kind: BlockStatement
            statements:
              - kind: ExpressionStatement
                expression:
                  kind: AssignmentExpression
                  target: {kind: NameExpression, name: i}
                  value:
                    kind: BinaryExpression
                    left: {kind: NameExpression, name: i}
                    operator: "+"
                    right: {kind: LiteralExpression, value: 1}
`
	tr, err := encoding.DecodeSyntaxTree(encoding.YAML, []byte(src))
	require.NoError(t, err)
	ctx := core.NewContext(options())
	global := binder.BindGlobalScope(nil, ctx, []*ast.SyntaxTree{tr})
	require.False(t, global.Diagnostics.HasErrors())
	prog := binder.BindProgram(nil, ctx, global)
	require.False(t, prog.Diagnostics.HasErrors())

	mod := emitModule(t, prog)
	assert.Equal(t, "test", mod.SourceFilename)
	main := lookup(t, mod, "main")
	assert.True(t, main.Sig.RetType.Equal(irtypes.I32))
	assert.Equal(t, []string{"entry", "C1", "B1.else", "B1"}, blockNames(main))
	assert.Equal(t, []string{"InstAlloca", "InstStore", "TermBr"}, kinds(main.Blocks[0]))
	assert.Equal(t, []string{"InstLoad", "InstICmp", "TermCondBr"}, kinds(main.Blocks[1]))
	assert.Equal(t, []string{"InstLoad", "InstAdd", "InstStore", "TermBr"}, kinds(main.Blocks[2]))
	assert.Equal(t, []string{"TermRet"}, kinds(main.Blocks[3]))

	cmp := main.Blocks[1].Insts[1].(*ir.InstICmp)
	assert.Equal(t, enum.IPredSLT, cmp.Pred)
	exit := returned(t, main.Blocks[3])
	assert.Equal(t, constant.NewInt(irtypes.I32, 0).Ident(), exit.X.Ident())

	text := mod.String()
	assert.Contains(t, text, "define i32 @main()")
	assert.Contains(t, text, "%i = alloca i64")
}

func TestEmitParametersAndWidening(t *testing.T) {
	t.Parallel()

	a := symbols.NewParameter("a", types.I32, nil)
	b := symbols.NewParameter("b", types.Int, nil)
	add := function("app.add", types.Int, a, b)

	mod := emitModule(t, program(def(add, ret(binary(read(a), "+", read(b))))))
	fn := lookup(t, mod, "app.add$I32$Int")
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name())
	assert.True(t, fn.Params[0].Typ.Equal(irtypes.I32))
	assert.True(t, fn.Params[1].Typ.Equal(irtypes.I64))
	assert.True(t, fn.Sig.RetType.Equal(irtypes.I64))

	entry := fn.Blocks[0]
	assert.Equal(t, []string{
		"InstAlloca", "InstAlloca", "InstStore", "InstStore",
		"InstLoad", "InstSExt", "InstLoad", "InstAdd", "TermRet",
	}, kinds(entry))
	slot := entry.Insts[0].(*ir.InstAlloca)
	assert.Equal(t, "a.addr", slot.Name())
	assert.True(t, slot.ElemType.Equal(irtypes.I32))
	assert.Equal(t, entry.Insts[7], returned(t, entry).X)
}

func TestEmitStrings(t *testing.T) {
	t.Parallel()

	name := symbols.NewParameter("name", types.String, nil)
	greet := function("app.greet", types.Bool, name)
	hi := bound.NewLiteral("hi ", types.String)

	mod := emitModule(t, program(def(greet, ret(binary(binary(hi, "+", read(name)), "==", read(name))))))
	require.Len(t, mod.Globals, 1)
	str := mod.Globals[0]
	assert.Equal(t, ".str.0", str.Name())
	assert.True(t, str.Immutable)
	assert.Equal(t, enum.LinkagePrivate, str.Linkage)
	assert.True(t, str.ContentType.Equal(irtypes.NewArray(4, irtypes.I8)))

	fn := lookup(t, mod, "app.greet$String")
	assert.Equal(t, []string{
		"InstAlloca", "InstStore", "InstLoad",
		"InstCall", "InstCall", "InstAdd", "InstAdd", "InstCall", "InstCall", "InstCall",
		"InstLoad", "InstCall", "InstICmp", "TermRet",
	}, kinds(fn.Blocks[0]))
	assert.Equal(t, []string{"app.greet$String", "strlen", "malloc", "strcpy", "strcat", "strcmp"}, functionNames(mod))
	for _, rt := range mod.Funcs[1:] {
		assert.Empty(t, rt.Blocks, "%v is only declared", rt.Name())
	}
}

func TestEmitGlobalsAndInit(t *testing.T) {
	t.Parallel()

	x := symbols.NewGlobalVariable("x", types.Int, true, &symbols.Constant{Value: int64(42)}, "app.x", nil)
	y := symbols.NewGlobalVariable("y", types.Int, false, nil, "app.y", nil)
	entry := symbols.NewFunction("main", nil, types.Unit, "main", nil, symbols.Metadata{Entry: true})

	prog := program(def(entry))
	prog.Entry = entry
	prog.Globals = []*symbols.Variable{x, y}
	prog.Init = &bound.BlockStatement{Statements: []bound.Statement{
		&bound.VariableDeclaration{Variable: x, Initializer: bound.NewLiteral(int64(42), types.Int)},
		&bound.VariableDeclaration{Variable: y, Initializer: binary(read(x), "+", bound.NewLiteral(int64(1), types.Int))},
	}}

	mod := emitModule(t, prog)
	globals := make(map[string]*ir.Global)
	for _, g := range mod.Globals {
		globals[g.Name()] = g
	}
	require.Contains(t, globals, "app.x")
	assert.Equal(t, enum.LinkageInternal, globals["app.x"].Linkage)
	assert.Equal(t, constant.NewInt(irtypes.I64, 42).Ident(), globals["app.x"].Init.Ident())
	require.Contains(t, globals, "app.y")
	assert.IsType(t, &constant.ZeroInitializer{}, globals["app.y"].Init)
	require.Contains(t, globals, "llvm.global_ctors")
	assert.Equal(t, enum.LinkageAppending, globals["llvm.global_ctors"].Linkage)

	assert.Equal(t, []string{"main", emit.InitFunctionName}, functionNames(mod))
	init := lookup(t, mod, emit.InitFunctionName)
	assert.Equal(t, enum.LinkageInternal, init.Linkage)
	// The folded global isn't stored again.
	assert.Equal(t, []string{"InstLoad", "InstAdd", "InstStore", "TermRet"}, kinds(init.Blocks[0]))
	store := init.Blocks[0].Insts[2].(*ir.InstStore)
	assert.Equal(t, globals["app.y"], store.Dst)
}

func TestEmitStructs(t *testing.T) {
	t.Parallel()

	point := symbols.NewStructType("point", types.Any, nil)
	point.Fields = []*symbols.Field{{Name: "x", Type: types.Int}, {Name: "y", Type: types.Double}}
	origin := function("app.origin", point)
	p := symbols.NewParameter("p", point, nil)
	getY := function("app.getY", types.Double, p)

	prog := program(
		def(origin, ret(&bound.StructInitialization{
			Ty:     point,
			Fields: []bound.Expression{bound.NewLiteral(int64(1), types.Int), nil},
		})),
		def(getY, ret(&bound.StructFieldAccess{Struct: read(p), Field: 1})),
	)
	prog.Structs = []*symbols.StructType{point}

	mod := emitModule(t, prog)
	require.Len(t, mod.TypeDefs, 1)
	layout, isstruct := mod.TypeDefs[0].(*irtypes.StructType)
	require.True(t, isstruct)
	assert.Equal(t, "Point", layout.Name())
	require.Len(t, layout.Fields, 2)
	assert.True(t, layout.Fields[0].Equal(irtypes.I64))
	assert.True(t, layout.Fields[1].Equal(irtypes.Double))

	fn := lookup(t, mod, "app.origin")
	assert.True(t, fn.Sig.RetType.Equal(irtypes.NewPointer(layout)))
	// Only the initialized field is stored; calloc zeroed the rest.
	assert.Equal(t, []string{"InstCall", "InstBitCast", "InstGetElementPtr", "InstStore", "TermRet"}, kinds(fn.Blocks[0]))
	assert.Equal(t, fn.Blocks[0].Insts[1], returned(t, fn.Blocks[0]).X)

	fn = lookup(t, mod, "app.getY$point")
	assert.Equal(t, []string{
		"InstAlloca", "InstStore", "InstLoad", "InstGetElementPtr", "InstLoad", "TermRet",
	}, kinds(fn.Blocks[0]))
	field := fn.Blocks[0].Insts[3].(*ir.InstGetElementPtr)
	require.Len(t, field.Indices, 2)
	assert.Equal(t, constant.NewInt(irtypes.I32, 1).Ident(), field.Indices[1].Ident())
	assert.Equal(t, []string{"app.origin", "calloc", "app.getY$point"}, functionNames(mod))
}

func TestEmitPointerArrays(t *testing.T) {
	t.Parallel()

	ptr := symbols.NewPointerType(types.I32, types.Any)
	arr := symbols.NewLocalVariable("arr", ptr, true, nil, nil)
	main := function("app.first", types.I32)
	prog := program(def(main,
		&bound.VariableDeclaration{Variable: arr, Initializer: &bound.PointerArrayInitialization{
			Ty:       ptr,
			Elements: []bound.Expression{bound.NewLiteral(int64(7), types.I32)},
		}},
		ret(&bound.PointerAccess{Pointer: read(arr), Index: bound.NewLiteral(int64(0), types.Int)}),
	))

	fn := lookup(t, emitModule(t, prog), "app.first")
	entry := fn.Blocks[0]
	assert.Equal(t, []string{
		"InstAlloca", "InstCall", "InstBitCast", "InstGetElementPtr", "InstStore", "InstStore",
		"InstLoad", "InstGetElementPtr", "InstLoad", "TermRet",
	}, kinds(entry))
	slot := entry.Insts[0].(*ir.InstAlloca)
	assert.Equal(t, "arr", slot.Name())
	assert.True(t, slot.ElemType.Equal(irtypes.NewPointer(irtypes.I32)))
	alloc := entry.Insts[1].(*ir.InstCall)
	require.Len(t, alloc.Args, 2)
	assert.Equal(t, constant.NewInt(irtypes.I64, 1).Ident(), alloc.Args[0].Ident())
}

func TestEmitConditionalJumps(t *testing.T) {
	t.Parallel()

	b := symbols.NewParameter("b", types.Bool, nil)
	f := function("app.f", types.Int, b)
	l1 := &bound.Label{Name: "L1"}
	prog := program(def(f,
		&bound.ConditionalGotoStatement{Label: l1, Condition: read(b), JumpIfTrue: true},
		ret(bound.NewLiteral(int64(1), types.Int)),
		&bound.LabelStatement{Label: l1},
		ret(bound.NewLiteral(int64(2), types.Int)),
	))

	fn := lookup(t, emitModule(t, prog), "app.f$Bool")
	assert.Equal(t, []string{"entry", "L1.else", "L1"}, blockNames(fn))
	br, iscond := fn.Blocks[0].Term.(*ir.TermCondBr)
	require.True(t, iscond)
	assert.Equal(t, fn.Blocks[2], br.TargetTrue)
	assert.Equal(t, fn.Blocks[1], br.TargetFalse)
	assert.Equal(t, constant.NewInt(irtypes.I64, 1).Ident(), returned(t, fn.Blocks[1]).X.Ident())
	assert.Equal(t, constant.NewInt(irtypes.I64, 2).Ident(), returned(t, fn.Blocks[2]).X.Ident())
}

func TestEmitCasts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to symbols.Type
		expected []string
	}{
		{types.Int, types.Any, []string{"InstIntToPtr"}},
		{types.I32, types.Any, []string{"InstSExt", "InstIntToPtr"}},
		{types.U8, types.Any, []string{"InstZExt", "InstIntToPtr"}},
		{types.Bool, types.Any, []string{"InstZExt", "InstIntToPtr"}},
		{types.Double, types.Any, []string{"InstBitCast", "InstIntToPtr"}},
		{types.Float, types.Any, []string{"InstFPExt", "InstBitCast", "InstIntToPtr"}},
		{types.String, types.Any, nil},
		{types.Any, types.String, nil},
		{types.Int, types.U64, nil},
		{types.Int, types.I8, []string{"InstTrunc"}},
		{types.U16, types.Int, []string{"InstZExt"}},
		{types.I16, types.U32, []string{"InstSExt"}},
		{types.Bool, types.Int, []string{"InstZExt"}},
		{types.Int, types.Double, []string{"InstSIToFP"}},
		{types.U32, types.Float, []string{"InstUIToFP"}},
		{types.Double, types.I32, []string{"InstFPToSI"}},
		{types.Double, types.U8, []string{"InstFPToUI"}},
		{types.Double, types.Float, []string{"InstFPTrunc"}},
		{types.Float, types.Double, []string{"InstFPExt"}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.from.Name()+"To"+c.to.Name(), func(t *testing.T) {
			t.Parallel()

			v := symbols.NewParameter("v", c.from, nil)
			f := function("app.cast", c.to, v)
			prog := program(def(f, ret(&bound.CastExpression{Ty: c.to, Expression: read(v)})))
			fn := lookup(t, emitModule(t, prog), f.MangledName())
			insts := kinds(fn.Blocks[0])
			require.True(t, len(insts) >= 4)

			// Skip the parameter's slot, its spill and the load; the terminator returns the last value computed.
			var casts []string
			casts = append(casts, insts[3:len(insts)-1]...)
			assert.Equal(t, c.expected, casts)
			assert.True(t, returned(t, fn.Blocks[0]).X.Type().Equal(fn.Sig.RetType))
		})
	}
}

func TestEveryOperatorHasAnInstruction(t *testing.T) {
	t.Parallel()

	operands := []symbols.Type{
		types.Bool, types.I8, types.I16, types.I32, types.Int, types.U8, types.U16, types.U32, types.U64,
		types.Float, types.Double, types.String,
	}
	syntax := []string{"+", "-", "*", "/", "%", "&", "|", "&&", "||", "<", ">", "==", ">=", "<=", "!=", "===", "!=="}

	for _, left := range operands {
		for _, right := range operands {
			for _, op := range syntax {
				operator := bound.BindBinaryOperator(op, left, right)
				if operator == nil {
					continue
				}

				x, y := symbols.NewParameter("x", left, nil), symbols.NewParameter("y", right, nil)
				f := function("app.op", operator.Result, x, y)
				body := ret(&bound.BinaryExpression{Left: read(x), Operator: operator, Right: read(y)})
				mod, err := emit.Emit(program(def(f, body)), options())
				if !assert.NoError(t, err, "%v %v %v", left, op, right) {
					continue
				}
				fn := lookup(t, mod, f.MangledName())
				r, isret := fn.Blocks[len(fn.Blocks)-1].Term.(*ir.TermRet)
				assert.True(t, isret && r.X != nil, "%v %v %v doesn't return its result", left, op, right)
			}
		}
	}
}

func TestInternalErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]bound.Statement{
		"error expression": &bound.ExpressionStatement{Expression: &bound.ErrorExpression{}},
		"unlowered while": &bound.WhileStatement{
			Condition: bound.NewLiteral(true, types.Bool),
			Body:      &bound.BlockStatement{},
			Break:     &bound.Label{Name: "B1"},
			Continue:  &bound.Label{Name: "C1"},
		},
		"unlowered if expression": &bound.ExpressionStatement{Expression: &bound.IfExpression{
			Condition: bound.NewLiteral(true, types.Bool),
			Then:      bound.NewLiteral(int64(1), types.Int),
			Else:      bound.NewLiteral(int64(2), types.Int),
			Ty:        types.Int,
		}},
		"jump to a missing label": &bound.GotoStatement{Label: &bound.Label{Name: "L9"}},
	}
	for name, s := range cases {
		s := s
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := function("app.broken", types.Unit)
			mod, err := emit.Emit(program(def(f, s)), options())
			assert.Nil(t, mod)
			require.Error(t, err)
			var ie *emit.InternalError
			require.True(t, errors.As(err, &ie), "%v", err)
			assert.Equal(t, "app.broken", ie.Function)
			assert.IsType(t, &emit.InternalError{}, errors.Cause(err))
		})
	}
}

func TestFunctionsDefinedTwiceAreInternalErrors(t *testing.T) {
	t.Parallel()

	first := symbols.NewFunction("a", nil, types.Int, "app.a", nil, symbols.Metadata{CName: "foo"})
	second := symbols.NewFunction("b", nil, types.Int, "app.b", nil, symbols.Metadata{CName: "foo"})
	prog := program(
		def(first, ret(bound.NewLiteral(int64(1), types.Int))),
		def(second, ret(bound.NewLiteral(int64(2), types.Int))),
	)

	mod, err := emit.Emit(prog, options())
	assert.Nil(t, mod)
	var ie *emit.InternalError
	require.True(t, errors.As(err, &ie), "%v", err)
	assert.Equal(t, "foo", ie.Function)
	assert.Contains(t, ie.Message, "app.b")
}

func TestDeclaredFunctionsKeepTheirCallsWhenDefined(t *testing.T) {
	t.Parallel()

	callee := function("app.callee", types.Int)
	caller := function("app.caller", types.Int)
	prog := program(
		def(caller, ret(&bound.CallExpression{Function: callee})),
		def(callee, ret(bound.NewLiteral(int64(3), types.Int))),
	)

	mod := emitModule(t, prog)
	assert.Equal(t, []string{"app.caller", "app.callee"}, functionNames(mod))
	defined := lookup(t, mod, "app.callee")
	call := lookup(t, mod, "app.caller").Blocks[0].Insts[0].(*ir.InstCall)
	assert.Equal(t, defined, call.Callee)
	assert.NotEmpty(t, defined.Blocks)
}

func TestProgramsWithErrorsAreNotEmitted(t *testing.T) {
	t.Parallel()

	prog := program()
	prog.Diagnostics.Errorf(compilererrors.ErrorNoMainFunction)
	_, err := emit.Emit(prog, options())
	assert.Error(t, err)
}

func TestPreviousEntriesAreSkipped(t *testing.T) {
	t.Parallel()

	first := symbols.NewFunction("main", nil, types.Any, "main", nil, symbols.Metadata{Entry: true})
	helper := function("app.helper", types.Int)
	prev := program(
		def(helper, ret(bound.NewLiteral(int64(1), types.Int))),
		def(first, ret(&bound.CastExpression{Ty: types.Any, Expression: bound.NewLiteral(int64(1), types.Int)})),
	)
	second := symbols.NewFunction("main", nil, types.Any, "main", nil, symbols.Metadata{Entry: true})
	prog := program(def(second, ret(&bound.CastExpression{
		Ty:         types.Any,
		Expression: &bound.CallExpression{Function: helper},
	})))
	prog.Previous = prev

	mod := emitModule(t, prog)
	assert.Equal(t, []string{"app.helper", "main"}, functionNames(mod))
	main := lookup(t, mod, "main")
	assert.Equal(t, []string{"InstCall", "InstIntToPtr", "TermRet"}, kinds(main.Blocks[0]))
	call := main.Blocks[0].Insts[0].(*ir.InstCall)
	assert.Equal(t, lookup(t, mod, "app.helper"), call.Callee)
}

func TestExternFunctionsAreDeclared(t *testing.T) {
	t.Parallel()

	text := symbols.NewParameter("text", types.String, nil)
	puts := symbols.NewFunction("puts", []*symbols.Variable{text}, types.I32, "c.puts", nil,
		symbols.Metadata{Extern: true, CName: "puts"})
	entry := symbols.NewFunction("main", nil, types.Unit, "app.main", nil, symbols.Metadata{Entry: true})
	prog := program(
		&binder.FunctionBody{Function: puts},
		def(entry, &bound.ExpressionStatement{Expression: &bound.CallExpression{
			Function:  puts,
			Arguments: []bound.Expression{bound.NewLiteral("hello", types.String)},
		}}),
	)

	mod := emitModule(t, prog)
	assert.Equal(t, []string{"puts", "main"}, functionNames(mod))
	decl := lookup(t, mod, "puts")
	assert.Empty(t, decl.Blocks)
	assert.True(t, decl.Sig.Equal(irtypes.NewFunc(irtypes.I32, irtypes.NewPointer(irtypes.I8))))

	main := lookup(t, mod, "main")
	assert.Equal(t, []string{"InstCall", "TermRet"}, kinds(main.Blocks[0]))
	assert.Equal(t, constant.NewInt(irtypes.I32, 0).Ident(), returned(t, main.Blocks[0]).X.Ident())
	assert.Contains(t, mod.String(), `c"hello\00"`)
}
