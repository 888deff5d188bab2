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

package eval_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulumi/lumi/pkg/compiler/ast"
	"github.com/pulumi/lumi/pkg/compiler/binder"
	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/core"
	"github.com/pulumi/lumi/pkg/compiler/errors"
	"github.com/pulumi/lumi/pkg/compiler/eval"
	"github.com/pulumi/lumi/pkg/compiler/lower"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
	"github.com/pulumi/lumi/pkg/diag"
	"github.com/pulumi/lumi/pkg/encoding"
)

func interpreter(stdin string) (eval.Interpreter, *diag.List, *bytes.Buffer) {
	diags := diag.NewList(diag.FormatOptions{})
	var stdout bytes.Buffer
	return eval.New(diags, strings.NewReader(stdin), &stdout), diags, &stdout
}

func ids(l *diag.List) []diag.ID {
	var res []diag.ID
	for _, d := range l.ErrorList() {
		res = append(res, d.ID)
	}
	return res
}

func function(path string, ret symbols.Type, params ...*symbols.Variable) *symbols.Function {
	name := path[strings.LastIndexByte(path, '.')+1:]
	return symbols.NewFunction(name, params, ret, path, nil, symbols.Metadata{})
}

func def(fn *symbols.Function, stmts ...bound.Statement) *binder.FunctionBody {
	return &binder.FunctionBody{Function: fn, Body: &bound.BlockStatement{Statements: stmts}}
}

func read(v *symbols.Variable) *bound.VariableExpression { return &bound.VariableExpression{Variable: v} }

func lit(v interface{}, ty symbols.Type) *bound.LiteralExpression { return bound.NewLiteral(v, ty) }

func ret(e bound.Expression) *bound.ReturnStatement { return &bound.ReturnStatement{Expression: e} }

func call(fn *symbols.Function, args ...bound.Expression) *bound.CallExpression {
	return &bound.CallExpression{Function: fn, Arguments: args}
}

func assign(target bound.Expression, value bound.Expression) *bound.ExpressionStatement {
	return &bound.ExpressionStatement{Expression: &bound.AssignmentExpression{Target: target, Value: value}}
}

func binary(l bound.Expression, op string, r bound.Expression) *bound.BinaryExpression {
	return &bound.BinaryExpression{Left: l, Operator: bound.BindBinaryOperator(op, l.Type(), r.Type()), Right: r}
}

func decode(t *testing.T, src string) *ast.SyntaxTree {
	tr, err := encoding.DecodeSyntaxTree(encoding.YAML, []byte(src))
	require.NoError(t, err)
	return tr
}

func TestEvaluateBatchProgram(t *testing.T) {
	t.Parallel()

	const src = `
kind: SyntaxTree
projectPath: app
members:
  - {kind: VariableDeclaration, keyword: var, name: base, initializer: {kind: LiteralExpression, value: 100}}
  - kind: FunctionDeclaration
    name: sum
    params: [{name: n, type: Int}]
    returnType: Int
    body:
      kind: BlockStatement
      statements:
        - {kind: VariableDeclaration, keyword: var, name: total, initializer: {kind: NameExpression, name: base}}
        - kind: ForStatement
          variable: i
          lower: {kind: LiteralExpression, value: 1}
          upper: {kind: NameExpression, name: n}
          body:
            kind: BlockStatement
            statements:
              - kind: ExpressionStatement
                expression:
                  kind: AssignmentExpression
                  target: {kind: NameExpression, name: total}
                  value:
                    kind: BinaryExpression
                    left: {kind: NameExpression, name: total}
                    operator: "+"
                    right: {kind: NameExpression, name: i}
        - {kind: ReturnStatement, expression: {kind: NameExpression, name: total}}
  - kind: FunctionDeclaration
    name: main
    annotations: [{name: entry}]
    body:
      kind: BlockStatement
      statements:
        - kind: ExpressionStatement
          expression:
            kind: AssignmentExpression
            target: {kind: NameExpression, name: base}
            value:
              kind: CallExpression
              function: {kind: NameExpression, name: sum}
              arguments: [{kind: LiteralExpression, value: 4}]
`
	ctx := core.NewContext(core.DefaultOptions())
	global := binder.BindGlobalScope(nil, ctx, []*ast.SyntaxTree{decode(t, src)})
	require.False(t, global.Diagnostics.HasErrors())
	prog := binder.BindProgram(nil, ctx, global)
	require.False(t, prog.Diagnostics.HasErrors())

	interp, diags, _ := interpreter("")
	res, ok := interp.Evaluate(prog)
	require.True(t, ok)
	assert.Nil(t, res)
	assert.False(t, diags.HasErrors())

	var sum *symbols.Function
	for _, fb := range prog.Functions {
		if fb.Function.Path() == "app.sum" {
			sum = fb.Function
		}
	}
	require.NotNil(t, sum)

	// main stored sum(4) = 100+1+2+3+4 into base, and later calls start from there.
	res, ok = interp.EvaluateFunction(prog, sum, int64(2))
	require.True(t, ok)
	assert.Equal(t, int64(113), res)
}

func TestEvaluateInteractiveSession(t *testing.T) {
	t.Parallel()

	submissions := []struct {
		src    string
		result string
		stdout string
	}{
		{
			src:    `{kind: ReplStatement, statement: {kind: VariableDeclaration, keyword: var, name: x, initializer: {kind: LiteralExpression, value: 40}}}`,
			result: "",
		},
		{
			src: `{kind: ReplStatement, statement: {kind: ExpressionStatement, expression: ` +
				`{kind: BinaryExpression, left: {kind: NameExpression, name: x}, operator: "+", right: {kind: LiteralExpression, value: 2}}}}`,
			result: "42",
		},
		{
			src: `{kind: FunctionDeclaration, name: twice, params: [{name: n, type: Int}], returnType: Int, expression: ` +
				`{kind: BinaryExpression, left: {kind: NameExpression, name: n}, operator: "*", right: {kind: LiteralExpression, value: 2}}}
  - {kind: ReplStatement, statement: {kind: ExpressionStatement, expression: ` +
				`{kind: CallExpression, function: {kind: NameExpression, name: twice}, arguments: [{kind: NameExpression, name: x}]}}}`,
			result: "80",
		},
		{
			src: `{kind: ReplStatement, statement: {kind: ExpressionStatement, expression: ` +
				`{kind: CallExpression, function: {kind: NameExpression, name: println}, arguments: [` +
				`{kind: BinaryExpression, left: {kind: LiteralExpression, value: "hello "}, operator: "+", right: {kind: LiteralExpression, value: "there"}}]}}}`,
			result: "",
			stdout: "hello there\n",
		},
		{
			src: `{kind: ReplStatement, statement: {kind: ExpressionStatement, expression: ` +
				`{kind: CallExpression, function: {kind: NameExpression, name: typeof}, arguments: [{kind: NameExpression, name: x}]}}}`,
			result: "Int",
		},
	}

	opts := core.DefaultOptions()
	opts.Interactive = true
	ctx := core.NewContext(opts)
	interp, diags, stdout := interpreter("")

	var global *binder.BoundGlobalScope
	var prog *binder.BoundProgram
	for i, sub := range submissions {
		tr := decode(t, "kind: SyntaxTree\nprojectPath: app\nmembers:\n  - "+sub.src+"\n")
		global = binder.BindGlobalScope(global, ctx, []*ast.SyntaxTree{tr})
		require.False(t, global.Diagnostics.HasErrors(), "submission %d", i)
		prog = binder.BindProgram(prog, ctx, global)
		require.False(t, prog.Diagnostics.HasErrors(), "submission %d", i)

		stdout.Reset()
		res, ok := interp.Evaluate(prog)
		require.True(t, ok, "submission %d", i)
		assert.Equal(t, sub.result, eval.Format(res), "submission %d", i)
		assert.Equal(t, sub.stdout, stdout.String(), "submission %d", i)
	}
	assert.False(t, diags.HasErrors())
}

func TestReadln(t *testing.T) {
	t.Parallel()

	fn := function("app.both", types.String)
	prog := binder.NewBoundProgram(nil, nil, def(fn,
		ret(binary(binary(call(binder.Readln), "+", lit("|", types.String)), "+", call(binder.Readln))),
	))

	interp, _, _ := interpreter("first\r\nsecond")
	res, ok := interp.EvaluateFunction(prog, fn)
	require.True(t, ok)
	assert.Equal(t, "first|second", res)

	// At the end of the input, readln returns the empty string.
	res, ok = interp.EvaluateFunction(prog, fn)
	require.True(t, ok)
	assert.Equal(t, "|", res)
}

func TestDivision(t *testing.T) {
	t.Parallel()

	a := symbols.NewParameter("a", types.Int, nil)
	b := symbols.NewParameter("b", types.Int, nil)
	div := function("app.div", types.Int, a, b)
	prog := binder.NewBoundProgram(nil, nil, def(div, ret(binary(read(a), "/", read(b)))))

	interp, diags, _ := interpreter("")
	res, ok := interp.EvaluateFunction(prog, div, int64(7), int64(2))
	require.True(t, ok)
	assert.Equal(t, int64(3), res)
	assert.False(t, diags.HasErrors())

	_, ok = interp.EvaluateFunction(prog, div, int64(7), int64(0))
	assert.False(t, ok)
	assert.Equal(t, []diag.ID{errors.ErrorDivisionByZero.ID}, ids(diags))
	assert.Contains(t, diags.ErrorList()[0].Message, "app.div")
}

func TestShortCircuitSkipsTrappingOperands(t *testing.T) {
	t.Parallel()

	n := symbols.NewParameter("n", types.Int, nil)
	d := symbols.NewParameter("d", types.Int, nil)
	guarded := function("app.guarded", types.Bool, n, d)
	cond := binary(binary(read(d), "!=", lit(0, types.Int)), "&&", binary(binary(read(n), "/", read(d)), ">", lit(1, types.Int)))
	body := lower.Lower(&bound.BlockStatement{Statements: []bound.Statement{ret(cond)}}, n, d)
	prog := binder.NewBoundProgram(nil, nil, &binder.FunctionBody{Function: guarded, Body: body})

	interp, diags, _ := interpreter("")
	res, ok := interp.EvaluateFunction(prog, guarded, int64(7), int64(0))
	require.True(t, ok)
	assert.Equal(t, false, res)
	res, ok = interp.EvaluateFunction(prog, guarded, int64(7), int64(2))
	require.True(t, ok)
	assert.Equal(t, true, res)
	assert.False(t, diags.HasErrors())
}

func TestReferences(t *testing.T) {
	t.Parallel()

	ptr := symbols.NewPointerType(types.Int, types.Any)
	x := symbols.NewLocalVariable("x", types.Int, false, nil, nil)
	p := symbols.NewLocalVariable("p", ptr, false, nil, nil)
	fn := function("app.ref", types.Int)
	prog := binder.NewBoundProgram(nil, nil, def(fn,
		&bound.VariableDeclaration{Variable: x, Initializer: lit(1, types.Int)},
		&bound.VariableDeclaration{Variable: p, Initializer: &bound.ReferenceExpression{Variable: x, Ty: ptr}},
		assign(&bound.PointerAccess{Pointer: read(p), Index: lit(0, types.Int)}, lit(5, types.Int)),
		ret(read(x)),
	))

	interp, diags, _ := interpreter("")
	res, ok := interp.EvaluateFunction(prog, fn)
	require.True(t, ok)
	assert.Equal(t, int64(5), res)
	assert.False(t, diags.HasErrors())
}

func TestStructsAndPointerArrays(t *testing.T) {
	t.Parallel()

	point := symbols.NewStructType("Point", types.Any, nil)
	point.Fields = []*symbols.Field{{Name: "x", Type: types.Int}, {Name: "y", Type: types.Int}}
	ptr := symbols.NewPointerType(point, types.Any)
	arr := symbols.NewPointerType(types.Int, types.Any)

	pts := symbols.NewLocalVariable("pts", ptr, false, nil, nil)
	nums := symbols.NewLocalVariable("nums", arr, false, nil, nil)
	fn := function("app.shapes", types.Int)
	at := func(p *symbols.Variable, i int) *bound.PointerAccess {
		return &bound.PointerAccess{Pointer: read(p), Index: lit(i, types.Int)}
	}
	field := func(e bound.Expression, i int) *bound.StructFieldAccess {
		return &bound.StructFieldAccess{Struct: e, Field: i}
	}
	prog := binder.NewBoundProgram(nil, nil, def(fn,
		&bound.VariableDeclaration{Variable: pts, Initializer: &bound.PointerArrayInitialization{
			Ty: ptr,
			Elements: []bound.Expression{
				&bound.StructInitialization{Ty: point, Fields: []bound.Expression{lit(1, types.Int), lit(2, types.Int)}},
				&bound.StructInitialization{Ty: point, Fields: []bound.Expression{nil, lit(7, types.Int)}},
			},
		}},
		&bound.VariableDeclaration{Variable: nums, Initializer: &bound.PointerArrayInitialization{
			Ty: arr, Length: lit(3, types.Int),
		}},
		assign(field(at(pts, 1), 0), lit(30, types.Int)),
		assign(at(nums, 2), binary(field(at(pts, 0), 1), "+", field(at(pts, 1), 0))),
		ret(binary(binary(at(nums, 0), "+", at(nums, 2)), "+", field(at(pts, 1), 1))),
	))

	interp, diags, _ := interpreter("")
	res, ok := interp.EvaluateFunction(prog, fn)
	require.True(t, ok)
	assert.Equal(t, int64(0+32+7), res)
	assert.False(t, diags.HasErrors())
}

func TestRuntimeErrors(t *testing.T) {
	t.Parallel()

	point := symbols.NewStructType("Point", types.Any, nil)
	point.Fields = []*symbols.Field{{Name: "x", Type: types.Int}}
	arr := symbols.NewPointerType(types.Int, types.Any)

	p := symbols.NewParameter("p", point, nil)
	null := function("app.null", types.Int, p)
	nums := symbols.NewParameter("nums", arr, nil)
	index := function("app.index", types.Int, nums)
	ext := symbols.NewFunction("puts", nil, types.Unit, "app.puts", nil, symbols.Metadata{Extern: true})
	callsExtern := function("app.callsExtern", types.Unit)
	missing := function("app.missing", types.Unit)
	callsMissing := function("app.callsMissing", types.Unit)
	rec := function("app.rec", types.Unit)

	prog := binder.NewBoundProgram(nil, nil,
		def(null, ret(&bound.StructFieldAccess{Struct: read(p), Field: 0})),
		def(index, ret(&bound.PointerAccess{Pointer: read(nums), Index: lit(5, types.Int)})),
		&binder.FunctionBody{Function: ext},
		def(callsExtern, &bound.ExpressionStatement{Expression: call(ext)}),
		def(callsMissing, &bound.ExpressionStatement{Expression: call(missing)}),
		def(rec, &bound.ExpressionStatement{Expression: call(rec)}),
	)

	cases := []struct {
		name string
		fn   *symbols.Function
		args []eval.Value
		id   diag.ID
	}{
		{"null", null, []eval.Value{nil}, errors.ErrorNullPointerDereference.ID},
		{"index", index, []eval.Value{&eval.Array{Type: arr, Elements: []eval.Value{int64(1)}}}, errors.ErrorIndexOutOfRange.ID},
		{"extern", callsExtern, nil, errors.ErrorCantEvaluateExtern.ID},
		{"missing", callsMissing, nil, errors.ErrorUnresolvedFunction.ID},
		{"recursion", rec, nil, errors.ErrorStackOverflow.ID},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			interp, diags, _ := interpreter("")
			_, ok := interp.EvaluateFunction(prog, c.fn, c.args...)
			assert.False(t, ok)
			assert.Equal(t, []diag.ID{c.id}, ids(diags))
		})
	}
}

func TestGlobalsSurviveAcrossPrograms(t *testing.T) {
	t.Parallel()

	counter := symbols.NewGlobalVariable("counter", types.Int, false, nil, "app.counter", nil)
	firstEntry := function("main", types.Unit)
	first := binder.NewBoundProgram(nil, firstEntry, def(firstEntry))
	first.Init = &bound.BlockStatement{Statements: []bound.Statement{
		&bound.VariableDeclaration{Variable: counter, Initializer: lit(10, types.Int)},
	}}

	secondEntry := function("main", types.Int)
	second := binder.NewBoundProgram(first, secondEntry, def(secondEntry,
		assign(read(counter), binary(read(counter), "+", lit(1, types.Int))),
		ret(read(counter)),
	))

	interp, diags, _ := interpreter("")
	res, ok := interp.Evaluate(first)
	require.True(t, ok)
	assert.Nil(t, res)
	for _, want := range []int64{11, 12} {
		res, ok = interp.Evaluate(second)
		require.True(t, ok)
		assert.Equal(t, want, res)
	}
	assert.False(t, diags.HasErrors())
}
