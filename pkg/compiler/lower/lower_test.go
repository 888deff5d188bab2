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

package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
	"github.com/pulumi/lumi/pkg/util/testutil"
)

func intLit(v int64) *bound.LiteralExpression { return bound.NewLiteral(v, types.Int) }

func ref(v *symbols.Variable) *bound.VariableExpression { return &bound.VariableExpression{Variable: v} }

func binary(l bound.Expression, op string, r bound.Expression) *bound.BinaryExpression {
	return &bound.BinaryExpression{Left: l, Operator: bound.BindBinaryOperator(op, l.Type(), r.Type()), Right: r}
}

func assign(v *symbols.Variable, value bound.Expression) bound.Statement {
	return &bound.ExpressionStatement{Expression: &bound.AssignmentExpression{Target: ref(v), Value: value}}
}

func assertLowered(t *testing.T, expected string, body *bound.BlockStatement) {
	t.Helper()
	testutil.AssertTextEqual(t, expected, bound.String(body))
}

func TestLowerWhile(t *testing.T) {
	t.Parallel()

	i := symbols.NewLocalVariable("i", types.Int, false, nil, nil)
	body := block(
		&bound.VariableDeclaration{Variable: i, Initializer: intLit(0)},
		&bound.WhileStatement{
			Condition: binary(ref(i), "<", intLit(3)),
			Body:      block(assign(i, binary(ref(i), "+", intLit(1)))),
			Break:     &bound.Label{Name: "B1"},
			Continue:  &bound.Label{Name: "C1"},
		},
		&bound.ReturnStatement{},
	)
	assertLowered(t, `{
    var i: Int = 0
    C1:
    goto B1 unless (i < 3)
    i = (i + 1)
    goto C1
    B1:
    return
}`, Lower(body))
}

func TestLowerIfElse(t *testing.T) {
	t.Parallel()

	c := symbols.NewParameter("c", types.Bool, nil)
	x := symbols.NewLocalVariable("x", types.Int, false, nil, nil)
	body := block(
		&bound.VariableDeclaration{Variable: x},
		&bound.IfStatement{
			Condition: ref(c),
			Then:      block(assign(x, intLit(1))),
			Else:      block(assign(x, intLit(2))),
		},
		&bound.ReturnStatement{Expression: ref(x)},
	)
	assertLowered(t, `{
    var x: Int
    goto L2 unless c
    x = 1
    goto L1
    L2:
    x = 2
    L1:
    return x
}`, Lower(body, c))
}

func TestConstantConditionsRemoveDeadCode(t *testing.T) {
	t.Parallel()

	x := symbols.NewLocalVariable("x", types.Int, false, nil, nil)
	body := block(
		&bound.VariableDeclaration{Variable: x, Initializer: intLit(0)},
		&bound.IfStatement{Condition: bound.NewLiteral(false, types.Bool), Then: block(assign(x, intLit(1)))},
		&bound.IfStatement{Condition: bound.NewLiteral(true, types.Bool), Then: block(assign(x, intLit(2)))},
		&bound.ReturnStatement{Expression: ref(x)},
		assign(x, intLit(3)),
	)
	assertLowered(t, `{
    var x: Int = 0
    goto L1
    L1:
    x = 2
    L2:
    return x
}`, Lower(body))
}

func TestForEvaluatesUpperBoundOnce(t *testing.T) {
	t.Parallel()

	f := symbols.NewFunction("f", nil, types.Int, "f", nil, symbols.Metadata{})
	i := symbols.NewLocalVariable("i", types.Int, false, nil, nil)
	body := block(&bound.ForStatement{
		Variable: i,
		Lower:    intLit(0),
		Upper:    &bound.CallExpression{Function: f},
		Body:     block(),
		Break:    &bound.Label{Name: "B1"},
		Continue: &bound.Label{Name: "C1"},
	})
	lowered := Lower(body)
	assertLowered(t, `{
    var i: Int = 0
    val .upperBound: Int = f()
    L1:
    goto B1 unless (i <= .upperBound)
    C1:
    i = (i + 1)
    goto L1
    B1:
}`, lowered)

	calls := 0
	bound.Inspect(lowered, func(n bound.Node) bool {
		if _, iscall := n.(*bound.CallExpression); iscall {
			calls++
		}
		return true
	})
	assert.Equal(t, 1, calls)
}

func TestRenamesShadowedLocals(t *testing.T) {
	t.Parallel()

	x1 := symbols.NewLocalVariable("x", types.Int, false, nil, nil)
	x2 := symbols.NewLocalVariable("x", types.Int, false, nil, nil)
	body := block(
		block(&bound.VariableDeclaration{Variable: x1, Initializer: intLit(1)}),
		block(
			&bound.VariableDeclaration{Variable: x2, Initializer: intLit(2)},
			assign(x2, binary(ref(x2), "+", intLit(1))),
		),
		&bound.ReturnStatement{},
	)
	assertLowered(t, `{
    var x: Int = 1
    var .l_x1: Int = 2
    .l_x1 = (.l_x1 + 1)
    return
}`, Lower(body))

	// Parameter names are reserved.
	p := symbols.NewParameter("x", types.Int, nil)
	assertLowered(t, `{
    var .l_x1: Int = 1
    var .l_x2: Int = 2
    .l_x2 = (.l_x2 + 1)
    return
}`, Lower(body, p))

	// The original symbols are left untouched.
	assert.Equal(t, "x", x1.RealName)
	assert.Equal(t, "x", x2.RealName)
}

func TestShortCircuitWithSideEffects(t *testing.T) {
	t.Parallel()

	a := symbols.NewParameter("a", types.Bool, nil)
	f := symbols.NewFunction("f", nil, types.Bool, "f", nil, symbols.Metadata{})
	body := block(&bound.ReturnStatement{Expression: binary(ref(a), "&&", &bound.CallExpression{Function: f})})
	assertLowered(t, `{
    var .tmp: Bool = false
    goto L1 unless a
    .tmp = f()
    goto L2
    L1:
    .tmp = false
    L2:
    return .tmp
}`, Lower(body, a))

	// Without side effects, the operator stays.
	b := symbols.NewParameter("b", types.Bool, nil)
	pure := block(&bound.ReturnStatement{Expression: binary(ref(a), "||", ref(b))})
	assertLowered(t, `{
    return (a || b)
}`, Lower(pure, a, b))
}

func conditionalJumps(body *bound.BlockStatement) int {
	n := 0
	for _, s := range body.Statements {
		if _, isjump := s.(*bound.ConditionalGotoStatement); isjump {
			n++
		}
	}
	return n
}

func TestShortCircuitGuardsTrappingOperands(t *testing.T) {
	t.Parallel()

	a := symbols.NewParameter("a", types.Bool, nil)
	n := symbols.NewParameter("n", types.Int, nil)
	d := symbols.NewParameter("d", types.Int, nil)
	arr := symbols.NewParameter("arr", symbols.NewPointerType(types.Bool, types.Any), nil)

	// A zero divisor or a null array must not be touched when the left operand already decides.
	right := map[string]bound.Expression{
		"division":       binary(binary(ref(n), "/", ref(d)), ">", intLit(0)),
		"remainder":      binary(binary(ref(n), "%", ref(d)), "==", intLit(0)),
		"pointer access": &bound.PointerAccess{Pointer: ref(arr), Index: intLit(0)},
	}
	for name, r := range right {
		for _, op := range []string{"&&", "||"} {
			body := Lower(block(&bound.ReturnStatement{Expression: binary(ref(a), op, r)}), a, n, d, arr)
			assert.Equal(t, 1, conditionalJumps(body), "%v %v", op, name)
			last, isret := body.Statements[len(body.Statements)-1].(*bound.ReturnStatement)
			require.True(t, isret)
			_, isbinary := last.Expression.(*bound.BinaryExpression)
			assert.False(t, isbinary, "%v %v is still evaluated eagerly", op, name)
		}
	}

	x := symbols.NewParameter("x", types.Double, nil)
	y := symbols.NewParameter("y", types.Double, nil)
	body := block(&bound.ReturnStatement{
		Expression: binary(ref(a), "&&", binary(binary(ref(x), "/", ref(y)), ">", &bound.LiteralExpression{Value: 0.0, Ty: types.Double})),
	})
	assert.Equal(t, 0, conditionalJumps(Lower(body, a, x, y)), "floating point division doesn't trap")
}

func TestIsPure(t *testing.T) {
	t.Parallel()

	i := symbols.NewParameter("i", types.Int, nil)
	u := symbols.NewParameter("u", types.U32, nil)
	f := symbols.NewParameter("f", types.Float, nil)
	arr := symbols.NewParameter("arr", symbols.NewPointerType(types.Int, types.Any), nil)
	point := symbols.NewStructType("point", types.Any, nil)
	point.Fields = []*symbols.Field{{Name: "x", Type: types.Int}}
	p := symbols.NewParameter("p", point, nil)
	fn := symbols.NewFunction("g", nil, types.Int, "g", nil, symbols.Metadata{})

	cases := []struct {
		name string
		e    bound.Expression
		pure bool
	}{
		{"literal", intLit(1), true},
		{"variable", ref(i), true},
		{"addition", binary(ref(i), "+", intLit(1)), true},
		{"comparison", binary(ref(i), "<", intLit(1)), true},
		{"float division", binary(ref(f), "/", ref(f)), true},
		{"float remainder", binary(ref(f), "%", ref(f)), true},
		{"cast", &bound.CastExpression{Ty: types.Double, Expression: ref(i)}, true},
		{"integer division", binary(ref(i), "/", intLit(2)), false},
		{"unsigned remainder", binary(ref(u), "%", ref(u)), false},
		{"nested division", binary(intLit(1), "+", binary(ref(i), "/", ref(i))), false},
		{"pointer access", &bound.PointerAccess{Pointer: ref(arr), Index: intLit(0)}, false},
		{"field access", &bound.StructFieldAccess{Struct: ref(p), Field: 0}, false},
		{"call", &bound.CallExpression{Function: fn}, false},
		{"assignment", &bound.AssignmentExpression{Target: ref(i), Value: intLit(1)}, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.pure, IsPure(c.e), c.name)
	}
}

func TestHoistingKeepsEvaluationOrder(t *testing.T) {
	t.Parallel()

	c := symbols.NewParameter("c", types.Bool, nil)
	f := symbols.NewFunction("f", nil, types.Int, "f", nil, symbols.Metadata{})
	cond := &bound.IfExpression{Condition: ref(c), Then: intLit(1), Else: intLit(2), Ty: types.Int}
	body := block(&bound.ReturnStatement{Expression: binary(&bound.CallExpression{Function: f}, "+", cond)})
	assertLowered(t, `{
    val .l_tmp1: Int = f()
    var .tmp: Int = 0
    goto L1 unless c
    .tmp = 1
    goto L2
    L1:
    .tmp = 2
    L2:
    return (.l_tmp1 + .tmp)
}`, Lower(body, c))
}

func TestUnitIfExpression(t *testing.T) {
	t.Parallel()

	c := symbols.NewParameter("c", types.Bool, nil)
	g := symbols.NewFunction("g", nil, types.Unit, "g", nil, symbols.Metadata{})
	call := func() bound.Expression {
		return &bound.BlockExpression{Ty: types.Unit, Statements: []bound.Statement{
			&bound.ExpressionStatement{Expression: &bound.CallExpression{Function: g}},
		}}
	}
	body := block(&bound.ExpressionStatement{Expression: &bound.IfExpression{
		Condition: ref(c), Then: call(), Else: call(), Ty: types.Unit,
	}})
	assertLowered(t, `{
    goto L1 unless c
    g()
    goto L2
    L1:
    g()
    L2:
}`, Lower(body, c))
}

// program generates random structured bodies over a small set of variables, so that shadowing, nesting and
// unreachable code all show up.
type program struct {
	t      *rapid.T
	vars   []*symbols.Variable
	f      *symbols.Function
	labels bound.LabelGenerator
}

func (p *program) expr(depth int) bound.Expression {
	v := p.vars[rapid.IntRange(0, len(p.vars)-1).Draw(p.t, "var")]
	switch rapid.IntRange(0, 3).Draw(p.t, "expr") {
	case 0:
		return intLit(rapid.Int64Range(-5, 5).Draw(p.t, "lit"))
	case 1:
		return ref(v)
	case 2:
		return &bound.CallExpression{Function: p.f}
	default:
		if depth <= 0 {
			return ref(v)
		}
		return binary(p.expr(depth-1), "+", p.expr(depth-1))
	}
}

func (p *program) cond(depth int) bound.Expression {
	switch rapid.IntRange(0, 2).Draw(p.t, "cond") {
	case 0:
		return bound.NewLiteral(rapid.Bool().Draw(p.t, "bool"), types.Bool)
	case 1:
		return binary(p.expr(depth), "<", p.expr(depth))
	default:
		l := binary(p.expr(depth), "==", intLit(0))
		return binary(l, "&&", binary(p.expr(depth), ">", intLit(1)))
	}
}

func (p *program) stmts(depth int) *bound.BlockStatement {
	n := rapid.IntRange(0, 4).Draw(p.t, "count")
	res := block()
	for i := 0; i < n; i++ {
		res.Statements = append(res.Statements, p.stmt(depth))
	}
	return res
}

func (p *program) stmt(depth int) bound.Statement {
	kind := rapid.IntRange(0, 5).Draw(p.t, "stmt")
	if depth <= 0 && kind >= 3 {
		kind = 0
	}
	switch kind {
	case 0:
		v := p.vars[rapid.IntRange(0, len(p.vars)-1).Draw(p.t, "target")]
		return assign(v, p.expr(1))
	case 1:
		init := p.expr(1)
		v := symbols.NewLocalVariable(rapid.SampledFrom([]string{"x", "y"}).Draw(p.t, "name"), types.Int, false, nil, nil)
		p.vars = append(p.vars, v)
		return &bound.VariableDeclaration{Variable: v, Initializer: init}
	case 2:
		return &bound.ReturnStatement{}
	case 3:
		s := &bound.IfStatement{Condition: p.cond(1), Then: p.stmts(depth - 1)}
		if rapid.Bool().Draw(p.t, "else") {
			s.Else = p.stmts(depth - 1)
		}
		return s
	case 4:
		return &bound.WhileStatement{
			Condition: p.cond(1),
			Body:      p.stmts(depth - 1),
			Break:     p.labels.Next(),
			Continue:  p.labels.Next(),
		}
	default:
		return &bound.ForStatement{
			Variable: symbols.NewLocalVariable("i", types.Int, false, nil, nil),
			Lower:    intLit(0),
			Upper:    p.expr(1),
			Body:     p.stmts(depth - 1),
			Break:    p.labels.Next(),
			Continue: p.labels.Next(),
		}
	}
}

func TestLoweringIsIdempotent(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		p := &program{
			t:      t,
			vars:   []*symbols.Variable{symbols.NewParameter("a", types.Int, nil)},
			f:      symbols.NewFunction("f", nil, types.Int, "f", nil, symbols.Metadata{}),
			labels: bound.LabelGenerator{Prefix: "W"},
		}
		body := p.stmts(3)

		once := Lower(body, p.vars[0])
		twice := Lower(once, p.vars[0])
		require.Equal(t, bound.String(once), bound.String(twice))

		// Nothing structured survives, and everything left can run.
		bound.Inspect(once, func(n bound.Node) bool {
			switch n.(type) {
			case *bound.IfStatement, *bound.WhileStatement, *bound.ForStatement, *bound.IfExpression,
				*bound.BlockExpression, *bound.NopStatement:
				t.Fatalf("unexpected %v in lowered body", n.Kind())
			case *bound.BlockStatement:
				if n != bound.Node(once) {
					t.Fatalf("nested block in lowered body")
				}
			}
			return true
		})
		require.Len(t, RemoveDeadCode(once).Statements, len(once.Statements))
	})
}
