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

package bound

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
)

func TestBindOperators(t *testing.T) {
	t.Parallel()

	add := BindBinaryOperator("+", types.Int, types.Int)
	require.NotNil(t, add)
	assert.Equal(t, Add, add.Op)
	assert.Equal(t, types.Int, add.Result)

	lt := BindBinaryOperator("<", types.Double, types.Double)
	require.NotNil(t, lt)
	assert.Equal(t, types.Bool, lt.Result)

	assert.NotNil(t, BindBinaryOperator("&&", types.Bool, types.Bool))
	assert.NotNil(t, BindBinaryOperator("+", types.String, types.String))
	assert.Nil(t, BindBinaryOperator("-", types.String, types.String))
	assert.Nil(t, BindBinaryOperator("&", types.Double, types.Double))
	assert.Nil(t, BindBinaryOperator("+", types.Int, types.String))
	assert.Nil(t, BindBinaryOperator("+", types.Int, types.U8), "signedness must agree")

	assert.NotNil(t, BindUnaryOperator("!", types.Bool))
	assert.NotNil(t, BindUnaryOperator("-", types.Float))
	assert.Nil(t, BindUnaryOperator("!", types.Int))
	assert.Nil(t, BindUnaryOperator("-", types.String))
}

func TestWidening(t *testing.T) {
	t.Parallel()

	op := BindBinaryOperator("*", types.I8, types.I32)
	require.NotNil(t, op)
	assert.Equal(t, types.I8, op.Left)
	assert.Equal(t, types.I32, op.Right)
	assert.Equal(t, types.I32, op.Result)
	assert.Equal(t, types.I32, op.OperandType())

	cmp := BindBinaryOperator("==", types.Float, types.Double)
	require.NotNil(t, cmp)
	assert.Equal(t, types.Bool, cmp.Result)
	assert.Equal(t, types.Double, cmp.OperandType())

	assert.Equal(t, types.U64, Wider(types.U16, types.U64))
	assert.Nil(t, Wider(types.Bool, types.Int))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(-128), Normalize(int64(128), types.I8))
	assert.Equal(t, int64(1), Normalize(int64(257), types.I8))
	assert.Equal(t, uint64(255), Normalize(int64(-1), types.U8))
	assert.Equal(t, uint64(7), Normalize(uint64(7), types.U64))
	assert.Equal(t, float64(float32(0.1)), Normalize(0.1, types.Float))
	assert.Equal(t, 2.0, Normalize(int64(2), types.Double))
	assert.Equal(t, "x", Normalize("x", types.String))
}

func TestEvalBinary(t *testing.T) {
	t.Parallel()

	eval := func(syntax string, lt, rt symbols.Type, l, r interface{}) interface{} {
		op := BindBinaryOperator(syntax, lt, rt)
		require.NotNil(t, op, syntax)
		v, err := EvalBinary(op, l, r)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, int64(7), eval("+", types.Int, types.Int, int64(3), int64(4)))
	assert.Equal(t, int64(-128), eval("+", types.I8, types.I8, int64(127), int64(1)))
	assert.Equal(t, int64(300), eval("+", types.I8, types.I16, int64(100), int64(200)))
	assert.Equal(t, uint64(1), eval("%", types.U32, types.U32, uint64(7), uint64(3)))
	assert.Equal(t, true, eval("<=", types.Double, types.Double, 1.5, 1.5))
	assert.Equal(t, false, eval("&&", types.Bool, types.Bool, true, false))
	assert.Equal(t, "ab", eval("+", types.String, types.String, "a", "b"))
	assert.Equal(t, true, eval("!==", types.String, types.String, "a", "b"))

	_, err := EvalBinary(BindBinaryOperator("/", types.Int, types.Int), int64(1), int64(0))
	assert.Equal(t, ErrDivisionByZero, err)
}

func TestIntegerArithmeticWraps(t *testing.T) {
	t.Parallel()

	add := BindBinaryOperator("+", types.I32, types.I32)
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Int32().Draw(t, "a")
		b := rapid.Int32().Draw(t, "b")
		v, err := EvalBinary(add, int64(a), int64(b))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v.(int64) != int64(a+b) {
			t.Fatalf("%v + %v = %v, expected %v", a, b, v, a+b)
		}
	})
}

func TestConstant(t *testing.T) {
	t.Parallel()

	one := NewLiteral(int64(1), types.Int)
	two := NewLiteral(int64(2), types.Int)
	lt := &BinaryExpression{Left: one, Operator: BindBinaryOperator("<", types.Int, types.Int), Right: two}
	c := Constant(lt)
	require.NotNil(t, c)
	assert.Equal(t, true, c.Value)

	not := &UnaryExpression{Operator: BindUnaryOperator("!", types.Bool), Operand: lt}
	assert.Equal(t, false, Constant(not).Value)

	v := symbols.NewLocalVariable("x", types.Int, false, nil, nil)
	assert.Nil(t, Constant(&VariableExpression{Variable: v}))
	k := symbols.NewLocalVariable("k", types.Int, true, &symbols.Constant{Value: int64(3)}, nil)
	assert.Equal(t, int64(3), Constant(&VariableExpression{Variable: k}).Value)

	zero := NewLiteral(int64(0), types.Int)
	div := &BinaryExpression{Left: one, Operator: BindBinaryOperator("/", types.Int, types.Int), Right: zero}
	assert.Nil(t, Constant(div))
}

func TestLabelGenerator(t *testing.T) {
	t.Parallel()

	g := LabelGenerator{Prefix: "L"}
	names := make([]string, 11)
	for i := range names {
		names[i] = g.Next().Name
	}
	assert.Equal(t, "L1", names[0])
	assert.Equal(t, "La", names[9])
	assert.Equal(t, "Lb", names[10])
}

func TestPrint(t *testing.T) {
	t.Parallel()

	i := symbols.NewLocalVariable("i", types.Int, false, nil, nil)
	brk, cont := &Label{Name: "B1"}, &Label{Name: "C1"}
	lt := BindBinaryOperator("<", types.Int, types.Int)
	add := BindBinaryOperator("+", types.Int, types.Int)
	body := &BlockStatement{Statements: []Statement{
		&VariableDeclaration{Variable: i, Initializer: NewLiteral(int64(0), types.Int)},
		&LabelStatement{Label: cont},
		&ConditionalGotoStatement{
			Label:     brk,
			Condition: &BinaryExpression{Left: &VariableExpression{Variable: i}, Operator: lt, Right: NewLiteral(int64(3), types.Int)},
		},
		&ExpressionStatement{Expression: &AssignmentExpression{
			Target: &VariableExpression{Variable: i},
			Value:  &BinaryExpression{Left: &VariableExpression{Variable: i}, Operator: add, Right: NewLiteral(int64(1), types.Int)},
		}},
		&GotoStatement{Label: cont},
		&LabelStatement{Label: brk},
		&ReturnStatement{},
	}}
	expected := `{
    var i: Int = 0
    C1:
    goto B1 unless (i < 3)
    i = (i + 1)
    goto C1
    B1:
    return
}`
	assert.Equal(t, expected, String(body))
	assert.Equal(t, `"hi"`, String(NewLiteral("hi", types.String)))
}

func TestInspect(t *testing.T) {
	t.Parallel()

	x := symbols.NewLocalVariable("x", types.Bool, false, nil, nil)
	tree := &IfStatement{
		Condition: &VariableExpression{Variable: x},
		Then:      &ExpressionStatement{Expression: NewLiteral(true, types.Bool)},
		Else:      &NopStatement{},
	}
	var kinds []NodeKind
	Inspect(tree, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})
	assert.Equal(t, []NodeKind{
		IfStatementKind, VariableExpressionKind, ExpressionStatementKind, LiteralExpressionKind, NopStatementKind,
	}, kinds)
}
