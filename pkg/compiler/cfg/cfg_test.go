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

package cfg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
)

func block(stmts ...bound.Statement) *bound.BlockStatement {
	return &bound.BlockStatement{Statements: stmts}
}

func ret(v int64) *bound.ReturnStatement {
	return &bound.ReturnStatement{Expression: bound.NewLiteral(v, types.Int)}
}

func flag() bound.Expression {
	return &bound.VariableExpression{Variable: symbols.NewParameter("b", types.Bool, nil)}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	l := &bound.Label{Name: "L1"}
	g := Build(block(
		&bound.ConditionalGotoStatement{Label: l, Condition: flag()},
		ret(1),
		&bound.LabelStatement{Label: l},
		ret(2),
	))
	require.Len(t, g.Blocks, 5)
	assert.True(t, g.Blocks[0].IsStart)
	assert.True(t, g.Blocks[4].IsEnd)
	assert.Len(t, g.Start.Outs(), 1)
	assert.Len(t, g.Blocks[1].Outs(), 2)
	assert.Len(t, g.End.Ins(), 2)
}

func TestAllPathsReturn(t *testing.T) {
	t.Parallel()

	l := &bound.Label{Name: "L1"}
	assert.False(t, AllPathsReturn(block()))
	assert.True(t, AllPathsReturn(block(ret(1))))
	assert.True(t, AllPathsReturn(block(
		&bound.ConditionalGotoStatement{Label: l, Condition: flag()},
		ret(1),
		&bound.LabelStatement{Label: l},
		ret(2),
	)))
	assert.False(t, AllPathsReturn(block(
		&bound.ConditionalGotoStatement{Label: l, Condition: flag()},
		ret(1),
		&bound.LabelStatement{Label: l},
	)))

	// An infinite loop never reaches the end, so it vacuously returns on all paths.
	assert.True(t, AllPathsReturn(block(
		&bound.LabelStatement{Label: l},
		&bound.GotoStatement{Label: l},
	)))
}

func TestReachableStatements(t *testing.T) {
	t.Parallel()

	l := &bound.Label{Name: "L1"}
	dead := &bound.ExpressionStatement{Expression: bound.NewLiteral(int64(0), types.Int)}
	deadLabel := &bound.LabelStatement{Label: &bound.Label{Name: "L2"}}
	live := ret(2)
	body := block(
		&bound.GotoStatement{Label: l},
		dead,
		deadLabel,
		&bound.LabelStatement{Label: l},
		live,
	)
	reach := ReachableStatements(body)
	assert.True(t, reach[body.Statements[0]])
	assert.False(t, reach[dead])
	assert.False(t, reach[deadLabel])
	assert.True(t, reach[live])
}

func TestWriteDot(t *testing.T) {
	t.Parallel()

	l := &bound.Label{Name: "L1"}
	g := Build(block(
		&bound.ConditionalGotoStatement{Label: l, Condition: flag()},
		ret(1),
		&bound.LabelStatement{Label: l},
		ret(2),
	))
	var buf bytes.Buffer
	require.NoError(t, WriteDot(&buf, g, "f"))
	out := buf.String()
	assert.Contains(t, out, "digraph \"f\" {")
	assert.Contains(t, out, "N0 [label = \"<Start>\", shape = box]")
	assert.Contains(t, out, "N1 -> N3 [label = \"!b\"]")
	assert.Contains(t, out, "N1 -> N2 [label = \"b\"]")
	assert.Contains(t, out, "N3 -> N4")
}
