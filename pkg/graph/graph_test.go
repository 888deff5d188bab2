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

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testVertex struct {
	name string
	ins  []Edge
	outs []Edge
}

func (v *testVertex) Label() string { return v.name }
func (v *testVertex) Ins() []Edge   { return v.ins }
func (v *testVertex) Outs() []Edge  { return v.outs }

type testEdge struct {
	from, to *testVertex
}

func (e *testEdge) Label() string { return "" }
func (e *testEdge) From() Vertex  { return e.from }
func (e *testEdge) To() Vertex    { return e.to }

func connect(from, to *testVertex) {
	e := &testEdge{from: from, to: to}
	from.outs = append(from.outs, e)
	to.ins = append(to.ins, e)
}

type testGraph struct {
	roots []Vertex
}

func (g *testGraph) Roots() []Vertex { return g.roots }

func TestReachable(t *testing.T) {
	t.Parallel()

	a, b, c, d := &testVertex{name: "a"}, &testVertex{name: "b"}, &testVertex{name: "c"}, &testVertex{name: "d"}
	connect(a, b)
	connect(b, a)
	connect(d, c)
	seen := Reachable(&testGraph{roots: []Vertex{a}})
	assert.True(t, seen[a])
	assert.True(t, seen[b])
	assert.False(t, seen[c])
	assert.False(t, seen[d])
}
