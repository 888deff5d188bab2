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

// Package cfg builds control flow graphs out of lowered function bodies.  The graphs answer two questions: whether
// every path through a function returns a value, and which statements can run at all.
package cfg

import (
	"fmt"
	"strings"

	"github.com/golang/glog"

	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/graph"
	"github.com/pulumi/lumi/pkg/util/contract"
)

// BasicBlock is a maximal run of statements that is only entered at the top and only left at the bottom.
type BasicBlock struct {
	ID         int
	IsStart    bool
	IsEnd      bool
	Statements []bound.Statement
	ins        []graph.Edge
	outs       []graph.Edge
}

var _ graph.Vertex = (*BasicBlock)(nil)

func (b *BasicBlock) Ins() []graph.Edge  { return b.ins }
func (b *BasicBlock) Outs() []graph.Edge { return b.outs }

func (b *BasicBlock) Label() string {
	switch {
	case b.IsStart:
		return "<Start>"
	case b.IsEnd:
		return "<End>"
	}
	lines := make([]string, len(b.Statements))
	for i, s := range b.Statements {
		lines[i] = bound.String(s)
	}
	return strings.Join(lines, "\n")
}

// Last returns the final statement of the block, or nil if it is empty.
func (b *BasicBlock) Last() bound.Statement {
	if len(b.Statements) == 0 {
		return nil
	}
	return b.Statements[len(b.Statements)-1]
}

// Branch is an edge between two blocks, taken unconditionally or when Condition evaluates to JumpIfTrue.
type Branch struct {
	from       *BasicBlock
	to         *BasicBlock
	Condition  bound.Expression // nil for unconditional branches.
	JumpIfTrue bool
}

var _ graph.Edge = (*Branch)(nil)

func (br *Branch) From() graph.Vertex { return br.from }
func (br *Branch) To() graph.Vertex   { return br.to }

func (br *Branch) Label() string {
	if br.Condition == nil {
		return ""
	}
	cond := bound.String(br.Condition)
	if !br.JumpIfTrue {
		return "!" + cond
	}
	return cond
}

// Graph is the control flow graph of a single function body.
type Graph struct {
	Start    *BasicBlock
	End      *BasicBlock
	Blocks   []*BasicBlock // every block, Start first and End last.
	Branches []*Branch
}

var _ graph.Graph = (*Graph)(nil)

func (g *Graph) Roots() []graph.Vertex { return []graph.Vertex{g.Start} }

// Build creates the control flow graph of a lowered, flattened function body.
func Build(body *bound.BlockStatement) *Graph {
	contract.Require(body != nil, "body")

	g := &Graph{}
	g.Start = g.newBlock()
	g.Start.IsStart = true

	// First split the statements into blocks: labels start a new block, and jumps end the current one.
	var blocks []*BasicBlock
	var current []bound.Statement
	flush := func() {
		if len(current) > 0 {
			b := g.newBlock()
			b.Statements = current
			blocks = append(blocks, b)
			current = nil
		}
	}
	for _, s := range body.Statements {
		if _, islabel := s.(*bound.LabelStatement); islabel {
			flush()
		}
		current = append(current, s)
		if bound.IsJump(s) {
			flush()
		}
	}
	flush()

	g.End = g.newBlock()
	g.End.IsEnd = true

	// Index the blocks by the labels they start with, so that jumps can find their targets.
	labels := make(map[*bound.Label]*BasicBlock)
	for _, b := range blocks {
		if l, islabel := b.Statements[0].(*bound.LabelStatement); islabel {
			labels[l.Label] = b
		}
	}
	target := func(l *bound.Label) *BasicBlock {
		b, has := labels[l]
		contract.Assertf(has, "Jump to undefined label %v", l)
		return b
	}

	// Now connect the blocks.
	if len(blocks) == 0 {
		g.connect(g.Start, g.End, nil, false)
	} else {
		g.connect(g.Start, blocks[0], nil, false)
	}
	for i, b := range blocks {
		next := g.End
		if i+1 < len(blocks) {
			next = blocks[i+1]
		}
		switch s := b.Last().(type) {
		case *bound.GotoStatement:
			g.connect(b, target(s.Label), nil, false)
		case *bound.ConditionalGotoStatement:
			g.connect(b, target(s.Label), s.Condition, s.JumpIfTrue)
			g.connect(b, next, s.Condition, !s.JumpIfTrue)
		case *bound.ReturnStatement:
			g.connect(b, g.End, nil, false)
		default:
			g.connect(b, next, nil, false)
		}
	}

	if glog.V(7) {
		glog.V(7).Infof("Built control flow graph with %v blocks and %v branches", len(g.Blocks), len(g.Branches))
	}
	return g
}

func (g *Graph) newBlock() *BasicBlock {
	b := &BasicBlock{ID: len(g.Blocks)}
	g.Blocks = append(g.Blocks, b)
	return b
}

func (g *Graph) connect(from, to *BasicBlock, cond bound.Expression, jumpIfTrue bool) {
	br := &Branch{from: from, to: to, Condition: cond, JumpIfTrue: jumpIfTrue}
	from.outs = append(from.outs, br)
	to.ins = append(to.ins, br)
	g.Branches = append(g.Branches, br)
}

// Reachable returns the blocks that can be reached from the start block.
func (g *Graph) Reachable() map[*BasicBlock]bool {
	reach := make(map[*BasicBlock]bool)
	for v := range graph.Reachable(g) {
		reach[v.(*BasicBlock)] = true
	}
	return reach
}

// AllPathsReturn is true if every path through a lowered body ends in a return statement, rather than falling off of
// its end.
func AllPathsReturn(body *bound.BlockStatement) bool {
	g := Build(body)
	reach := g.Reachable()
	for _, in := range g.End.Ins() {
		from := in.From().(*BasicBlock)
		if !reach[from] {
			continue
		}
		if _, isreturn := from.Last().(*bound.ReturnStatement); !isreturn {
			return false
		}
	}
	return true
}

// ReachableStatements returns the statements of a lowered body that can ever run.
func ReachableStatements(body *bound.BlockStatement) map[bound.Statement]bool {
	g := Build(body)
	stmts := make(map[bound.Statement]bool)
	for b := range g.Reachable() {
		for _, s := range b.Statements {
			stmts[s] = true
		}
	}
	return stmts
}

// blockName is the Graphviz identifier of a block.
func blockName(b *BasicBlock) string {
	return fmt.Sprintf("N%d", b.ID)
}
