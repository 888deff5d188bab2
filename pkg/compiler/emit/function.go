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

package emit

import (
	"strconv"

	"github.com/golang/glog"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	irtypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
)

// EntryBlockName is the label of every function's first block.
const EntryBlockName = "entry"

// functionEmitter emits the body of a single function.  It walks the flat statement list and keeps a cursor on the
// block being filled: labels start a new block, and conditional jumps continue in a fresh block for the case where
// the jump isn't taken.  Stack slots are collected separately and placed at the top of the entry block.
type functionEmitter struct {
	e       *emitter
	sym     *symbols.Function // nil for the init function.
	fn      *ir.Func
	name    string
	entry   *ir.Block
	cur     *ir.Block
	allocas []ir.Instruction
	names   map[string]int // how often each local name has been handed out.
	slots   map[*symbols.Variable]value.Value
	labels  map[*bound.Label]*ir.Block
	placed  map[*ir.Block]bool
}

func newFunctionEmitter(e *emitter, sym *symbols.Function, fn *ir.Func) *functionEmitter {
	fe := &functionEmitter{
		e:      e,
		sym:    sym,
		fn:     fn,
		name:   fn.Name(),
		names:  make(map[string]int),
		slots:  make(map[*symbols.Variable]value.Value),
		labels: make(map[*bound.Label]*ir.Block),
		placed: make(map[*ir.Block]bool),
	}
	for _, p := range fn.Params {
		p.SetName(fe.unique(p.Name()))
	}
	return fe
}

func (fe *functionEmitter) failf(format string, args ...interface{}) {
	failf(fe.name, format, args...)
}

// unique returns name, or name with a numeric suffix if it was handed out before.  Blocks and values share names.
func (fe *functionEmitter) unique(name string) string {
	n := fe.names[name]
	fe.names[name] = n + 1
	if n == 0 {
		return name
	}
	res := name + "." + strconv.Itoa(n)
	for fe.names[res] > 0 {
		n++
		res = name + "." + strconv.Itoa(n)
	}
	fe.names[res] = 1
	return res
}

// createBlock creates a block that jumps can target before it is placed.
func (fe *functionEmitter) createBlock(name string) *ir.Block {
	return ir.NewBlock(fe.unique(name))
}

// place appends a created block to the function and makes it the current one.
func (fe *functionEmitter) place(b *ir.Block) *ir.Block {
	b.Parent = fe.fn
	fe.fn.Blocks = append(fe.fn.Blocks, b)
	fe.placed[b] = true
	fe.cur = b
	return b
}

// block returns the block to append to.  Code following a terminator can't be reached, but still needs a block.
func (fe *functionEmitter) block() *ir.Block {
	if fe.cur.Term != nil {
		fe.place(fe.createBlock("bb"))
	}
	return fe.cur
}

// alloca reserves a named stack slot in the function's prologue, and returns its address.
func (fe *functionEmitter) alloca(name string, ty irtypes.Type) value.Value {
	slot := ir.NewAlloca(ty)
	slot.SetName(fe.unique(name))
	fe.allocas = append(fe.allocas, slot)
	return slot
}

func (fe *functionEmitter) retType() irtypes.Type { return fe.fn.Sig.RetType }

// emitBody emits a lowered statement list.  Parameters are spilled to stack slots first, so that every variable is
// read and written the same way.
func (fe *functionEmitter) emitBody(stmts []bound.Statement) {
	fe.entry = fe.place(fe.createBlock(EntryBlockName))
	if fe.sym != nil {
		for i, p := range fe.sym.Params {
			param := fe.fn.Params[i]
			slot := fe.alloca(p.RealName+".addr", param.Typ)
			fe.cur.NewStore(param, slot)
			fe.slots[p] = slot
		}
	}

	for _, s := range stmts {
		fe.emitStatement(s)
	}

	if fe.cur.Term == nil {
		switch {
		case fe.retType().Equal(irtypes.Void):
			fe.cur.NewRet(nil)
		case fe.exitsWithStatus():
			fe.cur.NewRet(constant.NewInt(irtypes.I32, 0))
		default:
			// Every path of a function with a result returns; the binder made sure of that.
			fe.cur.NewUnreachable()
		}
	}
	for l, b := range fe.labels {
		if !fe.placed[b] {
			fe.failf("label %v is jumped to but never placed", l)
		}
	}
	fe.entry.Insts = append(fe.allocas, fe.entry.Insts...)
}

// exitsWithStatus is true for entry functions that return nothing in the source, but an exit status in the IR.
func (fe *functionEmitter) exitsWithStatus() bool {
	return fe.sym != nil && fe.sym.Meta.Entry && fe.retType().Equal(irtypes.I32) &&
		fe.e.typ(fe.name, fe.sym.Return).Equal(irtypes.Void)
}

func (fe *functionEmitter) emitStatement(s bound.Statement) {
	if glog.V(7) {
		glog.V(7).Infof("Emitting %v in %v", s.Kind(), fe.name)
	}
	switch n := s.(type) {
	case *bound.ExpressionStatement:
		fe.value(n.Expression)
	case *bound.VariableDeclaration:
		fe.emitVariableDeclaration(n)
	case *bound.LabelStatement:
		target := fe.label(n.Label)
		if fe.placed[target] {
			fe.failf("label %v is placed twice", n.Label)
		}
		if fe.cur.Term == nil {
			fe.cur.NewBr(target)
		}
		fe.place(target)
	case *bound.GotoStatement:
		fe.block().NewBr(fe.label(n.Label))
	case *bound.ConditionalGotoStatement:
		cond := fe.value(n.Condition)
		target := fe.label(n.Label)
		next := fe.createBlock(n.Label.Name + ".else")
		if n.JumpIfTrue {
			fe.block().NewCondBr(cond, target, next)
		} else {
			fe.block().NewCondBr(cond, next, target)
		}
		fe.place(next)
	case *bound.ReturnStatement:
		fe.emitReturn(n)
	case *bound.NopStatement:
		// Nothing to emit.
	case *bound.BlockStatement, *bound.IfStatement, *bound.WhileStatement, *bound.ForStatement:
		fe.failf("%v wasn't lowered", s.Kind())
	default:
		fe.failf("unrecognized statement %v", s.Kind())
	}
}

func (fe *functionEmitter) label(l *bound.Label) *ir.Block {
	b, has := fe.labels[l]
	if !has {
		b = fe.createBlock(l.Name)
		fe.labels[l] = b
	}
	return b
}

func (fe *functionEmitter) emitVariableDeclaration(n *bound.VariableDeclaration) {
	v := n.Variable
	if v.IsGlobal() && fe.e.folded[v] {
		return
	}
	var val value.Value
	if n.Initializer != nil {
		val = fe.value(n.Initializer)
	} else {
		val = fe.zero(v.Ty)
	}
	if val == nil {
		fe.failf("variable %v is initialized without a value", v.Name())
	}
	fe.block().NewStore(val, fe.address(v))
}

// zero returns the value a variable declared without an initializer starts out with.
func (fe *functionEmitter) zero(ty symbols.Type) value.Value {
	if lit := bound.ZeroValue(ty); lit != nil {
		return fe.literal(lit)
	}
	ptr, isptr := fe.e.typ(fe.name, ty).(*irtypes.PointerType)
	if !isptr {
		fe.failf("type %v has no zero value", ty)
	}
	return constant.NewNull(ptr)
}

func (fe *functionEmitter) emitReturn(n *bound.ReturnStatement) {
	if n.Expression == nil {
		if fe.exitsWithStatus() {
			fe.block().NewRet(constant.NewInt(irtypes.I32, 0))
		} else {
			fe.block().NewRet(nil)
		}
		return
	}
	val := fe.value(n.Expression)
	if val == nil {
		fe.failf("return of %v has no value", n.Expression.Kind())
	}
	fe.block().NewRet(val)
}

// address returns the storage of a variable: the global itself, or the local's stack slot.
func (fe *functionEmitter) address(v *symbols.Variable) value.Value {
	if v.IsGlobal() {
		return fe.e.global(fe.name, v)
	}
	slot, has := fe.slots[v]
	if !has {
		if v.Kind() == symbols.ParameterKind {
			fe.failf("parameter %v doesn't belong to this function", v.Name())
		}
		slot = fe.alloca(v.RealName, fe.e.typ(fe.name, v.Ty))
		fe.slots[v] = slot
	}
	return slot
}
