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
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pulumi/lumi/pkg/util/contract"
)

// Print writes a readable rendering of a bound node, one statement per line.
func Print(w io.Writer, node Node) error {
	p := &printer{w: w}
	switch n := node.(type) {
	case Statement:
		p.statement(n)
	case Expression:
		p.expression(n)
		p.newline()
	}
	return p.err
}

// String renders a bound node the way Print does.
func String(node Node) string {
	var buf bytes.Buffer
	contract.IgnoreError(Print(&buf, node))
	return strings.TrimRight(buf.String(), "\n")
}

type printer struct {
	w      io.Writer
	indent int
	err    error
}

func (p *printer) write(format string, args ...interface{}) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
	}
}

func (p *printer) line(format string, args ...interface{}) {
	p.write("%v", strings.Repeat("    ", p.indent))
	p.write(format, args...)
	p.newline()
}

func (p *printer) newline() {
	p.write("\n")
}

func (p *printer) statement(s Statement) {
	switch n := s.(type) {
	case *BlockStatement:
		p.block(n.Statements)
	case *ExpressionStatement:
		p.line("%v", p.expr(n.Expression))
	case *VariableDeclaration:
		kw := "var"
		if n.Variable.ReadOnly {
			kw = "val"
		}
		if n.Initializer == nil {
			p.line("%v %v: %v", kw, n.Variable.MangledName(), n.Variable.Ty)
		} else {
			p.line("%v %v: %v = %v", kw, n.Variable.MangledName(), n.Variable.Ty, p.expr(n.Initializer))
		}
	case *IfStatement:
		p.line("if %v", p.expr(n.Condition))
		p.nested(n.Then)
		if n.Else != nil {
			p.line("else")
			p.nested(n.Else)
		}
	case *WhileStatement:
		p.line("while %v", p.expr(n.Condition))
		p.nested(n.Body)
	case *ForStatement:
		p.line("for %v in %v..%v", n.Variable.MangledName(), p.expr(n.Lower), p.expr(n.Upper))
		p.nested(n.Body)
	case *LabelStatement:
		p.line("%v:", n.Label)
	case *GotoStatement:
		p.line("goto %v", n.Label)
	case *ConditionalGotoStatement:
		cond := "if"
		if !n.JumpIfTrue {
			cond = "unless"
		}
		p.line("goto %v %v %v", n.Label, cond, p.expr(n.Condition))
	case *ReturnStatement:
		if n.Expression == nil {
			p.line("return")
		} else {
			p.line("return %v", p.expr(n.Expression))
		}
	case *NopStatement:
		p.line("nop")
	default:
		contract.Failf("Unrecognized bound statement kind: %v", s.Kind())
	}
}

func (p *printer) nested(s Statement) {
	if _, isblock := s.(*BlockStatement); isblock {
		p.statement(s)
		return
	}
	p.indent++
	p.statement(s)
	p.indent--
}

func (p *printer) block(stmts []Statement) {
	p.line("{")
	p.indent++
	for _, s := range stmts {
		p.statement(s)
	}
	p.indent--
	p.line("}")
}

// expression prints an expression starting at the current column.
func (p *printer) expression(e Expression) {
	p.write("%v", p.expr(e))
}

// expr renders an expression.  Block expressions span several lines, indented one level deeper than the current
// statement.
func (p *printer) expr(e Expression) string {
	switch n := e.(type) {
	case *LiteralExpression:
		if s, ok := n.Value.(string); ok {
			return fmt.Sprintf("%q", s)
		}
		return fmt.Sprintf("%v", n.Value)
	case *VariableExpression:
		return n.Variable.MangledName()
	case *UnaryExpression:
		return n.Operator.Syntax + p.expr(n.Operand)
	case *BinaryExpression:
		return "(" + p.expr(n.Left) + " " + n.Operator.Syntax + " " + p.expr(n.Right) + ")"
	case *AssignmentExpression:
		return p.expr(n.Target) + " = " + p.expr(n.Value)
	case *CallExpression:
		return n.Function.Path() + "(" + p.exprs(n.Arguments) + ")"
	case *CastExpression:
		return n.Ty.Name() + "(" + p.expr(n.Expression) + ")"
	case *StructFieldAccess:
		return p.expr(n.Struct) + "." + n.FieldName()
	case *BlockExpression:
		var buf bytes.Buffer
		sub := &printer{w: &buf, indent: p.indent + 1}
		for _, s := range n.Statements {
			sub.statement(s)
		}
		return "{\n" + buf.String() + strings.Repeat("    ", p.indent) + "}"
	case *IfExpression:
		return "if " + p.expr(n.Condition) + " then " + p.expr(n.Then) + " else " + p.expr(n.Else)
	case *ReferenceExpression:
		return "&" + n.Variable.MangledName()
	case *PointerAccess:
		return p.expr(n.Pointer) + "[" + p.expr(n.Index) + "]"
	case *StructInitialization:
		var fields []string
		for i, f := range n.Fields {
			if f != nil {
				fields = append(fields, n.Ty.Fields[i].Name+": "+p.expr(f))
			}
		}
		return n.Ty.Name() + " { " + strings.Join(fields, ", ") + " }"
	case *PointerArrayInitialization:
		if n.Length != nil {
			return n.Ty.Name() + "(" + p.expr(n.Length) + ")"
		}
		return n.Ty.Name() + " { " + p.exprs(n.Elements) + " }"
	case *NamespaceFieldAccess:
		return n.Path
	case *ErrorExpression:
		return "?"
	}
	contract.Failf("Unrecognized bound expression kind: %v", e.Kind())
	return ""
}

func (p *printer) exprs(es []Expression) string {
	strs := make([]string, len(es))
	for i, e := range es {
		strs[i] = p.expr(e)
	}
	return strings.Join(strs, ", ")
}
