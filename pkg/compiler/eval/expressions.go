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

package eval

import (
	"github.com/golang/glog"

	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/errors"
	"github.com/pulumi/lumi/pkg/compiler/types"
	"github.com/pulumi/lumi/pkg/util/contract"
)

// Expressions

func (e *evaluator) evalExpression(node bound.Expression) (Value, *Unwind) {
	// Simply switch on the node type and dispatch to the specific function, returning the value and Unwind info.
	switch n := node.(type) {
	case *bound.LiteralExpression:
		return n.Value, nil
	case *bound.VariableExpression:
		return e.lookup(n.Variable).value, nil
	case *bound.UnaryExpression:
		return e.evalUnaryExpression(n)
	case *bound.BinaryExpression:
		return e.evalBinaryExpression(n)
	case *bound.AssignmentExpression:
		return nil, e.evalAssignmentExpression(n)
	case *bound.CallExpression:
		return e.evalCallExpression(n)
	case *bound.CastExpression:
		return e.evalCastExpression(n)
	case *bound.StructFieldAccess:
		return e.evalStructFieldAccess(n)
	case *bound.ReferenceExpression:
		return &Reference{Type: n.Ty, Variable: n.Variable, cell: e.lookup(n.Variable)}, nil
	case *bound.PointerAccess:
		return e.evalPointerAccess(n)
	case *bound.StructInitialization:
		return e.evalStructInitialization(n)
	case *bound.PointerArrayInitialization:
		return e.evalPointerArrayInitialization(n)
	default:
		contract.Failf("Unexpected %v in a lowered body", node.Kind())
		return nil, nil
	}
}

func (e *evaluator) evalUnaryExpression(node *bound.UnaryExpression) (Value, *Unwind) {
	operand, uw := e.evalExpression(node.Operand)
	if uw != nil {
		return nil, uw
	}
	return bound.EvalUnary(node.Operator, operand), nil
}

func (e *evaluator) evalBinaryExpression(node *bound.BinaryExpression) (Value, *Unwind) {
	// Lowering already turned && and || with an impure right operand into jumps, so both operands are evaluated.
	lhs, uw := e.evalExpression(node.Left)
	if uw != nil {
		return nil, uw
	}
	rhs, uw := e.evalExpression(node.Right)
	if uw != nil {
		return nil, uw
	}
	res, err := bound.EvalBinary(node.Operator, lhs, rhs)
	if err == bound.ErrDivisionByZero {
		return nil, e.abort(errors.ErrorDivisionByZero, e.where())
	}
	contract.AssertNoError(err)
	return res, nil
}

func (e *evaluator) evalAssignmentExpression(node *bound.AssignmentExpression) *Unwind {
	value, uw := e.evalExpression(node.Value)
	if uw != nil {
		return uw
	}
	if glog.V(7) {
		glog.V(7).Infof("Assigning %v", Format(value))
	}

	switch target := node.Target.(type) {
	case *bound.VariableExpression:
		e.lookup(target.Variable).value = value
	case *bound.StructFieldAccess:
		s, uw := e.evalStruct(target.Struct)
		if uw != nil {
			return uw
		}
		s.Fields[target.Field] = value
	case *bound.PointerAccess:
		c, uw := e.evalElement(target)
		if uw != nil {
			return uw
		}
		*c = value
	default:
		contract.Failf("Unexpected assignment target %v", target.Kind())
	}
	return nil
}

func (e *evaluator) evalCallExpression(node *bound.CallExpression) (Value, *Unwind) {
	args := make([]Value, len(node.Arguments))
	for i, arg := range node.Arguments {
		var uw *Unwind
		if args[i], uw = e.evalExpression(arg); uw != nil {
			return nil, uw
		}
	}
	return e.evalCall(node.Function, args)
}

func (e *evaluator) evalCastExpression(node *bound.CastExpression) (Value, *Unwind) {
	v, uw := e.evalExpression(node.Expression)
	if uw != nil {
		return nil, uw
	}
	return convert(v, node.Expression.Type(), node.Ty), nil
}

func (e *evaluator) evalStructFieldAccess(node *bound.StructFieldAccess) (Value, *Unwind) {
	s, uw := e.evalStruct(node.Struct)
	if uw != nil {
		return nil, uw
	}
	return s.Fields[node.Field], nil
}

// evalStruct evaluates an expression of a struct type, failing on the null pointer.
func (e *evaluator) evalStruct(node bound.Expression) (*Struct, *Unwind) {
	v, uw := e.evalExpression(node)
	if uw != nil {
		return nil, uw
	}
	if v == nil {
		return nil, e.abort(errors.ErrorNullPointerDereference)
	}
	return v.(*Struct), nil
}

func (e *evaluator) evalPointerAccess(node *bound.PointerAccess) (Value, *Unwind) {
	c, uw := e.evalElement(node)
	if uw != nil {
		return nil, uw
	}
	return *c, nil
}

// evalElement finds the storage a pointer access refers to.  A reference to a variable behaves like an array
// holding the variable as its only element.
func (e *evaluator) evalElement(node *bound.PointerAccess) (*Value, *Unwind) {
	ptr, uw := e.evalExpression(node.Pointer)
	if uw != nil {
		return nil, uw
	}
	index, uw := e.evalExpression(node.Index)
	if uw != nil {
		return nil, uw
	}
	i := bound.Normalize(index, types.Int).(int64)
	if u, unsigned := index.(uint64); unsigned && u > uint64(1<<63-1) {
		i = -1
	}

	switch p := ptr.(type) {
	case nil:
		return nil, e.abort(errors.ErrorNullPointerDereference)
	case *Array:
		if i < 0 || i >= int64(len(p.Elements)) {
			return nil, e.abort(errors.ErrorIndexOutOfRange, index, len(p.Elements))
		}
		return &p.Elements[i], nil
	case *Reference:
		if i != 0 {
			return nil, e.abort(errors.ErrorIndexOutOfRange, index, 1)
		}
		return &p.cell.value, nil
	}
	contract.Failf("Unexpected pointer value %v", Format(ptr))
	return nil, nil
}

func (e *evaluator) evalStructInitialization(node *bound.StructInitialization) (Value, *Unwind) {
	s := &Struct{Type: node.Ty, Fields: make([]Value, len(node.Ty.Fields))}
	for i, field := range node.Ty.Fields {
		if i >= len(node.Fields) || node.Fields[i] == nil {
			s.Fields[i] = zero(field.Type)
			continue
		}
		var uw *Unwind
		if s.Fields[i], uw = e.evalExpression(node.Fields[i]); uw != nil {
			return nil, uw
		}
	}
	return s, nil
}

func (e *evaluator) evalPointerArrayInitialization(node *bound.PointerArrayInitialization) (Value, *Unwind) {
	arr := &Array{Type: node.Ty}
	if node.Length == nil {
		arr.Elements = make([]Value, len(node.Elements))
		for i, elem := range node.Elements {
			var uw *Unwind
			if arr.Elements[i], uw = e.evalExpression(elem); uw != nil {
				return nil, uw
			}
		}
		return arr, nil
	}

	length, uw := e.evalExpression(node.Length)
	if uw != nil {
		return nil, uw
	}
	n := bound.Normalize(length, types.Int).(int64)
	if n < 0 {
		return nil, e.abort(errors.ErrorIndexOutOfRange, length, 0)
	}
	arr.Elements = make([]Value, n)
	elem := zero(node.Ty.Element)
	for i := range arr.Elements {
		arr.Elements[i] = elem
	}
	return arr, nil
}
