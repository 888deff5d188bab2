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
	"math"

	"github.com/pkg/errors"

	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
	"github.com/pulumi/lumi/pkg/util/contract"
)

// ErrDivisionByZero is returned when an integer is divided by zero.
var ErrDivisionByZero = errors.New("division by zero")

// Normalize converts a value to the representation used for the given type: int64 for signed integers, truncated
// and sign-extended to the type's width; uint64 for unsigned integers, truncated to the type's width; float64 for
// floats, rounded to single precision for Float.  Values of other types are returned unchanged.
func Normalize(v interface{}, ty symbols.Type) interface{} {
	p := types.Primitive(ty)
	if p == nil {
		return v
	}
	switch p.Numeric {
	case symbols.SignedInteger:
		x := asInt64(v)
		if p.Bits < 64 {
			shift := uint(64 - p.Bits)
			x = (x << shift) >> shift
		}
		return x
	case symbols.UnsignedInteger:
		x := uint64(asInt64(v))
		if u, ok := v.(uint64); ok {
			x = u
		}
		if p.Bits < 64 {
			x &= (uint64(1) << uint(p.Bits)) - 1
		}
		return x
	case symbols.FloatingPoint:
		f := asFloat64(v)
		if p.Bits == 32 {
			f = float64(float32(f))
		}
		return f
	}
	return v
}

func asInt64(v interface{}) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case uint64:
		return int64(x)
	case float64:
		return int64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	}
	contract.Failf("Unexpected numeric value %v (%T)", v, v)
	return 0
}

func asFloat64(v interface{}) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	case int:
		return float64(x)
	case uint64:
		return float64(x)
	}
	contract.Failf("Unexpected numeric value %v (%T)", v, v)
	return 0
}

// EvalUnary applies a unary operator to a normalized operand.
func EvalUnary(op *UnaryOperator, v interface{}) interface{} {
	switch op.Op {
	case Identity:
		return v
	case LogicalNot:
		return !v.(bool)
	case Negation:
		switch x := v.(type) {
		case int64:
			return Normalize(-x, op.Result)
		case uint64:
			return Normalize(-x, op.Result)
		case float64:
			return -x
		}
	}
	contract.Failf("Unexpected unary operator %v on %v", op, v)
	return nil
}

// EvalBinary applies a binary operator to normalized operands.
func EvalBinary(op *BinaryOperator, l, r interface{}) (interface{}, error) {
	ty := op.OperandType()
	l, r = Normalize(l, ty), Normalize(r, ty)

	var res interface{}
	switch lv := l.(type) {
	case int64:
		rv := r.(int64)
		if (op.Op == Div || op.Op == Rem) && rv == 0 {
			return nil, ErrDivisionByZero
		}
		res = evalOrdered(op.Op, lv, rv, func() interface{} {
			switch op.Op {
			case Div:
				return lv / rv
			case Rem:
				return lv % rv
			case BitAnd:
				return lv & rv
			case BitOr:
				return lv | rv
			}
			return nil
		})
	case uint64:
		rv := r.(uint64)
		if (op.Op == Div || op.Op == Rem) && rv == 0 {
			return nil, ErrDivisionByZero
		}
		res = evalOrdered(op.Op, lv, rv, func() interface{} {
			switch op.Op {
			case Div:
				return lv / rv
			case Rem:
				return lv % rv
			case BitAnd:
				return lv & rv
			case BitOr:
				return lv | rv
			}
			return nil
		})
	case float64:
		rv := r.(float64)
		res = evalOrdered(op.Op, lv, rv, func() interface{} {
			switch op.Op {
			case Div:
				return lv / rv
			case Rem:
				return math.Mod(lv, rv)
			}
			return nil
		})
	case bool:
		rv := r.(bool)
		switch op.Op {
		case BitAnd, LogicAnd:
			res = lv && rv
		case BitOr, LogicOr:
			res = lv || rv
		case Equal, IdentityEqual:
			res = lv == rv
		case NotEqual, NotIdentityEqual:
			res = lv != rv
		}
	case string:
		rv := r.(string)
		switch op.Op {
		case Add:
			res = lv + rv
		case Equal, IdentityEqual:
			res = lv == rv
		case NotEqual, NotIdentityEqual:
			res = lv != rv
		}
	}
	if res == nil {
		contract.Failf("Unexpected binary operator %v on %v and %v", op, l, r)
	}
	return Normalize(res, op.Result), nil
}

type ordered interface {
	~int64 | ~uint64 | ~float64
}

// evalOrdered applies the operators shared by all numbers, deferring to other for the rest.
func evalOrdered[T ordered](op BinaryOperatorKind, l, r T, other func() interface{}) interface{} {
	switch op {
	case Add:
		return l + r
	case Sub:
		return l - r
	case Mul:
		return l * r
	case Less:
		return l < r
	case Greater:
		return l > r
	case LessOrEqual:
		return l <= r
	case GreaterOrEqual:
		return l >= r
	case Equal, IdentityEqual:
		return l == r
	case NotEqual, NotIdentityEqual:
		return l != r
	}
	return other()
}

// Constant returns the value of an expression if it is known at compile time, or nil.
func Constant(e Expression) *symbols.Constant {
	switch n := e.(type) {
	case *LiteralExpression:
		return &symbols.Constant{Value: n.Value}
	case *VariableExpression:
		return n.Variable.Constant
	case *UnaryExpression:
		if c := Constant(n.Operand); c != nil {
			return &symbols.Constant{Value: EvalUnary(n.Operator, c.Value)}
		}
	case *BinaryExpression:
		l := Constant(n.Left)
		if l == nil {
			return nil
		}
		r := Constant(n.Right)
		if r == nil {
			return nil
		}
		if v, err := EvalBinary(n.Operator, l.Value, r.Value); err == nil {
			return &symbols.Constant{Value: v}
		}
	}
	return nil
}
