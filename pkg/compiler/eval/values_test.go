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
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
)

func TestConvert(t *testing.T) {
	t.Parallel()

	ptr := symbols.NewPointerType(types.I8, types.Any)
	arr := &Array{Type: ptr}
	cases := []struct {
		v        Value
		from, to symbols.Type
		expected Value
	}{
		{int64(300), types.Int, types.U8, uint64(44)},
		{int64(-1), types.I32, types.U16, uint64(0xffff)},
		{uint64(0xff), types.U8, types.I8, int64(-1)},
		{2.7, types.Double, types.Int, int64(2)},
		{int64(3), types.I16, types.Double, 3.0},
		{true, types.Bool, types.I32, int64(1)},
		{"s", types.String, types.String, "s"},
		{arr, ptr, symbols.NewPointerType(types.U8, types.Any), arr},
		{nil, ptr, types.Any, nil},
		{&Boxed{Value: "s", Type: types.String}, types.Any, types.String, "s"},
		{&Boxed{Value: int64(4), Type: types.Int}, types.Any, types.String, "4"},
		{nil, types.Any, types.String, ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, convert(c.v, c.from, c.to), "%v: %v -> %v", c.v, c.from, c.to)
	}
}

func TestBoxingRemembersTheType(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Int64().Draw(t, "x")
		boxed := convert(convert(x, types.Int, types.I32), types.I32, types.Any)
		assert.Equal(t, types.I32, TypeOf(boxed))
		assert.Equal(t, boxed, convert(boxed, types.Any, types.Any))
		assert.Equal(t, strconv.FormatInt(int64(int32(x)), 10), convert(boxed, types.Any, types.String))
	})
}

func TestFormat(t *testing.T) {
	t.Parallel()

	point := symbols.NewStructType("Point", types.Any, nil)
	point.Fields = []*symbols.Field{{Name: "x", Type: types.Int}, {Name: "y", Type: types.Double}}
	x := symbols.NewLocalVariable("x", types.Int, false, nil, nil)

	assert.Equal(t, "null", Format(nil))
	assert.Equal(t, "-3", Format(int64(-3)))
	assert.Equal(t, "18446744073709551615", Format(uint64(1<<64-1)))
	assert.Equal(t, "0.5", Format(0.5))
	assert.Equal(t, "true", Format(true))
	assert.Equal(t, "Point { x: 1, y: 2.5 }", Format(&Struct{Type: point, Fields: []Value{int64(1), 2.5}}))
	assert.Equal(t, "[1, null]", Format(&Array{Elements: []Value{int64(1), nil}}))
	assert.Equal(t, "&x", Format(&Reference{Variable: x}))
	assert.Equal(t, "hi", Format(&Boxed{Value: "hi", Type: types.String}))
	assert.Equal(t, types.Any, TypeOf(nil))
	assert.Equal(t, point, TypeOf(&Struct{Type: point}))
}
