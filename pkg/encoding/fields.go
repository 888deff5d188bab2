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

package encoding

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/pulumi/lumi/pkg/compiler/ast"
)

// Object is a weakly typed serialized node.
type Object = map[string]interface{}

func errMissing(ty ast.NodeKind, key string) error {
	return errors.Errorf("%v is missing required field '%v'", ty, key)
}

func errWrongType(ty ast.NodeKind, key string, expect string, got interface{}) error {
	return errors.Errorf("%v field '%v' must be %v; got %T", ty, key, expect, got)
}

// asObject accepts both the string-keyed maps produced by encoding/json and yaml.v3 and the interface-keyed maps that
// YAML produces for non-string keys.
func asObject(v interface{}) (Object, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		obj := make(Object, len(m))
		for k, e := range m {
			obj[fmt.Sprintf("%v", k)] = e
		}
		return obj, true
	}
	return nil, false
}

func fieldObject(obj Object, ty ast.NodeKind, key string, required bool) (Object, error) {
	v, has := obj[key]
	if !has || v == nil {
		if required {
			return nil, errMissing(ty, key)
		}
		return nil, nil
	}
	o, ok := asObject(v)
	if !ok {
		return nil, errWrongType(ty, key, "an object", v)
	}
	return o, nil
}

func fieldArray(obj Object, ty ast.NodeKind, key string, required bool) ([]interface{}, error) {
	v, has := obj[key]
	if !has || v == nil {
		if required {
			return nil, errMissing(ty, key)
		}
		return nil, nil
	}
	a, ok := v.([]interface{})
	if !ok {
		return nil, errWrongType(ty, key, "an array", v)
	}
	return a, nil
}

func fieldString(obj Object, ty ast.NodeKind, key string, required bool) (string, error) {
	v, has := obj[key]
	if !has || v == nil {
		if required {
			return "", errMissing(ty, key)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errWrongType(ty, key, "a string", v)
	}
	return s, nil
}

func fieldBool(obj Object, ty ast.NodeKind, key string) (bool, error) {
	v, has := obj[key]
	if !has || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, errWrongType(ty, key, "a bool", v)
	}
	return b, nil
}

func fieldInt(obj Object, ty ast.NodeKind, key string) (int64, error) {
	v, has := obj[key]
	if !has || v == nil {
		return 0, nil
	}
	n, ok := number(v)
	if !ok {
		return 0, errWrongType(ty, key, "a number", v)
	}
	i, ok := n.(int64)
	if !ok {
		return 0, errWrongType(ty, key, "an integer", v)
	}
	return i, nil
}

// number normalizes the numeric representations of both marshalers to int64 or float64.
func number(v interface{}) (interface{}, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return f, true
		}
		return nil, false
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case float64:
		return n, true
	}
	return nil, false
}

// nodeValue decodes the discriminator and location shared by all nodes.
func nodeValue(obj Object, kind ast.NodeKind) (ast.NodeValue, error) {
	loc, err := decodeLocation(obj, kind)
	if err != nil {
		return ast.NodeValue{}, err
	}
	return ast.NodeValue{Kind: kind, Loc: loc}, nil
}

func nodeKind(obj Object, family string) (ast.NodeKind, error) {
	k, has := obj["kind"]
	if !has {
		return "", errors.Errorf("%v is missing required field 'kind'", family)
	}
	s, ok := k.(string)
	if !ok {
		return "", errors.Errorf("%v field 'kind' must be a string; got %T", family, k)
	}
	return ast.NodeKind(s), nil
}

func decodeLocation(obj Object, ty ast.NodeKind) (*ast.Location, error) {
	l, err := fieldObject(obj, ty, "loc", false)
	if err != nil || l == nil {
		return nil, err
	}
	var loc ast.Location
	if file, err := fieldString(l, ty, "file", false); err != nil {
		return nil, err
	} else if file != "" {
		loc.File = &file
	}
	start, err := fieldObject(l, ty, "start", true)
	if err != nil {
		return nil, errors.Wrap(err, "decoding location")
	}
	if loc.Start, err = decodePosition(start, ty); err != nil {
		return nil, err
	}
	end, err := fieldObject(l, ty, "end", false)
	if err != nil {
		return nil, err
	}
	if end != nil {
		p, err := decodePosition(end, ty)
		if err != nil {
			return nil, err
		}
		loc.End = &p
	}
	return &loc, nil
}

func decodePosition(obj Object, ty ast.NodeKind) (ast.Position, error) {
	var pos ast.Position
	var err error
	if pos.Line, err = fieldInt(obj, ty, "line"); err != nil {
		return pos, err
	}
	if pos.Column, err = fieldInt(obj, ty, "column"); err != nil {
		return pos, err
	}
	if pos.Offset, err = fieldInt(obj, ty, "offset"); err != nil {
		return pos, err
	}
	return pos, nil
}
