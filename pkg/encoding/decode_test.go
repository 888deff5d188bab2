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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/pulumi/lumi/pkg/compiler/ast"
)

const jsonTree = `{
    "kind": "SyntaxTree",
    "projectPath": "app.main",
    "file": "main.lumi",
    "members": [
        {
            "kind": "FunctionDeclaration",
            "name": {"kind": "Identifier", "ident": "main", "loc": {"start": {"line": 1, "column": 4, "offset": 3}}},
            "annotations": [{"kind": "Annotation", "name": "entry"}],
            "body": {
                "kind": "BlockStatement",
                "statements": [
                    {
                        "kind": "VariableDeclaration",
                        "keyword": "var",
                        "name": "i",
                        "initializer": {"kind": "LiteralExpression", "value": 0}
                    },
                    {
                        "kind": "WhileStatement",
                        "condition": {
                            "kind": "BinaryExpression",
                            "left": {"kind": "NameExpression", "name": "i"},
                            "operator": "<",
                            "right": {"kind": "LiteralExpression", "value": 3}
                        },
                        "body": {"kind": "BlockStatement", "statements": []}
                    }
                ]
            }
        }
    ],
    "diagnostics": [{"severity": "warning", "message": "unused"}]
}`

const yamlTree = `
kind: SyntaxTree
projectPath: app
members:
  - kind: VariableDeclaration
    name: pi
    type: Double
    initializer:
      kind: LiteralExpression
      value: 3.14
  - kind: UseStatement
    path: [lumi, io]
    include: true
  - kind: StructDeclaration
    name: Point
    fields:
      - {kind: StructField, name: x, type: Int}
      - kind: StructField
        name: next
        type: {kind: TypeClause, name: Ptr, param: Point}
`

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tree, err := DecodeSyntaxTree(JSON, []byte(jsonTree))
	require.NoError(t, err)
	assert.Equal(t, "app.main", tree.ProjectPath)
	require.Len(t, tree.Members, 1)
	require.Len(t, tree.Diagnostics, 1)
	assert.Equal(t, "warning", tree.Diagnostics[0].Severity)

	fn, ok := tree.Members[0].(*ast.FunctionDeclaration)
	require.True(t, ok)
	assert.Equal(t, "main", fn.Name.Ident)
	require.NotNil(t, fn.Name.Loc)
	assert.Equal(t, "main.lumi", *fn.Name.Loc.File)
	assert.Equal(t, int64(3), fn.Name.Loc.Start.Offset)
	require.Len(t, fn.Annotations, 1)
	assert.Equal(t, "entry", fn.Annotations[0].Name.Ident)

	require.Len(t, fn.Body.Statements, 2)
	decl := fn.Body.Statements[0].(*ast.VariableDeclaration)
	assert.False(t, decl.IsReadOnly())
	assert.Equal(t, int64(0), decl.Initializer.(*ast.LiteralExpression).Value)

	loop := fn.Body.Statements[1].(*ast.WhileStatement)
	cond := loop.Condition.(*ast.BinaryExpression)
	assert.Equal(t, "<", cond.Operator.Text)
	assert.False(t, cond.IsDot())
}

func TestDecodeYAML(t *testing.T) {
	t.Parallel()

	tree, err := DecodeSyntaxTree(YAML, []byte(yamlTree))
	require.NoError(t, err)
	require.Len(t, tree.Members, 3)

	pi := tree.Members[0].(*ast.VariableDeclaration)
	assert.True(t, pi.IsReadOnly())
	assert.Equal(t, "Double", pi.Type.String())
	assert.Equal(t, 3.14, pi.Initializer.(*ast.LiteralExpression).Value)

	use := tree.Members[1].(*ast.UseStatement)
	assert.Equal(t, "lumi.io", use.Dotted())
	assert.True(t, use.Include)

	point := tree.Members[2].(*ast.StructDeclaration)
	require.Len(t, point.Fields, 2)
	assert.Equal(t, "Ptr[Point]", point.Fields[1].Type.String())
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"not an object":  `[1, 2, 3]`,
		"wrong root":     `{"kind": "BlockStatement"}`,
		"missing path":   `{"kind": "SyntaxTree"}`,
		"unknown member": `{"kind": "SyntaxTree", "projectPath": "a", "members": [{"kind": "Class"}]}`,
		"bad keyword":    `{"kind": "SyntaxTree", "projectPath": "a", "members": [{"kind": "VariableDeclaration", "keyword": "let", "name": "x", "initializer": {"kind": "LiteralExpression", "value": 1}}]}`,
		"missing init":   `{"kind": "SyntaxTree", "projectPath": "a", "members": [{"kind": "VariableDeclaration", "name": "x"}]}`,
		"bad literal":    `{"kind": "SyntaxTree", "projectPath": "a", "members": [{"kind": "VariableDeclaration", "name": "x", "initializer": {"kind": "LiteralExpression", "value": [1]}}]}`,
		"bad position":   `{"kind": "SyntaxTree", "projectPath": "a", "loc": {"start": {"line": "one"}}}`,
		"malformed json": `{"kind": `,
		"empty use path": `{"kind": "SyntaxTree", "projectPath": "a", "members": [{"kind": "UseStatement", "path": []}]}`,
		"block expected": `{"kind": "SyntaxTree", "projectPath": "a", "members": [{"kind": "FunctionDeclaration", "name": "f", "body": {"kind": "BreakStatement"}}]}`,
		"unknown expr":   `{"kind": "SyntaxTree", "projectPath": "a", "members": [{"kind": "ReplStatement", "statement": {"kind": "ExpressionStatement", "expression": {"kind": "Lambda"}}}]}`,
	}
	for name, src := range cases {
		_, err := DecodeSyntaxTree(JSON, []byte(src))
		assert.Error(t, err, name)
	}
}

func TestDecodeNeverPanics(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		b := rapid.SliceOf(rapid.Byte()).Draw(t, "bytes")
		_, _ = DecodeSyntaxTree(JSON, b)
	})
}

func TestDetect(t *testing.T) {
	t.Parallel()

	m, ext := Detect("tree.yml")
	assert.Equal(t, ".yml", ext)
	assert.True(t, m.IsYAMLLike())

	m, ext = Detect("tree")
	assert.Equal(t, JSONExt, ext)
	assert.True(t, m.IsJSONLike())
}
