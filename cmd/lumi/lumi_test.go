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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mainTree = `
kind: SyntaxTree
projectPath: hello
members:
  - kind: FunctionDeclaration
    name: main
    annotations: [{name: entry}]
    body:
      kind: BlockStatement
      statements:
        - {kind: VariableDeclaration, keyword: val, name: answer, initializer: {kind: LiteralExpression, value: 42}}
`

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Lumi.yaml"),
		[]byte("name: HelloWorld\nversion: 1.0.0\nsources: [src/main.yaml]\n"), 0600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "main.yaml"), []byte(mainTree), 0600))
	return dir
}

func TestIsProjectArg(t *testing.T) {
	t.Parallel()

	dir := writeProject(t)
	assert.True(t, isProjectArg(nil))
	assert.True(t, isProjectArg([]string{dir}))
	assert.True(t, isProjectArg([]string{filepath.Join(dir, "Lumi.yaml")}))
	assert.False(t, isProjectArg([]string{filepath.Join(dir, "src", "main.yaml")}))
	assert.False(t, isProjectArg([]string{"a.yaml", "b.yaml"}))
}

func TestLoadCompilationFromProject(t *testing.T) {
	t.Parallel()

	dir := writeProject(t)
	comp, proj, err := loadCompilation([]string{dir}, nil)
	require.NoError(t, err)
	require.NotNil(t, proj)
	assert.Equal(t, "HelloWorld", comp.Options().ModuleName)
	assert.Len(t, comp.Trees, 1)
	assert.Equal(t, filepath.Join(dir, "hello_world"), proj.OutputPath())

	comp, proj, err = loadCompilation([]string{filepath.Join(dir, "src", "main.yaml")}, nil)
	require.NoError(t, err)
	assert.Nil(t, proj)
	assert.Equal(t, "lumi", comp.Options().ModuleName)
}

func TestEmitCommand(t *testing.T) {
	dir := writeProject(t)
	out := filepath.Join(t.TempDir(), "hello.ll")

	cmd := NewLumiCmd()
	cmd.SetArgs([]string{"emit", dir, "-o", out, "--target", "x86_64-pc-linux-gnu"})
	require.NoError(t, cmd.Execute())

	ir, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(ir), "define i32 @main()")
	assert.Contains(t, string(ir), `target triple = "x86_64-pc-linux-gnu"`)
}

func TestCheckAndCFGCommands(t *testing.T) {
	dir := writeProject(t)
	dot := filepath.Join(t.TempDir(), "main.dot")

	cmd := NewLumiCmd()
	cmd.SetArgs([]string{"check", dir})
	require.NoError(t, cmd.Execute())

	cmd = NewLumiCmd()
	cmd.SetArgs([]string{"cfg", dir, "-o", dot})
	require.NoError(t, cmd.Execute())
	b, err := os.ReadFile(dot)
	require.NoError(t, err)
	assert.Contains(t, string(b), `digraph "hello.main"`)
}
