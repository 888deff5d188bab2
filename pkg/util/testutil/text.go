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

package testutil

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
)

// AssertTextEqual compares two multi-line texts, reporting a mismatch as a line diff.
func AssertTextEqual(t testing.TB, expected, actual string) bool {
	t.Helper()
	if expected == actual {
		return true
	}
	return assert.Fail(t, "Texts differ", "diff (-expected +actual):\n%v", LineDiff(expected, actual))
}

// LineDiff renders the line-wise differences between two texts, prefixing removed lines with `-` and added lines with
// `+`.
func LineDiff(expected, actual string) string {
	differ := diffmatchpatch.New()
	differ.DiffTimeout = 0

	chars1, chars2, lines := differ.DiffLinesToChars(expected, actual)
	diffs := differ.DiffCharsToLines(differ.DiffMain(chars1, chars2, false), lines)

	var b strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line != "" {
				b.WriteString(prefix + strings.TrimSuffix(line, "\n") + "\n")
			}
		}
	}
	return b.String()
}

// Dump renders a value, following pointers, for failure messages.
func Dump(v interface{}) string {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
	return cfg.Sdump(v)
}
