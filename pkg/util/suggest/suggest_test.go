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

package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosest(t *testing.T) {
	t.Parallel()

	names := []string{"println", "print", "readln", "typeof"}
	assert.Equal(t, "print", Closest("pirnt", names, MaxDistance))
	assert.Equal(t, "println", Closest("PrintLn", names, MaxDistance))
	assert.Equal(t, "", Closest("something", names, MaxDistance))
	assert.Equal(t, "", Closest("print", []string{"print"}, MaxDistance))
}

func TestClosestIsDeterministic(t *testing.T) {
	t.Parallel()

	// Both are one edit away; the alphabetically first wins.
	assert.Equal(t, "bat", Closest("cat", []string{"rat", "bat"}, MaxDistance))
}

func TestDidYouMean(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "; did you mean \"count\"?", DidYouMean("cont", []string{"count", "x"}))
	assert.Equal(t, "", DidYouMean("zzzzzz", []string{"count"}))
}
