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

package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrip(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", Strip("plain"))
	assert.Equal(t, "foobar", Strip(Red+"foo"+Green+"bar"+Reset))
	assert.Equal(t, "foo"+colorLeft+"fg", Strip(Red+"foo"+colorLeft+"fg"))
}

func TestColorizeWithoutDirectives(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "nothing to see here", ColorizeText("nothing to see here"))
}

func TestColorizeConsumesDirectives(t *testing.T) {
	t.Parallel()

	s := ColorizeText(Red + "alert" + Reset)
	assert.Contains(t, s, "alert")
	assert.NotContains(t, s, colorLeft)
	assert.NotContains(t, s, colorRight)
}
