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

package cmdutil

import (
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	single := multierror.Append(nil, errors.New("only"))
	assert.Equal(t, "only", errorMessage(single))

	multi := multierror.Append(nil, errors.New("first"), errors.New("second"))
	assert.Equal(t, "2 errors occurred:\n    0) first\n    1) second", errorMessage(multi))
}

func TestDetailedError(t *testing.T) {
	t.Parallel()

	err := errors.Wrap(errors.New("llc exploded"), "building app")
	msg := DetailedError(err)
	assert.True(t, strings.HasPrefix(msg, "building app: llc exploded\n"), msg)
	assert.Contains(t, msg, "CAUSED BY...")
	assert.Contains(t, msg, "TestDetailedError")
}
