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

package emit

import (
	"fmt"
)

// InternalError reports a lowered program that breaks an invariant the binder and lowerer are supposed to
// guarantee.  It always indicates a compiler defect, never a problem with the program being compiled.
type InternalError struct {
	Function string // the mangled name of the function being emitted, if any.
	Message  string
}

func (e *InternalError) Error() string {
	if e.Function == "" {
		return "internal emission error: " + e.Message
	}
	return fmt.Sprintf("internal emission error in %v: %v", e.Function, e.Message)
}

// failf aborts emission of the current module.
func failf(fn string, format string, args ...interface{}) {
	panic(&InternalError{Function: fn, Message: fmt.Sprintf(format, args...)})
}
