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

// unwindKind tells how evaluation of a body stopped early.
type unwindKind int

const (
	returnUnwind unwindKind = iota // a return statement left the function.
	abortUnwind                    // a runtime error was reported and evaluation is abandoned.
)

// Unwind carries the reason why the evaluation of a body stopped before its end.  A return stops at the call that
// it returns from, while an abort propagates all the way out of the evaluation.
type Unwind struct {
	kind     unwindKind
	returned Value
}

func NewReturnUnwind(ret Value) *Unwind { return &Unwind{kind: returnUnwind, returned: ret} }
func NewAbortUnwind() *Unwind           { return &Unwind{kind: abortUnwind} }

func (uw *Unwind) Return() bool { return uw.kind == returnUnwind }
func (uw *Unwind) Abort() bool  { return uw.kind == abortUnwind }

// Returned is the value of a return unwind; it is nil for functions returning Unit.
func (uw *Unwind) Returned() Value { return uw.returned }
