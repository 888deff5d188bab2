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

package errors

// Eval errors are in the [1000,2000) range.
var (
	ErrorDivisionByZero         = newError(1000, "Division by zero in %v")
	ErrorNullPointerDereference = newError(1001, "A null pointer was dereferenced")
	ErrorIndexOutOfRange        = newError(1002, "Index %v is out of range for a pointer array of length %v")
	ErrorUnresolvedFunction     = newError(1003, "Function '%v' has no body to evaluate")
	ErrorCantEvaluateExtern     = newError(1004, "Extern function '%v' can't be evaluated")
	ErrorStackOverflow          = newError(1005, "Calling '%v' exceeded the limit of %v nested calls")
)
