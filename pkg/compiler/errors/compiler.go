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

// Compiler errors are in the [100-200) range.
var (
	ErrorIO                        = newError(100, "An IO error occurred during the current operation: %v")
	ErrorMissingProject            = newError(101, "No Lumi.yaml was found underneath the given path: %v")
	ErrorCouldNotReadProject       = newError(102, "An IO error occurred while reading the project file: %v")
	ErrorIllegalProjectSyntax      = newError(103, "A syntax error was detected while parsing the project file: %v")
	ErrorCouldNotReadTree          = newError(104, "The syntax tree '%v' could not be read: %v")
	WarningIllegalMarkupFileCasing = newWarning(105, "A %v-like file was located, but it has incorrect casing")
	WarningIllegalMarkupFileExt    = newWarning(
		106, "A %v-like file was located, but %v isn't a valid file extension (expected .json or .yaml)")
	ErrorNoSources      = newError(107, "The project '%v' lists no source syntax trees")
	ErrorInternalEmit   = newError(108, "An internal error occurred while emitting code: %v")
	ErrorToolchainStage = newError(109, "The %v step failed: %v")
)
