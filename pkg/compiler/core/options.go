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

package core

import (
	"github.com/mitchellh/copystructure"
)

// Options contains all of the settings a user can use to control the compiler's behavior.
type Options struct {
	Interactive bool   // evaluate submissions of an interactive session instead of compiling a program.
	ModuleName  string // the name of the emitted IR module.
	Target      string // the target triple written into the IR module; empty for the host's default.
	DumpTrees   bool   // log the lowered bound tree of every function at V(3).
}

// DefaultOptions returns the default set of compiler options.
func DefaultOptions() *Options {
	return &Options{
		ModuleName: "lumi",
	}
}

// Clone returns a deep copy of these options.
func (opts *Options) Clone() *Options {
	return copystructure.Must(copystructure.Copy(opts)).(*Options)
}
