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

package workspace

import (
	"github.com/mitchellh/copystructure"
)

// Toolchain names the external tools that turn emitted IR into an executable.
// nolint: lll
type Toolchain struct {
	LLC         string   `json:"llc,omitempty" yaml:"llc,omitempty"`                 // the IR compiler; llc by default.
	Linker      string   `json:"linker,omitempty" yaml:"linker,omitempty"`           // the linker driver; gcc by default.
	LLCFlags    []string `json:"llcFlags,omitempty" yaml:"llcFlags,omitempty"`       // extra flags passed to the IR compiler.
	LinkerFlags []string `json:"linkerFlags,omitempty" yaml:"linkerFlags,omitempty"` // extra flags passed to the linker.
}

// toolchainKeys are the keys a project's toolchain block may contain.
var toolchainKeys = []string{"llc", "linker", "llcFlags", "linkerFlags"}

var defaultToolchain = Toolchain{
	LLC:    "llc",
	Linker: "gcc",
}

// DefaultToolchain returns a fresh copy of the default toolchain.
func DefaultToolchain() *Toolchain {
	return (*Toolchain)(nil).WithDefaults()
}

// WithDefaults returns a copy of this toolchain with unset tools filled in from the defaults.  A nil toolchain
// yields the defaults.
func (tc *Toolchain) WithDefaults() *Toolchain {
	src := tc
	if src == nil {
		src = &defaultToolchain
	}
	cp := copystructure.Must(copystructure.Copy(src)).(*Toolchain)
	if cp.LLC == "" {
		cp.LLC = defaultToolchain.LLC
	}
	if cp.Linker == "" {
		cp.Linker = defaultToolchain.Linker
	}
	return cp
}
