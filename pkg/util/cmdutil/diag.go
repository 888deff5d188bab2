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
	"os"

	"github.com/pulumi/lumi/pkg/diag"
	"github.com/pulumi/lumi/pkg/util/contract"
)

var snk diag.Sink

// Diag lazily allocates a sink that writes to the standard streams, colorized when attached to a terminal.
func Diag() diag.Sink {
	if snk == nil {
		snk = diag.DefaultSink(DefaultFormatOptions())
	}
	return snk
}

// InitDiag forces initialization of the diagnostics sink with the given options.
func InitDiag(opts diag.FormatOptions) {
	contract.Assertf(snk == nil, "Cannot initialize diagnostics sink more than once")
	snk = diag.DefaultSink(opts)
}

// DefaultFormatOptions prints locations relative to the working directory, in color on terminals.
func DefaultFormatOptions() diag.FormatOptions {
	pwd, err := os.Getwd()
	if err != nil {
		pwd = ""
	}
	return diag.FormatOptions{Pwd: pwd, Colors: Interactive()}
}

// Report replays a list of diagnostics to the sink, errors last so they are the final thing on screen.
func Report(list *diag.List) {
	d := Diag()
	for _, dg := range list.NonErrorList() {
		d.Logf(dg.Severity, &diag.Diag{ID: dg.ID, Message: dg.Message, Raw: true, Doc: dg.Doc, Loc: dg.Loc})
	}
	for _, dg := range list.ErrorList() {
		d.Logf(dg.Severity, &diag.Diag{ID: dg.ID, Message: dg.Message, Raw: true, Doc: dg.Doc, Loc: dg.Loc})
	}
}
