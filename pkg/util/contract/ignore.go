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

package contract

import (
	"github.com/golang/glog"
)

// IgnoreError explicitly ignores an error; the error is still logged at a high verbosity so it isn't lost entirely.
func IgnoreError(err error) {
	if err != nil {
		glog.V(7).Infof("ignoring error: %v", err)
	}
}

// IgnoreClose closes and ignores the returned error.  This makes defer closes easier.
func IgnoreClose(cr interface{ Close() error }) {
	IgnoreError(cr.Close())
}
