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

package lower

import (
	"github.com/golang/glog"

	"github.com/pulumi/lumi/pkg/compiler/bound"
	"github.com/pulumi/lumi/pkg/compiler/cfg"
)

// RemoveDeadCode drops the statements of a lowered body that no path from its start can reach.
func RemoveDeadCode(body *bound.BlockStatement) *bound.BlockStatement {
	reachable := cfg.ReachableStatements(body)
	stmts := make([]bound.Statement, 0, len(body.Statements))
	for _, s := range body.Statements {
		if reachable[s] {
			stmts = append(stmts, s)
		}
	}
	if removed := len(body.Statements) - len(stmts); removed > 0 && glog.V(7) {
		glog.V(7).Infof("Removed %v unreachable statements", removed)
	}
	return &bound.BlockStatement{Statements: stmts}
}
