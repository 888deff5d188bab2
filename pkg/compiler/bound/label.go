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

package bound

import (
	"fmt"
)

// Label is a jump target.  Labels are compared by identity; the name only has to be unique within one function.
type Label struct {
	Name string
}

func (l *Label) String() string { return l.Name }

// LabelGenerator hands out labels named by a prefix and a hexadecimal sequence number, e.g. `L1`, `La`.
type LabelGenerator struct {
	Prefix string
	count  int
}

// Next returns a fresh label.
func (g *LabelGenerator) Next() *Label {
	g.count++
	return &Label{Name: fmt.Sprintf("%v%x", g.Prefix, g.count)}
}
