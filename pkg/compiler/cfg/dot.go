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

package cfg

import (
	"fmt"
	"io"
	"strings"
)

// WriteDot renders the graph in Graphviz's dot language.
func WriteDot(w io.Writer, g *Graph, name string) error {
	quote := func(s string) string {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		return "\"" + strings.ReplaceAll(s, "\n", "\\l") + "\""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "digraph %v {\n", quote(name))
	for _, block := range g.Blocks {
		label := block.Label()
		if !block.IsStart && !block.IsEnd {
			label += "\n"
		}
		fmt.Fprintf(&b, "    %v [label = %v, shape = box]\n", blockName(block), quote(label))
	}
	for _, br := range g.Branches {
		fmt.Fprintf(&b, "    %v -> %v", blockName(br.from), blockName(br.to))
		if l := br.Label(); l != "" {
			fmt.Fprintf(&b, " [label = %v]", quote(l))
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}
