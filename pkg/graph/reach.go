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

package graph

// Reachable returns the set of vertices reachable from the graph's roots, roots included.  Cycles, which every loop
// in a control flow graph produces, are fine.
func Reachable(g Graph) map[Vertex]bool {
	seen := make(map[Vertex]bool)
	work := append([]Vertex(nil), g.Roots()...)
	for len(work) > 0 {
		n := work[len(work)-1]
		work = work[:len(work)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		for _, e := range n.Outs() {
			if to := e.To(); !seen[to] {
				work = append(work, to)
			}
		}
	}
	return seen
}
