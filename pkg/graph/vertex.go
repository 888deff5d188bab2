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

// Package graph contains the generic directed graph interfaces used by the compiler's flow analyses, together with
// the traversals that operate on them.
package graph

// Graph is an instance of a directed graph.
type Graph interface {
	Roots() []Vertex // the vertices that traversals start from.
}

// Vertex is a single vertex within an overall graph.
type Vertex interface {
	Label() string // a human-friendly name for this vertex, used when rendering the graph.
	Ins() []Edge   // incoming edges from other vertices within the graph to this vertex.
	Outs() []Edge  // outgoing edges from this vertex to other vertices within the graph.
}

// Edge is a directed edge from one vertex to another.
type Edge interface {
	Label() string // a human-friendly description of this edge, possibly empty.
	From() Vertex  // the vertex this edge connects from.
	To() Vertex    // the vertex this edge connects to.
}
