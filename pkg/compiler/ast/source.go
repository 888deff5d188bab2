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

package ast

// Location is a location, possibly a region, in the source code.
type Location struct {
	File  *string   `json:"file,omitempty"` // an optional filename in which this location resides.
	Start Position  `json:"start"`          // a starting position.
	End   *Position `json:"end,omitempty"`  // an optional end position for a range (if nil, just a point).
}

// Position consists of a 1-indexed `line` number, a 1-indexed `column` number and a 0-indexed byte `offset`.
type Position struct {
	Line   int64 `json:"line"`   // a 1-based line number
	Column int64 `json:"column"` // a 1-based column number
	Offset int64 `json:"offset"` // a 0-based byte offset into the file
}

// Through returns a location spanning from the start of loc to the end of other.  Either may be nil.
func (loc *Location) Through(other *Location) *Location {
	if loc == nil {
		return other
	}
	if other == nil {
		return loc
	}
	end := other.End
	if end == nil {
		s := other.Start
		end = &s
	}
	return &Location{File: loc.File, Start: loc.Start, End: end}
}
