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

package diag

// ID is a unique diagnostics identifier.
type ID int

// Diag is an instance of an error or warning generated by the compiler.
type Diag struct {
	ID      ID        // a unique identifier; zero for messages that aren't catalogued.
	Message string    // a human-friendly message for this diagnostic, possibly a format string.
	Raw     bool      // true if Message is final text and must not be formatted.
	Doc     *Document // the document in which this diagnostic occurred.
	Loc     *Location // the document location at which this diagnostic occurred.
}

// Diagable can be used to determine a diagnostic's position.
type Diagable interface {
	Where() (*Document, *Location)
}

// Message returns an anonymous diagnostic with the given format string.
func Message(msg string) *Diag {
	return &Diag{Message: msg}
}

// RawMessage returns an anonymous diagnostic whose text is printed verbatim.
func RawMessage(msg string) *Diag {
	return &Diag{Message: msg, Raw: true}
}

// At adds a position to an existing diagnostic, returning a copy and leaving the original untouched.
func (diag *Diag) At(d Diagable) *Diag {
	if d == nil {
		return diag
	}
	doc, loc := d.Where()
	return diag.AtLocation(doc, loc)
}

// AtLocation is like At but accepts the document and location directly.
func (diag *Diag) AtLocation(doc *Document, loc *Location) *Diag {
	return &Diag{
		ID:      diag.ID,
		Message: diag.Message,
		Raw:     diag.Raw,
		Doc:     doc,
		Loc:     loc,
	}
}
