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

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func discardSink() Sink {
	// Create a new default sink with /dev/null writers to avoid spamming the test log.
	return newDefaultSink(FormatOptions{}, map[Severity]io.Writer{
		Info:    io.Discard,
		Error:   io.Discard,
		Warning: io.Discard,
	})
}

func TestCounts(t *testing.T) {
	t.Parallel()

	sink := discardSink()

	const numEach = 10

	for i := 0; i < numEach; i++ {
		assert.Equal(t, 0, sink.Infos(), "expected infos pre to stay at zero")
		assert.Equal(t, 0, sink.Errors(), "expected errors pre to stay at zero")
		assert.Equal(t, i, sink.Warnings(), "expected warnings pre to be at iteration count")
		sink.Warningf(&Diag{Message: "A test of the emergency warning system: %v."}, i)
		assert.Equal(t, 0, sink.Infos(), "expected infos post to stay at zero")
		assert.Equal(t, 0, sink.Errors(), "expected errors post to stay at zero")
		assert.Equal(t, i+1, sink.Warnings(), "expected warnings post to be at iteration count+1")
	}

	for i := 0; i < numEach; i++ {
		assert.Equal(t, i, sink.Errors(), "expected errors pre to be at iteration count")
		assert.Equal(t, numEach, sink.Warnings(), "expected warnings pre to stay at numEach")
		sink.Errorf(&Diag{Message: "A test of the emergency error system: %v."}, i)
		assert.Equal(t, i+1, sink.Errors(), "expected errors post to be at iteration count+1")
		assert.Equal(t, numEach, sink.Warnings(), "expected warnings post to stay at numEach")
	}

	sink.Stylef(Message("consider rewriting this"))
	assert.Equal(t, numEach+1, sink.Warnings())
	assert.Equal(t, 2*numEach+1, sink.Count())
	assert.False(t, sink.Success())
}

// TestEscape ensures that arguments containing format-like characters aren't interpreted as such.
func TestEscape(t *testing.T) {
	t.Parallel()

	sink := discardSink()

	// Passing % chars in the argument should not yield %!(MISSING)s.
	s := sink.Stringify(Error, Message("%s"), "lots of %v %s %d chars")
	assert.Equal(t, "error: lots of %v %s %d chars\n", s)

	// Passing % chars in the format string, on the other hand, should.
	smiss := sink.Stringify(Error, Message("lots of %v %s %d chars"))
	assert.Equal(t, "error: lots of %!v(MISSING) %!s(MISSING) %!d(MISSING) chars\n", smiss)

	// Unless the message is raw.
	sraw := sink.Stringify(Error, RawMessage("100% done"))
	assert.Equal(t, "error: 100% done\n", sraw)
}

func TestStringifyLocation(t *testing.T) {
	t.Parallel()

	sink := newDefaultSink(FormatOptions{Pwd: "/src"}, map[Severity]io.Writer{
		Info:    io.Discard,
		Error:   io.Discard,
		Warning: io.Discard,
	})
	d := &Diag{ID: 501, Message: "Undefined name \"%v\""}
	d = d.AtLocation(NewDocument("/src/main.lumi"), &Location{Start: Pos{Line: 3, Column: 7, Offset: 21}})
	s := sink.Stringify(Error, d, "x")
	assert.Equal(t, "main.lumi(3,7): error LU501: Undefined name \"x\"\n", s)
}
