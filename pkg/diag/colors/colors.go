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

package colors

import (
	"fmt"
	"strings"

	"github.com/reconquest/loreley"

	"github.com/pulumi/lumi/pkg/util/contract"
)

const colorLeft = "<{%"
const colorRight = "%}>"

func init() {
	// Change the Loreley delimiters from { and }, to something more complex, to avoid accidental collisions.
	loreley.DelimLeft = colorLeft
	loreley.DelimRight = colorRight
}

// Command wraps a Loreley command in the delimiters understood by Colorize.
func Command(s string) string {
	return colorLeft + s + colorRight
}

// Colorize compiles and executes all color directives in the given stringer's text.
func Colorize(s fmt.Stringer) string {
	return ColorizeText(s.String())
}

// ColorizeText compiles and executes all color directives in the given text.
func ColorizeText(s string) string {
	if !strings.Contains(s, colorLeft) {
		return s
	}
	c, err := loreley.CompileAndExecuteToString(s, nil, nil)
	contract.Assertf(err == nil, "Expected no errors during string colorization; str=%v, err=%v", s, err)
	return c
}

// Strip removes all color directives from the given text without executing them.
func Strip(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, colorLeft)
		if start == -1 {
			break
		}
		end := strings.Index(s[start:], colorRight)
		if end == -1 {
			break
		}
		b.WriteString(s[:start])
		s = s[start+end+len(colorRight):]
	}
	b.WriteString(s)
	return b.String()
}

// Basic
var (
	Black         = Command("fg 0")
	Red           = Command("fg 1")
	Green         = Command("fg 2")
	Yellow        = Command("fg 3")
	Blue          = Command("fg 4")
	Magenta       = Command("fg 5")
	Cyan          = Command("fg 6")
	White         = Command("fg 7")
	BrightBlack   = Command("fg 8")
	BrightRed     = Command("fg 9")
	BrightGreen   = Command("fg 10")
	BrightYellow  = Command("fg 11")
	BrightBlue    = Command("fg 12")
	BrightMagenta = Command("fg 13")
	BrightCyan    = Command("fg 14")
	BrightWhite   = Command("fg 15")
	Reset         = Command("reset")
)

// Special predefined colors for logical conditions.
var (
	SpecInfo        = Magenta      // for information.
	SpecError       = Red          // for errors.
	SpecWarning     = Yellow       // for warnings.
	SpecStyle       = BrightBlue   // for style suggestions.
	SpecLocation    = Cyan         // for source locations.
	SpecNote        = White        // for simple notes.
	SpecUnimportant = BrightBlack  // for notes that can be skimmed or aren't very important.
)
