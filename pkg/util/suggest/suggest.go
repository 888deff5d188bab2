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

// Package suggest finds likely intended names for misspelled ones.
package suggest

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
	"golang.org/x/exp/slices"
)

// MaxDistance is the default maximum Levenshtein distance we'll tolerate when searching for names the user might
// have meant to type.
const MaxDistance = 2

// Closest finds the closest name among the candidates, where "closest" means the name with the smallest Levenshtein
// distance from the needle.  The candidates are sorted so that in the event multiple names have the same distance, the
// result will be deterministic (and be the first alphabetically).  An empty string means nothing was close enough.
func Closest(needle string, candidates []string, maxDistance int) string {
	match := ""
	closest := maxDistance + 1

	keys := slices.Clone(candidates)
	slices.Sort(keys)

	for _, key := range keys {
		if key == needle {
			continue
		}
		d := levenshtein.DistanceForStrings(
			[]rune(strings.ToLower(needle)),
			[]rune(strings.ToLower(key)),
			levenshtein.DefaultOptionsWithSub,
		)

		if d == 0 {
			// Only the case differs; we can't do better than that.
			return key
		} else if d < closest {
			closest = d
			match = key
		}
	}

	return match
}

// DidYouMean renders a suggestion suffix for a diagnostic, or the empty string if there is none.
func DidYouMean(needle string, candidates []string) string {
	if s := Closest(needle, candidates, MaxDistance); s != "" {
		return "; did you mean \"" + s + "\"?"
	}
	return ""
}
