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

package types

import (
	"github.com/pulumi/lumi/pkg/compiler/symbols"
)

// Conversion classifies an explicit cast between two types.
type Conversion int

const (
	NoConversion       Conversion = iota // the cast is illegal.
	IdentityConversion                   // the types are identical; no code is needed.
	ExplicitConversion                   // the cast changes the value's representation or static type.
)

func (c Conversion) Exists() bool     { return c != NoConversion }
func (c Conversion) IsIdentity() bool { return c == IdentityConversion }

// Classify decides whether a value of type from may be cast to type to.
func Classify(from symbols.Type, to symbols.Type) Conversion {
	// Identity conversions are easy.
	if from == to {
		return IdentityConversion
	}
	if IsError(from) || IsError(to) || from == Unit || to == Unit {
		return NoConversion
	}

	// Anything converts to Any, and Any converts back to pointers, structs and strings.
	if to == Any {
		return ExplicitConversion
	}
	if from == Any && (IsPointer(to) || IsStruct(to) || to == String) {
		return ExplicitConversion
	}

	// Numbers convert freely among themselves, and booleans convert to integers.
	if IsNumeric(from) && IsNumeric(to) {
		return ExplicitConversion
	}
	if from == Bool && IsInteger(to) {
		return ExplicitConversion
	}

	// Pointers may be reinterpreted as pointers to other element types.
	if IsPointer(from) && IsPointer(to) {
		return ExplicitConversion
	}

	return NoConversion
}
