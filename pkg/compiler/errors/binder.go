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

package errors

// Binder errors are in the [500-600) range.
var (
	ErrorUndefinedName              = newError(500, "Undefined name \"%v\"%v")
	ErrorSymbolAlreadyDeclared      = newError(501, "\"%v\" is already declared")
	ErrorParamAlreadyExists         = newError(502, "Param \"%v\" already exists")
	ErrorVariableIsImmutable        = newError(503, "Variable \"%v\" immutable and can't be assigned to")
	ErrorWrongArgumentCount         = newError(504, "Wrong argument count in function \"%v\" (found %v, expected %v)")
	ErrorWrongArgumentType          = newError(505, "Argument \"%v\" is of type %v, but %v was expected")
	ErrorWrongType                  = newError(506, "Wrong type (found %v, expected %v)")
	ErrorValueNotOfType             = newError(507, "%v isn't of type %v")
	ErrorCantCast                   = newError(508, "Can't cast from type %v to type %v")
	ErrorBreakContinueOutsideLoop   = newError(509, "\"%v\" can't be outside a loop")
	ErrorCantReturnInUnitFunction   = newError(510, "Can't return expressions in Unit functions")
	ErrorCantReturnWithoutValue     = newError(511, "Can't use empty return statements in typed functions")
	ErrorReturnOutsideFunction      = newError(512, "Can't have return statements outside functions")
	ErrorAllPathsMustReturn         = newError(513, "Not all paths return a value")
	ErrorInvalidExpressionStatement = newError(514, "Only assignment and call expressions can be used as statements")
	ErrorExpressionMustHaveValue    = newError(515, "Expression must have a value")
	ErrorUndefinedType              = newError(516, "Type \"%v\" doesn't exist")
	ErrorUnaryOperator              = newError(517, "%v isn't compatible with %v")
	ErrorBinaryOperator             = newError(518, "%v isn't compatible with %v and %v")
	ErrorNoMainFunction             = newError(519, "No entry function was found; annotate one with [entry]")
	ErrorMultipleEntryFunctions     = newError(520, "Only one entry function is allowed (\"%v\" is already the entry)")
	ErrorInvalidAnnotation          = newError(521, "Annotation \"%v\" is invalid here")
	ErrorNotCallable                = newError(522, "\"%v\" isn't callable")
	ErrorIncorrectUseStatement      = newError(523, "Namespace \"%v\" can't be used; it doesn't exist")
	ErrorCantBeAfterDot             = newError(524, "Only names can be written after a \".\"")
	ErrorUndefinedField             = newError(525, "Struct %v has no field \"%v\"")
	ErrorNotIndexable               = newError(526, "Values of type %v can't be indexed")
	ErrorNotAssignable              = newError(527, "The left side of an assignment must be a variable, a field or an element")
	ErrorInvalidEntrySignature      = newError(528, "The entry function \"%v\" must take no parameters and return Unit")
	ErrorCantCaptureVariable        = newError(529, "Nested functions can't use \"%v\" of the enclosing function")
	ErrorMangledNameConflict        = newError(530, "\"%v\" would be emitted as %v, which \"%v\" already uses")
)

// Binder style suggestions share the binder range.
var (
	StyleElseIf = newStyle(580,
		"You can write \"else if <condition> {}\" instead of \"else { if <condition> {} }\"")
)
