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

package eval

import (
	"io"
	"strings"

	"github.com/golang/glog"

	"github.com/pulumi/lumi/pkg/compiler/binder"
	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/util/contract"
)

// builtinFunc implements one of the extern functions every program can call.
type builtinFunc func(e *evaluator, args []Value) (Value, *Unwind)

var builtins = map[*symbols.Function]builtinFunc{
	binder.Print:   evalPrint,
	binder.Println: evalPrintln,
	binder.Readln:  evalReadln,
	binder.Typeof:  evalTypeof,
}

func evalPrint(e *evaluator, args []Value) (Value, *Unwind) {
	e.write(args[0].(string))
	return nil, nil
}

func evalPrintln(e *evaluator, args []Value) (Value, *Unwind) {
	e.write(args[0].(string) + "\n")
	return nil, nil
}

func evalReadln(e *evaluator, args []Value) (Value, *Unwind) {
	line, err := e.stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		glog.V(5).Infof("Reading a line failed: %v", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func evalTypeof(e *evaluator, args []Value) (Value, *Unwind) {
	return TypeOf(args[0]).Name(), nil
}

func (e *evaluator) write(text string) {
	_, err := io.WriteString(e.stdout, text)
	contract.IgnoreError(err)
}
