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

// Package core holds the state shared by every phase of one compilation session.
package core

import (
	"github.com/golang/glog"

	"github.com/pulumi/lumi/pkg/compiler/symbols"
	"github.com/pulumi/lumi/pkg/compiler/types"
	"github.com/pulumi/lumi/pkg/util/contract"
)

// Context is a bag of state common throughout all compiler passes.  A context lives as long as one compilation, or
// as long as an interactive session whose submissions chain onto each other; it must never be shared between
// unrelated compilations.
type Context struct {
	Opts       *Options            // the options used for this compilation.
	Namespaces *symbols.Namespaces // every namespace created so far, by path.
	Types      *types.Table        // every named type, including declared structs.
	Entries    []*symbols.Function // every function annotated as an entry point, in declaration order.
	anonIDs    int                 // the last anonymous function id handed out.
}

// NewContext creates a new context with the given options.
func NewContext(opts *Options) *Context {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Context{
		Opts:       opts,
		Namespaces: symbols.NewNamespaces(nil),
		Types:      types.NewTable(),
	}
}

// Interactive is true when compiling submissions of an interactive session.
func (ctx *Context) Interactive() bool {
	return ctx.Opts.Interactive
}

// NextAnonymousID returns a fresh id for naming nested and lambda functions.
func (ctx *Context) NextAnonymousID() int {
	ctx.anonIDs++
	return ctx.anonIDs
}

// AddEntry records an entry function candidate, returning the previously recorded one if there was any.
func (ctx *Context) AddEntry(fn *symbols.Function) *symbols.Function {
	contract.Require(fn != nil, "fn")
	var prior *symbols.Function
	if len(ctx.Entries) > 0 {
		prior = ctx.Entries[0]
	}
	ctx.Entries = append(ctx.Entries, fn)
	if glog.V(5) {
		glog.V(5).Infof("Entry candidate %v (%d so far)", fn.Path(), len(ctx.Entries))
	}
	return prior
}
