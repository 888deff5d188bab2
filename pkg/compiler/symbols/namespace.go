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

package symbols

import (
	"strings"

	"github.com/golang/glog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Namespace is a scope with a dotted path that symbols are declared in at the top-level.
type Namespace struct {
	*Scope
	Path string
}

// Namespaces is the registry of every namespace created during a compilation session, keyed by path.
type Namespaces struct {
	root *Scope
	m    map[string]*Namespace
}

// NewNamespaces creates an empty registry whose top-level namespaces are parented to root.  A nil root creates a
// fresh, empty one.
func NewNamespaces(root *Scope) *Namespaces {
	ns := &Namespaces{m: make(map[string]*Namespace)}
	if root == nil {
		root = NewScope(ns)
	}
	ns.root = root
	return ns
}

// Root returns the scope that top-level namespaces are parented to.
func (n *Namespaces) Root() *Scope { return n.root }

// SetRoot changes the parent used for namespaces created from now on.
func (n *Namespaces) SetRoot(root *Scope) { n.root = root }

// Get returns the namespace with the given path, or nil if it doesn't exist.
func (n *Namespaces) Get(path string) *Namespace {
	return n.m[path]
}

// GetOrCreate returns the namespace with the given path, creating it and any missing ancestors first.  Every
// namespace is parented to the namespace of its path's prefix.
func (n *Namespaces) GetOrCreate(path string) *Namespace {
	if ns, has := n.m[path]; has {
		return ns
	}
	parent := n.root
	segs := strings.Split(path, ".")
	for i := range segs {
		p := strings.Join(segs[:i+1], ".")
		ns, has := n.m[p]
		if !has {
			scope := parent.Push()
			scope.namespaces = n
			ns = &Namespace{Scope: scope, Path: p}
			n.m[p] = ns
			if glog.V(5) {
				glog.V(5).Infof("Created namespace %v", p)
			}
		}
		parent = ns.Scope
	}
	return n.m[path]
}

// Paths returns the sorted paths of all registered namespaces.
func (n *Namespaces) Paths() []string {
	paths := maps.Keys(n.m)
	slices.Sort(paths)
	return paths
}
