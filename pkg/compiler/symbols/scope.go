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
	"sort"
	"strings"

	"github.com/golang/glog"

	"github.com/pulumi/lumi/pkg/util/contract"
)

// Scope enables lookups and symbols to obey traditional language scoping rules.  A scope maps names to the symbols
// declared directly inside of it; several functions may share one name as long as their signatures differ.
type Scope struct {
	parent     *Scope              // the enclosing scope, or nil at the root.
	namespaces *Namespaces         // the session's namespace registry, for dotted lookups.
	symbols    map[string][]Symbol // the symbols declared in this scope, by name.
	order      []Symbol            // the symbols in declaration order.
	uses       []*Use              // namespaces made visible by `use` statements.
}

// Use records a `use` statement.  Without Include, the namespace is reachable by its last path segment; with Include
// all of its members are directly visible.
type Use struct {
	Namespace *Namespace
	Include   bool
}

// Alias is the name under which a non-including use makes its namespace reachable.
func (u *Use) Alias() string {
	p := u.Namespace.Path
	return p[strings.LastIndexByte(p, '.')+1:]
}

// NewScope allocates a root scope bound to the given namespace registry.
func NewScope(namespaces *Namespaces) *Scope {
	return &Scope{namespaces: namespaces, symbols: make(map[string][]Symbol)}
}

// Push creates a new scope with an empty symbol table parented to this one.
func (s *Scope) Push() *Scope {
	return &Scope{parent: s, namespaces: s.namespaces, symbols: make(map[string][]Symbol)}
}

// Parent returns the enclosing scope.
func (s *Scope) Parent() *Scope { return s.parent }

// Namespaces returns the registry this scope resolves dotted paths against.
func (s *Scope) Namespaces() *Namespaces { return s.namespaces }

// Symbols returns the symbols declared in this scope, in declaration order.
func (s *Scope) Symbols() []Symbol { return s.order }

// Names returns the sorted names visible from this scope, including all of its ancestors.
func (s *Scope) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for sc := s; sc != nil; sc = sc.parent {
		for nm := range sc.symbols {
			if !seen[nm] {
				seen[nm] = true
				names = append(names, nm)
			}
		}
	}
	sort.Strings(names)
	return names
}

// TryDeclare declares a symbol in this scope.  It returns false, leaving the scope untouched, if the name is already
// taken in this scope; a function only conflicts with other symbols of the same name if it isn't a function, or if it
// is a function with an identical signature.
func (s *Scope) TryDeclare(sym Symbol) bool {
	contract.Require(sym != nil, "sym")
	nm := sym.Name()
	if existing, has := s.symbols[nm]; has {
		fn, isfn := sym.(*Function)
		if !isfn {
			return false
		}
		for _, other := range existing {
			ofn, ok := other.(*Function)
			if !ok || ofn.Signature().Equal(fn.Signature()) {
				return false
			}
		}
	}
	s.symbols[nm] = append(s.symbols[nm], sym)
	s.order = append(s.order, sym)
	return true
}

// Use makes a namespace visible in this scope.
func (s *Scope) Use(u *Use) {
	contract.Require(u != nil && u.Namespace != nil, "u")
	s.uses = append(s.uses, u)
}

// TryLookup resolves a possibly dotted path.  The first segment is searched for in this scope and then its ancestors;
// remaining segments descend into namespaces.  When sig is non-nil and several functions share the name, the one whose
// parameter types exactly match sig is selected.
func (s *Scope) TryLookup(path []string, sig Types) (Symbol, bool) {
	contract.Require(len(path) > 0, "path")
	if len(path) == 1 {
		for sc := s; sc != nil; sc = sc.parent {
			if sym, ok := sc.lookupHere(path[0], sig); ok {
				return sym, true
			}
		}
		if glog.V(5) {
			glog.V(5).Infof("Scope lookup of %v(%v) failed", path[0], sig)
		}
		return nil, false
	}

	ns := s.LookupNamespace(path[:len(path)-1])
	if ns == nil {
		if glog.V(5) {
			glog.V(5).Infof("Scope lookup of %v failed: no namespace %v",
				strings.Join(path, "."), strings.Join(path[:len(path)-1], "."))
		}
		return nil, false
	}
	return ns.lookupOwn(path[len(path)-1], sig)
}

// LookupNamespace resolves a namespace path.  The first segment may be the alias of a `use`; otherwise the path is
// taken to be fully qualified.
func (s *Scope) LookupNamespace(path []string) *Namespace {
	if len(path) == 0 || s.namespaces == nil {
		return nil
	}
	for sc := s; sc != nil; sc = sc.parent {
		for _, u := range sc.uses {
			if !u.Include && u.Alias() == path[0] {
				full := append([]string{u.Namespace.Path}, path[1:]...)
				if ns := s.namespaces.Get(strings.Join(full, ".")); ns != nil {
					return ns
				}
			}
		}
	}
	return s.namespaces.Get(strings.Join(path, "."))
}

// lookupHere searches this scope and the namespaces it includes, but not its ancestors.
func (s *Scope) lookupHere(nm string, sig Types) (Symbol, bool) {
	if sym, ok := s.lookupOwn(nm, sig); ok {
		return sym, true
	}
	for _, u := range s.uses {
		if u.Include {
			if sym, ok := u.Namespace.lookupOwn(nm, sig); ok {
				return sym, true
			}
		}
	}
	return nil, false
}

// lookupOwn picks among the symbols declared directly in this scope.
func (s *Scope) lookupOwn(nm string, sig Types) (Symbol, bool) {
	candidates := s.symbols[nm]
	switch {
	case len(candidates) == 0:
		return nil, false
	case len(candidates) == 1 || sig == nil:
		// A lone candidate is returned whatever its signature, so that callers can report precise arity and
		// argument type errors.
		return candidates[0], true
	}
	for _, c := range candidates {
		if fn, ok := c.(*Function); ok && fn.Signature().Equal(sig) {
			return fn, true
		}
	}
	return nil, false
}
