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
	"sort"

	"github.com/golang/glog"
)

// Diagnostic is a fully formatted message that has been collected by a List.
type Diagnostic struct {
	Severity Severity
	ID       ID
	Doc      *Document
	Loc      *Location
	Message  string
}

var _ Diagable = (*Diagnostic)(nil)

func (d *Diagnostic) Where() (*Document, *Location) { return d.Doc, d.Loc }

func (d *Diagnostic) IsError() bool { return d.Severity == Error }

func (d *Diagnostic) start() int {
	if d.Loc == nil {
		return 0
	}
	return d.Loc.Start.Offset
}

func (d *Diagnostic) length() int {
	if d.Loc == nil {
		return 0
	}
	return d.Loc.Len()
}

func (d *Diagnostic) file() string {
	if d.Doc == nil {
		return ""
	}
	return d.Doc.File
}

// List is a Sink that collects diagnostics instead of printing them.  Errors and everything else are kept apart so
// that callers can decide whether a phase failed while still keeping its warnings and style hints.
type List struct {
	formatter
	errors    []*Diagnostic
	nonErrors []*Diagnostic
	debugs    int
}

var _ Sink = (*List)(nil)

// NewList creates an empty list that formats with the given options when stringified.
func NewList(opts FormatOptions) *List {
	return &List{formatter: formatter{opts: opts}}
}

// Add records an already formatted diagnostic.
func (l *List) Add(d *Diagnostic) {
	if d.IsError() {
		l.errors = append(l.errors, d)
	} else {
		l.nonErrors = append(l.nonErrors, d)
	}
}

// Append moves all diagnostics of other onto the end of this list.
func (l *List) Append(other *List) {
	if other == nil {
		return
	}
	l.errors = append(l.errors, other.errors...)
	l.nonErrors = append(l.nonErrors, other.nonErrors...)
	l.debugs += other.debugs
}

// HasErrors returns true if at least one error has been collected.
func (l *List) HasErrors() bool { return len(l.errors) > 0 }

// ErrorList returns the collected errors.
func (l *List) ErrorList() []*Diagnostic { return l.errors }

// NonErrorList returns the collected warnings, style hints and informational messages.
func (l *List) NonErrorList() []*Diagnostic { return l.nonErrors }

// All returns errors first, followed by everything else.
func (l *List) All() []*Diagnostic {
	all := make([]*Diagnostic, 0, len(l.errors)+len(l.nonErrors))
	all = append(all, l.errors...)
	return append(all, l.nonErrors...)
}

// SortBySpan orders both lists by file, then start offset, then span length.  Equal spans keep their order.
func (l *List) SortBySpan() {
	sortBySpan(l.errors)
	sortBySpan(l.nonErrors)
}

func sortBySpan(ds []*Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i], ds[j]
		if a.file() != b.file() {
			return a.file() < b.file()
		}
		if a.start() != b.start() {
			return a.start() < b.start()
		}
		return a.length() < b.length()
	})
}

// Replay reissues every collected diagnostic, errors first, into another sink.
func (l *List) Replay(sink Sink) {
	for _, d := range l.All() {
		sink.Logf(d.Severity, &Diag{ID: d.ID, Message: d.Message, Raw: true, Doc: d.Doc, Loc: d.Loc})
	}
}

func (l *List) Count() int    { return len(l.errors) + l.Warnings() }
func (l *List) Debugs() int   { return l.debugs }
func (l *List) Errors() int   { return len(l.errors) }
func (l *List) Success() bool { return len(l.errors) == 0 }

func (l *List) Infos() int { return l.count(Info) + l.count(Infoerr) }

func (l *List) Warnings() int { return l.count(Warning) + l.count(Style) }

func (l *List) count(sev Severity) int {
	n := 0
	for _, d := range l.nonErrors {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

func (l *List) Logf(sev Severity, diag *Diag, args ...interface{}) {
	msg := FormatMessage(diag, args...)
	if sev == Debug {
		glog.V(9).Infof("diag.List::debug(%v)", msg)
		l.debugs++
		return
	}
	if glog.V(7) {
		glog.V(7).Infof("diag.List::%v(%v)", sev, msg)
	}
	l.Add(&Diagnostic{
		Severity: sev,
		ID:       diag.ID,
		Doc:      diag.Doc,
		Loc:      diag.Loc,
		Message:  msg,
	})
}

func (l *List) Debugf(diag *Diag, args ...interface{})   { l.Logf(Debug, diag, args...) }
func (l *List) Infof(diag *Diag, args ...interface{})    { l.Logf(Info, diag, args...) }
func (l *List) Infoerrf(diag *Diag, args ...interface{}) { l.Logf(Infoerr, diag, args...) }
func (l *List) Errorf(diag *Diag, args ...interface{})   { l.Logf(Error, diag, args...) }
func (l *List) Warningf(diag *Diag, args ...interface{}) { l.Logf(Warning, diag, args...) }
func (l *List) Stylef(diag *Diag, args ...interface{})   { l.Logf(Style, diag, args...) }
