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
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang/glog"

	"github.com/pulumi/lumi/pkg/diag/colors"
	"github.com/pulumi/lumi/pkg/util/contract"
)

// Severity dictates the kind of diagnostic.
type Severity string

const (
	Debug   Severity = "debug"
	Info    Severity = "info"
	Infoerr Severity = "info#err"
	Warning Severity = "warning"
	Error   Severity = "error"
	Style   Severity = "style"
)

// Sink facilitates pluggable diagnostics messages.
type Sink interface {
	// Count fetches the total number of diagnostics issued (errors plus warnings).
	Count() int
	// Debugs fetches the number of debug messages issued.
	Debugs() int
	// Infos fetches the number of informational messages issued.
	Infos() int
	// Errors fetches the number of errors issued.
	Errors() int
	// Warnings fetches the number of warnings and style hints issued.
	Warnings() int
	// Success returns true if this sink is currently error-free.
	Success() bool

	// Logf issues a log message.
	Logf(sev Severity, diag *Diag, args ...interface{})
	// Debugf issues a debugging message.
	Debugf(diag *Diag, args ...interface{})
	// Infof issues an informational message.
	Infof(diag *Diag, args ...interface{})
	// Infoerrf issues an informational message that belongs on the error stream.
	Infoerrf(diag *Diag, args ...interface{})
	// Errorf issues a new error diagnostic.
	Errorf(diag *Diag, args ...interface{})
	// Warningf issues a new warning diagnostic.
	Warningf(diag *Diag, args ...interface{})
	// Stylef issues a style suggestion.
	Stylef(diag *Diag, args ...interface{})

	// Stringify stringifies a diagnostic in the usual way (e.g., "error: LU123: Lumi.yaml:7:39: error goes here\n").
	Stringify(sev Severity, diag *Diag, args ...interface{}) string
	// StringifyLocation stringifies a source document location.
	StringifyLocation(doc *Document, loc *Location) string
}

// FormatOptions controls the output style and content.
type FormatOptions struct {
	Pwd    string // the working directory.
	Colors bool   // if true, output will be colorized.
}

// DefaultSink returns a default sink that simply logs output to stderr/stdout.
func DefaultSink(opts FormatOptions) Sink {
	return newDefaultSink(opts, map[Severity]io.Writer{
		Debug:   os.Stdout,
		Info:    os.Stdout,
		Infoerr: os.Stderr,
		Error:   os.Stderr,
		Warning: os.Stderr,
		Style:   os.Stderr,
	})
}

func newDefaultSink(opts FormatOptions, writers map[Severity]io.Writer) *defaultSink {
	contract.Assert(writers[Info] != nil)
	contract.Assert(writers[Error] != nil)
	contract.Assert(writers[Warning] != nil)
	// Fill in the severities that share a stream with a mandatory one.
	if writers[Debug] == nil {
		writers[Debug] = writers[Info]
	}
	if writers[Infoerr] == nil {
		writers[Infoerr] = writers[Error]
	}
	if writers[Style] == nil {
		writers[Style] = writers[Warning]
	}
	return &defaultSink{
		formatter: formatter{opts: opts},
		counts:    make(map[Severity]int),
		writers:   writers,
	}
}

const DefaultSinkIDPrefix = "LU"

// defaultSink is the default sink which logs output to stderr/stdout.
type defaultSink struct {
	formatter
	counts  map[Severity]int       // the number of messages that have been issued per severity.
	writers map[Severity]io.Writer // the output stream to use for each severity.
}

func (d *defaultSink) Count() int    { return d.Errors() + d.Warnings() }
func (d *defaultSink) Debugs() int   { return d.counts[Debug] }
func (d *defaultSink) Infos() int    { return d.counts[Info] + d.counts[Infoerr] }
func (d *defaultSink) Errors() int   { return d.counts[Error] }
func (d *defaultSink) Warnings() int { return d.counts[Warning] + d.counts[Style] }
func (d *defaultSink) Success() bool { return d.Errors() == 0 }

func (d *defaultSink) Logf(sev Severity, diag *Diag, args ...interface{}) {
	msg := d.Stringify(sev, diag, args...)
	if glog.V(5) {
		glog.V(5).Infof("defaultSink::%v(%v)", sev, msg[:len(msg)-1])
	}
	w, has := d.writers[sev]
	contract.Assertf(has, "Unrecognized severity: %v", sev)
	_, err := io.WriteString(w, msg)
	contract.IgnoreError(err)
	d.counts[sev]++
}

func (d *defaultSink) Debugf(diag *Diag, args ...interface{}) {
	// Debug messages are only printed when the verbosity asks for them.
	if glog.V(9) {
		d.Logf(Debug, diag, args...)
	}
}

func (d *defaultSink) Infof(diag *Diag, args ...interface{})    { d.Logf(Info, diag, args...) }
func (d *defaultSink) Infoerrf(diag *Diag, args ...interface{}) { d.Logf(Infoerr, diag, args...) }
func (d *defaultSink) Errorf(diag *Diag, args ...interface{})   { d.Logf(Error, diag, args...) }
func (d *defaultSink) Warningf(diag *Diag, args ...interface{}) { d.Logf(Warning, diag, args...) }
func (d *defaultSink) Stylef(diag *Diag, args ...interface{})   { d.Logf(Style, diag, args...) }

// formatter renders diagnostics as text; it is shared by every sink in this package.
type formatter struct {
	opts FormatOptions // a set of options that control output style and content.
}

func (f formatter) Stringify(sev Severity, diag *Diag, args ...interface{}) string {
	var buffer bytes.Buffer

	// First print the location if there is one.
	if diag.Doc != nil || diag.Loc != nil {
		buffer.WriteString(f.StringifyLocation(diag.Doc, diag.Loc))
		buffer.WriteString(": ")
	}

	// Now print the message category's prefix (error/warning).
	if f.opts.Colors {
		switch sev {
		case Debug:
			buffer.WriteString(colors.SpecUnimportant)
		case Info, Infoerr:
			buffer.WriteString(colors.SpecInfo)
		case Error:
			buffer.WriteString(colors.SpecError)
		case Warning:
			buffer.WriteString(colors.SpecWarning)
		case Style:
			buffer.WriteString(colors.SpecStyle)
		default:
			contract.Failf("Unrecognized diagnostic severity: %v", sev)
		}
	}

	if sev == Infoerr {
		buffer.WriteString(string(Info))
	} else {
		buffer.WriteString(string(sev))
	}

	if diag.ID > 0 {
		buffer.WriteString(" ")
		buffer.WriteString(DefaultSinkIDPrefix)
		buffer.WriteString(strconv.Itoa(int(diag.ID)))
	}

	buffer.WriteString(": ")

	if f.opts.Colors {
		buffer.WriteString(colors.Reset)
		buffer.WriteString(colors.SpecNote)
	}

	buffer.WriteString(FormatMessage(diag, args...))

	if f.opts.Colors {
		buffer.WriteString(colors.Reset)
	}

	buffer.WriteRune('\n')

	s := buffer.String()

	// If colorization was requested, compile and execute the directives now.
	if f.opts.Colors {
		s = colors.ColorizeText(s)
	}

	return s
}

func (f formatter) StringifyLocation(doc *Document, loc *Location) string {
	var buffer bytes.Buffer

	if doc != nil {
		if f.opts.Colors {
			buffer.WriteString(colors.SpecLocation)
		}

		file := doc.File
		if f.opts.Pwd != "" {
			// If a PWD is available, try to create a relative path.
			rel, err := filepath.Rel(f.opts.Pwd, file)
			if err == nil {
				file = rel
			}
		}
		buffer.WriteString(file)
	}

	if loc != nil && !loc.IsEmpty() {
		buffer.WriteRune('(')
		buffer.WriteString(strconv.Itoa(loc.Start.Line))
		buffer.WriteRune(',')
		buffer.WriteString(strconv.Itoa(loc.Start.Column))
		buffer.WriteRune(')')
	}

	var s string
	if doc != nil || loc != nil {
		if f.opts.Colors {
			buffer.WriteString(colors.Reset)
		}

		s = buffer.String()

		// If colorization was requested, compile and execute the directives now.
		if f.opts.Colors {
			s = colors.ColorizeText(s)
		}
	}

	return s
}

// FormatMessage expands a diagnostic's message with its arguments; raw messages are returned verbatim.
func FormatMessage(diag *Diag, args ...interface{}) string {
	if diag.Raw {
		return diag.Message
	}
	return fmt.Sprintf(diag.Message, args...)
}
