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

package workspace

import (
	"os"
	"path/filepath"

	"github.com/blang/semver"
	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/pulumi/lumi/pkg/compiler/core"
	"github.com/pulumi/lumi/pkg/encoding"
	"github.com/pulumi/lumi/pkg/util/contract"
	"github.com/pulumi/lumi/pkg/util/suggest"
)

// Project is a Lumi project manifest: the syntax trees that make up one program and how to build them.
//
// Both json and yaml tags are given so that the fields of a serialized project come out in the order they are
// declared here, regardless of the format.
// nolint: lll
type Project struct {
	Name        string     `json:"name" yaml:"name"`                                   // a required name.
	Version     string     `json:"version,omitempty" yaml:"version,omitempty"`         // an optional semantic version.
	Description string     `json:"description,omitempty" yaml:"description,omitempty"` // an optional informational description.
	Sources     []string   `json:"sources" yaml:"sources"`                             // the syntax trees, relative to the project file.
	Output      string     `json:"output,omitempty" yaml:"output,omitempty"`           // the executable to build; defaults to the name.
	Target      string     `json:"target,omitempty" yaml:"target,omitempty"`           // an optional target triple.
	Toolchain   *Toolchain `json:"toolchain,omitempty" yaml:"toolchain,omitempty"`     // optional toolchain overrides.

	path string // the file this project was loaded from, if any.
}

// projectKeys are the keys a project file may contain.
var projectKeys = []string{"name", "version", "description", "sources", "output", "target", "toolchain"}

// Validate checks the project for errors, returning all of them at once.
func (proj *Project) Validate() error {
	var result error
	if proj.Name == "" {
		result = multierror.Append(result, errors.New("project is missing a 'name' attribute"))
	}
	if proj.Version != "" {
		if _, err := semver.Parse(proj.Version); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "project version '%v' is not a semantic version",
				proj.Version))
		}
	}
	for i, src := range proj.Sources {
		if src == "" {
			result = multierror.Append(result, errors.Errorf("project source #%d is empty", i))
		}
	}
	return result
}

// Path returns the file this project was loaded from, or the empty string if it was built in memory.
func (proj *Project) Path() string {
	return proj.path
}

// Dir returns the directory that relative project paths are resolved against.
func (proj *Project) Dir() string {
	if proj.path == "" {
		return "."
	}
	return filepath.Dir(proj.path)
}

// SemVersion parses the project's version; projects without one are version 0.0.0.
func (proj *Project) SemVersion() (semver.Version, error) {
	if proj.Version == "" {
		return semver.Version{}, nil
	}
	return semver.Parse(proj.Version)
}

// SourcePaths returns the project's syntax trees resolved against the project directory.
func (proj *Project) SourcePaths() []string {
	paths := make([]string, len(proj.Sources))
	for i, src := range proj.Sources {
		paths[i] = proj.resolve(src)
	}
	return paths
}

// OutputPath returns the executable to build, resolved against the project directory.  Without an explicit output
// the project's name, in snake case, is used.
func (proj *Project) OutputPath() string {
	out := proj.Output
	if out == "" {
		out = strcase.ToSnake(proj.Name)
	}
	return proj.resolve(out)
}

// GetToolchain returns the project's toolchain with every unset setting filled in from the defaults.
func (proj *Project) GetToolchain() *Toolchain {
	return proj.Toolchain.WithDefaults()
}

// Options derives compiler options for this project from the given base options.
func (proj *Project) Options(base *core.Options) *core.Options {
	if base == nil {
		base = core.DefaultOptions()
	}
	opts := base.Clone()
	if proj.Name != "" {
		opts.ModuleName = proj.Name
	}
	if proj.Target != "" {
		opts.Target = proj.Target
	}
	return opts
}

func (proj *Project) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(proj.Dir(), path)
}

// Save writes a project definition to a file.
func (proj *Project) Save(path string) error {
	contract.Require(path != "", "path")
	contract.Require(proj != nil, "proj")
	contract.Requiref(proj.Validate() == nil, "proj", "Validate()")

	m, err := marshallerForPath(path)
	if err != nil {
		return err
	}

	b, err := m.Marshal(proj)
	if err != nil {
		return errors.Wrapf(err, "marshaling project %v", proj.Name)
	}

	return os.WriteFile(path, b, 0600)
}

// LoadProject reads a project definition from a file.  Unknown keys and invalid settings are all reported together.
func LoadProject(path string) (*Project, error) {
	contract.Require(path != "", "path")

	m, err := marshallerForPath(path)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading project %v", path)
	}

	var raw map[string]interface{}
	if err = m.Unmarshal(b, &raw); err != nil {
		return nil, errors.Wrapf(err, "decoding project %v", path)
	}
	if err = checkKeys(raw); err != nil {
		return nil, errors.Wrapf(err, "project %v", path)
	}

	var proj Project
	if err = m.Unmarshal(b, &proj); err != nil {
		return nil, errors.Wrapf(err, "decoding project %v", path)
	}
	proj.path = path
	if err = proj.Validate(); err != nil {
		return nil, errors.Wrapf(err, "project %v", path)
	}

	glog.V(5).Infof("Loaded project %v from %v (%d sources)", proj.Name, path, len(proj.Sources))
	return &proj, nil
}

// checkKeys rejects any key, including inside the toolchain block, that a project doesn't understand.
func checkKeys(raw map[string]interface{}) error {
	var result error
	check := func(prefix string, m map[string]interface{}, known []string) {
		keys := maps.Keys(m)
		slices.Sort(keys)
		for _, key := range keys {
			if !slices.Contains(known, key) {
				result = multierror.Append(result, errors.Errorf("unknown project key '%v%v'%v",
					prefix, key, suggest.DidYouMean(key, known)))
			}
		}
	}

	check("", raw, projectKeys)
	if tc, has := raw["toolchain"]; has && tc != nil {
		if tcm, ok := tc.(map[string]interface{}); ok {
			check("toolchain.", tcm, toolchainKeys)
		} else {
			result = multierror.Append(result, errors.New("project key 'toolchain' must be a map"))
		}
	}
	return result
}

func marshallerForPath(path string) (encoding.Marshaler, error) {
	m, ext := encoding.Detect(path)
	if m == nil {
		return nil, errors.Errorf("no marshaler found for file format '%v'", ext)
	}
	return m, nil
}
