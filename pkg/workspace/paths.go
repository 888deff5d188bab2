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
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	compilererrors "github.com/pulumi/lumi/pkg/compiler/errors"
	"github.com/pulumi/lumi/pkg/diag"
	"github.com/pulumi/lumi/pkg/encoding"
)

// ProjectFile is the base name of a Lumi project file (Lumi.yaml, Lumi.json, ...).
const ProjectFile = "Lumi"

// isTop returns true if the path represents the top of the filesystem.
func isTop(path string) bool {
	return os.IsPathSeparator(path[len(path)-1])
}

// pathDir returns the nearest directory to the given path (identity if a directory; parent otherwise).
func pathDir(path string) string {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}

// DetectProject locates the closest project file from the given path, searching "upwards" in the directory
// hierarchy.  If no project file is found, an empty path is returned.  Suspicious lookalikes are reported as warnings
// to the diag.Sink, if one is given.
func DetectProject(path string, d diag.Sink) (string, error) {
	// It's possible the target is already the file we seek; if so, return right away.
	if IsProjectFile(path, d) {
		return path, nil
	}

	abs, err := filepath.Abs(pathDir(path))
	if err != nil {
		return "", errors.Wrapf(err, "resolving %v", path)
	}

	curr := abs
	for {
		glog.V(7).Infof("Looking for a %v file in %v", ProjectFile, curr)
		files, err := os.ReadDir(curr)
		if err != nil {
			return "", errors.Wrapf(err, "reading directory %v", curr)
		}
		for _, file := range files {
			candidate := filepath.Join(curr, file.Name())
			if IsProjectFile(candidate, d) {
				glog.V(5).Infof("Detected project file %v", candidate)
				return candidate, nil
			}
		}

		parent := filepath.Dir(curr)
		if parent == curr || isTop(curr) {
			break
		}
		curr = parent
	}

	return "", nil
}

// IsProjectFile returns true if the path references what appears to be a valid project file.  If problems are
// detected -- like an incorrect extension -- they are logged to the provided diag.Sink (if non-nil).
func IsProjectFile(path string, d diag.Sink) bool {
	return isMarkupFile(path, ProjectFile, d)
}

func isMarkupFile(path string, expect string, d diag.Sink) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		// Missing files and directories can't be markup files.
		return false
	}

	// Ensure the base name is expected.
	name := info.Name()
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	doc := diag.NewDocument(path)
	if base != expect {
		if d != nil && strings.EqualFold(base, expect) {
			// If the strings aren't equal, but case-insensitively match, issue a warning.
			d.Warningf(compilererrors.WarningIllegalMarkupFileCasing.AtLocation(doc, nil), expect)
		}
		return false
	}

	// Check all supported extensions.
	for _, mext := range encoding.Exts {
		if name == expect+mext {
			return true
		}
	}

	// If we got here, it means the base name matched, but not the extension.  Warn and return.
	if d != nil {
		d.Warningf(compilererrors.WarningIllegalMarkupFileExt.AtLocation(doc, nil), expect, ext)
	}
	return false
}
