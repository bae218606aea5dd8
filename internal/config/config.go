// Package config carries glint's build-time version string, recognized
// source file extensions, and an optional project file loader, grounded on
// the teacher's internal/config (Version/SourceFileExtensions/TrimSourceExt)
// and internal/ext's yaml.v3-based project config.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the current glint version. Set at build time via
// -ldflags "-X github.com/glint-lang/glint/internal/config.Version=...".
var Version = "0.1.0"

const SourceFileExt = ".gl"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".gl", ".glint"}

// HasSourceExt reports whether path ends in a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// TrimSourceExt removes a recognized source extension from name, if present.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// ProjectFile is the optional glint.yaml a directory may carry, naming the
// program's entry file and the default output path for `glint transpile`.
type ProjectFile struct {
	Entry  string `yaml:"entry"`
	Output string `yaml:"output"`
}

// LoadProjectFile reads and parses glint.yaml at path. A missing file is not
// an error — callers fall back to CLI-provided paths.
func LoadProjectFile(path string) (*ProjectFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var pf ProjectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, err
	}
	return &pf, nil
}
