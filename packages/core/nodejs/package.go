package nodejs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// Package is the location of an installed node package, e.g. node_modules/karma
type Package struct {
	path string
}

// NewPackage wraps a package directory
func NewPackage(dir string) Package {
	return Package{path: dir}
}

// SystemDependentPath returns the path using the OS separator
func (p Package) SystemDependentPath() string {
	if p.path == "" {
		return ""
	}
	return filepath.FromSlash(p.path)
}

// SystemIndependentPath returns the cleaned path using forward slashes
func (p Package) SystemIndependentPath() string {
	if p.path == "" {
		return ""
	}
	return strings.ReplaceAll(filepath.ToSlash(filepath.Clean(p.path)), `\`, "/")
}

// IsEmptyPath reports whether no directory is set
func (p Package) IsEmptyPath() bool {
	return strings.TrimSpace(p.path) == ""
}

// IsValid reports whether the directory holds a package.json
func (p Package) IsValid() bool {
	if p.IsEmptyPath() {
		return false
	}
	info, err := os.Stat(filepath.Join(p.SystemDependentPath(), "package.json"))
	return err == nil && !info.IsDir()
}

// Name returns the "name" field of package.json
func (p Package) Name() (string, error) {
	return p.manifestField("name")
}

// Version returns the "version" field of package.json
func (p Package) Version() (string, error) {
	return p.manifestField("version")
}

func (p Package) manifestField(field string) (string, error) {
	manifest := filepath.Join(p.SystemDependentPath(), "package.json")
	data, err := os.ReadFile(manifest)
	if err != nil {
		return "", fmt.Errorf("reading package manifest: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("invalid package manifest: %s", manifest)
	}
	value := gjson.GetBytes(data, field)
	if !value.Exists() {
		return "", fmt.Errorf("package manifest %s has no %q field", manifest, field)
	}
	return value.String(), nil
}
