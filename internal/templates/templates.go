// Package templates holds the embedded template file store. The tree has
// four regions — root (repository-wide files), common (every package),
// package (workspace members only), and code (per-role source/test files) —
// described by an embedded manifest.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed all:files
var templateFS embed.FS

//go:embed manifest.yaml
var rawManifest []byte

// Package roles selecting a code variant.
const (
	RoleLibrary     = "library"
	RoleApplication = "application"
)

// Region names.
const (
	RegionRoot    = "root"
	RegionCommon  = "common"
	RegionPackage = "package"
)

// CodeVariant names the source and test template files for one role.
type CodeVariant struct {
	Source string `yaml:"source"`
	Test   string `yaml:"test"`
}

type registry struct {
	Placeholder string                 `yaml:"placeholder"`
	Regions     map[string]string      `yaml:"regions"`
	Variants    map[string]CodeVariant `yaml:"variants"`
}

var (
	loadOnce sync.Once
	loaded   registry
	loadErr  error
)

func load() (*registry, error) {
	loadOnce.Do(func() {
		loadErr = yaml.Unmarshal(rawManifest, &loaded)
	})
	if loadErr != nil {
		return nil, fmt.Errorf("parsing template manifest: %w", loadErr)
	}
	return &loaded, nil
}

// Placeholder returns the scope-prefix token substituted in code templates.
func Placeholder() (string, error) {
	r, err := load()
	if err != nil {
		return "", err
	}
	return r.Placeholder, nil
}

// Region returns the file tree for a named region.
func Region(name string) (fs.FS, error) {
	r, err := load()
	if err != nil {
		return nil, err
	}
	dir, ok := r.Regions[name]
	if !ok {
		return nil, fmt.Errorf("unknown template region %q", name)
	}
	sub, err := fs.Sub(templateFS, dir)
	if err != nil {
		return nil, fmt.Errorf("opening template region %q: %w", name, err)
	}
	return sub, nil
}

// Code returns the source and test file contents for a role, with the
// scope-prefix placeholder replaced by scope (which may be empty).
func Code(role, scope string) (source, test []byte, err error) {
	r, err := load()
	if err != nil {
		return nil, nil, err
	}
	variant, ok := r.Variants[role]
	if !ok {
		return nil, nil, fmt.Errorf("unknown code variant %q", role)
	}

	source, err = fs.ReadFile(templateFS, variant.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("reading source template: %w", err)
	}
	test, err = fs.ReadFile(templateFS, variant.Test)
	if err != nil {
		return nil, nil, fmt.Errorf("reading test template: %w", err)
	}

	token := []byte(r.Placeholder)
	source = bytes.ReplaceAll(source, token, []byte(scope))
	test = bytes.ReplaceAll(test, token, []byte(scope))
	return source, test, nil
}
