// Package npm wraps the npm CLI behind a small typed interface. All manifest
// mutation (init, pkg set), dependency installation, and script execution
// flows through here; package.json is never rewritten directly, only read
// for the license field.
package npm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/tsforge-labs/tsforge/internal/execx"
)

// MinVersion is the oldest npm release with workspaces support.
const MinVersion = "7.0.0"

// Client issues npm commands in a fixed root directory through a Runner.
type Client struct {
	Runner execx.Runner
	Dir    string
}

// Field is one manifest key assignment for `npm pkg set`. Key uses npm's
// dotted path syntax (e.g., "scripts.build").
type Field struct {
	Key   string
	Value string
}

// Init creates a package.json in the root directory. With yes the init is
// non-interactive; with a scope the package name is namespaced.
func (c *Client) Init(ctx context.Context, yes bool, scope string) error {
	args := []string{"init"}
	if scope != "" {
		args = append(args, "--scope="+scope)
	}
	if yes {
		args = append(args, "--yes")
	}
	return c.Runner.Run(ctx, c.Dir, "npm", args...)
}

// InitWorkspace creates a new workspace member at path and registers it in
// the root manifest's workspaces list.
func (c *Client) InitWorkspace(ctx context.Context, path string, yes bool, scope string) error {
	args := []string{"init", "--workspace=" + path}
	if scope != "" {
		args = append(args, "--scope="+scope)
	}
	if yes {
		args = append(args, "--yes")
	}
	return c.Runner.Run(ctx, c.Dir, "npm", args...)
}

// InstallDev installs the given packages as dev dependencies in a single
// npm invocation. A non-empty workspace scopes the install to that member.
func (c *Client) InstallDev(ctx context.Context, workspace string, pkgs ...string) error {
	if len(pkgs) == 0 {
		return nil
	}
	args := []string{"install", "--save-dev"}
	if workspace != "" {
		args = append(args, "--workspace="+workspace)
	}
	args = append(args, pkgs...)
	return c.Runner.Run(ctx, c.Dir, "npm", args...)
}

// SetFields assigns manifest keys with one `npm pkg set` call. Order is
// preserved. A non-empty workspace targets that member's manifest.
func (c *Client) SetFields(ctx context.Context, workspace string, fields ...Field) error {
	if len(fields) == 0 {
		return nil
	}
	args := []string{"pkg", "set"}
	for _, f := range fields {
		args = append(args, f.Key+"="+f.Value)
	}
	if workspace != "" {
		args = append(args, "--workspace="+workspace)
	}
	return c.Runner.Run(ctx, c.Dir, "npm", args...)
}

// RunScript runs a named manifest script, optionally inside one workspace
// member.
func (c *Client) RunScript(ctx context.Context, workspace string, script string) error {
	args := []string{"run", script}
	if workspace != "" {
		args = append(args, "--workspace="+workspace)
	}
	return c.Runner.Run(ctx, c.Dir, "npm", args...)
}

// FanOutScript returns the script value that runs a named script across all
// workspace members, used for the root manifest of a monorepo.
func FanOutScript(script string) string {
	return "npm run " + script + " --workspaces"
}

// ReadLicense reads the license field from the package.json in dir. It
// returns an empty string when the manifest has no license; an error only
// on read or parse failure.
func ReadLicense(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return "", fmt.Errorf("reading package.json: %w", err)
	}

	var manifest struct {
		License string `json:"license"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", fmt.Errorf("parsing package.json: %w", err)
	}
	return manifest.License, nil
}

// VersionFunc reports the installed npm version string.
type VersionFunc func() (string, error)

// ExecVersion locates npm on PATH and asks it for its version.
func ExecVersion() (string, error) {
	npmBin, err := exec.LookPath("npm")
	if err != nil {
		return "", fmt.Errorf("npm is required but was not found on PATH: %w", err)
	}
	out, err := exec.Command(npmBin, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("reading npm version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CheckVersion verifies that npm is on PATH and at least MinVersion, which
// the workspace-related sub-commands require.
func CheckVersion() error {
	return CheckVersionFrom(ExecVersion)
}

// CheckVersionFrom applies the version gate to whatever reports the
// installed version.
func CheckVersionFrom(version VersionFunc) error {
	raw, err := version()
	if err != nil {
		return err
	}

	installed, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("parsing npm version %q: %w", raw, err)
	}

	min := semver.MustParse(MinVersion)
	if installed.LessThan(min) {
		return fmt.Errorf("npm %s is too old: workspaces need npm >= %s", installed, MinVersion)
	}
	return nil
}
