package setup

import (
	"fmt"
	"io"
	"strings"

	"github.com/tsforge-labs/tsforge/internal/prompt"
)

// ScopeMarker is the namespace marker prefixed to package scopes.
const ScopeMarker = "@"

// Resolver derives each setup decision from the resolved Options first,
// falling back to an interactive prompt when no explicit value exists. It
// has no side effects beyond writing questions and warnings.
type Resolver struct {
	Opts   Options
	Prompt prompt.Prompter
	Err    io.Writer
}

// Workspace resolves the path of a workspace member to add to an existing
// repository. It is forced empty when the directory is empty (warning if a
// flag value was supplied) or when no manifest exists yet.
func (r *Resolver) Workspace(dirEmpty, manifestExists bool) (string, error) {
	if dirEmpty {
		if r.Opts.WorkspaceSet && r.Opts.Workspace != "" {
			fmt.Fprintf(r.Err, "Warning: ignoring --workspace %s: the directory is empty, nothing to add a workspace to\n", r.Opts.Workspace)
		}
		return "", nil
	}
	if !manifestExists {
		return "", nil
	}
	if r.Opts.WorkspaceSet {
		return r.Opts.Workspace, nil
	}
	return r.Prompt.Input("Path of a new workspace to add (leave empty for none)")
}

// Monorepo resolves whether to create a fresh multi-package workspace. A
// pre-selected workspace path forces it to false; the two are mutually
// exclusive.
func (r *Resolver) Monorepo(creatingWorkspace bool) (bool, error) {
	if creatingWorkspace {
		if r.Opts.MonorepoSet && r.Opts.Monorepo {
			fmt.Fprintln(r.Err, "Warning: ignoring --monorepo: a workspace path was already selected")
		}
		return false, nil
	}
	if r.Opts.MonorepoSet {
		return r.Opts.Monorepo, nil
	}
	return r.Prompt.Confirm("Create a monorepo (packages/lib + packages/app)?")
}

// Scope resolves the package scope. An explicit value always wins, even
// over optionality; otherwise the prompt is required (empty answer fails
// the run) exactly when neither monorepo nor workspace creation was
// selected.
func (r *Resolver) Scope(required bool) (string, error) {
	if r.Opts.ScopeSet {
		return NormalizeScope(r.Opts.Scope), nil
	}

	question := "Package scope (leave empty for none)"
	if required {
		question = "Package scope"
	}
	answer, err := r.Prompt.Input(question)
	if err != nil {
		return "", err
	}
	if required && answer == "" {
		return "", fmt.Errorf("a package scope is required")
	}
	return NormalizeScope(answer), nil
}

// NormalizeScope ensures a non-empty scope starts with the namespace
// marker. An empty answer stays empty.
func NormalizeScope(s string) string {
	if s == "" || strings.HasPrefix(s, ScopeMarker) {
		return s
	}
	return ScopeMarker + s
}
