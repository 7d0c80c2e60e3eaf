package setup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tsforge-labs/tsforge/internal/branding"
	"github.com/tsforge-labs/tsforge/internal/copier"
	"github.com/tsforge-labs/tsforge/internal/npm"
	"github.com/tsforge-labs/tsforge/internal/patch"
	"github.com/tsforge-labs/tsforge/internal/prompt"
	"github.com/tsforge-labs/tsforge/internal/templates"
)

// Fixed layout of a monorepo created by this tool.
const (
	libWorkspace = "packages/lib"
	appWorkspace = "packages/app"
)

const (
	manifestFile   = "package.json"
	lintConfigFile = "eslint.config.mjs"
)

// checkScripts is the order in which lint/build/test run, both per package
// and repository-wide.
var checkScripts = []string{"lint", "build", "test"}

// Setup orchestrates one provisioning run. Every step is sequential; later
// steps read files written by earlier ones, so ordering is a correctness
// requirement, not an optimization.
type Setup struct {
	Dir    string
	Opts   Options
	Prompt prompt.Prompter
	Npm    *npm.Client
	Out    io.Writer
	Err    io.Writer

	// Preflight verifies the external toolchain before any mutation. Nil
	// skips the check (tests).
	Preflight func() error
}

// Run walks the setup state machine: EmptyCheck → WorkspaceCheck →
// MonorepoCheck → ScopeResolve → ManifestEnsure → one of the three mode
// flows. Terminal failure at any state aborts the run; there is no resume
// or rollback.
func (s *Setup) Run(ctx context.Context) error {
	empty, err := isDirEmpty(s.Dir)
	if err != nil {
		return err
	}

	// EmptyCheck: confirm before touching a non-empty directory, unless a
	// workspace path was pre-supplied (adding to an existing repo is the
	// point of that flag). Declining exits cleanly with nothing written.
	if !empty && !s.Opts.WorkspaceSet {
		ok, err := s.Prompt.Confirm("The current directory is not empty. Continue?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(s.Out, "Aborted; nothing was changed.")
			return nil
		}
	}

	manifestExists := fileExists(filepath.Join(s.Dir, manifestFile))

	resolver := &Resolver{Opts: s.Opts, Prompt: s.Prompt, Err: s.Err}

	workspace, err := resolver.Workspace(empty, manifestExists)
	if err != nil {
		return err
	}
	creatingWorkspace := workspace != ""

	monorepo, err := resolver.Monorepo(creatingWorkspace)
	if err != nil {
		return err
	}

	// Scope resolution happens exactly once; every later step reuses it.
	scope, err := resolver.Scope(!monorepo && !creatingWorkspace)
	if err != nil {
		return err
	}

	if s.Preflight != nil {
		if err := s.Preflight(); err != nil {
			return err
		}
	}

	// ManifestEnsure: runs exactly once regardless of mode, before any
	// package-specific provisioning.
	if manifestExists {
		if err := s.Npm.SetFields(ctx, "", npm.Field{Key: "type", Value: "module"}); err != nil {
			return err
		}
	} else {
		if err := s.Npm.Init(ctx, s.Opts.Yes, scope); err != nil {
			return err
		}
		if err := s.Npm.SetFields(ctx, "", npm.Field{Key: "type", Value: "module"}); err != nil {
			return err
		}
	}

	// Root-level template files are shared across the whole repository and
	// are never copied when only adding a workspace member.
	if !creatingWorkspace {
		root, err := templates.Region(templates.RegionRoot)
		if err != nil {
			return err
		}
		if err := copier.CopyDir(root, s.Dir); err != nil {
			return err
		}
	}

	switch {
	case creatingWorkspace:
		return s.addWorkspaceFlow(ctx, workspace, scope)
	case monorepo:
		return s.monorepoFlow(ctx, scope)
	default:
		return s.singleFlow(ctx, scope)
	}
}

// singleFlow provisions the working directory itself as one package.
func (s *Setup) singleFlow(ctx context.Context, scope string) error {
	desc := packageDesc{
		dir:  s.Dir,
		role: templates.RoleLibrary,
	}
	return s.provision(ctx, desc, scope, true)
}

// addWorkspaceFlow creates one workspace member in an existing repository
// and then runs the repository-wide checks, not the member's own.
func (s *Setup) addWorkspaceFlow(ctx context.Context, workspace, scope string) error {
	// Adding a workspace assumes this tool already initialized the root.
	// Fail fast instead of silently provisioning a member whose lint run
	// has no configuration to work against.
	if !fileExists(filepath.Join(s.Dir, lintConfigFile)) {
		return fmt.Errorf("%s not found in the repository root: run %s here without --workspace first", lintConfigFile, branding.CLIName())
	}

	if err := s.Npm.InitWorkspace(ctx, workspace, s.Opts.Yes, scope); err != nil {
		return err
	}

	desc := packageDesc{
		dir:       filepath.Join(s.Dir, workspace),
		workspace: workspace,
		role:      templates.RoleLibrary,
	}
	if err := s.provision(ctx, desc, scope, false); err != nil {
		return err
	}

	return s.runRootChecks(ctx)
}

// monorepoFlow provisions a fresh two-package workspace. The library
// package is fully provisioned — its own checks included — before the
// application package is even created.
func (s *Setup) monorepoFlow(ctx context.Context, scope string) error {
	if scope != "" {
		if err := s.enableImportBoundaries(scope); err != nil {
			return err
		}
	}

	if err := s.Npm.InstallDev(ctx, "", sharedRootDeps...); err != nil {
		return err
	}

	// The root license is read once and propagated to both members.
	license, err := npm.ReadLicense(s.Dir)
	if err != nil {
		return err
	}
	if license == "" {
		fmt.Fprintln(s.Err, "Warning: no license found in the root manifest; skipping license propagation")
	}

	members := []packageDesc{
		{dir: filepath.Join(s.Dir, libWorkspace), workspace: libWorkspace, role: templates.RoleLibrary, license: license},
		{dir: filepath.Join(s.Dir, appWorkspace), workspace: appWorkspace, role: templates.RoleApplication, license: license},
	}
	for _, desc := range members {
		if err := s.Npm.InitWorkspace(ctx, desc.workspace, s.Opts.Yes, scope); err != nil {
			return err
		}
		if err := s.provision(ctx, desc, scope, true); err != nil {
			return err
		}
	}

	// Root scripts fan out across all workspace members.
	fields := make([]npm.Field, 0, len(checkScripts))
	for _, script := range checkScripts {
		fields = append(fields, npm.Field{Key: "scripts." + script, Value: npm.FanOutScript(script)})
	}
	if err := s.Npm.SetFields(ctx, "", fields...); err != nil {
		return err
	}

	return s.runRootChecks(ctx)
}

// enableImportBoundaries patches the root lint configuration so cross-
// package imports must go through the scope.
func (s *Setup) enableImportBoundaries(scope string) error {
	path := filepath.Join(s.Dir, lintConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", lintConfigFile, err)
	}
	patched := patch.EnableImportBoundaries(data, scope)
	if err := os.WriteFile(path, patched, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", lintConfigFile, err)
	}
	return nil
}

func (s *Setup) runRootChecks(ctx context.Context) error {
	for _, script := range checkScripts {
		if err := s.Npm.RunScript(ctx, "", script); err != nil {
			return err
		}
	}
	return nil
}

func isDirEmpty(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	return len(entries) == 0, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
