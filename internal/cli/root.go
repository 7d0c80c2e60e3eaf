package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tsforge-labs/tsforge/internal/branding"
	"github.com/tsforge-labs/tsforge/internal/config"
	"github.com/tsforge-labs/tsforge/internal/execx"
	"github.com/tsforge-labs/tsforge/internal/npm"
	"github.com/tsforge-labs/tsforge/internal/prompt"
	"github.com/tsforge-labs/tsforge/internal/setup"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagYes       bool
	flagMonorepo  bool
	flagWorkspace string
	flagScope     string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` provisions a new TypeScript package in the current
directory: it initializes the npm manifest, installs the lint/build/test
toolchain, copies template files, and patches the compiler and lint
configuration. With --monorepo it creates a two-package workspace; with
--workspace it adds one member to an existing repository.

Decisions not supplied as flags are asked interactively.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSetup,
}

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&flagYes, "yes", "y", false, "Answer yes to npm init prompts")
	f.BoolVarP(&flagMonorepo, "monorepo", "m", false, "Create a monorepo (packages/lib + packages/app)")
	f.StringVarP(&flagWorkspace, "workspace", "w", "", "Add a workspace member at the given path")
	f.StringVar(&flagScope, "scope", "", "Package scope, with or without the leading @")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	config.Load()
	return rootCmd.Execute()
}

func runSetup(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	opts := setup.Options{
		Yes:          flagYes,
		Monorepo:     flagMonorepo,
		MonorepoSet:  cmd.Flags().Changed("monorepo"),
		Workspace:    flagWorkspace,
		WorkspaceSet: cmd.Flags().Changed("workspace"),
		Scope:        flagScope,
		ScopeSet:     cmd.Flags().Changed("scope"),
	}

	// The user config file supplies defaults for answers not given as
	// flags; a flag value always wins.
	if !opts.ScopeSet && config.InConfig("scope") {
		opts.Scope = config.Get("scope")
		opts.ScopeSet = true
	}
	if !opts.Yes && config.InConfig("yes") {
		opts.Yes = config.Get("yes") == "true"
	}

	s := &setup.Setup{
		Dir:       cwd,
		Opts:      opts,
		Prompt:    prompt.New(os.Stdin, os.Stderr),
		Npm:       &npm.Client{Runner: &execx.ExecRunner{}, Dir: cwd},
		Out:       os.Stdout,
		Err:       os.Stderr,
		Preflight: npm.CheckVersion,
	}
	return s.Run(cmd.Context())
}
