package setup

// Options is the immutable configuration record resolved once at startup
// from flags and the user config file. The *Set fields record whether a
// value was supplied explicitly, which decides whether the interactive
// prompt fallback runs.
type Options struct {
	// Yes forwards --yes to npm init. Never prompted.
	Yes bool

	Monorepo    bool
	MonorepoSet bool

	Workspace    string
	WorkspaceSet bool

	Scope    string
	ScopeSet bool
}
