package setup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tsforge-labs/tsforge/internal/copier"
	"github.com/tsforge-labs/tsforge/internal/npm"
	"github.com/tsforge-labs/tsforge/internal/patch"
	"github.com/tsforge-labs/tsforge/internal/templates"
)

// Dev dependency sets, each installed with a single npm invocation.
var (
	toolchainDeps = []string{
		"typescript",
		"eslint",
		"eslint-plugin-import-x",
		"eslint-import-resolver-typescript",
	}
	testDeps = []string{"vitest"}

	// sharedRootDeps is installed once at the root of a monorepo so every
	// member lints against the same configuration.
	sharedRootDeps = []string{
		"eslint",
		"eslint-plugin-import-x",
		"eslint-import-resolver-typescript",
	}
)

const (
	outDirValue   = "dist"
	mainValue     = "dist/src/index.js"
	typesValue    = "dist/src/index.d.ts"
	pathsPattern  = "../*/src"
	buildConfig   = "tsconfig.build.json"
	editorConfig  = "tsconfig.json"
	buildScript   = "tsc"
	buildScriptWS = "tsc --project " + buildConfig
	lintScript    = "eslint ."
	testScript    = "vitest run"
	testWatch     = "vitest"
)

// packageDesc describes one package to provision: where it lives on disk,
// its npm workspace selector ("" for the root package), which code variant
// it receives, and the license to propagate (may be empty).
type packageDesc struct {
	dir       string
	workspace string
	role      string
	license   string
}

// provision performs the shared per-package sequence used by all three
// flows. Any step's failure aborts the whole subroutine. With runChecks,
// the package's own lint/build/test run at the end, scoped to the
// workspace member when there is one.
func (s *Setup) provision(ctx context.Context, d packageDesc, scope string, runChecks bool) error {
	if d.license != "" {
		if err := s.Npm.SetFields(ctx, d.workspace, npm.Field{Key: "license", Value: d.license}); err != nil {
			return err
		}
	}

	if err := s.Npm.InstallDev(ctx, d.workspace, toolchainDeps...); err != nil {
		return err
	}
	if err := s.Npm.InstallDev(ctx, d.workspace, testDeps...); err != nil {
		return err
	}

	common, err := templates.Region(templates.RegionCommon)
	if err != nil {
		return err
	}
	if err := copier.CopyDir(common, d.dir); err != nil {
		return err
	}

	if d.workspace != "" {
		pkgOnly, err := templates.Region(templates.RegionPackage)
		if err != nil {
			return err
		}
		if err := copier.CopyDir(pkgOnly, d.dir); err != nil {
			return err
		}
	}

	if err := s.writeCode(d, scope); err != nil {
		return err
	}

	if err := s.patchCompilerConfig(d, scope); err != nil {
		return err
	}

	build := buildScript
	if d.workspace != "" {
		build = buildScriptWS
	}
	err = s.Npm.SetFields(ctx, d.workspace,
		npm.Field{Key: "scripts.lint", Value: lintScript},
		npm.Field{Key: "scripts.build", Value: build},
		npm.Field{Key: "scripts.test", Value: testScript},
		npm.Field{Key: "scripts.test:watch", Value: testWatch},
	)
	if err != nil {
		return err
	}

	err = s.Npm.SetFields(ctx, d.workspace,
		npm.Field{Key: "main", Value: mainValue},
		npm.Field{Key: "types", Value: typesValue},
	)
	if err != nil {
		return err
	}

	if err := s.Npm.SetFields(ctx, d.workspace, npm.Field{Key: "type", Value: "module"}); err != nil {
		return err
	}

	if runChecks {
		for _, script := range checkScripts {
			if err := s.Npm.RunScript(ctx, d.workspace, script); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeCode creates the source and test directories and writes the
// role-selected template files with the scope placeholder substituted.
func (s *Setup) writeCode(d packageDesc, scope string) error {
	source, test, err := templates.Code(d.role, scope)
	if err != nil {
		return err
	}

	srcDir := filepath.Join(d.dir, "src")
	testDir := filepath.Join(d.dir, "test")
	for _, dir := range []string{srcDir, testDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(filepath.Join(srcDir, "index.ts"), source, 0644); err != nil {
		return fmt.Errorf("writing source file: %w", err)
	}
	if err := os.WriteFile(filepath.Join(testDir, "index.test.ts"), test, 0644); err != nil {
		return fmt.Errorf("writing test file: %w", err)
	}
	return nil
}

// patchCompilerConfig applies the structural edits to the package's
// compiler configuration document(s). The output directory and include
// list go on the build document: the build-specific one inside a
// workspace, the sole document outside one. The scope path mapping goes on
// the document that is not re-overridden by extension, so it cannot be
// silently discarded.
func (s *Setup) patchCompilerConfig(d packageDesc, scope string) error {
	buildEdits := []patch.Edit{
		{Path: []string{"compilerOptions", "outDir"}, Value: outDirValue},
		{Path: []string{"include"}, Value: []string{"src"}},
	}
	pathsEdit := patch.Edit{
		Path:  []string{"compilerOptions", "paths", scope + "/*"},
		Value: []string{pathsPattern},
	}

	if d.workspace != "" {
		if err := patchFile(filepath.Join(d.dir, buildConfig), buildEdits); err != nil {
			return err
		}
		if scope != "" {
			return patchFile(filepath.Join(d.dir, editorConfig), []patch.Edit{pathsEdit})
		}
		return nil
	}

	edits := buildEdits
	if scope != "" {
		edits = append(edits, pathsEdit)
	}
	return patchFile(filepath.Join(d.dir, editorConfig), edits)
}

func patchFile(path string, edits []patch.Edit) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	patched, err := patch.Apply(data, edits)
	if err != nil {
		return fmt.Errorf("patching %s: %w", path, err)
	}
	if err := patch.ValidateCompilerConfig(patched); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := os.WriteFile(path, patched, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
