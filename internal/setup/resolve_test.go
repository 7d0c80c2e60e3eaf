package setup

import (
	"bytes"
	"strings"
	"testing"
)

// scriptedPrompter feeds canned answers and fails the test when a question
// arrives that the script did not anticipate.
type scriptedPrompter struct {
	t        *testing.T
	confirms []bool
	inputs   []string

	confirmQuestions []string
	inputQuestions   []string
}

func (p *scriptedPrompter) Confirm(question string) (bool, error) {
	p.t.Helper()
	if len(p.confirms) == 0 {
		p.t.Fatalf("unexpected Confirm(%q)", question)
	}
	p.confirmQuestions = append(p.confirmQuestions, question)
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

func (p *scriptedPrompter) Input(question string) (string, error) {
	p.t.Helper()
	if len(p.inputs) == 0 {
		p.t.Fatalf("unexpected Input(%q)", question)
	}
	p.inputQuestions = append(p.inputQuestions, question)
	answer := p.inputs[0]
	p.inputs = p.inputs[1:]
	return answer, nil
}

func TestNormalizeScope(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"@acme", "@acme"},
		{"acme", "@acme"},
		{"@", "@"},
	}
	for _, tt := range tests {
		if got := NormalizeScope(tt.in); got != tt.want {
			t.Errorf("NormalizeScope(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolver_Workspace(t *testing.T) {
	t.Run("empty dir forces empty with warning", func(t *testing.T) {
		var warnings bytes.Buffer
		r := &Resolver{
			Opts:   Options{Workspace: "packages/x", WorkspaceSet: true},
			Prompt: &scriptedPrompter{t: t},
			Err:    &warnings,
		}
		got, err := r.Workspace(true, false)
		if err != nil {
			t.Fatalf("Workspace() error: %v", err)
		}
		if got != "" {
			t.Errorf("Workspace() = %q, want empty", got)
		}
		if !strings.Contains(warnings.String(), "Warning") {
			t.Errorf("expected a warning, got %q", warnings.String())
		}
	})

	t.Run("no manifest forces empty silently", func(t *testing.T) {
		var warnings bytes.Buffer
		r := &Resolver{Opts: Options{}, Prompt: &scriptedPrompter{t: t}, Err: &warnings}
		got, err := r.Workspace(false, false)
		if err != nil {
			t.Fatalf("Workspace() error: %v", err)
		}
		if got != "" {
			t.Errorf("Workspace() = %q, want empty", got)
		}
		if warnings.Len() != 0 {
			t.Errorf("unexpected warning: %q", warnings.String())
		}
	})

	t.Run("flag wins without prompting", func(t *testing.T) {
		r := &Resolver{
			Opts:   Options{Workspace: "packages/x", WorkspaceSet: true},
			Prompt: &scriptedPrompter{t: t},
			Err:    &bytes.Buffer{},
		}
		got, err := r.Workspace(false, true)
		if err != nil {
			t.Fatalf("Workspace() error: %v", err)
		}
		if got != "packages/x" {
			t.Errorf("Workspace() = %q, want packages/x", got)
		}
	})

	t.Run("prompted when unset", func(t *testing.T) {
		p := &scriptedPrompter{t: t, inputs: []string{"packages/y"}}
		r := &Resolver{Opts: Options{}, Prompt: p, Err: &bytes.Buffer{}}
		got, err := r.Workspace(false, true)
		if err != nil {
			t.Fatalf("Workspace() error: %v", err)
		}
		if got != "packages/y" {
			t.Errorf("Workspace() = %q, want packages/y", got)
		}
	})
}

func TestResolver_Monorepo(t *testing.T) {
	t.Run("workspace selection forces false with warning", func(t *testing.T) {
		var warnings bytes.Buffer
		r := &Resolver{
			Opts:   Options{Monorepo: true, MonorepoSet: true},
			Prompt: &scriptedPrompter{t: t},
			Err:    &warnings,
		}
		got, err := r.Monorepo(true)
		if err != nil {
			t.Fatalf("Monorepo() error: %v", err)
		}
		if got {
			t.Error("Monorepo() = true, want forced false")
		}
		if !strings.Contains(warnings.String(), "Warning") {
			t.Errorf("expected a warning, got %q", warnings.String())
		}
	})

	t.Run("flag wins without prompting", func(t *testing.T) {
		r := &Resolver{
			Opts:   Options{Monorepo: true, MonorepoSet: true},
			Prompt: &scriptedPrompter{t: t},
			Err:    &bytes.Buffer{},
		}
		got, err := r.Monorepo(false)
		if err != nil {
			t.Fatalf("Monorepo() error: %v", err)
		}
		if !got {
			t.Error("Monorepo() = false, want true")
		}
	})

	t.Run("prompted when unset", func(t *testing.T) {
		p := &scriptedPrompter{t: t, confirms: []bool{true}}
		r := &Resolver{Opts: Options{}, Prompt: p, Err: &bytes.Buffer{}}
		got, err := r.Monorepo(false)
		if err != nil {
			t.Fatalf("Monorepo() error: %v", err)
		}
		if !got {
			t.Error("Monorepo() = false, want true")
		}
	})
}

func TestResolver_Scope(t *testing.T) {
	t.Run("flag wins and is normalized", func(t *testing.T) {
		r := &Resolver{
			Opts:   Options{Scope: "acme", ScopeSet: true},
			Prompt: &scriptedPrompter{t: t},
			Err:    &bytes.Buffer{},
		}
		got, err := r.Scope(true)
		if err != nil {
			t.Fatalf("Scope() error: %v", err)
		}
		if got != "@acme" {
			t.Errorf("Scope() = %q, want @acme", got)
		}
	})

	t.Run("explicit empty flag wins even when required", func(t *testing.T) {
		r := &Resolver{
			Opts:   Options{Scope: "", ScopeSet: true},
			Prompt: &scriptedPrompter{t: t},
			Err:    &bytes.Buffer{},
		}
		got, err := r.Scope(true)
		if err != nil {
			t.Fatalf("Scope() error: %v", err)
		}
		if got != "" {
			t.Errorf("Scope() = %q, want empty", got)
		}
	})

	t.Run("required prompt fails on empty answer", func(t *testing.T) {
		p := &scriptedPrompter{t: t, inputs: []string{""}}
		r := &Resolver{Opts: Options{}, Prompt: p, Err: &bytes.Buffer{}}
		if _, err := r.Scope(true); err == nil {
			t.Fatal("expected error for declined required scope, got nil")
		}
	})

	t.Run("optional prompt accepts empty answer", func(t *testing.T) {
		p := &scriptedPrompter{t: t, inputs: []string{""}}
		r := &Resolver{Opts: Options{}, Prompt: p, Err: &bytes.Buffer{}}
		got, err := r.Scope(false)
		if err != nil {
			t.Fatalf("Scope() error: %v", err)
		}
		if got != "" {
			t.Errorf("Scope() = %q, want empty", got)
		}
	})
}
