package generate

import (
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/indaco/rustws/internal/core"
	"github.com/indaco/rustws/internal/locator"
)

// stubPrompter returns a fixed selection without any terminal interaction.
type stubPrompter struct {
	selection []string
	err       error
}

func (s *stubPrompter) Confirm(_, _ string) (bool, error) {
	return true, s.err
}

func (s *stubPrompter) MultiSelect(_, _ string, _ []huh.Option[string], _ []string) ([]string, error) {
	return s.selection, s.err
}

func projects(paths ...string) []locator.Project {
	out := make([]locator.Project, 0, len(paths))
	for _, p := range paths {
		out = append(out, locator.Project{Path: p, Classification: locator.PackageProject})
	}
	return out
}

func TestSelectProjects_NonInteractivePassthrough(t *testing.T) {
	p := NewPipeline(core.NewMockFileSystem(), &stubProvider{}, nil, &stubPrompter{})

	in := projects("/r/a", "/r/b")
	out, err := p.selectProjects(in, "/r")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("len(out) = %d, want 2 (unfiltered)", len(out))
	}
}

func TestSelectProjects_FilterKeepsDiscoveryOrder(t *testing.T) {
	p := NewPipeline(core.NewMockFileSystem(), &stubProvider{}, nil,
		&stubPrompter{selection: []string{"/r/c", "/r/a"}})
	p.Interactive = true

	out, err := p.selectProjects(projects("/r/a", "/r/b", "/r/c"), "/r")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Selection order must not override discovery order.
	if len(out) != 2 || out[0].Path != "/r/a" || out[1].Path != "/r/c" {
		t.Errorf("out = %v, want [/r/a /r/c]", out)
	}
}

func TestSelectProjects_EmptySelection(t *testing.T) {
	p := NewPipeline(core.NewMockFileSystem(), &stubProvider{}, nil, &stubPrompter{})
	p.Interactive = true

	_, err := p.selectProjects(projects("/r/a", "/r/b"), "/r")
	if !errors.Is(err, ErrNoSelection) {
		t.Errorf("err = %v, want ErrNoSelection", err)
	}
}

func TestSelectProjects_SingleProjectSkipsPrompt(t *testing.T) {
	p := NewPipeline(core.NewMockFileSystem(), &stubProvider{}, nil,
		&stubPrompter{err: errors.New("prompt must not run")})
	p.Interactive = true

	out, err := p.selectProjects(projects("/r/a"), "/r")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Errorf("len(out) = %d, want 1", len(out))
	}
}
