package generate

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/indaco/rustws/internal/cargometa"
	"github.com/indaco/rustws/internal/core"
	"github.com/indaco/rustws/internal/locator"
)

// stubProvider returns canned packages per manifest path.
type stubProvider struct {
	packages map[string]*cargometa.Package
	members  map[string][]string
}

func (s *stubProvider) Query(_ context.Context, manifestPath string) (*cargometa.Package, error) {
	pkg, ok := s.packages[manifestPath]
	if !ok {
		return nil, &cargometa.QueryError{ManifestPath: manifestPath, Err: errors.New("query failed")}
	}
	return pkg, nil
}

func (s *stubProvider) Members(_ context.Context, manifestPath string) ([]string, error) {
	return s.members[manifestPath], nil
}

func newTestPipeline(fs core.FileSystem, provider cargometa.Provider) *Pipeline {
	p := NewPipeline(fs, provider, nil, nil)
	p.Quiet = true // keep test output small
	return p
}

func TestPipeline_SingleProject(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/work/demo/Cargo.toml", []byte("[package]\nname = \"demo\"\n"))

	provider := &stubProvider{packages: map[string]*cargometa.Package{
		"/work/demo/Cargo.toml": {
			Name:         "demo",
			ManifestPath: "/work/demo/Cargo.toml",
			Targets: []cargometa.Target{
				{Kind: cargometa.Binary, Name: "app"},
				{Kind: cargometa.Example, Name: "ex1"},
			},
		},
	}}

	p := newTestPipeline(fs, provider)
	if err := p.Run(context.Background(), "/work/demo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, ok := fs.File("/work/demo/demo.code-workspace")
	if !ok {
		t.Fatal("workspace file was not written")
	}

	content := string(data)
	for _, want := range []string{
		`"path": "."`,
		`"version": "0.2.0"`,
		`Debug binary 'app'`,
		`Debug example 'ex1'`,
		`"--bin=app"`,
		`"--example=ex1"`,
		`"--package=demo"`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("workspace file missing %q", want)
		}
	}
}

func TestPipeline_PartialFailureStillSucceeds(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/root/good/Cargo.toml", []byte("[package]\nname = \"good\"\n"))
	fs.SetFile("/root/bad/Cargo.toml", []byte("[package]\nname = \"bad\"\n"))

	provider := &stubProvider{packages: map[string]*cargometa.Package{
		"/root/good/Cargo.toml": {
			Name:         "good",
			ManifestPath: "/root/good/Cargo.toml",
			Targets:      []cargometa.Target{{Kind: cargometa.Binary, Name: "good"}},
		},
		// /root/bad intentionally absent: its query fails.
	}}

	p := newTestPipeline(fs, provider)
	if err := p.Run(context.Background(), "/root"); err != nil {
		t.Fatalf("partial failure should not be fatal, got: %v", err)
	}

	data, ok := fs.File("/root/root.code-workspace")
	if !ok {
		t.Fatal("workspace file was not written")
	}

	// Two projects were discovered, so names stay namespaced even though
	// only one survived.
	if !strings.Contains(string(data), "Debug binary 'good::good'") {
		t.Errorf("workspace file missing namespaced configuration, got:\n%s", data)
	}
	if strings.Contains(string(data), "bad") {
		t.Errorf("failed project leaked into the document:\n%s", data)
	}
}

func TestPipeline_AllQueriesFailed(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/root/one/Cargo.toml", []byte("[package]\nname = \"one\"\n"))

	provider := &stubProvider{} // every query fails

	p := newTestPipeline(fs, provider)
	err := p.Run(context.Background(), "/root")

	if !errors.Is(err, ErrAllQueriesFailed) {
		t.Errorf("err = %v, want ErrAllQueriesFailed", err)
	}
	if _, ok := fs.File("/root/root.code-workspace"); ok {
		t.Error("no output should be written when every query fails")
	}
}

func TestPipeline_NoManifests(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetDir("/empty")

	p := newTestPipeline(fs, &stubProvider{})
	err := p.Run(context.Background(), "/empty")

	if !errors.Is(err, locator.ErrNoManifests) {
		t.Errorf("err = %v, want ErrNoManifests", err)
	}
}

func TestPipeline_NoRunnablesWritesNothing(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/work/lib/Cargo.toml", []byte("[package]\nname = \"lib\"\n"))

	provider := &stubProvider{packages: map[string]*cargometa.Package{
		"/work/lib/Cargo.toml": {Name: "lib", ManifestPath: "/work/lib/Cargo.toml"},
	}}

	p := newTestPipeline(fs, provider)
	if err := p.Run(context.Background(), "/work/lib"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := fs.File("/work/lib/lib.code-workspace"); ok {
		t.Error("library-only project should not produce a workspace file")
	}
}

func TestPipeline_WorkspaceRootExpandsMembers(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/ws/Cargo.toml", []byte("[workspace]\nmembers = [\"a\", \"b\"]\n"))
	fs.SetFile("/ws/a/Cargo.toml", []byte("[package]\nname = \"a\"\n"))
	fs.SetFile("/ws/b/Cargo.toml", []byte("[package]\nname = \"b\"\n"))

	provider := &stubProvider{
		members: map[string][]string{"/ws/Cargo.toml": {"/ws/a", "/ws/b"}},
		packages: map[string]*cargometa.Package{
			"/ws/a/Cargo.toml": {
				Name: "a", ManifestPath: "/ws/a/Cargo.toml",
				Targets: []cargometa.Target{{Kind: cargometa.Binary, Name: "a"}},
			},
			"/ws/b/Cargo.toml": {
				Name: "b", ManifestPath: "/ws/b/Cargo.toml",
				Targets: []cargometa.Target{{Kind: cargometa.Binary, Name: "b"}},
			},
		},
	}

	p := newTestPipeline(fs, provider)
	if err := p.Run(context.Background(), "/ws"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, ok := fs.File("/ws/ws.code-workspace")
	if !ok {
		t.Fatal("workspace file was not written")
	}

	content := string(data)
	for _, want := range []string{`"./a"`, `"./b"`, "Debug binary 'a::a'", "Debug binary 'b::b'"} {
		if !strings.Contains(content, want) {
			t.Errorf("workspace file missing %q, got:\n%s", want, content)
		}
	}
}

func TestPipeline_SecondRunRotatesAndReproduces(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/work/demo/Cargo.toml", []byte("[package]\nname = \"demo\"\n"))

	provider := &stubProvider{packages: map[string]*cargometa.Package{
		"/work/demo/Cargo.toml": {
			Name: "demo", ManifestPath: "/work/demo/Cargo.toml",
			Targets: []cargometa.Target{{Kind: cargometa.Binary, Name: "app"}},
		},
	}}

	p := newTestPipeline(fs, provider)
	ctx := context.Background()

	if err := p.Run(ctx, "/work/demo"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first, _ := fs.File("/work/demo/demo.code-workspace")

	if err := p.Run(ctx, "/work/demo"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second, _ := fs.File("/work/demo/demo.code-workspace")
	backup, ok := fs.File("/work/demo/demo.code-workspace.backup")

	if !ok {
		t.Fatal("second run did not rotate the first descriptor")
	}
	// Unchanged input: byte-identical documents, and the backup holds the
	// first run's bytes.
	if !bytes.Equal(first, second) {
		t.Error("descriptors differ across runs over unchanged input")
	}
	if !bytes.Equal(backup, first) {
		t.Error("backup does not match the first run's descriptor")
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in   string
		want OutputFormat
	}{
		{"json", FormatJSON},
		{"table", FormatTable},
		{"text", FormatText},
		{"bogus", FormatText},
	}

	for _, tt := range tests {
		if got := ParseOutputFormat(tt.in); got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
