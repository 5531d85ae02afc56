package cargometa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
)

// Provider abstracts the Cargo metadata query so it can be swapped for a
// test double that returns fixed fixtures without invoking any external process.
type Provider interface {
	// Query returns the package owning the given manifest, with its runnable targets.
	Query(ctx context.Context, manifestPath string) (*Package, error)

	// Members returns the member directories declared by a workspace manifest,
	// in the order cargo reports them.
	Members(ctx context.Context, manifestPath string) ([]string, error)
}

// Runner executes the metadata subprocess for a manifest and returns its
// JSON output. Abstracted for testability.
type Runner interface {
	Run(ctx context.Context, manifestPath string) ([]byte, error)
}

// ExecRunner runs the real `cargo metadata` subprocess.
type ExecRunner struct{}

// Run invokes cargo metadata with all features enabled so feature-gated
// targets remain visible regardless of default feature selection.
func (ExecRunner) Run(ctx context.Context, manifestPath string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "cargo", "metadata",
		"--format-version", "1",
		"--all-features",
		"--no-deps",
		"--manifest-path", manifestPath,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("cargo metadata: %s", msg)
		}
		return nil, fmt.Errorf("cargo metadata: %w", err)
	}

	return stdout.Bytes(), nil
}

// metadataDoc mirrors the subset of the cargo metadata JSON schema we consume.
type metadataDoc struct {
	Packages []struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		ManifestPath string `json:"manifest_path"`
		Targets      []struct {
			Name             string   `json:"name"`
			Kind             []string `json:"kind"`
			RequiredFeatures []string `json:"required-features"`
		} `json:"targets"`
	} `json:"packages"`
	WorkspaceMembers []string `json:"workspace_members"`
	WorkspaceRoot    string   `json:"workspace_root"`
}

// CargoProvider is the production Provider backed by the cargo toolchain.
// Results are cached per manifest so the members of one workspace do not
// re-execute cargo once for every member package.
type CargoProvider struct {
	runner Runner
	cache  map[string]*metadataDoc
}

// NewCargoProvider creates a Provider using the given runner.
// A nil runner defaults to the real cargo subprocess.
func NewCargoProvider(runner Runner) *CargoProvider {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &CargoProvider{
		runner: runner,
		cache:  make(map[string]*metadataDoc),
	}
}

// Query returns the package whose manifest matches manifestPath.
func (p *CargoProvider) Query(ctx context.Context, manifestPath string) (*Package, error) {
	doc, err := p.metadata(ctx, manifestPath)
	if err != nil {
		return nil, &QueryError{ManifestPath: manifestPath, Err: err}
	}

	want := canonicalOrClean(manifestPath)
	for _, pkg := range doc.Packages {
		if canonicalOrClean(pkg.ManifestPath) != want {
			continue
		}

		result := &Package{
			Name:         pkg.Name,
			ManifestPath: pkg.ManifestPath,
		}
		for _, t := range pkg.Targets {
			if slices.Contains(t.Kind, "bin") {
				result.Targets = append(result.Targets, Target{
					Kind:             Binary,
					Name:             t.Name,
					RequiredFeatures: slices.Clone(t.RequiredFeatures),
				})
			}
			if slices.Contains(t.Kind, "example") {
				result.Targets = append(result.Targets, Target{
					Kind:             Example,
					Name:             t.Name,
					RequiredFeatures: slices.Clone(t.RequiredFeatures),
				})
			}
		}
		return result, nil
	}

	return nil, &QueryError{
		ManifestPath: manifestPath,
		Err:          fmt.Errorf("no package found for manifest %q", manifestPath),
	}
}

// Members resolves the member directories of a workspace manifest.
func (p *CargoProvider) Members(ctx context.Context, manifestPath string) ([]string, error) {
	doc, err := p.metadata(ctx, manifestPath)
	if err != nil {
		return nil, &QueryError{ManifestPath: manifestPath, Err: err}
	}

	byID := make(map[string]string, len(doc.Packages))
	for _, pkg := range doc.Packages {
		byID[pkg.ID] = filepath.Dir(pkg.ManifestPath)
	}

	// Preserve the order cargo reports so discovery order stays deterministic.
	var dirs []string
	for _, id := range doc.WorkspaceMembers {
		if dir, ok := byID[id]; ok {
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}

// metadata runs (or replays) the metadata query for a manifest.
func (p *CargoProvider) metadata(ctx context.Context, manifestPath string) (*metadataDoc, error) {
	key := canonicalOrClean(manifestPath)
	if doc, ok := p.cache[key]; ok {
		return doc, nil
	}

	out, err := p.runner.Run(ctx, manifestPath)
	if err != nil {
		return nil, err
	}

	var doc metadataDoc
	if err := json.Unmarshal(out, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode cargo metadata output: %w", err)
	}

	p.cache[key] = &doc

	// Register every member manifest so sibling queries hit the cache.
	for _, pkg := range doc.Packages {
		p.cache[canonicalOrClean(pkg.ManifestPath)] = &doc
	}

	return &doc, nil
}

// canonicalOrClean resolves symlinks when possible, falling back to a
// cleaned absolute-ish path so distinct spellings of one manifest compare equal.
func canonicalOrClean(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Ensure CargoProvider implements Provider.
var _ Provider = (*CargoProvider)(nil)
