package locator

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"

	"github.com/indaco/rustws/internal/cargometa"
	"github.com/indaco/rustws/internal/config"
	"github.com/indaco/rustws/internal/core"
	"github.com/pelletier/go-toml/v2"
)

// ManifestName is the build manifest file that marks a project root.
const ManifestName = "Cargo.toml"

// ErrNoManifests indicates that no Cargo.toml was found anywhere under the
// scan root. This is fatal: the run aborts with no output written.
var ErrNoManifests = errors.New("no Cargo.toml manifests found")

// Service discovers and classifies project roots under a directory tree.
type Service struct {
	fs       core.FileSystem
	provider cargometa.Provider
	cfg      *config.Config
}

// NewService creates a new locator Service.
func NewService(fs core.FileSystem, provider cargometa.Provider, cfg *config.Config) *Service {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Service{
		fs:       fs,
		provider: provider,
		cfg:      cfg,
	}
}

// Locate inspects root and returns discovered projects in discovery order.
// When root itself holds a manifest, that project (or its workspace members)
// is the entire result; otherwise subdirectories are scanned recursively.
func (s *Service) Locate(ctx context.Context, root string) (*Result, error) {
	result := &Result{}

	if s.hasManifest(ctx, root) {
		s.classify(ctx, root, result)
		if len(result.Projects) == 0 && len(result.Failures) == 0 {
			return nil, ErrNoManifests
		}
		return result, nil
	}

	visited := make(map[string]bool)
	found := 0
	s.scan(ctx, root, 0, visited, &found, result)

	if found == 0 {
		return nil, ErrNoManifests
	}
	return result, nil
}

// scan walks subdirectories looking for manifests. A directory owning a
// manifest is claimed as a project root and its subtree is not re-entered,
// so nested manifests are never double-counted.
func (s *Service) scan(ctx context.Context, dir string, depth int, visited map[string]bool, found *int, result *Result) {
	if depth > s.cfg.GetMaxDepth() {
		return
	}
	if err := ctx.Err(); err != nil {
		return
	}

	// Cycle guard: symlinked directories resolve to a canonical path;
	// revisiting one terminates the branch without error.
	canonical, err := s.fs.Canonical(ctx, dir)
	if err != nil {
		canonical = filepath.Clean(dir)
	}
	if visited[canonical] {
		return
	}
	visited[canonical] = true

	if s.hasManifest(ctx, dir) {
		*found++
		s.classify(ctx, dir, result)
		return
	}

	entries, err := s.fs.ReadDir(ctx, dir)
	if err != nil {
		// Skip directories we can't read
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if s.shouldExclude(name, filepath.Join(dir, name)) {
			continue
		}
		s.scan(ctx, filepath.Join(dir, name), depth+1, visited, found, result)
	}
}

// classify turns a manifest-owning directory into one or more projects.
// Workspace manifests expand to one project per member; anything else,
// including an unparsable manifest, becomes a single package project whose
// problems surface later through its own metadata query.
func (s *Service) classify(ctx context.Context, dir string, result *Result) {
	if s.isWorkspaceManifest(ctx, joinManifest(dir)) {
		members, err := s.provider.Members(ctx, joinManifest(dir))
		if err != nil {
			result.Failures = append(result.Failures, Failure{Path: dir, Err: err})
			return
		}
		for _, member := range members {
			result.Projects = append(result.Projects, Project{
				Path:           member,
				Classification: WorkspaceMember,
			})
		}
		return
	}

	result.Projects = append(result.Projects, Project{
		Path:           dir,
		Classification: PackageProject,
	})
}

// isWorkspaceManifest reports whether the manifest declares a [workspace]
// table. Cheap local TOML sniff, avoids a cargo invocation for plain packages.
func (s *Service) isWorkspaceManifest(ctx context.Context, manifestPath string) bool {
	data, err := s.fs.ReadFile(ctx, manifestPath)
	if err != nil {
		return false
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return false
	}

	_, ok := doc["workspace"]
	return ok
}

func (s *Service) hasManifest(ctx context.Context, dir string) bool {
	_, err := s.fs.Stat(ctx, joinManifest(dir))
	return err == nil
}

// shouldExclude checks if a directory should be skipped during scanning.
func (s *Service) shouldExclude(name, path string) bool {
	// Skip hidden directories
	if strings.HasPrefix(name, ".") {
		return true
	}

	// Skip build output and common non-project directories
	skipDirs := []string{"target", "node_modules", "vendor", "dist", "build", "__pycache__"}
	if slices.Contains(skipDirs, name) {
		return true
	}

	for _, pattern := range s.cfg.GetExcludePatterns() {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
	}

	return false
}

func joinManifest(dir string) string {
	return filepath.Join(dir, ManifestName)
}
