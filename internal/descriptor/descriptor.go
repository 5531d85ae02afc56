package descriptor

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/indaco/rustws/internal/aggregator"
	"github.com/indaco/rustws/internal/locator"
)

// LaunchVersion is the fixed launch protocol version the editor expects.
const LaunchVersion = "0.2.0"

// FileSuffix is the required suffix for a multi-root workspace descriptor.
const FileSuffix = ".code-workspace"

// Folder is one workspace folder entry.
type Folder struct {
	Path string `json:"path"`
}

// Launch holds the debugger launch section of the descriptor.
type Launch struct {
	Version        string                     `json:"version"`
	Configurations []aggregator.Configuration `json:"configurations"`
}

// Document is the multi-root workspace descriptor. It is built by full
// replacement: prior content at the destination is never read or merged,
// only preserved through backup rotation.
type Document struct {
	Folders []Folder `json:"folders"`
	Name    string   `json:"name,omitempty"`
	Launch  Launch   `json:"launch"`
}

// Build assembles the descriptor for the given projects and configurations.
// Folder order follows project discovery order.
func Build(projects []locator.Project, configs []aggregator.Configuration, root string) *Document {
	doc := &Document{
		Name: workspaceName(projects, root),
		Launch: Launch{
			Version:        LaunchVersion,
			Configurations: configs,
		},
	}

	seen := make(map[string]bool)
	for _, p := range projects {
		path := folderPath(root, p.Path)
		if seen[path] {
			continue
		}
		seen[path] = true
		doc.Folders = append(doc.Folders, Folder{Path: path})
	}

	if len(doc.Folders) == 0 {
		doc.Folders = []Folder{{Path: "."}}
	}

	return doc
}

// Encode renders the descriptor as the editor's JSON document: two-space
// indent, stable key order, trailing newline. Byte-identical for equal input.
func (d *Document) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode workspace descriptor: %w", err)
	}
	return append(data, '\n'), nil
}

// Filename computes the descriptor filename from the root's base name.
// The same rule applies in single-project mode.
func Filename(root string) string {
	base := filepath.Base(filepath.Clean(root))
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "rust-projects"
	}
	return base + FileSuffix
}

// workspaceName derives a friendly top-level name. A single project is named
// after its own directory; several projects are named after the root with a
// project count.
func workspaceName(projects []locator.Project, root string) string {
	if len(projects) == 1 {
		if base := filepath.Base(filepath.Clean(projects[0].Path)); base != "." && base != "" {
			return fmt.Sprintf("%s (Rust)", base)
		}
	}

	rootName := filepath.Base(filepath.Clean(root))
	if rootName == "." || rootName == "" {
		rootName = "Rust Projects"
	}

	if len(projects) > 1 {
		return fmt.Sprintf("%s (%d Rust Projects)", rootName, len(projects))
	}
	return fmt.Sprintf("%s (Rust)", rootName)
}

// folderPath expresses a project path relative to the output root,
// "." when the project coincides with the root.
func folderPath(root, projectPath string) string {
	rel, err := filepath.Rel(root, projectPath)
	if err != nil {
		rel = projectPath
	}
	rel = filepath.ToSlash(rel)
	if rel == "" || rel == "." {
		return "."
	}
	return "./" + rel
}
