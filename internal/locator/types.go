package locator

// Classification indicates how a discovered project sources its targets.
// Modeled as a tagged value rather than a type hierarchy since the only
// divergent behavior is target sourcing.
type Classification int

const (
	// PackageProject is a standalone package with its own Cargo.toml.
	PackageProject Classification = iota

	// WorkspaceMember is a package discovered through a workspace manifest.
	WorkspaceMember
)

// String returns a human-readable representation of the classification.
func (c Classification) String() string {
	switch c {
	case PackageProject:
		return "package"
	case WorkspaceMember:
		return "workspace member"
	default:
		return "unknown"
	}
}

// Project is a discovered project root. Immutable once produced;
// discovery order is preserved downstream.
type Project struct {
	// Path is the directory containing the project's Cargo.toml.
	Path string

	// Classification records how the project was discovered.
	Classification Classification
}

// ManifestPath returns the path of the project's Cargo.toml.
func (p Project) ManifestPath() string {
	return joinManifest(p.Path)
}

// Failure records a per-project discovery problem. Failures are collected,
// not raised, so remaining projects still process.
type Failure struct {
	// Path is the directory whose manifest could not be processed.
	Path string

	// Err is the underlying error.
	Err error
}

// Result holds ordered discovered projects plus collected per-project failures.
type Result struct {
	Projects []Project
	Failures []Failure
}
