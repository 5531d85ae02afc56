package cargometa

// TargetKind classifies a runnable Cargo target.
type TargetKind int

const (
	// Binary is a [[bin]] target (including src/main.rs).
	Binary TargetKind = iota

	// Example is a [[example]] target.
	Example
)

// String returns a human-readable representation of the target kind.
func (k TargetKind) String() string {
	switch k {
	case Binary:
		return "binary"
	case Example:
		return "example"
	default:
		return "unknown"
	}
}

// Target represents a runnable target declared by a package.
type Target struct {
	// Kind is the target kind (Binary or Example).
	Kind TargetKind

	// Name is the target name, unique within its package per kind.
	Name string

	// RequiredFeatures lists features that must be enabled to build the target.
	RequiredFeatures []string
}

// Package represents a Cargo package with its runnable targets.
type Package struct {
	// Name is the package name from Cargo.toml.
	Name string

	// ManifestPath is the absolute path to the package's Cargo.toml.
	ManifestPath string

	// Targets holds the package's runnable targets in declaration order.
	Targets []Target
}

// QueryError wraps a failure for a single manifest query.
// Failures are independent per manifest and never conflated across projects.
type QueryError struct {
	ManifestPath string
	Err          error
}

func (e *QueryError) Error() string {
	return "metadata query failed for " + e.ManifestPath + ": " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
