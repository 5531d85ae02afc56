package version

// version is overridden at build time via
// -ldflags "-X github.com/indaco/rustws/internal/version.version=x.y.z".
var version = "0.1.0"

// GetVersion returns the current rustws version string.
func GetVersion() string {
	return version
}
