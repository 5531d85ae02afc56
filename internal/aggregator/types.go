package aggregator

import (
	"github.com/indaco/rustws/internal/cargometa"
	"github.com/indaco/rustws/internal/locator"
)

// Launch configuration constants consumed by the editor. Key values are part
// of the document contract and must not change.
const (
	// DebuggerType is the debug adapter used by every configuration.
	DebuggerType = "lldb"

	// RequestLaunch is the fixed request mode.
	RequestLaunch = "launch"

	// AssetRootEnv is the environment key always set to the working directory.
	// Runtime frameworks resolve their asset tree through it.
	AssetRootEnv = "BEVY_ASSET_ROOT"

	// WorkspaceFolderVar is the editor variable for the workspace root.
	WorkspaceFolderVar = "${workspaceFolder}"
)

// EnvVars is the environment mapping written into each configuration.
type EnvVars struct {
	AssetRoot string `json:"BEVY_ASSET_ROOT"`
}

// CargoConfig carries the cargo invocation for a configuration.
type CargoConfig struct {
	Args []string `json:"args"`
}

// Configuration is one debugger launch entry. Derived 1:1 from a target and
// never mutated after creation. Field order matches the produced document.
type Configuration struct {
	Name    string      `json:"name"`
	Type    string      `json:"type"`
	Request string      `json:"request"`
	Cwd     string      `json:"cwd"`
	Env     EnvVars     `json:"env"`
	Cargo   CargoConfig `json:"cargo"`
	Args    []string    `json:"args"`
}

// ProjectPackage pairs a discovered project with its resolved package.
type ProjectPackage struct {
	Project locator.Project
	Package *cargometa.Package
}
