package aggregator

import (
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/indaco/rustws/internal/cargometa"
)

// entry is a launch configuration plus its sort keys.
type entry struct {
	projectIndex int
	kind         cargometa.TargetKind
	targetName   string
	config       Configuration
}

// Aggregate turns discovered packages and their targets into ordered,
// collision-free launch configurations. projectCount is the total number of
// projects discovered in the run; with more than one, display names are
// namespaced by package to stay pairwise unique.
//
// Ordering is project discovery order, then kind (Binary before Example),
// then target name lexicographically. The sort is applied explicitly so the
// result never depends on filesystem or map iteration order.
func Aggregate(pairs []ProjectPackage, root string, projectCount int) []Configuration {
	entries := make([]entry, 0)

	for i, pair := range pairs {
		cwd := workingDirectory(root, pair.Project.Path)

		for _, target := range pair.Package.Targets {
			display := displayName(pair.Package.Name, target, projectCount > 1)

			entries = append(entries, entry{
				projectIndex: i,
				kind:         target.Kind,
				targetName:   target.Name,
				config: Configuration{
					Name:    title(target.Kind, display),
					Type:    DebuggerType,
					Request: RequestLaunch,
					Cwd:     cwd,
					Env:     EnvVars{AssetRoot: cwd},
					Cargo:   CargoConfig{Args: cargoArgs(pair.Package.Name, target)},
					Args:    []string{},
				},
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].projectIndex != entries[j].projectIndex {
			return entries[i].projectIndex < entries[j].projectIndex
		}
		if entries[i].kind != entries[j].kind {
			return entries[i].kind < entries[j].kind
		}
		return entries[i].targetName < entries[j].targetName
	})

	configs := make([]Configuration, len(entries))
	for i, e := range entries {
		configs[i] = e.config
	}
	return configs
}

// displayName computes the unique display name for a target. With a single
// discovered project the bare target name is enough; with several projects
// names are namespaced by package, and examples carry a visual suffix to stay
// distinguishable from same-named binaries in listings.
func displayName(pkg string, target cargometa.Target, namespaced bool) string {
	if !namespaced {
		return target.Name
	}
	name := fmt.Sprintf("%s::%s", pkg, target.Name)
	if target.Kind == cargometa.Example {
		name += " (example)"
	}
	return name
}

// title builds the configuration title shown in the editor's debug picker.
func title(kind cargometa.TargetKind, display string) string {
	if kind == cargometa.Example {
		return fmt.Sprintf("Debug example '%s'", display)
	}
	return fmt.Sprintf("Debug binary '%s'", display)
}

// workingDirectory expresses the project path relative to the output root
// through the editor's workspace folder variable.
func workingDirectory(root, projectPath string) string {
	rel, err := filepath.Rel(root, projectPath)
	if err != nil {
		rel = projectPath
	}
	rel = filepath.ToSlash(rel)
	if rel == "" || rel == "." {
		return WorkspaceFolderVar
	}
	return WorkspaceFolderVar + "/" + rel
}

// cargoArgs builds the cargo invocation for a target. Required features are
// sorted lexicographically so the argument is reproducible across runs.
func cargoArgs(pkg string, target cargometa.Target) []string {
	args := []string{"run"}

	switch target.Kind {
	case cargometa.Example:
		args = append(args, fmt.Sprintf("--example=%s", target.Name))
	default:
		args = append(args, fmt.Sprintf("--bin=%s", target.Name))
	}

	args = append(args, fmt.Sprintf("--package=%s", pkg))

	if len(target.RequiredFeatures) > 0 {
		features := slices.Clone(target.RequiredFeatures)
		sort.Strings(features)
		args = append(args, fmt.Sprintf("--features=%s", strings.Join(features, ",")))
	}

	return args
}
