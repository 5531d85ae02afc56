package generate

import (
	"errors"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/indaco/rustws/internal/locator"
)

// ErrNoSelection indicates the user deselected every discovered project.
var ErrNoSelection = errors.New("no projects selected")

// selectProjects lets the user narrow the project list on a terminal.
// Non-interactive runs (and single-project runs) pass through unchanged, so
// scripted invocations stay deterministic.
func (p *Pipeline) selectProjects(projects []locator.Project, root string) ([]locator.Project, error) {
	if !p.Interactive || len(projects) <= 1 {
		return projects, nil
	}

	options := make([]huh.Option[string], 0, len(projects))
	defaults := make([]string, 0, len(projects))
	for _, proj := range projects {
		label := proj.Path
		if rel, err := filepath.Rel(root, proj.Path); err == nil {
			label = rel
		}
		options = append(options, huh.NewOption(label, proj.Path))
		defaults = append(defaults, proj.Path)
	}

	selected, err := p.prompter.MultiSelect(
		"Select projects to include",
		"All discovered projects are included by default.",
		options, defaults,
	)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, ErrNoSelection
	}

	chosen := make(map[string]bool, len(selected))
	for _, path := range selected {
		chosen[path] = true
	}

	// Filter in place of the original ordering; selection must not reorder
	// discovery order.
	kept := make([]locator.Project, 0, len(selected))
	for _, proj := range projects {
		if chosen[proj.Path] {
			kept = append(kept, proj)
		}
	}
	return kept, nil
}
