package generate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh/spinner"
	"github.com/indaco/rustws/internal/aggregator"
	"github.com/indaco/rustws/internal/backup"
	"github.com/indaco/rustws/internal/cargometa"
	"github.com/indaco/rustws/internal/config"
	"github.com/indaco/rustws/internal/core"
	"github.com/indaco/rustws/internal/descriptor"
	"github.com/indaco/rustws/internal/locator"
	"github.com/indaco/rustws/internal/printer"
)

// ErrAllQueriesFailed indicates that no discovered project produced usable
// metadata, so there is nothing to aggregate. Fatal for the run.
var ErrAllQueriesFailed = errors.New("metadata queries failed for every discovered project")

// Pipeline runs the full generation flow: discovery, metadata queries,
// aggregation, descriptor synthesis, and the backed-up write. Stages run
// sequentially; each consumes the prior stage's complete output.
type Pipeline struct {
	fs       core.FileSystem
	provider cargometa.Provider
	cfg      *config.Config
	prompter Prompter

	// Interactive enables TUI prompts and the query spinner.
	Interactive bool

	// Quiet reduces output to a single summary line.
	Quiet bool

	// Format selects the summary rendering (text, json, table).
	Format OutputFormat
}

// NewPipeline creates a Pipeline. A nil provider defaults to the cargo
// toolchain; a nil prompter defaults to the TUI prompter.
func NewPipeline(fs core.FileSystem, provider cargometa.Provider, cfg *config.Config, prompter Prompter) *Pipeline {
	if provider == nil {
		provider = cargometa.NewCargoProvider(nil)
	}
	if prompter == nil {
		prompter = NewPrompter()
	}
	return &Pipeline{
		fs:       fs,
		provider: provider,
		cfg:      cfg,
		prompter: prompter,
		Format:   FormatText,
	}
}

// Run executes the pipeline for the given root and returns an error only for
// fatal conditions: no manifests, every query failed, or the final write
// failed. Per-project failures are collected and summarized, not raised.
func (p *Pipeline) Run(ctx context.Context, root string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve root %q: %w", root, err)
	}

	summary := &Summary{Root: absRoot}
	narrate := p.Format == FormatText && !p.Quiet

	if narrate {
		printer.PrintInfo("Searching for Rust projects in: " + absRoot)
	}

	result, err := locator.NewService(p.fs, p.provider, p.cfg).Locate(ctx, absRoot)
	if err != nil {
		return err
	}

	for _, f := range result.Failures {
		summary.Failures = append(summary.Failures, FailureSummary{Path: f.Path, Reason: f.Err.Error()})
	}

	projects := result.Projects
	discovered := len(projects)

	if narrate && discovered > 0 {
		printer.PrintBold(fmt.Sprintf("Found %d Rust project(s):", discovered))
		for _, proj := range projects {
			printer.PrintFaint("  " + proj.Path)
		}
	}

	projects, err = p.selectProjects(projects, absRoot)
	if err != nil {
		return err
	}

	pairs, failures := p.queryProjects(ctx, projects)
	summary.Failures = append(summary.Failures, failures...)

	if len(pairs) == 0 {
		p.printFailures(summary)
		if discovered == 0 {
			return locator.ErrNoManifests
		}
		return ErrAllQueriesFailed
	}

	kept := make([]locator.Project, 0, len(pairs))
	for _, pair := range pairs {
		kept = append(kept, pair.Project)
		summary.Projects = append(summary.Projects, ProjectSummary{
			Path:           relOrSelf(absRoot, pair.Project.Path),
			Classification: pair.Project.Classification.String(),
			Package:        pair.Package.Name,
			Targets:        len(pair.Package.Targets),
		})
	}

	configs := aggregator.Aggregate(pairs, absRoot, discovered)
	for _, c := range configs {
		summary.Runnables = append(summary.Runnables, RunnableSummary{Name: c.Name, Package: packageArg(c)})
	}

	if len(configs) == 0 {
		// Nothing runnable anywhere: a successful no-op, nothing is written.
		if narrate {
			printer.PrintWarning("No runnables found in " + absRoot)
		}
		p.printFailures(summary)
		p.printSummary(summary)
		return nil
	}

	if narrate {
		printer.PrintBold(fmt.Sprintf("Found %d runnable(s):", len(configs)))
		for _, c := range configs {
			printer.PrintFaint("  " + c.Name)
		}
	}

	doc := descriptor.Build(kept, configs, absRoot)
	data, err := doc.Encode()
	if err != nil {
		return err
	}

	outPath := filepath.Join(absRoot, descriptor.Filename(absRoot))
	report, err := backup.NewWriter(p.fs).Write(ctx, outPath, data)
	if err != nil {
		return err
	}

	summary.OutputFile = outPath
	summary.BackupPath = report.BackupPath
	summary.PriorMalformed = report.PriorMalformed

	if narrate {
		if report.BackupPath != "" {
			if report.PriorMalformed {
				printer.PrintWarning("Existing workspace file was not a valid descriptor; preserved as-is.")
			}
			printer.PrintInfo("Backed up existing workspace file to " + report.BackupPath)
		}
		printer.PrintSuccess(fmt.Sprintf("Created %s with %d launch configuration(s) in %s",
			descriptor.Filename(absRoot), len(configs), absRoot))
	}

	p.printFailures(summary)
	p.printSummary(summary)

	return nil
}

// queryProjects performs one metadata query per project, sequentially.
// Failures are independent: a failing project is skipped and recorded while
// the rest continue.
func (p *Pipeline) queryProjects(ctx context.Context, projects []locator.Project) ([]aggregator.ProjectPackage, []FailureSummary) {
	var pairs []aggregator.ProjectPackage
	var failures []FailureSummary

	query := func() {
		for _, proj := range projects {
			pkg, err := p.provider.Query(ctx, proj.ManifestPath())
			if err != nil {
				failures = append(failures, FailureSummary{Path: proj.Path, Reason: err.Error()})
				continue
			}
			pairs = append(pairs, aggregator.ProjectPackage{Project: proj, Package: pkg})
		}
	}

	if p.Interactive && p.Format == FormatText && !p.Quiet {
		_ = spinner.New().
			Title("Querying cargo metadata...").
			Action(query).
			Run()
	} else {
		query()
	}

	return pairs, failures
}

// printFailures reports collected per-project failures at the end of the run.
func (p *Pipeline) printFailures(summary *Summary) {
	if p.Format != FormatText || p.Quiet || len(summary.Failures) == 0 {
		return
	}
	printer.PrintWarning(fmt.Sprintf("%d project(s) skipped:", len(summary.Failures)))
	for _, f := range summary.Failures {
		printer.PrintFaint(fmt.Sprintf("  %s: %s", f.Path, f.Reason))
	}
}

// printSummary emits the structured run summary for non-text formats, or the
// single-line summary in quiet mode.
func (p *Pipeline) printSummary(summary *Summary) {
	switch {
	case p.Quiet:
		printQuietSummary(summary)
	case p.Format != FormatText:
		NewFormatter(p.Format).PrintSummary(summary)
	}
}

// packageArg extracts the --package argument from a configuration for the summary.
func packageArg(c aggregator.Configuration) string {
	for _, arg := range c.Cargo.Args {
		if after, ok := strings.CutPrefix(arg, "--package="); ok {
			return after
		}
	}
	return ""
}

func relOrSelf(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
