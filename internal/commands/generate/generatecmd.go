package generate

import (
	"context"

	"github.com/indaco/rustws/internal/cargometa"
	"github.com/indaco/rustws/internal/config"
	"github.com/indaco/rustws/internal/core"
	"github.com/indaco/rustws/internal/tui"
	"github.com/urfave/cli/v3"
)

// Flags returns the generation flags. They are shared between the root
// command and the explicit "generate" subcommand.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "root",
			Aliases:     []string{"r"},
			Usage:       "Root directory to search for Rust projects",
			DefaultText: "current directory",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, json, table",
			Value:   "text",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Only show a one-line summary",
		},
		&cli.BoolFlag{
			Name:  "no-interactive",
			Usage: "Skip interactive prompts",
		},
	}
}

// Run returns the "generate" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Generate a multi-root workspace file with launch configurations",
		UsageText: `rustws generate [options]

Discovers Rust projects under the root directory (workspaces expand to their
member packages), collects every binary and example target, and writes a
.code-workspace file with LLDB launch configurations. An existing workspace
file is rotated to a numbered backup, never overwritten.`,
		Flags: Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return Action(ctx, cmd, cfg)
		},
	}
}

// Action executes the generation pipeline from parsed CLI flags.
func Action(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	root := cmd.String("root")
	if root == "" {
		root = "."
	}

	fs := core.NewOSFileSystem()
	provider := cargometa.NewCargoProvider(nil)

	pipeline := NewPipeline(fs, provider, cfg, nil)
	pipeline.Format = ParseOutputFormat(cmd.String("format"))
	pipeline.Quiet = cmd.Bool("quiet")
	pipeline.Interactive = tui.IsInteractive() &&
		!cmd.Bool("no-interactive") &&
		(cfg == nil || !cfg.NoInteractive)

	return pipeline.Run(ctx, root)
}
