package cli

import (
	"context"
	"fmt"

	"github.com/indaco/rustws/internal/commands/generate"
	"github.com/indaco/rustws/internal/config"
	"github.com/indaco/rustws/internal/printer"
	"github.com/indaco/rustws/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

var noColorFlag bool

// New builds and returns the root CLI command. rustws is a one-shot tool, so
// the root action runs the generator directly; the explicit "generate"
// subcommand exists for symmetry and discoverability.
func New(cfg *config.Config) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "rustws",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Generate VS Code multi-root workspaces for Rust projects",
		EnableShellCompletion: true,
		Flags: append(generate.Flags(),
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
		),
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColorFlag)
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			return generate.Action(ctx, cmd, cfg)
		},
		Commands: []*urfavecli.Command{
			generate.Run(cfg),
		},
	}
}
