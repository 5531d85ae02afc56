package main

import (
	"context"
	"os"

	"github.com/indaco/rustws/internal/cli"
	"github.com/indaco/rustws/internal/config"
	"github.com/indaco/rustws/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}
}

// runCLI loads configuration and executes the root command.
// Split from main for testability.
func runCLI(args []string) error {
	cfg, err := config.LoadConfigFn()
	if err != nil {
		return err
	}

	return cli.New(cfg).Run(context.Background(), args)
}
