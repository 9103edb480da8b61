package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rubiojr/fhsearch/pkg/log"
	"github.com/rubiojr/fhsearch/pkg/tui"
	"github.com/urfave/cli/v3"
)

// TUICommand creates the tui command
func TUICommand() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Interactive terminal search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Write logs to this file instead of discarding them",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runTUI(ctx, c.String("config"), c.String("log-file"))
		},
	}
}

func runTUI(ctx context.Context, configPath, logFile string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// Log lines would corrupt the screen
	var out io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	log.SetOutput(out)
	defer log.SetOutput(os.Stderr)

	return tui.Run(ctx, newClient(cfg))
}
