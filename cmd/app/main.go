// Package main provides the entry point for the relay with CLI commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/cityops/esb-relay/cmd/app/commands"
)

func main() {
	cmd := &cli.Command{
		Name:    "esb-relay",
		Usage:   "Relay citizen issue activity records to the enterprise service bus",
		Version: "1.0.0",
		Commands: []*cli.Command{
			{
				Name:      "send",
				Usage:     "Run one relay batch for an application profile",
				ArgsUsage: "<profile>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					profile := cmd.Args().First()
					if profile == "" {
						return fmt.Errorf("missing required argument: profile")
					}
					return commands.RunSend(ctx, profile)
				},
			},
			{
				Name:  "validate-profiles",
				Usage: "Validate every built-in application profile",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunValidateProfiles(os.Stdout, cmd.String("format"))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
