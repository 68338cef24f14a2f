package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "sendlog",
		Short:        "Climbing gym attempt log",
		Version:      version,
		SilenceUsage: true,
	}

	root.AddCommand(
		serveCommand(),
		hashPasswordCommand(),
		projectsCommand(),
	)
	return root
}
