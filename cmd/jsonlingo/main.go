package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codeberg.org/snonux/jsonlingo/internal/cli"
	"codeberg.org/snonux/jsonlingo/internal/models"
	"codeberg.org/snonux/jsonlingo/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	cli.MergeConfig(cmd, flags)

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetAPIKey(flags.Provider))
		return lister.ListAvailableModels()
	}

	if len(args) == 0 {
		return fmt.Errorf("argument <input.jsonl> missing")
	}
	inputFile := args[0]

	logger, err := newLogger(flags.Verbose)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logger.Sync()

	proc := processor.NewProcessor(flags, logger)
	if err := proc.Run(cmd.Context(), inputFile); err != nil {
		return err
	}

	fmt.Printf("\nDone! Translations saved.\n")
	return nil
}

// newLogger builds a console logger with millisecond timestamps; verbose
// mode enables per-leaf debug output.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	if !verbose {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return config.Build()
}
