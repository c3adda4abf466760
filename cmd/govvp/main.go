package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cli "governance-vp/cmd/cli"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	rootCmd := &cobra.Command{Use: "governance-vp"}
	rootCmd.AddCommand(cli.NewGovernanceCommand())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
