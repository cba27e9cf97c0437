// Package cmd contains the Cobra CLI commands for revad.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the CLI version string.
const Version = "v0.1.0-dev"

// NewRoot constructs the root command with all subcommands registered.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "revad",
		Short: "Reverse-mode automatic differentiation engine",
		Long: "revad records scalar computations on a tape and replays them " +
			"backward to compute exact gradients. This CLI runs synthetic " +
			"workloads against the engine and reports timing and tape usage.",
	}

	root.AddCommand(
		newBenchCommand(),
		newStatsCommand(),
		newMinimizeCommand(),
		newOpsCommand(),
		newVersionCommand(),
	)

	return root
}

// newVersionCommand constructs the `version` subcommand.
func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "revad %s\n", Version)
		},
	}
}
