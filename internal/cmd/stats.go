package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newStatsCommand constructs the `stats` subcommand. It records the
// synthetic workload and prints the tape's memory statistics.
func newStatsCommand() *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print tape usage for a synthetic workload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			dim, _ := cmd.Flags().GetInt("dimension")
			sweeps, _ := cmd.Flags().GetInt("sweeps")
			if err := validateWorkload(dim, sweeps); err != nil {
				return err
			}
			t, c, err := newEngine(cfgPath)
			if err != nil {
				return err
			}

			t.StartRecording()
			_, f := recordRosenbrock(c, dim, sweeps)
			t.StopRecording()
			c.SetGradient(f, 1)
			t.Backward()

			fmt.Fprint(cmd.OutOrStdout(), t.Statistics().String())
			return nil
		},
	}
	statsCmd.Flags().String("config", "", "Config file (.json, .yaml or .yml)")
	statsCmd.Flags().Int("dimension", 256, "Rosenbrock dimension (>= 2)")
	statsCmd.Flags().Int("sweeps", 1, "Recorded passes over the sum")
	return statsCmd
}
