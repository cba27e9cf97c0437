package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/revad-ml/revad/internal/active"
	"github.com/revad-ml/revad/internal/config"
	"github.com/revad-ml/revad/internal/parallel"
	"github.com/revad-ml/revad/internal/tape"
)

// newBenchCommand constructs the `bench` subcommand. It records the
// synthetic workload, replays it backward and reports wall times plus a
// gradient checksum so runs can be compared. With --tapes above one the
// workload is repeated on independent tapes, one goroutine each.
func newBenchCommand() *cobra.Command {
	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Record and replay a synthetic workload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			dim, _ := cmd.Flags().GetInt("dimension")
			sweeps, _ := cmd.Flags().GetInt("sweeps")
			tapes, _ := cmd.Flags().GetInt("tapes")
			if err := validateWorkload(dim, sweeps); err != nil {
				return err
			}
			if tapes < 1 {
				return fmt.Errorf("tapes must be at least 1, got %d", tapes)
			}
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			config.FromEnv(&cfg)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "dimension %d, sweeps %d, tapes %d\n", dim, sweeps, tapes)

			start := time.Now()
			checksum := parallel.Sum(tapes, parallel.DefaultConfig(), func(int) float64 {
				t := tape.NewWithOptions(cfg.Options())
				c := active.NewContext(t)
				t.StartRecording()
				xs, f := recordRosenbrock(c, dim, sweeps)
				t.StopRecording()
				c.SetGradient(f, 1)
				t.Backward()
				var sum float64
				for _, x := range xs {
					sum += c.Gradient(x)
				}
				return sum
			})
			elapsed := time.Since(start)

			// One more recording on the calling goroutine for the
			// per-phase numbers.
			t := tape.NewWithOptions(cfg.Options())
			c := active.NewContext(t)
			recordStart := time.Now()
			t.StartRecording()
			_, f := recordRosenbrock(c, dim, sweeps)
			t.StopRecording()
			recordTime := time.Since(recordStart)
			c.SetGradient(f, 1)
			replayStart := time.Now()
			t.Backward()
			replayTime := time.Since(replayStart)

			fmt.Fprintf(w, "value             %.6g\n", f.Value())
			fmt.Fprintf(w, "gradient checksum %.6g\n", checksum/float64(tapes))
			fmt.Fprintf(w, "statements        %d\n", t.UsedStatements())
			fmt.Fprintf(w, "jacobian entries  %d\n", t.UsedJacobianEntries())
			fmt.Fprintf(w, "record %v, replay %v, all tapes %v\n", recordTime, replayTime, elapsed)
			return nil
		},
	}
	benchCmd.Flags().String("config", "", "Config file (.json, .yaml or .yml)")
	benchCmd.Flags().Int("dimension", 256, "Rosenbrock dimension (>= 2)")
	benchCmd.Flags().Int("sweeps", 1, "Recorded passes over the sum")
	benchCmd.Flags().Int("tapes", 1, "Independent tapes to run concurrently")
	return benchCmd
}
