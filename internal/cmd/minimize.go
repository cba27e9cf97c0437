package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revad-ml/revad/internal/optim"
)

// newMinimizeCommand constructs the `minimize` subcommand: gradient
// descent on the Rosenbrock sum, one tape recording per step.
func newMinimizeCommand() *cobra.Command {
	minimizeCmd := &cobra.Command{
		Use:   "minimize",
		Short: "Minimize the Rosenbrock sum by gradient descent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			dim, _ := cmd.Flags().GetInt("dimension")
			steps, _ := cmd.Flags().GetInt("steps")
			algo, _ := cmd.Flags().GetString("optimizer")
			lr, _ := cmd.Flags().GetFloat64("lr")
			momentum, _ := cmd.Flags().GetFloat64("momentum")
			if err := validateWorkload(dim, 1); err != nil {
				return err
			}
			if steps < 1 {
				return fmt.Errorf("steps must be at least 1, got %d", steps)
			}

			var opt optim.Optimizer
			switch algo {
			case "sgd":
				opt = optim.NewSGD(optim.SGDConfig{LR: lr, Momentum: momentum})
			case "adam":
				opt = optim.NewAdam(optim.AdamConfig{LR: lr})
			default:
				return fmt.Errorf("invalid --optimizer %q; use sgd|adam", algo)
			}

			t, c, err := newEngine(cfgPath)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			params := rosenbrockStart(dim)
			grad := make([]float64, dim)
			var value float64
			every := max(steps/10, 1)
			for s := 0; s < steps; s++ {
				t.StartRecording()
				xs, f := recordRosenbrockAt(c, params)
				t.StopRecording()
				c.SetGradient(f, 1)
				t.Backward()
				for i, x := range xs {
					grad[i] = c.Gradient(x)
				}
				value = f.Value()
				t.Reset()

				if s == 0 || (s+1)%every == 0 {
					fmt.Fprintf(w, "step %6d  f=%.6e\n", s+1, value)
				}
				opt.Step(params, grad)
			}
			fmt.Fprintf(w, "final value %.6e after %d steps (%s, lr %g)\n",
				value, steps, algo, opt.LR())
			return nil
		},
	}
	minimizeCmd.Flags().String("config", "", "Config file (.json, .yaml or .yml)")
	minimizeCmd.Flags().Int("dimension", 16, "Rosenbrock dimension (>= 2)")
	minimizeCmd.Flags().Int("steps", 1000, "Gradient descent steps")
	minimizeCmd.Flags().String("optimizer", "adam", "Optimizer: sgd|adam")
	minimizeCmd.Flags().Float64("lr", 0.01, "Learning rate")
	minimizeCmd.Flags().Float64("momentum", 0.0, "Momentum factor (sgd only)")
	return minimizeCmd
}
