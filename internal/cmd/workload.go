package cmd

import (
	"fmt"

	"github.com/revad-ml/revad/internal/active"
	"github.com/revad-ml/revad/internal/config"
	"github.com/revad-ml/revad/internal/tape"
)

// newEngine loads configuration, overlays the environment and constructs
// a tape with a front end on it.
func newEngine(cfgPath string) (*tape.Tape, *active.Context, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	config.FromEnv(&cfg)
	t := tape.NewWithOptions(cfg.Options())
	return t, active.NewContext(t), nil
}

// rosenbrockStart returns a fixed, slightly uneven start point so runs
// are reproducible.
func rosenbrockStart(dim int) []float64 {
	x := make([]float64, dim)
	for i := range x {
		x[i] = float64(i%7)/8 - 0.4
	}
	return x
}

// recordRosenbrockAt records the Rosenbrock sum
//
//	f(x) = Σᵢ 100·(x[i+1] − x[i]²)² + (1 − x[i])²
//
// at the given point and returns the tracked inputs and the scalar
// output. The sum mixes two-argument products, constants and shared
// subexpressions, so it exercises the recording paths a real program
// would.
func recordRosenbrockAt(c *active.Context, point []float64) ([]*active.Real, *active.Real) {
	xs := make([]*active.Real, len(point))
	for i, v := range point {
		xs[i] = c.Input(v)
	}

	total := c.Const(0)
	for i := 0; i+1 < len(xs); i++ {
		lag := c.Sub(xs[i+1], c.Mul(xs[i], xs[i]))
		gap := c.AddConst(c.Neg(xs[i]), 1)
		term := c.Add(c.MulConst(c.Mul(lag, lag), 100), c.Mul(gap, gap))
		total = c.Add(total, term)
	}
	return xs, total
}

// recordRosenbrock records sweeps passes over the dim-dimensional sum at
// the fixed start point.
func recordRosenbrock(c *active.Context, dim, sweeps int) ([]*active.Real, *active.Real) {
	point := rosenbrockStart(dim)
	xs, total := recordRosenbrockAt(c, point)
	for s := 1; s < sweeps; s++ {
		_, again := recordRosenbrockAt(c, point)
		total = c.Add(total, again)
	}
	return xs, total
}

func validateWorkload(dim, sweeps int) error {
	if dim < 2 {
		return fmt.Errorf("dimension must be at least 2, got %d", dim)
	}
	if sweeps < 1 {
		return fmt.Errorf("sweeps must be at least 1, got %d", sweeps)
	}
	return nil
}
