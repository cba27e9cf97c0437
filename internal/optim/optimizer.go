// Package optim implements gradient-based minimization of parameter
// vectors.
//
// This package provides:
//   - Optimizer interface: one update step from a gradient
//   - SGD: gradient descent with optional momentum
//   - Adam: adaptive moment estimation with bias correction
//
// The gradient comes from wherever the caller computed it, typically a
// backward tape replay:
//
//	opt := optim.NewSGD(optim.SGDConfig{LR: 0.01, Momentum: 0.9})
//	for step := 0; step < steps; step++ {
//	    grad := recordAndReplay(params) // seed, Backward, read adjoints
//	    opt.Step(params, grad)
//	}
package optim

import "fmt"

// Optimizer is the base interface for all optimization algorithms.
//
// Step updates params in place from grads; the slices must have equal
// length, and the length must stay the same across a run. Reset drops
// accumulated state (velocity, moment estimates) so the optimizer can
// start a fresh run on new parameters.
type Optimizer interface {
	Step(params, grads []float64)
	Reset()
	LR() float64
	SetLR(lr float64)
}

func checkStep(name string, params, grads []float64) {
	if len(params) != len(grads) {
		panic(fmt.Sprintf("optim: %s.Step: %d parameters but %d gradients",
			name, len(params), len(grads)))
	}
}

// state returns buf sized to n, allocating on first use. A length change
// mid-run is a contract breach.
func state(name string, buf []float64, n int) []float64 {
	if buf == nil {
		return make([]float64, n)
	}
	if len(buf) != n {
		panic(fmt.Sprintf("optim: %s.Step: parameter count changed from %d to %d mid-run",
			name, len(buf), n))
	}
	return buf
}
