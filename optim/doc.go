// Copyright 2025 The Revad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient-based minimization of parameter
// vectors.
//
// # Overview
//
// This package contains:
//   - SGD: gradient descent with optional momentum
//   - Adam: adaptive moment estimation with bias correction
//   - Optimizer interface for custom algorithms
//
// The gradients come from wherever the caller computed them, typically
// a backward tape replay.
//
// # Basic Usage
//
//	import (
//	    "github.com/revad-ml/revad/active"
//	    "github.com/revad-ml/revad/optim"
//	    "github.com/revad-ml/revad/tape"
//	)
//
//	func main() {
//	    t := tape.New()
//	    c := active.NewContext(t)
//	    opt := optim.NewSGD(optim.SGDConfig{LR: 1e-3, Momentum: 0.9})
//
//	    params := []float64{-1.2, 1.0}
//	    grad := make([]float64, len(params))
//	    for step := 0; step < 10000; step++ {
//	        t.StartRecording()
//	        xs := make([]*active.Real, len(params))
//	        for i, p := range params {
//	            xs[i] = c.Input(p)
//	        }
//	        f := objective(c, xs)
//	        t.StopRecording()
//
//	        c.SetGradient(f, 1)
//	        t.Backward()
//	        for i, x := range xs {
//	            grad[i] = c.Gradient(x)
//	        }
//	        t.Reset()
//
//	        opt.Step(params, grad)
//	    }
//	}
//
// # Optimizers
//
// SGD:
//
//	opt := optim.NewSGD(optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
//
// Adam:
//
//	opt := optim.NewAdam(optim.AdamConfig{
//	    LR:    0.001,
//	    Betas: [2]float64{0.9, 0.999},
//	})
package optim
