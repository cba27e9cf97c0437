package optim

// SGD implements gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Momentum accelerates descent along persistent directions and dampens
// oscillations.
type SGD struct {
	lr       float64
	momentum float64
	velocity []float64
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0, range [0, 1))
}

// NewSGD creates an SGD optimizer. Zero config fields take the defaults
// documented on SGDConfig.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{lr: config.LR, momentum: config.Momentum}
}

// Step applies one update to params in place.
func (s *SGD) Step(params, grads []float64) {
	checkStep("SGD", params, grads)
	if s.momentum == 0 {
		for i, g := range grads {
			params[i] -= s.lr * g
		}
		return
	}
	s.velocity = state("SGD", s.velocity, len(params))
	for i, g := range grads {
		s.velocity[i] = s.momentum*s.velocity[i] + g
		params[i] -= s.lr * s.velocity[i]
	}
}

// Reset drops the velocity buffer.
func (s *SGD) Reset() {
	s.velocity = nil
}

// LR returns the current learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

// SetLR updates the learning rate, for scheduling during a run.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}
