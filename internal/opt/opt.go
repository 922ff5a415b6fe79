// Package opt provides the parameter update rule.
package opt

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/matrix"
)

// SGD (Stochastic Gradient Descent) with a fixed learning rate.
type SGD struct {
	LearningRate float64
}

// StepInPlace updates params in-place: params = params - lr * gradients
func (s SGD) StepInPlace(params, gradients []float64) {
	if len(params) != len(gradients) {
		panic(fmt.Errorf("%w: SGD: %d params and %d gradients", matrix.ErrShapeMismatch, len(params), len(gradients)))
	}
	floats.AddScaled(params, -s.LearningRate, gradients)
}

// Update applies StepInPlace to a parameter matrix and its gradient.
func (s SGD) Update(param, grad *matrix.Matrix) {
	pr, pc := param.Dims()
	gr, gc := grad.Dims()
	if pr != gr || pc != gc {
		panic(&matrix.ShapeError{Op: "sgd update", A: [2]int{pr, pc}, B: [2]int{gr, gc}})
	}
	s.StepInPlace(param.RawData(), grad.RawData())
}
