// Package net provides the fixed-topology digit classifier.
//
// A Network is input -> hidden -> hidden -> output, with ReLU on both hidden
// layers and softmax on the output, trained one sample at a time with plain
// gradient descent on cross-entropy loss. A Network is not safe for
// concurrent use.
package net

import (
	"fmt"
	"math/rand/v2"

	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/activations"
	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/loss"
	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/mathutil"
	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/matrix"
	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/opt"
)

// Network holds the six parameter matrices of the classifier.
type Network struct {
	inputSize  int
	hiddenSize int
	outputSize int

	weightsInputHidden  *matrix.Matrix // hidden x input
	weightsHiddenHidden *matrix.Matrix // hidden x hidden
	weightsHiddenOutput *matrix.Matrix // output x hidden
	biasHidden          *matrix.Matrix // hidden x 1
	biasHidden2         *matrix.Matrix // hidden x 1
	biasOutput          *matrix.Matrix // output x 1

	// loss is concrete: Backward assumes a softmax output layer.
	loss loss.CrossEntropy
	opt  opt.SGD
	rng  *rand.Rand
}

// New creates a network with every parameter drawn uniformly from [-1, 1).
// rng is kept for shuffling during training; a nil rng is replaced by a
// randomly seeded one. New panics if any size is not positive.
func New(inputSize, hiddenSize, outputSize int, learningRate float64, rng *rand.Rand) *Network {
	if inputSize <= 0 || hiddenSize <= 0 || outputSize <= 0 {
		panic(fmt.Sprintf("net: invalid sizes %d-%d-%d", inputSize, hiddenSize, outputSize))
	}
	if rng == nil {
		rng = mathutil.NewRand(0)
	}

	n := &Network{
		inputSize:           inputSize,
		hiddenSize:          hiddenSize,
		outputSize:          outputSize,
		weightsInputHidden:  matrix.New(hiddenSize, inputSize),
		weightsHiddenHidden: matrix.New(hiddenSize, hiddenSize),
		weightsHiddenOutput: matrix.New(outputSize, hiddenSize),
		biasHidden:          matrix.New(hiddenSize, 1),
		biasHidden2:         matrix.New(hiddenSize, 1),
		biasOutput:          matrix.New(outputSize, 1),
		opt:                 opt.SGD{LearningRate: learningRate},
		rng:                 rng,
	}
	for _, p := range n.params() {
		p.Randomize(rng)
	}
	return n
}

// InputSize returns the length of the feature vectors the network accepts.
func (n *Network) InputSize() int { return n.inputSize }

// HiddenSize returns the width of both hidden layers.
func (n *Network) HiddenSize() int { return n.hiddenSize }

// OutputSize returns the number of classes.
func (n *Network) OutputSize() int { return n.outputSize }

// LearningRate returns the fixed gradient descent step size.
func (n *Network) LearningRate() float64 { return n.opt.LearningRate }

// params returns the parameters in persistence order.
func (n *Network) params() []*matrix.Matrix {
	return []*matrix.Matrix{
		n.weightsInputHidden,
		n.weightsHiddenHidden,
		n.weightsHiddenOutput,
		n.biasHidden,
		n.biasHidden2,
		n.biasOutput,
	}
}

// activationsCache keeps the intermediate values of one forward pass.
type activationsCache struct {
	x    *matrix.Matrix
	z1   *matrix.Matrix
	a1   *matrix.Matrix
	z2   *matrix.Matrix
	a2   *matrix.Matrix
	yHat []float64
}

// forward runs the network on x, which must have inputSize elements.
func (n *Network) forward(x []float64) activationsCache {
	c := activationsCache{x: matrix.FromFlat(x)}

	c.z1 = n.weightsInputHidden.Multiply(c.x).Add(n.biasHidden)
	c.a1 = c.z1.Copy()
	activations.ApplyReLU(c.a1)

	c.z2 = n.weightsHiddenHidden.Multiply(c.a1).Add(n.biasHidden2)
	c.a2 = c.z2.Copy()
	activations.ApplyReLU(c.a2)

	z3 := n.weightsHiddenOutput.Multiply(c.a2).Add(n.biasOutput)
	c.yHat = activations.Softmax(z3.ToFlat())
	return c
}

// Predict returns the class probabilities for x.
func (n *Network) Predict(x []float64) ([]float64, error) {
	if len(x) != n.inputSize {
		return nil, fmt.Errorf("%w: input has %d features, want %d", matrix.ErrShapeMismatch, len(x), n.inputSize)
	}
	return n.forward(x).yHat, nil
}

// step performs one forward, backward and update pass and returns the loss
// of the prediction made before the update. All gradients are computed
// before any parameter changes.
func (n *Network) step(x, target []float64) float64 {
	c := n.forward(x)
	l := n.loss.Forward(c.yHat, target)

	eOut := matrix.FromFlat(n.loss.Backward(c.yHat, target))
	gradWeightsHiddenOutput := eOut.Multiply(c.a2.Transpose())

	eHidden2 := n.weightsHiddenOutput.Transpose().Multiply(eOut)
	activations.ApplyReLUDerivative(c.z2, eHidden2)
	gradWeightsHiddenHidden := eHidden2.Multiply(c.a1.Transpose())

	eHidden1 := n.weightsHiddenHidden.Transpose().Multiply(eHidden2)
	activations.ApplyReLUDerivative(c.z1, eHidden1)
	gradWeightsInputHidden := eHidden1.Multiply(c.x.Transpose())

	n.opt.Update(n.weightsHiddenOutput, gradWeightsHiddenOutput)
	n.opt.Update(n.biasOutput, eOut)
	n.opt.Update(n.weightsHiddenHidden, gradWeightsHiddenHidden)
	n.opt.Update(n.biasHidden2, eHidden2)
	n.opt.Update(n.weightsInputHidden, gradWeightsInputHidden)
	n.opt.Update(n.biasHidden, eHidden1)

	return l
}

// checkSample reports whether s fits the network's input and output sizes.
func (n *Network) checkSample(s Sample) error {
	if len(s.input) != n.inputSize {
		return fmt.Errorf("%w: sample has %d features, want %d", matrix.ErrShapeMismatch, len(s.input), n.inputSize)
	}
	if len(s.target) != n.outputSize {
		return fmt.Errorf("%w: sample has %d classes, want %d", matrix.ErrShapeMismatch, len(s.target), n.outputSize)
	}
	return nil
}

// TrainSample performs a training step on a single sample and returns its
// loss before the update.
func (n *Network) TrainSample(s Sample) (float64, error) {
	if err := n.checkSample(s); err != nil {
		return 0, err
	}
	return n.step(s.input, s.target), nil
}

// TrainBatch trains for the given number of epochs, one update per sample.
// Each epoch visits the samples in a fresh random order; the caller's slice
// is not reordered. It returns the average loss of every completed epoch.
//
// Callbacks receive 1-based epoch numbers. A callback implementing Stopper
// can end training after any epoch.
func (n *Network) TrainBatch(samples []Sample, epochs int, callbacks ...Callback) ([]float64, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("train batch: %w", mathutil.ErrEmptyInput)
	}
	if epochs < 0 {
		return nil, fmt.Errorf("%w: negative epoch count %d", matrix.ErrInvalidInput, epochs)
	}
	for i, s := range samples {
		if err := n.checkSample(s); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
	}

	order := make([]Sample, len(samples))
	copy(order, samples)

	for _, cb := range callbacks {
		cb.OnTrainBegin(n)
	}

	losses := make([]float64, 0, epochs)
	for epoch := 1; epoch <= epochs; epoch++ {
		for _, cb := range callbacks {
			cb.OnEpochBegin(epoch, n)
		}

		n.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		var total float64
		for _, s := range order {
			total += n.step(s.input, s.target)
		}
		avg := total / float64(len(order))
		losses = append(losses, avg)

		for _, cb := range callbacks {
			cb.OnEpochEnd(epoch, avg, n)
		}
		if stopRequested(callbacks) {
			break
		}
	}

	for _, cb := range callbacks {
		cb.OnTrainEnd(n)
	}
	return losses, nil
}

// TestAccuracy returns the fraction of samples whose most probable class
// equals the label.
func (n *Network) TestAccuracy(samples []Sample) (float64, error) {
	if len(samples) == 0 {
		return 0, fmt.Errorf("test accuracy: %w", mathutil.ErrEmptyInput)
	}

	correct := 0
	for i, s := range samples {
		if err := n.checkSample(s); err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		predicted, err := mathutil.ArgMax(n.forward(s.input).yHat)
		if err != nil {
			return 0, err
		}
		if predicted == s.label {
			correct++
		}
	}
	return float64(correct) / float64(len(samples)), nil
}
