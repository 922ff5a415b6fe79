package dataset

import (
	"fmt"
	"math/rand/v2"

	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/matrix"
	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/net"
)

func checkShape(n, inputSize, numClasses int) error {
	if n < 0 || inputSize <= 0 || numClasses <= 0 {
		return fmt.Errorf("%w: %d samples of %d features, %d classes", matrix.ErrInvalidInput, n, inputSize, numClasses)
	}
	return nil
}

// Random generates n samples of uniform noise in [0, 1) with uniformly drawn
// labels. It stands in for a missing data file.
func Random(n, inputSize, numClasses int, rng *rand.Rand) ([]net.Sample, error) {
	if err := checkShape(n, inputSize, numClasses); err != nil {
		return nil, err
	}

	samples := make([]net.Sample, n)
	pixels := make([]float64, inputSize)
	for i := range samples {
		for j := range pixels {
			pixels[j] = rng.Float64()
		}
		s, err := net.NewSample(pixels, rng.IntN(numClasses), numClasses)
		if err != nil {
			return nil, err
		}
		samples[i] = s
	}
	return samples, nil
}

// Patterns generates n separable samples. Sample i has label i%numClasses,
// and class c lights its own contiguous block of inputSize/numClasses
// features. Every feature gets up to noise of uniform jitter, pushed down
// for lit features and up for dark ones, so values stay in [0, 1].
func Patterns(n, inputSize, numClasses int, noise float64, rng *rand.Rand) ([]net.Sample, error) {
	if err := checkShape(n, inputSize, numClasses); err != nil {
		return nil, err
	}
	if inputSize < numClasses {
		return nil, fmt.Errorf("%w: %d features cannot hold %d class blocks", matrix.ErrInvalidInput, inputSize, numClasses)
	}
	if noise < 0 || noise > 1 {
		return nil, fmt.Errorf("%w: noise %v outside [0, 1]", matrix.ErrInvalidInput, noise)
	}

	block := inputSize / numClasses
	samples := make([]net.Sample, n)
	pixels := make([]float64, inputSize)
	for i := range samples {
		digit := i % numClasses
		lo, hi := digit*block, (digit+1)*block

		for j := range pixels {
			jitter := rng.Float64() * noise
			if j >= lo && j < hi {
				pixels[j] = 1 - jitter
			} else {
				pixels[j] = jitter
			}
		}

		s, err := net.NewSample(pixels, digit, numClasses)
		if err != nil {
			return nil, err
		}
		samples[i] = s
	}
	return samples, nil
}
