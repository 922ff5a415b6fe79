package net

import (
	"fmt"

	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/matrix"
)

// Sample is a labeled feature vector with its one-hot target.
// It is immutable once built.
type Sample struct {
	input  []float64
	label  int
	target []float64
}

// NewSample copies input and builds the one-hot target for label.
func NewSample(input []float64, label, numClasses int) (Sample, error) {
	if numClasses <= 0 {
		return Sample{}, fmt.Errorf("%w: %d classes", matrix.ErrInvalidInput, numClasses)
	}
	if label < 0 || label >= numClasses {
		return Sample{}, fmt.Errorf("%w: label %d outside [0, %d)", matrix.ErrInvalidInput, label, numClasses)
	}

	in := make([]float64, len(input))
	copy(in, input)

	target := make([]float64, numClasses)
	target[label] = 1

	return Sample{input: in, label: label, target: target}, nil
}

// Input returns a copy of the feature vector.
func (s Sample) Input() []float64 {
	out := make([]float64, len(s.input))
	copy(out, s.input)
	return out
}

// Label returns the class index.
func (s Sample) Label() int { return s.label }

// Target returns a copy of the one-hot target.
func (s Sample) Target() []float64 {
	out := make([]float64, len(s.target))
	copy(out, s.target)
	return out
}
