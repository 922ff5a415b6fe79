package net

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/matrix"
)

// ModelState is the persisted form of a Network: its six parameters as
// row-major nested arrays.
type ModelState struct {
	WeightsInputHidden  [][]float64 `json:"weightsInputHidden"`
	WeightsHiddenHidden [][]float64 `json:"weightsHiddenHidden"`
	WeightsHiddenOutput [][]float64 `json:"weightsHiddenOutput"`
	BiasHidden          [][]float64 `json:"biasHidden"`
	BiasHidden2         [][]float64 `json:"biasHidden2"`
	BiasOutput          [][]float64 `json:"biasOutput"`
}

// State returns a deep copy of the network parameters.
func (n *Network) State() ModelState {
	return ModelState{
		WeightsInputHidden:  n.weightsInputHidden.ToNested(),
		WeightsHiddenHidden: n.weightsHiddenHidden.ToNested(),
		WeightsHiddenOutput: n.weightsHiddenOutput.ToNested(),
		BiasHidden:          n.biasHidden.ToNested(),
		BiasHidden2:         n.biasHidden2.ToNested(),
		BiasOutput:          n.biasOutput.ToNested(),
	}
}

// SetState replaces all six parameters with the values in s.
// Every field is converted and shape-checked before anything is replaced,
// so on error the network is unchanged.
func (n *Network) SetState(s ModelState) error {
	fields := []struct {
		name       string
		src        [][]float64
		rows, cols int
		dst        **matrix.Matrix
	}{
		{"weightsInputHidden", s.WeightsInputHidden, n.hiddenSize, n.inputSize, &n.weightsInputHidden},
		{"weightsHiddenHidden", s.WeightsHiddenHidden, n.hiddenSize, n.hiddenSize, &n.weightsHiddenHidden},
		{"weightsHiddenOutput", s.WeightsHiddenOutput, n.outputSize, n.hiddenSize, &n.weightsHiddenOutput},
		{"biasHidden", s.BiasHidden, n.hiddenSize, 1, &n.biasHidden},
		{"biasHidden2", s.BiasHidden2, n.hiddenSize, 1, &n.biasHidden2},
		{"biasOutput", s.BiasOutput, n.outputSize, 1, &n.biasOutput},
	}

	converted := make([]*matrix.Matrix, len(fields))
	for i, f := range fields {
		m, err := matrix.FromNested(f.src)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		if r, c := m.Dims(); r != f.rows || c != f.cols {
			return fmt.Errorf("%w: %s is %dx%d, want %dx%d", matrix.ErrInvalidInput, f.name, r, c, f.rows, f.cols)
		}
		converted[i] = m
	}

	for i, f := range fields {
		*f.dst = converted[i]
	}
	return nil
}

// Encode writes the network parameters to w as indented JSON.
func (n *Network) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(n.State()); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return nil
}

// Decode reads parameters written by Encode and installs them.
// Malformed documents and missing or mis-shaped fields fail with
// matrix.ErrInvalidInput and leave the network unchanged.
func (n *Network) Decode(r io.Reader) error {
	var s ModelState
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return fmt.Errorf("%w: failed to decode model: %w", matrix.ErrInvalidInput, err)
	}
	return n.SetState(s)
}

// SaveModel writes the network parameters to a JSON file.
func (n *Network) SaveModel(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := n.Encode(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// LoadModel replaces the network parameters with those saved in filename.
func (n *Network) LoadModel(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if err := n.Decode(file); err != nil {
		return fmt.Errorf("load %s: %w", filename, err)
	}
	return nil
}
