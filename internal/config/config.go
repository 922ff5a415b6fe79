// Package config holds the runtime settings of the digit classifier driver.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Generators used when the data file is missing.
const (
	FallbackRandom   = "random"
	FallbackPatterns = "patterns"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	DataPath      string  `yaml:"data_path"`
	ModelPath     string  `yaml:"model_path"`
	LoadModel     bool    `yaml:"load_model"`
	InputSize     int     `yaml:"input_size"`
	HiddenSize    int     `yaml:"hidden_size"`
	OutputSize    int     `yaml:"output_size"`
	LearningRate  float64 `yaml:"learning_rate"`
	Epochs        int     `yaml:"epochs"`
	TrainRatio    float64 `yaml:"train_ratio"`
	Seed          uint64  `yaml:"seed"`
	Fallback      string  `yaml:"fallback"` // "random" or "patterns"
	FallbackCount int     `yaml:"fallback_count"`
	CSVLog        string  `yaml:"csv_log"`
	Checkpoint    string  `yaml:"checkpoint"`
	Patience      int     `yaml:"patience"`
	Preview       int     `yaml:"preview"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	DataPath     string
	ModelPath    string
	LoadModel    bool
	HiddenSize   int
	LearningRate float64
	Epochs       int
	Seed         uint64
	Fallback     string
	CSVLog       string
	Checkpoint   string
	Patience     int
}

// Default returns the settings of the reference run: a 784-16-10 network
// trained for 10 epochs at learning rate 0.01 on an 80/20 split.
func Default() *Config {
	return &Config{
		DataPath:      "Data/mnist_train.csv",
		ModelPath:     "trained_model.json",
		InputSize:     784,
		HiddenSize:    16,
		OutputSize:    10,
		LearningRate:  0.01,
		Epochs:        10,
		TrainRatio:    0.8,
		Fallback:      FallbackRandom,
		FallbackCount: 1000,
		Preview:       5,
	}
}

// Load reads a Config from YAML. Keys absent from the file keep their
// Default values; unknown keys are an error. An empty path yields Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := decode(f, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.DataPath != "" {
		c.DataPath = o.DataPath
	}
	if o.ModelPath != "" {
		c.ModelPath = o.ModelPath
	}
	if o.LoadModel {
		c.LoadModel = true
	}
	if o.HiddenSize > 0 {
		c.HiddenSize = o.HiddenSize
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Fallback != "" {
		c.Fallback = o.Fallback
	}
	if o.CSVLog != "" {
		c.CSVLog = o.CSVLog
	}
	if o.Checkpoint != "" {
		c.Checkpoint = o.Checkpoint
	}
	if o.Patience > 0 {
		c.Patience = o.Patience
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.DataPath == "" {
		return errors.New("data_path must be set")
	}
	if c.ModelPath == "" {
		return errors.New("model_path must be set")
	}
	if c.InputSize <= 0 || c.HiddenSize <= 0 || c.OutputSize <= 0 {
		return fmt.Errorf("layer sizes must be > 0 (got %d-%d-%d)", c.InputSize, c.HiddenSize, c.OutputSize)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be > 0 (got %v)", c.LearningRate)
	}
	if c.Epochs < 0 {
		return fmt.Errorf("epochs must be >= 0 (got %d)", c.Epochs)
	}
	if c.TrainRatio <= 0 || c.TrainRatio >= 1 {
		return fmt.Errorf("train_ratio must be in (0, 1) (got %v)", c.TrainRatio)
	}
	if c.Fallback != FallbackRandom && c.Fallback != FallbackPatterns {
		return fmt.Errorf("fallback must be %q or %q (got %q)", FallbackRandom, FallbackPatterns, c.Fallback)
	}
	if c.FallbackCount <= 0 {
		return fmt.Errorf("fallback_count must be > 0 (got %d)", c.FallbackCount)
	}
	if c.Patience < 0 {
		return fmt.Errorf("patience must be >= 0 (got %d)", c.Patience)
	}
	if c.Preview < 0 {
		c.Preview = 0
	}
	return nil
}
