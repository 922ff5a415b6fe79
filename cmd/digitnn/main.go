package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math/rand/v2"
	"os"

	"github.com/google/uuid"

	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/config"
	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/dataset"
	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/mathutil"
	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/net"
)

// Digit recognition on MNIST CSV data.
// Trains a 784-16-10 network (or loads a saved one), reports test accuracy,
// saves the parameters and shows a few predictions.
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config")
	dataPath := flag.String("data", "", "MNIST CSV file")
	modelPath := flag.String("model", "", "Model JSON file")
	load := flag.Bool("load", false, "Load the model instead of training")
	hidden := flag.Int("hidden", 0, "Hidden layer width")
	lr := flag.Float64("lr", 0, "Learning rate")
	epochs := flag.Int("epochs", 0, "Number of training epochs")
	seed := flag.Uint64("seed", 0, "PRNG seed (0 picks one)")
	fallback := flag.String("fallback", "", "Generator used when the data file is missing: random or patterns")
	csvLog := flag.String("csv-log", "", "Append per-epoch losses to this CSV file")
	checkpoint := flag.String("checkpoint", "", "Save the best epoch to this JSON file")
	patience := flag.Int("patience", 0, "Stop after this many epochs without improvement")

	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	cfg.ApplyOverrides(config.Overrides{
		DataPath:     *dataPath,
		ModelPath:    *modelPath,
		LoadModel:    *load,
		HiddenSize:   *hidden,
		LearningRate: *lr,
		Epochs:       *epochs,
		Seed:         *seed,
		Fallback:     *fallback,
		CSVLog:       *csvLog,
		Checkpoint:   *checkpoint,
		Patience:     *patience,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	if err := run(cfg, os.Stdout); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}

func run(cfg *config.Config, w io.Writer) error {
	runID := uuid.NewString()
	rng := mathutil.NewRand(cfg.Seed)

	fmt.Fprintln(w, "Training nn for digit recognition")
	fmt.Fprintf(w, "Run: %s\n", runID)

	// 1. Load data
	fmt.Fprintln(w, "Loading data...")
	samples, err := loadSamples(cfg, rng, w)
	if err != nil {
		return err
	}
	train, test := dataset.Split(samples, cfg.TrainRatio, rng)

	fmt.Fprintf(w, "Training data: %d\n", len(train))
	fmt.Fprintf(w, "Test data: %d\n", len(test))

	// 2. Create network
	network := net.New(cfg.InputSize, cfg.HiddenSize, cfg.OutputSize, cfg.LearningRate, rng)

	// 3. Load or train
	if cfg.LoadModel {
		if err := network.LoadModel(cfg.ModelPath); err != nil {
			return err
		}
		fmt.Fprintln(w, "Model is loaded")
	} else {
		fmt.Fprintln(w, "Start training")
		if _, err := network.TrainBatch(train, cfg.Epochs, callbacks(cfg, runID, w)...); err != nil {
			return fmt.Errorf("training: %w", err)
		}
	}

	// 4. Accuracy
	accuracy, err := network.TestAccuracy(test)
	if err != nil {
		return fmt.Errorf("evaluation: %w", err)
	}
	fmt.Fprintf(w, "Accuracy on test data: %.2f%%\n", accuracy*100)

	// 5. Save
	if err := network.SaveModel(cfg.ModelPath); err != nil {
		return err
	}
	fmt.Fprintln(w, "Model is saved")

	// 6. Preview
	fmt.Fprintln(w, "\nTest with random data:")
	for i := 0; i < min(cfg.Preview, len(test)); i++ {
		prediction, err := network.Predict(test[i].Input())
		if err != nil {
			return err
		}
		digit, err := mathutil.ArgMax(prediction)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Real digit: %d, Predict digit: %d, Confidence: %.2f\n",
			test[i].Label(), digit, prediction[digit])
	}

	return nil
}

// loadSamples reads the CSV, or generates samples if the file is missing.
func loadSamples(cfg *config.Config, rng *rand.Rand, w io.Writer) ([]net.Sample, error) {
	opts := dataset.MNIST()
	opts.InputSize = cfg.InputSize
	opts.NumClasses = cfg.OutputSize

	fmt.Fprintf(w, "Loading MNIST data from: %s\n", cfg.DataPath)
	ds, err := dataset.LoadCSV(cfg.DataPath, opts)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(w, "File not found, generating data...")
		if cfg.Fallback == config.FallbackPatterns {
			return dataset.Patterns(cfg.FallbackCount, cfg.InputSize, cfg.OutputSize, 0.2, rng)
		}
		return dataset.Random(cfg.FallbackCount, cfg.InputSize, cfg.OutputSize, rng)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.DataPath, err)
	}

	if ds.Skipped > 0 {
		fmt.Fprintf(w, "Skipped %d malformed rows\n", ds.Skipped)
	}
	if len(ds.Samples) == 0 {
		return nil, fmt.Errorf("load %s: no usable rows", cfg.DataPath)
	}
	return ds.Samples, nil
}

func callbacks(cfg *config.Config, runID string, w io.Writer) []net.Callback {
	cbs := []net.Callback{net.NewLogger(w, cfg.Epochs)}
	if cfg.CSVLog != "" {
		cbs = append(cbs, net.NewCSVLogger(cfg.CSVLog, true, runID))
	}
	if cfg.Checkpoint != "" {
		cbs = append(cbs, net.NewModelCheckpoint(cfg.Checkpoint))
	}
	if cfg.Patience > 0 {
		cbs = append(cbs, net.NewEarlyStopping(cfg.Patience, 0))
	}
	return cbs
}
