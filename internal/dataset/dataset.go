// Package dataset loads and generates labeled samples for the classifier.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/matrix"
	"github.com/hslt0/Cs-Digit-Recognition-NN/internal/net"
)

// Options controls how LoadCSV interprets a file.
type Options struct {
	HasHeader  bool
	InputSize  int     // pixels per row, after the label column
	NumClasses int     // labels must fall in [0, NumClasses)
	PixelScale float64 // raw pixel values are divided by this
}

// MNIST returns the options for the standard MNIST CSV export:
// a header line, then label followed by 784 pixels in 0..255.
func MNIST() Options {
	return Options{
		HasHeader:  true,
		InputSize:  784,
		NumClasses: 10,
		PixelScale: 255,
	}
}

// Dataset holds the loaded samples.
type Dataset struct {
	Samples []net.Sample
	Skipped int // rows dropped for a bad width or label
}

// LoadCSV reads labeled samples from filename.
// Column 0 is the label, the remaining InputSize columns are pixels.
// Rows with the wrong number of columns or an unusable label are skipped
// and counted; a pixel that does not parse is an error.
func LoadCSV(filename string, opts Options) (*Dataset, error) {
	if opts.InputSize <= 0 || opts.NumClasses <= 0 || opts.PixelScale <= 0 {
		return nil, fmt.Errorf("%w: csv options %+v", matrix.ErrInvalidInput, opts)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	if opts.HasHeader {
		if _, err := reader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return &Dataset{}, nil
			}
			return nil, fmt.Errorf("failed to read csv header: %w", err)
		}
	}

	ds := &Dataset{}
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}

		if len(record) != opts.InputSize+1 {
			ds.Skipped++
			continue
		}
		label, err := strconv.Atoi(record[0])
		if err != nil || label < 0 || label >= opts.NumClasses {
			ds.Skipped++
			continue
		}

		pixels := make([]float64, opts.InputSize)
		for j, valStr := range record[1:] {
			val, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse value at row %d, col %d: %w", row, j+1, err)
			}
			pixels[j] = val / opts.PixelScale
		}

		s, err := net.NewSample(pixels, label, opts.NumClasses)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		ds.Samples = append(ds.Samples, s)
	}

	return ds, nil
}

// Split shuffles a copy of samples with rng and cuts it at int(len*ratio).
// A ratio <= 0 puts everything in test; a ratio >= 1 puts everything in train.
func Split(samples []net.Sample, ratio float64, rng *rand.Rand) (train, test []net.Sample) {
	shuffled := make([]net.Sample, len(samples))
	copy(shuffled, samples)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if ratio <= 0 {
		return nil, shuffled
	}
	if ratio >= 1 {
		return shuffled, nil
	}

	splitIdx := int(float64(len(shuffled)) * ratio)
	return shuffled[:splitIdx], shuffled[splitIdx:]
}
