package net

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLogger tests the epoch line format and interval.
func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, 3)

	logger.OnEpochEnd(1, 2.5, nil)
	logger.OnEpochEnd(2, 1.25, nil)

	want := "Epoch 1/3 completed. Avg Loss: 2.5000\nEpoch 2/3 completed. Avg Loss: 1.2500\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	logger = &Logger{Out: &buf, Epochs: 5, Interval: 2}
	for epoch := 1; epoch <= 5; epoch++ {
		logger.OnEpochEnd(epoch, 1, nil)
	}
	if got := strings.Count(buf.String(), "\n"); got != 3 {
		t.Errorf("logged %d lines, want 3 (epochs 2, 4, 5):\n%s", got, buf.String())
	}
}

// TestEarlyStopping tests patience counting.
func TestEarlyStopping(t *testing.T) {
	es := NewEarlyStopping(2, 0.01)
	es.OnTrainBegin(nil)

	for epoch, loss := range []float64{1.0, 0.5, 0.499, 0.498} {
		if es.ShouldStop() {
			t.Fatalf("stopped early at epoch %d", epoch)
		}
		es.OnEpochEnd(epoch+1, loss, nil)
	}
	if !es.ShouldStop() {
		t.Error("did not stop after 2 epochs without improvement")
	}

	es.OnTrainBegin(nil)
	if es.ShouldStop() {
		t.Error("OnTrainBegin did not reset the stop flag")
	}
}

// TestModelCheckpoint tests that only improving epochs are saved.
func TestModelCheckpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ckpt.json")
	n := newTestNetwork(20)
	ckpt := NewModelCheckpoint(path)

	ckpt.OnEpochEnd(1, 1.0, n)
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("checkpoint not written: %v", err)
	}

	if _, err := n.TrainBatch(testSamples(t), 1); err != nil {
		t.Fatalf("TrainBatch() error = %v", err)
	}
	ckpt.OnEpochEnd(2, 2.0, n)
	second, _ := os.ReadFile(path)
	if !bytes.Equal(first, second) {
		t.Error("checkpoint overwritten by a worse epoch")
	}

	ckpt.OnEpochEnd(3, 0.5, n)
	third, _ := os.ReadFile(path)
	if bytes.Equal(first, third) {
		t.Error("checkpoint not updated by a better epoch")
	}
}

// TestCSVLogger tests header and rows.
func TestCSVLogger(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "log.csv")

	logger := NewCSVLogger(filename, false, "run-1")
	logger.OnTrainBegin(nil)
	logger.OnEpochEnd(1, 0.5, nil)
	logger.OnEpochEnd(2, 0.25, nil)
	logger.OnTrainEnd(nil)

	// Append a second run.
	logger = NewCSVLogger(filename, true, "run-2")
	logger.OnTrainBegin(nil)
	logger.OnEpochEnd(1, 0.75, nil)
	logger.OnTrainEnd(nil)

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("failed to open log file: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if strings.Join(records[0], ",") != "run_id,epoch,loss,time_seconds" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][0] != "run-1" || records[1][1] != "1" || records[1][2] != "0.500000" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	if records[3][0] != "run-2" || records[3][2] != "0.750000" {
		t.Errorf("unexpected appended row: %v", records[3])
	}
}
