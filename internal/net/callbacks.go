package net

import (
	"fmt"
	"io"
	"math"
	"os"
)

// Callback defines the interface for training callbacks.
// Epoch numbers start at 1.
type Callback interface {
	OnTrainBegin(n *Network)
	OnTrainEnd(n *Network)
	OnEpochBegin(epoch int, n *Network)
	OnEpochEnd(epoch int, loss float64, n *Network)
}

// Stopper is implemented by callbacks that can end training early.
type Stopper interface {
	ShouldStop() bool
}

func stopRequested(callbacks []Callback) bool {
	for _, cb := range callbacks {
		if s, ok := cb.(Stopper); ok && s.ShouldStop() {
			return true
		}
	}
	return false
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

func (c BaseCallback) OnTrainBegin(n *Network)                        {}
func (c BaseCallback) OnTrainEnd(n *Network)                          {}
func (c BaseCallback) OnEpochBegin(epoch int, n *Network)             {}
func (c BaseCallback) OnEpochEnd(epoch int, loss float64, n *Network) {}

// EarlyStopping stops training when the epoch loss has stopped improving.
type EarlyStopping struct {
	BaseCallback
	Patience  int
	Threshold float64

	bestLoss     float64
	numBadEpochs int
	Stopped      bool
}

func NewEarlyStopping(patience int, threshold float64) *EarlyStopping {
	return &EarlyStopping{
		Patience:  patience,
		Threshold: threshold,
		bestLoss:  math.Inf(1),
	}
}

func (c *EarlyStopping) OnTrainBegin(n *Network) {
	c.bestLoss = math.Inf(1)
	c.numBadEpochs = 0
	c.Stopped = false
}

func (c *EarlyStopping) OnEpochEnd(epoch int, loss float64, n *Network) {
	if loss < c.bestLoss-c.Threshold {
		c.bestLoss = loss
		c.numBadEpochs = 0
	} else {
		c.numBadEpochs++
	}

	if c.numBadEpochs >= c.Patience {
		fmt.Printf("Early stopping at epoch %d: loss %.6f did not improve for %d epochs\n", epoch, loss, c.Patience)
		c.Stopped = true
	}
}

// ShouldStop implements Stopper.
func (c *EarlyStopping) ShouldStop() bool { return c.Stopped }

// ModelCheckpoint saves the model after every epoch that improves on the
// best loss so far.
type ModelCheckpoint struct {
	BaseCallback
	Filename string

	bestLoss float64
}

func NewModelCheckpoint(filename string) *ModelCheckpoint {
	return &ModelCheckpoint{
		Filename: filename,
		bestLoss: math.Inf(1),
	}
}

func (c *ModelCheckpoint) OnEpochEnd(epoch int, loss float64, n *Network) {
	if loss < c.bestLoss {
		c.bestLoss = loss
		if err := n.SaveModel(c.Filename); err != nil {
			fmt.Printf("Error saving checkpoint: %v\n", err)
		} else {
			fmt.Printf("Checkpoint saved: loss %.6f is new best\n", loss)
		}
	}
}

// Logger reports the average loss of each epoch.
type Logger struct {
	BaseCallback
	Out      io.Writer // defaults to os.Stdout
	Epochs   int
	Interval int // report every Interval epochs; 0 or 1 reports all
}

// NewLogger returns a Logger writing every epoch of an epochs-long run to w.
func NewLogger(w io.Writer, epochs int) *Logger {
	return &Logger{Out: w, Epochs: epochs, Interval: 1}
}

func (c *Logger) OnEpochEnd(epoch int, loss float64, n *Network) {
	if c.Interval > 1 && epoch%c.Interval != 0 && epoch != c.Epochs {
		return
	}
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "Epoch %d/%d completed. Avg Loss: %.4f\n", epoch, c.Epochs, loss)
}
