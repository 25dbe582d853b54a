package classifier

import (
	"context"
	"image"
)

// Mode names the strategy serving predictions.
type Mode string

const (
	ModeInference Mode = "inference"
	ModeDemo      Mode = "demo"
)

// Result is the outcome of classifying one image.
type Result struct {
	Label      string
	Index      int
	Confidence float64
	Demo       bool
}

// Info describes a classifier for health reporting.
type Info struct {
	Mode         Mode
	ModelVersion string
	ModelPath    string
	// Reason is set in demo mode and explains why no model was loaded.
	Reason string
}

// Loaded reports whether a real model serves predictions.
func (i Info) Loaded() bool { return i.Mode == ModeInference }

// Classifier scores decoded images. Implementations are safe for
// concurrent use.
type Classifier interface {
	Classify(ctx context.Context, img image.Image) (Result, error)
	Info() Info
	Close() error
}
