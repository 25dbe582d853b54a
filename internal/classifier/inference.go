package classifier

import (
	"context"
	"fmt"
	"image"
	"math"

	"fruitd/internal/imageproc"
	"fruitd/internal/labels"
)

// InferenceOptions configures the Inference strategy.
type InferenceOptions struct {
	Preprocess   imageproc.Options
	Softmax      bool
	ModelVersion string
	ModelPath    string
}

// Inference classifies images with a loaded model.
type Inference struct {
	engine Engine
	opts   InferenceOptions
}

// NewInference wraps an engine. The engine is owned by the returned
// classifier and released by Close.
func NewInference(engine Engine, opts InferenceOptions) *Inference {
	return &Inference{engine: engine, opts: opts}
}

// Classify runs preprocessing and a forward pass, returning the arg-max
// class. A forward pass already started is not interrupted by ctx.
func (c *Inference) Classify(ctx context.Context, img image.Image) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	input := imageproc.Preprocess(img, c.opts.Preprocess)
	scores, err := c.engine.Run(input)
	if err != nil {
		return Result{}, fmt.Errorf("forward pass: %w", err)
	}
	if len(scores) != labels.Count {
		return Result{}, outputMismatchError{got: len(scores), want: labels.Count}
	}
	probs := make([]float64, len(scores))
	for i, s := range scores {
		probs[i] = float64(s)
	}
	if c.opts.Softmax {
		softmax(probs)
	}
	idx, conf := argmax(probs)
	if math.IsNaN(conf) {
		return Result{}, fmt.Errorf("model produced NaN scores")
	}
	label, _ := labels.At(idx)
	return Result{Label: label, Index: idx, Confidence: clamp01(conf)}, nil
}

// Info implements Classifier.
func (c *Inference) Info() Info {
	return Info{Mode: ModeInference, ModelVersion: c.opts.ModelVersion, ModelPath: c.opts.ModelPath}
}

// Close releases the engine.
func (c *Inference) Close() error { return c.engine.Close() }

// argmax returns the first index holding the maximum value.
func argmax(v []float64) (int, float64) {
	best, bestVal := 0, v[0]
	for i := 1; i < len(v); i++ {
		if v[i] > bestVal || math.IsNaN(bestVal) {
			best, bestVal = i, v[i]
		}
	}
	return best, bestVal
}

// softmax normalizes v in place.
func softmax(v []float64) {
	hi := math.Inf(-1)
	for _, x := range v {
		if x > hi {
			hi = x
		}
	}
	var sum float64
	for i, x := range v {
		v[i] = math.Exp(x - hi)
		sum += v[i]
	}
	for i := range v {
		v[i] /= sum
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
