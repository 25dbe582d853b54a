package classifier

import (
	"context"
	"image"
	"math/rand/v2"
	"sync"

	"fruitd/internal/labels"
)

// Default confidence range for simulated predictions.
const (
	DefaultDemoMinConfidence = 0.75
	DefaultDemoMaxConfidence = 0.95
)

// SimulatedOptions configures the demo strategy.
type SimulatedOptions struct {
	MinConfidence float64
	MaxConfidence float64
	// Seed makes the sequence reproducible; 0 seeds randomly.
	Seed uint64
	// Reason is reported through Info.
	Reason string
}

// Simulated returns plausible random predictions without a model.
type Simulated struct {
	mu       sync.Mutex
	rng      *rand.Rand
	min, max float64
	reason   string
}

// NewSimulated builds a demo classifier. Out-of-order or out-of-range
// bounds fall back to the defaults.
func NewSimulated(opts SimulatedOptions) *Simulated {
	lo, hi := opts.MinConfidence, opts.MaxConfidence
	if lo <= 0 && hi <= 0 {
		lo, hi = DefaultDemoMinConfidence, DefaultDemoMaxConfidence
	}
	if lo < 0 || hi > 1 || lo > hi {
		lo, hi = DefaultDemoMinConfidence, DefaultDemoMaxConfidence
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Simulated{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		min:    lo,
		max:    hi,
		reason: opts.Reason,
	}
}

// Classify ignores the image and picks a label uniformly at random with a
// confidence uniform in [min, max].
func (s *Simulated) Classify(ctx context.Context, _ image.Image) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	s.mu.Lock()
	idx := s.rng.IntN(labels.Count)
	conf := s.min + s.rng.Float64()*(s.max-s.min)
	s.mu.Unlock()
	label, _ := labels.At(idx)
	return Result{Label: label, Index: idx, Confidence: conf, Demo: true}, nil
}

// Info implements Classifier.
func (s *Simulated) Info() Info { return Info{Mode: ModeDemo, Reason: s.reason} }

// Close is a no-op.
func (s *Simulated) Close() error { return nil }
