package classifier

import (
	"errors"
	"image"
	"image/color"
	"sync"

	"fruitd/internal/imageproc"
)

type fakeEngine struct {
	mu      sync.Mutex
	scores  []float32
	err     error
	calls   int
	closed  bool
	lastLen int
	shape   []int64
}

func (f *fakeEngine) Run(t imageproc.Tensor) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastLen = len(t.Data)
	f.shape = append([]int64(nil), t.Shape...)
	if f.err != nil {
		return nil, f.err
	}
	return append([]float32(nil), f.scores...), nil
}

func (f *fakeEngine) Close() error {
	f.closed = true
	return nil
}

var errBoom = errors.New("boom")

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < 16; i++ {
		img.Set(i, i, color.RGBA{R: 255, A: 255})
	}
	return img
}

// oneHot returns 12 scores with v at index i and the remainder spread evenly.
func oneHot(i int, v float32) []float32 {
	s := make([]float32, 12)
	rest := (1 - v) / 11
	for j := range s {
		s[j] = rest
	}
	s[i] = v
	return s
}
