// Package imageproc turns uploaded image bytes into the normalized NHWC
// tensor the classifier expects.
package imageproc

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Defaults used when Options fields are zero.
const (
	DefaultSize      = 224
	DefaultMaxPixels = 50_000_000
	Channels         = 3
)

// DecodeError reports bytes that could not be turned into an image.
type DecodeError struct{ Reason string }

func (e *DecodeError) Error() string { return e.Reason }

// IsDecodeError reports whether err is a *DecodeError.
func IsDecodeError(err error) bool {
	_, ok := err.(*DecodeError)
	return ok
}

// Options controls decoding and preprocessing.
type Options struct {
	// Size is the square edge length images are resized to.
	Size int
	// Resample names the resizing filter; see FilterByName.
	Resample string
	// MaxPixels rejects images whose declared width*height exceeds it.
	MaxPixels int
}

func (o Options) withDefaults() Options {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.MaxPixels <= 0 {
		o.MaxPixels = DefaultMaxPixels
	}
	return o
}

// FilterByName maps a config name to a resampling filter.
func FilterByName(name string) (imaging.ResampleFilter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear", "bilinear":
		return imaging.Linear, nil
	case "nearest":
		return imaging.NearestNeighbor, nil
	case "catmullrom", "bicubic":
		return imaging.CatmullRom, nil
	case "lanczos":
		return imaging.Lanczos, nil
	case "box":
		return imaging.Box, nil
	default:
		return imaging.ResampleFilter{}, fmt.Errorf("unknown resample filter: %s", name)
	}
}

// Tensor is a dense float32 tensor in row-major order.
type Tensor struct {
	Shape []int64
	Data  []float32
}

// Decode decodes image bytes. The declared dimensions are checked against
// opts.MaxPixels before the pixel data is decoded.
func Decode(data []byte, opts Options) (image.Image, string, error) {
	opts = opts.withDefaults()
	if len(data) == 0 {
		return nil, "", &DecodeError{Reason: "empty file"}
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", &DecodeError{Reason: err.Error()}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", &DecodeError{Reason: fmt.Sprintf("invalid dimensions %dx%d", cfg.Width, cfg.Height)}
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(opts.MaxPixels) {
		return nil, "", &DecodeError{Reason: fmt.Sprintf("image too large: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, opts.MaxPixels)}
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", &DecodeError{Reason: err.Error()}
	}
	return img, format, nil
}

// Preprocess converts img to RGB, resizes it to opts.Size x opts.Size and
// returns a (1, Size, Size, 3) tensor with values scaled to [0,1].
// Alpha is dropped without compositing.
func Preprocess(img image.Image, opts Options) Tensor {
	opts = opts.withDefaults()
	n := opts.Size
	filter, err := FilterByName(opts.Resample)
	if err != nil {
		filter = imaging.Linear
	}
	dst := imaging.Resize(img, n, n, filter)

	out := make([]float32, n*n*Channels)
	i := 0
	for y := 0; y < n; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+n*4]
		for x := 0; x < n; x++ {
			p := row[x*4 : x*4+4]
			out[i] = float32(p[0]) / 255
			out[i+1] = float32(p[1]) / 255
			out[i+2] = float32(p[2]) / 255
			i += Channels
		}
	}
	return Tensor{Shape: Shape(n), Data: out}
}

// Shape returns the input shape for a square edge of n pixels.
func Shape(n int) []int64 { return []int64{1, int64(n), int64(n), Channels} }
