package imageproc

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodePNGAndJPEG(t *testing.T) {
	img := solid(10, 6, color.RGBA{R: 200, G: 10, B: 10, A: 255})
	got, format, err := Decode(encodePNG(t, img), Options{})
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if format != "png" || got.Bounds().Dx() != 10 || got.Bounds().Dy() != 6 {
		t.Fatalf("format=%s bounds=%v", format, got.Bounds())
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("jpeg encode: %v", err)
	}
	if _, format, err = Decode(buf.Bytes(), Options{}); err != nil || format != "jpeg" {
		t.Fatalf("decode jpeg: format=%s err=%v", format, err)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty": nil,
		"text":  []byte("definitely not an image"),
		"trunc": encodePNG(t, solid(4, 4, color.White))[:20],
	} {
		_, _, err := Decode(data, Options{})
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if !IsDecodeError(err) {
			t.Fatalf("%s: expected *DecodeError, got %T", name, err)
		}
	}
}

func TestDecodeMaxPixels(t *testing.T) {
	data := encodePNG(t, solid(20, 20, color.White))
	if _, _, err := Decode(data, Options{MaxPixels: 399}); !IsDecodeError(err) {
		t.Fatalf("expected pixel limit error, got %v", err)
	}
	if _, _, err := Decode(data, Options{MaxPixels: 400}); err != nil {
		t.Fatalf("limit should be inclusive: %v", err)
	}
}

func TestPreprocessShapeAndRange(t *testing.T) {
	img := solid(300, 120, color.RGBA{R: 255, G: 0, B: 51, A: 255})
	tensor := Preprocess(img, Options{})
	want := []int64{1, DefaultSize, DefaultSize, 3}
	for i := range want {
		if tensor.Shape[i] != want[i] {
			t.Fatalf("shape=%v want %v", tensor.Shape, want)
		}
	}
	if len(tensor.Data) != DefaultSize*DefaultSize*3 {
		t.Fatalf("len=%d", len(tensor.Data))
	}
	for i, v := range tensor.Data {
		if v < 0 || v > 1 {
			t.Fatalf("value %d out of range: %v", i, v)
		}
	}
	// NHWC: first pixel's channels are contiguous.
	if tensor.Data[0] != 1 || tensor.Data[1] != 0 || tensor.Data[2] != float32(51)/255 {
		t.Fatalf("first pixel=%v", tensor.Data[:3])
	}
}

func TestPreprocessGrayscaleBecomesThreeChannels(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range g.Pix {
		g.Pix[i] = 128
	}
	tensor := Preprocess(g, Options{Size: 4, Resample: "nearest"})
	if len(tensor.Data) != 4*4*3 {
		t.Fatalf("len=%d", len(tensor.Data))
	}
	for i := 0; i < len(tensor.Data); i += 3 {
		r, gg, b := tensor.Data[i], tensor.Data[i+1], tensor.Data[i+2]
		if r != gg || gg != b || r != float32(128)/255 {
			t.Fatalf("pixel %d = %v %v %v", i/3, r, gg, b)
		}
	}
}

func TestPreprocessAlreadyTargetSize(t *testing.T) {
	tensor := Preprocess(solid(5, 5, color.Black), Options{Size: 5})
	for _, v := range tensor.Data {
		if v != 0 {
			t.Fatalf("expected black pixels, got %v", v)
		}
	}
}

func TestFilterByName(t *testing.T) {
	for _, n := range []string{"", "linear", "bilinear", "nearest", "catmullrom", "bicubic", "lanczos", "box", " Lanczos "} {
		if _, err := FilterByName(n); err != nil {
			t.Fatalf("FilterByName(%q): %v", n, err)
		}
	}
	if _, err := FilterByName("sinc"); err == nil {
		t.Fatalf("expected error for unknown filter")
	}
}
