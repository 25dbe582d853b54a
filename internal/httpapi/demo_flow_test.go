package httpapi

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fruitd/internal/classifier"
	"fruitd/internal/labels"
	"fruitd/internal/predictor"
	"fruitd/pkg/types"
)

func demoMux(t *testing.T) http.Handler {
	t.Helper()
	clf := classifier.NewSimulated(classifier.SimulatedOptions{Seed: 7, Reason: "model file not found"})
	return NewMux(predictor.New(clf, predictor.Options{}), Options{})
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for i := range img.Pix {
		img.Pix[i] = 180
	}
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestDemoModePredictEndToEnd(t *testing.T) {
	h := demoMux(t)
	data := jpegBytes(t)
	for i := 0; i < 5; i++ {
		w := postUpload(t, h, "file", "fruit.jpg", "image/jpeg", data)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		var resp types.PredictResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("json: %v", err)
		}
		if resp.Status != types.StatusSuccess || !resp.DemoMode {
			t.Fatalf("resp=%+v", resp)
		}
		if !labels.Contains(resp.Label) {
			t.Fatalf("label %q not supported", resp.Label)
		}
		if resp.Confidence < classifier.DefaultDemoMinConfidence || resp.Confidence > classifier.DefaultDemoMaxConfidence {
			t.Fatalf("confidence %v out of demo range", resp.Confidence)
		}
	}
}

func TestDemoModeRootAndHealthAgree(t *testing.T) {
	h := demoMux(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	var root types.RootResponse
	if err := json.Unmarshal(w.Body.Bytes(), &root); err != nil {
		t.Fatalf("json: %v", err)
	}
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	var health types.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("json: %v", err)
	}
	if root.ModelLoaded {
		t.Fatalf("demo mode must report model_loaded=false")
	}
	if health.ModelStatus != "not_loaded" || !health.DemoMode {
		t.Fatalf("health=%+v", health)
	}
	if len(health.SupportedClasses) != labels.Count {
		t.Fatalf("supported_classes=%d", len(health.SupportedClasses))
	}
}

func TestDemoModeCorruptImageIs400(t *testing.T) {
	w := postUpload(t, demoMux(t), "file", "broken.jpg", "image/jpeg", []byte("not really a jpeg"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if d := decodeDetail(t, w); !strings.HasPrefix(d, "Gagal membaca gambar") {
		t.Fatalf("detail=%q", d)
	}
}
