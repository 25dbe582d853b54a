package e2e

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"fruitd/internal/classifier"
	"fruitd/internal/httpapi"
	"fruitd/internal/imageproc"
	"fruitd/internal/predictor"
	"fruitd/pkg/types"
)

// newServer wires the full stack the way cmd/fruitd does and serves it
// over a real listener.
func newServer(t *testing.T, modelPath string) (*httptest.Server, classifier.Classifier) {
	t.Helper()
	pre := imageproc.Options{}
	clf := classifier.Load(classifier.Options{
		ONNX:       classifier.ONNXOptions{ModelPath: modelPath},
		Preprocess: pre,
		Demo:       classifier.SimulatedOptions{Seed: 42},
	}, zerolog.Nop())
	svc := predictor.New(clf, predictor.Options{
		Threshold:     predictor.DefaultThreshold,
		Decode:        pre,
		ExpectedModel: filepath.Base(modelPath),
		Logger:        zerolog.Nop(),
	})
	srv := httptest.NewServer(httpapi.NewMux(svc, httpapi.Options{Logger: zerolog.Nop()}))
	t.Cleanup(func() {
		srv.Close()
		_ = clf.Close()
	})
	return srv, clf
}

func jpegFixture(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg: %v", err)
	}
	return buf.Bytes()
}

// upload posts data as the multipart "file" field and decodes the reply.
// It is safe to call from multiple goroutines.
func upload(client *http.Client, url, contentType string, data []byte) (int, types.PredictResponse, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="file"; filename="fruit.jpg"`)
	h.Set("Content-Type", contentType)
	pw, err := mw.CreatePart(h)
	if err != nil {
		return 0, types.PredictResponse{}, "", err
	}
	if _, err := pw.Write(data); err != nil {
		return 0, types.PredictResponse{}, "", err
	}
	if err := mw.Close(); err != nil {
		return 0, types.PredictResponse{}, "", err
	}
	resp, err := client.Post(url+"/predict", mw.FormDataContentType(), &buf)
	if err != nil {
		return 0, types.PredictResponse{}, "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, types.PredictResponse{}, "", err
	}
	var pr types.PredictResponse
	if resp.StatusCode == http.StatusOK {
		err = json.Unmarshal(body, &pr)
	}
	return resp.StatusCode, pr, string(body), err
}
