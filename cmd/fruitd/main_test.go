package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fruitd/internal/labels"
	"fruitd/pkg/types"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < 16; i++ {
		img.Set(i, i, color.RGBA{G: 200, A: 255})
	}
	path := filepath.Join(dir, "fruit.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLabelsCommand(t *testing.T) {
	out, err := run(t, "labels")
	if err != nil {
		t.Fatalf("labels: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != labels.Count+1 {
		t.Fatalf("expected header + %d rows, got %d:\n%s", labels.Count, len(lines), out)
	}
	if !strings.Contains(out, "freshapples") || !strings.Contains(out, "Belum Matang") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestLabelsCommandJSON(t *testing.T) {
	out, err := run(t, "labels", "--json")
	if err != nil {
		t.Fatalf("labels --json: %v", err)
	}
	var resp types.ClassesResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(resp.Classes) != labels.Count {
		t.Fatalf("classes=%d", len(resp.Classes))
	}
}

func TestClassifyDemoMode(t *testing.T) {
	dir := t.TempDir()
	img := writePNG(t, dir)
	out, err := run(t, "classify", "--log-level", "error", "--model-path", filepath.Join(dir, "missing.onnx"), img)
	if err != nil {
		t.Fatalf("classify: %v\n%s", err, out)
	}
	var resp types.PredictResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("json: %v (%q)", err, out)
	}
	if !resp.DemoMode || resp.Status != types.StatusSuccess || !labels.Contains(resp.Label) {
		t.Fatalf("resp=%+v", resp)
	}
	if !strings.Contains(resp.Message, "missing.onnx") {
		t.Fatalf("demo message should name the expected model: %q", resp.Message)
	}
}

func TestClassifyReportsBadFiles(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "classify", "--log-level", "error", "--model-path", filepath.Join(dir, "missing.onnx"), bad, writePNG(t, dir))
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Fatalf("expected 1 of 2 failure, got %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "Gagal membaca gambar") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestClassifyRequiresArgs(t *testing.T) {
	if _, err := run(t, "classify"); err == nil {
		t.Fatalf("expected error without files")
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fruitd.yaml")
	yml := "addr: \":7000\"\nlog_level: debug\nconfidence_threshold: 0.7\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	env := map[string]string{"FRUITD_ADDR": ":7001", "FRUITD_LOG_LEVEL": "info"}

	root := newRootCmd()
	if err := root.ParseFlags([]string{"--config", path, "--log-level", "warn"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := resolveConfig(root, func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Addr != ":7001" {
		t.Fatalf("env should override file addr, got %q", cfg.Addr)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("flag should override env log level, got %q", cfg.LogLevel)
	}
	if cfg.ConfidenceThreshold != 0.7 || cfg.ImageSize != 224 {
		t.Fatalf("file/default values lost: %+v", cfg)
	}
}

func TestResolveConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("image_size = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	root := newRootCmd()
	if err := root.ParseFlags([]string{"--config", path}); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(root, func(string) string { return "" }); err == nil || !strings.Contains(err.Error(), "image_size") {
		t.Fatalf("expected image_size validation error, got %v", err)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger("warn", "json", &buf)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected log output: %q", buf.String())
	}
	buf.Reset()
	console := newLogger("nonsense", "console", &buf)
	console.Info().Msg("console line")
	if !strings.Contains(buf.String(), "console line") || strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("expected console output: %q", buf.String())
	}
}
