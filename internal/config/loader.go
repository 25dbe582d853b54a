package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
type Config struct {
	Addr       string `json:"addr" yaml:"addr" toml:"addr"`
	APIVersion string `json:"api_version" yaml:"api_version" toml:"api_version"`

	// Model artifact and runtime.
	ModelPath    string `json:"model_path" yaml:"model_path" toml:"model_path"`
	ModelVersion string `json:"model_version" yaml:"model_version" toml:"model_version"`
	ONNXLibrary  string `json:"onnx_library" yaml:"onnx_library" toml:"onnx_library"`
	InputName    string `json:"input_name" yaml:"input_name" toml:"input_name"`
	OutputName   string `json:"output_name" yaml:"output_name" toml:"output_name"`
	Softmax      bool   `json:"softmax" yaml:"softmax" toml:"softmax"`

	// Preprocessing.
	ImageSize      int    `json:"image_size" yaml:"image_size" toml:"image_size"`
	Resample       string `json:"resample" yaml:"resample" toml:"resample"`
	MaxImagePixels int    `json:"max_image_pixels" yaml:"max_image_pixels" toml:"max_image_pixels"`

	// Prediction policy.
	ConfidenceThreshold float64 `json:"confidence_threshold" yaml:"confidence_threshold" toml:"confidence_threshold"`
	DemoMinConfidence   float64 `json:"demo_min_confidence" yaml:"demo_min_confidence" toml:"demo_min_confidence"`
	DemoMaxConfidence   float64 `json:"demo_max_confidence" yaml:"demo_max_confidence" toml:"demo_max_confidence"`
	DemoSeed            uint64  `json:"demo_seed" yaml:"demo_seed" toml:"demo_seed"`

	// HTTP.
	MaxUploadBytes         int64 `json:"max_upload_bytes" yaml:"max_upload_bytes" toml:"max_upload_bytes"`
	ShutdownTimeoutSeconds int   `json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds" toml:"shutdown_timeout_seconds"`
	Swagger                bool  `json:"swagger" yaml:"swagger" toml:"swagger"`
	CORS                   CORS  `json:"cors" yaml:"cors" toml:"cors"`

	// Logging.
	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format"`
}

// CORS configures cross-origin access for browser and mobile clients.
type CORS struct {
	Enabled        bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" toml:"allowed_origins"`
	AllowedMethods []string `json:"allowed_methods" yaml:"allowed_methods" toml:"allowed_methods"`
	AllowedHeaders []string `json:"allowed_headers" yaml:"allowed_headers" toml:"allowed_headers"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:                   ":8000",
		APIVersion:             "1.0.0",
		ModelPath:              "./model/cnnVGG16rv2.onnx",
		InputName:              "input",
		OutputName:             "output",
		ImageSize:              224,
		Resample:               "linear",
		MaxImagePixels:         50_000_000,
		ConfidenceThreshold:    0.6,
		DemoMinConfidence:      0.75,
		DemoMaxConfidence:      0.95,
		MaxUploadBytes:         10 << 20,
		ShutdownTimeoutSeconds: 5,
		CORS: CORS{
			Enabled:        true,
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"*"},
		},
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load reads a configuration file based on its extension on top of Default.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from FRUITD_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("FRUITD_ADDR"); v != "" {
		c.Addr = v
	}
	if v := getenv("FRUITD_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

var resampleNames = map[string]bool{
	"nearest": true, "linear": true, "bilinear": true, "catmullrom": true,
	"bicubic": true, "lanczos": true, "box": true,
}

// Validate rejects values the service cannot run with.
func (c Config) Validate() error {
	var errs []string
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, "addr is required")
	}
	if c.ImageSize <= 0 || c.ImageSize > 4096 {
		errs = append(errs, fmt.Sprintf("image_size must be in (0, 4096], got %d", c.ImageSize))
	}
	if !resampleNames[strings.ToLower(c.Resample)] {
		errs = append(errs, fmt.Sprintf("unknown resample filter %q", c.Resample))
	}
	if c.MaxImagePixels <= 0 {
		errs = append(errs, "max_image_pixels must be positive")
	}
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		errs = append(errs, fmt.Sprintf("confidence_threshold must be in [0,1], got %v", c.ConfidenceThreshold))
	}
	if c.DemoMinConfidence < 0 || c.DemoMaxConfidence > 1 || c.DemoMinConfidence > c.DemoMaxConfidence {
		errs = append(errs, fmt.Sprintf("demo confidence range [%v, %v] must lie within [0,1]", c.DemoMinConfidence, c.DemoMaxConfidence))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, "max_upload_bytes must be positive")
	}
	if c.ShutdownTimeoutSeconds < 0 {
		errs = append(errs, "shutdown_timeout_seconds must not be negative")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("log_format must be json or console, got %q", c.LogFormat))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}
