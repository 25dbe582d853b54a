package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"fruitd/internal/classifier"
	"fruitd/internal/config"
	"fruitd/internal/imageproc"
	"fruitd/internal/predictor"
)

// newRootCmd builds the command tree. Running the root without a
// subcommand serves the API.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fruitd",
		Short:         "Fruit freshness classification API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runServe,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (.yaml, .yml, .json or .toml)")
	pf.String("env-file", config.DefaultEnvFile, "Env file loaded before FRUITD_* variables are read; ignored if missing unless set explicitly")
	pf.String("addr", "", "HTTP listen address (defaults FRUITD_ADDR or :8000)")
	pf.String("model-path", "", "Path to the ONNX model file")
	pf.String("log-level", "", "Log level: debug|info|warn|error (defaults FRUITD_LOG_LEVEL or info)")
	pf.String("log-format", "", "Log format: json|console")
	pf.Bool("swagger", false, "Serve OpenAPI docs under /swagger/")

	serveCmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the HTTP API",
		Example: "  fruitd serve --addr :8000 --model-path ./model/cnnVGG16rv2.onnx",
		Args:    cobra.NoArgs,
		RunE:    runServe,
	}
	classifyCmd := &cobra.Command{
		Use:     "classify FILE...",
		Short:   "Classify image files offline and print one JSON response per file",
		Example: "  fruitd classify apple.jpg banana.png",
		Args:    cobra.MinimumNArgs(1),
		RunE:    runClassify,
	}
	labelsCmd := &cobra.Command{
		Use:   "labels",
		Short: "Print the supported classes",
		Args:  cobra.NoArgs,
		RunE:  runLabels,
	}
	labelsCmd.Flags().Bool("json", false, "Print as JSON")

	root.AddCommand(serveCmd, classifyCmd, labelsCmd)
	return root
}

// resolveConfig layers defaults, the config file, FRUITD_* env vars and
// explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command, getenv func(string) string) (config.Config, error) {
	flags := cmd.Flags()
	cfg := config.Default()
	envFile, _ := flags.GetString("env-file")
	if err := config.LoadDotEnv(envFile, flags.Changed("env-file")); err != nil {
		return cfg, err
	}
	if path, _ := flags.GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	cfg.ApplyEnv(getenv)

	if flags.Changed("addr") {
		cfg.Addr, _ = flags.GetString("addr")
	}
	if flags.Changed("model-path") {
		cfg.ModelPath, _ = flags.GetString("model-path")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Changed("swagger") {
		cfg.Swagger, _ = flags.GetBool("swagger")
	}
	return cfg, cfg.Validate()
}

// newLogger builds the root logger. Unknown levels fall back to info.
func newLogger(level, format string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

func preprocessOptions(cfg config.Config) imageproc.Options {
	return imageproc.Options{
		Size:      cfg.ImageSize,
		Resample:  cfg.Resample,
		MaxPixels: cfg.MaxImagePixels,
	}
}

// buildService loads the classifier once and wraps it in a predictor.
// The caller owns the returned classifier and must Close it.
func buildService(cfg config.Config, log zerolog.Logger) (*predictor.Service, classifier.Classifier) {
	pre := preprocessOptions(cfg)
	clf := classifier.Load(classifier.Options{
		ONNX: classifier.ONNXOptions{
			ModelPath:     cfg.ModelPath,
			SharedLibrary: cfg.ONNXLibrary,
			InputName:     cfg.InputName,
			OutputName:    cfg.OutputName,
		},
		Preprocess:   pre,
		Softmax:      cfg.Softmax,
		ModelVersion: cfg.ModelVersion,
		Demo: classifier.SimulatedOptions{
			MinConfidence: cfg.DemoMinConfidence,
			MaxConfidence: cfg.DemoMaxConfidence,
			Seed:          cfg.DemoSeed,
		},
	}, log)

	svc := predictor.New(clf, predictor.Options{
		Threshold:     cfg.ConfidenceThreshold,
		Decode:        pre,
		APIVersion:    cfg.APIVersion,
		ExpectedModel: filepath.Base(cfg.ModelPath),
		Logger:        log,
	})
	return svc, clf
}

func stderrLogger(cfg config.Config) zerolog.Logger {
	return newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
}
