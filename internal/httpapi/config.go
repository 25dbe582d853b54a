package httpapi

import (
	"context"

	"github.com/rs/zerolog"
)

// DefaultMaxUploadBytes caps uploads when Options.MaxUploadBytes is unset.
const DefaultMaxUploadBytes int64 = 10 << 20

// multipartOverhead is the body allowance for multipart boundaries and headers
// on top of the file itself.
const multipartOverhead int64 = 64 << 10

// CORSOptions configures cross-origin access. If disabled, no CORS
// middleware is added.
type CORSOptions struct {
	Enabled        bool
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// Options configures the HTTP layer.
type Options struct {
	Logger zerolog.Logger
	// LogLevel is the default per-request log level; see requestLogLevel.
	LogLevel       LogLevel
	MaxUploadBytes int64
	CORS           CORSOptions
	Swagger        bool
	// BaseContext is canceled on shutdown; handlers join it with the
	// request context.
	BaseContext context.Context
}

func (o Options) withDefaults() Options {
	if o.MaxUploadBytes <= 0 {
		o.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if o.BaseContext == nil {
		o.BaseContext = context.Background()
	}
	return o
}
