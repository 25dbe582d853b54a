package httpapi

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"fruitd/internal/predictor"
	"fruitd/pkg/types"
)

// uploadField is the multipart field carrying the image.
const uploadField = "file"

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Root() types.RootResponse
	Health() types.HealthResponse
	Classes() types.ClassesResponse
	Predict(ctx context.Context, data []byte) (types.PredictResponse, error)
}

// NewMux builds the router. svc is shared by every request and must be
// safe for concurrent use.
func NewMux(svc Service, opts Options) http.Handler {
	o := opts.withDefaults()
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(recoverer(o.Logger))
	r.Use(MetricsMiddleware)
	if o.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: o.CORS.AllowedOrigins,
			AllowedMethods: o.CORS.AllowedMethods,
			AllowedHeaders: o.CORS.AllowedHeaders,
		}))
	}
	r.Use(middleware.Compress(5, "application/json"))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	h := &handlers{svc: svc, opts: o}

	r.Get("/", h.root)
	r.Get("/health", h.health)
	r.Get("/classes", h.classes)
	r.Post("/predict", h.predict)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	if o.Swagger {
		MountSwagger(r)
	}
	return r
}

type handlers struct {
	svc  Service
	opts Options
}

// root godoc
// @Summary      Service info
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.RootResponse
// @Router       / [get]
func (h *handlers) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Root())
}

// health godoc
// @Summary      Model status and supported classes
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Router       /health [get]
func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Health())
}

// classes godoc
// @Summary      Supported classes with fruit and condition
// @Tags         predict
// @Produce      json
// @Success      200  {object}  types.ClassesResponse
// @Router       /classes [get]
func (h *handlers) classes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Classes())
}

// predict godoc
// @Summary      Classify a fruit image
// @Tags         predict
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image file (jpg, png, ...)"
// @Success      200  {object}  types.PredictResponse
// @Failure      400  {object}  types.ErrorResponse
// @Failure      413  {object}  types.ErrorResponse
// @Failure      500  {object}  types.ErrorResponse
// @Failure      503  {object}  types.ErrorResponse
// @Router       /predict [post]
func (h *handlers) predict(w http.ResponseWriter, r *http.Request) {
	rl := newRequestLogger(h.opts.Logger, h.opts.LogLevel, r)

	data, name, err := h.readUpload(w, r)
	if err != nil {
		h.fail(w, rl, err)
		return
	}
	rl.begin(func(e *zerolog.Event) { e.Str("filename", name).Int("bytes", len(data)) })

	// Join server base context with request context so shutdown cancels work too.
	ctx, cancel := joinContexts(h.opts.BaseContext, r.Context())
	defer cancel()
	resp, err := h.svc.Predict(ctx, data)
	if err != nil {
		switch {
		case h.opts.BaseContext.Err() != nil:
			writeJSONError(w, http.StatusServiceUnavailable, detailShuttingDown)
			rl.end(http.StatusServiceUnavailable, err)
		case r.Context().Err() != nil:
			// client is gone; the status only reaches logs and metrics
			w.WriteHeader(statusClientClosedRequest)
			rl.end(statusClientClosedRequest, err)
		default:
			h.fail(w, rl, err)
		}
		return
	}
	if e := rl.detail(); e != nil {
		e.Str("label", resp.Label).Float64("confidence", resp.Confidence).Bool("demo_mode", resp.DemoMode).Msg("predict result")
	}
	writeJSON(w, http.StatusOK, resp)
	rl.end(http.StatusOK, nil)
}

// readUpload extracts the image bytes from the multipart body. The declared
// content type is checked before any byte of the file is read.
func (h *handlers) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	limit := h.opts.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	if err := r.ParseMultipartForm(limit + multipartOverhead); err != nil {
		var mbe *http.MaxBytesError
		switch {
		case errors.As(err, &mbe):
			countRejected("too_large")
			return nil, "", predictor.TooLarge(predictor.MsgTooLarge)
		case errors.Is(err, http.ErrNotMultipart):
			countRejected("not_multipart")
			return nil, "", predictor.BadInput("Content-Type harus multipart/form-data")
		default:
			countRejected("bad_multipart")
			return nil, "", predictor.BadInput("Gagal membaca form upload")
		}
	}
	defer r.MultipartForm.RemoveAll()

	f, fh, err := r.FormFile(uploadField)
	if err != nil {
		countRejected("missing_file")
		return nil, "", predictor.BadInput(predictor.MsgMissingFile)
	}
	defer f.Close()

	if !isImageContentType(fh) {
		countRejected("content_type")
		return nil, fh.Filename, predictor.BadInput(predictor.MsgNotAnImage)
	}
	if fh.Size > limit {
		countRejected("too_large")
		return nil, fh.Filename, predictor.TooLarge(predictor.MsgTooLarge)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fh.Filename, predictor.BadInput("Gagal membaca file upload")
	}
	return data, fh.Filename, nil
}

func isImageContentType(fh *multipart.FileHeader) bool {
	ct := strings.TrimSpace(fh.Header.Get("Content-Type"))
	return strings.HasPrefix(strings.ToLower(ct), "image/")
}

// fail maps err to a status. Client errors carry their own message; all
// other errors get a generic detail and are only logged.
func (h *handlers) fail(w http.ResponseWriter, rl *requestLogger, err error) {
	var he HTTPError
	if errors.As(err, &he) {
		writeJSONError(w, he.StatusCode(), he.Error())
		rl.end(he.StatusCode(), err)
		return
	}
	writeJSONError(w, http.StatusInternalServerError, detailPredictFailed)
	rl.end(http.StatusInternalServerError, err)
}
