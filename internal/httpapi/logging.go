package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

// ParseLevel maps a level name to a LogLevel. Unknown names mean info.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "off", "disabled":
		return LevelOff
	case "error", "warn", "warning":
		return LevelError
	case "info", "":
		return LevelInfo
	case "debug", "trace":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// requestLogLevel applies per-request overrides on top of def.
func requestLogLevel(r *http.Request, def LogLevel) LogLevel {
	if v := r.URL.Query().Get("log"); v != "" {
		if v == "1" {
			return LevelDebug
		}
		return ParseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return ParseLevel(v)
	}
	return def
}

// requestLogger logs the start and end of a request at lvl.
type requestLogger struct {
	log   zerolog.Logger
	lvl   LogLevel
	r     *http.Request
	start time.Time
}

func newRequestLogger(log zerolog.Logger, def LogLevel, r *http.Request) *requestLogger {
	return &requestLogger{log: log, lvl: requestLogLevel(r, def), r: r, start: time.Now()}
}

func (rl *requestLogger) event(status int) *zerolog.Event {
	var e *zerolog.Event
	switch {
	case status >= 500 && rl.lvl >= LevelError:
		e = rl.log.Error()
	case rl.lvl >= LevelInfo:
		e = rl.log.Info()
	default:
		return nil
	}
	e = e.Str("path", rl.r.URL.Path)
	if rid := middleware.GetReqID(rl.r.Context()); rid != "" {
		e = e.Str("request_id", rid)
	}
	return e
}

func (rl *requestLogger) begin(fields func(*zerolog.Event)) {
	if rl.lvl < LevelInfo {
		return
	}
	e := rl.event(0)
	if fields != nil {
		fields(e)
	}
	e.Msg("predict start")
}

func (rl *requestLogger) end(status int, err error) {
	e := rl.event(status)
	if e == nil {
		return
	}
	e = e.Int("status", status).Dur("dur", time.Since(rl.start))
	if err != nil {
		e = e.Err(err)
	}
	e.Msg("predict end")
}

// detail returns an event for verbose per-request fields, or nil unless the
// request asked for debug logging.
func (rl *requestLogger) detail() *zerolog.Event {
	if rl.lvl < LevelDebug {
		return nil
	}
	return rl.event(0)
}
