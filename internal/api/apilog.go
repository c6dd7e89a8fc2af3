package api

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the package-level API logger, writing JSON-line entries to a
// dedicated log file. It is nil until InitAPILogger is called; all log
// functions are no-ops when Logger is nil.
var Logger *zerolog.Logger

var loggerOnce sync.Once

// InitAPILogger opens (or creates) the dedicated API log file at logPath.
// It must be called once at startup before any API requests are made.
// The directory is created with mode 0700 if it does not exist.
// Returns a non-nil error only when the file cannot be opened; in that case
// logging is silently disabled (all other operations continue normally).
func InitAPILogger(logPath string) error {
	var initErr error
	loggerOnce.Do(func() {
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			initErr = fmt.Errorf("api logger: mkdir %s: %w", filepath.Dir(logPath), err)
			return
		}
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			initErr = fmt.Errorf("api logger: open %s: %w", logPath, err)
			return
		}
		l := zerolog.New(f).With().Timestamp().Logger()
		Logger = &l
	})
	return initErr
}

// LogRequest records a completed HTTP request (success or API-level error).
func LogRequest(label string, statusCode int, duration time.Duration, attempt int, circState string, reqErr error) {
	if Logger == nil {
		return
	}
	event := "request"
	if attempt > 0 {
		event = "retry"
	}
	e := Logger.Info().
		Str("event", event).
		Str("label", label).
		Int("status_code", statusCode).
		Int64("duration_ms", duration.Milliseconds()).
		Int("attempt", attempt).
		Str("circuit_state", circState)
	if reqErr != nil {
		e = e.Str("error", reqErr.Error())
	}
	e.Msg("api_call")
}

// LogRateLimitWait records that a request was delayed by the rate limiter.
func LogRateLimitWait(label string, waited time.Duration) {
	if Logger == nil {
		return
	}
	Logger.Info().
		Str("event", "rate_limit_wait").
		Str("label", label).
		Int64("rate_limited_ms", waited.Milliseconds()).
		Msg("api_call")
}

// LogCircuitStateChange records a circuit breaker state transition.
func LogCircuitStateChange(event, label, fromState, toState string) {
	if Logger == nil {
		return
	}
	Logger.Warn().
		Str("event", event).
		Str("label", label).
		Str("circuit_state", toState).
		Str("from_state", fromState).
		Msg("api_call")
}

// LogCircuitRejected records a request that was rejected immediately because
// the circuit breaker is open.
func LogCircuitRejected(label string) {
	if Logger == nil {
		return
	}
	Logger.Warn().
		Str("event", "circuit_rejected").
		Str("label", label).
		Str("circuit_state", "open").
		Str("error", ErrCircuitOpen.Error()).
		Msg("api_call")
}

// LogPageFailure records a page fetch that degraded to an empty page during
// exhaustive aggregation.
func LogPageFailure(label string, page int, err error) {
	if Logger == nil {
		return
	}
	Logger.Warn().
		Str("event", "page_failure").
		Str("label", label).
		Int("page", page).
		Str("error", err.Error()).
		Msg("api_call")
}

// LogWarn records a free-form warning (unknown filter value, parse fallback).
func LogWarn(event, detail string) {
	if Logger == nil {
		return
	}
	Logger.Warn().Str("event", event).Str("detail", detail).Msg("api_call")
}
