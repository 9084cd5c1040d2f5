// Package logger configures the process-wide zerolog logger and carries
// request ids through contexts.
package logger

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const requestIDKey contextKey = "request_id"

const milliTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// maxBodyLog caps how much of a request or response body is written at debug level.
const maxBodyLog = 1000

// Options controls Init. The zero value logs at info to stdout.
type Options struct {
	Level string
	File  string
	Dev   bool
}

// OptionsFromEnv reads LOG_LEVEL, LOG_FILE and DEV.
func OptionsFromEnv() Options {
	dev := os.Getenv("DEV") == "true" || os.Getenv("DEV_MODE") == "true"
	level := os.Getenv("LOG_LEVEL")
	if level == "" && dev {
		level = "debug"
	}
	return Options{Level: level, File: os.Getenv("LOG_FILE"), Dev: dev}
}

// Init installs the global logger.
func Init(opts Options) {
	zerolog.TimeFieldFormat = milliTimeFormat
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }

	const callerWidth = 30
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		path := fmt.Sprintf("%s:%d", filepath.Base(file), line)
		if len(path) >= callerWidth {
			return path[len(path)-callerWidth:]
		}
		return path + strings.Repeat(" ", callerWidth-len(path))
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: milliTimeFormat,
		NoColor:    !opts.Dev,
	}
	if opts.File != "" {
		f, ferr := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if ferr == nil {
			output = io.MultiWriter(output, f)
		}
	}

	log.Logger = log.Output(output).With().Caller().Logger()

	log.Info().
		Str("level", level.String()).
		Bool("dev", opts.Dev).
		Msg("Logger initialized")
}

// Component returns the global logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return log.Logger.With().Str("component", name).Logger()
}

// NewRequestID generates a random 8-character alphanumeric id.
func NewRequestID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 8

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("req%06d", time.Now().UnixNano()%1000000)
	}
	for i := range b {
		b[i] = charset[b[i]%byte(len(charset))]
	}
	return string(b)
}

// WithRequestID returns a new context with the given request ID stored.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the request ID from context, or empty string.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ForRequest returns a logger enriched with the request ID from context.
func ForRequest(ctx context.Context) zerolog.Logger {
	id := RequestIDFromContext(ctx)
	if id == "" {
		return log.Logger
	}
	return log.Logger.With().Str("requestId", id).Logger()
}

var secretField = regexp.MustCompile(`("(?:password|token)"\s*:\s*)"(?:[^"\\]|\\.)*"`)

// Redact masks password and token values in a JSON body.
func Redact(body []byte) string {
	return secretField.ReplaceAllString(string(body), `$1"***"`)
}

// LogBody writes a redacted, truncated body at debug level under the given field.
func LogBody(logger zerolog.Logger, field string, body []byte) {
	if len(body) == 0 {
		return
	}
	truncated := len(body) > maxBodyLog
	if truncated {
		body = body[:maxBodyLog]
	}
	logger.Debug().Str(field, Redact(body)).Bool("truncated", truncated).Msg("Body")
}
