// Package logging wraps a process-wide zerolog logger.
//
// Call Init once from main; until then a JSON logger at info level writes
// to stderr. Terminate every event with Msg or Send:
//
//	logging.Info().Str("id", id).Msg("Movie created")
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Config struct {
	Level  string
	Format string // json or console
	Output io.Writer
}

type contextKey string

const requestIDKey contextKey = "request_id"

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	Init(Config{})
}

func Init(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := cfg.Output
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.RFC3339}
	}

	mu.Lock()
	defer mu.Unlock()
	log = zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

func Debug() *zerolog.Event { return Logger().Debug() }
func Info() *zerolog.Event  { return Logger().Info() }
func Warn() *zerolog.Event  { return Logger().Warn() }
func Error() *zerolog.Event { return Logger().Error() }
func Fatal() *zerolog.Event { return Logger().Fatal() }

// Ctx returns the global logger tagged with the request ID carried by ctx.
func Ctx(ctx context.Context) *zerolog.Logger {
	l := Logger()
	if id := RequestIDFromContext(ctx); id != "" {
		tagged := l.With().Str("request_id", id).Logger()
		return &tagged
	}
	return l
}

func GenerateRequestID() string {
	return uuid.New().String()
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
