package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type contextKey struct{}

// requestIDKey carries the request ID through the context.
var requestIDKey = contextKey{}

var base = newBase()

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// Setup configures the process-wide logger for the given environment.
// Production environments emit JSON, everything else stays human readable.
func Setup(environment, level string) {
	if strings.EqualFold(environment, "production") {
		base.SetFormatter(&logrus.JSONFormatter{})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)
}

// WithRequestId returns a context carrying the given request ID. The ID shows
// up as the "request_id" field on every entry derived from the context.
func WithRequestId(ctx context.Context, id interface{}) context.Context {
	return context.WithValue(ctx, requestIDKey, fmt.Sprintf("%v", id))
}

// Logger returns a logrus entry enriched with whatever request metadata the
// context carries.
func Logger(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(base)
	if ctx == nil {
		return entry
	}
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		entry = entry.WithField("request_id", id)
	}
	return entry
}
