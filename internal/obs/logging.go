// Package obs carries the ambient logging and metrics stack shared by every
// engine and HTTP handler in this repository.
package obs

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with dispatch-core specific helpers for request,
// quote and pricing scoped fields.
type Logger struct {
	*zap.Logger
	service string
}

// requestIDKey is the context key carrying the inbound request ID.
type requestIDKey struct{}

// Config controls logger construction; zero value yields production
// defaults.
type Config struct {
	Level       string
	ServiceName string
	Environment string
	Format      string // "json" or "console"
}

// New builds a Logger, applying defaults for any unset Config field.
func New(cfg Config) *Logger {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "dispatch-core"
	}
	if cfg.Environment == "" {
		cfg.Environment = getEnv("DISPATCH_ENV", "development")
	}
	if cfg.Format == "" {
		cfg.Format = "json"
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var enc zapcore.Encoder
	if cfg.Format == "console" {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), level)
	base := zap.New(core, zap.AddCaller()).With(
		zap.String("service", cfg.ServiceName),
		zap.String("environment", cfg.Environment),
	)

	return &Logger{Logger: base, service: cfg.ServiceName}
}

// WithRequestID returns a child logger annotated with the request ID.
func (l *Logger) WithRequestID(id string) *Logger {
	return &Logger{Logger: l.Logger.With(zap.String("request_id", id)), service: l.service}
}

// WithContext pulls a request ID out of ctx, if present, and annotates it.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return l.WithRequestID(id)
	}
	return l
}

// ContextWithRequestID stores id on ctx for later retrieval by WithContext.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// WithQuote annotates a logger with the quote being acted on.
func (l *Logger) WithQuote(quoteID string) *Logger {
	return &Logger{Logger: l.Logger.With(zap.String("quote_id", quoteID)), service: l.service}
}

// WithOrg annotates a logger with the tenant organization.
func (l *Logger) WithOrg(orgID string) *Logger {
	return &Logger{Logger: l.Logger.With(zap.String("org_id", orgID)), service: l.service}
}

// ProviderCallLogged logs a best-effort outcome for an external provider
// call (routing, toll, fuel price) without ever surfacing the error as a
// pricing failure — callers always continue with an estimate.
func (l *Logger) ProviderCallLogged(provider string, err error, fellBackToEstimate bool) {
	if err != nil {
		l.Warn("external provider call degraded to estimate",
			zap.String("provider", provider),
			zap.Error(err),
			zap.Bool("fallback_to_estimate", fellBackToEstimate),
		)
		return
	}
	l.Debug("external provider call succeeded", zap.String("provider", provider))
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
