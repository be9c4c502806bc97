package logx

import (
	"context"
	"fmt"
	"strings"

	"quotes-aggregator/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
	level  zap.AtomicLevel
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	traceIDKey   ctxKey = "trace_id"
)

func init() {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	appCfg := config.Load()
	if appCfg.LogLevel != "" {
		_ = zapCfg.Level.UnmarshalText([]byte(strings.ToLower(appCfg.LogLevel)))
	}

	level = zapCfg.Level

	var err error
	logger, err = zapCfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
}

// SetLevel changes the level of the package logger at runtime. Binaries
// call it after loading .env, which happens after this package's init.
func SetLevel(name string) error {
	if name == "" {
		return fmt.Errorf("empty log level")
	}
	return level.UnmarshalText([]byte(strings.ToLower(name)))
}

// L returns the package-level logger instance.
func L() *zap.Logger {
	return logger
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey, id)
}

func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

func TraceID(ctx context.Context) string {
	v, _ := ctx.Value(traceIDKey).(string)
	return v
}

// WithFields returns the base logger enriched with request and trace IDs
// found in ctx.
func WithFields(ctx context.Context) *zap.Logger {
	l := logger
	if rid := RequestID(ctx); rid != "" {
		l = l.With(zap.String("request_id", rid))
	}
	if tid := TraceID(ctx); tid != "" {
		l = l.With(zap.String("trace_id", tid))
	}
	return l
}
