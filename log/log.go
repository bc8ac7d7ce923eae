// Package log provides a thin facade around zap. A process-wide default
// logger is configured once at startup (ResetDefault) and used via the
// package level functions; subsystems get their own named child loggers.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

type (
	Logger struct {
		l     *zap.Logger
		level zap.AtomicLevel
	}
	Level  = zapcore.Level
	Field  = zap.Field
	Option = zap.Option
)

const (
	DebugLevel = zap.DebugLevel
	InfoLevel  = zap.InfoLevel
	WarnLevel  = zap.WarnLevel
	ErrorLevel = zap.ErrorLevel
	FatalLevel = zap.FatalLevel
)

var (
	Any        = zap.Any
	String     = zap.String
	Int        = zap.Int
	Int32      = zap.Int32
	Uint       = zap.Uint
	Uint32     = zap.Uint32
	Float      = zap.Float64
	Float32    = zap.Float32
	Bool       = zap.Bool
	Time       = zap.Time
	Duration   = zap.Duration
	ErrorField = zap.Error

	WithCaller    = zap.WithCaller
	AddCallerSkip = zap.AddCallerSkip
)

func ParseLevel(text string) (Level, error) {
	return zapcore.ParseLevel(text)
}

// New creates a json-encoded logger writing to w. Used for production runs.
func New(w io.Writer, level Level, opts ...Option) *Logger {
	if w == nil {
		panic("the writer is nil")
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	atomicLevel := zap.NewAtomicLevelAt(level)
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg),
		zapcore.AddSync(w),
		atomicLevel,
	)
	return &Logger{l: zap.New(core, opts...), level: atomicLevel}
}

// DevLogger creates a console-encoded logger writing to w.
func DevLogger(w io.Writer, level Level, opts ...Option) *Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	atomicLevel := zap.NewAtomicLevelAt(level)
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.AddSync(w),
		atomicLevel,
	)
	return &Logger{l: zap.New(core, opts...), level: atomicLevel}
}

// WithFilterRules wraps the logger core with zapfilter rules
// (for example "debug:overtake,pipeline error:*") so that named
// subsystem loggers can be tuned without touching the global level.
func (l *Logger) WithFilterRules(rules string) (*Logger, error) {
	filter, err := zapfilter.ParseRules(rules)
	if err != nil {
		return nil, fmt.Errorf("invalid log filter rules %q: %w", rules, err)
	}
	ret := &Logger{
		l: l.l.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapfilter.NewFilteringCore(core, filter)
		})),
		level: l.level,
	}
	return ret, nil
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{l: l.l.Named(name), level: l.level}
}

func (l *Logger) SetLevel(level Level) { l.level.SetLevel(level) }

func (l *Logger) Debug(msg string, fields ...Field) { l.l.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.l.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.l.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.l.Error(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...Field) { l.l.Fatal(msg, fields...) }

func (l *Logger) Sync() error { return l.l.Sync() }

var (
	std    = DevLogger(os.Stderr, InfoLevel)
	mu     sync.Mutex
	Debug  = std.Debug
	Info   = std.Info
	Warn   = std.Warn
	Error  = std.Error
	Fatal  = std.Fatal
	Fatalf = func(template string, args ...any) { std.l.Sugar().Fatalf(template, args...) }
	Debugw = func(msg string, kv ...any) { std.l.Sugar().Debugw(msg, kv...) }
)

func Default() *Logger { return std }

// ResetDefault replaces the package level default logger.
// Not safe for concurrent use with logging calls; call it once during startup.
func ResetDefault(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	std = l
	Debug = std.Debug
	Info = std.Info
	Warn = std.Warn
	Error = std.Error
	Fatal = std.Fatal
	Fatalf = func(template string, args ...any) { std.l.Sugar().Fatalf(template, args...) }
	Debugw = func(msg string, kv ...any) { std.l.Sugar().Debugw(msg, kv...) }
}

type ctxKey struct{}

func AddToContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func GetFromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return std
}

func Sync() error { return std.Sync() }
