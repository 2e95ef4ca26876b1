package logger

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	_defaultMaxSize    = 100
	_defaultMaxBackups = 7
	_defaultMaxAge     = 30
)

// Config is the subset of application settings the logger needs.
type Config struct {
	Service  string
	Env      string
	Level    string
	Filename string
}

type ZapLogger struct {
	logger *zap.Logger
	level  zapcore.Level

	maxSize    int
	maxBackups int
	maxAge     int
}

type Option func(*ZapLogger)

func MaxSize(size int) Option {
	return func(l *ZapLogger) { l.maxSize = size }
}

func MaxBackups(backups int) Option {
	return func(l *ZapLogger) { l.maxBackups = backups }
}

func MaxAge(age int) Option {
	return func(l *ZapLogger) { l.maxAge = age }
}

func (l *ZapLogger) validate() error {
	if l.maxSize <= 0 {
		return errors.New("invalid maxSize: must be > 0")
	}
	if l.maxBackups <= 0 {
		return errors.New("invalid maxBackups: must be > 0")
	}
	if l.maxAge <= 0 {
		return errors.New("invalid maxAge: must be > 0")
	}
	return nil
}

// New builds a JSON logger writing to stdout and, when cfg.Filename is
// set, to a rotated file as well.
func New(cfg Config, opts ...Option) (Logger, error) {
	const op = "logger.New"

	zl := &ZapLogger{
		maxSize:    _defaultMaxSize,
		maxBackups: _defaultMaxBackups,
		maxAge:     _defaultMaxAge,
		level:      zapcore.InfoLevel,
	}
	for _, opt := range opts {
		opt(zl)
	}
	if err := zl.validate(); err != nil {
		return nil, fmt.Errorf("%s: validation: %w", op, err)
	}

	if cfg.Level != "" {
		lvl, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("%s: parse level: %w", op, err)
		}
		zl.level = lvl
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		FunctionKey:   zapcore.OmitKey,
		MessageKey:    "msg",
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.LowercaseLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}

	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if cfg.Filename != "" {
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    zl.maxSize,
			MaxBackups: zl.maxBackups,
			MaxAge:     zl.maxAge,
			Compress:   true,
		}))
	}

	level := zl.level
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.NewMultiWriteSyncer(sinks...),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= level
		}),
	)

	zl.logger = zap.New(core,
		zap.Fields(
			zap.String("service", cfg.Service),
			zap.String("env", cfg.Env),
		),
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zap.ErrorLevel),
	)
	return zl, nil
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() Logger {
	return &ZapLogger{logger: zap.NewNop()}
}

// FromZap wraps an existing zap logger, e.g. one built with zaptest.
func FromZap(z *zap.Logger) Logger {
	return &ZapLogger{logger: z}
}

func (l *ZapLogger) Zap() *zap.Logger { return l.logger }

func (l *ZapLogger) Debugw(msg string, keysAndValues ...any) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l *ZapLogger) Infow(msg string, keysAndValues ...any) {
	l.logger.Sugar().Infow(msg, keysAndValues...)
}

func (l *ZapLogger) Warnw(msg string, keysAndValues ...any) {
	l.logger.Sugar().Warnw(msg, keysAndValues...)
}

func (l *ZapLogger) Errorw(msg string, keysAndValues ...any) {
	l.logger.Sugar().Errorw(msg, keysAndValues...)
}

func (l *ZapLogger) With(keysAndValues ...any) Logger {
	return &ZapLogger{logger: l.logger.Sugar().With(keysAndValues...).Desugar(), level: l.level}
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}
