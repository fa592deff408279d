package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	AppName string
	Env     string
	Level   string // debug, info, warn, error
	LogPath string // empty disables the rotated JSON file
}

var (
	once   sync.Once
	logger *zap.Logger
)

// Init builds the process logger once. Later calls are no-ops.
func Init(opts Options) error {
	var err error
	once.Do(func() {
		logger, err = New(opts)
	})
	return err
}

// Get returns the process logger, or a no-op logger before Init.
func Get() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// New builds a logger writing colored console output to stdout and, when
// LogPath is set, JSON lines to a size-rotated file.
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.CallerKey = "caller"
	encoderCfg.LevelKey = "level"
	encoderCfg.MessageKey = "message"

	consoleCfg := encoderCfg
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.AddSync(os.Stdout), level),
	}

	if opts.LogPath != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.LogPath,
			MaxSize:    50,
			MaxBackups: 7,
			MaxAge:     30,
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), fileWriter, level))
	}

	return zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(
			zap.String("app", opts.AppName),
			zap.String("env", opts.Env),
		),
	), nil
}
