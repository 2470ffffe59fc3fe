package logutil

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileName = "tamshai_desktop.log"
	maxSizeMB   = 10
	maxBackups  = 3
	maxAgeDays  = 30
)

type Options struct {
	Level      string
	EnableFile bool
	LogDir     string
}

// Setup builds the process logger: console on stderr, plus a size-rotated
// file when enabled. Never fails the process; falls back to console-only.
func Setup(opts Options) (*zap.Logger, error) {
	level := parseLevel(opts.Level)

	consoleEncoder := zapcore.NewConsoleEncoder(consoleEncoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stderr), level),
	}

	if opts.EnableFile {
		dir := opts.LogDir
		if dir == "" {
			dir = "."
		}
		fileWriter := &lumberjack.Logger{
			Filename:   filepath.Join(dir, logFileName),
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}
		fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(fileWriter), level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return logger, nil
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

// RedactURL masks the payload of a deep-link URL so authorization codes do
// not land in logs. Keeps the scheme and the first path segment.
func RedactURL(u string) string {
	if u == "" {
		return ""
	}
	if i := strings.Index(u, "?"); i >= 0 {
		return u[:i] + "?********"
	}
	if len(u) > 40 {
		return u[:40] + "..."
	}
	return u
}
