package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MaxLogBytes is the size above which the log file is rotated at startup.
const MaxLogBytes int64 = 5 << 20

// Options configures the process logger.
type Options struct {
	Level string
	File  string
}

// New builds the process logger. Output goes to stderr and, when set, to
// Options.File after rotating it if it grew past MaxLogBytes.
func New(options Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(options.Level))
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", options.Level, err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.Encoding = "console"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	if options.File != "" {
		RotateLogIfNeeded(options.File, MaxLogBytes)
		config.OutputPaths = append(config.OutputPaths, options.File)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// RotateLogIfNeeded renames path to path.old when it exceeds maxBytes.
// Failures leave the current file in place.
func RotateLogIfNeeded(path string, maxBytes int64) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.Size() <= maxBytes {
		return
	}

	oldPath := path + ".old"
	_ = os.Remove(oldPath)
	if err := os.Rename(path, oldPath); err != nil {
		fmt.Fprintf(os.Stderr, "rotate log %s: %v\n", path, err)
	}
}
