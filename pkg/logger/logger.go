// Package logger holds the process-wide default zap logger of paikit.
//
// Library components take a *zap.Logger explicitly.
// Default is for callers which do not build one by themselves.
package logger

import (
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLogLevel is the environment variable to set level of the default logger.
const EnvLogLevel = "PAIKIT_LOG_LEVEL"

var (
	mu       sync.Mutex
	instance *zap.Logger
)

// New builds a logger writing human readable lines into w.
func New(w io.Writer, level zapcore.LevelEnabler) *zap.Logger {
	encconf := zap.NewDevelopmentEncoderConfig()
	encconf.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encconf),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core).Named("paikit")
}

// ParseLevel parses level names (debug, info, warn, error).
//
// Unknown or empty names are taken as info.
func ParseLevel(name string) zapcore.Level {
	var lv zapcore.Level
	if err := lv.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return zapcore.InfoLevel
	}
	return lv
}

func defaultLocked() *zap.Logger {
	if instance == nil {
		instance = New(os.Stderr, ParseLevel(os.Getenv(EnvLogLevel)))
	}
	return instance
}

// Default returns the process-wide logger, building it at the first call.
func Default() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return defaultLocked()
}

// SetDefault replaces the process-wide logger.
func SetDefault(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	instance = l
}

// Reset drops the process-wide logger. The next Default builds a new one.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		instance.Sync()
	}
	instance = nil
}

// Null is a logger discarding everything.
func Null() *zap.Logger {
	return zap.NewNop()
}

// Std returns *log.Logger writing into l at info level.
func Std(l *zap.Logger, prefix string) *log.Logger {
	std := zap.NewStdLog(l)
	std.SetPrefix(prefix)
	return std
}
