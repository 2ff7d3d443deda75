package logging

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger *zap.Logger

	salt     string
	saltOnce sync.Once
)

// Initialize builds the global logger at the given level.
// Valid levels are "debug", "info", "warn", "error" and "silent".
// Unknown levels fall back to info.
func Initialize(level string) error {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "silent" {
		Set(zap.NewNop())
		return nil
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	Set(built)
	return nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Set replaces the global logger. Tests use it to install an observer core.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// GetLogger returns the global logger, or a nop logger before Initialize.
func GetLogger() *zap.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// Named returns a child of the global logger scoped to a component.
func Named(component string) *zap.Logger {
	return GetLogger().Named(component)
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Sync flushes any buffered log entries
func Sync() {
	_ = GetLogger().Sync()
}

// Anonymize hashes a visitor identifier with the process salt.
// The result is stable for the lifetime of the process.
func Anonymize(value string) string {
	if value == "" {
		return ""
	}
	saltOnce.Do(func() {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			panic(fmt.Sprintf("logging: read salt: %v", err))
		}
		salt = hex.EncodeToString(b)
	})
	sum := sha256.Sum256([]byte(value + salt))
	return hex.EncodeToString(sum[:])[:16]
}
