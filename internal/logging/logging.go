// Package logging は CLI とサーバで共有する zap ロガーを提供します。
package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	initOnce sync.Once
	logger   *zap.Logger
	level    = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	getenv   = os.Getenv
)

// L は共有ロガーを返します。初回呼び出し時に DSLINT_LOG_* から構築します。
func L() *zap.Logger {
	initOnce.Do(func() {
		logger = newLogger()
	})
	return logger
}

// Sync はバッファ済みのログを書き出します。
func Sync() error {
	if logger != nil {
		return logger.Sync()
	}
	return nil
}

// SetLevel は実行中にログレベルを切り替えます。
func SetLevel(name string) error {
	lv, ok := parseLevel(name)
	if !ok {
		return fmt.Errorf("invalid log level: %q", name)
	}
	level.SetLevel(lv)
	return nil
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()

	if lv, ok := parseLevel(getenv("DSLINT_LOG_LEVEL")); ok {
		level.SetLevel(lv)
	}
	config.Level = level

	format := strings.ToLower(getenv("DSLINT_LOG_FORMAT"))
	if format == "json" || format == "structured" {
		config.Encoding = "json"
	} else {
		config.Encoding = "console"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	config.DisableStacktrace = true

	if strings.EqualFold(getenv("DSLINT_LOG_SOURCE"), "true") {
		config.Development = true
	} else {
		config.DisableCaller = true
	}

	// stdout carries lint results
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	l, err := config.Build()
	if err != nil {
		l, _ = zap.NewDevelopment()
	}
	return l
}

func parseLevel(value string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn", "warning":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	}
	return zapcore.WarnLevel, false
}
