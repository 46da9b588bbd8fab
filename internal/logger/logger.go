package logger

import (
	"context"
	"log"
	"os"
	"strings"
)

// Logger defines leveled logging used across the pipeline
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
}

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

func parseLevel(s string) level {
	switch strings.ToLower(s) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

type implLogger struct {
	logger *log.Logger
	level  level
}

// New creates a new Logger instance. Unknown levels default to info.
func New(lvl string) Logger {
	return &implLogger{
		logger: log.New(os.Stderr, "", log.LstdFlags),
		level:  parseLevel(lvl),
	}
}

func (l *implLogger) shouldLog(lvl level) bool {
	return lvl >= l.level
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog(levelDebug) {
		l.logger.Printf("[DEBUG] "+msg, args...)
	}
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog(levelInfo) {
		l.logger.Printf("[INFO] "+msg, args...)
	}
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog(levelWarn) {
		l.logger.Printf("[WARN] "+msg, args...)
	}
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog(levelError) {
		l.logger.Printf("[ERROR] "+msg, args...)
	}
}
