package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------

const (
	levelDebug = iota
	levelInfo
	levelWarning
	levelError
)

var levelNames = map[string]int{
	"DEBUG":   levelDebug,
	"INFO":    levelInfo,
	"WARNING": levelWarning,
	"WARN":    levelWarning,
	"ERROR":   levelError,
}

// -----------------------------------------------------------------------------

// Logger provides structured logging functionality
type Logger struct {
	name   string
	logger *log.Logger
	level  int
}

// -----------------------------------------------------------------------------

// NewLogger creates a new Logger instance. config may be nil or *models.MConfig;
// its LogLevel sets the threshold.
func NewLogger(config interface{}, name string) *Logger {
	return NewLoggerWithWriter(config, name, os.Stdout)
}

// NewLoggerWithWriter is NewLogger with an explicit sink.
func NewLoggerWithWriter(config interface{}, name string, w io.Writer) *Logger {
	l := &Logger{
		name:   name,
		logger: log.New(w, "", log.LstdFlags),
		level:  levelInfo,
	}
	if cfg, ok := config.(*models.MConfig); ok && cfg != nil {
		l.level = ParseLevel(cfg.LogLevel)
	}
	return l
}

// -----------------------------------------------------------------------------

// ParseLevel maps a config level name to its threshold, INFO when unknown.
func ParseLevel(name string) int {
	if lvl, ok := levelNames[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return lvl
	}
	return levelInfo
}

// -----------------------------------------------------------------------------

// Named returns a logger sharing this sink and level under another name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{name: name, logger: l.logger, level: l.level}
}

// -----------------------------------------------------------------------------

func (l *Logger) Debug(format string, args ...interface{}) {
	l.print(levelDebug, "DEBUG", format, args...)
}

// -----------------------------------------------------------------------------

func (l *Logger) Warning(format string, args ...interface{}) {
	l.print(levelWarning, "WARNING", format, args...)
}

// -----------------------------------------------------------------------------

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.print(levelInfo, "INFO", format, args...)
}

// -----------------------------------------------------------------------------

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.print(levelError, "ERROR", format, args...)
}

// -----------------------------------------------------------------------------

// Critical logs critical errors and exits the application
func (l *Logger) Critical(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] CRITICAL: %s", l.name, msg)
	os.Exit(1)
}

// -----------------------------------------------------------------------------

func (l *Logger) print(level int, tag string, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] %s: %s", l.name, tag, msg)
}
