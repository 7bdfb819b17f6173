package logger

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents a log severity.
//
// The gateway configuration uses the names Debug, Info, Warning, Error and
// Critical (case-insensitive) for the loglevel key; they map onto these
// levels one to one.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

var (
	mu           sync.RWMutex
	currentLevel = LevelInfo
	logger       = stdlog.New(os.Stdout, "", 0)
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a loglevel configuration value to a Level.
// It accepts the configuration spellings (Debug, Info, Warning, Error,
// Critical) in any case, plus the common WARN abbreviation.
func ParseLevel(level string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LevelDebug, true
	case "INFO":
		return LevelInfo, true
	case "WARNING", "WARN":
		return LevelWarning, true
	case "ERROR":
		return LevelError, true
	case "CRITICAL":
		return LevelCritical, true
	}
	return LevelInfo, false
}

// SetLevel sets the minimum level to output. Unknown values are ignored so
// that a bad runtime refresh cannot silence the log.
func SetLevel(level string) {
	l, ok := ParseLevel(level)
	if !ok {
		return
	}
	mu.Lock()
	currentLevel = l
	mu.Unlock()
}

// GetLevel returns the current minimum level.
func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return currentLevel
}

// DebugMode reports whether the logger runs at Debug level. The Debug
// loglevel also enables the framework debug mode of the consuming process.
func DebugMode() bool {
	return GetLevel() == LevelDebug
}

// SetOutput redirects log output. Used by tests and by the CLI when a log
// file is configured.
func SetOutput(w io.Writer) {
	mu.Lock()
	logger = stdlog.New(w, "", 0)
	mu.Unlock()
}

func log(level Level, format string, v ...any) {
	mu.RLock()
	min := currentLevel
	out := logger
	mu.RUnlock()

	if level < min {
		return
	}

	timestamp := time.Now().Format("2006-01-02T15:04:05")
	prefix := fmt.Sprintf("[%s] [%s] ", timestamp, level.String())
	message := fmt.Sprintf(format, v...)
	out.Println(prefix + message)
}

func Debug(format string, v ...any) {
	log(LevelDebug, format, v...)
}

func Info(format string, v ...any) {
	log(LevelInfo, format, v...)
}

func Warning(format string, v ...any) {
	log(LevelWarning, format, v...)
}

func Error(format string, v ...any) {
	log(LevelError, format, v...)
}

func Critical(format string, v ...any) {
	log(LevelCritical, format, v...)
}
