// Package logger is the leveled logger shared by the server, the CLI and the a2a adapter.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelFatal: "fatal",
}

var (
	mu      sync.RWMutex
	std     = log.New(os.Stdout, "", 0)
	current = LevelInfo
)

// Init sets the minimum level from its name. Unknown names fall back to info.
func Init(name string) {
	mu.Lock()
	defer mu.Unlock()
	current = ParseLevel(name)
}

// ParseLevel maps a case-insensitive level name to a Level.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// SetOutput redirects log output. Tests use it to capture lines.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	std = log.New(w, "", 0)
}

// LevelString returns the name of the active level.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	return levelNames[current]
}

func enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= current
}

func output(l Level, format string, v ...interface{}) {
	mu.RLock()
	out := std
	mu.RUnlock()
	prefix := fmt.Sprintf("%s [%s] ", time.Now().UTC().Format(time.RFC3339), strings.ToUpper(levelNames[l]))
	out.Printf(prefix+format, v...)
}

func Debugf(format string, v ...interface{}) {
	if enabled(LevelDebug) {
		output(LevelDebug, format, v...)
	}
}

func Infof(format string, v ...interface{}) {
	if enabled(LevelInfo) {
		output(LevelInfo, format, v...)
	}
}

func Warnf(format string, v ...interface{}) {
	if enabled(LevelWarn) {
		output(LevelWarn, format, v...)
	}
}

func Errorf(format string, v ...interface{}) {
	if enabled(LevelError) {
		output(LevelError, format, v...)
	}
}

// Fatalf always logs and exits the process.
func Fatalf(format string, v ...interface{}) {
	output(LevelFatal, format, v...)
	os.Exit(1)
}
