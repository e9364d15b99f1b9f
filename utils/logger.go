package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// ANSI colour codes for terminal output
const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	grey   = "\033[90m"
	cyan   = "\033[36m"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	logMu    sync.Mutex
	logOut   io.Writer = os.Stdout
	logLevel           = LevelInfo
)

// ParseLevel maps "debug", "info", "warn" and "error" to a Level.
// Anything else is treated as info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func SetLevel(l Level) {
	logMu.Lock()
	defer logMu.Unlock()
	logLevel = l
}

// SetOutput redirects log lines, mostly for tests. It returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	logMu.Lock()
	defer logMu.Unlock()
	prev := logOut
	logOut = w
	return prev
}

func ts() string {
	return time.Now().Format("15:04:05")
}

func logf(l Level, colour, tag, format string, a ...interface{}) {
	logMu.Lock()
	defer logMu.Unlock()
	if l < logLevel {
		return
	}
	fmt.Fprintf(logOut, "%s[%s] %-7s %s%s\n", colour, ts(), tag, fmt.Sprintf(format, a...), reset)
}

func Debug(format string, a ...interface{}) {
	logf(LevelDebug, grey, "[DEBUG]", format, a...)
}

func Info(format string, a ...interface{}) {
	logf(LevelInfo, blue, "[INFO]", format, a...)
}

func Success(format string, a ...interface{}) {
	logf(LevelInfo, green, "[OK]", format, a...)
}

func Warn(format string, a ...interface{}) {
	logf(LevelWarn, yellow, "[WARN]", format, a...)
}

func Error(format string, a ...interface{}) {
	logf(LevelError, red, "[ERROR]", format, a...)
}

func Section(title string) {
	logMu.Lock()
	defer logMu.Unlock()
	if LevelInfo < logLevel {
		return
	}
	fmt.Fprintf(logOut, "\n%s[%s] ══════════ %s ══════════%s\n\n", cyan, ts(), title, reset)
}
