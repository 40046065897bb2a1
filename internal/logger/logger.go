// Package logger provides leveled logging for lens on top of pterm printers.
package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

// Log is the process-wide logger used by every lens package.
var Log = &Logger{level: LevelInfo}

type LogLevel int

const (
	LevelTrace LogLevel = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[LogLevel]string{
	LevelTrace: "trace",
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelFatal: "fatal",
}

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}

	return fmt.Sprintf("level(%d)", int(l))
}

type Logger struct {
	level LogLevel
}

// Enabled reports whether messages at the given level are emitted.
func (l *Logger) Enabled(level LogLevel) bool {
	return l.level <= level
}

// Level returns the current threshold.
func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) printf(level LogLevel, printer *pterm.PrefixPrinter, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}

	printer.Printfln(format, args...)
}

func (l *Logger) println(level LogLevel, printer *pterm.PrefixPrinter, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}

	printer.Println(args...)
}

func (l *Logger) Tracef(format string, args ...interface{}) {
	l.printf(LevelTrace, &pterm.Debug, format, args...)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.printf(LevelDebug, &pterm.Debug, format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.printf(LevelInfo, &pterm.Info, format, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.printf(LevelWarn, &pterm.Warning, format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.printf(LevelError, &pterm.Error, format, args...)
}

func (l *Logger) Fatalf(format string, args ...interface{}) {
	pterm.Error.Printfln(format, args...)
	os.Exit(1)
}

func (l *Logger) Trace(args ...interface{}) {
	l.println(LevelTrace, &pterm.Debug, args...)
}

func (l *Logger) Debug(args ...interface{}) {
	l.println(LevelDebug, &pterm.Debug, args...)
}

func (l *Logger) Info(args ...interface{}) {
	l.println(LevelInfo, &pterm.Info, args...)
}

func (l *Logger) Warn(args ...interface{}) {
	l.println(LevelWarn, &pterm.Warning, args...)
}

func (l *Logger) Error(args ...interface{}) {
	l.println(LevelError, &pterm.Error, args...)
}

// ParseLevel converts a textual level into a LogLevel.
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// SetLevel changes the global threshold. pterm hides its debug printer unless
// debug messages are enabled, so trace and debug switch it on.
func SetLevel(level string) error {
	parsed, err := ParseLevel(level)
	if err != nil {
		return err
	}

	Log.level = parsed
	if parsed <= LevelDebug {
		pterm.EnableDebugMessages()
	} else {
		pterm.DisableDebugMessages()
	}

	return nil
}

func GetLogger() *Logger {
	return Log
}
