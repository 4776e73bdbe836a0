package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Environment variables read when a Logger is created.
const (
	EnvLevel = "PICKR_LOG_LEVEL"
	EnvFile  = "PICKR_LOG_FILE"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("invalid log level: %s", s)
}

// Logger is a leveled printf logger. Output is discarded until a file or
// writer is attached, so a terminal UI is never drawn over.
type Logger struct {
	mu    sync.Mutex
	level Level
	out   *log.Logger
	file  *os.File
}

// Default is used by the package-level functions.
var Default = New()

// New creates a logger configured from PICKR_LOG_LEVEL and PICKR_LOG_FILE.
// Invalid values are ignored.
func New() *Logger {
	l := &Logger{
		level: LevelInfo,
		out:   log.New(io.Discard, "", log.LstdFlags),
	}
	if s := os.Getenv(EnvLevel); s != "" {
		if level, err := ParseLevel(s); err == nil {
			l.level = level
		}
	}
	if path := os.Getenv(EnvFile); path != "" {
		_ = l.OpenFile(path)
	}
	return l
}

// Configure applies a level name and log file path. Empty values leave the
// current setting alone.
func (l *Logger) Configure(level, path string) error {
	if level != "" {
		parsed, err := ParseLevel(level)
		if err != nil {
			return err
		}
		l.SetLevel(parsed)
	}
	if path != "" {
		if err := l.OpenFile(path); err != nil {
			return err
		}
	}
	return nil
}

// OpenFile appends output to path, replacing any previously opened file.
func (l *Logger) OpenFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
	}
	l.file = f
	l.out.SetOutput(f)
	return nil
}

// Close closes the log file, if one is open.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.out.SetOutput(io.Discard)
	return err
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.SetOutput(w)
}

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.level
}

func (l *Logger) Debug(format string, v ...any) { l.logf(LevelDebug, format, v...) }
func (l *Logger) Info(format string, v ...any)  { l.logf(LevelInfo, format, v...) }
func (l *Logger) Warn(format string, v ...any)  { l.logf(LevelWarn, format, v...) }
func (l *Logger) Error(format string, v ...any) { l.logf(LevelError, format, v...) }

func (l *Logger) logf(level Level, format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}
	l.out.Printf("[%s] %s", level, fmt.Sprintf(format, v...))
}

func Debug(format string, v ...any) { Default.Debug(format, v...) }
func Info(format string, v ...any)  { Default.Info(format, v...) }
func Warn(format string, v ...any)  { Default.Warn(format, v...) }
func Error(format string, v ...any) { Default.Error(format, v...) }

// Configure applies level and path to the default logger.
func Configure(level, path string) error {
	return Default.Configure(level, path)
}

// Close closes the default logger's file.
func Close() error {
	return Default.Close()
}
