// Package logging writes structured JSON-lines events. The terminal owns
// stdout/stderr while the app runs, so everything goes to a per-session
// file under the configured log directory.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level is log severity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Category names the subsystem generating the event.
type Category string

const (
	CategoryApp      Category = "app"
	CategoryAction   Category = "action"
	CategoryLayout   Category = "layout"
	CategoryUI       Category = "ui"
	CategoryProvider Category = "provider"
	CategoryLibrary  Category = "library"
)

// Event is one structured log record.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Category  Category       `json:"category"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
}

// Logger writes events to a session file. A nil Logger discards
// everything, so call sites never need to guard.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	minLevel Level
}

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// New opens a logger writing to dir/stax-<timestamp>.jsonl.
func New(dir string, minLevel Level) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	name := fmt.Sprintf("stax-%s.jsonl", time.Now().Format("20060102-150405"))
	file, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	if _, ok := levelRank[minLevel]; !ok {
		minLevel = LevelInfo
	}
	return &Logger{file: file, minLevel: minLevel}, nil
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Log writes one event if it clears the minimum level.
func (l *Logger) Log(level Level, category Category, message string, details map[string]any) {
	if l == nil || l.file == nil {
		return
	}
	if levelRank[level] < levelRank[l.minLevel] {
		return
	}
	ev := Event{
		Timestamp: time.Now(),
		Level:     level,
		Category:  category,
		Message:   message,
		Details:   details,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.file.Write(append(data, '\n'))
}

// Debug logs at debug level.
func (l *Logger) Debug(category Category, message string, details map[string]any) {
	l.Log(LevelDebug, category, message, details)
}

// Info logs at info level.
func (l *Logger) Info(category Category, message string, details map[string]any) {
	l.Log(LevelInfo, category, message, details)
}

// Warn logs at warn level.
func (l *Logger) Warn(category Category, message string, details map[string]any) {
	l.Log(LevelWarn, category, message, details)
}

// Error logs at error level.
func (l *Logger) Error(category Category, message string, details map[string]any) {
	l.Log(LevelError, category, message, details)
}
