// Package logging provides a small JSON line logger for the shell and
// the store. The battle engine itself never logs here; its output is the
// battle log and trace spans.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Fields carries structured context on a log line.
type Fields map[string]any

// Logger writes one JSON object per line.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	service string
}

// New creates a logger writing to stderr.
func New(service string) *Logger {
	return &Logger{out: os.Stderr, service: service}
}

// NewWithWriter creates a logger with an explicit sink.
func NewWithWriter(service string, out io.Writer) *Logger {
	return &Logger{out: out, service: service}
}

// Info logs at info level.
func (l *Logger) Info(msg string, fields Fields) { l.write("info", msg, fields) }

// Warn logs at warning level.
func (l *Logger) Warn(msg string, fields Fields) { l.write("warn", msg, fields) }

// Error logs at error level.
func (l *Logger) Error(msg string, fields Fields) { l.write("error", msg, fields) }

// Fatal logs at fatal level and exits.
func (l *Logger) Fatal(msg string, fields Fields) {
	l.write("fatal", msg, fields)
	os.Exit(1)
}

func (l *Logger) write(level, msg string, fields Fields) {
	entry := map[string]any{
		"ts":      time.Now().UTC().Format(time.RFC3339Nano),
		"level":   level,
		"service": l.service,
		"msg":     msg,
	}
	for k, v := range fields {
		entry[k] = v
	}
	line, err := json.Marshal(entry)
	if err != nil {
		line = []byte(fmt.Sprintf(`{"level":%q,"msg":%q,"marshal_error":%q}`, level, msg, err))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Write(append(line, '\n'))
}
