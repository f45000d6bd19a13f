// Package logger writes single-line JSON log entries.
package logger

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// Logger writes one JSON object per line to its output. Safe for concurrent use.
type Logger struct {
	mu  sync.Mutex
	out *log.Logger
}

// New returns a Logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{out: log.New(w, "", 0)}
}

var std = New(os.Stdout)

// SetOutput redirects the package-level logger, mostly for tests.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.out = log.New(w, "", 0)
}

// JSON stamps data with "ts" in loc and a default "level", then writes it as one line.
// Entries with status "error" default to level "error".
func (l *Logger) JSON(loc *time.Location, data map[string]any) {
	if loc == nil {
		loc = time.UTC
	}
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal log entry: %v", err)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Println(string(b))
}

// JSON writes data through the package-level logger.
func JSON(loc *time.Location, data map[string]any) {
	std.JSON(loc, data)
}

// Info logs msg with extra fields at level info.
func Info(loc *time.Location, msg string, fields map[string]any) {
	std.JSON(loc, with(fields, "info", msg))
}

// Error logs msg and err at level error.
func Error(loc *time.Location, msg string, err error, fields map[string]any) {
	data := with(fields, "error", msg)
	if err != nil {
		data["error"] = err.Error()
	}
	std.JSON(loc, data)
}

func with(fields map[string]any, level, msg string) map[string]any {
	data := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		data[k] = v
	}
	data["level"] = level
	data["msg"] = msg
	return data
}
