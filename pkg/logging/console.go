package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
)

// ConsoleLogger writes plain text log lines to a writer, stderr by default.
// It is the default error channel for interactive runs: per-file failures
// show up next to the console output without polluting stdout.
type ConsoleLogger struct {
	writer io.Writer
	level  Level
	fields Fields
	mu     *sync.Mutex
}

// NewConsoleLogger creates a logger writing to stderr
func NewConsoleLogger(level Level) *ConsoleLogger {
	return &ConsoleLogger{
		writer: os.Stderr,
		level:  level,
		mu:     &sync.Mutex{},
	}
}

// NewConsoleLoggerTo creates a logger writing to an explicit writer
func NewConsoleLoggerTo(writer io.Writer, level Level) *ConsoleLogger {
	return &ConsoleLogger{
		writer: writer,
		level:  level,
		mu:     &sync.Mutex{},
	}
}

// Debug logs a debug message
func (l *ConsoleLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.write(DebugLevel, msg, nil, fields)
}

// Info logs an info message
func (l *ConsoleLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.write(InfoLevel, msg, nil, fields)
}

// Warn logs a warning message
func (l *ConsoleLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.write(WarnLevel, msg, nil, fields)
}

// Error logs an error message
func (l *ConsoleLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.write(ErrorLevel, msg, err, fields)
}

// WithFields returns a logger with additional fields
func (l *ConsoleLogger) WithFields(fields Fields) Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &ConsoleLogger{
		writer: l.writer,
		level:  l.level,
		fields: merged,
		mu:     l.mu,
	}
}

// Close does nothing for console output
func (l *ConsoleLogger) Close() error {
	return nil
}

func (l *ConsoleLogger) write(level Level, msg string, err error, fields Fields) {
	if level < l.level {
		return
	}

	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	line := fmt.Sprintf("%s: %s", level, msg)
	if err != nil {
		line += fmt.Sprintf(" error=%q", err.Error())
	}

	// Sorted field order keeps lines stable for tests and diffing
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		line += fmt.Sprintf(" %s=%v", k, merged[k])
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.writer, line)
}
