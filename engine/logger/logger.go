// Package logger provides leveled, prefixed logging for the fountain hosts.
// The simulation core never logs; hosts report what it returns.
package logger

import (
	"io"
	"log"
	"os"
)

// Logger writes info and warnings to one writer and errors to another.
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

const flags = log.Ldate | log.Ltime | log.Lmicroseconds

// New creates a logger writing to stdout and stderr.
func New(component string) *Logger {
	return NewWithWriters(component, os.Stdout, os.Stderr)
}

// NewWithWriters creates a logger with explicit outputs.
func NewWithWriters(component string, out, errOut io.Writer) *Logger {
	tag := "[FOUNTAIN"
	if component != "" {
		tag += ":" + component
	}
	return &Logger{
		infoLogger:  log.New(out, tag+"-INFO] ", flags),
		warnLogger:  log.New(out, tag+"-WARN] ", flags),
		errorLogger: log.New(errOut, tag+"-ERROR] ", flags),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithWriters("", io.Discard, io.Discard)
}

func (l *Logger) Info(msg string)  { l.infoLogger.Println(msg) }
func (l *Logger) Warn(msg string)  { l.warnLogger.Println(msg) }
func (l *Logger) Error(msg string) { l.errorLogger.Println(msg) }

func (l *Logger) Infof(format string, args ...interface{})  { l.infoLogger.Printf(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.warnLogger.Printf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.errorLogger.Printf(format, args...) }

// Event logs a named simulation event with its frame number.
func (l *Logger) Event(eventType string, frame uint64, details string) {
	l.infoLogger.Printf("[EVENT:%s] frame:%d | %s", eventType, frame, details)
}
