package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Logger takes in a message and tag pairs.
type Logger interface {
	Debug(msg string, tags ...interface{})
	Info(msg string, tags ...interface{})
	Warn(msg string, tags ...interface{})
	Error(msg string, tags ...interface{})
}

type logger struct{ out io.Writer }

// New creates a logger that writes level-tagged key=value lines to stdout.
func New() Logger { return &logger{os.Stdout} }

func (l *logger) print(level, msg string, tags ...interface{}) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(" ")
	b.WriteString(msg)
	for i := 0; i+1 < len(tags); i += 2 {
		fmt.Fprintf(&b, " %v=%v", tags[i], tags[i+1])
	}
	if len(tags)%2 == 1 {
		fmt.Fprintf(&b, " %v", tags[len(tags)-1])
	}
	fmt.Fprintln(l.out, b.String())
}

// Debug creates a debug log entry.
func (l *logger) Debug(msg string, tags ...interface{}) { l.print("DEBUG", msg, tags...) }

// Info creates an info log entry.
func (l *logger) Info(msg string, tags ...interface{}) { l.print("INFO", msg, tags...) }

// Warn creates a warn log entry.
func (l *logger) Warn(msg string, tags ...interface{}) { l.print("WARN", msg, tags...) }

// Error creates an error log entry.
func (l *logger) Error(msg string, tags ...interface{}) { l.print("ERROR", msg, tags...) }

// operationLogger tags every entry with the NDC operation kind and name it
// was logged from, so a request's collection/procedure field and operation
// kind don't need repeating at every call site.
type operationLogger struct {
	parent Logger
	tags   []interface{}
}

// ForOperation returns a Logger that prefixes every entry with kind (e.g.
// "query", "mutation", "query_explain") and name (for a query the
// collection name; for a mutation bridge.Connector passes a count of its
// operations, e.g. "2 operations").
func ForOperation(parent Logger, kind, name string) Logger {
	return &operationLogger{parent: parent, tags: []interface{}{"kind", kind, "name", name}}
}

func (l *operationLogger) Debug(msg string, tags ...interface{}) {
	l.parent.Debug(msg, append(append([]interface{}{}, l.tags...), tags...)...)
}

func (l *operationLogger) Info(msg string, tags ...interface{}) {
	l.parent.Info(msg, append(append([]interface{}{}, l.tags...), tags...)...)
}

func (l *operationLogger) Warn(msg string, tags ...interface{}) {
	l.parent.Warn(msg, append(append([]interface{}{}, l.tags...), tags...)...)
}

func (l *operationLogger) Error(msg string, tags ...interface{}) {
	l.parent.Error(msg, append(append([]interface{}{}, l.tags...), tags...)...)
}
