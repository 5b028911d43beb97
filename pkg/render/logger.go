package render

import (
	"fmt"
	"io"
	"sync"
)

// Logger receives progress and timing messages from the renderer.
type Logger interface {
	Printf(format string, args ...any)
}

// ConsoleLogger writes each message as one line to an io.Writer.
type ConsoleLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleLogger returns a logger writing to w.
func NewConsoleLogger(w io.Writer) *ConsoleLogger {
	return &ConsoleLogger{w: w}
}

// Printf formats a message and terminates it with a newline.
func (l *ConsoleLogger) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, format+"\n", args...)
}

// DiscardLogger drops every message.
var DiscardLogger Logger = NewConsoleLogger(io.Discard)
