package logger

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Sink collects the human-readable narration produced while talking to the
// bridge. Every line is kept in memory so callers (and tests) can read back
// what was reported, and is also echoed through the underlying logger.
type Sink struct {
	logger *log.Logger

	mu      sync.Mutex
	entries []string
}

func NewSink(logger *log.Logger) *Sink {
	return &Sink{logger: logger}
}

// Log appends a message to the sink and echoes it at info level.
func (s *Sink) Log(message string) {
	s.mu.Lock()
	s.entries = append(s.entries, message)
	s.mu.Unlock()

	s.logger.Info(message)
}

// Entries returns a copy of every message logged so far, in order.
func (s *Sink) Entries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}
