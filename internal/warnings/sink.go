package warnings

import (
	"io"

	"github.com/fatih/color"

	"github.com/conn-castle/stepup/internal/messages"
)

// Sink is an append-only, run-scoped collector of warnings.
// It is not safe for concurrent use; the update pipeline is single-threaded.
type Sink struct {
	items []Warning
	echo  io.Writer
}

// NewSink returns an empty sink. When echo is non-nil each warning is also
// printed to it as it is recorded.
func NewSink(echo io.Writer) *Sink {
	return &Sink{echo: echo}
}

// Add records w. A nil sink discards it.
func (s *Sink) Add(w Warning) {
	if s == nil {
		return
	}
	s.items = append(s.items, w)
	if s.echo != nil {
		_, _ = color.New(color.FgYellow).Fprintf(s.echo, messages.WarningEchoFmt, w.String())
	}
}

// Reset clears every recorded warning. It is called at the start of each run.
func (s *Sink) Reset() {
	if s == nil {
		return
	}
	s.items = nil
}

// List returns a copy of the recorded warnings in insertion order.
func (s *Sink) List() []Warning {
	if s == nil {
		return nil
	}
	out := make([]Warning, len(s.items))
	copy(out, s.items)
	return out
}
