// Package progress renders download progress as a single redrawn line.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"

	"github.com/conn-castle/stepup/internal/messages"
)

const (
	barWidth    = 30
	redrawEvery = 100 * time.Millisecond
)

var now = time.Now

// Bar counts bytes written through it and draws a progress line to out.
// When redraw is false only the final line is printed, so logs stay readable.
type Bar struct {
	out      io.Writer
	label    string
	total    int64
	written  int64
	redraw   bool
	model    progress.Model
	lastDraw time.Time
	finished bool
}

// New returns a Bar for a transfer of total bytes. total <= 0 means unknown.
func New(out io.Writer, label string, total int64, redraw bool) *Bar {
	if out == nil {
		out = io.Discard
	}
	return &Bar{
		out:    out,
		label:  label,
		total:  total,
		redraw: redraw,
		model:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth), progress.WithoutPercentage()),
	}
}

// Write records len(p) transferred bytes. It never fails.
func (b *Bar) Write(p []byte) (int, error) {
	b.written += int64(len(p))
	if b.redraw {
		if t := now(); t.Sub(b.lastDraw) >= redrawEvery {
			b.lastDraw = t
			_, _ = fmt.Fprint(b.out, "\r"+b.line())
		}
	}
	return len(p), nil
}

// Finish prints the final line. Later calls do nothing.
func (b *Bar) Finish() {
	if b.finished {
		return
	}
	b.finished = true
	prefix := ""
	if b.redraw {
		prefix = "\r"
	}
	_, _ = fmt.Fprintln(b.out, prefix+b.line())
}

func (b *Bar) line() string {
	if b.total <= 0 {
		return fmt.Sprintf(messages.ProgressUnknownFmt, b.label, humanize.IBytes(uint64(b.written)))
	}
	percent := float64(b.written) / float64(b.total)
	if percent > 1 {
		percent = 1
	}
	return fmt.Sprintf(messages.ProgressLineFmt,
		b.label,
		b.model.ViewAs(percent),
		int(percent*100),
		humanize.IBytes(uint64(b.written)),
		humanize.IBytes(uint64(b.total)),
	)
}
