// Package console holds the operator-side collaborators: the display
// that chat lines and notices are written to, the line source that
// operator input is read from, and the terminal password prompt.
package console

import (
	"bufio"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// flusher is satisfied by *bufio.Writer and similar buffered sinks.
type flusher interface {
	Flush() error
}

// syncer is satisfied by *os.File.
type syncer interface {
	Sync() error
}

// Display is the operator's screen.  Every call writes whole lines and
// flushes before returning, and calls from different goroutines never
// interleave within a line.
type Display struct {
	mu     sync.Mutex
	w      io.Writer
	notice lipgloss.Style
	styled bool
}

// NewDisplay writes to w.  With color set, notices are rendered with a
// lipgloss style bound to w's terminal profile.
func NewDisplay(w io.Writer, color bool) *Display {
	d := &Display{w: w, styled: color}
	if color {
		d.notice = lipgloss.NewRenderer(w).NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)
	}
	return d
}

// WriteLine writes one chat line followed by "\n".
func (d *Display) WriteLine(line string) error {
	return d.write(line)
}

// Notice writes a client-generated status line such as
// "Server disconnected.".
func (d *Display) Notice(msg string) error {
	if d.styled {
		msg = d.notice.Render(msg)
	}
	return d.write(msg)
}

func (d *Display) write(s string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := io.WriteString(d.w, s+"\n"); err != nil {
		return err
	}
	switch f := d.w.(type) {
	case flusher:
		return f.Flush()
	case syncer:
		// Terminals and pipes are unbuffered; Sync only errors on them.
		f.Sync() //nolint:errcheck
	}
	return nil
}

// NewInput returns a line source over r.  Lines longer than the default
// bufio.Scanner limit are accepted up to 1 MiB.
func NewInput(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return s
}
