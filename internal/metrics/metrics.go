// Package metrics keeps lock-free counters for one chat session: lines
// and bytes in each direction, and transport errors.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for a session.
type Collector struct {
	connected atomic.Bool
	linesIn   atomic.Int64
	linesOut  atomic.Int64
	bytesIn   atomic.Int64
	bytesOut  atomic.Int64
	errors    atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	connectedAt  time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Connection ───────────────────────────────────────────────────────

// ConnectionOpened marks the transport as up.
func (c *Collector) ConnectionOpened() {
	if c == nil {
		return
	}
	c.connected.Store(true)
	c.mu.Lock()
	c.connectedAt = time.Now()
	c.mu.Unlock()
}

// ConnectionClosed marks the transport as down.
func (c *Collector) ConnectionClosed() {
	if c == nil {
		return
	}
	c.connected.Store(false)
}

// Connected reports whether the transport is up.
func (c *Collector) Connected() bool {
	if c == nil {
		return false
	}
	return c.connected.Load()
}

// ── Lines ────────────────────────────────────────────────────────────

// LineReceived records one server line of n bytes (terminator excluded).
func (c *Collector) LineReceived(n int) {
	if c == nil {
		return
	}
	c.linesIn.Add(1)
	c.bytesIn.Add(int64(n) + 1)
}

// LineSent records one operator line of n bytes (terminator excluded).
func (c *Collector) LineSent(n int) {
	if c == nil {
		return
	}
	c.linesOut.Add(1)
	c.bytesOut.Add(int64(n) + 1)
}

// LinesIn returns the number of server lines relayed to the display.
func (c *Collector) LinesIn() int64 {
	if c == nil {
		return 0
	}
	return c.linesIn.Load()
}

// LinesOut returns the number of operator lines sent.
func (c *Collector) LinesOut() int64 {
	if c == nil {
		return 0
	}
	return c.linesOut.Load()
}

// BytesIn returns bytes received including terminators.
func (c *Collector) BytesIn() int64 {
	if c == nil {
		return 0
	}
	return c.bytesIn.Load()
}

// BytesOut returns bytes sent including terminators.
func (c *Collector) BytesOut() int64 {
	if c == nil {
		return 0
	}
	return c.bytesOut.Load()
}

// ── Errors ───────────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errors.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errors.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime           string `json:"uptime"`
	Connected        bool   `json:"connected"`
	ConnectedFor     string `json:"connected_for,omitempty"`
	LinesIn          int64  `json:"lines_in"`
	LinesOut         int64  `json:"lines_out"`
	BytesIn          int64  `json:"bytes_in"`
	BytesOut         int64  `json:"bytes_out"`
	ErrorsTotal      int64  `json:"errors_total"`
	LastError        string `json:"last_error,omitempty"`
	LastErrorMessage string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:      time.Since(c.startTime).Truncate(time.Millisecond).String(),
		Connected:   c.connected.Load(),
		LinesIn:     c.linesIn.Load(),
		LinesOut:    c.linesOut.Load(),
		BytesIn:     c.bytesIn.Load(),
		BytesOut:    c.bytesOut.Load(),
		ErrorsTotal: c.errors.Load(),
	}
	if !c.connectedAt.IsZero() {
		s.ConnectedFor = time.Since(c.connectedAt).Truncate(time.Millisecond).String()
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as a single-line JSON object.
func (c *Collector) JSON() string {
	data, _ := json.Marshal(c.Snapshot())
	return string(data)
}
