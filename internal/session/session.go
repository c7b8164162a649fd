// Package session represents a single chat connection, binding the line
// transport to the operator's input and display and to the ambient
// logger and metrics.
//
// The handshake and the relay both work on a session, so neither needs
// to know whether it is talking to os.Stdin or a test buffer.
package session

import (
	"net"
	"time"

	"chatterbox/internal/console"
	"chatterbox/internal/metrics"
	"chatterbox/internal/relay"
	"chatterbox/internal/transport"
	"chatterbox/util"
)

// Session encapsulates the runtime context for one connection.
type Session struct {
	Conn    *transport.LineConn
	Input   relay.Input
	Display *console.Display
	Logger  *util.Logger
	Metrics *metrics.Collector
}

// New wraps conn in a LineConn and binds it to the operator's I/O pair.
// A non-zero idle arms a read deadline before every server read.
func New(conn net.Conn, idle time.Duration, input relay.Input, display *console.Display,
	logger *util.Logger, stats *metrics.Collector) *Session {
	stats.ConnectionOpened()
	return &Session{
		Conn:    transport.NewLineConn(conn, idle),
		Input:   input,
		Display: display,
		Logger:  logger,
		Metrics: stats,
	}
}

// RelayOptions returns the ambient dependencies for relay.Run.
func (s *Session) RelayOptions() relay.Options {
	return relay.Options{Logger: s.Logger, Metrics: s.Metrics}
}

// Close closes the connection.  It is safe to call after the relay has
// already closed it.
func (s *Session) Close() error {
	s.Metrics.ConnectionClosed()
	return s.Conn.Close()
}
