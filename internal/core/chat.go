package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"chatterbox/internal/console"
	cberr "chatterbox/internal/errors"
	"chatterbox/internal/handshake"
	"chatterbox/internal/metrics"
	"chatterbox/internal/relay"
	"chatterbox/internal/session"
	"chatterbox/internal/transport"
	"chatterbox/util"
)

// ChatMode dials the chat server, logs in and relays lines until either
// side stops.
type ChatMode struct {
	Dialer        transport.Dialer
	Address       string
	Credentials   handshake.Credentials
	SuccessMarker string
	IdleTimeout   time.Duration
	Color         bool
	Logger        *util.Logger
	Metrics       *metrics.Collector

	// Stdin/Stdout default to os.Stdin/os.Stdout when nil.
	// Override in tests for deterministic I/O.
	Stdin  io.Reader
	Stdout io.Writer
}

func (m *ChatMode) stdin() io.Reader {
	if m.Stdin != nil {
		return m.Stdin
	}
	return os.Stdin
}

func (m *ChatMode) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

// Run executes one session.  The transport is closed on every path.
//
// A rejected login returns an *errors.AuthError, a server that hangs up
// during the handshake returns errors.ErrDisconnected, and a connection
// that breaks mid-chat returns errors.ErrConnectionLost.  The session
// ends with StatusOK when the server closes the stream, operator input
// ends, or ctx is cancelled, including while the login is in progress.
func (m *ChatMode) Run(ctx context.Context) (Status, error) {
	defer m.Dialer.Close()
	defer func() { m.Logger.Verbose("metrics: %s", m.Metrics.JSON()) }()

	if err := m.Credentials.Validate(); err != nil {
		return StatusFailure, err
	}

	m.Logger.Verbose("connecting to %s", m.Address)

	conn, err := m.Dialer.Dial(ctx, "tcp", m.Address)
	if err != nil {
		m.Metrics.RecordError("dial: " + err.Error())
		return StatusFailure, fmt.Errorf("connect to %s: %w", m.Address, err)
	}

	m.Logger.Verbose("connected to %s", conn.RemoteAddr())

	sess := session.New(conn, m.IdleTimeout,
		console.NewInput(m.stdin()),
		console.NewDisplay(m.stdout(), m.Color),
		m.Logger, m.Metrics)
	defer sess.Close()

	// The handshake reads block; closing the connection is the only way
	// to abandon them when ctx is cancelled.
	stop := context.AfterFunc(ctx, func() { sess.Conn.Close() }) //nolint:errcheck
	out, err := handshake.Authenticate(sess.Conn, m.Credentials, sess.Display,
		handshake.Options{SuccessMarker: m.SuccessMarker})
	if !stop() {
		m.Logger.Verbose("interrupted during login: %v", ctx.Err())
		return StatusOK, nil
	}
	if err != nil {
		var ne *cberr.NetworkError
		if cberr.As(err, &ne) && ne.Addr == "" {
			ne.Addr = m.Address
		}
		m.Metrics.RecordError(err.Error())
		return StatusFailure, err
	}

	switch out.Result {
	case handshake.Rejected:
		m.Logger.Verbose("login rejected as %s", m.Credentials)
		return StatusFailure, &cberr.AuthError{Reason: out.Reason}
	case handshake.Disconnected:
		return StatusFailure, cberr.ErrDisconnected
	}

	m.Logger.Verbose("logged in as %s", m.Credentials.Username)

	term := relay.Run(ctx, sess.Conn, sess.Input, sess.Display, sess.RelayOptions())
	if term.Failed() {
		return StatusFailure, cberr.ErrConnectionLost
	}
	return StatusOK, nil
}
