// Package relay runs the full-duplex chat after a successful handshake:
// server lines go to the operator's display, operator lines go to the
// server, and the first direction to stop ends the session.
package relay

import (
	"context"
	"io"
	"sync"

	"chatterbox/internal/metrics"
	"chatterbox/util"
)

// Notices shown to the operator when the relay stops on its own.
const (
	NoticeServerClosed   = "Server disconnected."
	NoticeConnectionLost = "Connection lost. Exiting."
)

// Conn is the line transport.  ReadLine is only called from the inbound
// loop and WriteLine only from the outbound loop.  Close must unblock a
// pending ReadLine.
type Conn interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
}

// Display is the operator's screen.  It must be safe for concurrent
// use and flush every line before returning.
type Display interface {
	WriteLine(line string) error
	Notice(msg string) error
}

// Input is a source of operator lines; *bufio.Scanner satisfies it.
type Input interface {
	Scan() bool
	Text() string
	Err() error
}

// Termination says why the relay stopped.
type Termination int

const (
	// ServerClosed: the server ended the stream.
	ServerClosed Termination = iota
	// TransportError: a read or write on the connection failed.
	TransportError
	// OperatorInputClosed: operator input reached end of file.
	OperatorInputClosed
	// Interrupted: the context was cancelled (SIGINT, SIGTERM).
	Interrupted
)

func (t Termination) String() string {
	switch t {
	case ServerClosed:
		return "server closed"
	case TransportError:
		return "transport error"
	case OperatorInputClosed:
		return "operator input closed"
	case Interrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Failed reports whether the session should end with a failure status.
func (t Termination) Failed() bool { return t == TransportError }

// Options carry the relay's ambient dependencies.  Both may be nil.
type Options struct {
	Logger  *util.Logger
	Metrics *metrics.Collector
}

type engine struct {
	conn    Conn
	input   Input
	display Display
	log     *util.Logger
	stats   *metrics.Collector

	once sync.Once
	done chan struct{}
	term Termination
}

// Run relays lines in both directions until one of them stops, then
// closes conn and returns why.  It does not return before both relay
// loops have exited, so nothing is written to the display afterwards.
//
// The goroutine reading input may stay blocked in Scan after Run
// returns if the source cannot be interrupted (a terminal); it exits at
// the next line or at end of input without touching conn.
func Run(ctx context.Context, conn Conn, input Input, display Display, opts Options) Termination {
	e := &engine{
		conn:    conn,
		input:   input,
		display: display,
		log:     opts.Logger,
		stats:   opts.Metrics,
		done:    make(chan struct{}),
	}

	go func() {
		select {
		case <-ctx.Done():
			e.log.Verbose("relay: %v", ctx.Err())
			e.finish(Interrupted, "")
		case <-e.done:
		}
	}()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		e.inbound()
	}()
	go func() {
		defer wg.Done()
		e.outbound()
	}()

	<-e.done
	conn.Close() //nolint:errcheck // unblocks the inbound read
	wg.Wait()

	e.log.Verbose("relay stopped: %v", e.term)
	return e.term
}

// finish records the first termination and shows its notice.  Later
// calls are no-ops, so the operator sees at most one notice.
func (e *engine) finish(t Termination, notice string) {
	e.once.Do(func() {
		if notice != "" {
			e.display.Notice(notice) //nolint:errcheck
		}
		e.term = t
		close(e.done)
	})
}

func (e *engine) stopped() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

// inbound copies server lines to the display.  Empty lines are chat
// messages too and are forwarded.
func (e *engine) inbound() {
	for {
		line, err := e.conn.ReadLine()
		if err != nil {
			switch {
			case e.stopped():
				// The session is already over; normally this is our own Close.
				if !util.IsClosed(err) {
					e.log.Debug("relay read after stop: %v", err)
				}
			case err == io.EOF:
				e.log.Verbose("server closed the connection")
				e.finish(ServerClosed, NoticeServerClosed)
			default:
				e.fail("read", err)
			}
			return
		}
		if e.stopped() {
			return
		}
		e.stats.LineReceived(len(line))
		if err := e.display.WriteLine(line); err != nil {
			e.log.Debug("display: %v", err)
		}
	}
}

// outbound sends operator lines to the server, one write and one flush
// per line.
func (e *engine) outbound() {
	lines := make(chan string)
	go e.pump(lines)

	for {
		select {
		case <-e.done:
			return
		case line, ok := <-lines:
			if !ok {
				if err := e.input.Err(); err != nil {
					e.log.Warn("operator input: %v", err)
				}
				e.log.Verbose("operator input closed")
				e.finish(OperatorInputClosed, "")
				return
			}
			if err := e.conn.WriteLine(line); err != nil {
				if !e.stopped() {
					e.fail("write", err)
				}
				return
			}
			e.stats.LineSent(len(line))
		}
	}
}

// pump feeds operator lines to the outbound loop so that the loop can
// stop on done even while Scan is blocked.
func (e *engine) pump(lines chan<- string) {
	defer close(lines)
	for e.input.Scan() {
		select {
		case lines <- e.input.Text():
		case <-e.done:
			return
		}
	}
}

func (e *engine) fail(op string, err error) {
	if util.IsTimeout(err) {
		e.log.Warn("relay %s: no data from server before the idle timeout", op)
	} else {
		e.log.Warn("relay %s: %v", op, err)
	}
	e.stats.RecordError(op + ": " + err.Error())
	e.finish(TransportError, NoticeConnectionLost)
}
