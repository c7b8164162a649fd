package transport

import (
	"bufio"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

// LineConn is the chat transport: one duplex connection with a
// line-buffered reader and an explicitly flushed writer.
//
// The read side and the write side may be used from two different
// goroutines, but each side from only one at a time.
type LineConn struct {
	conn net.Conn
	r    *bufio.Reader
	w    *bufio.Writer

	idle time.Duration

	closeOnce sync.Once
	closeErr  error
}

// NewLineConn wraps conn.  A non-zero idle timeout arms a read deadline
// before every ReadLine.
func NewLineConn(conn net.Conn, idle time.Duration) *LineConn {
	return &LineConn{
		conn: conn,
		r:    bufio.NewReader(conn),
		w:    bufio.NewWriter(conn),
		idle: idle,
	}
}

// ReadLine returns the next line without its terminator.  Both "\n" and
// "\r\n" endings are accepted.  A final fragment with no terminator is
// returned as a line; the call after it reports io.EOF.
func (c *LineConn) ReadLine() (string, error) {
	if c.idle > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.idle)); err != nil {
			return "", err
		}
	}

	line, err := c.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSuffix(line, "\r"), nil
		}
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// WriteLine sends line followed by one "\n" and flushes, so every call
// reaches the network as soon as it returns.
func (c *LineConn) WriteLine(line string) error {
	if _, err := c.w.WriteString(line); err != nil {
		return err
	}
	if err := c.w.WriteByte('\n'); err != nil {
		return err
	}
	return c.w.Flush()
}

// Close closes the connection, unblocking any pending ReadLine.  It is
// safe to call more than once.
func (c *LineConn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

// RemoteAddr returns the server's address.
func (c *LineConn) RemoteAddr() net.Addr { return c.conn.RemoteAddr() }
