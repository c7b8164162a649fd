// Package transport opens the duplex byte stream to the chat server and
// wraps it in line-oriented read and write primitives.
//
// Dialers handle the "how" of reaching the server (plain TCP or through
// an SSH gateway); LineConn handles newline framing and flushing.
package transport

import (
	"context"
	"net"
)

// Dialer opens outbound network connections.
type Dialer interface {
	// Dial establishes a connection to the given network address.
	Dial(ctx context.Context, network, address string) (net.Conn, error)

	// Close releases any long-lived resources held by the dialer
	// (e.g. an SSH session).  Stateless dialers return nil.
	Close() error
}
