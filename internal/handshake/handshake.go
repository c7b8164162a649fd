// Package handshake performs the one round trip that precedes chatting:
// read the server's prompt, send "username password", read the verdict.
package handshake

import (
	"io"
	"strings"

	cberr "chatterbox/internal/errors"
)

// Conn is the part of the line transport the handshake needs.
type Conn interface {
	ReadLine() (string, error)
	WriteLine(line string) error
}

// Display receives every server line the operator should see.
type Display interface {
	WriteLine(line string) error
}

// Credentials are sent once, as a single line.
type Credentials struct {
	Username string
	Password string
}

// Line returns the credential line without its terminator.
func (c Credentials) Line() string {
	return c.Username + " " + c.Password
}

// Validate checks that the credentials fit on one line the server can
// split on its first space.
func (c Credentials) Validate() error {
	switch {
	case c.Username == "":
		return &cberr.ConfigError{Field: "username", Message: "required"}
	case strings.ContainsAny(c.Username, " \t\r\n"):
		return &cberr.ConfigError{Field: "username", Value: c.Username, Message: "must not contain whitespace"}
	case strings.ContainsAny(c.Password, " \r\n"):
		return &cberr.ConfigError{Field: "password", Message: "must not contain spaces or line breaks"}
	}
	return nil
}

// String masks the password.
func (c Credentials) String() string {
	return c.Username + " ****"
}

// Result classifies how the handshake ended.
type Result int

const (
	// Authenticated: the server accepted the credentials.
	Authenticated Result = iota
	// Rejected: the server answered without the success marker.
	Rejected
	// Disconnected: the stream ended before the server answered.
	Disconnected
)

func (r Result) String() string {
	switch r {
	case Authenticated:
		return "authenticated"
	case Rejected:
		return "rejected"
	case Disconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Outcome is the result of [Authenticate].
type Outcome struct {
	Result Result
	// Greeting holds the server lines already shown to the operator.
	Greeting []string
	// Reason is the server's response line when Result is Rejected.
	Reason string
}

// Options tune the handshake.
type Options struct {
	// SuccessMarker must prefix the server's response for the login to
	// count as accepted.  Matching is case-sensitive.
	SuccessMarker string
}

// DefaultSuccessMarker is used when Options.SuccessMarker is empty.
const DefaultSuccessMarker = "Welcome"

// Authenticate runs the handshake over conn.  A rejection or an early
// end of stream is reported in the Outcome with a nil error; a non-nil
// error always means the transport failed.
func Authenticate(conn Conn, creds Credentials, display Display, opts Options) (Outcome, error) {
	marker := opts.SuccessMarker
	if marker == "" {
		marker = DefaultSuccessMarker
	}

	var out Outcome

	prompt, err := conn.ReadLine()
	if err == io.EOF {
		out.Result = Disconnected
		return out, nil
	}
	if err != nil {
		return out, cberr.Wrap("handshake read", "", err)
	}
	display.WriteLine(prompt) //nolint:errcheck
	out.Greeting = append(out.Greeting, prompt)

	if err := conn.WriteLine(creds.Line()); err != nil {
		return out, cberr.Wrap("handshake write", "", err)
	}

	reply, err := conn.ReadLine()
	if err == io.EOF {
		out.Result = Disconnected
		return out, nil
	}
	if err != nil {
		return out, cberr.Wrap("handshake read", "", err)
	}

	if !strings.HasPrefix(reply, marker) {
		out.Result = Rejected
		out.Reason = reply
		return out, nil
	}

	display.WriteLine(reply) //nolint:errcheck
	out.Greeting = append(out.Greeting, reply)
	out.Result = Authenticated
	return out, nil
}
