// Package core is the orchestration layer.  It composes the transport,
// the handshake and the relay into one chat session and provides a
// builder that assembles that session from a Config.
//
// Architecture layers (bottom → top):
//
//	transport  →  handshake, relay  →  session  →  core  →  cmd (CLI)
package core

import "context"

// Status is the process-level result of a session.
type Status int

const (
	// StatusOK: the operator or the server ended the chat normally.
	StatusOK Status = 0
	// StatusFailure: the session could not start or the connection broke.
	StatusFailure Status = 1
)

// ExitCode returns the process exit code for s.
func (s Status) ExitCode() int { return int(s) }

func (s Status) String() string {
	if s == StatusOK {
		return "ok"
	}
	return "failure"
}

// Mode owns a complete session lifecycle from connection establishment
// to teardown.
type Mode interface {
	Run(ctx context.Context) (Status, error)
}
