package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultSuccessMarker prefixes the server's reply to accepted
	// credentials ("Welcome, sharon!").
	DefaultSuccessMarker = "Welcome"

	// DefaultSSHPort is the standard SSH port.
	DefaultSSHPort = 22

	// DefaultConnTimeout bounds the SSH gateway handshake.
	DefaultConnTimeout = 30 * time.Second

	// DefaultDialTimeout is used for the chat server when -w is not
	// given.  Zero means the OS default.
	DefaultDialTimeout time.Duration = 0

	// DefaultIdleTimeout disables read deadlines during the relay.
	DefaultIdleTimeout time.Duration = 0
)

// Defaults returns a Config with every default applied.
func Defaults() *Config {
	return &Config{
		Timeout:       DefaultDialTimeout,
		IdleTimeout:   DefaultIdleTimeout,
		SuccessMarker: DefaultSuccessMarker,
	}
}
