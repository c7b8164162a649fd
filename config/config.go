// Package config defines the runtime configuration for chatterbox and
// provides helpers for parsing ports and tunnel specifications.
package config

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	cberr "chatterbox/internal/errors"
	"chatterbox/util"
)

// Config holds every tuneable for a single chat session.
type Config struct {
	// ── Server ───────────────────────────────────────────────────────
	Host        string
	Port        int
	Timeout     time.Duration // dial timeout, 0 = none
	IdleTimeout time.Duration // per-read deadline during the relay, 0 = none

	// ── Credentials ──────────────────────────────────────────────────
	Username       string
	Password       string
	PromptPassword bool // PASSWORD given as "-": read it from the terminal

	// SuccessMarker is the prefix that marks a successful handshake
	// response.
	SuccessMarker string

	// ── SSH tunnel ───────────────────────────────────────────────────
	TunnelSpec     string // raw [user@]host[:port] from -T
	TunnelEnabled  bool
	TunnelUser     string
	TunnelHost     string
	TunnelPort     int
	SSHKeyPath     string
	SSHPassword    bool
	UseSSHAgent    bool
	StrictHostKey  bool
	KnownHostsPath string

	// ── Output ───────────────────────────────────────────────────────
	NoColor bool
	Verbose int
}

// ── Port helpers ─────────────────────────────────────────────────────

// ParsePort accepts a decimal port in the range 1-65535.
func ParsePort(spec string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(spec))
	if err != nil {
		return 0, &cberr.ConfigError{
			Field:   "port",
			Value:   spec,
			Message: "must be a number",
		}
	}
	if port < 1 || port > 65535 {
		return 0, &cberr.ConfigError{
			Field:   "port",
			Value:   port,
			Message: "out of range 1-65535",
		}
	}
	return port, nil
}

// ── Tunnel-spec parser ───────────────────────────────────────────────

// tunnelRe matches [user@]host[:port].
var tunnelRe = regexp.MustCompile(`^(?:([^@]+)@)?([^:@]+)(?::(\d+))?$`)

// ParseTunnelSpec extracts user, host, and port from a string such as
// "admin@bastion.example.com:2222".  Port defaults to DefaultSSHPort.
func ParseTunnelSpec(spec string) (user, host string, port int, err error) {
	m := tunnelRe.FindStringSubmatch(spec)
	if m == nil {
		return "", "", 0, &cberr.ConfigError{
			Field:   "tunnel",
			Value:   spec,
			Message: "invalid tunnel spec",
			Hint:    "expected [user@]host[:port]",
		}
	}
	user, host, port = m[1], m[2], DefaultSSHPort
	if m[3] != "" {
		port, err = strconv.Atoi(m[3])
		if err != nil || port < 1 || port > 65535 {
			return "", "", 0, &cberr.ConfigError{
				Field:   "tunnel",
				Value:   spec,
				Message: "tunnel port out of range 1-65535",
			}
		}
	}
	return user, host, port, nil
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is complete and that the
// credentials can travel as a single "username password" line.
func (c *Config) Validate() error {
	if c.Host == "" {
		return &cberr.ConfigError{Field: "host", Message: "required"}
	}
	if c.Port < 1 || c.Port > 65535 {
		return &cberr.ConfigError{Field: "port", Value: c.Port, Message: "out of range 1-65535"}
	}

	if c.Username == "" {
		return &cberr.ConfigError{Field: "username", Message: "required"}
	}
	if strings.ContainsAny(c.Username, " \t\r\n") {
		return &cberr.ConfigError{
			Field:   "username",
			Value:   c.Username,
			Message: "must not contain whitespace",
			Hint:    "the server splits the credential line on the first space",
		}
	}
	if !c.PromptPassword && c.Password == "" {
		return &cberr.ConfigError{
			Field:   "password",
			Message: "required",
			Hint:    `pass "-" to be prompted for it`,
		}
	}
	if strings.ContainsAny(c.Password, " \r\n") {
		return &cberr.ConfigError{
			Field:   "password",
			Message: "must not contain spaces or line breaks",
		}
	}

	if c.SuccessMarker == "" {
		return &cberr.ConfigError{Field: "success-marker", Message: "must not be empty"}
	}
	if c.Timeout < 0 || c.IdleTimeout < 0 {
		return &cberr.ConfigError{Field: "timeout", Message: "must not be negative"}
	}

	if c.TunnelEnabled && c.TunnelHost == "" {
		return &cberr.ConfigError{
			Field:   "tunnel",
			Message: "tunnel host is required",
			Hint:    "use -T [user@]host[:port]",
		}
	}
	if !c.TunnelEnabled && (c.SSHKeyPath != "" || c.SSHPassword || c.UseSSHAgent) {
		return &cberr.ConfigError{
			Field:   "tunnel",
			Message: "SSH options given without a tunnel",
			Hint:    "add -T [user@]host[:port]",
		}
	}
	return nil
}

// Address returns the chat server address as host:port.
func (c *Config) Address() string {
	return util.FormatAddr(c.Host, c.Port)
}

// String renders the configuration for diagnostics with the password
// masked.
func (c *Config) String() string {
	pass := "****"
	if c.Password == "" {
		pass = ""
	}
	s := "host=" + c.Host + " port=" + strconv.Itoa(c.Port) +
		" username=" + c.Username + " password=" + pass
	if c.TunnelEnabled {
		s += " tunnel=" + c.TunnelUser + "@" + util.FormatAddr(c.TunnelHost, c.TunnelPort)
	}
	return s
}
