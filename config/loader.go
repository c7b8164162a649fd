package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags and positional arguments  (cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the CHATTERBOX_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  Call it before CLI parsing so
// that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("CHATTERBOX_HOST"); v != "" {
		cfg.Host = v
	}
	if v := envInt("CHATTERBOX_PORT"); v > 0 {
		cfg.Port = v
	}
	if v := os.Getenv("CHATTERBOX_USERNAME"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("CHATTERBOX_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if v := envInt("CHATTERBOX_TIMEOUT"); v > 0 {
		cfg.Timeout = secondsDuration(v)
	}
	if v := envInt("CHATTERBOX_IDLE_TIMEOUT"); v > 0 {
		cfg.IdleTimeout = secondsDuration(v)
	}
	if v := os.Getenv("CHATTERBOX_SUCCESS_MARKER"); v != "" {
		cfg.SuccessMarker = v
	}

	// SSH tunnel
	if v := os.Getenv("CHATTERBOX_TUNNEL"); v != "" {
		cfg.TunnelSpec = v
	}
	if v := os.Getenv("CHATTERBOX_SSH_KEY"); v != "" {
		cfg.SSHKeyPath = v
	}
	if envBool("CHATTERBOX_SSH_AGENT") {
		cfg.UseSSHAgent = true
	}
	if envBool("CHATTERBOX_STRICT_HOSTKEY") {
		cfg.StrictHostKey = true
	}
	if v := os.Getenv("CHATTERBOX_KNOWN_HOSTS"); v != "" {
		cfg.KnownHostsPath = v
	}

	// Output
	if envBool("CHATTERBOX_NO_COLOR") || os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
	if v := envInt("CHATTERBOX_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}

func secondsDuration(sec int) time.Duration {
	return time.Duration(sec) * time.Second
}
