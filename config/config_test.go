package config

import (
	"strings"
	"testing"

	cberr "chatterbox/internal/errors"
)

// ── ParsePort ────────────────────────────────────────────────────────

func TestParsePort(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"12345", 12345, false},
		{"1", 1, false},
		{"65535", 65535, false},
		{" 80 ", 80, false},
		{"0", 0, true},
		{"65536", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePort(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePort(%q) error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePort(%q) = %d, want %d", tt.input, got, tt.want)
			}
			if err != nil {
				var ce *cberr.ConfigError
				if !cberr.As(err, &ce) || ce.Field != "port" {
					t.Errorf("want ConfigError for port, got %T %v", err, err)
				}
			}
		})
	}
}

// ── ParseTunnelSpec ──────────────────────────────────────────────────

func TestParseTunnelSpec(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantUser string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{"full", "admin@bastion.example.com:2222", "admin", "bastion.example.com", 2222, false},
		{"no port", "root@gateway", "root", "gateway", 22, false},
		{"no user", "jump-host:2200", "", "jump-host", 2200, false},
		{"host only", "gateway.local", "", "gateway.local", 22, false},
		{"bad port", "user@host:999999", "", "", 0, true},
		{"zero port", "host:0", "", "", 0, true},
		{"empty", "", "", "", 0, true},
		{"colon only", ":", "", "", 0, true},
		{"user only", "user@", "", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, host, port, err := ParseTunnelSpec(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr = %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if user != tt.wantUser || host != tt.wantHost || port != tt.wantPort {
				t.Errorf("got (%q, %q, %d), want (%q, %q, %d)",
					user, host, port, tt.wantUser, tt.wantHost, tt.wantPort)
			}
		})
	}
}

// ── Config.Validate ──────────────────────────────────────────────────

func validConfig() Config {
	return Config{
		Host:          "localhost",
		Port:          12345,
		Username:      "sharon",
		Password:      "abc123",
		SuccessMarker: DefaultSuccessMarker,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string // "" means valid
	}{
		{"valid", func(*Config) {}, ""},
		{"prompted password", func(c *Config) { c.Password = ""; c.PromptPassword = true }, ""},
		{"valid tunnel", func(c *Config) { c.TunnelEnabled = true; c.TunnelHost = "gw"; c.UseSSHAgent = true }, ""},
		{"no host", func(c *Config) { c.Host = "" }, "host"},
		{"port zero", func(c *Config) { c.Port = 0 }, "port"},
		{"port too high", func(c *Config) { c.Port = 70000 }, "port"},
		{"no username", func(c *Config) { c.Username = "" }, "username"},
		{"username with space", func(c *Config) { c.Username = "sharon smith" }, "username"},
		{"username with newline", func(c *Config) { c.Username = "sharon\n" }, "username"},
		{"no password", func(c *Config) { c.Password = "" }, "password"},
		{"password with space", func(c *Config) { c.Password = "abc 123" }, "password"},
		{"password with CR", func(c *Config) { c.Password = "abc\r" }, "password"},
		{"empty marker", func(c *Config) { c.SuccessMarker = "" }, "success-marker"},
		{"negative timeout", func(c *Config) { c.IdleTimeout = -1 }, "timeout"},
		{"tunnel without host", func(c *Config) { c.TunnelEnabled = true }, "tunnel"},
		{"ssh key without tunnel", func(c *Config) { c.SSHKeyPath = "/k" }, "tunnel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var ce *cberr.ConfigError
			if !cberr.As(err, &ce) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if ce.Field != tt.wantField {
				t.Errorf("field = %q, want %q", ce.Field, tt.wantField)
			}
		})
	}
}

func TestValidate_Hints(t *testing.T) {
	cfg := validConfig()
	cfg.Password = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "hint:") {
		t.Errorf("missing password error should carry a hint, got %v", err)
	}
}

func TestConfigString_MasksPassword(t *testing.T) {
	cfg := validConfig()
	s := cfg.String()
	if strings.Contains(s, "abc123") {
		t.Errorf("String() leaks the password: %q", s)
	}
	if !strings.Contains(s, "username=sharon") || !strings.Contains(s, "port=12345") {
		t.Errorf("String() = %q", s)
	}
}

func TestAddress(t *testing.T) {
	cfg := validConfig()
	if got := cfg.Address(); got != "localhost:12345" {
		t.Errorf("Address() = %q", got)
	}
}
