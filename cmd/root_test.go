package cmd

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"testing"

	"chatterbox/config"
	"chatterbox/internal/core"
	cberr "chatterbox/internal/errors"
)

// TestExecute_Version verifies --version prints a version string.
func TestExecute_Version(t *testing.T) {
	if status, err := Execute(context.Background(), []string{"--version"}); err != nil || status != core.StatusOK {
		t.Fatalf("unexpected result: %v, %v", status, err)
	}
}

// TestExecute_Help verifies --help returns without error.
func TestExecute_Help(t *testing.T) {
	if status, err := Execute(context.Background(), []string{"--help"}); err != nil || status != core.StatusOK {
		t.Fatalf("unexpected result: %v, %v", status, err)
	}
}

// TestExecute_ArgumentCount verifies that anything but four positional
// arguments is refused.
func TestExecute_ArgumentCount(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"localhost"},
		{"localhost", "12345", "sharon"},
		{"localhost", "12345", "sharon", "abc123", "extra"},
	} {
		t.Run(fmt.Sprintf("%d args", len(args)), func(t *testing.T) {
			status, err := Execute(context.Background(), args)
			if status != core.StatusFailure || err == nil || !strings.Contains(err.Error(), "expected 4 arguments") {
				t.Fatalf("err = %v, want argument count error", err)
			}
		})
	}
}

// TestExecute_BadPort verifies port parsing and range errors.
func TestExecute_BadPort(t *testing.T) {
	for _, port := range []string{"0", "65536", "abc", "-1"} {
		t.Run(port, func(t *testing.T) {
			_, err := Execute(context.Background(), []string{"--dry-run", "--", "localhost", port, "sharon", "abc123"})
			var ce *cberr.ConfigError
			if !cberr.As(err, &ce) || ce.Field != "port" {
				t.Fatalf("err = %v, want port ConfigError", err)
			}
		})
	}
}

// TestExecute_DryRun verifies --dry-run validates and exits cleanly.
func TestExecute_DryRun(t *testing.T) {
	status, err := Execute(context.Background(), []string{
		"--dry-run", "-w", "5", "--idle-timeout", "60", "localhost", "12345", "sharon", "abc123",
	})
	if err != nil || status != core.StatusOK {
		t.Fatalf("unexpected result: %v, %v", status, err)
	}
}

// TestExecute_DryRunInvalid verifies --dry-run still catches bad configs.
func TestExecute_DryRunInvalid(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"space in username", []string{"--dry-run", "localhost", "12345", "sha ron", "abc123"}, "username"},
		{"space in password", []string{"--dry-run", "localhost", "12345", "sharon", "abc 123"}, "password"},
		{"empty marker", []string{"--dry-run", "--success-marker", "", "localhost", "12345", "sharon", "abc123"}, "success-marker"},
		{"ssh key without tunnel", []string{"--dry-run", "--ssh-key", "id_ed25519", "localhost", "12345", "sharon", "abc123"}, "tunnel"},
		{"bad tunnel", []string{"--dry-run", "-T", "a@b@c", "localhost", "12345", "sharon", "abc123"}, "tunnel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Execute(context.Background(), tt.args)
			var ce *cberr.ConfigError
			if !cberr.As(err, &ce) || ce.Field != tt.field {
				t.Fatalf("err = %v, want ConfigError on %q", err, tt.field)
			}
		})
	}
}

// TestExecute_InvalidFlags verifies unknown flags produce an error.
func TestExecute_InvalidFlags(t *testing.T) {
	status, err := Execute(context.Background(), []string{"--nonexistent-flag"})
	if err == nil || status != core.StatusFailure {
		t.Fatal("expected error for unknown flag")
	}
}

func TestParsePositional(t *testing.T) {
	cfg := config.Defaults()
	if err := parsePositional(cfg, []string{"localhost", "12345", "sharon", "abc123"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Host != "localhost" || cfg.Port != 12345 || cfg.Username != "sharon" || cfg.Password != "abc123" {
		t.Errorf("cfg = %s", cfg)
	}
	if cfg.PromptPassword {
		t.Error("explicit password should not prompt")
	}
}

// TestParsePositional_FromEnv verifies that "-" takes the environment
// value, and that a "-" password without one asks for a prompt.
func TestParsePositional_FromEnv(t *testing.T) {
	t.Setenv("CHATTERBOX_HOST", "chat.example.com")
	t.Setenv("CHATTERBOX_USERNAME", "sharon")

	cfg := config.Defaults()
	config.LoadFromEnv(cfg)
	if err := parsePositional(cfg, []string{"-", "12345", "-", "-"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Host != "chat.example.com" || cfg.Username != "sharon" {
		t.Errorf("cfg = %s", cfg)
	}
	if !cfg.PromptPassword {
		t.Error("a \"-\" password with no CHATTERBOX_PASSWORD should prompt")
	}

	t.Setenv("CHATTERBOX_PASSWORD", "abc123")
	cfg = config.Defaults()
	config.LoadFromEnv(cfg)
	if err := parsePositional(cfg, []string{"-", "12345", "-", "-"}); err != nil {
		t.Fatal(err)
	}
	if cfg.PromptPassword || cfg.Password != "abc123" {
		t.Errorf("password should come from the environment, got prompt=%v", cfg.PromptPassword)
	}
}

// TestExecute_Rejected runs a full session against a local server whose
// reply rejects the login.
func TestExecute_Rejected(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		fmt.Fprintf(conn, "Enter username and password:\n")
		bufio.NewReader(conn).ReadString('\n') //nolint:errcheck
		fmt.Fprintf(conn, "Invalid username or password\n")
	}()

	port := fmt.Sprint(ln.Addr().(*net.TCPAddr).Port)
	status, err := Execute(context.Background(), []string{"--no-color", "-w", "2", "127.0.0.1", port, "sharon", "wrong"})
	if status.ExitCode() != 1 {
		t.Errorf("exit code = %d, want 1", status.ExitCode())
	}
	if !cberr.IsRejected(err) {
		t.Fatalf("err = %v, want rejection", err)
	}
	if !strings.Contains(err.Error(), "Invalid username or password") {
		t.Errorf("error should carry the server's reason: %v", err)
	}
}
