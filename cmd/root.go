// Package cmd wires up the CLI flags and dispatches to the chat core.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"chatterbox/config"
	"chatterbox/internal/console"
	"chatterbox/internal/core"
	"chatterbox/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X chatterbox/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// fromEnv in a positional slot means "use the CHATTERBOX_* value".  As
// the password it prompts on the terminal when the variable is unset.
const fromEnv = "-"

// Execute parses args and runs one chat session.  The returned Status is
// the process exit status; a non-nil error is for the caller to report.
func Execute(ctx context.Context, args []string) (core.Status, error) {
	cfg := config.Defaults()
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("chatterbox", flag.ContinueOnError)

	// ── connection ───────────────────────────────────────────────
	var timeoutSec, idleSec int
	fs.IntVarP(&timeoutSec, "timeout", "w", int(cfg.Timeout/time.Second), "Connect timeout in seconds (0 = OS default)")
	fs.IntVar(&idleSec, "idle-timeout", int(cfg.IdleTimeout/time.Second), "Give up if the server is silent this many seconds (0 = never)")
	fs.StringVar(&cfg.SuccessMarker, "success-marker", cfg.SuccessMarker, "Prefix of the server's reply to accepted credentials")

	// ── SSH tunnel ───────────────────────────────────────────────
	fs.StringVarP(&cfg.TunnelSpec, "tunnel", "T", cfg.TunnelSpec, "SSH tunnel via [user@]host[:port]")
	fs.StringVar(&cfg.SSHKeyPath, "ssh-key", cfg.SSHKeyPath, "SSH private key file")
	fs.BoolVar(&cfg.SSHPassword, "ssh-password", cfg.SSHPassword, "Prompt for SSH password")
	fs.BoolVar(&cfg.UseSSHAgent, "ssh-agent", cfg.UseSSHAgent, "Use SSH agent")
	fs.BoolVar(&cfg.StrictHostKey, "strict-hostkey", cfg.StrictHostKey, "Verify SSH host keys")
	fs.StringVar(&cfg.KnownHostsPath, "known-hosts", cfg.KnownHostsPath, "Custom known_hosts path")

	// ── output ───────────────────────────────────────────────────
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Do not style client notices")
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")

	var showVersion, showHelp, dryRun bool
	fs.BoolVar(&dryRun, "dry-run", false, "Validate the configuration and exit")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return core.StatusFailure, err
	}

	if showHelp {
		printUsage(fs)
		return core.StatusOK, nil
	}
	if showVersion {
		fmt.Printf("chatterbox %s\n", version)
		return core.StatusOK, nil
	}

	cfg.Timeout = time.Duration(timeoutSec) * time.Second
	cfg.IdleTimeout = time.Duration(idleSec) * time.Second

	// ── positional arguments ─────────────────────────────────────
	if err := parsePositional(cfg, fs.Args()); err != nil {
		return core.StatusFailure, err
	}

	// ── tunnel spec ──────────────────────────────────────────────
	if cfg.TunnelSpec != "" {
		user, host, port, err := config.ParseTunnelSpec(cfg.TunnelSpec)
		if err != nil {
			return core.StatusFailure, err
		}
		cfg.TunnelEnabled = true
		cfg.TunnelUser = user
		cfg.TunnelHost = host
		cfg.TunnelPort = port
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return core.StatusFailure, err
	}

	if dryRun {
		fmt.Printf("chatterbox: configuration ok: %s\n", cfg)
		return core.StatusOK, nil
	}

	if cfg.PromptPassword {
		pass, err := console.ReadSecret(os.Stdin, os.Stderr, fmt.Sprintf("Password for %s: ", cfg.Username))
		if err != nil {
			return core.StatusFailure, fmt.Errorf("password: %w", err)
		}
		cfg.Password = pass
	}

	// ── build and run ────────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose)
	logger.Debug("config: %s", cfg)

	mode, err := core.Build(cfg, logger)
	if err != nil {
		return core.StatusFailure, err
	}
	return mode.Run(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────

// parsePositional fills HOST PORT USERNAME PASSWORD, in that order.
func parsePositional(cfg *config.Config, remaining []string) error {
	if len(remaining) != 4 {
		return fmt.Errorf("expected 4 arguments HOST PORT USERNAME PASSWORD, got %d (use --help for usage)",
			len(remaining))
	}

	if remaining[0] != fromEnv {
		cfg.Host = remaining[0]
	}
	if remaining[1] != fromEnv {
		port, err := config.ParsePort(remaining[1])
		if err != nil {
			return err
		}
		cfg.Port = port
	}
	if remaining[2] != fromEnv {
		cfg.Username = remaining[2]
	}
	if remaining[3] != fromEnv {
		cfg.Password = remaining[3]
	} else if cfg.Password == "" {
		cfg.PromptPassword = true
	}
	return nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `chatterbox – terminal chat client v%s

Logs in to a line-based chat server and relays what you type.

Usage:
  chatterbox [options] HOST PORT USERNAME PASSWORD

Any argument given as "-" is read from CHATTERBOX_HOST, CHATTERBOX_PORT,
CHATTERBOX_USERNAME or CHATTERBOX_PASSWORD.  A "-" password with no
CHATTERBOX_PASSWORD is prompted for on the terminal.

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  chatterbox localhost 12345 sharon abc123          Log in and chat
  chatterbox chat.example.com 12345 sharon -        Prompt for the password
  chatterbox -T admin@bastion chat-internal 12345 sharon -
                                                    Chat through an SSH gateway
  printf 'hi\n' | chatterbox localhost 12345 sharon abc123
                                                    Send one line and exit
`)
}
