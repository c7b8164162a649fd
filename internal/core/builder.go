package core

import (
	"os"

	"chatterbox/config"
	"chatterbox/internal/console"
	"chatterbox/internal/handshake"
	"chatterbox/internal/metrics"
	"chatterbox/internal/transport"
	"chatterbox/tunnel"
	"chatterbox/util"
)

// Build constructs the chat session described by cfg.  cfg must already
// be validated; the password must already be resolved if it was to be
// prompted for.
func Build(cfg *config.Config, logger *util.Logger) (Mode, error) {
	creds := handshake.Credentials{Username: cfg.Username, Password: cfg.Password}
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	return &ChatMode{
		Dialer:        buildDialer(cfg, logger),
		Address:       cfg.Address(),
		Credentials:   creds,
		SuccessMarker: cfg.SuccessMarker,
		IdleTimeout:   cfg.IdleTimeout,
		Color:         !cfg.NoColor && console.IsTerminal(os.Stdout),
		Logger:        logger,
		Metrics:       metrics.New(),
	}, nil
}

// buildDialer creates the right transport.Dialer for the given config.
func buildDialer(cfg *config.Config, logger *util.Logger) transport.Dialer {
	if cfg.TunnelEnabled {
		gatewayTimeout := cfg.Timeout
		if gatewayTimeout == 0 {
			gatewayTimeout = config.DefaultConnTimeout
		}
		return transport.NewSSHDialer(&tunnel.SSHConfig{
			User:          cfg.TunnelUser,
			Host:          cfg.TunnelHost,
			Port:          cfg.TunnelPort,
			KeyPath:       cfg.SSHKeyPath,
			PromptPass:    cfg.SSHPassword,
			UseAgent:      cfg.UseSSHAgent,
			StrictHostKey: cfg.StrictHostKey,
			KnownHosts:    cfg.KnownHostsPath,
			ConnTimeout:   gatewayTimeout,
		}, logger)
	}

	return &transport.TCPDialer{Timeout: cfg.Timeout}
}
