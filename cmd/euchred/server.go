package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/euchred/cmd/euchred/shared"
	"github.com/lox/euchred/internal/server"
)

// ServerCmd contains core server configuration
type ServerCmd struct {
	Config string `kong:"default='euchred.hcl',help='Path to HCL config file'"`
	Addr   string `kong:"help='Listen address, overrides config'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed for tables without one (optional)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ServerCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Debug {
		cfg.Server.LogLevel = "debug"
	}
	if c.Seed != nil {
		for i := range cfg.Tables {
			if cfg.Tables[i].Seed == nil {
				cfg.Tables[i].Seed = c.Seed
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := shared.SetupLoggerWithLevel(cfg.Server.LogLevel)

	addr := cfg.ListenAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	s := server.NewServer(cfg, logger, quartz.NewReal())

	logger.Info("starting euchred server",
		"address", addr,
		"tables", len(cfg.Tables),
		"reconnect_grace", cfg.ReconnectGrace())

	ctx := shared.SetupSignalHandlerWithLogger(logger)

	serverErr := make(chan error, 1)
	go func() {
		if err := s.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
