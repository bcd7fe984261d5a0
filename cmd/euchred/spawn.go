package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/euchred/cmd/euchred/shared"
	"github.com/lox/euchred/internal/bot"
	"github.com/lox/euchred/internal/game"
	"github.com/lox/euchred/internal/randutil"
	"github.com/lox/euchred/internal/server"
)

// SpawnCmd starts a server and four in-process bots, plays a game to
// completion, and shuts everything down. Useful for demos and smoke tests.
type SpawnCmd struct {
	Config string `kong:"help='HCL config file defining tables and bots (optional)'"`
	Addr   string `kong:"default='localhost:0',help='Server address, defaults to a random port on localhost'"`
	Seed   int64  `kong:"help='Seed for deterministic play (0 for random)'"`
	Watch  bool   `kong:"default='true',help='Render the first seat view of the game'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *SpawnCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)
	ctx := shared.SetupSignalHandlerWithLogger(logger)

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("spawning table", "seed", seed)

	var cfg *server.Config
	if c.Config != "" {
		loaded, err := server.LoadConfig(c.Config)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
	} else {
		cfg = server.DefaultConfig()
		cfg.Tables = []server.TableConfig{{Name: "main", Seed: &seed}}
	}

	listener, err := net.Listen("tcp", c.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	wsURL := fmt.Sprintf("ws://%s/ws", listener.Addr())

	srv := server.NewServer(cfg, logger, quartz.NewReal())
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(listener); err != nil {
			serverErr <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := waitForHealthy(ctx, fmt.Sprintf("http://%s", listener.Addr())); err != nil {
		return fmt.Errorf("server failed to start: %w", err)
	}
	logger.Info("server started", "url", wsURL)

	group, groupCtx := errgroup.WithContext(ctx)
	for i, bc := range botConfigs(cfg) {
		var watch io.Writer
		if c.Watch && i == 0 {
			watch = os.Stdout
		}

		b := bot.New(bot.Config{
			URL:     wsURL,
			Name:    bc.name,
			TableID: bc.table,
			Seat:    bc.seat,
			Seed:    seed + int64(i),
			Watch:   watch,
		}, logger, randutil.New(seed+int64(i)))

		group.Go(func() error {
			return b.Run(groupCtx)
		})
	}

	done := make(chan error, 1)
	go func() { done <- group.Wait() }()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return nil
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case err := <-done:
		if err != nil {
			return fmt.Errorf("bot failure: %w", err)
		}
		logger.Info("game complete")
		return nil
	}
}

type botSeat struct {
	name  string
	table string
	seat  string
}

// botConfigs lists the bots to run: the config's bot blocks when present,
// otherwise one bot per seat at the first table.
func botConfigs(cfg *server.Config) []botSeat {
	if len(cfg.Bots) > 0 {
		var bots []botSeat
		for _, bc := range cfg.Bots {
			tables := bc.Tables
			if len(tables) == 0 && len(cfg.Tables) > 0 {
				tables = []string{cfg.Tables[0].Name}
			}
			for _, table := range tables {
				bots = append(bots, botSeat{name: bc.Name, table: table, seat: bc.Seat})
			}
		}
		return bots
	}

	table := ""
	if len(cfg.Tables) > 0 {
		table = cfg.Tables[0].Name
	}
	var bots []botSeat
	for _, seat := range game.DefaultPlayerOrder {
		bots = append(bots, botSeat{
			name:  fmt.Sprintf("bot-%s", seat),
			table: table,
			seat:  string(seat),
		})
	}
	return bots
}

func waitForHealthy(ctx context.Context, baseURL string) error {
	healthURL := fmt.Sprintf("%s/health", baseURL)
	client := &http.Client{Timeout: 100 * time.Millisecond}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
		if err != nil {
			return err
		}

		resp, err := client.Do(req)
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return nil
		}
		if resp != nil {
			resp.Body.Close()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}

	return fmt.Errorf("server failed to become healthy within timeout")
}
