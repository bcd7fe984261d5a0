package main

import (
	"io"
	"os"
	"time"

	"github.com/lox/euchred/cmd/euchred/shared"
	"github.com/lox/euchred/internal/bot"
	"github.com/lox/euchred/internal/randutil"
)

// BotCmd runs one built-in bot against a running server
type BotCmd struct {
	Server string `kong:"default='ws://localhost:8080/ws',help='Server websocket URL'"`
	Name   string `kong:"default='bot',help='Player name'"`
	Table  string `kong:"help='Table to join (defaults to the server default)'"`
	Seat   string `kong:"help='Seat to take: north, east, south or west (defaults to first open)'"`
	Seed   int64  `kong:"help='Seed for deterministic play (0 for random)'"`
	Watch  bool   `kong:"help='Render table snapshots and narration to stdout'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *BotCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var watch io.Writer
	if c.Watch {
		watch = os.Stdout
	}

	b := bot.New(bot.Config{
		URL:     c.Server,
		Name:    c.Name,
		TableID: c.Table,
		Seat:    c.Seat,
		Seed:    seed,
		Watch:   watch,
	}, logger, randutil.New(seed))

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	return b.Run(ctx)
}
