package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Server  ServerCmd        `cmd:"" help:"Run the euchre server"`
	Bot     BotCmd           `cmd:"" help:"Run a built-in bot against a server"`
	Spawn   SpawnCmd         `cmd:"" help:"Spawn a server with bots for testing/demos"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("euchred"),
		kong.Description("Euchre server for four-seat team play"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
