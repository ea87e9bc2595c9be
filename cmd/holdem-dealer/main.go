package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/lox/holdem-dealer/internal/bot"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Server  ServerCmd        `cmd:"" help:"Deal one game to players that connect"`
	Bot     BotCmd           `cmd:"" help:"Connect a built-in bot to a dealer"`
	Spawn   SpawnCmd         `cmd:"" help:"Run a dealer with a table full of bots"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem-dealer"),
		kong.Description("Texas Hold'em dealer speaking a line-based text protocol"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
			"bots":    strings.Join(bot.Names(), ", "),
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
