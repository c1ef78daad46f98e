package main

import (
	"github.com/mamaar/rustgo/internal/cli"
	"github.com/mamaar/rustgo/internal/cli/commands"
)

func main() {
	app := cli.NewApp()
	app.Initialize()

	runner := cli.NewRunner()
	runner.RegisterCommand("build", commands.BuildCommand)
	runner.RegisterCommand("check", commands.CheckCommand)
	runner.RegisterCommand("tokens", commands.TokensCommand)
	runner.RegisterCommand("ast", commands.AstCommand)
	runner.RegisterCommand("watch", commands.WatchCommand)
	runner.RegisterCommand("version", commands.VersionCommand)
	runner.RegisterCommand("help", commands.HelpCommand)

	app.Run(runner)
}
