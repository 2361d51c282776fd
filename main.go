package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	app := &cli.Command{
		Name:    "tflash",
		Usage:   "Listen to your AI news briefings from the terminal",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file to load (repeatable, last wins)",
			},
			&cli.BoolFlag{
				Name:  "fresh",
				Usage: "do not restore the previous session",
			},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			tuiCommand(),
			libraryCommand(),
			playCommand(),
			serveCommand(),
			generateCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
