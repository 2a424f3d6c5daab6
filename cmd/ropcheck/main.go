package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// Run using
//  go run ./cmd/ropcheck <command> <flags>

var (
	logLevelFlag = cli.StringFlag{
		Name:    "log-level",
		Usage:   "zerolog level (trace, debug, info, warn, error)",
		Value:   "debug",
		EnvVars: []string{"ROPCHECK_LOG_LEVEL"},
	}
	timeoutFlag = cli.DurationFlag{
		Name:    "timeout",
		Usage:   "upper bound for a single validation",
		Value:   time.Second,
		EnvVars: []string{"ROPCHECK_TIMEOUT"},
	}
)

func main() {
	app := &cli.App{
		Name:  "ropcheck",
		Usage: "validate signups with railway-oriented results",
		Flags: []cli.Flag{
			&logLevelFlag,
			&timeoutFlag,
		},
		Commands: []*cli.Command{
			&Validate,
			&Serve,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(c *cli.Context) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(c.String(logLevelFlag.Name))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Str("app", c.App.Name).
		Logger(), nil
}
