package main

import (
	"github.com/urfave/cli"

	"ssao-engine/log"
)

var logger = log.New("ssao")

// setupLogging applies --log-level, then lets -v and -vv raise the
// verbosity further.
func setupLogging(ctx *cli.Context) error {
	if name := ctx.GlobalString("log-level"); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}

	switch {
	case ctx.GlobalBool("vv"):
		log.SetLevel(log.Debug)
	case ctx.GlobalBool("v") && log.CurrentLevel() > log.Info:
		log.SetLevel(log.Info)
	}
	return nil
}
