package main

import (
	"errors"

	"github.com/urfave/cli"

	"ssao-engine/ssao"
)

// WriteDefaults implements the defaults command.
func WriteDefaults(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing settings file argument")
	}
	s := ssao.DefaultSettings()
	if ctx.Bool("contact-shadows") {
		s.ContactShadows = ssao.DefaultContactShadowSettings()
	}
	if err := ssao.SaveSettings(ctx.Args().First(), s); err != nil {
		return err
	}
	logger.Noticef("wrote %s", ctx.Args().First())
	return nil
}
