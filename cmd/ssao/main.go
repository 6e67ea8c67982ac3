package main

import (
	"os"

	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "ssao"
	app.Usage = "apply screen-space ambient occlusion to a depth and color image pair"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, notice, warning or error",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render one frame",
			Description: `
Read a linear depth image and a color image, compute ambient obscurance
(optionally with contact shadows from one directional light), blur it with a
depth-aware bilateral filter and write the composited result.

The color image is resampled to the size of the depth image, and both to
--width x --height when those are given. With --ao-only
the color argument may be omitted and the occlusion is written on white.`,
			ArgsUsage: "depth_image [color_image]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "ssao.png",
					Usage: "output image (png, tiff or bmp)",
				},
				cli.StringFlag{
					Name:  "settings, s",
					Usage: "JSON settings file; missing fields keep their defaults",
				},
				cli.StringFlag{
					Name:  "backend, b",
					Value: "software",
					Usage: "software or opengl",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Value: 0,
					Usage: "software backend worker count (0 = one per CPU)",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "render width; the depth image is resampled (nearest) when set",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "render height; the depth image is resampled (nearest) when set",
				},
				cli.StringFlag{
					Name:  "depth-format",
					Value: "gray16",
					Usage: "depth encoding: gray16, packed or ndc",
				},
				cli.Float64Flag{
					Name:  "near",
					Value: 0.1,
					Usage: "near plane, used by the ndc depth format",
				},
				cli.Float64Flag{
					Name:  "far",
					Usage: "far plane; overrides the settings value when set",
				},
				cli.BoolFlag{
					Name:  "contact-shadows",
					Usage: "enable contact shadows with default parameters unless the settings define them",
				},
				cli.BoolFlag{
					Name:  "ao-only",
					Usage: "composite over white instead of the color image",
				},
				cli.StringFlag{
					Name:  "depth-out",
					Usage: "also write the depth buffer in the packed format",
				},
				cli.IntFlag{
					Name:  "frames",
					Value: 1,
					Usage: "render the frame this many times and report the last timing",
				},
			},
			Action: RenderFrame,
		},
		{
			Name:      "kernel",
			Usage:     "print the bilateral blur kernel",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.Float64Flag{
					Name:  "sigma",
					Value: 10,
					Usage: "spatial sigma in pixels",
				},
			},
			Action: PrintKernel,
		},
		{
			Name:      "defaults",
			Usage:     "write the default settings as JSON",
			ArgsUsage: "settings.json",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "contact-shadows",
					Usage: "include default contact shadow settings",
				},
			},
			Action: WriteDefaults,
		},
	}

	return app
}
