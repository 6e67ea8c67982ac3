package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"ssao-engine/internal/opengl"
	ssaoio "ssao-engine/io"
	"ssao-engine/math"
	"ssao-engine/renderer"
	"ssao-engine/ssao"
	"ssao-engine/textures"
)

// RenderFrame implements the render command.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() < 1 || ctx.NArg() > 2 {
		return errors.New("expected a depth image and an optional color image")
	}
	aoOnly := ctx.Bool("ao-only")
	if ctx.NArg() == 1 && !aoOnly {
		return errors.New("missing color image argument (or pass --ao-only)")
	}

	settings, err := loadSettings(ctx)
	if err != nil {
		return err
	}

	format, err := ssaoio.ParseDepthFormat(ctx.String("depth-format"))
	if err != nil {
		return err
	}
	depth, err := ssaoio.LoadDepth(ctx.Args().Get(0), ssaoio.DepthOptions{
		Format: format,
		Near:   float32(ctx.Float64("near")),
		Far:    settings.FarPlane,
		Width:  ctx.Int("width"),
		Height: ctx.Int("height"),
	})
	if err != nil {
		return err
	}
	logger.Infof("depth %dx%d", depth.Width, depth.Height)

	var color *textures.Texture
	if aoOnly {
		color, err = textures.NewSolidTexture("white", depth.Width, depth.Height, math.Vec4{X: 1, Y: 1, Z: 1, W: 1})
	} else {
		color, err = ssaoio.LoadColor(ctx.Args().Get(1), depth.Width, depth.Height)
	}
	if err != nil {
		return err
	}

	out, err := textures.NewTexture("out", depth.Width, depth.Height)
	if err != nil {
		return err
	}

	backend, cleanup, err := newBackend(ctx, depth.Width, depth.Height)
	if err != nil {
		return err
	}
	defer cleanup()

	effect, err := renderer.NewEffect(backend, settings)
	if err != nil {
		return err
	}

	frames := ctx.Int("frames")
	if frames < 1 {
		frames = 1
	}
	var stats renderer.FrameStats
	for i := 0; i < frames; i++ {
		if stats, err = effect.Render(depth, color, out); err != nil {
			return err
		}
	}

	if err := ssaoio.SaveTexture(ctx.String("out"), out); err != nil {
		return err
	}
	logger.Noticef("wrote %s", ctx.String("out"))

	if path := ctx.String("depth-out"); path != "" {
		if err := ssaoio.SaveImage(path, ssaoio.PackedDepthImage(depth, settings.FarPlane)); err != nil {
			return err
		}
		logger.Noticef("wrote %s", path)
	}

	displayFrameStats(stats)
	return nil
}

func loadSettings(ctx *cli.Context) (ssao.Settings, error) {
	settings := ssao.DefaultSettings()
	if path := ctx.String("settings"); path != "" {
		var err error
		if settings, err = ssao.LoadSettings(path); err != nil {
			return settings, err
		}
	}
	if far := ctx.Float64("far"); far != 0 {
		settings.FarPlane = float32(far)
	}
	if ctx.Bool("contact-shadows") && settings.ContactShadows == nil {
		settings.ContactShadows = ssao.DefaultContactShadowSettings()
	}
	return settings, settings.Validate()
}

// newBackend returns the requested backend and a function that releases it
// together with any window it needed.
func newBackend(ctx *cli.Context, width, height int) (renderer.Backend, func(), error) {
	switch name := ctx.String("backend"); name {
	case "software":
		b := renderer.NewSoftwareBackend(ctx.Int("workers"))
		return b, func() { b.Close() }, nil
	case "opengl":
		glCtx, err := opengl.NewContext(opengl.DefaultContextConfig())
		if err != nil {
			return nil, nil, err
		}
		logger.Infof("GL %s on %s", glCtx.Version, glCtx.Renderer)
		b, err := opengl.NewBackend(width, height)
		if err != nil {
			glCtx.Destroy()
			return nil, nil, err
		}
		return b, func() {
			b.Close()
			glCtx.Destroy()
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", name)
	}
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pass", "Worker", "Rows", "% of pass", "Render time"})
	for _, pass := range stats.Passes {
		if len(pass.Bands) == 0 {
			table.Append([]string{pass.Name, "-", "-", "100.0 %", pass.RenderTime.String()})
			continue
		}
		for _, band := range pass.Bands {
			table.Append([]string{
				pass.Name,
				fmt.Sprintf("%d", band.Worker),
				fmt.Sprintf("%d", band.Rows),
				fmt.Sprintf("%02.1f %%", band.FramePercent),
				band.RenderTime.String(),
			})
		}
	}
	table.SetFooter([]string{stats.Backend, "", fmt.Sprintf("%dx%d", stats.Width, stats.Height), "TOTAL", stats.RenderTime.String()})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
