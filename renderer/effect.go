package renderer

import (
	"fmt"

	"ssao-engine/core"
	"ssao-engine/log"
	"ssao-engine/ssao"
	"ssao-engine/textures"
)

// Effect drives a Backend frame by frame: it turns Settings into frame
// parameters for the current viewport, keeps the backend sized and rebuilds
// the depth mips the taps need from every new frame.
type Effect struct {
	logger   log.Logger
	backend  Backend
	settings ssao.Settings

	viewport core.Viewport
	frames   int

	// pyramid holds this frame's depth mips; the caller's buffer is only
	// read.
	pyramid *textures.DepthBuffer
}

// NewEffect validates s and wraps backend.
func NewEffect(backend Backend, s ssao.Settings) (*Effect, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: backend", ErrNilInput)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Effect{
		logger:   log.New("effect"),
		backend:  backend,
		settings: s,
	}, nil
}

// Settings returns the active settings.
func (e *Effect) Settings() ssao.Settings {
	return e.settings
}

// SetSettings swaps the settings used from the next frame on. Invalid
// settings are rejected and the previous ones stay active.
func (e *Effect) SetSettings(s ssao.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	e.settings = s
	return nil
}

// Frames reports how many frames were rendered.
func (e *Effect) Frames() int {
	return e.frames
}

// Render applies the effect to a full frame.
func (e *Effect) Render(depth *textures.DepthBuffer, color, out *textures.Texture) (FrameStats, error) {
	if out == nil {
		return FrameStats{}, fmt.Errorf("%w: output", ErrNilInput)
	}
	return e.RenderRect(depth, color, out, core.FullRect(out.Width, out.Height))
}

// RenderRect applies the effect and only writes the pixels of out inside
// rect.
func (e *Effect) RenderRect(depth *textures.DepthBuffer, color, out *textures.Texture, rect core.Rect) (FrameStats, error) {
	if depth == nil || color == nil || out == nil {
		return FrameStats{}, fmt.Errorf("%w: render inputs", ErrNilInput)
	}

	vp := core.Viewport{Width: out.Width, Height: out.Height}
	if !vp.Valid() {
		return FrameStats{}, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, vp.Width, vp.Height)
	}
	if vp != e.viewport {
		e.logger.Infof("viewport %dx%d", vp.Width, vp.Height)
		if err := e.backend.Resize(vp.Width, vp.Height); err != nil {
			return FrameStats{}, fmt.Errorf("resize %s backend: %w", e.backend.Name(), err)
		}
		e.viewport = vp
	}

	p := ssao.NewFrameParameters(e.settings, vp.Width, vp.Height)
	if p.MaxLevel > 0 {
		var err error
		if depth, err = e.buildPyramid(depth, p.MaxLevel); err != nil {
			return FrameStats{}, err
		}
	}

	stats, err := e.backend.Execute(&p, depth, color, out, rect)
	if err != nil {
		return stats, fmt.Errorf("%s backend: %w", e.backend.Name(), err)
	}
	e.frames++
	e.logger.Debugf("frame %d rendered in %v", e.frames, stats.RenderTime)
	return stats, nil
}

// buildPyramid copies level 0 of depth into the effect's own buffer and
// builds mips down to maxLevel.
func (e *Effect) buildPyramid(depth *textures.DepthBuffer, maxLevel int) (*textures.DepthBuffer, error) {
	if e.pyramid == nil || e.pyramid.Width != depth.Width || e.pyramid.Height != depth.Height {
		pyramid, err := textures.NewDepthBuffer(depth.Width, depth.Height)
		if err != nil {
			return nil, err
		}
		e.pyramid = pyramid
	}
	if err := e.pyramid.CopyFrom(depth); err != nil {
		return nil, err
	}
	e.pyramid.BuildMips(maxLevel)
	return e.pyramid, nil
}
