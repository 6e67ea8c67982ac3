package renderer

import (
	"fmt"

	"ssao-engine/core"
	"ssao-engine/ssao"
	"ssao-engine/textures"
)

// Pass names reported in FrameStats.
const (
	PassOcclusion = "occlusion"
	PassBlur      = "blur+composite"
)

// Backend executes the two full-screen passes of the effect.
//
// Execute reads depth and color, which must match the frame size in p, and
// writes the composited result into the pixels of out covered by rect.
// Pixels outside rect are left untouched.
type Backend interface {
	Name() string
	Resize(width, height int) error
	Execute(p *ssao.FrameParameters, depth *textures.DepthBuffer, color, out *textures.Texture, rect core.Rect) (FrameStats, error)
	Close() error
}

// CheckInputs validates the images handed to Execute against the frame.
func CheckInputs(p *ssao.FrameParameters, depth *textures.DepthBuffer, color, out *textures.Texture) error {
	switch {
	case p == nil:
		return fmt.Errorf("%w: frame parameters", ErrNilInput)
	case depth == nil:
		return fmt.Errorf("%w: depth", ErrNilInput)
	case color == nil:
		return fmt.Errorf("%w: color", ErrNilInput)
	case out == nil:
		return fmt.Errorf("%w: output", ErrNilInput)
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, p.Width, p.Height)
	}

	for _, img := range []struct {
		name string
		w, h int
	}{
		{"depth", depth.Width, depth.Height},
		{"color", color.Width, color.Height},
		{"output", out.Width, out.Height},
	} {
		if img.w != p.Width || img.h != p.Height {
			return fmt.Errorf("%w: %s is %dx%d, frame is %dx%d", ErrSizeMismatch, img.name, img.w, img.h, p.Width, p.Height)
		}
	}
	return nil
}
