package io

import (
	"fmt"
	"image"
	"image/color"

	"github.com/nfnt/resize"

	"ssao-engine/ssao"
	"ssao-engine/textures"
)

// DepthFormat selects how depth is stored in an image file.
type DepthFormat string

const (
	// DepthGray16 is a 16-bit gray image holding linear depth / far.
	DepthGray16 DepthFormat = "gray16"
	// DepthPacked is an 8-bit RGB image with depth / far split across red
	// (high byte) and green (low byte).
	DepthPacked DepthFormat = "packed"
	// DepthNDC is a 16-bit gray image holding hardware [0, 1] depth from a
	// perspective projection.
	DepthNDC DepthFormat = "ndc"
)

// DepthFormats lists the accepted formats.
var DepthFormats = []DepthFormat{DepthGray16, DepthPacked, DepthNDC}

// ParseDepthFormat validates a format name.
func ParseDepthFormat(s string) (DepthFormat, error) {
	for _, f := range DepthFormats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown depth format %q (want one of %v)", s, DepthFormats)
}

// DepthOptions describe how to turn image values into linear distances.
type DepthOptions struct {
	Format DepthFormat
	Near   float32 // used by DepthNDC
	Far    float32

	// Width and Height resample the depth image with nearest-neighbor
	// filtering when non-zero.
	Width, Height int
}

// LoadDepth reads a depth image into a depth buffer. Values at or beyond
// the far plane mean "no geometry".
func LoadDepth(path string, opts DepthOptions) (*textures.DepthBuffer, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	d, err := DepthFromImage(img, opts)
	if err != nil {
		return nil, fmt.Errorf("depth %q: %w", path, err)
	}
	return d, nil
}

// DepthFromImage decodes depth from img. Rows are flipped so that the
// bottom of the picture becomes row 0.
func DepthFromImage(img image.Image, opts DepthOptions) (*textures.DepthBuffer, error) {
	if !(opts.Far > 0) {
		return nil, fmt.Errorf("far plane must be positive, got %v", opts.Far)
	}
	if opts.Format == DepthNDC && !(opts.Near > 0 && opts.Near < opts.Far) {
		return nil, fmt.Errorf("near plane must be in (0, far), got %v", opts.Near)
	}

	// Depth must never be blended, so scaling is always nearest-neighbor.
	if opts.Width > 0 && opts.Height > 0 {
		b := img.Bounds()
		if b.Dx() != opts.Width || b.Dy() != opts.Height {
			img = resize.Resize(uint(opts.Width), uint(opts.Height), img, resize.NearestNeighbor)
		}
	}

	b := img.Bounds()
	d, err := textures.NewDepthBuffer(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	var decode func(c color.Color) float32
	switch opts.Format {
	case DepthGray16, "":
		decode = func(c color.Color) float32 {
			g := color.Gray16Model.Convert(c).(color.Gray16)
			return float32(g.Y) / 0xffff * opts.Far
		}
	case DepthNDC:
		decode = func(c color.Color) float32 {
			g := color.Gray16Model.Convert(c).(color.Gray16)
			return ssao.LinearizeDepth(float32(g.Y)/0xffff, opts.Near, opts.Far)
		}
	case DepthPacked:
		decode = func(c color.Color) float32 {
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			return ssao.UnpackDepthBytes(n.R, n.G, opts.Far)
		}
	default:
		return nil, fmt.Errorf("unknown depth format %q", opts.Format)
	}

	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			d.Set(x, d.Height-1-y, decode(img.At(b.Min.X+x, b.Min.Y+y)))
		}
	}
	return d, nil
}

// PackedDepthImage encodes level 0 of d in the DepthPacked layout.
func PackedDepthImage(d *textures.DepthBuffer, far float32) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, d.Width, d.Height))
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			hi, lo := ssao.PackDepthBytes(d.At(x, d.Height-1-y), 1/far)
			img.SetNRGBA(x, y, color.NRGBA{R: hi, G: lo, A: 0xff})
		}
	}
	return img
}

// Gray16DepthImage encodes level 0 of d in the DepthGray16 layout.
func Gray16DepthImage(d *textures.DepthBuffer, far float32) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, d.Width, d.Height))
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			z := d.At(x, d.Height-1-y) / far
			img.SetGray16(x, y, color.Gray16{Y: unorm16(z)})
		}
	}
	return img
}
