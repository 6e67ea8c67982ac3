package textures

import (
	"fmt"

	"ssao-engine/math"
)

// Texture is a CPU-side RGBA float render target. Rows are stored bottom to
// top, like a GL texture: row 0 is the bottom of the image.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pix holds 4 floats per texel, row-major.
	Pix []float32
}

// NewTexture allocates a zeroed width x height texture.
func NewTexture(name string, width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("texture %q: invalid size %dx%d", name, width, height)
	}
	return &Texture{
		Name:   name,
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*4),
	}, nil
}

// NewSolidTexture creates a texture filled with one value.
func NewSolidTexture(name string, width, height int, v math.Vec4) (*Texture, error) {
	t, err := NewTexture(name, width, height)
	if err != nil {
		return nil, err
	}
	t.Fill(v)
	return t, nil
}

func (t *Texture) offset(x, y int) int {
	return (y*t.Width + x) * 4
}

// At returns the texel at (x, y). Coordinates must be in range.
func (t *Texture) At(x, y int) math.Vec4 {
	i := t.offset(x, y)
	p := t.Pix[i : i+4 : i+4]
	return math.Vec4{X: p[0], Y: p[1], Z: p[2], W: p[3]}
}

// Set writes the texel at (x, y). Coordinates must be in range.
func (t *Texture) Set(x, y int, v math.Vec4) {
	i := t.offset(x, y)
	p := t.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = v.X, v.Y, v.Z, v.W
}

// Texel returns the texel at (x, y) with clamp-to-edge addressing.
func (t *Texture) Texel(x, y int) math.Vec4 {
	return t.At(math.ClampInt(x, 0, t.Width-1), math.ClampInt(y, 0, t.Height-1))
}

// Sample is a nearest-filtered, edge-clamped lookup at uv.
func (t *Texture) Sample(uv math.Vec2) math.Vec4 {
	return t.Texel(int(floor(uv.X*float32(t.Width))), int(floor(uv.Y*float32(t.Height))))
}

// SampleRGB drops alpha from Sample.
func (t *Texture) SampleRGB(uv math.Vec2) math.Vec3 {
	return t.Sample(uv).ToVec3()
}

// Fill sets every texel to v.
func (t *Texture) Fill(v math.Vec4) {
	for i := 0; i < len(t.Pix); i += 4 {
		t.Pix[i], t.Pix[i+1], t.Pix[i+2], t.Pix[i+3] = v.X, v.Y, v.Z, v.W
	}
}

// CopyFrom copies src into t. Both must have the same size.
func (t *Texture) CopyFrom(src *Texture) error {
	if src.Width != t.Width || src.Height != t.Height {
		return fmt.Errorf("copy %q into %q: size %dx%d != %dx%d",
			src.Name, t.Name, src.Width, src.Height, t.Width, t.Height)
	}
	copy(t.Pix, src.Pix)
	return nil
}

// floor converts without the int truncation towards zero for negative
// coordinates.
func floor(x float32) float32 {
	i := float32(int(x))
	if x < i {
		return i - 1
	}
	return i
}
