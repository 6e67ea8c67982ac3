package textures

import (
	"fmt"

	"ssao-engine/math"
)

// DepthBuffer stores positive linear eye distances, bottom row first, with
// an optional mip chain used by wide occlusion taps.
type DepthBuffer struct {
	Width  int
	Height int
	levels []depthLevel
}

type depthLevel struct {
	width, height int
	data          []float32
}

// NewDepthBuffer allocates a width x height depth buffer with a single level.
func NewDepthBuffer(width, height int) (*DepthBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("depth buffer: invalid size %dx%d", width, height)
	}
	return &DepthBuffer{
		Width:  width,
		Height: height,
		levels: []depthLevel{{width, height, make([]float32, width*height)}},
	}, nil
}

// Data returns level 0 for direct writes. BuildMips must be called again
// after modifying it.
func (d *DepthBuffer) Data() []float32 {
	return d.levels[0].data
}

// At returns the level 0 depth at (x, y).
func (d *DepthBuffer) At(x, y int) float32 {
	return d.levels[0].data[y*d.Width+x]
}

// Set writes the level 0 depth at (x, y).
func (d *DepthBuffer) Set(x, y int, depth float32) {
	d.levels[0].data[y*d.Width+x] = depth
}

// CopyFrom replaces d with level 0 of src and drops d's mip chain. Both
// must have the same size.
func (d *DepthBuffer) CopyFrom(src *DepthBuffer) error {
	if src.Width != d.Width || src.Height != d.Height {
		return fmt.Errorf("copy depth: size %dx%d != %dx%d", src.Width, src.Height, d.Width, d.Height)
	}
	d.levels = d.levels[:1]
	copy(d.levels[0].data, src.levels[0].data)
	return nil
}

// Levels reports how many mip levels are built.
func (d *DepthBuffer) Levels() int {
	return len(d.levels)
}

// LevelSize returns the dimensions of a mip level.
func (d *DepthBuffer) LevelSize(level int) (width, height int) {
	l := d.levels[math.ClampInt(level, 0, len(d.levels)-1)]
	return l.width, l.height
}

// LevelData returns the texels of a mip level, bottom row first.
func (d *DepthBuffer) LevelData(level int) []float32 {
	return d.levels[math.ClampInt(level, 0, len(d.levels)-1)].data
}

// LinearDepth samples level at uv with nearest filtering and clamp-to-edge
// addressing. Levels past the built chain read the smallest one.
func (d *DepthBuffer) LinearDepth(uv math.Vec2, level int) float32 {
	l := &d.levels[math.ClampInt(level, 0, len(d.levels)-1)]
	x := math.ClampInt(int(floor(uv.X*float32(l.width))), 0, l.width-1)
	y := math.ClampInt(int(floor(uv.Y*float32(l.height))), 0, l.height-1)
	return l.data[y*l.width+x]
}

// BuildMips rebuilds the chain down to maxLevel (or 1x1, whichever comes
// first). Each texel of level n+1 takes one texel of level n from its 2x2
// footprint, alternating the pick on a rotated grid so that thin features
// survive in both directions. Depths are never averaged.
func (d *DepthBuffer) BuildMips(maxLevel int) {
	d.levels = d.levels[:1]
	for len(d.levels) <= maxLevel {
		src := d.levels[len(d.levels)-1]
		if src.width == 1 && src.height == 1 {
			break
		}
		dst := depthLevel{width: max(1, src.width/2), height: max(1, src.height/2)}
		dst.data = make([]float32, dst.width*dst.height)
		for y := 0; y < dst.height; y++ {
			for x := 0; x < dst.width; x++ {
				sx := min(2*x+(y&1), src.width-1)
				sy := min(2*y+(x&1), src.height-1)
				dst.data[y*dst.width+x] = src.data[sy*src.width+sx]
			}
		}
		d.levels = append(d.levels, dst)
	}
}
