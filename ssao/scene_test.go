package ssao

import (
	"ssao-engine/math"
)

// pixelDepth is a depth image defined per pixel center. It samples like a
// nearest-filtered, edge-clamped texture.
type pixelDepth struct {
	width, height int
	at            func(x, y int) float32
}

func (d pixelDepth) LinearDepth(uv math.Vec2, level int) float32 {
	x := math.ClampInt(int(uv.X*float32(d.width)), 0, d.width-1)
	y := math.ClampInt(int(uv.Y*float32(d.height)), 0, d.height-1)
	return d.at(x, y)
}

// viewRay returns the horizontal and vertical slopes of the ray through
// the center of pixel (x, y).
func viewRay(width, height, x, y int) (sx, sy float32) {
	aspect := float32(width) / float32(height)
	u := (float32(x) + 0.5) / float32(width)
	v := (float32(y) + 0.5) / float32(height)
	return (u - 0.5) * aspect, v - 0.5
}

func flatScene(width, height int, depth float32) pixelDepth {
	return pixelDepth{width, height, func(int, int) float32 { return depth }}
}

// valleyScene is a V-shaped crease running away from the camera down the
// middle column: z = -dist + slope*|x|.
func valleyScene(width, height int, dist, slope float32) pixelDepth {
	return pixelDepth{width, height, func(x, y int) float32 {
		sx, _ := viewRay(width, height, x, y)
		return dist / (1 + slope*abs32(sx))
	}}
}

// ridgeScene is the convex counterpart of valleyScene: z = -dist - slope*|x|.
func ridgeScene(width, height int, dist, slope float32) pixelDepth {
	return pixelDepth{width, height, func(x, y int) float32 {
		sx, _ := viewRay(width, height, x, y)
		return dist / (1 - slope*abs32(sx))
	}}
}

// planeScene is the plane z = -dist - a*x - b*y, tilted away from the
// camera unless a and b are zero.
func planeScene(width, height int, dist, a, b float32) pixelDepth {
	return pixelDepth{width, height, func(x, y int) float32 {
		sx, sy := viewRay(width, height, x, y)
		return dist / (1 - a*sx - b*sy)
	}}
}

// stepScene puts a near plane left of column edge and a far plane right of
// it.
func stepScene(width, height, edge int, near, far float32) pixelDepth {
	return pixelDepth{width, height, func(x, y int) float32 {
		if x < edge {
			return near
		}
		return far
	}}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func approx(a, b, tolerance float32) bool {
	return abs32(a-b) <= tolerance
}

// texelImage is an RGBA grid for the blur pass.
type texelImage struct {
	width, height int
	texels        []math.Vec4
}

func newTexelImage(width, height int, fill func(x, y int) math.Vec4) *texelImage {
	img := &texelImage{width: width, height: height, texels: make([]math.Vec4, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.texels[y*width+x] = fill(x, y)
		}
	}
	return img
}

func (t *texelImage) Texel(x, y int) math.Vec4 {
	x = math.ClampInt(x, 0, t.width-1)
	y = math.ClampInt(y, 0, t.height-1)
	return t.texels[y*t.width+x]
}

type constantColor math.Vec3

func (c constantColor) SampleRGB(math.Vec2) math.Vec3 {
	return math.Vec3(c)
}
