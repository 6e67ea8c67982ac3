package ssao

import "ssao-engine/math"

// DepthSampler returns the positive linear eye distance stored at uv in the
// given mip level. Samplers clamp uv to the edge and use nearest filtering.
type DepthSampler interface {
	LinearDepth(uv math.Vec2, level int) float32
}

// ColorSampler returns the scene color at uv.
type ColorSampler interface {
	SampleRGB(uv math.Vec2) math.Vec3
}

// TexelFetcher returns the texel at integer coordinates, clamped to the
// edge. The blur pass reads the intermediate target through it.
type TexelFetcher interface {
	Texel(x, y int) math.Vec4
}

// sceneDepth fetches a tap depth. Anything that is not a usable distance is
// pushed to the far plane, where it no longer occludes.
func sceneDepth(p *FrameParameters, depth DepthSampler, uv math.Vec2, level int) float32 {
	d := depth.LinearDepth(uv, level)
	if !(d > 0) || d > p.FarPlane || !math.IsFinite(d) {
		return p.FarPlane
	}
	return d
}
