package ssao

import "ssao-engine/math"

// Geometry is the view-space surface reconstructed under one pixel.
type Geometry struct {
	Position math.Vec3
	Normal   math.Vec3
}

// ViewPosition reconstructs a view-space position from a texture coordinate
// and a view-space Z (negative in front of the camera).
func ViewPosition(uv math.Vec2, z, aspect float32) math.Vec3 {
	return math.Vec3{
		X: (0.5 - uv.X) * aspect * z,
		Y: (0.5 - uv.Y) * z,
		Z: z,
	}
}

// ScreenFromView projects a view-space position back to texture space with
// the same projection ViewPosition inverts. W is the positive eye distance.
func ScreenFromView(pos math.Vec3, aspect float32) (uv math.Vec2, w float32) {
	return math.Vec2{
		X: 0.5 - pos.X/(aspect*pos.Z),
		Y: 0.5 - pos.Y/pos.Z,
	}, -pos.Z
}

// NormalFromDepth builds the surface normal by differencing the positions
// one texel to the right and one texel up.
func NormalFromDepth(p *FrameParameters, depth DepthSampler, uv math.Vec2, position math.Vec3) math.Vec3 {
	uvX := math.Vec2{X: uv.X + p.InvWidth, Y: uv.Y}
	uvY := math.Vec2{X: uv.X, Y: uv.Y + p.InvHeight}

	px := ViewPosition(uvX, -sceneDepth(p, depth, uvX, 0), p.Aspect)
	py := ViewPosition(uvY, -sceneDepth(p, depth, uvY, 0), p.Aspect)

	return px.Sub(position).Cross(py.Sub(position)).Normalize()
}

// NormalFromDerivatives builds the normal the way screen-space derivatives
// would: differences are taken across the 2x2 pixel quad containing (x, y),
// so all four pixels of a quad share one normal.
func NormalFromDerivatives(p *FrameParameters, depth DepthSampler, x, y int) math.Vec3 {
	x0, y0 := x&^1, y&^1
	x1, y1 := min(x0+1, p.Width-1), min(y0+1, p.Height-1)

	at := func(px, py int) math.Vec3 {
		uv := p.PixelUV(px, py)
		return ViewPosition(uv, -sceneDepth(p, depth, uv, 0), p.Aspect)
	}
	base := at(x0, y0)
	dpdx := at(x1, y0).Sub(base)
	dpdy := at(x0, y1).Sub(base)
	return dpdx.Cross(dpdy).Normalize()
}

// ReconstructGeometry returns the surface under pixel (x, y) and whether the
// pixel holds geometry at all. Empty, invalid and far-plane depths report
// false.
func ReconstructGeometry(p *FrameParameters, depth DepthSampler, x, y int) (Geometry, bool) {
	uv := p.PixelUV(x, y)
	d := depth.LinearDepth(uv, 0)
	if !(d > 0) || d >= p.FarPlane || !math.IsFinite(d) {
		return Geometry{}, false
	}

	position := ViewPosition(uv, -d, p.Aspect)
	var normal math.Vec3
	if p.DerivativeNormals {
		normal = NormalFromDerivatives(p, depth, x, y)
	} else {
		normal = NormalFromDepth(p, depth, uv, position)
	}
	if normal.LengthSqr() == 0 {
		normal = math.Vec3Front
	}
	return Geometry{Position: position, Normal: normal}, true
}
