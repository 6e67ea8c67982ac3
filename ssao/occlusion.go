package ssao

import (
	"github.com/chewxy/math32"

	"ssao-engine/math"
)

// mipLevel picks the depth mip for a tap ssRadius pixels away.
func mipLevel(ssRadius float32, maxLevel int) int {
	if !(ssRadius > 1) {
		return 0
	}
	level := int(math32.Floor(math32.Log2(ssRadius))) - 3
	return math.ClampInt(level, 0, maxLevel)
}

// texelCenter snaps uv to the center of the level texel a nearest,
// edge-clamped fetch reads, so the occluder is rebuilt where its depth was
// actually stored.
func texelCenter(p *FrameParameters, uv math.Vec2, level int) math.Vec2 {
	w := float32(max(1, p.Width>>level))
	h := float32(max(1, p.Height>>level))
	x := math.Clamp(math32.Floor(uv.X*w), 0, w-1)
	y := math.Clamp(math32.Floor(uv.Y*h), 0, h-1)
	return math.Vec2{X: (x + 0.5) / w, Y: (y + 0.5) / h}
}

// tapOcclusion evaluates one spiral tap around origin.
func tapOcclusion(p *FrameParameters, depth DepthSampler, uv math.Vec2, g Geometry,
	i int, noise float32, tap math.Vec2, ssDiskRadius float32) float32 {

	r2 := TapRadiusSquared(i, noise, p.InvSampleCount)
	ssRadius := max(1, r2*ssDiskRadius)

	offset := tap.Mul(ssRadius).MulVec(math.Vec2{X: p.InvWidth, Y: p.InvHeight})
	level := mipLevel(ssRadius, p.MaxLevel)
	uvSample := texelCenter(p, uv.Add(offset), level)

	occluder := ViewPosition(uvSample, -sceneDepth(p, depth, uvSample, level), p.Aspect)
	v := occluder.Sub(g.Position)
	vv := v.Dot(v)
	vn := v.Dot(g.Normal)

	w := max(0, 1-vv*p.InvRadiusSquared)
	w *= w

	// Taps too close to the tangent plane only add noise.
	if vn*vn < vv*p.MinHorizonSinSquared {
		return 0
	}
	return w * max(0, vn+g.Position.Z*p.Bias) / (vv + p.Peak2)
}

// AmbientObscurance returns the SAO occlusion estimate at uv for the given
// surface and noise value. The result is >= 0 and not yet clamped.
func AmbientObscurance(p *FrameParameters, depth DepthSampler, uv math.Vec2, g Geometry, noise float32) float32 {
	if !(p.Intensity > 0) {
		return 0
	}

	ssDiskRadius := -(p.ProjectionScaleRadius / g.Position.Z)
	step := math.Mat2Rotation(p.AngleIncCos, p.AngleIncSin)
	tap := SpiralStart(noise)

	var occlusion float32
	n := min(p.SampleCount, MaxSampleCount)
	for i := 0; i < n; i++ {
		occlusion += tapOcclusion(p, depth, uv, g, i, noise, tap, ssDiskRadius)
		tap = step.MulVec(tap)
	}

	ao := math32.Sqrt(occlusion * p.Intensity)
	if !math.IsFinite(ao) {
		return 0
	}
	return ao
}

// Visibility computes the final visibility of pixel (x, y) in [0, 1]:
// 1 means unoccluded.
func Visibility(p *FrameParameters, depth DepthSampler, x, y int) float32 {
	g, ok := ReconstructGeometry(p, depth, x, y)
	if !ok {
		return 1
	}

	uv := p.PixelUV(x, y)
	fragCoord := math.Vec2{X: float32(x) + 0.5, Y: float32(y) + 0.5}
	occlusion := AmbientObscurance(p, depth, uv, g, InterleavedGradientNoise(fragCoord))

	if p.ContactShadows != nil {
		occlusion = max(occlusion, DominantLightShadowing(p, depth, fragCoord, uv, g))
	}

	visibility := math32.Pow(math.Saturate(1-occlusion), p.Power)
	return math.Saturate(visibility)
}

// Occlusion is the occlusion pass for one pixel: visibility broadcast to
// RGB and RGBM-encoded for the intermediate target.
func Occlusion(p *FrameParameters, depth DepthSampler, x, y int) math.Vec4 {
	return EncodeRGBM(math.Splat3(Visibility(p, depth, x, y)))
}
