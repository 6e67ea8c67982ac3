package ssao

import (
	"github.com/chewxy/math32"

	"ssao-engine/math"
)

// coneTrace marches one jittered cone from the surface towards the light
// and returns the strongest occlusion met along the way, in [0, 1].
func coneTrace(p *FrameParameters, depth DepthSampler, uv math.Vec2, g Geometry, jitter math.Vec2) float32 {
	c := p.ContactShadows

	NoL := g.Normal.Dot(c.LightDirection)
	if NoL < 0 {
		return 0
	}

	vsEnd := g.Position.Add(c.LightDirection.Mul(c.ShadowDistance))
	uvEnd, wEnd := ScreenFromView(vsEnd, p.Aspect)
	wStart := -g.Position.Z
	if !(wEnd > 0) || !(wStart > 0) {
		return 0
	}

	resolution := p.Resolution()
	ssStart := uv.MulVec(resolution)
	ssEnd := uvEnd.MulVec(resolution)
	ssConeVector := ssEnd.Sub(ssStart)
	ssConeLength := ssConeVector.Length()
	if !(ssConeLength > 0) || !math.IsFinite(ssConeLength) {
		return 0
	}
	ssConePerp := ssConeVector.Perp().Normalize()

	vsEndRadius := c.ConeAngleTangent * c.ShadowDistance
	invWStart, invWEnd := 1/wStart, 1/wEnd
	bias := math.Saturate(1-NoL)*c.SlopeScaledDepthBias + c.DepthBias

	n := min(c.SampleCount, MaxContactSampleCount)
	dt := 1 / float32(n)
	t := dt * jitter.Y

	var occlusion float32
	for i := 0; i < n; i, t = i+1, t+dt {
		ssSliceRadius := jitter.X * (c.ConeAngleTangent * ssConeLength * t)
		ssSample := ssStart.Add(ssConeVector.Mul(t)).Add(ssConePerp.Mul(ssSliceRadius))
		level := mipLevel(math32.Abs(ssSliceRadius), p.MaxLevel)
		sampleDepth := sceneDepth(p, depth, ssSample.MulVec(math.Vec2{X: p.InvWidth, Y: p.InvHeight}), level)

		vsSliceRadius := vsEndRadius * t
		coneAxisDepth := 1 / math.Mix(invWStart, invWEnd, t)
		jittered := vsSliceRadius * jitter.X
		halfRange := math32.Sqrt(max(0, vsSliceRadius*vsSliceRadius-jittered*jittered))
		if !(halfRange > 0) {
			continue
		}

		depthDifference := coneAxisDepth + halfRange - sampleDepth
		overlap := math.Saturate((depthDifference - bias) / (2 * halfRange))
		attenuation := math.Saturate(1 - depthDifference*c.ContactDistanceMaxInv)

		occlusion = max(occlusion, overlap*attenuation)
		if occlusion >= 1 {
			break
		}
	}
	return occlusion
}

// DominantLightShadowing averages RayCount jittered cone traces and scales
// the result by the contact shadow intensity. It returns 0 when contact
// shadows are disabled.
func DominantLightShadowing(p *FrameParameters, depth DepthSampler, fragCoord, uv math.Vec2, g Geometry) float32 {
	c := p.ContactShadows
	if c == nil {
		return 0
	}

	var occlusion float32
	rays := min(c.RayCount, MaxContactRayCount)
	for i := 1; i <= rays; i++ {
		seed := fragCoord.Mul(float32(i))
		jitter := math.Vec2{
			X: InterleavedGradientNoise(seed)*2 - 1,
			Y: InterleavedGradientNoise(seed.MulVec(math.Vec2{X: 3, Y: 11})),
		}
		occlusion += coneTrace(p, depth, uv, g, jitter)
	}
	occlusion *= c.Intensity * c.InvRayCount
	if !math.IsFinite(occlusion) {
		return 0
	}
	return occlusion
}

// ContactShadow returns the contact shadow occlusion of pixel (x, y).
func ContactShadow(p *FrameParameters, depth DepthSampler, x, y int) float32 {
	g, ok := ReconstructGeometry(p, depth, x, y)
	if !ok {
		return 0
	}
	fragCoord := math.Vec2{X: float32(x) + 0.5, Y: float32(y) + 0.5}
	return DominantLightShadowing(p, depth, fragCoord, p.PixelUV(x, y), g)
}
