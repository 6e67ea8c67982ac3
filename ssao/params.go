// Package ssao implements screen-space ambient occlusion as two passes: a
// scalable ambient obscurance estimate (with optional cone-traced contact
// shadows) written RGBM-encoded to an intermediate target, followed by an
// edge-preserving bilateral blur that is composited over the scene color.
//
// Everything here works on one pixel at a time. Backends decide how the
// pixels of a frame are scheduled.
package ssao

import (
	"github.com/chewxy/math32"

	"ssao-engine/math"
)

// FrameParameters holds the constants shared by every pixel of a frame. It
// is derived once per frame from Settings and never changes mid-pass.
type FrameParameters struct {
	Width, Height       int
	InvWidth, InvHeight float32
	Aspect              float32
	InvFarPlane         float32
	FarPlane            float32

	Radius                float32
	InvRadiusSquared      float32
	ProjectionScale       float32
	ProjectionScaleRadius float32
	Peak2                 float32
	Intensity             float32
	Power                 float32
	Bias                  float32
	MinHorizonSinSquared  float32
	MaxLevel              int

	SampleCount    int
	InvSampleCount float32
	SpiralTurns    float32
	AngleIncCos    float32
	AngleIncSin    float32

	DerivativeNormals bool

	SpatialSigma float32
	RangeSigma   float32
	MaxBlur      float32

	// ContactShadows is nil when the cone trace is disabled.
	ContactShadows *ContactShadowParameters
}

// ContactShadowParameters are the derived cone-trace constants.
type ContactShadowParameters struct {
	LightDirection        math.Vec3 // normalized, view space
	ShadowDistance        float32
	ConeAngleTangent      float32
	ContactDistanceMaxInv float32
	Intensity             float32
	DepthBias             float32
	SlopeScaledDepthBias  float32
	SampleCount           int
	RayCount              int
	InvRayCount           float32
}

// NewFrameParameters derives the per-frame constants for a width x height
// target. Callers must pass validated settings and positive dimensions.
func NewFrameParameters(s Settings, width, height int) FrameParameters {
	w, h := float32(width), float32(height)
	n := min(max(s.SampleCount, 1), MaxSampleCount)

	peak := 0.1 * s.Radius
	projectionScale := 0.5 * h
	angleInc := (1.0 / (float32(n) - 0.5)) * s.SpiralTurns * math.TwoPi
	minHorizonSin := math32.Sin(s.MinHorizonAngle)

	p := FrameParameters{
		Width:       width,
		Height:      height,
		InvWidth:    1 / w,
		InvHeight:   1 / h,
		Aspect:      w / h,
		InvFarPlane: 1 / s.FarPlane,
		FarPlane:    s.FarPlane,

		Radius:                s.Radius,
		InvRadiusSquared:      1 / (s.Radius * s.Radius),
		ProjectionScale:       projectionScale,
		ProjectionScaleRadius: projectionScale * s.Radius,
		Peak2:                 peak * peak,
		Intensity:             s.IntensityScale * (peak * math.TwoPi) * 0.5 / float32(n),
		Power:                 s.Power,
		Bias:                  s.Bias,
		MinHorizonSinSquared:  minHorizonSin * minHorizonSin,
		MaxLevel:              math.ClampInt(s.MaxMipLevel, 0, MaxMipLevel),

		SampleCount:    n,
		InvSampleCount: 1 / float32(n),
		SpiralTurns:    s.SpiralTurns,
		AngleIncCos:    math32.Cos(angleInc),
		AngleIncSin:    math32.Sin(angleInc),

		DerivativeNormals: s.DerivativeNormals,

		SpatialSigma: s.SpatialSigma,
		RangeSigma:   s.RangeSigma,
		MaxBlur:      s.MaxBlur,
	}

	if c := s.ContactShadows; c != nil {
		rays := min(max(c.RayCount, 1), MaxContactRayCount)
		p.ContactShadows = &ContactShadowParameters{
			LightDirection:        c.LightDirection.Normalize(),
			ShadowDistance:        c.ShadowDistance,
			ConeAngleTangent:      math32.Tan(c.ConeAngle * 0.5),
			ContactDistanceMaxInv: 1 / c.ContactDistanceMax,
			Intensity:             c.Intensity,
			DepthBias:             c.DepthBias,
			SlopeScaledDepthBias:  c.SlopeScaledDepthBias,
			SampleCount:           min(max(c.SampleCount, 1), MaxContactSampleCount),
			RayCount:              rays,
			InvRayCount:           1 / float32(rays),
		}
	}
	return p
}

// Resolution returns the target size as a vector.
func (p *FrameParameters) Resolution() math.Vec2 {
	return math.Vec2{X: float32(p.Width), Y: float32(p.Height)}
}

// PixelUV returns the texture coordinate of the center of pixel (x, y).
func (p *FrameParameters) PixelUV(x, y int) math.Vec2 {
	return math.Vec2{
		X: (float32(x) + 0.5) * p.InvWidth,
		Y: (float32(y) + 0.5) * p.InvHeight,
	}
}
