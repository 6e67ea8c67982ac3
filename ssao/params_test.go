package ssao

import (
	"testing"

	"github.com/chewxy/math32"

	"ssao-engine/math"
)

func TestNewFrameParametersDefaults(t *testing.T) {
	s := DefaultSettings()
	p := NewFrameParameters(s, 1280, 720)

	tests := []struct {
		name      string
		got, want float32
	}{
		{"aspect", p.Aspect, 1280.0 / 720.0},
		{"inverse width", p.InvWidth, 1.0 / 1280},
		{"inverse far plane", p.InvFarPlane, 1.0 / 50},
		{"projection scale", p.ProjectionScale, 360},
		{"projection scale radius", p.ProjectionScaleRadius, 360},
		{"peak squared", p.Peak2, 0.01},
		{"intensity", p.Intensity, 0.1 * math.TwoPi * 0.5 / 7},
		{"inverse radius squared", p.InvRadiusSquared, 1},
		{"min horizon", p.MinHorizonSinSquared, 0},
		{"inverse sample count", p.InvSampleCount, 1.0 / 7},
	}
	for _, tt := range tests {
		if !approx(tt.got, tt.want, 1e-5) {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	angle := (1 / (7 - 0.5)) * 5 * math.TwoPi
	if !approx(p.AngleIncCos, math32.Cos(angle), 1e-5) || !approx(p.AngleIncSin, math32.Sin(angle), 1e-5) {
		t.Errorf("angle increment (%v, %v), want angle %v", p.AngleIncCos, p.AngleIncSin, angle)
	}
	if p.ContactShadows != nil {
		t.Error("contact shadows enabled by default")
	}
}

func TestNewFrameParametersContactShadows(t *testing.T) {
	s := DefaultSettings()
	s.ContactShadows = DefaultContactShadowSettings()
	s.ContactShadows.LightDirection = math.Vec3{X: 0, Y: -2, Z: 0}
	s.ContactShadows.RayCount = 4

	p := NewFrameParameters(s, 64, 64)
	c := p.ContactShadows
	if c == nil {
		t.Fatal("contact shadows missing")
	}
	if !approx(c.LightDirection.Length(), 1, 1e-6) {
		t.Errorf("light direction not normalized: %v", c.LightDirection)
	}
	if !approx(c.ConeAngleTangent, math32.Tan(0.5), 1e-6) {
		t.Errorf("cone tangent = %v", c.ConeAngleTangent)
	}
	if c.InvRayCount != 0.25 || c.ContactDistanceMaxInv != 1 {
		t.Errorf("inverse ray count %v, contact max inverse %v", c.InvRayCount, c.ContactDistanceMaxInv)
	}
}

func TestNewFrameParametersClampsLoops(t *testing.T) {
	s := DefaultSettings()
	s.SampleCount = 1000
	s.MaxMipLevel = 99
	p := NewFrameParameters(s, 8, 8)
	if p.SampleCount != MaxSampleCount {
		t.Errorf("sample count %d, want %d", p.SampleCount, MaxSampleCount)
	}
	if p.MaxLevel != MaxMipLevel {
		t.Errorf("max level %d, want %d", p.MaxLevel, MaxMipLevel)
	}
}

func TestPixelUV(t *testing.T) {
	p := NewFrameParameters(DefaultSettings(), 4, 2)
	uv := p.PixelUV(0, 1)
	if uv.X != 0.125 || uv.Y != 0.75 {
		t.Errorf("PixelUV(0, 1) = %v", uv)
	}
}
