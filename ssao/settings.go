package ssao

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"ssao-engine/math"
)

// Loop bounds. Every per-pixel loop is capped by one of these regardless of
// what the settings ask for.
const (
	MaxSampleCount        = 64
	MaxContactSampleCount = 32
	MaxContactRayCount    = 16
	MaxMipLevel           = 16
)

// ErrInvalidSettings is wrapped by every Settings.Validate failure.
var ErrInvalidSettings = errors.New("ssao: invalid settings")

// Settings is the artist-facing configuration surface of the effect.
type Settings struct {
	// MaxBlur is accepted and carried into FrameParameters but no pass reads
	// it yet.
	MaxBlur float32 `json:"maxBlur"`

	Radius float32 `json:"radius"` // world-space AO radius
	Bias   float32 `json:"bias"`   // depth-proportional self-occlusion bias

	// IntensityScale multiplies the derived intensity peak·π/sampleCount.
	// The division by the sample count keeps the estimate stable as taps
	// are added, so the default output is noticeably lighter than SAO
	// without that division. Raise this to compensate.
	IntensityScale float32 `json:"intensityScale"`

	Power           float32 `json:"power"`           // contrast exponent applied to visibility
	SampleCount     int     `json:"sampleCount"`     // spiral taps per pixel
	SpiralTurns     float32 `json:"spiralTurns"`     // turns of the tap spiral
	MinHorizonAngle float32 `json:"minHorizonAngle"` // radians; taps closer to the horizon are rejected
	MaxMipLevel     int     `json:"maxMipLevel"`     // highest depth mip the taps may read
	FarPlane        float32 `json:"farPlane"`        // depths at or beyond this are treated as sky

	// DerivativeNormals switches normal reconstruction from depth-texel
	// differencing to 2x2 quad derivatives (half resolution).
	DerivativeNormals bool `json:"derivativeNormals"`

	SpatialSigma float32 `json:"spatialSigma"` // bilateral kernel sigma in pixels
	RangeSigma   float32 `json:"rangeSigma"`   // bilateral similarity sigma

	// ContactShadows enables the cone-traced dominant light term when set.
	ContactShadows *ContactShadowSettings `json:"contactShadows,omitempty"`
}

// ContactShadowSettings parameterizes the screen-space cone trace.
type ContactShadowSettings struct {
	LightDirection       math.Vec3 `json:"lightDirection"` // view space, towards the light
	ShadowDistance       float32   `json:"shadowDistance"`
	ConeAngle            float32   `json:"coneAngle"` // full cone angle, radians
	ContactDistanceMax   float32   `json:"contactDistanceMax"`
	Intensity            float32   `json:"intensity"`
	DepthBias            float32   `json:"depthBias"`
	SlopeScaledDepthBias float32   `json:"slopeScaledDepthBias"`
	SampleCount          int       `json:"sampleCount"`
	RayCount             int       `json:"rayCount"`
}

// DefaultSettings returns the stock configuration. Contact shadows are off.
func DefaultSettings() Settings {
	return Settings{
		MaxBlur:         0.02,
		Radius:          1.0,
		Bias:            0.0005,
		IntensityScale:  1.0,
		Power:           1.0,
		SampleCount:     7,
		SpiralTurns:     5,
		MinHorizonAngle: 0,
		MaxMipLevel:     0,
		FarPlane:        50,
		SpatialSigma:    10,
		RangeSigma:      0.2,
	}
}

// DefaultContactShadowSettings returns the stock cone-trace configuration.
func DefaultContactShadowSettings() *ContactShadowSettings {
	return &ContactShadowSettings{
		LightDirection:       math.Vec3Down,
		ShadowDistance:       0.3,
		ConeAngle:            1.0,
		ContactDistanceMax:   1.0,
		Intensity:            0.8,
		DepthBias:            0.01,
		SlopeScaledDepthBias: 0.01,
		SampleCount:          4,
		RayCount:             1,
	}
}

// Validate rejects settings that would make a pass divide by zero, loop
// without bound or produce NaN.
func (s Settings) Validate() error {
	switch {
	case !positive(s.Radius):
		return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidSettings, s.Radius)
	case !math.IsFinite(s.Bias):
		return fmt.Errorf("%w: bias must be finite", ErrInvalidSettings)
	case !(s.IntensityScale >= 0) || !math.IsFinite(s.IntensityScale):
		return fmt.Errorf("%w: intensityScale must be >= 0, got %v", ErrInvalidSettings, s.IntensityScale)
	case !positive(s.Power):
		return fmt.Errorf("%w: power must be positive, got %v", ErrInvalidSettings, s.Power)
	case s.SampleCount < 1 || s.SampleCount > MaxSampleCount:
		return fmt.Errorf("%w: sampleCount must be in [1, %d], got %d", ErrInvalidSettings, MaxSampleCount, s.SampleCount)
	case !(s.SpiralTurns >= 0) || !math.IsFinite(s.SpiralTurns):
		return fmt.Errorf("%w: spiralTurns must be >= 0, got %v", ErrInvalidSettings, s.SpiralTurns)
	case !(s.MinHorizonAngle >= 0) || s.MinHorizonAngle > math.Pi/2:
		return fmt.Errorf("%w: minHorizonAngle must be in [0, pi/2], got %v", ErrInvalidSettings, s.MinHorizonAngle)
	case s.MaxMipLevel < 0 || s.MaxMipLevel > MaxMipLevel:
		return fmt.Errorf("%w: maxMipLevel must be in [0, %d], got %d", ErrInvalidSettings, MaxMipLevel, s.MaxMipLevel)
	case !positive(s.FarPlane):
		return fmt.Errorf("%w: farPlane must be positive, got %v", ErrInvalidSettings, s.FarPlane)
	case !positive(s.SpatialSigma) || !positive(s.RangeSigma):
		return fmt.Errorf("%w: blur sigmas must be positive, got (%v, %v)", ErrInvalidSettings, s.SpatialSigma, s.RangeSigma)
	case !(s.MaxBlur >= 0 && s.MaxBlur <= 1):
		return fmt.Errorf("%w: maxBlur must be in [0, 1], got %v", ErrInvalidSettings, s.MaxBlur)
	}
	if s.ContactShadows != nil {
		if err := s.ContactShadows.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *ContactShadowSettings) validate() error {
	switch {
	case c.LightDirection.LengthSqr() == 0 || !c.LightDirection.IsFinite():
		return fmt.Errorf("%w: contact shadow light direction must be a non-zero vector", ErrInvalidSettings)
	case !positive(c.ShadowDistance):
		return fmt.Errorf("%w: contact shadow distance must be positive, got %v", ErrInvalidSettings, c.ShadowDistance)
	case !positive(c.ConeAngle) || c.ConeAngle >= math.Pi:
		return fmt.Errorf("%w: contact shadow cone angle must be in (0, pi), got %v", ErrInvalidSettings, c.ConeAngle)
	case !positive(c.ContactDistanceMax):
		return fmt.Errorf("%w: contact distance max must be positive, got %v", ErrInvalidSettings, c.ContactDistanceMax)
	case !(c.Intensity >= 0) || !math.IsFinite(c.Intensity):
		return fmt.Errorf("%w: contact shadow intensity must be >= 0, got %v", ErrInvalidSettings, c.Intensity)
	case c.SampleCount < 1 || c.SampleCount > MaxContactSampleCount:
		return fmt.Errorf("%w: contact shadow sampleCount must be in [1, %d], got %d", ErrInvalidSettings, MaxContactSampleCount, c.SampleCount)
	case c.RayCount < 1 || c.RayCount > MaxContactRayCount:
		return fmt.Errorf("%w: contact shadow rayCount must be in [1, %d], got %d", ErrInvalidSettings, MaxContactRayCount, c.RayCount)
	}
	return nil
}

func positive(x float32) bool {
	return x > 0 && math.IsFinite(x)
}

// LoadSettings reads a JSON settings file. Fields missing from the file keep
// their DefaultSettings values. The result is validated.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings %q: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// SaveSettings writes s as indented JSON.
func SaveSettings(path string, s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
