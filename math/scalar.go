package math

import "github.com/chewxy/math32"

// Shader-style scalar helpers. They mirror the GLSL built-ins of the same
// name so the software passes read like the fragment programs.

const (
	Pi    = math32.Pi
	TwoPi = 2 * math32.Pi
)

// Saturate clamps x into [0, 1]. NaN maps to 0.
func Saturate(x float32) float32 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ClampInt limits x to [lo, hi].
func ClampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Fract returns x - floor(x).
func Fract(x float32) float32 {
	return x - math32.Floor(x)
}

// Mix linearly interpolates between a and b.
func Mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float32) bool {
	return !math32.IsNaN(x) && !math32.IsInf(x, 0)
}
