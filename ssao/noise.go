package ssao

import "ssao-engine/math"

// InterleavedGradientNoise hashes a fragment coordinate into [0, 1).
// Neighboring pixels get well-spread values, which the blur pass then
// averages out.
func InterleavedGradientNoise(fragCoord math.Vec2) float32 {
	return math.Fract(52.9829189 * math.Fract(fragCoord.X*0.06711056+fragCoord.Y*0.00583715))
}

// SpiralStart returns the unit direction of the first tap.
func SpiralStart(noise float32) math.Vec2 {
	angle := math.TwoPi * 2.4 * noise
	return math.Mat2FromAngle(angle).MulVec(math.Vec2{X: 1})
}

// TapRadiusSquared returns the squared normalized radius of tap i out of n.
func TapRadiusSquared(i int, noise, invSampleCount float32) float32 {
	r := (float32(i) + noise + 0.5) * invSampleCount
	return r * r
}
