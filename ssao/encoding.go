package ssao

import (
	"github.com/chewxy/math32"

	"ssao-engine/math"
)

// rgbmRange is the largest value RGBM can represent before the square root.
const rgbmRange = 8

// EncodeRGBM packs a linear color into 8-bit friendly RGBM. The square root
// spends precision on the dark end, where occlusion lives.
func EncodeRGBM(c math.Vec3) math.Vec4 {
	rgb := math.Vec3{
		X: math32.Sqrt(max(c.X, 0)),
		Y: math32.Sqrt(max(c.Y, 0)),
		Z: math32.Sqrt(max(c.Z, 0)),
	}.Mul(1.0 / rgbmRange)

	a := math.Saturate(max(rgb.MaxComponent(), 1.0/255))
	a = math32.Ceil(a*255) / 255
	rgb = rgb.Mul(1 / a)
	return math.Vec4{X: rgb.X, Y: rgb.Y, Z: rgb.Z, W: a}
}

// DecodeRGBM is the inverse of EncodeRGBM.
func DecodeRGBM(v math.Vec4) math.Vec3 {
	rgb := v.ToVec3().Mul(rgbmRange * v.W)
	return rgb.MulVec(rgb)
}

// PackDepth splits a linear depth into two 8-bit-sized channels scaled by
// 1/far. It returns the values the shader writes: the high part is a
// multiple of 1/256 and the low part is the fraction left over.
func PackDepth(depth, invFar float32) (hi, lo float32) {
	z := math.Saturate(depth * invFar)
	t := math32.Floor(z * 256)
	return t / 256, z*256 - t
}

// UnpackDepth reverses PackDepth and returns a linear depth.
func UnpackDepth(hi, lo, far float32) float32 {
	return (hi + lo/256) * far
}

// PackDepthBytes quantizes PackDepth for an RGBA8 image.
func PackDepthBytes(depth, invFar float32) (hi, lo uint8) {
	z := math.Saturate(depth * invFar)
	v := z * 256
	t := math32.Min(math32.Floor(v), 255)
	return uint8(t), uint8(math32.Round((v - t) * 255))
}

// UnpackDepthBytes reverses PackDepthBytes.
func UnpackDepthBytes(hi, lo uint8, far float32) float32 {
	return (float32(hi) + float32(lo)/255) / 256 * far
}

// LinearizeDepth converts a hardware depth value in [0, 1] from a standard
// perspective projection into a linear eye distance.
func LinearizeDepth(d, near, far float32) float32 {
	ndc := 2*d - 1
	return 2 * near * far / (far + near - ndc*(far-near))
}
