package math

// Vec4 is a four channel texel (RGBA, or RGBM with the multiplier in W).
type Vec4 struct {
	X, Y, Z, W float32
}

func (v Vec4) ToVec3() Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}
