package math

import "github.com/chewxy/math32"

// Mat2 is a column-major 2x2 matrix, laid out like a GLSL mat2:
// m[0] is the first column.
type Mat2 [2][2]float32

// Mat2Rotation returns the counter-clockwise rotation by the angle whose
// cosine and sine are given.
func Mat2Rotation(cos, sin float32) Mat2 {
	return Mat2{
		{cos, sin},
		{-sin, cos},
	}
}

// Mat2FromAngle returns the counter-clockwise rotation by angle radians.
func Mat2FromAngle(angle float32) Mat2 {
	return Mat2Rotation(math32.Cos(angle), math32.Sin(angle))
}

// MulVec returns m * v.
func (m Mat2) MulVec(v Vec2) Vec2 {
	return Vec2{
		X: m[0][0]*v.X + m[1][0]*v.Y,
		Y: m[0][1]*v.X + m[1][1]*v.Y,
	}
}
