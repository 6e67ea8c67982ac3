package ssao

import (
	"testing"

	"ssao-engine/math"
)

func TestInterleavedGradientNoiseRange(t *testing.T) {
	seen := map[int]bool{}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			n := InterleavedGradientNoise(math.Vec2{X: float32(x) + 0.5, Y: float32(y) + 0.5})
			if n < 0 || n >= 1 {
				t.Fatalf("noise at (%d, %d) = %v, want [0, 1)", x, y, n)
			}
			seen[int(n*10)] = true
		}
	}
	if len(seen) != 10 {
		t.Errorf("noise covers %d of 10 buckets", len(seen))
	}
}

func TestInterleavedGradientNoiseDeterministic(t *testing.T) {
	fc := math.Vec2{X: 17.5, Y: 3.5}
	if InterleavedGradientNoise(fc) != InterleavedGradientNoise(fc) {
		t.Fatal("noise is not a pure function of the fragment coordinate")
	}
}

func TestSpiralStartIsUnit(t *testing.T) {
	for i := 0; i < 16; i++ {
		v := SpiralStart(float32(i) / 16)
		if !approx(v.Length(), 1, 1e-5) {
			t.Errorf("SpiralStart(%v) length %v", float32(i)/16, v.Length())
		}
	}
	if v := SpiralStart(0); !approx(v.X, 1, 1e-6) || !approx(v.Y, 0, 1e-6) {
		t.Errorf("SpiralStart(0) = %v, want (1, 0)", v)
	}
}

func TestTapRadiusGrows(t *testing.T) {
	const n = 7
	prev := float32(-1)
	for i := 0; i < n; i++ {
		r2 := TapRadiusSquared(i, 0.3, 1.0/n)
		if r2 <= prev || r2 > 1 {
			t.Fatalf("tap %d radius² %v (previous %v)", i, r2, prev)
		}
		prev = r2
	}
}
