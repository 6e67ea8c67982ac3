package ssao

import (
	"testing"

	"ssao-engine/math"
)

func encoded(v float32) math.Vec4 {
	return EncodeRGBM(math.Splat3(v))
}

func TestBilateralKernel(t *testing.T) {
	k := NewBilateralKernel(10)
	for i := 0; i < KernelHalf; i++ {
		if k[i] != k[KernelSize-1-i] {
			t.Errorf("kernel not symmetric at %d: %v != %v", i, k[i], k[KernelSize-1-i])
		}
		if k[i] >= k[i+1] {
			t.Errorf("kernel not increasing towards the center at %d", i)
		}
	}
	if !approx(k[KernelHalf], NormPDF(0, 10), 1e-7) {
		t.Errorf("center weight %v", k[KernelHalf])
	}
}

func TestBilateralBlurConstantIsIdempotent(t *testing.T) {
	img := newTexelImage(24, 24, func(int, int) math.Vec4 { return encoded(0.6) })
	k := NewBilateralKernel(10)
	for _, xy := range [][2]int{{0, 0}, {12, 12}, {23, 5}} {
		got := BilateralBlur(img, &k, 0.2, xy[0], xy[1])
		if !approx(got.X, 0.6, 1e-4) {
			t.Errorf("blur of constant at %v = %v", xy, got.X)
		}
	}
}

func TestBilateralBlurPreservesEdges(t *testing.T) {
	const size, edge = 32, 16
	img := newTexelImage(size, size, func(x, _ int) math.Vec4 {
		if x < edge {
			return encoded(0.2)
		}
		return encoded(1)
	})
	k := NewBilateralKernel(10)

	x, y := edge-1, size/2
	bilateral := BilateralBlur(img, &k, 0.2, x, y).X

	var box float32
	for j := -KernelHalf; j <= KernelHalf; j++ {
		for i := -KernelHalf; i <= KernelHalf; i++ {
			box += DecodeRGBM(img.Texel(x+i, y+j)).X
		}
	}
	box /= KernelSize * KernelSize

	if abs32(bilateral-0.2) >= abs32(box-0.2) {
		t.Errorf("bilateral %v strays further from 0.2 than box %v", bilateral, box)
	}
	if !approx(bilateral, 0.2, 0.01) {
		t.Errorf("bilateral blur at the edge = %v, want about 0.2", bilateral)
	}
}

func TestBilateralBlurSkipsHoles(t *testing.T) {
	img := newTexelImage(16, 16, func(x, y int) math.Vec4 {
		if (x+y)%2 == 0 {
			return math.Vec4{}
		}
		return encoded(0.4)
	})
	k := NewBilateralKernel(10)
	if got := BilateralBlur(img, &k, 0.2, 8, 8); !approx(got.X, 0.4, 1e-4) {
		t.Errorf("blur over holes = %v, want 0.4", got.X)
	}
}

func TestBilateralBlurAllHoles(t *testing.T) {
	img := newTexelImage(8, 8, func(int, int) math.Vec4 { return math.Vec4{} })
	k := NewBilateralKernel(10)
	if got := BilateralBlur(img, &k, 0.2, 4, 4); got != math.Vec3One {
		t.Errorf("blur of empty target = %v, want 1", got)
	}
}

func TestBilateralBlurZeroWeightFallsBackToCenter(t *testing.T) {
	img := newTexelImage(8, 8, func(x, _ int) math.Vec4 { return encoded(float32(x) / 8) })
	var k BilateralKernel
	got := BilateralBlur(img, &k, 0.2, 3, 3)
	if !approx(got.X, 3.0/8, 1e-4) {
		t.Errorf("zero-weight blur = %v, want center 0.375", got.X)
	}
}

func TestComposite(t *testing.T) {
	got := Composite(math.Splat3(0.5), math.Vec3{X: 1, Y: 0.5, Z: 0})
	if got.W != 1 {
		t.Errorf("alpha = %v, want 1", got.W)
	}
	if !approx(got.X, 0.5, 1e-4) || !approx(got.Y, 0.25, 1e-4) || got.Z != 0 {
		t.Errorf("composite = %v", got)
	}
}

func TestBlurComposite(t *testing.T) {
	p := NewFrameParameters(DefaultSettings(), 8, 8)
	img := newTexelImage(8, 8, func(int, int) math.Vec4 { return encoded(0.25) })
	k := NewBilateralKernel(p.SpatialSigma)
	got := BlurComposite(&p, img, &k, constantColor{X: 0.8, Y: 0.8, Z: 0.8}, 2, 6)
	if !approx(got.X, 0.2, 1e-4) || got.W != 1 {
		t.Errorf("BlurComposite = %v, want (0.2, 0.2, 0.2, 1)", got)
	}
}

func BenchmarkBilateralBlur(b *testing.B) {
	img := newTexelImage(64, 64, func(x, y int) math.Vec4 { return encoded(float32((x*7+y*3)%11) / 11) })
	k := NewBilateralKernel(10)
	for i := 0; i < b.N; i++ {
		BilateralBlur(img, &k, 0.2, i%64, (i/64)%64)
	}
}
