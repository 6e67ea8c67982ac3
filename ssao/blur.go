package ssao

import (
	"github.com/chewxy/math32"

	"ssao-engine/math"
)

// Bilateral window: KernelSize taps per axis, KernelHalf on each side.
const (
	KernelSize = 15
	KernelHalf = (KernelSize - 1) / 2
)

// BilateralKernel holds the 1D spatial Gaussian weights, indexed by
// offset+KernelHalf.
type BilateralKernel [KernelSize]float32

// NormPDF is the normal density with zero mean.
func NormPDF(x, sigma float32) float32 {
	return 0.39894 * math32.Exp(-0.5*x*x/(sigma*sigma)) / sigma
}

// NormPDF3 is NormPDF applied to the length of v.
func NormPDF3(v math.Vec3, sigma float32) float32 {
	return 0.39894 * math32.Exp(-0.5*v.Dot(v)/(sigma*sigma)) / sigma
}

// NewBilateralKernel builds the symmetric spatial kernel.
func NewBilateralKernel(sigma float32) BilateralKernel {
	var k BilateralKernel
	for j := 0; j <= KernelHalf; j++ {
		w := NormPDF(float32(j), sigma)
		k[KernelHalf+j] = w
		k[KernelHalf-j] = w
	}
	return k
}

// BilateralBlur filters the RGBM-encoded occlusion around (x, y) and returns
// the decoded result. Texels with a non-positive multiplier are holes and
// are skipped. If no tap carries weight the center value is returned, or
// full visibility when the center is a hole too.
func BilateralBlur(src TexelFetcher, kernel *BilateralKernel, rangeSigma float32, x, y int) math.Vec3 {
	center := src.Texel(x, y)
	c := DecodeRGBM(center)

	bZ := 1 / NormPDF(0, rangeSigma)
	var sum math.Vec3
	var z float32

	for i := -KernelHalf; i <= KernelHalf; i++ {
		for j := -KernelHalf; j <= KernelHalf; j++ {
			texel := src.Texel(x+i, y+j)
			if !(texel.W > 0) {
				continue
			}
			v := DecodeRGBM(texel)
			factor := kernel[KernelHalf+j] * kernel[KernelHalf+i] * NormPDF3(v.Sub(c), rangeSigma) * bZ
			z += factor
			sum = sum.Add(v.Mul(factor))
		}
	}

	if !(z > 0) || !math.IsFinite(z) {
		if center.W > 0 {
			return c
		}
		return math.Vec3One
	}
	return sum.Mul(1 / z)
}

// Composite multiplies the blurred occlusion into the scene color. The
// occlusion goes through one more RGBM round trip so both backends quantize
// identically. Alpha is always 1.
func Composite(occlusion, color math.Vec3) math.Vec4 {
	ao := DecodeRGBM(EncodeRGBM(occlusion))
	return color.MulVec(ao).ToVec4(1)
}

// BlurComposite runs the second pass for pixel (x, y).
func BlurComposite(p *FrameParameters, src TexelFetcher, kernel *BilateralKernel, color ColorSampler, x, y int) math.Vec4 {
	occlusion := BilateralBlur(src, kernel, p.RangeSigma, x, y)
	return Composite(occlusion, color.SampleRGB(p.PixelUV(x, y)))
}
