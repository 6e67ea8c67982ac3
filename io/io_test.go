package io

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"ssao-engine/math"
	"ssao-engine/textures"
)

func rampDepth(t *testing.T, w, h int, far float32) *textures.DepthBuffer {
	t.Helper()
	d, err := textures.NewDepthBuffer(w, h)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d.Set(x, y, far*float32(x+y*w)/float32(w*h))
		}
	}
	return d
}

func TestParseDepthFormat(t *testing.T) {
	for _, f := range DepthFormats {
		got, err := ParseDepthFormat(string(f))
		if err != nil || got != f {
			t.Errorf("ParseDepthFormat(%q) = %q, %v", f, got, err)
		}
	}
	if _, err := ParseDepthFormat("exr"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestPackedDepthRoundTrip(t *testing.T) {
	const far float32 = 50
	src := rampDepth(t, 8, 6, far)
	path := filepath.Join(t.TempDir(), "depth.png")
	if err := SaveImage(path, PackedDepthImage(src, far)); err != nil {
		t.Fatal(err)
	}

	got, err := LoadDepth(path, DepthOptions{Format: DepthPacked, Far: far})
	if err != nil {
		t.Fatal(err)
	}
	if got.Width != src.Width || got.Height != src.Height {
		t.Fatalf("size = %dx%d, want %dx%d", got.Width, got.Height, src.Width, src.Height)
	}
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			want, have := src.At(x, y), got.At(x, y)
			if d := want - have; d > far/65536 || d < -far/65536 {
				t.Fatalf("depth(%d, %d) = %v, want %v", x, y, have, want)
			}
		}
	}
}

func TestGray16DepthRoundTrip(t *testing.T) {
	const far float32 = 20
	src := rampDepth(t, 5, 4, far)
	path := filepath.Join(t.TempDir(), "depth.tiff")
	if err := SaveImage(path, Gray16DepthImage(src, far)); err != nil {
		t.Fatal(err)
	}
	got, err := LoadDepth(path, DepthOptions{Format: DepthGray16, Far: far})
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			if d := src.At(x, y) - got.At(x, y); d > 1e-3 || d < -1e-3 {
				t.Fatalf("depth(%d, %d) = %v, want %v", x, y, got.At(x, y), src.At(x, y))
			}
		}
	}
}

func TestDepthRowsFlipped(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 1, 2))
	img.SetGray16(0, 0, color.Gray16{Y: 0xffff}) // top of picture
	img.SetGray16(0, 1, color.Gray16{Y: 0})

	d, err := DepthFromImage(img, DepthOptions{Format: DepthGray16, Far: 10})
	if err != nil {
		t.Fatal(err)
	}
	if d.At(0, 0) != 0 || d.At(0, 1) != 10 {
		t.Errorf("rows = %v, %v; want 0 at the bottom and 10 at the top", d.At(0, 0), d.At(0, 1))
	}
}

func TestDepthNDC(t *testing.T) {
	const near, far = 0.5, 100
	img := image.NewGray16(image.Rect(0, 0, 2, 1))
	img.SetGray16(0, 0, color.Gray16{Y: 0})
	img.SetGray16(1, 0, color.Gray16{Y: 0xffff})

	d, err := DepthFromImage(img, DepthOptions{Format: DepthNDC, Near: near, Far: far})
	if err != nil {
		t.Fatal(err)
	}
	if v := d.At(0, 0); v < near-1e-4 || v > near+1e-4 {
		t.Errorf("ndc 0 -> %v, want %v", v, near)
	}
	if v := d.At(1, 0); v < far-0.1 || v > far+0.1 {
		t.Errorf("ndc 1 -> %v, want %v", v, far)
	}
}

func TestDepthOptionsValidated(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 1, 1))
	tests := []struct {
		name string
		opts DepthOptions
	}{
		{"zero far", DepthOptions{Format: DepthGray16}},
		{"ndc without near", DepthOptions{Format: DepthNDC, Far: 10}},
		{"near past far", DepthOptions{Format: DepthNDC, Near: 20, Far: 10}},
		{"unknown", DepthOptions{Format: "exr", Far: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DepthFromImage(img, tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDepthResampleNearest(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 2, 2))
	img.SetGray16(0, 0, color.Gray16{Y: 0xffff})
	img.SetGray16(1, 0, color.Gray16{Y: 0xffff})

	d, err := DepthFromImage(img, DepthOptions{Format: DepthGray16, Far: 1, Width: 4, Height: 4})
	if err != nil {
		t.Fatal(err)
	}
	if d.Width != 4 || d.Height != 4 {
		t.Fatalf("size = %dx%d", d.Width, d.Height)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if v := d.At(x, y); v != 0 && v != 1 {
				t.Fatalf("depth(%d, %d) = %v, nearest filtering must not blend", x, y, v)
			}
		}
	}
}

func TestTextureImageRoundTrip(t *testing.T) {
	tex, err := textures.NewTexture("c", 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	tex.Set(0, 0, math.Vec4{X: 1, W: 1})
	tex.Set(2, 1, math.Vec4{Y: 0.5, Z: 2, W: 1})

	path := filepath.Join(t.TempDir(), "c.png")
	if err := SaveTexture(path, tex); err != nil {
		t.Fatal(err)
	}
	got, err := LoadColor(path, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if v := got.At(0, 0); v.X != 1 || v.W != 1 {
		t.Errorf("At(0, 0) = %v", v)
	}
	if v := got.At(2, 1); v.Z != 1 || v.Y < 0.49 || v.Y > 0.51 {
		t.Errorf("At(2, 1) = %v, want clamped blue and half green", v)
	}
}

func TestLoadColorResamples(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	path := filepath.Join(t.TempDir(), "c.bmp")
	if err := SaveImage(path, img); err != nil {
		t.Fatal(err)
	}
	got, err := LoadColor(path, 8, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got.Width != 8 || got.Height != 2 {
		t.Errorf("size = %dx%d, want 8x2", got.Width, got.Height)
	}
	if v := got.At(3, 1); v.X < 0.99 {
		t.Errorf("At(3, 1) = %v, want white", v)
	}
}

func TestSaveImageUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xyz")
	if err := SaveImage(path, image.NewGray(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected error")
	}
}
