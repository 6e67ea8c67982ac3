package io

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"ssao-engine/math"
	"ssao-engine/textures"
)

// LoadImage decodes a PNG, JPEG, TIFF, BMP or WebP file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	return img, nil
}

// SaveImage encodes img by file extension: .png, .tif/.tiff or .bmp.
func SaveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image %q: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		err = png.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	case ".bmp":
		err = bmp.Encode(f, img)
	default:
		err = fmt.Errorf("unsupported image format %q", ext)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("encode image %q: %w", path, err)
	}
	return nil
}

// TextureFromImage converts img to a float texture, flipping rows so that
// the bottom of the picture becomes row 0.
func TextureFromImage(name string, img image.Image) (*textures.Texture, error) {
	b := img.Bounds()
	t, err := textures.NewTexture(name, b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			c := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
			t.Set(x, t.Height-1-y, math.Vec4{
				X: float32(c.R) / 0xffff,
				Y: float32(c.G) / 0xffff,
				Z: float32(c.B) / 0xffff,
				W: float32(c.A) / 0xffff,
			})
		}
	}
	return t, nil
}

// ImageFromTexture converts a texture back to a 16-bit image, clamping each
// channel to [0, 1].
func ImageFromTexture(t *textures.Texture) *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			v := t.At(x, t.Height-1-y)
			img.SetNRGBA64(x, y, color.NRGBA64{
				R: unorm16(v.X),
				G: unorm16(v.Y),
				B: unorm16(v.Z),
				A: unorm16(v.W),
			})
		}
	}
	return img
}

// SaveTexture writes t as an image file.
func SaveTexture(path string, t *textures.Texture) error {
	return SaveImage(path, ImageFromTexture(t))
}

func unorm16(v float32) uint16 {
	return uint16(math.Saturate(v)*0xffff + 0.5)
}
