package io

import (
	"image"

	"golang.org/x/image/draw"

	"ssao-engine/textures"
)

// LoadColor reads the scene color and resamples it to width x height when
// the file has a different size. Pass zero to keep the file size.
func LoadColor(path string, width, height int) (*textures.Texture, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return TextureFromImage(path, resampleColor(img, width, height))
}

// resampleColor scales img with Catmull-Rom filtering. Color can be
// filtered freely, unlike depth.
func resampleColor(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if width <= 0 || height <= 0 || (b.Dx() == width && b.Dy() == height) {
		return img
	}
	dst := image.NewNRGBA64(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
