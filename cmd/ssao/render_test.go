package main

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	ssaoio "ssao-engine/io"
	"ssao-engine/log"
)

func writeDepth(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewGray16(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray16(x, y, color.Gray16{Y: uint16(0x1000 + 0x100*x)})
		}
	}
	if err := ssaoio.SaveImage(path, img); err != nil {
		t.Fatal(err)
	}
}

func TestRenderResamplesToRequestedSize(t *testing.T) {
	dir := t.TempDir()
	depth := filepath.Join(dir, "depth.png")
	out := filepath.Join(dir, "out.png")
	packed := filepath.Join(dir, "packed.png")
	writeDepth(t, depth, 16, 12)

	err := newApp().Run([]string{"ssao", "render",
		"--ao-only", "--workers", "2",
		"--width", "8", "--height", "6",
		"--out", out, "--depth-out", packed,
		depth,
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{out, packed} {
		img, err := ssaoio.LoadImage(path)
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
			t.Errorf("%s is %dx%d, want 8x6", filepath.Base(path), b.Dx(), b.Dy())
		}
	}
}

func TestRenderRequiresColorUnlessAOOnly(t *testing.T) {
	dir := t.TempDir()
	depth := filepath.Join(dir, "depth.png")
	writeDepth(t, depth, 4, 4)

	if err := newApp().Run([]string{"ssao", "render", depth}); err == nil {
		t.Error("render without a color image succeeded")
	}
}

func TestRenderRejectsUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	depth := filepath.Join(dir, "depth.png")
	writeDepth(t, depth, 4, 4)

	err := newApp().Run([]string{"ssao", "render", "--ao-only", "--backend", "vulkan",
		"--out", filepath.Join(dir, "out.png"), depth})
	if err == nil {
		t.Error("unknown backend accepted")
	}
}

func TestLogLevelFlag(t *testing.T) {
	defer log.SetLevel(log.Notice)

	if err := newApp().Run([]string{"ssao", "--log-level", "warning", "-v", "kernel"}); err != nil {
		t.Fatal(err)
	}
	if got := log.CurrentLevel(); got != log.Info {
		t.Errorf("level after --log-level warning -v = %v, want info", got)
	}

	if err := newApp().Run([]string{"ssao", "--log-level", "loud", "kernel"}); err == nil {
		t.Error("unknown log level accepted")
	}
}
