package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"ssao-engine/core"
	"ssao-engine/textures"
)

// uploadDepth uploads every built mip of d into tex as R32F. Filtering is
// nearest within and between levels so depths are never blended.
func uploadDepth(tex uint32, d *textures.DepthBuffer) error {
	if d == nil || len(d.Data()) == 0 {
		return fmt.Errorf("depth buffer has no data")
	}

	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	for level := 0; level < d.Levels(); level++ {
		w, h := d.LevelSize(level)
		data := d.LevelData(level)
		gl.TexImage2D(gl.TEXTURE_2D, int32(level), gl.R32F, int32(w), int32(h), 0, gl.RED, gl.FLOAT, gl.Ptr(data))
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_BASE_LEVEL, 0)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, int32(d.Levels()-1))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return checkError("upload depth")
}

// uploadColor uploads t into tex as RGBA32F.
func uploadColor(tex uint32, t *textures.Texture) error {
	if t == nil || len(t.Pix) == 0 {
		return fmt.Errorf("color texture has no data")
	}

	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, int32(t.Width), int32(t.Height), 0, gl.RGBA, gl.FLOAT, gl.Ptr(t.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return checkError("upload color")
}

// readTarget copies the rect region of rt into the same region of out.
func readTarget(rt *renderTarget, rect core.Rect, out *textures.Texture) error {
	if rect.Empty() {
		return nil
	}

	buf := make([]float32, rect.Width*rect.Height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, rt.fbo)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 4)
	gl.ReadPixels(int32(rect.X), int32(rect.Y), int32(rect.Width), int32(rect.Height), gl.RGBA, gl.FLOAT, gl.Ptr(buf))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	if err := checkError("read " + rt.name); err != nil {
		return err
	}

	row := rect.Width * 4
	for y := 0; y < rect.Height; y++ {
		dst := ((rect.Y+y)*out.Width + rect.X) * 4
		copy(out.Pix[dst:dst+row], buf[y*row:(y+1)*row])
	}
	return nil
}
