package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// renderTarget is a texture with a framebuffer around it.
type renderTarget struct {
	name   string
	fbo    uint32
	tex    uint32
	width  int32
	height int32
}

// newRenderTarget allocates a nearest-filtered, edge-clamped color target.
func newRenderTarget(name string, width, height int, internalFormat int32, format, xtype uint32) (*renderTarget, error) {
	rt := &renderTarget{name: name, width: int32(width), height: int32(height)}

	gl.GenTextures(1, &rt.tex)
	gl.BindTexture(gl.TEXTURE_2D, rt.tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, rt.width, rt.height, 0, format, xtype, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &rt.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rt.tex, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		rt.free()
		return nil, fmt.Errorf("%s framebuffer incomplete (0x%X)", name, status)
	}
	logger.Debugf("allocated %dx%d %s target", width, height, name)
	return rt, nil
}

func (rt *renderTarget) free() {
	if rt.fbo != 0 {
		gl.DeleteFramebuffers(1, &rt.fbo)
		rt.fbo = 0
	}
	if rt.tex != 0 {
		gl.DeleteTextures(1, &rt.tex)
		rt.tex = 0
	}
}
