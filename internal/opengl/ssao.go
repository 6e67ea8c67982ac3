package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"ssao-engine/core"
	"ssao-engine/internal/glsl"
	"ssao-engine/ssao"
)

// SSAO owns the two programs of the effect and their targets.
//
// The occlusion pass writes RGBM visibility into an RGBA8 target. The blur
// pass reads it back, filters it and writes the composited color into an
// RGBA32F output target that the caller reads back.
type SSAO struct {
	occlusion *renderTarget
	output    *renderTarget

	width, height int32

	occlusionProg uint32
	occlusionLocs map[string]int32

	blurProg uint32
	blurLocs map[string]int32

	// Fullscreen triangle VAO (no VBO needed)
	quadVAO uint32
}

// NewSSAO builds the programs and allocates width x height targets. The GL
// context must be current.
func NewSSAO(width, height int) (*SSAO, error) {
	s := &SSAO{}

	occlusionProg, err := newProgram(glsl.FullscreenVert, glsl.OcclusionFrag)
	if err != nil {
		return nil, fmt.Errorf("ssao shader: %w", err)
	}
	s.occlusionProg = occlusionProg
	s.occlusionLocs = uniformLocations(occlusionProg, glsl.OcclusionUniforms)

	gl.UseProgram(occlusionProg)
	gl.Uniform1i(s.occlusionLocs["uDepth"], 0)

	blurProg, err := newProgram(glsl.FullscreenVert, glsl.BlurFrag)
	if err != nil {
		gl.DeleteProgram(occlusionProg)
		return nil, fmt.Errorf("ssao blur shader: %w", err)
	}
	s.blurProg = blurProg
	s.blurLocs = uniformLocations(blurProg, glsl.BlurUniforms)

	gl.UseProgram(blurProg)
	gl.Uniform1i(s.blurLocs["uOcclusion"], 0)
	gl.Uniform1i(s.blurLocs["uColor"], 1)
	gl.UseProgram(0)

	gl.GenVertexArrays(1, &s.quadVAO)

	if err := s.allocTargets(width, height); err != nil {
		s.Destroy()
		return nil, err
	}
	return s, nil
}

func (s *SSAO) allocTargets(width, height int) error {
	occlusion, err := newRenderTarget("occlusion", width, height, gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE)
	if err != nil {
		return fmt.Errorf("occlusion target: %w", err)
	}
	output, err := newRenderTarget("output", width, height, gl.RGBA32F, gl.RGBA, gl.FLOAT)
	if err != nil {
		occlusion.free()
		return fmt.Errorf("output target: %w", err)
	}
	s.occlusion, s.output = occlusion, output
	s.width, s.height = int32(width), int32(height)
	return nil
}

func (s *SSAO) freeTargets() {
	if s.occlusion != nil {
		s.occlusion.free()
		s.occlusion = nil
	}
	if s.output != nil {
		s.output.free()
		s.output = nil
	}
}

// Resize recreates the targets at the new pixel dimensions.
func (s *SSAO) Resize(width, height int) error {
	s.freeTargets()
	return s.allocTargets(width, height)
}

// Destroy frees all GPU resources.
func (s *SSAO) Destroy() {
	s.freeTargets()
	if s.occlusionProg != 0 {
		gl.DeleteProgram(s.occlusionProg)
		s.occlusionProg = 0
	}
	if s.blurProg != 0 {
		gl.DeleteProgram(s.blurProg)
		s.blurProg = 0
	}
	if s.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &s.quadVAO)
		s.quadVAO = 0
	}
}

func (s *SSAO) bindOcclusionUniforms(p *ssao.FrameParameters) {
	u := s.occlusionLocs
	gl.Uniform4f(u["uResolution"], float32(p.Width), float32(p.Height), p.InvWidth, p.InvHeight)
	gl.Uniform1f(u["uAspect"], p.Aspect)
	gl.Uniform1f(u["uFarPlane"], p.FarPlane)
	gl.Uniform1f(u["uInvRadiusSquared"], p.InvRadiusSquared)
	gl.Uniform1f(u["uProjectionScaleRadius"], p.ProjectionScaleRadius)
	gl.Uniform1f(u["uPeak2"], p.Peak2)
	gl.Uniform1f(u["uIntensity"], p.Intensity)
	gl.Uniform1f(u["uPower"], p.Power)
	gl.Uniform1f(u["uBias"], p.Bias)
	gl.Uniform1f(u["uMinHorizonAngleSineSquared"], p.MinHorizonSinSquared)
	gl.Uniform1i(u["uSampleCount"], int32(p.SampleCount))
	gl.Uniform1f(u["uInvSampleCount"], p.InvSampleCount)
	gl.Uniform2f(u["uAngleIncCosSin"], p.AngleIncCos, p.AngleIncSin)
	gl.Uniform1i(u["uMaxLevel"], int32(p.MaxLevel))
	gl.Uniform1i(u["uDerivativeNormals"], boolToInt32(p.DerivativeNormals))

	c := p.ContactShadows
	gl.Uniform1i(u["uContactShadows"], boolToInt32(c != nil))
	if c == nil {
		return
	}
	gl.Uniform3f(u["uLightDirection"], c.LightDirection.X, c.LightDirection.Y, c.LightDirection.Z)
	gl.Uniform1f(u["uShadowDistance"], c.ShadowDistance)
	gl.Uniform1f(u["uConeAngleTangent"], c.ConeAngleTangent)
	gl.Uniform1f(u["uContactDistanceMaxInv"], c.ContactDistanceMaxInv)
	gl.Uniform1f(u["uContactIntensity"], c.Intensity)
	gl.Uniform1f(u["uDepthBias"], c.DepthBias)
	gl.Uniform1f(u["uSlopeScaledDepthBias"], c.SlopeScaledDepthBias)
	gl.Uniform1i(u["uContactSampleCount"], int32(c.SampleCount))
	gl.Uniform1i(u["uRayCount"], int32(c.RayCount))
	gl.Uniform1f(u["uInvRayCount"], c.InvRayCount)
}

// RunOcclusionPass fills the occlusion target from depthTex.
func (s *SSAO) RunOcclusionPass(p *ssao.FrameParameters, depthTex uint32) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.SCISSOR_TEST)
	gl.BindVertexArray(s.quadVAO)

	gl.BindFramebuffer(gl.FRAMEBUFFER, s.occlusion.fbo)
	gl.Viewport(0, 0, s.width, s.height)
	gl.UseProgram(s.occlusionProg)
	s.bindOcclusionUniforms(p)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, depthTex)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	gl.BindVertexArray(0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// RunBlurPass filters the occlusion target and composites it over colorTex
// into the output target, touching only the pixels inside rect.
func (s *SSAO) RunBlurPass(p *ssao.FrameParameters, colorTex uint32, rect core.Rect) {
	gl.BindVertexArray(s.quadVAO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.output.fbo)
	gl.Viewport(0, 0, s.width, s.height)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(int32(rect.X), int32(rect.Y), int32(rect.Width), int32(rect.Height))

	gl.UseProgram(s.blurProg)
	gl.Uniform1f(s.blurLocs["uSpatialSigma"], p.SpatialSigma)
	gl.Uniform1f(s.blurLocs["uRangeSigma"], p.RangeSigma)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, s.occlusion.tex)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, colorTex)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	gl.Disable(gl.SCISSOR_TEST)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
