package opengl

import (
	"fmt"
	"time"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"ssao-engine/core"
	"ssao-engine/renderer"
	"ssao-engine/ssao"
	"ssao-engine/textures"
)

// Backend runs the effect on the GPU. Inputs are uploaded every frame and
// the result is read back into the caller's texture, so it suits offline
// processing as well as hosts that already keep frames in memory.
type Backend struct {
	ssao     *SSAO
	depthTex uint32
	colorTex uint32

	width, height int
	closed        bool
}

var _ renderer.Backend = (*Backend)(nil)

// NewBackend creates the GL backend. A context must be current on the
// calling thread (see NewContext).
func NewBackend(width, height int) (*Backend, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", renderer.ErrInvalidViewport, width, height)
	}
	s, err := NewSSAO(width, height)
	if err != nil {
		return nil, err
	}

	b := &Backend{ssao: s, width: width, height: height}
	gl.GenTextures(1, &b.depthTex)
	gl.GenTextures(1, &b.colorTex)
	if err := checkError("create backend"); err != nil {
		b.Close()
		return nil, err
	}
	logger.Infof("opengl backend ready at %dx%d", width, height)
	return b, nil
}

func (b *Backend) Name() string {
	return "opengl"
}

func (b *Backend) Resize(width, height int) error {
	if b.closed {
		return renderer.ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", renderer.ErrInvalidViewport, width, height)
	}
	if width == b.width && height == b.height {
		return nil
	}
	if err := b.ssao.Resize(width, height); err != nil {
		return err
	}
	b.width, b.height = width, height
	logger.Debugf("resized targets to %dx%d", width, height)
	return nil
}

func (b *Backend) Execute(p *ssao.FrameParameters, depth *textures.DepthBuffer, color, out *textures.Texture, rect core.Rect) (renderer.FrameStats, error) {
	start := time.Now()
	stats := renderer.FrameStats{Backend: b.Name()}

	if b.closed {
		return stats, renderer.ErrClosed
	}
	if err := renderer.CheckInputs(p, depth, color, out); err != nil {
		return stats, err
	}
	stats.Width, stats.Height = p.Width, p.Height

	rect = rect.Intersect(p.Width, p.Height)
	if rect.Empty() {
		stats.RenderTime = time.Since(start)
		return stats, nil
	}
	if err := b.Resize(p.Width, p.Height); err != nil {
		return stats, err
	}

	if err := uploadDepth(b.depthTex, depth); err != nil {
		return stats, err
	}
	if err := uploadColor(b.colorTex, color); err != nil {
		return stats, err
	}

	passStart := time.Now()
	b.ssao.RunOcclusionPass(p, b.depthTex)
	gl.Finish()
	stats.Passes = append(stats.Passes, renderer.PassStat{Name: renderer.PassOcclusion, RenderTime: time.Since(passStart)})
	if err := checkError("occlusion pass"); err != nil {
		return stats, err
	}

	passStart = time.Now()
	b.ssao.RunBlurPass(p, b.colorTex, rect)
	gl.Finish()
	stats.Passes = append(stats.Passes, renderer.PassStat{Name: renderer.PassBlur, RenderTime: time.Since(passStart)})
	if err := checkError("blur pass"); err != nil {
		return stats, err
	}

	if err := readTarget(b.ssao.output, rect, out); err != nil {
		return stats, err
	}

	stats.Pixels = rect.Width * rect.Height
	stats.RenderTime = time.Since(start)
	return stats, nil
}

// Close frees every GPU resource. The context itself is left alone.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if b.depthTex != 0 {
		gl.DeleteTextures(1, &b.depthTex)
		b.depthTex = 0
	}
	if b.colorTex != 0 {
		gl.DeleteTextures(1, &b.colorTex)
		b.colorTex = 0
	}
	if b.ssao != nil {
		b.ssao.Destroy()
		b.ssao = nil
	}
	return nil
}
