package renderer

import (
	"fmt"
	"time"

	"ssao-engine/core"
	"ssao-engine/log"
	"ssao-engine/ssao"
	"ssao-engine/textures"
)

const occlusionTarget = "ssao.occlusion"

// SoftwareBackend runs both passes on the CPU, one goroutine per band of
// rows.
type SoftwareBackend struct {
	logger  log.Logger
	sched   *Scheduler
	targets *textures.TargetPool

	kernel      ssao.BilateralKernel
	kernelSigma float32

	closed bool
}

// NewSoftwareBackend creates a CPU backend with the given worker count
// (0 for GOMAXPROCS).
func NewSoftwareBackend(workers int) *SoftwareBackend {
	b := &SoftwareBackend{
		logger:  log.New("software"),
		sched:   NewScheduler(workers),
		targets: textures.NewTargetPool(),
	}
	b.logger.Infof("software backend using %d workers", b.sched.Workers())
	return b
}

func (b *SoftwareBackend) Name() string {
	return "software"
}

// Resize allocates the intermediate occlusion target ahead of the first
// frame at that size.
func (b *SoftwareBackend) Resize(width, height int) error {
	if b.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, width, height)
	}
	_, fresh, err := b.targets.Acquire(occlusionTarget, width, height)
	if err != nil {
		return fmt.Errorf("occlusion target: %w", err)
	}
	if fresh {
		b.logger.Debugf("allocated %dx%d occlusion target", width, height)
	}
	return nil
}

func (b *SoftwareBackend) Execute(p *ssao.FrameParameters, depth *textures.DepthBuffer, color, out *textures.Texture, rect core.Rect) (FrameStats, error) {
	start := time.Now()
	stats := FrameStats{Backend: b.Name()}

	if b.closed {
		return stats, ErrClosed
	}
	if err := CheckInputs(p, depth, color, out); err != nil {
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
	occlusion, _ := b.targets.Lookup(occlusionTarget)

	if b.kernelSigma != p.SpatialSigma {
		b.kernel = ssao.NewBilateralKernel(p.SpatialSigma)
		b.kernelSigma = p.SpatialSigma
	}

	// The blur reads KernelHalf pixels around every output pixel, so the
	// occlusion pass covers the output rectangle plus that margin.
	grown := core.Rect{
		X:      rect.X - ssao.KernelHalf,
		Y:      rect.Y - ssao.KernelHalf,
		Width:  rect.Width + 2*ssao.KernelHalf,
		Height: rect.Height + 2*ssao.KernelHalf,
	}.Intersect(p.Width, p.Height)

	stats.Passes = append(stats.Passes, b.sched.Run(PassOcclusion, grown, func(y int) {
		for x := grown.X; x < grown.X+grown.Width; x++ {
			occlusion.Set(x, y, ssao.Occlusion(p, depth, x, y))
		}
	}))

	stats.Passes = append(stats.Passes, b.sched.Run(PassBlur, rect, func(y int) {
		for x := rect.X; x < rect.X+rect.Width; x++ {
			out.Set(x, y, ssao.BlurComposite(p, occlusion, &b.kernel, color, x, y))
		}
	}))

	stats.Pixels = rect.Width * rect.Height
	stats.RenderTime = time.Since(start)
	return stats, nil
}

// Close releases the intermediate targets.
func (b *SoftwareBackend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.targets.Release()
	return nil
}
