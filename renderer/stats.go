package renderer

import "time"

// BandStat describes the rows one worker processed during a pass.
type BandStat struct {
	Worker int

	// The band height and the percentage of the pass area it represents.
	Rows         int
	FramePercent float32

	RenderTime time.Duration
}

// PassStat is the timing of one full-screen pass.
type PassStat struct {
	Name       string
	Bands      []BandStat
	RenderTime time.Duration
}

// FrameStats is reported by every Execute call.
type FrameStats struct {
	Backend string

	Width, Height int
	Pixels        int // pixels written to the output target

	Passes []PassStat

	// Total time spent in Execute, including setup.
	RenderTime time.Duration
}

// Pass returns the named pass, if it ran.
func (fs *FrameStats) Pass(name string) (PassStat, bool) {
	for _, p := range fs.Passes {
		if p.Name == name {
			return p, true
		}
	}
	return PassStat{}, false
}
