package choreo

import (
	"time"
)

// tickStats holds per-tick timing and item counts.
// Only populated when Scheduler.debug is true.
type tickStats struct {
	tickTime time.Duration
	frame    Frame
	items    int
	running  int
}

// debugLog logs tick stats at debug level.
func (s *Scheduler) debugLog(stats tickStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("tick",
		"scheduler", s.name,
		"frame", s.frames,
		"dt", stats.frame.Scaled,
		"unscaled_dt", stats.frame.Unscaled,
		"items", stats.items,
		"running", stats.running,
		"elapsed", stats.tickTime,
	)
}

// debugMaxTreeDepth is the nesting depth past which debugCheckTree warns.
const debugMaxTreeDepth = 32

// debugMaxChildCount is the per-animation child count past which
// debugCheckTree warns.
const debugMaxChildCount = 1000

// debugCheckTree walks item's composition tree and warns on excessive depth
// or fan-out. Called from Add in debug mode only.
func (s *Scheduler) debugCheckTree(item Child) {
	var walk func(c Child, depth int)
	walk = func(c Child, depth int) {
		if depth > debugMaxTreeDepth {
			s.logger.Warn("animation tree too deep", "scheduler", s.name, "item", c.Label(), "depth", depth, "threshold", debugMaxTreeDepth)
			return
		}
		a, ok := c.(*Animation)
		if !ok {
			return
		}
		if len(a.entries) > debugMaxChildCount {
			s.logger.Warn("animation has many children", "scheduler", s.name, "item", a.Name, "children", len(a.entries), "threshold", debugMaxChildCount)
		}
		for _, e := range a.entries {
			walk(e.Child, depth+1)
		}
	}
	walk(item, 1)
}
