package motion

import (
	"time"
)

// debugStats holds per-frame timing and workload metrics.
// Only populated when Stage.debug is true.
type debugStats struct {
	updateTime    time.Duration
	animators     int
	frameRequests int
	elements      int
	maxDepth      int
}

// debugLog logs timing and workload stats at debug level.
func (s *Stage) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	stats.elements, stats.maxDepth = debugWalk(s.root, 1)
	s.logger.Debug("frame",
		"update", stats.updateTime,
		"animators", stats.animators,
		"frameRequests", stats.frameRequests,
		"elements", stats.elements,
		"depth", stats.maxDepth,
	)
	if stats.maxDepth > debugMaxTreeDepth {
		s.logger.Warn("tree depth exceeds threshold", "depth", stats.maxDepth, "threshold", debugMaxTreeDepth)
	}
}

// debugMaxTreeDepth is the depth past which debug mode warns.
const debugMaxTreeDepth = 32

// debugWalk counts elements under el and reports the deepest level.
func debugWalk(el *Element, depth int) (count, maxDepth int) {
	count, maxDepth = 1, depth
	for _, c := range el.children {
		n, d := debugWalk(c, depth+1)
		count += n
		maxDepth = max(maxDepth, d)
	}
	return count, maxDepth
}
