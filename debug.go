package space

import (
	"fmt"
	"io"
	"os"
	"time"
)

// tickStats holds per-tick scheduler metrics. Only logged when debug mode is on.
type tickStats struct {
	tickTime  time.Duration
	live      int
	advanced  int
	completed int
	cancelled int
}

// debugOut is where debug lines go. Tests swap it.
var debugOut io.Writer = os.Stderr

// SetDebugMode enables or disables debug mode. When enabled, per-tick stats are
// printed to stderr and a warning is printed whenever the live set or the
// records on a single target grow past their thresholds.
func (s *Scheduler) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// debugLog prints per-tick stats.
func (s *Scheduler) debugLog(stats tickStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOut,
		"[space] frame %d | tick: %v | live: %d | advanced: %d | completed: %d | cancelled: %d\n",
		s.ticker.Frame(), stats.tickTime, stats.live, stats.advanced, stats.completed, stats.cancelled)
}

// debugMaxLive is the live-set size past which a warning is printed. Records
// are kept until they finish or are cleared, so steady growth usually means a
// destroyed object was never passed to ClearTween.
const debugMaxLive = 1000

// debugMaxPerTarget is the number of overlapping records on one target past
// which a warning is printed.
const debugMaxPerTarget = 16

func debugCheckLiveSet(s *Scheduler) {
	if n := len(s.live); n == debugMaxLive+1 {
		_, _ = fmt.Fprintf(debugOut, "[space] warning: %d live tweens (threshold %d)\n", n, debugMaxLive)
	}
	last := s.live[len(s.live)-1]
	if last.timer {
		return
	}
	count := 0
	for _, r := range s.live {
		if r.state != StateDone && r.target == last.target {
			count++
		}
	}
	if count == debugMaxPerTarget+1 {
		_, _ = fmt.Fprintf(debugOut, "[space] warning: %d live tweens on %T (threshold %d); missing ClearTween?\n",
			count, last.target, debugMaxPerTarget)
	}
}
