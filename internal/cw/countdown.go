// internal/cw/countdown.go
package cw

import (
	"sync"
	"time"

	"github.com/ColonelBlimp/cwtrainer/internal/sched"
)

const countdownTimer = "countdown"

// Countdown emits periodic commit progress while the decoder waits out the
// character and word gaps. Only one run is active at a time; starting again
// replaces the previous run. Percentages are clamped to [0,100].
type Countdown struct {
	mu       sync.Mutex
	sched    *sched.Scheduler
	listener Listener
	start    time.Time
	charGap  time.Duration
	wordGap  time.Duration
}

// NewCountdown creates a countdown reporting to listener.
func NewCountdown(s *sched.Scheduler, listener Listener) *Countdown {
	if listener == nil {
		listener = NopListener{}
	}
	return &Countdown{sched: s, listener: listener}
}

// Start begins a run measured from now. The gap values are captured at arm
// time; a later profile change does not reshape a running countdown.
func (c *Countdown) Start(charGap, wordGap time.Duration) {
	c.mu.Lock()
	c.start = c.sched.Now()
	c.charGap = charGap
	c.wordGap = wordGap
	c.mu.Unlock()

	c.sched.Repeat(countdownTimer, c.tick)
}

// Reset stops any run and reports a zeroed bar. The reset is emitted even
// when nothing was running.
func (c *Countdown) Reset() {
	c.sched.Cancel(countdownTimer)
	c.listener.ProgressUpdated(Progress{Stage: StageReset, Percent: 0})
}

// tick reports the stage for the elapsed time e: char-lock until the
// character gap, word-gap until the word gap, then a final done emission
// after which the run stops itself.
func (c *Countdown) tick(now time.Time) {
	c.mu.Lock()
	e := now.Sub(c.start)
	charGap, wordGap := c.charGap, c.wordGap
	c.mu.Unlock()

	var p Progress
	switch {
	case e < charGap:
		p = Progress{Stage: StageCharLock, Percent: percent(e, 0, charGap)}
	case e < wordGap:
		p = Progress{Stage: StageWordGap, Percent: percent(e, charGap, wordGap)}
	default:
		p = Progress{Stage: StageDone, Percent: 100}
		c.sched.Cancel(countdownTimer)
	}
	c.listener.ProgressUpdated(p)
}

// percent maps e within [from, to] onto 0..100.
func percent(e, from, to time.Duration) float64 {
	if to <= from {
		return 100
	}
	pct := float64(e-from) / float64(to-from) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
