// internal/cw/playback.go
package cw

import (
	"sync"

	"github.com/ColonelBlimp/cwtrainer/internal/sched"
)

const (
	playbackStep = "playback.step"
	playbackOff  = "playback.off"
)

// Player replays a symbol sequence as timed tone pulses. A dot keys the tone
// for one unit, a dash for three; a space waits three units silent. Every
// token, space included, is followed by one further unit of pause before the
// next token. Runes outside the vocabulary are skipped.
//
// The engine never sleeps: each token schedules the next advance, so the
// decoder and its timers run undisturbed alongside a replay and tests drive
// the whole sequence from the manual clock.
type Player struct {
	mu       sync.Mutex
	sched    *sched.Scheduler
	profile  func() Profile
	tone     Tone
	listener PlaybackListener
	playing  bool
	tokens   []rune
	next     int

	// session counter, reported by Plays
	plays int
}

// NewPlayer creates a playback engine. The profile func is consulted per
// token, so a WPM change reshapes tokens not yet scheduled. A nil tone or
// listener falls back to the no-op implementation.
func NewPlayer(profile func() Profile, s *sched.Scheduler, tone Tone, listener PlaybackListener) *Player {
	if tone == nil {
		tone = NopTone{}
	}
	if listener == nil {
		listener = nopPlaybackListener{}
	}
	return &Player{
		sched:    s,
		profile:  profile,
		tone:     tone,
		listener: listener,
	}
}

// Play starts replaying sequence and sets the playing indicator. A call
// while a replay is active is a no-op.
func (p *Player) Play(sequence string) {
	p.mu.Lock()
	if p.playing {
		p.mu.Unlock()
		return
	}
	p.playing = true
	p.tokens = []rune(sequence)
	p.next = 0
	p.plays++
	p.mu.Unlock()

	p.listener.PlaybackChanged(true)
	p.step()
}

// step processes one token and schedules the next advance. The in-flight
// flag is checked before every token so cancellation stops the sequence.
func (p *Player) step() {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}
	for p.next < len(p.tokens) {
		if t := p.tokens[p.next]; t == '.' || t == '-' || t == ' ' {
			break
		}
		p.next++
	}
	if p.next >= len(p.tokens) {
		p.playing = false
		p.mu.Unlock()

		p.tone.Deactivate()
		p.listener.PlaybackChanged(false)
		return
	}
	token := p.tokens[p.next]
	p.next++
	p.mu.Unlock()

	unit := p.profile().Unit
	switch token {
	case '.':
		p.tone.Activate()
		p.sched.Schedule(playbackOff, unit, p.toneOff)
		p.sched.Schedule(playbackStep, 2*unit, p.step)
	case '-':
		p.tone.Activate()
		p.sched.Schedule(playbackOff, 3*unit, p.toneOff)
		p.sched.Schedule(playbackStep, 4*unit, p.step)
	case ' ':
		// inter-character gap: three silent units plus the trailing pause
		p.sched.Schedule(playbackStep, 4*unit, p.step)
	}
}

func (p *Player) toneOff() {
	p.tone.Deactivate()
}

// Cancel stops a replay mid-sequence: the tone releases immediately, both
// pending advances disarm and the indicator clears. Idempotent; a no-op
// when nothing is playing.
func (p *Player) Cancel() {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}
	p.playing = false
	p.mu.Unlock()

	p.sched.Cancel(playbackStep)
	p.sched.Cancel(playbackOff)
	p.tone.Deactivate()
	p.listener.PlaybackChanged(false)
}

// Playing reports whether a replay is active.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Plays reports how many replays were started since construction.
func (p *Player) Plays() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plays
}
