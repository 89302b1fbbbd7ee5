// internal/cw/decoder.go
// Package cw implements Morse decoding from timed key signals: press
// durations classify into dots and dashes, inactivity gaps commit characters
// and word spaces through named timers, a countdown previews the pending
// commit, and a playback engine reverses the process into timed tone pulses.
package cw

import (
	"errors"
	"sync"
	"time"

	"github.com/ColonelBlimp/cwtrainer/internal/sched"
)

// Timer names registered with the scheduler. Arming an armed name replaces
// it, so neither timer can fire twice for one gap.
const (
	commitTimer = "decoder.commit"
	wordTimer   = "decoder.word"
)

// ErrNotKeying indicates EndSignal without a matching StartSignal; the
// elapsed duration would be undefined. Input layers should debounce key
// repeat rather than rely on this.
var ErrNotKeying = errors.New("no signal in progress")

// Decoder is the timing-driven decoding state machine. It owns the active
// profile, the pending symbol sequence, the decoded text, the commit timers
// and the countdown; there is no package-level state. All methods are safe
// for concurrent use; emissions happen outside the lock.
type Decoder struct {
	mu        sync.Mutex
	sched     *sched.Scheduler
	tone      Tone
	listener  Listener
	countdown *Countdown

	profile   Profile
	text      string
	pending   string
	keying    bool
	pressedAt time.Time

	// session counters, reported by Stats
	chars int
	words int
}

// NewDecoder creates a decoder keyed at the given speed. A nil tone or
// listener falls back to the no-op implementation.
func NewDecoder(wpm int, s *sched.Scheduler, tone Tone, listener Listener) (*Decoder, error) {
	profile, err := NewProfile(wpm)
	if err != nil {
		return nil, err
	}
	if tone == nil {
		tone = NopTone{}
	}
	if listener == nil {
		listener = NopListener{}
	}
	return &Decoder{
		sched:     s,
		tone:      tone,
		listener:  listener,
		countdown: NewCountdown(s, listener),
		profile:   profile,
	}, nil
}

// StartSignal marks key-down. A new press always interrupts pending commits:
// both timers are cancelled and the countdown resets. A repeated key-down
// without an intervening release is ignored.
func (d *Decoder) StartSignal() {
	d.mu.Lock()
	if d.keying {
		d.mu.Unlock()
		return
	}
	d.keying = true
	d.pressedAt = d.sched.Now()
	d.mu.Unlock()

	d.sched.Cancel(commitTimer)
	d.sched.Cancel(wordTimer)
	d.countdown.Reset()
	d.tone.Activate()
}

// EndSignal marks key-up: the elapsed press classifies into a symbol, the
// preview updates, the countdown starts with gaps captured from the active
// profile, and the character commit timer arms for the character gap.
func (d *Decoder) EndSignal() error {
	d.mu.Lock()
	if !d.keying {
		d.mu.Unlock()
		return ErrNotKeying
	}
	d.keying = false
	duration := d.sched.Now().Sub(d.pressedAt)
	profile := d.profile
	d.pending += profile.Classify(duration).String()
	u := d.snapshot()
	d.mu.Unlock()

	d.tone.Deactivate()
	d.listener.DecodeUpdated(u)
	d.countdown.Start(profile.CharGap, profile.WordGap)
	d.sched.Schedule(commitTimer, profile.CharGap, d.commit)
	return nil
}

// commit fires after a character gap of inactivity. Unknown sequences vanish
// without an error marker. The word timer arms for the remainder of the word
// gap.
func (d *Decoder) commit() {
	d.mu.Lock()
	if ch, ok := Lookup(d.pending); ok {
		d.text += string(ch)
		d.chars++
	}
	d.pending = ""
	u := d.snapshot()
	gap := d.profile.WordGap - d.profile.CharGap
	d.mu.Unlock()

	d.listener.DecodeUpdated(u)
	d.sched.Schedule(wordTimer, gap, d.wordSpace)
}

// wordSpace fires once the word gap elapses uninterrupted and appends a
// single space.
func (d *Decoder) wordSpace() {
	d.mu.Lock()
	d.text += " "
	d.words++
	u := d.snapshot()
	d.mu.Unlock()

	d.listener.DecodeUpdated(u)
}

// Clear empties the decoded text and pending sequence, disarms both timers
// and resets the countdown. Calling it again yields the same observable
// state and the same emissions.
func (d *Decoder) Clear() {
	d.mu.Lock()
	d.text = ""
	d.pending = ""
	d.mu.Unlock()

	d.sched.Cancel(commitTimer)
	d.sched.Cancel(wordTimer)
	d.listener.DecodeUpdated(Update{})
	d.countdown.Reset()
}

// SetWPM swaps the timing profile. The change applies to future signals and
// timers only; anything already armed keeps its original duration. On
// ErrInvalidWPM the prior profile stays active.
func (d *Decoder) SetWPM(wpm int) error {
	profile, err := NewProfile(wpm)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.profile = profile
	d.mu.Unlock()
	return nil
}

// snapshot builds the emission for the current state. Callers hold d.mu.
func (d *Decoder) snapshot() Update {
	u := Update{Text: d.text, Pending: d.pending}
	if ch, ok := Lookup(d.pending); ok {
		u.Preview = string(ch)
	}
	return u
}

// Text returns the committed text.
func (d *Decoder) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

// Pending returns the in-progress symbol sequence.
func (d *Decoder) Pending() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Keying reports whether a signal is open.
func (d *Decoder) Keying() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.keying
}

// Profile returns the active timing profile.
func (d *Decoder) Profile() Profile {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.profile
}

// Stats reports the characters and word spaces committed since construction.
func (d *Decoder) Stats() (chars, words int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.chars, d.words
}
