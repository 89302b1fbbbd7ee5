// internal/dsp/oscillator.go
// Package dsp provides the synthesis primitives behind the sidetone.
package dsp

import (
	"math"
	"sync/atomic"
	"time"
)

const (
	// AttackTime is the envelope ramp when the gate opens. About a
	// millisecond keeps keying click-free without softening the edges.
	AttackTime = time.Millisecond
	// ReleaseTime is the envelope ramp when the gate closes.
	ReleaseTime = time.Millisecond
)

// Oscillator generates a gated sine wave. The gate may be flipped from any
// goroutine; Synthesize runs on the audio thread and never blocks. Instead
// of switching the signal hard, the envelope gain ramps linearly over the
// attack/release window so no click reaches the speaker.
type Oscillator struct {
	gate atomic.Bool

	// audio thread state
	phase float64
	gain  float64

	phaseInc    float64
	attackStep  float64
	releaseStep float64
	volume      float64
}

// NewOscillator creates a generator for the given sample rate, pitch and
// output level (0 to 1).
func NewOscillator(sampleRate, frequency, volume float64) *Oscillator {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &Oscillator{
		phaseInc:    2 * math.Pi * frequency / sampleRate,
		attackStep:  1 / (sampleRate * AttackTime.Seconds()),
		releaseStep: 1 / (sampleRate * ReleaseTime.Seconds()),
		volume:      volume,
	}
}

// SetGate opens or closes the tone.
func (o *Oscillator) SetGate(on bool) {
	o.gate.Store(on)
}

// Gate reports the current target state.
func (o *Oscillator) Gate() bool {
	return o.gate.Load()
}

// Synthesize fills dst with the next mono samples. Called from the audio
// device callback; the gate is sampled once per buffer and the envelope
// ramps per sample toward it.
func (o *Oscillator) Synthesize(dst []float32) {
	target := 0.0
	if o.gate.Load() {
		target = 1.0
	}

	for i := range dst {
		switch {
		case o.gain < target:
			o.gain = min(o.gain+o.attackStep, target)
		case o.gain > target:
			o.gain = max(o.gain-o.releaseStep, target)
		}

		if o.gain == 0 {
			// fully released: restart the next tone at a zero crossing
			o.phase = 0
			dst[i] = 0
			continue
		}

		dst[i] = float32(math.Sin(o.phase) * o.gain * o.volume)
		o.phase += o.phaseInc
		if o.phase >= 2*math.Pi {
			o.phase -= 2 * math.Pi
		}
	}
}
