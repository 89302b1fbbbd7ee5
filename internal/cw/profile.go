// internal/cw/profile.go
package cw

import (
	"errors"
	"time"
)

// Morse timing ratios (ITU standard)
const (
	// DotThresholdRatio is the decision boundary between dot and dash in dit
	// units (midpoint of dit=1 and dah=3)
	DotThresholdRatio = 2
	// CharGapRatio is the inactivity after which a character commits (ITU: 3:1)
	CharGapRatio = 3
	// WordGapRatio is the inactivity after which a word space follows (ITU: 7:1)
	WordGapRatio = 7

	// MillisecondsPerMinute is used for WPM calculations
	MillisecondsPerMinute = 60000
	// DitsPerWord is the standard word "PARIS" = 50 dit units
	DitsPerWord = 50
)

// ErrInvalidWPM indicates WPM must be positive
var ErrInvalidWPM = errors.New("WPM must be positive")

// Symbol is a single Morse element, dot or dash.
type Symbol rune

const (
	Dot  Symbol = '.'
	Dash Symbol = '-'
)

func (s Symbol) String() string {
	return string(rune(s))
}

// Profile holds the timing thresholds derived from a WPM setting. All four
// durations are exact multiples of the dit unit; a Profile never holds zero
// or negative durations.
type Profile struct {
	WPM          int
	Unit         time.Duration // one dit
	DotThreshold time.Duration // 2 units: at or above keys a dash
	CharGap      time.Duration // 3 units: pending sequence commits
	WordGap      time.Duration // 7 units: word space appended
}

// NewProfile derives the timing thresholds for the given speed.
// dit_duration_ms = 60000 / (WPM * DitsPerWord), i.e. 1200/WPM ms.
func NewProfile(wpm int) (Profile, error) {
	if wpm <= 0 {
		return Profile{}, ErrInvalidWPM
	}

	unit := MillisecondsPerMinute * time.Millisecond / time.Duration(wpm*DitsPerWord)
	return Profile{
		WPM:          wpm,
		Unit:         unit,
		DotThreshold: DotThresholdRatio * unit,
		CharGap:      CharGapRatio * unit,
		WordGap:      WordGapRatio * unit,
	}, nil
}

// Classify maps a signal duration to a symbol. Durations below the dot
// threshold are dots; the threshold itself already keys a dash.
func (p Profile) Classify(d time.Duration) Symbol {
	if d < p.DotThreshold {
		return Dot
	}
	return Dash
}
