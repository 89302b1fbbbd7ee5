// internal/cw/events.go
package cw

// Stage identifies the phase of the commit countdown.
type Stage string

const (
	// StageReset is emitted when a new press or a clear interrupts the wait.
	StageReset Stage = "reset"
	// StageCharLock covers the character gap: the pending sequence commits
	// when the bar fills.
	StageCharLock Stage = "char-lock"
	// StageWordGap covers the remaining wait until a word space is appended.
	StageWordGap Stage = "word-gap"
	// StageDone is the final emission once the word gap has fully elapsed.
	StageDone Stage = "done"
)

// Update carries the rendering state after any decoder change.
type Update struct {
	// Text is the committed characters and word spaces so far
	Text string
	// Pending is the in-progress symbol sequence
	Pending string
	// Preview is the character Pending would commit to, or empty
	Preview string
}

// Progress is a single countdown emission.
type Progress struct {
	Stage   Stage
	Percent float64 // 0 to 100
}

// Listener receives decoder and countdown emissions. Implementations are
// called from timer and input goroutines and must be non-blocking and fast.
type Listener interface {
	DecodeUpdated(u Update)
	ProgressUpdated(p Progress)
}

// PlaybackListener receives the playing indicator.
type PlaybackListener interface {
	PlaybackChanged(active bool)
}

// Tone is the sidetone gate shared by the keying path and the playback
// engine; the last writer wins. Implementations fade over about a
// millisecond so keying never clicks.
type Tone interface {
	Activate()
	Deactivate()
}

// NopTone is a Tone producing no sound, used when audio is muted or the
// output device is unavailable.
type NopTone struct{}

func (NopTone) Activate()   {}
func (NopTone) Deactivate() {}

// NopListener discards all emissions.
type NopListener struct{}

func (NopListener) DecodeUpdated(Update)     {}
func (NopListener) ProgressUpdated(Progress) {}

type nopPlaybackListener struct{}

func (nopPlaybackListener) PlaybackChanged(bool) {}
