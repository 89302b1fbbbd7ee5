// internal/tui/relay.go
package tui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ColonelBlimp/cwtrainer/internal/cw"
)

// Messages carrying core emissions into the Bubble Tea loop.
type (
	decodeMsg   cw.Update
	progressMsg cw.Progress
	playbackMsg bool
)

// Relay forwards decoder, countdown and playback emissions into the Bubble
// Tea program. It is registered as the core listener before the program
// exists; emissions arriving before Attach are dropped, which only affects
// the instant the trainer starts up.
type Relay struct {
	target atomic.Pointer[tea.Program]
}

// NewRelay creates an unattached relay.
func NewRelay() *Relay {
	return &Relay{}
}

// Attach points the relay at the running program. Safe to call while
// emissions are in flight.
func (r *Relay) Attach(p *tea.Program) {
	r.target.Store(p)
}

// DecodeUpdated implements cw.Listener.
func (r *Relay) DecodeUpdated(u cw.Update) {
	r.send(decodeMsg(u))
}

// ProgressUpdated implements cw.Listener.
func (r *Relay) ProgressUpdated(p cw.Progress) {
	r.send(progressMsg(p))
}

// PlaybackChanged implements cw.PlaybackListener.
func (r *Relay) PlaybackChanged(active bool) {
	r.send(playbackMsg(active))
}

func (r *Relay) send(msg tea.Msg) {
	if p := r.target.Load(); p != nil {
		p.Send(msg)
	}
}
