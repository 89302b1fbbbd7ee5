// internal/tui/model.go
// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ColonelBlimp/cwtrainer/internal/cw"
	"github.com/ColonelBlimp/cwtrainer/internal/sched"
)

// keyerRelease is the scheduler timer closing a paddle-keyed signal.
const keyerRelease = "keyer.release"

// WPM bounds reachable through the speed keys, matching the config range.
const (
	minWPM = 1
	maxWPM = 60
)

var (
	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	previewStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	stageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	playingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea practice UI. Key presses drive the decoder
// like a paddle: a dot key opens a one-unit signal, a dash key a three-unit
// signal, with the release scheduled on the shared timer wheel. Terminal
// input has no key-up events, so straight-key timing is not possible here.
type Model struct {
	decoder *cw.Decoder
	player  *cw.Player
	sched   *sched.Scheduler

	width  int
	height int
	bar    progress.Model

	update  cw.Update
	stage   cw.Stage
	percent float64
	playing bool
}

// NewModel constructs the practice model around an assembled core.
func NewModel(decoder *cw.Decoder, player *cw.Player, s *sched.Scheduler) *Model {
	bar := progress.New(progress.WithDefaultGradient())
	return &Model{
		decoder: decoder,
		player:  player,
		sched:   s,
		bar:     bar,
		stage:   cw.StageReset,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := msg.Width - 8
		if barWidth > 60 {
			barWidth = 60
		}
		if barWidth < 10 {
			barWidth = 10
		}
		m.bar.Width = barWidth
		return m, nil
	case decodeMsg:
		m.update = cw.Update(msg)
		return m, nil
	case progressMsg:
		m.stage = msg.Stage
		m.percent = msg.Percent
		return m, nil
	case playbackMsg:
		m.playing = bool(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if cmd := m.handleRune(r); cmd != nil {
				return m, cmd
			}
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleRune(r rune) tea.Cmd {
	switch r {
	case 'q':
		return tea.Quit
	case '.', 'j':
		m.key(cw.Dot)
	case '-', 'k':
		m.key(cw.Dash)
	case 'p':
		if seq := cw.Encode(m.decoder.Text()); seq != "" {
			m.player.Play(seq)
		}
	case 'x':
		m.player.Cancel()
	case 'c':
		m.decoder.Clear()
	case ']':
		m.adjustWPM(1)
	case '[':
		m.adjustWPM(-1)
	}
	return nil
}

// key opens a paddle signal of the given weight and schedules its release.
// A press while the previous element still sounds is ignored, like a paddle
// refusing to double-strike.
func (m *Model) key(sym cw.Symbol) {
	if m.decoder.Keying() {
		return
	}
	units := time.Duration(1)
	if sym == cw.Dash {
		units = 3
	}
	hold := units * m.decoder.Profile().Unit
	m.decoder.StartSignal()
	m.sched.Schedule(keyerRelease, hold, func() {
		_ = m.decoder.EndSignal()
	})
}

func (m *Model) adjustWPM(delta int) {
	wpm := m.decoder.Profile().WPM + delta
	if wpm < minWPM || wpm > maxWPM {
		return
	}
	_ = m.decoder.SetWPM(wpm)
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	text := m.update.Text
	if text == "" {
		text = " "
	}
	boxWidth := m.width - 4
	if boxWidth < 20 {
		boxWidth = 20
	}
	b.WriteString(boxStyle.Width(boxWidth).Render(textStyle.Render(text)))
	b.WriteString("\n\n")

	pending := m.update.Pending
	if pending == "" {
		pending = "·"
	}
	preview := m.update.Preview
	if preview == "" {
		preview = "?"
	}
	b.WriteString(fmt.Sprintf(" %s %s\n\n",
		pendingStyle.Render(pending),
		previewStyle.Render("→ "+preview)))

	b.WriteString(" " + m.bar.ViewAs(m.percent/100) + "\n")
	b.WriteString(" " + stageStyle.Render(string(m.stage)) + "\n\n")

	if m.playing {
		b.WriteString(" " + playingStyle.Render("playing") + "\n\n")
	}

	footer := fmt.Sprintf("%d wpm · . dot · - dash · p play · x stop · c clear · [ ] speed · q quit",
		m.decoder.Profile().WPM)
	b.WriteString(footerStyle.Render(footer))

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, b.String())
	}
	return b.String()
}
