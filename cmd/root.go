// cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ColonelBlimp/cwtrainer/internal/audio"
	"github.com/ColonelBlimp/cwtrainer/internal/config"
	"github.com/ColonelBlimp/cwtrainer/internal/cw"
	"github.com/ColonelBlimp/cwtrainer/internal/recovery"
	"github.com/ColonelBlimp/cwtrainer/internal/sched"
	"github.com/ColonelBlimp/cwtrainer/internal/store"
	"github.com/ColonelBlimp/cwtrainer/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "cwtrainer",
	Short: "CW (Morse code) practice keyer with live decoding",
	Long: `An interactive trainer that decodes paddle-keyed Morse in real time,
previews the pending commit with a countdown, sounds a sidetone for every
signal, and replays decoded text as correctly-timed tone pulses.`,
	RunE: runTrainer,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags (override config file)
	rootCmd.PersistentFlags().IntP("wpm", "w", 20, "keying speed in words per minute")
	rootCmd.PersistentFlags().Float64P("frequency", "f", 700, "sidetone pitch in Hz")
	rootCmd.PersistentFlags().BoolP("mute", "m", false, "disable audio output")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "enable debug logging")

	// Bind flags to viper
	viper.BindPFlag("wpm", rootCmd.PersistentFlags().Lookup("wpm"))
	viper.BindPFlag("frequency", rootCmd.PersistentFlags().Lookup("frequency"))
	viper.BindPFlag("mute", rootCmd.PersistentFlags().Lookup("mute"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging discards log output unless debug is enabled.
func setupLogging(debug bool) {
	if !debug {
		log.SetOutput(&nopWriter{})
	}
}

type nopWriter struct{}

func (w *nopWriter) Write(p []byte) (n int, err error) { return len(p), nil }

// buildTone opens the sidetone device. When audio is muted or the backend
// cannot start, the trainer degrades to silent operation.
func buildTone(settings *config.Settings) (cw.Tone, func()) {
	if settings.Mute {
		return cw.NopTone{}, func() {}
	}

	side := audio.New(audio.Config{
		SampleRate: uint32(settings.SampleRate),
		Frequency:  settings.Frequency,
		Volume:     settings.Volume,
	})
	if err := side.Init(); err != nil {
		log.Printf("sidetone unavailable, continuing muted: %v", err)
		return cw.NopTone{}, func() {}
	}
	if err := side.Start(); err != nil {
		log.Printf("sidetone unavailable, continuing muted: %v", err)
		_ = side.Close()
		return cw.NopTone{}, func() {}
	}
	return side, func() { _ = side.Close() }
}

func runTrainer(cmd *cobra.Command, args []string) error {
	settings, err := config.Get()
	if err != nil {
		return err
	}
	setupLogging(settings.Debug)

	tone, closeTone := buildTone(settings)
	defer closeTone()

	scheduler := sched.New(sched.WallClock)
	relay := tui.NewRelay()
	decoder, err := cw.NewDecoder(settings.WPM, scheduler, tone, relay)
	if err != nil {
		return err
	}
	player := cw.NewPlayer(decoder.Profile, scheduler, tone, relay)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		defer recovery.HandlePanicFunc(cancel)
		scheduler.Run(ctx, time.Duration(settings.Tick)*time.Millisecond)
	}()

	startedAt := time.Now()
	model := tui.NewModel(decoder, player, scheduler)
	program := tea.NewProgram(model, tea.WithAltScreen())
	relay.Attach(program)

	_, err = program.Run()
	cancel()
	if err != nil {
		return fmt.Errorf("run interface: %w", err)
	}

	recordSession(settings, startedAt, decoder, player)
	return nil
}

// recordSession stores the practice summary. Sessions without any activity
// are skipped, and storage failures only log.
func recordSession(settings *config.Settings, startedAt time.Time, decoder *cw.Decoder, player *cw.Player) {
	chars, words := decoder.Stats()
	plays := player.Plays()
	if chars == 0 && words == 0 && plays == 0 {
		return
	}

	path, err := settings.DatabasePath()
	if err != nil {
		log.Printf("skip session record: %v", err)
		return
	}
	st, err := store.Open(path)
	if err != nil {
		log.Printf("skip session record: %v", err)
		return
	}
	defer func() { _ = st.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = st.InsertSession(ctx, store.Session{
		StartedAt:  startedAt,
		DurationMs: time.Since(startedAt).Milliseconds(),
		WPM:        decoder.Profile().WPM,
		Characters: chars,
		Words:      words,
		Plays:      plays,
	})
	if err != nil {
		log.Printf("record session: %v", err)
	}
}
