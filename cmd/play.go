// cmd/play.go
package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ColonelBlimp/cwtrainer/internal/config"
	"github.com/ColonelBlimp/cwtrainer/internal/cw"
	"github.com/ColonelBlimp/cwtrainer/internal/sched"
)

var playFlags = struct {
	text bool
}{}

var playCmd = &cobra.Command{
	Use:   "play [sequence]",
	Short: "Play a Morse sequence through the sidetone",
	Long: `Plays a dot/dash sequence through the sidetone at the configured speed,
for example:

  cwtrainer play ".... ..  - .... . .-. ."

With --text the arguments are treated as plain text and encoded through
the code table first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVarP(&playFlags.text, "text", "t", false, "treat the arguments as text to encode")
	rootCmd.AddCommand(playCmd)
}

// doneListener closes done when the playing indicator clears.
type doneListener struct {
	done chan struct{}
}

func (l doneListener) PlaybackChanged(active bool) {
	if !active {
		close(l.done)
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	settings, err := config.Get()
	if err != nil {
		return err
	}
	setupLogging(settings.Debug)

	sequence := strings.Join(args, " ")
	if playFlags.text {
		sequence = cw.Encode(sequence)
	}
	if strings.TrimSpace(sequence) == "" {
		return errors.New("nothing to play")
	}

	profile, err := cw.NewProfile(settings.WPM)
	if err != nil {
		return err
	}

	tone, closeTone := buildTone(settings)
	defer closeTone()

	scheduler := sched.New(sched.WallClock)
	done := make(chan struct{})
	player := cw.NewPlayer(func() cw.Profile { return profile }, scheduler, tone, doneListener{done: done})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go scheduler.Run(ctx, time.Duration(settings.Tick)*time.Millisecond)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		player.Cancel()
	}()

	log.Printf("playing %q at %d WPM", sequence, profile.WPM)
	player.Play(sequence)
	<-done
	return nil
}
