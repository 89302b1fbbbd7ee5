// cmd/play_test.go
package cmd

import (
	"testing"
)

func TestPlayCmd_Registered(t *testing.T) {
	found := false
	for _, c := range rootCmd.Commands() {
		if c.Name() == "play" {
			found = true
		}
	}
	if !found {
		t.Error("play command not registered on root")
	}
}

func TestPlayCmd_RequiresArgs(t *testing.T) {
	if err := playCmd.Args(playCmd, []string{}); err == nil {
		t.Error("play with no arguments should fail validation")
	}
	if err := playCmd.Args(playCmd, []string{".-"}); err != nil {
		t.Errorf("play with one argument failed validation: %v", err)
	}
}

func TestPlayCmd_TextFlag(t *testing.T) {
	flag := playCmd.Flags().Lookup("text")
	if flag == nil {
		t.Fatal("flag \"text\" not found")
	}
	if flag.Shorthand != "t" {
		t.Errorf("flag \"text\" shorthand = %q, want %q", flag.Shorthand, "t")
	}
	if flag.DefValue != "false" {
		t.Errorf("flag \"text\" default = %q, want %q", flag.DefValue, "false")
	}
}

func TestDoneListener(t *testing.T) {
	done := make(chan struct{})
	l := doneListener{done: done}

	l.PlaybackChanged(true)
	select {
	case <-done:
		t.Fatal("done closed when playback started")
	default:
	}

	l.PlaybackChanged(false)
	select {
	case <-done:
	default:
		t.Fatal("done not closed when playback stopped")
	}
}
