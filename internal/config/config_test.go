// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func resetViper() {
	viper.Reset()
}

// tempHome points HOME and XDG_CONFIG_HOME at a fresh directory so tests
// never touch the real user config.
func tempHome(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))
	return tmpDir
}

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	configDir := filepath.Join(home, ".config", AppName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestInit_WithDefaults(t *testing.T) {
	resetViper()
	home := tempHome(t)
	writeConfig(t, home, DefaultConfig)

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	tests := []struct {
		key      string
		expected interface{}
	}{
		{"wpm", 20},
		{"frequency", 700},
		{"sample_rate", 48000},
		{"volume", 0.8},
		{"mute", false},
		{"tick", 16},
		{"database", ""},
		{"debug", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := viper.Get(tt.key)
			if got != tt.expected {
				t.Errorf("viper.Get(%q) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestInit_CreatesConfigIfMissing(t *testing.T) {
	resetViper()
	home := tempHome(t)

	// Don't create config - let Init create it
	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	configPath := filepath.Join(home, ".config", AppName, "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("Init() did not create config file at %s", configPath)
	}
}

func TestInit_ReadsLocalConfigFirst(t *testing.T) {
	resetViper()
	home := tempHome(t)
	writeConfig(t, home, "wpm: 20")

	// Local config with a different value should win
	origDir, _ := os.Getwd()
	if err := os.Chdir(home); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(origDir); err != nil {
			t.Logf("failed to restore dir: %v", err)
		}
	}()

	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte("wpm: 25"), 0644); err != nil {
		t.Fatalf("failed to write local config: %v", err)
	}

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if got := viper.GetInt("wpm"); got != 25 {
		t.Errorf("viper.GetInt(wpm) = %d, want 25 (local config)", got)
	}
}

func TestGet_ReturnsSettings(t *testing.T) {
	resetViper()
	home := tempHome(t)
	writeConfig(t, home, DefaultConfig)

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	settings, err := Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if settings.WPM != 20 {
		t.Errorf("Settings.WPM = %d, want 20", settings.WPM)
	}
	if settings.Frequency != 700 {
		t.Errorf("Settings.Frequency = %v, want 700", settings.Frequency)
	}
	if settings.SampleRate != 48000 {
		t.Errorf("Settings.SampleRate = %d, want 48000", settings.SampleRate)
	}
	if settings.Volume != 0.8 {
		t.Errorf("Settings.Volume = %v, want 0.8", settings.Volume)
	}
	if settings.Mute {
		t.Error("Settings.Mute = true, want false")
	}
	if settings.Tick != 16 {
		t.Errorf("Settings.Tick = %d, want 16", settings.Tick)
	}
	if settings.Debug {
		t.Error("Settings.Debug = true, want false")
	}
}

func TestGet_AllFields(t *testing.T) {
	resetViper()
	home := tempHome(t)

	customConfig := `wpm: 25
frequency: 650
sample_rate: 44100
volume: 0.5
mute: true
tick: 20
database: /tmp/cw-sessions.db
debug: true
`
	writeConfig(t, home, customConfig)

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	settings, err := Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if settings.WPM != 25 {
		t.Errorf("Settings.WPM = %d, want 25", settings.WPM)
	}
	if settings.Frequency != 650 {
		t.Errorf("Settings.Frequency = %v, want 650", settings.Frequency)
	}
	if settings.SampleRate != 44100 {
		t.Errorf("Settings.SampleRate = %d, want 44100", settings.SampleRate)
	}
	if settings.Volume != 0.5 {
		t.Errorf("Settings.Volume = %v, want 0.5", settings.Volume)
	}
	if !settings.Mute {
		t.Error("Settings.Mute = false, want true")
	}
	if settings.Tick != 20 {
		t.Errorf("Settings.Tick = %d, want 20", settings.Tick)
	}
	if settings.Database != "/tmp/cw-sessions.db" {
		t.Errorf("Settings.Database = %q, want /tmp/cw-sessions.db", settings.Database)
	}
	if !settings.Debug {
		t.Error("Settings.Debug = false, want true")
	}
}

func TestGet_InvalidConfigFails(t *testing.T) {
	resetViper()
	home := tempHome(t)
	writeConfig(t, home, "wpm: 0")

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if _, err := Get(); err == nil {
		t.Error("Get() with wpm 0 should fail validation")
	}
}

func TestValidate(t *testing.T) {
	valid := Settings{
		WPM:        20,
		Frequency:  700,
		SampleRate: 48000,
		Volume:     0.8,
		Tick:       16,
	}

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"valid", func(s *Settings) {}, ""},
		{"wpm too low", func(s *Settings) { s.WPM = 0 }, "wpm"},
		{"wpm too high", func(s *Settings) { s.WPM = 61 }, "wpm"},
		{"frequency too low", func(s *Settings) { s.Frequency = 100 }, "frequency"},
		{"frequency too high", func(s *Settings) { s.Frequency = 2500 }, "frequency"},
		{"sample rate too low", func(s *Settings) { s.SampleRate = 4000 }, "sample_rate"},
		{"sample rate too high", func(s *Settings) { s.SampleRate = 384000 }, "sample_rate"},
		{"volume negative", func(s *Settings) { s.Volume = -0.1 }, "volume"},
		{"volume too high", func(s *Settings) { s.Volume = 1.5 }, "volume"},
		{"tick too low", func(s *Settings) { s.Tick = 0 }, "tick"},
		{"tick too high", func(s *Settings) { s.Tick = 200 }, "tick"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() error = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	s := Settings{WPM: 0, Frequency: 100, SampleRate: 48000, Volume: 2.0, Tick: 16}

	err := s.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil, want joined errors")
	}
	for _, want := range []string{"wpm", "frequency", "volume"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error should mention %q, got: %v", want, err)
		}
	}
}

func TestDatabasePath_Override(t *testing.T) {
	s := Settings{Database: "/tmp/override.db"}

	got, err := s.DatabasePath()
	if err != nil {
		t.Fatalf("DatabasePath() error = %v", err)
	}
	if got != "/tmp/override.db" {
		t.Errorf("DatabasePath() = %q, want /tmp/override.db", got)
	}
}

func TestDatabasePath_XDGFallback(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)

	s := Settings{}
	got, err := s.DatabasePath()
	if err != nil {
		t.Fatalf("DatabasePath() error = %v", err)
	}

	want := filepath.Join(tmpDir, AppName, "sessions.db")
	if got != want {
		t.Errorf("DatabasePath() = %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, AppName)); err != nil {
		t.Errorf("DatabasePath() should create the data dir: %v", err)
	}
}
