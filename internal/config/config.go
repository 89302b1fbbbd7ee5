// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	AppName       = "cwtrainer"
	ConfigType    = "yaml"
	DefaultConfig = `# CW Trainer Configuration

# Keying
wpm: 20                 # Keying speed in words per minute (PARIS standard)

# Sidetone
frequency: 700          # Sidetone pitch in Hz
sample_rate: 48000      # Audio sample rate in Hz
volume: 0.8             # Output level (0.0-1.0)
mute: false             # Disable audio output entirely

# Scheduling
tick: 16                # Timer tick interval in milliseconds
                        # Lower = smoother countdown, higher = less CPU

# Storage
database: ""            # Session database path (empty = XDG data dir)

# Output
debug: false            # Enable debug logging
`
)

// Settings holds all application configuration
type Settings struct {
	// Keying
	WPM int `mapstructure:"wpm"`

	// Sidetone
	Frequency  float64 `mapstructure:"frequency"`
	SampleRate int     `mapstructure:"sample_rate"`
	Volume     float64 `mapstructure:"volume"`
	Mute       bool    `mapstructure:"mute"`

	// Scheduling
	Tick int `mapstructure:"tick"`

	// Storage
	Database string `mapstructure:"database"`

	// Output
	Debug bool `mapstructure:"debug"`
}

// Init initializes Viper with defaults and config file.
// Config file search order: current directory, then ~/.config/cwtrainer/
func Init() error {
	// Set defaults
	viper.SetDefault("wpm", 20)
	viper.SetDefault("frequency", 700)
	viper.SetDefault("sample_rate", 48000)
	viper.SetDefault("volume", 0.8)
	viper.SetDefault("mute", false)
	viper.SetDefault("tick", 16)
	viper.SetDefault("database", "")
	viper.SetDefault("debug", false)

	// Support both config.yaml and .config.yaml
	viper.SetConfigType(ConfigType)

	// Priority order: current directory first, then XDG config
	viper.AddConfigPath(".")

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	viper.AddConfigPath(filepath.Join(configDir, AppName))

	// Try .config.yaml first (hidden file), then config.yaml
	viper.SetConfigName(".config")
	if err = viper.ReadInConfig(); err != nil {
		// Try config.yaml as fallback
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}

	// Read config file - if not found, create default in XDG config dir
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// No config found - create default in ~/.config/cwtrainer/
			xdgConfigPath := filepath.Join(configDir, AppName)
			if err = ensureConfigExists(xdgConfigPath); err != nil {
				return err
			}
			// Read the newly created config
			if err = viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		} else {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

func ensureConfigExists(configPath string) error {
	configFile := filepath.Join(configPath, "config.yaml")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err = os.MkdirAll(configPath, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err = os.WriteFile(configFile, []byte(DefaultConfig), 0644); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}
	return nil
}

// Get returns the current settings
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate checks that all settings are within acceptable ranges
func (s *Settings) Validate() error {
	var errs []error

	// Keying
	if s.WPM < 1 || s.WPM > 60 {
		errs = append(errs, fmt.Errorf("wpm must be between 1 and 60, got %d", s.WPM))
	}

	// Sidetone
	if s.Frequency < 200 || s.Frequency > 2000 {
		errs = append(errs, fmt.Errorf("frequency must be between 200 and 2000 Hz, got %v", s.Frequency))
	}
	if s.SampleRate < 8000 || s.SampleRate > 192000 {
		errs = append(errs, fmt.Errorf("sample_rate must be between 8000 and 192000 Hz, got %d", s.SampleRate))
	}
	if s.Volume < 0.0 || s.Volume > 1.0 {
		errs = append(errs, fmt.Errorf("volume must be between 0.0 and 1.0, got %v", s.Volume))
	}

	// Nyquist check: tone frequency must be less than half the sample rate
	if s.Frequency >= float64(s.SampleRate)/2 {
		errs = append(errs, fmt.Errorf("frequency (%v Hz) must be less than Nyquist frequency (%v Hz)", s.Frequency, float64(s.SampleRate)/2))
	}

	// Scheduling
	if s.Tick < 4 || s.Tick > 100 {
		errs = append(errs, fmt.Errorf("tick must be between 4 and 100 ms, got %d", s.Tick))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// DatabasePath resolves the session database location. An empty setting
// falls back to the XDG data directory, which is created if missing.
func (s *Settings) DatabasePath() (string, error) {
	if s.Database != "" {
		return s.Database, nil
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, AppName)
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return filepath.Join(appDir, "sessions.db"), nil
}
