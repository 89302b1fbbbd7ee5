// internal/audio/sidetone.go
package audio

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/ColonelBlimp/cwtrainer/internal/dsp"
)

var (
	ErrNotInitialized = errors.New("sidetone not initialized")
	ErrAlreadyRunning = errors.New("sidetone already running")
	ErrNotRunning     = errors.New("sidetone not running")
)

// Config holds sidetone output configuration
type Config struct {
	SampleRate uint32  // e.g., 48000
	Frequency  float64 // tone pitch in Hz
	Volume     float64 // output level, 0.0 to 1.0
}

// DefaultConfig returns sensible defaults for a practice sidetone
func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		Frequency:  700,
		Volume:     0.8,
	}
}

// Sidetone renders the keying tone through the default playback device. The
// device runs continuously once started; the oscillator gate decides whether
// it hears tone or silence, so activation latency is one audio period.
type Sidetone struct {
	config  Config
	ctx     *malgo.AllocatedContext
	device  *malgo.Device
	osc     *dsp.Oscillator
	running bool
	mu      sync.Mutex

	// scratch buffer for the device callback, audio thread only
	frames []float32
}

// New creates a new sidetone instance
func New(cfg Config) *Sidetone {
	return &Sidetone{
		config: cfg,
		osc:    dsp.NewOscillator(float64(cfg.SampleRate), cfg.Frequency, cfg.Volume),
	}
}

// Init initializes the audio backend
func (s *Sidetone) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctxConfig := malgo.ContextConfig{}
	ctx, err := malgo.InitContext(nil, ctxConfig, nil)
	if err != nil {
		return fmt.Errorf("init audio context: %w", err)
	}
	s.ctx = ctx

	return nil
}

// Start opens the playback device. It renders silence until the gate opens.
func (s *Sidetone) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	if s.ctx == nil {
		s.mu.Unlock()
		return ErrNotInitialized
	}
	s.mu.Unlock()

	deviceConfig := malgo.DeviceConfig{
		DeviceType: malgo.Playback,
		SampleRate: s.config.SampleRate,
		Playback: malgo.SubConfig{
			Format:   malgo.FormatF32,
			Channels: 1,
		},
	}

	// Callback fills the output with synthesized samples
	onSendFrames := func(outputSamples, inputSamples []byte, frameCount uint32) {
		if len(outputSamples) == 0 {
			return
		}

		if uint32(len(s.frames)) < frameCount {
			s.frames = make([]float32, frameCount)
		}
		buf := s.frames[:frameCount]
		s.osc.Synthesize(buf)
		float32ToBytes(buf, outputSamples)
	}

	deviceCallbacks := malgo.DeviceCallbacks{
		Data: onSendFrames,
	}

	device, err := malgo.InitDevice(s.ctx.Context, deviceConfig, deviceCallbacks)
	if err != nil {
		return fmt.Errorf("init device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		return fmt.Errorf("start device: %w", err)
	}

	s.mu.Lock()
	s.device = device
	s.running = true
	s.mu.Unlock()

	return nil
}

// Stop stops the playback device
func (s *Sidetone) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return ErrNotRunning
	}

	if s.device != nil {
		_ = s.device.Stop()
		s.device.Uninit()
		s.device = nil
	}

	s.running = false
	return nil
}

// Close releases all audio resources
func (s *Sidetone) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running && s.device != nil {
		_ = s.device.Stop()
		s.device.Uninit()
		s.device = nil
		s.running = false
	}

	if s.ctx != nil {
		if err := s.ctx.Uninit(); err != nil {
			return fmt.Errorf("uninit context: %w", err)
		}
		s.ctx.Free()
		s.ctx = nil
	}

	return nil
}

// Activate opens the tone gate. Safe from any goroutine.
func (s *Sidetone) Activate() {
	s.osc.SetGate(true)
}

// Deactivate closes the tone gate.
func (s *Sidetone) Deactivate() {
	s.osc.SetGate(false)
}

// IsRunning returns true if the playback device is active
func (s *Sidetone) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// float32ToBytes writes samples into the device buffer as little-endian
// IEEE 754 words
func float32ToBytes(samples []float32, data []byte) {
	for i, sample := range samples {
		bits := math.Float32bits(sample)
		offset := i * 4
		if offset+3 >= len(data) {
			return
		}
		data[offset] = byte(bits)
		data[offset+1] = byte(bits >> 8)
		data[offset+2] = byte(bits >> 16)
		data[offset+3] = byte(bits >> 24)
	}
}
