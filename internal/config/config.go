package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/asanabria-2021067/CRT-Simulation/internal/crt"
	"github.com/asanabria-2021067/CRT-Simulation/internal/drive"
	"github.com/asanabria-2021067/CRT-Simulation/internal/params"
	"github.com/asanabria-2021067/CRT-Simulation/internal/signal"
)

const (
	DefaultTraceDuration   = 2.0
	DefaultTraceSampleRate = 500.0
	DefaultPersistence     = 1.0
	DefaultBrightness      = 1.0
)

type Config struct {
	Tube    crt.Geometry `yaml:"tube"`
	Display crt.Display  `yaml:"display"`
	Drive   DriveConfig  `yaml:"drive"`
	Trace   TraceConfig  `yaml:"trace"`
	Signal  SignalConfig `yaml:"signal"`
	Screen  ScreenConfig `yaml:"screen"`
	Seed    int64        `yaml:"seed"`
}

// DriveConfig holds the operator controls. Phases are degrees.
type DriveConfig struct {
	Mode       string  `yaml:"mode"`
	Preset     string  `yaml:"preset,omitempty"`
	Accel      float64 `yaml:"accel_voltage"`
	Vertical   float64 `yaml:"vertical_voltage"`
	Horizontal float64 `yaml:"horizontal_voltage"`
	FreqV      float64 `yaml:"freq_v"`
	FreqH      float64 `yaml:"freq_h"`
	PhaseV     float64 `yaml:"phase_v"`
	PhaseH     float64 `yaml:"phase_h"`
}

type TraceConfig struct {
	Duration   float64 `yaml:"duration"`
	SampleRate float64 `yaml:"sample_rate"`
	Endpoint   bool    `yaml:"endpoint"`
}

// SignalConfig seeds the signal generator. Phase is degrees.
type SignalConfig struct {
	SampleRate float64 `yaml:"sample_rate"`
	Duration   float64 `yaml:"duration"`
	Amplitude  float64 `yaml:"amplitude"`
	Frequency  float64 `yaml:"frequency"`
	Phase      float64 `yaml:"phase"`
	Offset     float64 `yaml:"offset"`
	NoiseStd   float64 `yaml:"noise_std"`
}

type ScreenConfig struct {
	Persistence float64 `yaml:"persistence"`
	Brightness  float64 `yaml:"brightness"`
}

func DefaultConfig() *Config {
	sd := signal.DefaultDefaults()
	return &Config{
		Tube:    crt.StandardGeometry(),
		Display: crt.DefaultDisplay(),
		Drive: DriveConfig{
			Mode:  drive.Manual.String(),
			Accel: drive.DefaultAccel,
			FreqV: drive.DefaultFrequency,
			FreqH: drive.DefaultFrequency,
		},
		Trace: TraceConfig{
			Duration:   DefaultTraceDuration,
			SampleRate: DefaultTraceSampleRate,
		},
		Signal: SignalConfig{
			SampleRate: sd.SampleRate,
			Duration:   sd.Duration,
			Amplitude:  sd.Amplitude,
			Frequency:  sd.Frequency,
			Phase:      signal.Rad2Deg(sd.Phase),
			Offset:     sd.Offset,
		},
		Screen: ScreenConfig{
			Persistence: DefaultPersistence,
			Brightness:  DefaultBrightness,
		},
	}
}

// Load overlays the file at path on DefaultConfig and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Drive.Preset != "" {
		if err := cfg.ApplyPreset(cfg.Drive.Preset); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Tube.Validate(); err != nil {
		return fmt.Errorf("tube: %w", err)
	}
	if err := params.CheckPositive("pixels_per_meter", c.Display.PixelsPerMeter); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	if err := c.Drive.validate(); err != nil {
		return fmt.Errorf("drive: %w", err)
	}
	if err := params.CheckPositive("trace_duration", c.Trace.Duration); err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	if err := params.CheckPositive("trace_sample_rate", c.Trace.SampleRate); err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	if err := c.SignalDefaults().Validate(); err != nil {
		return fmt.Errorf("signal: %w", err)
	}
	if err := params.CheckNonNegative("noise_std", c.Signal.NoiseStd); err != nil {
		return fmt.Errorf("signal: %w", err)
	}
	if err := params.MustRange(params.Persistence).Check(c.Screen.Persistence); err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := params.MustRange(params.Brightness).Check(c.Screen.Brightness); err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	return nil
}

func (d DriveConfig) validate() error {
	if _, err := drive.ParseMode(d.Mode); err != nil {
		return err
	}
	checks := []struct {
		rng params.Range
		v   float64
	}{
		{params.MustRange(params.AccelVoltage), d.Accel},
		{params.MustRange(params.DeflectionVoltage), d.Vertical},
		{params.MustRange(params.DeflectionVoltage), d.Horizontal},
		{params.MustRange(params.Frequency), d.FreqV},
		{params.MustRange(params.Frequency), d.FreqH},
		{params.MustRange(params.Phase), d.PhaseV},
		{params.MustRange(params.Phase), d.PhaseH},
	}
	for _, c := range checks {
		if err := c.rng.Check(c.v); err != nil {
			return err
		}
	}
	return nil
}

// DriveMode parses Drive.Mode.
func (c *Config) DriveMode() (drive.Mode, error) {
	return drive.ParseMode(c.Drive.Mode)
}

// DriveParams converts the operator controls into drive inputs (radians).
func (c *Config) DriveParams() drive.Params {
	d := c.Drive
	return drive.Params{
		Accel:             d.Accel,
		Vertical:          d.Vertical,
		Horizontal:        d.Horizontal,
		VerticalChannel:   drive.Channel{Frequency: d.FreqV, Phase: signal.Deg2Rad(d.PhaseV)},
		HorizontalChannel: drive.Channel{Frequency: d.FreqH, Phase: signal.Deg2Rad(d.PhaseH)},
	}
}

// NewDrive builds a drive model in the configured mode.
func (c *Config) NewDrive() (*drive.Model, error) {
	mode, err := c.DriveMode()
	if err != nil {
		return nil, err
	}
	return drive.New(c.DriveParams(), drive.WithMode(mode))
}

// NewSolver builds a solver for the configured tube.
func (c *Config) NewSolver() (*crt.Solver, error) {
	return crt.NewSolver(c.Tube, crt.Electron)
}

func (c *Config) SignalDefaults() signal.Defaults {
	s := c.Signal
	return signal.Defaults{
		SampleRate: s.SampleRate,
		Duration:   s.Duration,
		Amplitude:  s.Amplitude,
		Frequency:  s.Frequency,
		Phase:      signal.Deg2Rad(s.Phase),
		Offset:     s.Offset,
	}
}

// ApplyPreset loads a Lissajous preset (name or alias) into the drive section
// and switches it to sinusoidal mode.
func (c *Config) ApplyPreset(name string) error {
	p, ok := drive.LookupPreset(name)
	if !ok {
		return fmt.Errorf("unknown preset: %s", name)
	}
	c.Drive.Mode = drive.Sinusoidal.String()
	c.Drive.Preset = name
	c.Drive.FreqV, c.Drive.FreqH = p.FreqV, p.FreqH
	c.Drive.PhaseV, c.Drive.PhaseH = p.PhaseV, p.PhaseH
	return nil
}
