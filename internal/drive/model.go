package drive

import (
	"fmt"
	"math"

	"github.com/asanabria-2021067/CRT-Simulation/internal/params"
	"github.com/asanabria-2021067/CRT-Simulation/internal/signal"
)

const (
	DefaultAccel     = 2000.0
	DefaultFrequency = 1.0

	DefaultAmplitudeRatio = 0.125
	DefaultAmplitudeMin   = 100.0
	DefaultAmplitudeMax   = 600.0
)

// Channel is the sinusoidal drive of one plate pair.
type Channel struct {
	Frequency float64 // Hz
	Phase     float64 // rad
}

func (c Channel) validate(axis string) error {
	if err := params.CheckNonNegative(axis+"_frequency", c.Frequency); err != nil {
		return err
	}
	return params.CheckFinite(axis+"_phase", c.Phase)
}

// Params is the full operator input.
type Params struct {
	Accel      float64 // V
	Vertical   float64 // V, manual mode
	Horizontal float64 // V, manual mode

	VerticalChannel   Channel
	HorizontalChannel Channel
}

func DefaultParams() Params {
	return Params{
		Accel:             DefaultAccel,
		VerticalChannel:   Channel{Frequency: DefaultFrequency},
		HorizontalChannel: Channel{Frequency: DefaultFrequency},
	}
}

// Amplitude derives the sinusoidal amplitude from the accelerating voltage:
// clamp(Ratio·Va, Min, Max).
type Amplitude struct {
	Ratio, Min, Max float64
}

func DefaultAmplitude() Amplitude {
	return Amplitude{Ratio: DefaultAmplitudeRatio, Min: DefaultAmplitudeMin, Max: DefaultAmplitudeMax}
}

func (a Amplitude) For(accel float64) float64 {
	return signal.Clamp(a.Ratio*accel, a.Min, a.Max)
}

func (a Amplitude) validate() error {
	if err := params.CheckNonNegative("amplitude_ratio", a.Ratio); err != nil {
		return err
	}
	if err := params.CheckNonNegative("amplitude_min", a.Min); err != nil {
		return err
	}
	if err := params.CheckFinite("amplitude_max", a.Max); err != nil {
		return err
	}
	if a.Max < a.Min {
		return params.Invalid("amplitude_max", a.Max, fmt.Sprintf("below amplitude_min %g", a.Min))
	}
	return nil
}

// State is the instantaneous deflection input of the solver.
type State struct {
	Vertical   float64
	Horizontal float64
	Accel      float64
}

type Model struct {
	mode   Mode
	params Params
	amp    Amplitude
	base   float64
}

type Option func(*Model)

func WithAmplitude(a Amplitude) Option { return func(m *Model) { m.amp = a } }
func WithMode(mode Mode) Option        { return func(m *Model) { m.mode = mode } }

var (
	accelRange      = params.MustRange(params.AccelVoltage)
	deflectionRange = params.MustRange(params.DeflectionVoltage)
	frequencyRange  = params.MustRange(params.Frequency)
)

// New validates p, clamps it to the declared operator ranges and starts in
// Manual mode unless WithMode says otherwise.
func New(p Params, opts ...Option) (*Model, error) {
	m := &Model{mode: Manual, amp: DefaultAmplitude()}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.amp.validate(); err != nil {
		return nil, err
	}
	if err := m.SetParams(p); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) Mode() Mode        { return m.mode }
func (m *Model) SetMode(mode Mode) { m.mode = mode }
func (m *Model) Params() Params    { return m.params }

// Toggle flips between Manual and Sinusoidal and returns the new mode.
func (m *Model) Toggle() Mode {
	if m.mode == Manual {
		m.mode = Sinusoidal
	} else {
		m.mode = Manual
	}
	return m.mode
}

// SetParams replaces every input. On error the model is unchanged.
func (m *Model) SetParams(p Params) error {
	clean, err := sanitize(p)
	if err != nil {
		return err
	}
	m.params = clean
	m.base = m.amp.For(clean.Accel)
	return nil
}

func (m *Model) SetAccel(va float64) error {
	p := m.params
	p.Accel = va
	return m.SetParams(p)
}

func (m *Model) SetManual(vertical, horizontal float64) error {
	p := m.params
	p.Vertical, p.Horizontal = vertical, horizontal
	return m.SetParams(p)
}

func (m *Model) SetChannels(vertical, horizontal Channel) error {
	p := m.params
	p.VerticalChannel, p.HorizontalChannel = vertical, horizontal
	return m.SetParams(p)
}

// ApplyPreset loads the preset's channels and switches to Sinusoidal mode.
func (m *Model) ApplyPreset(p Preset) error {
	v, h := p.Channels()
	if err := m.SetChannels(v, h); err != nil {
		return err
	}
	m.mode = Sinusoidal
	return nil
}

// Reset restores DefaultParams and Manual mode.
func (m *Model) Reset() {
	m.mode = Manual
	// Defaults are always in range.
	_ = m.SetParams(DefaultParams())
}

// AmplitudeBase is the current sinusoidal amplitude in volts.
func (m *Model) AmplitudeBase() float64 { return m.base }

// Voltages returns the vertical and horizontal plate voltages at time t.
func (m *Model) Voltages(t float64) (vertical, horizontal float64) {
	if m.mode == Manual {
		return m.params.Vertical, m.params.Horizontal
	}
	v, h := m.params.VerticalChannel, m.params.HorizontalChannel
	vertical = m.base * math.Sin(2*math.Pi*v.Frequency*t+v.Phase)
	horizontal = m.base * math.Sin(2*math.Pi*h.Frequency*t+h.Phase)
	return vertical, horizontal
}

func (m *Model) State(t float64) State {
	v, h := m.Voltages(t)
	return State{Vertical: v, Horizontal: h, Accel: m.params.Accel}
}

// Specs describes the sinusoidal drive as signal tones (x = horizontal,
// y = vertical) so the purely mathematical figure can be generated alongside
// the beam-driven one.
func (m *Model) Specs() (x, y signal.Spec) {
	h, v := m.params.HorizontalChannel, m.params.VerticalChannel
	x = signal.Spec{Frequency: h.Frequency, Amplitude: m.base, Phase: h.Phase}
	y = signal.Spec{Frequency: v.Frequency, Amplitude: m.base, Phase: v.Phase}
	return x, y
}

func sanitize(p Params) (Params, error) {
	for _, c := range []struct {
		name string
		v    float64
	}{
		{params.AccelVoltage, p.Accel},
		{"vertical_voltage", p.Vertical},
		{"horizontal_voltage", p.Horizontal},
	} {
		if err := params.CheckFinite(c.name, c.v); err != nil {
			return Params{}, err
		}
	}
	if err := p.VerticalChannel.validate("vertical"); err != nil {
		return Params{}, err
	}
	if err := p.HorizontalChannel.validate("horizontal"); err != nil {
		return Params{}, err
	}

	var err error
	if p.Accel, err = accelRange.Clamp(p.Accel); err != nil {
		return Params{}, err
	}
	if p.Vertical, err = deflectionRange.Clamp(p.Vertical); err != nil {
		return Params{}, err
	}
	if p.Horizontal, err = deflectionRange.Clamp(p.Horizontal); err != nil {
		return Params{}, err
	}
	if p.VerticalChannel.Frequency, err = frequencyRange.Clamp(p.VerticalChannel.Frequency); err != nil {
		return Params{}, err
	}
	if p.HorizontalChannel.Frequency, err = frequencyRange.Clamp(p.HorizontalChannel.Frequency); err != nil {
		return Params{}, err
	}
	return p, nil
}
