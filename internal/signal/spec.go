package signal

import "github.com/asanabria-2021067/CRT-Simulation/internal/params"

const (
	DefaultSampleRate = 100_000.0
	DefaultDuration   = 0.050
	DefaultAmplitude  = 1.0
	DefaultFrequency  = 1_000.0
	DefaultPhase      = 0.0
	DefaultOffset     = 0.0
)

// Spec declares one sinusoidal tone. Phase is in radians, Offset is DC.
type Spec struct {
	Frequency float64 `yaml:"frequency" json:"frequency"`
	Amplitude float64 `yaml:"amplitude" json:"amplitude"`
	Phase     float64 `yaml:"phase" json:"phase"`
	Offset    float64 `yaml:"offset" json:"offset"`
}

func (s Spec) Validate() error {
	if err := ValidateParams(s.Frequency, s.Amplitude); err != nil {
		return err
	}
	if err := params.CheckFinite("phase", s.Phase); err != nil {
		return err
	}
	return params.CheckFinite("offset", s.Offset)
}

// At evaluates the tone at time t.
func (s Spec) At(t float64) float64 {
	return s.Offset + s.Amplitude*sin(s.Frequency, s.Phase, t)
}

// Defaults are used whenever a call leaves a parameter unset.
type Defaults struct {
	SampleRate float64 `yaml:"sample_rate" json:"sample_rate"`
	Duration   float64 `yaml:"duration" json:"duration"`
	Amplitude  float64 `yaml:"amplitude" json:"amplitude"`
	Frequency  float64 `yaml:"frequency" json:"frequency"`
	Phase      float64 `yaml:"phase" json:"phase"`
	Offset     float64 `yaml:"offset" json:"offset"`
}

func DefaultDefaults() Defaults {
	return Defaults{
		SampleRate: DefaultSampleRate,
		Duration:   DefaultDuration,
		Amplitude:  DefaultAmplitude,
		Frequency:  DefaultFrequency,
		Phase:      DefaultPhase,
		Offset:     DefaultOffset,
	}
}

func (d Defaults) Validate() error {
	if err := params.CheckPositive("sample_rate", d.SampleRate); err != nil {
		return err
	}
	if err := params.CheckPositive("duration", d.Duration); err != nil {
		return err
	}
	return d.Spec().Validate()
}

// Spec is the default tone.
func (d Defaults) Spec() Spec {
	return Spec{
		Frequency: d.Frequency,
		Amplitude: d.Amplitude,
		Phase:     d.Phase,
		Offset:    d.Offset,
	}
}
