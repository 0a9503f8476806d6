package drive

import (
	"fmt"
	"sort"

	"github.com/asanabria-2021067/CRT-Simulation/internal/signal"
)

// Preset is a named Lissajous setting. Phases are degrees, as shown to the
// operator.
type Preset struct {
	Name   string
	Ratio  string
	FreqV  float64
	FreqH  float64
	PhaseV float64
	PhaseH float64
}

// Channels converts the preset into drive channels (radians).
func (p Preset) Channels() (vertical, horizontal Channel) {
	vertical = Channel{Frequency: p.FreqV, Phase: signal.Deg2Rad(p.PhaseV)}
	horizontal = Channel{Frequency: p.FreqH, Phase: signal.Deg2Rad(p.PhaseH)}
	return vertical, horizontal
}

func (p Preset) String() string {
	return fmt.Sprintf("%s (fv=%g fh=%g φv=%g° φh=%g°)", p.Name, p.FreqV, p.FreqH, p.PhaseV, p.PhaseH)
}

var presetSteps = []float64{0, 45, 90, 135, 180}

// Presets is keyed "<ratio>/<degrees>". For 1:1 the step is applied to the
// horizontal phase, for the other ratios to the vertical phase.
var Presets = buildPresets()

var presetAliases = map[string]string{
	"line":         "1:1/0",
	"ellipse":      "1:1/45",
	"circle":       "1:1/90",
	"antiline":     "1:1/180",
	"parabola":     "1:2/90",
	"figure-eight": "1:2/0",
	"pretzel":      "2:3/90",
}

func buildPresets() map[string]Preset {
	rows := []struct {
		ratio        string
		fv, fh       float64
		stepVertical bool
	}{
		{"1:1", 1, 1, false},
		{"1:2", 2, 1, true},
		{"1:3", 3, 1, true},
		{"2:3", 3, 2, true},
	}

	out := make(map[string]Preset)
	for _, r := range rows {
		for _, deg := range presetSteps {
			p := Preset{Ratio: r.ratio, FreqV: r.fv, FreqH: r.fh}
			if r.stepVertical {
				p.PhaseV = deg
			} else {
				p.PhaseH = deg
			}
			p.Name = fmt.Sprintf("%s/%g", r.ratio, deg)
			out[p.Name] = p
		}
	}
	return out
}

// LookupPreset resolves a preset name or alias.
func LookupPreset(name string) (Preset, bool) {
	if target, ok := presetAliases[name]; ok {
		name = target
	}
	p, ok := Presets[name]
	return p, ok
}

// PresetNames lists canonical names in ratio then phase order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := Presets[names[i]], Presets[names[j]]
		if a.Ratio != b.Ratio {
			return a.Ratio < b.Ratio
		}
		return a.PhaseV+a.PhaseH < b.PhaseV+b.PhaseH
	})
	return names
}

// PresetAliases maps each alias to its canonical preset name.
func PresetAliases() map[string]string {
	out := make(map[string]string, len(presetAliases))
	for k, v := range presetAliases {
		out[k] = v
	}
	return out
}
