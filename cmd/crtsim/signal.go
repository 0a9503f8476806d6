package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/asanabria-2021067/CRT-Simulation/internal/analysis"
	"github.com/asanabria-2021067/CRT-Simulation/internal/config"
	"github.com/asanabria-2021067/CRT-Simulation/internal/drive"
	"github.com/asanabria-2021067/CRT-Simulation/internal/export"
	"github.com/asanabria-2021067/CRT-Simulation/internal/params"
	"github.com/asanabria-2021067/CRT-Simulation/internal/signal"
)

// newGenerator builds a generator from the config file's signal section with
// explicitly set flags on top.
func newGenerator(cmd *cobra.Command) (*signal.Generator, *config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	for _, o := range []struct {
		flag string
		dst  *float64
		val  float64
	}{
		{"rate", &cfg.Signal.SampleRate, sigRate},
		{"time", &cfg.Signal.Duration, sigTime},
		{"freq", &cfg.Signal.Frequency, frequency},
		{"amp", &cfg.Signal.Amplitude, amplitude},
		{"phase", &cfg.Signal.Phase, phase},
		{"offset", &cfg.Signal.Offset, offset},
		{"noise", &cfg.Signal.NoiseStd, noiseStd},
	} {
		if flags.Changed(o.flag) {
			*o.dst = o.val
		}
	}

	var opts []signal.GeneratorOption
	if seed != 0 {
		opts = append(opts, signal.WithNoiseSource(rand.New(rand.NewSource(seed))))
	}
	g, err := signal.NewGenerator(cfg.SignalDefaults(), opts...)
	if err != nil {
		return nil, nil, err
	}
	return g, cfg, nil
}

func windowOptions() []signal.Option {
	if endpoint {
		return []signal.Option{signal.WithEndpoint()}
	}
	return nil
}

func signalSine(cmd *cobra.Command, args []string) error {
	g, _, err := newGenerator(cmd)
	if err != nil {
		return err
	}
	buf, err := g.Tone(windowOptions()...)
	if err != nil {
		return err
	}
	spec := g.Defaults().Spec()
	return emitBuffer(buf, fmt.Sprintf("sine %g Hz, amp %g", spec.Frequency, spec.Amplitude))
}

// parseComponent reads "freq,amp[,phase_deg[,offset]]".
func parseComponent(s string) (signal.Spec, error) {
	fields := strings.Split(s, ",")
	if len(fields) < 2 || len(fields) > 4 {
		return signal.Spec{}, fmt.Errorf("component %q: want freq,amp[,phase[,offset]]", s)
	}
	vals := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return signal.Spec{}, fmt.Errorf("component %q: %w", s, err)
		}
		vals[i] = v
	}
	return signal.Spec{
		Frequency: vals[0],
		Amplitude: vals[1],
		Phase:     signal.Deg2Rad(vals[2]),
		Offset:    vals[3],
	}, nil
}

func signalComposite(cmd *cobra.Command, args []string) error {
	g, cfg, err := newGenerator(cmd)
	if err != nil {
		return err
	}

	specs := make([]signal.Spec, 0, len(components))
	for _, c := range components {
		spec, err := parseComponent(c)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		specs = append(specs, g.Defaults().Spec())
	}

	buf, err := g.Composite(specs, cfg.Signal.NoiseStd, windowOptions()...)
	if err != nil {
		return err
	}
	return emitBuffer(buf, fmt.Sprintf("composite of %d tones, rms %.4g", len(specs), buf.RMS()))
}

func emitBuffer(buf *signal.Buffer, caption string) error {
	if plotOut {
		fmt.Println(asciigraph.Plot(buf.Values(),
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		))
		return nil
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"time", "value"}); err != nil {
		return err
	}
	for i := 0; i < buf.Len(); i++ {
		t, v := buf.At(i)
		row := []string{
			strconv.FormatFloat(t, 'f', 6, 64),
			strconv.FormatFloat(v, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// figureSpecs turns a preset into horizontal (X) and vertical (Y) tones,
// scaling the preset ratio by base Hz.
func figureSpecs(name string, base, amp float64) (x, y signal.Spec, err error) {
	p, ok := drive.LookupPreset(name)
	if !ok {
		return x, y, fmt.Errorf("unknown preset: %s", name)
	}
	vertical, horizontal := p.Channels()
	x = signal.Spec{Frequency: horizontal.Frequency * base, Amplitude: amp, Phase: horizontal.Phase}
	y = signal.Spec{Frequency: vertical.Frequency * base, Amplitude: amp, Phase: vertical.Phase}
	return x, y, nil
}

func signalLissajous(cmd *cobra.Command, args []string) error {
	g, _, err := newGenerator(cmd)
	if err != nil {
		return err
	}
	d := g.Defaults()

	x, y, err := figureSpecs(figPreset, d.Frequency, d.Amplitude)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("freq-h") {
		x.Frequency = freqH
	}
	if flags.Changed("freq-v") {
		y.Frequency = freqV
	}
	if flags.Changed("phase-h") {
		x.Phase = signal.Deg2Rad(phaseH)
	}
	if flags.Changed("phase-v") {
		y.Phase = signal.Deg2Rad(phaseV)
	}

	pair, err := g.Lissajous(x, y, windowOptions()...)
	if err != nil {
		return err
	}

	if plotOut {
		fmt.Println(analysis.CurveToASCII(analysis.CurvePoints(pair.X(), pair.Y()), figWidth, figHeight))
		return nil
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"time", "x", "y"}); err != nil {
		return err
	}
	for i := 0; i < pair.Len(); i++ {
		t, xv, yv := pair.At(i)
		row := []string{
			strconv.FormatFloat(t, 'f', 6, 64),
			strconv.FormatFloat(xv, 'f', 6, 64),
			strconv.FormatFloat(yv, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// wavSampleRate rejects fractional rates; the WAV header stores an integer.
func wavSampleRate(rate float64) (int, error) {
	if err := params.CheckPositive("sample_rate", rate); err != nil {
		return 0, err
	}
	if rate != math.Trunc(rate) || rate > math.MaxInt32 {
		return 0, params.Invalid("sample_rate", rate, "must be a whole number of Hz")
	}
	return int(rate), nil
}

func writeWAV(cmd *cobra.Command, args []string) error {
	rate, err := wavSampleRate(wavRate)
	if err != nil {
		return err
	}
	x, y, err := figureSpecs(figPreset, baseFreq, 1)
	if err != nil {
		return err
	}
	g, err := signal.NewGenerator(signal.Defaults{
		SampleRate: float64(rate),
		Duration:   wavTime,
		Amplitude:  1,
		Frequency:  baseFreq,
	})
	if err != nil {
		return err
	}
	pair, err := g.Lissajous(x, y)
	if err != nil {
		return err
	}

	f, err := os.Create(wavOut)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.WriteWAV(f, pair.X(), pair.Y(), rate, loops); err != nil {
		return err
	}
	fmt.Fprintf(progress(), "wrote %s (%s, %.2fs)\n", wavOut, figPreset, wavTime*float64(max(loops, 1)))
	return nil
}
