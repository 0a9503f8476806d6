package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/asanabria-2021067/CRT-Simulation/internal/crt"
	"github.com/asanabria-2021067/CRT-Simulation/internal/drive"
	"github.com/asanabria-2021067/CRT-Simulation/internal/sim"
	"github.com/asanabria-2021067/CRT-Simulation/internal/viz"
)

func traceCircle(t *testing.T) (sim.Config, *sim.Result) {
	t.Helper()
	p, _ := drive.LookupPreset("circle")
	params := drive.DefaultParams()
	params.VerticalChannel, params.HorizontalChannel = p.Channels()
	d, err := drive.New(params, drive.WithMode(drive.Sinusoidal))
	if err != nil {
		t.Fatal(err)
	}
	solver, err := crt.NewSolver(crt.StandardGeometry(), crt.Electron)
	if err != nil {
		t.Fatal(err)
	}
	cfg := sim.Config{Duration: 1, SampleRate: 100}
	result, err := sim.New(d, solver, crt.DefaultDisplay()).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	return cfg, result
}

func TestWriteCSV(t *testing.T) {
	_, result := traceCircle(t)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, result); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != result.Len()+1 {
		t.Fatalf("expected %d rows, got %d", result.Len()+1, len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(csvHeader, ",") {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "0.000000" || rows[1][3] != "2000.0" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
}

func TestExportJSON(t *testing.T) {
	cfg, result := traceCircle(t)
	path := filepath.Join(t.TempDir(), "trace.json")

	if err := ExportJSON(path, "circle", cfg, result); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got ExportData
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}
	if got.Label != "circle" || got.Samples != 100 || len(got.X) != 100 {
		t.Errorf("unexpected export: label=%q samples=%d x=%d", got.Label, got.Samples, len(got.X))
	}
	if got.SampleRate != 100 || got.Duration != 1 {
		t.Errorf("unexpected window: %v Hz, %v s", got.SampleRate, got.Duration)
	}
}

func TestScreenToSVG(t *testing.T) {
	_, result := traceCircle(t)

	svg := ScreenToSVG(result.Points, 400, 0, PhosphorGreen)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an SVG document")
	}
	if !strings.Contains(svg, `<path fill="none" stroke="#33ff66"`) {
		t.Error("trace path missing")
	}
	if n := strings.Count(svg, "<line "); n != 22 {
		t.Errorf("expected 22 graticule lines, got %d", n)
	}

	spot := ScreenToSVG([]crt.Point{{X: 0, Y: 0}}, 100, 50, "red")
	if !strings.Contains(spot, `<circle cx="50.0" cy="50.0"`) {
		t.Errorf("static spot should sit at the centre: %s", spot)
	}

	if ScreenToSVG(nil, 100, 0, "red") != "" {
		t.Error("empty trace should render nothing")
	}
}

func TestScreenToSVG_YUp(t *testing.T) {
	svg := ScreenToSVG([]crt.Point{{X: 0, Y: 25}}, 100, 50, "red")
	if !strings.Contains(svg, `cy="25.0"`) {
		t.Errorf("positive deflection should move up: %s", svg)
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	svg := CanvasToSVG(c, 10, PhosphorGreen)
	if n := strings.Count(svg, "<circle "); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `width="40" height="40"`) {
		t.Error("unexpected canvas size")
	}
	if CanvasToSVG(nil, 10, PhosphorGreen) != "" {
		t.Error("nil canvas should render nothing")
	}
}

func TestLissajousHTML(t *testing.T) {
	_, result := traceCircle(t)

	var buf bytes.Buffer
	if err := LissajousHTML(&buf, "Circle", result.Points); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "echarts") || !strings.Contains(out, "Circle") {
		t.Error("rendered page should load echarts and carry the title")
	}
}

func TestWaveformHTML(t *testing.T) {
	_, result := traceCircle(t)

	var buf bytes.Buffer
	err := WaveformHTML(&buf, "Drive", result.Times,
		Series{Name: "vertical", Values: result.Vertical},
		Series{Name: "horizontal", Values: result.Horizontal},
	)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "horizontal") {
		t.Error("series name missing from page")
	}
}

func TestXYStreamer(t *testing.T) {
	x := []float64{0, 2, 0, -2}
	y := []float64{1, 0, -1, 0}

	s, err := NewXYStreamer(x, y, 0.5, 2)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 8 {
		t.Errorf("expected 8 frames, got %d", s.Len())
	}

	buf := make([][2]float64, 16)
	n, ok := s.Stream(buf)
	if n != 8 || !ok {
		t.Fatalf("expected 8 frames, got %d (ok=%v)", n, ok)
	}
	if buf[1][0] != 0.5 || buf[0][1] != 0.25 {
		t.Errorf("channels should share one scale: %v %v", buf[1], buf[0])
	}
	if buf[5] != buf[1] {
		t.Error("second loop should repeat the first")
	}
	if n, ok := s.Stream(buf); n != 0 || ok {
		t.Error("drained streamer should report done")
	}

	if _, err := NewXYStreamer(x, y[:3], 1, 1); !errors.Is(err, ErrMismatchedChannels) {
		t.Errorf("expected ErrMismatchedChannels, got %v", err)
	}
}

func TestWriteWAV(t *testing.T) {
	_, result := traceCircle(t)
	x, y := result.XY()

	path := filepath.Join(t.TempDir(), "circle.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteWAV(f, x, y, 44100, 3); err != nil {
		t.Fatal(err)
	}
	f.Close()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw[:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE header")
	}
	// 44-byte header, 16-bit stereo frames.
	if want := 44 + len(x)*3*4; len(raw) != want {
		t.Errorf("expected %d bytes, got %d", want, len(raw))
	}
}
