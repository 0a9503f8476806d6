package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/asanabria-2021067/CRT-Simulation/internal/sim"
)

var csvHeader = []string{"time", "v_vertical", "v_horizontal", "accel", "x", "y", "x_px", "y_px"}

type ExportData struct {
	Label      string             `json:"label"`
	SampleRate float64            `json:"sample_rate"`
	Duration   float64            `json:"duration"`
	Samples    int                `json:"samples"`
	Times      []float64          `json:"times"`
	Vertical   []float64          `json:"v_vertical"`
	Horizontal []float64          `json:"v_horizontal"`
	X          []float64          `json:"x"`
	Y          []float64          `json:"y"`
	Metrics    map[string]float64 `json:"metrics"`
}

func newExportData(label string, cfg sim.Config, result *sim.Result) ExportData {
	x, y := result.XY()
	return ExportData{
		Label:      label,
		SampleRate: cfg.SampleRate,
		Duration:   cfg.Duration,
		Samples:    result.Len(),
		Times:      result.Times,
		Vertical:   result.Vertical,
		Horizontal: result.Horizontal,
		X:          x,
		Y:          y,
		Metrics:    result.Metrics,
	}
}

func WriteJSON(w io.Writer, label string, cfg sim.Config, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(label, cfg, result))
}

func ExportJSON(path, label string, cfg sim.Config, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, label, cfg, result)
}

// WriteCSV writes one row per sample, metres and display units side by side.
func WriteCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := 0; i < result.Len(); i++ {
		s := result.Sample(i)
		row := []string{
			strconv.FormatFloat(s.T, 'f', 6, 64),
			strconv.FormatFloat(s.Drive.Vertical, 'f', 4, 64),
			strconv.FormatFloat(s.Drive.Horizontal, 'f', 4, 64),
			strconv.FormatFloat(s.Drive.Accel, 'f', 1, 64),
			strconv.FormatFloat(s.Impact.X, 'e', 6, 64),
			strconv.FormatFloat(s.Impact.Y, 'e', 6, 64),
			strconv.FormatFloat(s.Point.X, 'f', 3, 64),
			strconv.FormatFloat(s.Point.Y, 'f', 3, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportCSV(path string, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, result)
}
