package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/asanabria-2021067/CRT-Simulation/internal/crt"
	"github.com/asanabria-2021067/CRT-Simulation/internal/drive"
	"github.com/asanabria-2021067/CRT-Simulation/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var samplesHeader = []string{"time", "v_vertical", "v_horizontal", "accel", "x", "y"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo describes how a trace was produced.
type RunInfo struct {
	Mode       string       `json:"mode"`
	Preset     string       `json:"preset,omitempty"`
	Accel      float64      `json:"accel_voltage"`
	SampleRate float64      `json:"sample_rate"`
	Duration   float64      `json:"duration"`
	Seed       int64        `json:"seed"`
	Tube       crt.Geometry `json:"tube"`
	Display    crt.Display  `json:"display"`
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Samples   int                `json:"samples"`
	Metrics   map[string]float64 `json:"metrics"`
	RunInfo
}

// Save writes metadata.json and samples.csv into a fresh run directory and
// returns the run ID.
func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	now := time.Now()
	label := info.Preset
	if label == "" {
		label = info.Mode
	}
	runID := fmt.Sprintf("%s_%d", sanitizeLabel(label), now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: now,
		Samples:   result.Len(),
		Metrics:   result.Metrics,
		RunInfo:   info,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	if err := writeSamples(filepath.Join(runDir, samplesFile), result); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(samplesHeader); err != nil {
		return err
	}
	for i := 0; i < result.Len(); i++ {
		s := result.Sample(i)
		row := []string{
			formatFloat(s.T),
			formatFloat(s.Drive.Vertical),
			formatFloat(s.Drive.Horizontal),
			formatFloat(s.Drive.Accel),
			formatFloat(s.Impact.X),
			formatFloat(s.Impact.Y),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func sanitizeLabel(label string) string {
	out := []rune(label)
	for i, r := range out {
		switch r {
		case '/', ':', ' ', '\\':
			out[i] = '-'
		}
	}
	if len(out) == 0 {
		return "run"
	}
	return string(out)
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadResult rebuilds a sim.Result from samples.csv. Points are re-projected
// with the run's recorded display scale and Metrics come from the metadata.
func (s *Store) LoadResult(runID string) (*sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(samplesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	display := meta.Display
	if display.PixelsPerMeter == 0 {
		display = crt.DefaultDisplay()
	}

	result := &sim.Result{Metrics: meta.Metrics}
	for i := 1; i < len(records); i++ {
		var vals [6]float64
		for j, field := range records[i] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s line %d: %w", runID, i+1, err)
			}
			vals[j] = v
		}

		hit := crt.Impact{X: vals[4], Y: vals[5]}
		result.Times = append(result.Times, vals[0])
		result.Vertical = append(result.Vertical, vals[1])
		result.Horizontal = append(result.Horizontal, vals[2])
		result.Accel = append(result.Accel, vals[3])
		result.Impacts = append(result.Impacts, hit)
		result.Points = append(result.Points, display.Project(hit))
	}
	return result, nil
}

// Latest returns the ID of the newest run.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", fmt.Errorf("no runs in %s", s.baseDir)
	}
	return runs[0].ID, nil
}

// Resolve maps "latest" or "" to the newest run and passes other IDs through.
func (s *Store) Resolve(runID string) (string, error) {
	if runID == "" || runID == "latest" {
		return s.Latest()
	}
	return runID, nil
}

// InfoFor fills RunInfo from a drive model and trace window.
func InfoFor(m *drive.Model, cfg sim.Config, seed int64, tube crt.Geometry, display crt.Display) RunInfo {
	return RunInfo{
		Mode:       m.Mode().String(),
		Accel:      m.Params().Accel,
		SampleRate: cfg.SampleRate,
		Duration:   cfg.Duration,
		Seed:       seed,
		Tube:       tube,
		Display:    display,
	}
}
