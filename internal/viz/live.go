package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/asanabria-2021067/CRT-Simulation/internal/crt"
	"github.com/asanabria-2021067/CRT-Simulation/internal/drive"
	"github.com/asanabria-2021067/CRT-Simulation/internal/params"
	"github.com/asanabria-2021067/CRT-Simulation/internal/signal"
	"github.com/asanabria-2021067/CRT-Simulation/internal/sim"
)

const (
	screenWidth     = 60
	screenHeight    = 24
	frameRate       = 60
	substeps        = 16
	historyCapacity = 240

	minSpeed = 1.0 / 16
	maxSpeed = 16.0
)

// DefaultHalfWidth shows a 0.1 m screen face at the default display scale.
const DefaultHalfWidth = 0.05 * crt.DefaultPixelsPerMeter

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// control is one adjustable slider of the live view.
type control struct {
	label string
	rng   params.Range
	get   func(*Model) float64
	set   func(*Model, float64) error
}

func manualSetter(vertical bool) func(*Model, float64) error {
	return func(m *Model, v float64) error {
		p := m.drive.Params()
		if vertical {
			return m.drive.SetManual(v, p.Horizontal)
		}
		return m.drive.SetManual(p.Vertical, v)
	}
}

func channelSetter(vertical bool, apply func(*drive.Channel, float64)) func(*Model, float64) error {
	return func(m *Model, v float64) error {
		p := m.drive.Params()
		vc, hc := p.VerticalChannel, p.HorizontalChannel
		if vertical {
			apply(&vc, v)
		} else {
			apply(&hc, v)
		}
		return m.drive.SetChannels(vc, hc)
	}
}

func setFrequency(c *drive.Channel, v float64) { c.Frequency = v }
func setPhase(c *drive.Channel, deg float64)   { c.Phase = signal.Deg2Rad(deg) }

var controls = []control{
	{
		label: "Accel (V)",
		rng:   params.MustRange(params.AccelVoltage),
		get:   func(m *Model) float64 { return m.drive.Params().Accel },
		set:   func(m *Model, v float64) error { return m.drive.SetAccel(v) },
	},
	{
		label: "Vert (V)",
		rng:   params.MustRange(params.DeflectionVoltage),
		get:   func(m *Model) float64 { return m.drive.Params().Vertical },
		set:   manualSetter(true),
	},
	{
		label: "Horiz (V)",
		rng:   params.MustRange(params.DeflectionVoltage),
		get:   func(m *Model) float64 { return m.drive.Params().Horizontal },
		set:   manualSetter(false),
	},
	{
		label: "Freq V (Hz)",
		rng:   params.MustRange(params.Frequency),
		get:   func(m *Model) float64 { return m.drive.Params().VerticalChannel.Frequency },
		set:   channelSetter(true, setFrequency),
	},
	{
		label: "Freq H (Hz)",
		rng:   params.MustRange(params.Frequency),
		get:   func(m *Model) float64 { return m.drive.Params().HorizontalChannel.Frequency },
		set:   channelSetter(false, setFrequency),
	},
	{
		label: "Phase V (°)",
		rng:   params.MustRange(params.Phase),
		get:   func(m *Model) float64 { return signal.Rad2Deg(m.drive.Params().VerticalChannel.Phase) },
		set:   channelSetter(true, setPhase),
	},
	{
		label: "Phase H (°)",
		rng:   params.MustRange(params.Phase),
		get:   func(m *Model) float64 { return signal.Rad2Deg(m.drive.Params().HorizontalChannel.Phase) },
		set:   channelSetter(false, setPhase),
	},
	{
		label: "Persist (s)",
		rng:   params.MustRange(params.Persistence),
		get:   func(m *Model) float64 { return m.persistence },
		set:   func(m *Model, v float64) error { m.persistence = v; return nil },
	},
	{
		label: "Brightness",
		rng:   params.MustRange(params.Brightness),
		get:   func(m *Model) float64 { return m.brightness },
		set:   func(m *Model, v float64) error { m.brightness = v; return nil },
	},
}

// Options configures the live screen.
type Options struct {
	Persistence float64
	Brightness  float64
	HalfWidth   float64 // display units at the screen edge
	Theme       string
}

// Model is the bubbletea model of the live CRT screen. The drive model is
// shared with the simulator, so slider changes show up on the next tick.
type Model struct {
	drive  *drive.Model
	sim    *sim.Simulator
	screen Screen
	theme  Theme

	t           float64
	speed       float64
	running     bool
	persistence float64
	brightness  float64

	trail    []sim.Sample
	last     sim.Sample
	vHistory []float64
	hHistory []float64

	selected int
	preset   int
	presets  []string
	status   string
	showHelp bool

	initPersistence, initBrightness float64
}

// NewModel builds the live view. s must be driven by d.
func NewModel(d *drive.Model, s *sim.Simulator, opts Options) Model {
	if opts.HalfWidth <= 0 {
		opts.HalfWidth = DefaultHalfWidth
	}
	persistence, err := params.MustRange(params.Persistence).Clamp(opts.Persistence)
	if err != nil || opts.Persistence == 0 {
		persistence = 1
	}
	brightness, err := params.MustRange(params.Brightness).Clamp(opts.Brightness)
	if err != nil || opts.Brightness == 0 {
		brightness = 1
	}

	m := Model{
		drive:           d,
		sim:             s,
		screen:          Screen{Canvas: NewCanvas(screenWidth, screenHeight), HalfWidth: opts.HalfWidth},
		theme:           GetTheme(opts.Theme),
		speed:           1,
		running:         true,
		persistence:     persistence,
		brightness:      brightness,
		trail:           make([]sim.Sample, 0, 512),
		vHistory:        make([]float64, 0, historyCapacity),
		hHistory:        make([]float64, 0, historyCapacity),
		preset:          -1,
		presets:         drive.PresetNames(),
		initPersistence: persistence,
		initBrightness:  brightness,
	}
	m.last = s.Step(0)
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and advances the beam.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "m":
			m.status = "mode: " + m.drive.Toggle().String()
		case "p":
			m.nextPreset()
		case "r":
			m.reset()
		case "tab":
			m.selected = (m.selected + 1) % len(controls)
		case "shift+tab":
			m.selected = (m.selected + len(controls) - 1) % len(controls)
		case "up", "k":
			m.adjust(1)
		case "down", "j":
			m.adjust(-1)
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-", "_":
			m.speed = max(m.speed/2, minSpeed)
		case "t":
			m.theme = m.theme.next()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.advance(1.0 / frameRate)
		}
		return m, tick()
	}
	return m, nil
}

// advance moves the clock by dt wall seconds scaled by the speed multiplier.
func (m *Model) advance(dt float64) {
	step := dt * m.speed / substeps
	for i := 0; i < substeps; i++ {
		m.t += step
		m.last = m.sim.Step(m.t)
		m.trail = append(m.trail, m.last)
	}

	cut := 0
	for cut < len(m.trail) && m.trail[cut].T < m.t-m.persistence {
		cut++
	}
	m.trail = append(m.trail[:0], m.trail[cut:]...)

	m.vHistory = pushHistory(m.vHistory, m.last.Drive.Vertical)
	m.hHistory = pushHistory(m.hHistory, m.last.Drive.Horizontal)
}

func pushHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) adjust(dir float64) {
	c := controls[m.selected]
	v, err := c.rng.Clamp(c.get(m) + dir*c.rng.Step)
	if err == nil {
		err = c.set(m, v)
	}
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

func (m *Model) nextPreset() {
	m.preset = (m.preset + 1) % len(m.presets)
	name := m.presets[m.preset]
	p, _ := drive.LookupPreset(name)
	if err := m.drive.ApplyPreset(p); err != nil {
		m.status = err.Error()
		return
	}
	m.trail = m.trail[:0]
	m.status = "preset: " + p.String()
}

// reset restores the drive defaults, the clock and the screen settings.
func (m *Model) reset() {
	m.drive.Reset()
	m.t = 0
	m.speed = 1
	m.preset = -1
	m.persistence = m.initPersistence
	m.brightness = m.initBrightness
	m.trail = m.trail[:0]
	m.vHistory = m.vHistory[:0]
	m.hHistory = m.hHistory[:0]
	m.last = m.sim.Step(0)
	m.status = "reset"
}

func (m *Model) draw() {
	m.screen.Canvas.Clear()
	m.screen.Graticule()

	points := make([]crt.Point, len(m.trail))
	for i, s := range m.trail {
		points[i] = s.Point
	}
	m.screen.Trace(points)
	m.screen.Spot(m.last.Point)
}

// View renders the screen and the control panel.
func (m Model) View() string {
	m.draw()
	screen := canvasStyle.Render(traceStyle(m.theme, m.brightness).Render(m.screen.Canvas.String()))

	var s strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Accent)
	s.WriteString(title.Render("CRT · "+strings.ToUpper(m.drive.Mode().String())) + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING"))
	} else {
		s.WriteString(StatusPaused.Render("PAUSED"))
	}
	s.WriteString(fmt.Sprintf("  x%g\n\n", m.speed))

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2f s", m.t))
	row("Spot", fmt.Sprintf("%+.2f, %+.2f mm", m.last.Impact.X*1e3, m.last.Impact.Y*1e3))
	row("Plates", fmt.Sprintf("%+.1f, %+.1f V", m.last.Drive.Vertical, m.last.Drive.Horizontal))
	if m.drive.Mode() == drive.Sinusoidal {
		row("Amplitude", fmt.Sprintf("%.0f V", m.drive.AmplitudeBase()))
	}

	if len(m.vHistory) > 1 {
		chart := asciigraph.PlotMany([][]float64{m.vHistory, m.hHistory},
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.SeriesColors(asciigraph.Green, asciigraph.Yellow),
			asciigraph.Caption("vertical / horizontal"))
		s.WriteString("\n" + chart + "\n")
	}

	s.WriteString("\n" + Separator(40) + "\n")
	for i, c := range controls {
		v := c.get(&m)
		line := fmt.Sprintf("%-12s %s %7.2f", c.label, SliderBar(v, c.rng.Min, c.rng.Max, 10), v)
		if i == m.selected {
			s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true).Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + valueStyle.Render(line) + "\n")
		}
	}
	if m.status != "" {
		s.WriteString("\n" + Subtle.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause M:Mode P:Preset R:Reset Q:Quit\nTab:Select ↑↓:Adjust +/-:Speed T:Theme ?:Help"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, screen, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + main
	}
	return main
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space     - Pause/Resume beam       ║
║  M         - Manual/Sinusoidal       ║
║  P         - Next Lissajous preset   ║
║  R         - Reset to defaults       ║
║  Tab       - Next slider             ║
║  Up/K      - Increase slider         ║
║  Down/J    - Decrease slider         ║
║  + / -     - Clock speed x2 / ÷2     ║
║  T         - Cycle phosphor theme    ║
║  Q         - Quit                    ║
║  ?         - Toggle this help        ║
╚══════════════════════════════════════╝`

// Run starts the live screen in the alternate buffer and blocks until quit.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
