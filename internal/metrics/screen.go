package metrics

import (
	"math"

	"github.com/asanabria-2021067/CRT-Simulation/internal/sim"
)

// OnScreen is the fraction of samples whose spot stays inside a square screen
// of the given half-width, metres.
type OnScreen struct {
	name      string
	halfWidth float64
	misses    int
	samples   int
}

func NewOnScreen(halfWidth float64) *OnScreen {
	return &OnScreen{
		name:      "on_screen",
		halfWidth: halfWidth,
	}
}

func (o *OnScreen) Name() string {
	return o.name
}

func (o *OnScreen) Observe(s sim.Sample) {
	o.samples++
	if math.Abs(s.Impact.X) > o.halfWidth || math.Abs(s.Impact.Y) > o.halfWidth {
		o.misses++
	}
}

func (o *OnScreen) Value() float64 {
	if o.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(o.misses)/float64(o.samples)
}

func (o *OnScreen) Reset() {
	o.misses = 0
	o.samples = 0
}

// DriveEffort is the mean absolute plate voltage over both axes, volts.
type DriveEffort struct {
	name    string
	sum     float64
	samples int
}

func NewDriveEffort() *DriveEffort {
	return &DriveEffort{
		name: "drive_effort",
	}
}

func (d *DriveEffort) Name() string {
	return d.name
}

func (d *DriveEffort) Observe(s sim.Sample) {
	d.sum += (math.Abs(s.Drive.Vertical) + math.Abs(s.Drive.Horizontal)) / 2
	d.samples++
}

func (d *DriveEffort) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.sum / float64(d.samples)
}

func (d *DriveEffort) Reset() {
	d.sum = 0
	d.samples = 0
}

// DefaultScreenHalfWidth is half of a 0.1 m screen face.
const DefaultScreenHalfWidth = 0.05

// Standard is the metric set attached to every CLI run.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewPeakDeflection(),
		NewRMSRadius(),
		NewPathLength(),
		NewOnScreen(DefaultScreenHalfWidth),
		NewDriveEffort(),
	}
}
