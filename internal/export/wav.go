package export

import (
	"errors"
	"io"
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// XYStreamer plays an X-Y figure as stereo audio: left is X, right is Y.
// Fed to an oscilloscope in XY mode it redraws the figure. Both channels
// share one normalisation so the aspect ratio survives.
type XYStreamer struct {
	x, y  []float64
	scale float64
	pos   int
	loops int
	left  int
}

var ErrMismatchedChannels = errors.New("export: x and y lengths differ")

// NewXYStreamer plays x, y loops times (at least once). Peak amplitude is
// gain, clamped to (0, 1].
func NewXYStreamer(x, y []float64, gain float64, loops int) (*XYStreamer, error) {
	if len(x) != len(y) {
		return nil, ErrMismatchedChannels
	}
	if gain <= 0 || gain > 1 || math.IsNaN(gain) {
		gain = 1
	}
	peak := 0.0
	for i := range x {
		peak = math.Max(peak, math.Max(math.Abs(x[i]), math.Abs(y[i])))
	}
	scale := 0.0
	if peak > 0 {
		scale = gain / peak
	}
	loops = max(loops, 1)
	return &XYStreamer{x: x, y: y, scale: scale, loops: loops, left: loops}, nil
}

func (s *XYStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if len(s.x) == 0 {
		return 0, false
	}
	for n < len(samples) && s.left > 0 {
		samples[n][0] = s.x[s.pos] * s.scale
		samples[n][1] = s.y[s.pos] * s.scale
		n++
		s.pos++
		if s.pos == len(s.x) {
			s.pos = 0
			s.left--
		}
	}
	return n, n > 0
}

func (s *XYStreamer) Err() error {
	return nil
}

// Len is the total number of frames the streamer yields.
func (s *XYStreamer) Len() int {
	return len(s.x) * s.loops
}

// WriteWAV encodes the figure as 16-bit stereo PCM.
func WriteWAV(w io.WriteSeeker, x, y []float64, sampleRate int, loops int) error {
	s, err := NewXYStreamer(x, y, 0.9, loops)
	if err != nil {
		return err
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2,
		Precision:   2,
	}
	return wav.Encode(w, s, format)
}
