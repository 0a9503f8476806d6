package signal

// Buffer is an immutable, time-ordered sequence of samples. Accessors return
// copies so callers can't mutate it in place.
type Buffer struct {
	times  []float64
	values []float64
}

func newBuffer(times, values []float64) *Buffer {
	return &Buffer{times: times, values: values}
}

func (b *Buffer) Len() int { return len(b.times) }

// At returns the i-th sample.
func (b *Buffer) At(i int) (t, v float64) {
	return b.times[i], b.values[i]
}

func (b *Buffer) Times() []float64  { return clone(b.times) }
func (b *Buffer) Values() []float64 { return clone(b.values) }

// SampleRate infers fs from the first two samples; 0 for a single sample.
func (b *Buffer) SampleRate() float64 {
	if len(b.times) < 2 || b.times[1] == b.times[0] {
		return 0
	}
	return 1 / (b.times[1] - b.times[0])
}

func (b *Buffer) RMS() float64 { return RMS(b.values) }

// MinMax returns the value range. Both zero for an empty buffer.
func (b *Buffer) MinMax() (lo, hi float64) {
	return minMax(b.values)
}

// Pair is two traces sharing one time vector, as used for Lissajous figures.
type Pair struct {
	times []float64
	x, y  []float64
}

func (p *Pair) Len() int { return len(p.times) }

func (p *Pair) At(i int) (t, x, y float64) {
	return p.times[i], p.x[i], p.y[i]
}

func (p *Pair) Times() []float64 { return clone(p.times) }
func (p *Pair) X() []float64     { return clone(p.x) }
func (p *Pair) Y() []float64     { return clone(p.y) }

// Horizontal and Vertical split the pair into single-channel buffers.
func (p *Pair) Horizontal() *Buffer { return newBuffer(p.times, p.x) }
func (p *Pair) Vertical() *Buffer   { return newBuffer(p.times, p.y) }

func clone(s []float64) []float64 {
	c := make([]float64, len(s))
	copy(c, s)
	return c
}

func minMax(s []float64) (lo, hi float64) {
	if len(s) == 0 {
		return 0, 0
	}
	lo, hi = s[0], s[0]
	for _, v := range s[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
