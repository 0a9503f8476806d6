package drive_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/asanabria-2021067/CRT-Simulation/internal/drive"
	"github.com/asanabria-2021067/CRT-Simulation/internal/params"
)

var _ = Describe("Model", func() {
	var m *drive.Model

	BeforeEach(func() {
		var err error
		m, err = drive.New(drive.DefaultParams())
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts in manual mode with the reset values", func() {
		Expect(m.Mode()).To(Equal(drive.Manual))
		Expect(m.Params().Accel).To(Equal(2000.0))
		Expect(m.AmplitudeBase()).To(Equal(250.0))
	})

	Describe("manual mode", func() {
		It("passes the static voltages through at any time", func() {
			Expect(m.SetManual(120, -80)).To(Succeed())
			for _, t := range []float64{0, 0.3, 17} {
				v, h := m.Voltages(t)
				Expect(v).To(Equal(120.0))
				Expect(h).To(Equal(-80.0))
			}
		})

		It("clamps voltages to the deflection range", func() {
			Expect(m.SetManual(900, -900)).To(Succeed())
			v, h := m.Voltages(0)
			Expect(v).To(Equal(600.0))
			Expect(h).To(Equal(-600.0))
		})

		It("rejects NaN without changing state", func() {
			Expect(m.SetManual(math.NaN(), 0)).To(MatchError(params.ErrInvalidParameter))
			v, _ := m.Voltages(0)
			Expect(v).To(Equal(0.0))
		})
	})

	Describe("sinusoidal mode", func() {
		BeforeEach(func() {
			m.SetMode(drive.Sinusoidal)
		})

		It("drives both axes with sine", func() {
			Expect(m.SetChannels(
				drive.Channel{Frequency: 2, Phase: 0.4},
				drive.Channel{Frequency: 3, Phase: 1.2},
			)).To(Succeed())

			t := 0.137
			v, h := m.Voltages(t)
			Expect(v).To(BeNumerically("~", 250*math.Sin(2*math.Pi*2*t+0.4), 1e-9))
			Expect(h).To(BeNumerically("~", 250*math.Sin(2*math.Pi*3*t+1.2), 1e-9))
		})

		It("holds a constant A·sin(φ) at zero frequency", func() {
			Expect(m.SetChannels(
				drive.Channel{Frequency: 0, Phase: math.Pi / 2},
				drive.Channel{Frequency: 0, Phase: 0},
			)).To(Succeed())
			for _, t := range []float64{0, 0.5, 3} {
				v, h := m.Voltages(t)
				Expect(v).To(BeNumerically("~", 250, 1e-9))
				Expect(h).To(BeNumerically("~", 0, 1e-9))
			}
		})

		It("rejects negative frequency", func() {
			err := m.SetChannels(drive.Channel{Frequency: -1}, drive.Channel{Frequency: 1})
			Expect(err).To(MatchError(params.ErrInvalidParameter))
		})

		It("reports the full state", func() {
			st := m.State(0.25)
			Expect(st.Accel).To(Equal(2000.0))
			Expect(st.Vertical).To(BeNumerically("~", 250, 1e-9))
		})
	})

	Describe("amplitude base", func() {
		DescribeTable("follows the accelerating voltage within its clamp",
			func(va, want float64) {
				Expect(m.SetAccel(va)).To(Succeed())
				Expect(m.AmplitudeBase()).To(BeNumerically("~", want, 1e-9))
			},
			Entry("low beam energy clamps to the minimum", 500.0, 100.0),
			Entry("proportional band", 2400.0, 300.0),
			Entry("high beam energy clamps to the maximum", 5000.0, 600.0),
			Entry("accel below range clamps first", 10.0, 100.0),
		)

		It("accepts a custom amplitude law", func() {
			custom, err := drive.New(drive.DefaultParams(),
				drive.WithAmplitude(drive.Amplitude{Ratio: 0.05, Min: 0, Max: 1000}))
			Expect(err).NotTo(HaveOccurred())
			Expect(custom.AmplitudeBase()).To(BeNumerically("~", 100, 1e-9))
		})

		It("rejects an inverted clamp", func() {
			_, err := drive.New(drive.DefaultParams(),
				drive.WithAmplitude(drive.Amplitude{Ratio: 0.1, Min: 500, Max: 100}))
			Expect(err).To(MatchError(params.ErrInvalidParameter))
		})
	})

	Describe("mode transitions", func() {
		It("only changes mode when told to", func() {
			Expect(m.Toggle()).To(Equal(drive.Sinusoidal))
			Expect(m.Toggle()).To(Equal(drive.Manual))
		})

		It("switches to sinusoidal when a preset is applied", func() {
			p, ok := drive.LookupPreset("circle")
			Expect(ok).To(BeTrue())
			Expect(m.ApplyPreset(p)).To(Succeed())
			Expect(m.Mode()).To(Equal(drive.Sinusoidal))
		})

		It("resets to defaults", func() {
			Expect(m.SetAccel(4000)).To(Succeed())
			m.SetMode(drive.Sinusoidal)
			m.Reset()
			Expect(m.Mode()).To(Equal(drive.Manual))
			Expect(m.Params()).To(Equal(drive.DefaultParams()))
		})

		It("can start in sinusoidal mode", func() {
			s, err := drive.New(drive.DefaultParams(), drive.WithMode(drive.Sinusoidal))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Mode()).To(Equal(drive.Sinusoidal))
		})
	})

	It("describes the drive as signal specs", func() {
		p, _ := drive.LookupPreset("1:2/90")
		Expect(m.ApplyPreset(p)).To(Succeed())
		x, y := m.Specs()
		Expect(x.Frequency).To(Equal(1.0))
		Expect(y.Frequency).To(Equal(2.0))
		Expect(y.Phase).To(BeNumerically("~", math.Pi/2, 1e-12))
		Expect(x.Amplitude).To(Equal(m.AmplitudeBase()))
	})
})

var _ = Describe("ParseMode", func() {
	DescribeTable("accepts known spellings",
		func(in string, want drive.Mode) {
			got, err := drive.ParseMode(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("manual", "manual", drive.Manual),
		Entry("empty", "", drive.Manual),
		Entry("sinusoidal", "Sinusoidal", drive.Sinusoidal),
		Entry("lissajous", "lissajous", drive.Sinusoidal),
	)

	It("rejects unknown modes", func() {
		_, err := drive.ParseMode("sawtooth")
		Expect(err).To(HaveOccurred())
	})

	It("round-trips through String", func() {
		for _, mode := range []drive.Mode{drive.Manual, drive.Sinusoidal} {
			got, err := drive.ParseMode(mode.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(mode))
		}
	})
})
