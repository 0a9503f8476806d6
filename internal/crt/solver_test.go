package crt_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/asanabria-2021067/CRT-Simulation/internal/crt"
	"github.com/asanabria-2021067/CRT-Simulation/internal/params"
)

type sineSource struct {
	amp, freq float64
}

func (s sineSource) Voltages(t float64) (float64, float64) {
	w := 2 * math.Pi * s.freq * t
	return s.amp * math.Sin(w), s.amp * math.Cos(w)
}

var _ = Describe("Solver", func() {
	var solver *crt.Solver

	BeforeEach(func() {
		var err error
		solver, err = crt.NewSolver(crt.StandardGeometry(), crt.Electron)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("beam off", func() {
		DescribeTable("returns the origin for non-positive accelerating voltage",
			func(va float64) {
				Expect(solver.Impact(300, -200, va)).To(Equal(crt.Impact{}))
			},
			Entry("zero", 0.0),
			Entry("negative", -1500.0),
			Entry("NaN", math.NaN()),
		)

		It("returns zero stages", func() {
			Expect(solver.Stages(100, 100, 0)).To(Equal(crt.Stages{}))
		})

		It("ignores non-finite deflection voltages", func() {
			Expect(solver.Impact(math.Inf(1), 0, 2000)).To(Equal(crt.Impact{}))
		})
	})

	It("does not deflect an undriven beam", func() {
		for _, va := range []float64{500, 2000, 5000} {
			Expect(solver.Impact(0, 0, va)).To(Equal(crt.Impact{}))
		}
	})

	Describe("reference scenario", func() {
		It("deflects up and leaves X near zero at 2000 V / 100 V / 0 V", func() {
			hit := solver.Impact(100, 0, 2000)
			Expect(hit.Y).To(BeNumerically(">", 0))
			Expect(math.IsInf(hit.Y, 0) || math.IsNaN(hit.Y)).To(BeFalse())
			Expect(hit.X).To(BeNumerically("~", 0, 1e-12))
			// Vv/(2·d·Va) · (Lv²/2 + Lv·gap + Lv·L)
			Expect(hit.Y).To(BeNumerically("~", 0.0190625, 1e-9))
		})

		It("sums the stage contributions", func() {
			st := solver.Stages(100, 50, 2000)
			Expect(st.Impact().Y).To(BeNumerically("~", st.PlateY+st.GapY+st.FreeY, 1e-15))
			Expect(st.Impact().X).To(BeNumerically("~", st.PlateX+st.FreeX, 1e-15))
			Expect(st.Speed).To(BeNumerically("~", 2.652e7, 1e4))
			Expect(st.TransitTime()).To(BeNumerically("~", crt.StandardGeometry().Length()/st.Speed, 1e-18))
		})
	})

	Describe("antisymmetry", func() {
		DescribeTable("flips each axis with its own voltage",
			func(v, h, va float64) {
				a := solver.Impact(v, h, va)
				Expect(solver.Impact(-v, h, va).Y).To(BeNumerically("~", -a.Y, 1e-15))
				Expect(solver.Impact(v, -h, va).X).To(BeNumerically("~", -a.X, 1e-15))
				Expect(solver.Impact(-v, h, va).X).To(BeNumerically("~", a.X, 1e-15))
			},
			Entry("small", 25.0, 10.0, 1000.0),
			Entry("mixed", -300.0, 450.0, 2500.0),
			Entry("full scale", 600.0, -600.0, 5000.0),
		)
	})

	It("scales inversely with accelerating voltage", func() {
		lo := solver.Impact(100, 100, 1000)
		hi := solver.Impact(100, 100, 2000)
		Expect(lo.Y / hi.Y).To(BeNumerically("~", 2, 1e-9))
		Expect(lo.X / hi.X).To(BeNumerically("~", 2, 1e-9))
	})

	It("reduces to the in-plate arc with no gap and no free flight", func() {
		g := crt.StandardGeometry()
		g.Gap = 0
		g.ScreenDistance = 0
		hit, err := crt.ComputeImpact(100, 100, 2000, g, crt.Electron)
		Expect(err).NotTo(HaveOccurred())

		// Lumped form: y = ½·a·t², a = e·V/(m·d), t = L/v0.
		v0 := math.Sqrt(2 * crt.Electron.ChargeToMass() * 2000)
		a := crt.Electron.ChargeToMass() * 100 / g.Separation
		tv := g.PlateLengthV / v0
		th := g.PlateLengthH / v0
		Expect(hit.Y).To(BeNumerically("~", 0.5*a*tv*tv, 1e-12))
		Expect(hit.X).To(BeNumerically("~", 0.5*a*th*th, 1e-12))
	})

	It("reports per-volt sensitivity", func() {
		sy, sx := solver.Sensitivity(2000)
		Expect(sy * 100).To(BeNumerically("~", solver.Impact(100, 0, 2000).Y, 1e-12))
		Expect(sx * 100).To(BeNumerically("~", solver.Impact(0, 100, 2000).X, 1e-12))
	})

	It("traces one impact per sample in order", func() {
		times := []float64{0, 0.25, 0.5, 0.75}
		hits := solver.Trace(times, sineSource{amp: 200, freq: 1}, 2000)
		Expect(hits).To(HaveLen(len(times)))
		for i, tt := range times {
			vv, vh := sineSource{amp: 200, freq: 1}.Voltages(tt)
			Expect(hits[i]).To(Equal(solver.Impact(vv, vh, 2000)))
		}
		Expect(hits[0].Y).To(BeNumerically("~", 0, 1e-12))
		Expect(hits[1].X).To(BeNumerically("~", 0, 1e-12))
	})

	Describe("configuration errors", func() {
		It("fails fast on zero plate separation", func() {
			g := crt.StandardGeometry()
			g.Separation = 0
			_, err := crt.NewSolver(g, crt.Electron)
			Expect(errors.Is(err, params.ErrInvalidParameter)).To(BeTrue())
		})

		It("rejects broken constants", func() {
			c := crt.Electron
			c.ElectronMass = 0
			_, err := crt.NewSolver(crt.StandardGeometry(), c)
			Expect(err).To(MatchError(params.ErrInvalidParameter))
		})

		It("surfaces the error from the one-shot form", func() {
			g := crt.StandardGeometry()
			g.PlateLengthV = -1
			_, err := crt.ComputeImpact(1, 1, 2000, g, crt.Electron)
			Expect(err).To(MatchError(params.ErrInvalidParameter))
		})
	})
})

var _ = Describe("Display", func() {
	It("scales metres linearly", func() {
		d := crt.DefaultDisplay()
		p := d.Project(crt.Impact{X: 0.01, Y: -0.02})
		Expect(p.X).To(BeNumerically("~", 25, 1e-12))
		Expect(p.Y).To(BeNumerically("~", -50, 1e-12))
		Expect(d.ProjectAll([]crt.Impact{{}, {X: 1}})).To(HaveLen(2))
	})
})
