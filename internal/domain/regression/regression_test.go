package regression_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/okian/auditplan/internal/domain/model"
	"github.com/okian/auditplan/internal/domain/regression"
	. "github.com/smartystreets/goconvey/convey"
)

const tolerance = 1e-6

func TestFit(t *testing.T) {
	Convey("Given the two-point retail history", t, func() {
		x := [][]float64{{0, 0, 0, 0}, {0, 2, 2, 3}}
		y := []float64{100, 400}

		Convey("When fitting the rank-deficient system", func() {
			m, err := regression.Fit(x, y)

			Convey("Then the fit passes through both training points", func() {
				So(err, ShouldBeNil)
				p0, err := m.Predict(x[0])
				So(err, ShouldBeNil)
				So(p0, ShouldAlmostEqual, 100, tolerance)
				p1, _ := m.Predict(x[1])
				So(p1, ShouldAlmostEqual, 400, tolerance)
			})

			Convey("And the coefficients are the minimum-norm solution", func() {
				// theta lies in the row space: a*[1,0,0,0,0] + b*[1,0,2,2,3]
				// with a+b = 100 and 100+17b = 400.
				theta := m.Coefficients()
				So(len(theta), ShouldEqual, 5)
				So(theta[0], ShouldAlmostEqual, 100, tolerance)
				So(theta[1], ShouldAlmostEqual, 0, tolerance)
				So(theta[2], ShouldAlmostEqual, 600.0/17, tolerance)
				So(theta[3], ShouldAlmostEqual, 600.0/17, tolerance)
				So(theta[4], ShouldAlmostEqual, 900.0/17, tolerance)
			})
		})
	})

	Convey("Given a full-rank history generated by a known line", t, func() {
		// hours = 50 + 10*industry + 40*size + 25*complexity + 5*prev
		truth := []float64{50, 10, 40, 25, 5}
		var x [][]float64
		var y []float64
		for ind := 0.0; ind < 2; ind++ {
			for size := 0.0; size < 3; size++ {
				for cx := 0.0; cx < 3; cx++ {
					prev := math.Mod(ind+size*cx, 4)
					row := []float64{ind, size, cx, prev}
					x = append(x, row)
					y = append(y, truth[0]+truth[1]*ind+truth[2]*size+truth[3]*cx+truth[4]*prev)
				}
			}
		}

		Convey("When fitting", func() {
			m, err := regression.Fit(x, y)

			Convey("Then the generating coefficients are recovered", func() {
				So(err, ShouldBeNil)
				for i, c := range m.Coefficients() {
					So(c, ShouldAlmostEqual, truth[i], tolerance)
				}
				So(m.Features(), ShouldEqual, 4)
			})
		})
	})

	Convey("Given perfectly collinear columns", t, func() {
		x := [][]float64{{1, 1}, {2, 2}, {3, 3}}
		y := []float64{2, 4, 6}

		Convey("When fitting", func() {
			m, err := regression.Fit(x, y)

			Convey("Then no error surfaces and predictions stay finite and exact", func() {
				So(err, ShouldBeNil)
				p, err := m.Predict([]float64{4, 4})
				So(err, ShouldBeNil)
				So(math.IsNaN(p) || math.IsInf(p, 0), ShouldBeFalse)
				So(p, ShouldAlmostEqual, 8, tolerance)
			})
		})
	})

	Convey("Given a single historical record", t, func() {
		m, err := regression.Fit([][]float64{{0, 1, 2, 3}}, []float64{250})

		Convey("Then the fit reproduces it", func() {
			So(err, ShouldBeNil)
			p, _ := m.Predict([]float64{0, 1, 2, 3})
			So(p, ShouldAlmostEqual, 250, tolerance)
		})
	})

	Convey("Given malformed training input", t, func() {
		_, errEmpty := regression.Fit(nil, nil)
		_, errLen := regression.Fit([][]float64{{1}}, []float64{1, 2})
		_, errRagged := regression.Fit([][]float64{{1, 2}, {1}}, []float64{1, 2})
		_, errWidth := regression.Fit([][]float64{{}}, []float64{1})

		Convey("Then every case fails with InvalidInput", func() {
			So(errors.Is(errEmpty, model.ErrInvalidInput), ShouldBeTrue)
			So(errors.Is(errLen, model.ErrInvalidInput), ShouldBeTrue)
			So(errors.Is(errRagged, model.ErrInvalidInput), ShouldBeTrue)
			So(errors.Is(errWidth, model.ErrInvalidInput), ShouldBeTrue)
		})
	})

	Convey("Given a fitted model", t, func() {
		m, _ := regression.Fit([][]float64{{1, 2}}, []float64{3})

		Convey("When predicting with the wrong width", func() {
			_, err := m.Predict([]float64{1})

			Convey("Then it fails with InvalidInput", func() {
				So(errors.Is(err, model.ErrInvalidInput), ShouldBeTrue)
			})
		})

		Convey("When mutating the returned coefficients", func() {
			c := m.Coefficients()
			c[0] = 1e9

			Convey("Then the model is unaffected", func() {
				So(m.Coefficients()[0], ShouldNotEqual, 1e9)
			})
		})
	})
}

type history struct {
	x [][]float64
	y []float64
}

// genHistory produces 1..12 encoded rows within the encoder's value ranges.
func genHistory() gopter.Gen {
	return gen.IntRange(1, 12).FlatMap(func(n interface{}) gopter.Gen {
		count := n.(int)
		return gopter.CombineGens(
			gen.SliceOfN(count, gen.IntRange(0, 4)),
			gen.SliceOfN(count, gen.IntRange(0, 2)),
			gen.SliceOfN(count, gen.IntRange(0, 2)),
			gen.SliceOfN(count, gen.IntRange(0, 10)),
			gen.SliceOfN(count, gen.Float64Range(0, 2000)),
		).Map(func(values []interface{}) history {
			ind := values[0].([]int)
			size := values[1].([]int)
			cx := values[2].([]int)
			prev := values[3].([]int)
			h := history{y: values[4].([]float64)}
			for i := range ind {
				h.x = append(h.x, []float64{float64(ind[i]), float64(size[i]), float64(cx[i]), float64(prev[i])})
			}
			return h
		})
	}, reflect.TypeOf(history{}))
}

func TestFitProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("predictions are finite and deterministic", prop.ForAll(
		func(h history) bool {
			a, err := regression.Fit(h.x, h.y)
			if err != nil {
				return false
			}
			b, err := regression.Fit(h.x, h.y)
			if err != nil {
				return false
			}
			for _, row := range h.x {
				pa, err := a.Predict(row)
				if err != nil || math.IsNaN(pa) || math.IsInf(pa, 0) {
					return false
				}
				pb, _ := b.Predict(row)
				if pa != pb {
					return false
				}
			}
			return true
		},
		genHistory(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
