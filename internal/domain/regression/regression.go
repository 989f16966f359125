// Package regression fits an ordinary least-squares linear model with an
// intercept and predicts from it.
//
// The fit goes through the Moore-Penrose pseudo-inverse of the design matrix,
// so rank-deficient history (too few records, collinear categories) yields
// the minimum-norm solution instead of a numerical error.
package regression

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/okian/auditplan/internal/domain/model"
	"gonum.org/v1/gonum/mat"
)

// ErrFactorization reports that the SVD did not converge.
var ErrFactorization = errors.New("svd factorization failed")

// Model is a fitted linear model. Coefficient 0 is the intercept.
type Model struct {
	theta []float64
}

// Fit solves theta = pinv([1 | x]) * y.
// Every row of x must have the same, non-zero width and y must match x in length.
func Fit(x [][]float64, y []float64) (*Model, error) {
	rows := len(x)
	if rows == 0 {
		return nil, fmt.Errorf("no training rows: %w", model.ErrInvalidInput)
	}
	if len(y) != rows {
		return nil, fmt.Errorf("%d rows but %d targets: %w", rows, len(y), model.ErrInvalidInput)
	}
	width := len(x[0])
	if width == 0 {
		return nil, fmt.Errorf("rows have no features: %w", model.ErrInvalidInput)
	}
	cols := width + 1

	design := mat.NewDense(rows, cols, nil)
	for i, row := range x {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d features, want %d: %w", i, len(row), width, model.ErrInvalidInput)
		}
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}

	pinv, err := pseudoInverse(design)
	if err != nil {
		return nil, err
	}

	var theta mat.VecDense
	theta.MulVec(pinv, mat.NewVecDense(rows, slices.Clone(y)))
	return &Model{theta: slices.Clone(theta.RawVector().Data)}, nil
}

// pseudoInverse returns V * S⁺ * Uᵀ. Singular values at or below
// max(rows, cols) * σmax * eps are treated as zero.
func pseudoInverse(a *mat.Dense) (*mat.Dense, error) {
	rows, cols := a.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, ErrFactorization
	}
	values := svd.Values(nil)

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	tol := 0.0
	if len(values) > 0 {
		tol = float64(max(rows, cols)) * values[0] * epsilon
	}
	inv := mat.NewDiagDense(len(values), nil)
	for i, s := range values {
		if s > tol {
			inv.SetDiag(i, 1/s)
		}
	}

	var vs mat.Dense
	vs.Mul(&v, inv)
	var out mat.Dense
	out.Mul(&vs, u.T())
	return &out, nil
}

// epsilon is the float64 machine epsilon.
var epsilon = math.Nextafter(1, 2) - 1

// Predict evaluates the model for one feature vector.
func (m *Model) Predict(features []float64) (float64, error) {
	if len(features) != len(m.theta)-1 {
		return 0, fmt.Errorf("got %d features, model expects %d: %w", len(features), len(m.theta)-1, model.ErrInvalidInput)
	}
	y := m.theta[0]
	for i, f := range features {
		y += m.theta[i+1] * f
	}
	return y, nil
}

// Coefficients returns a copy of theta, intercept first.
func (m *Model) Coefficients() []float64 {
	return slices.Clone(m.theta)
}

// Features returns the number of input features the model expects.
func (m *Model) Features() int {
	return len(m.theta) - 1
}
