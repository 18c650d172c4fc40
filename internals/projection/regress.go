package projection

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// linearModel is an ordinary least-squares fit of win-loss percentage
// against a fixed, ordered feature set. The feature list is the
// train-time column set; scoring against anything else is refused.
type linearModel struct {
	features  []string
	intercept float64
	coefs     []float64
}

// fitLinear solves label ≈ intercept + Σ coef_i * feature_i over the
// training rows. Rows missing a feature contribute zero for it, which
// only happens for columns that survived the carrier threshold.
func fitLinear(features []string, rows []map[string]float64, labels []float64) (*linearModel, error) {
	n := len(rows)
	p := len(features)
	if n == 0 || p == 0 {
		return nil, fmt.Errorf("empty training set")
	}
	if n < p+1 {
		return nil, fmt.Errorf("underdetermined fit: %d rows for %d features", n, p)
	}

	x := mat.NewDense(n, p+1, nil)
	y := mat.NewVecDense(n, nil)
	for i, row := range rows {
		x.Set(i, 0, 1)
		for j, feat := range features {
			x.Set(i, j+1, row[feat])
		}
		y.SetVec(i, labels[i])
	}

	var qr mat.QR
	qr.Factorize(x)
	beta := mat.NewDense(p+1, 1, nil)
	if err := qr.SolveTo(beta, false, y); err != nil {
		return nil, fmt.Errorf("least squares solve: %v", err)
	}

	model := &linearModel{
		features:  features,
		intercept: beta.At(0, 0),
		coefs:     make([]float64, p),
	}
	for j := 0; j < p; j++ {
		model.coefs[j] = beta.At(j+1, 0)
	}
	return model, nil
}

// predict scores a candidate vector. Every train-time feature must be
// present: a missing one means the roster and corpus column sets have
// diverged, and zero-filling would silently skew the estimate.
func (m *linearModel) predict(vec map[string]float64) (float64, error) {
	pred := m.intercept
	for j, feat := range m.features {
		val, ok := vec[feat]
		if !ok {
			return 0, fmt.Errorf("%w: candidate vector missing %q", ErrFeatureMismatch, feat)
		}
		pred += m.coefs[j] * val
	}
	return pred, nil
}
