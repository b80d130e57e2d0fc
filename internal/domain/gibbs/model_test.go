package gibbs

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/optimize"

	"calphad-sn/internal/domain/entity"
)

func synthetic(m Model, alpha float64, temps ...float64) []entity.Observation {
	obs := make([]entity.Observation, len(temps))
	for i, t := range temps {
		obs[i] = entity.Observation{Temperature: t, Energy: m.Energy(t, alpha)}
	}
	return obs
}

func TestModel_Fit_RecoversExactAlpha(t *testing.T) {
	tests := []struct {
		name  string
		model Model
		alpha float64
		temps []float64
	}{
		{"bct sn constant", DefaultModel, 2.317456, []float64{300, 350, 400, 450, 500}},
		{"negative alpha", DefaultModel, -15.961, []float64{250, 298.15, 320, 505}},
		{"small alpha", DefaultModel, 1.5e-7, []float64{100, 200, 300}},
		{"zero constant", Model{}, 0.75, []float64{2, 10, 1000}},
		{"single point", DefaultModel, 3.25, []float64{298}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.model.Fit(synthetic(tt.model, tt.alpha, tt.temps...))
			require.NoError(t, err)

			tol := 1e-9 * math.Max(1, math.Abs(tt.alpha))
			assert.InDelta(t, tt.alpha, res.Alpha, tol)
			assert.Equal(t, tt.model.Constant, res.Constant)
			require.Equal(t, len(tt.temps), res.Len())
			for i := range tt.temps {
				assert.InDelta(t, res.Observed[i], res.Fitted[i], 1e-6)
			}
		})
	}
}

func TestModel_Fit_Scenario(t *testing.T) {
	obs := []entity.Observation{
		{Temperature: 300, Energy: -1200.5},
		{Temperature: 350, Energy: -1150.2},
		{Temperature: 400, Energy: -1080.9},
	}

	res, err := DefaultModel.Fit(obs)
	require.NoError(t, err)
	require.False(t, math.IsNaN(res.Alpha) || math.IsInf(res.Alpha, 0))

	assert.InDelta(t, DefaultModel.RSS(obs, res.Alpha), res.RSS, 1e-6*res.RSS)
	assert.Equal(t, []float64{300, 350, 400}, res.Temperatures)
	assert.Equal(t, []float64{-1200.5, -1150.2, -1080.9}, res.Observed)
	for i := range obs {
		assert.InDelta(t, res.Observed[i]-res.Fitted[i], res.Residuals[i], 1e-12)
	}

	r := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		delta := (r.Float64() - 0.5) * math.Pow(10, float64(r.IntN(8)-6))
		if delta == 0 {
			continue
		}
		assert.LessOrEqual(t, res.RSS, DefaultModel.RSS(obs, res.Alpha+delta)*(1+1e-12),
			"alpha+%g should not fit better", delta)
	}
}

// The closed-form optimum must agree with a generic iterative minimizer of the
// residual sum of squares.
func TestModel_Fit_AgreesWithIterativeSolver(t *testing.T) {
	obs := []entity.Observation{
		{Temperature: 300, Energy: -1200.5},
		{Temperature: 350, Energy: -1150.2},
		{Temperature: 400, Energy: -1080.9},
		{Temperature: 450, Energy: -1003.4},
	}
	res, err := DefaultModel.Fit(obs)
	require.NoError(t, err)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return DefaultModel.RSS(obs, x[0])
		},
		Grad: func(grad, x []float64) {
			var g float64
			for _, o := range obs {
				xi := o.Temperature * math.Log(o.Temperature)
				g -= 2 * xi * (o.Energy - DefaultModel.Energy(o.Temperature, x[0]))
			}
			grad[0] = g
		},
	}
	iter, err := optimize.Minimize(problem, []float64{1}, nil, &optimize.BFGS{})
	require.NotNil(t, iter)
	if err != nil {
		t.Logf("optimizer stopped with %v (status %v)", err, iter.Status)
	}

	assert.InEpsilon(t, res.Alpha, iter.X[0], 1e-6)
	assert.LessOrEqual(t, res.RSS, iter.F*(1+1e-12))
}

func TestModel_Fit_Covariance(t *testing.T) {
	obs := []entity.Observation{
		{Temperature: 300, Energy: -1200.5},
		{Temperature: 350, Energy: -1150.2},
		{Temperature: 400, Energy: -1080.9},
	}
	res, err := DefaultModel.Fit(obs)
	require.NoError(t, err)

	var sumSq float64
	for _, o := range obs {
		x := o.Temperature * math.Log(o.Temperature)
		sumSq += x * x
	}
	assert.InEpsilon(t, res.RSS/2/sumSq, res.Covariance, 1e-12)
	assert.InEpsilon(t, math.Sqrt(res.Covariance), res.StdErr, 1e-12)

	single, err := DefaultModel.Fit(obs[:1])
	require.NoError(t, err)
	assert.True(t, math.IsInf(single.Covariance, 1))
	assert.True(t, math.IsInf(single.StdErr, 1))
}

func TestModel_Fit_Errors(t *testing.T) {
	tests := []struct {
		name    string
		obs     []entity.Observation
		kind    entity.FitErrorKind
		target  error
		wantRow int
	}{
		{
			name:    "empty",
			obs:     nil,
			kind:    entity.InsufficientData,
			target:  entity.ErrInsufficientData,
			wantRow: -1,
		},
		{
			name:    "zero temperature",
			obs:     []entity.Observation{{Temperature: 300, Energy: 1}, {Temperature: 0, Energy: 1}},
			kind:    entity.InvalidTemperature,
			target:  entity.ErrInvalidTemperature,
			wantRow: 1,
		},
		{
			name:    "negative temperature",
			obs:     []entity.Observation{{Temperature: -5, Energy: 1}},
			kind:    entity.InvalidTemperature,
			target:  entity.ErrInvalidInput,
			wantRow: 0,
		},
		{
			name:    "nan energy",
			obs:     []entity.Observation{{Temperature: 300, Energy: math.NaN()}},
			kind:    entity.InvalidInput,
			target:  entity.ErrInvalidInput,
			wantRow: 0,
		},
		{
			name:    "infinite temperature",
			obs:     []entity.Observation{{Temperature: 300, Energy: 1}, {Temperature: math.Inf(1), Energy: 1}},
			kind:    entity.InvalidInput,
			target:  entity.ErrInvalidInput,
			wantRow: 1,
		},
		{
			name:    "non-finite wins over non-positive",
			obs:     []entity.Observation{{Temperature: 0, Energy: 1}, {Temperature: 300, Energy: math.Inf(-1)}},
			kind:    entity.InvalidInput,
			target:  entity.ErrInvalidInput,
			wantRow: 1,
		},
		{
			name:    "all temperatures one",
			obs:     []entity.Observation{{Temperature: 1, Energy: 5}, {Temperature: 1, Energy: 6}},
			kind:    entity.Degenerate,
			target:  entity.ErrDegenerate,
			wantRow: -1,
		},
		{
			name:    "residual sum overflows",
			obs:     []entity.Observation{{Temperature: 300, Energy: 1e200}, {Temperature: 400, Energy: -1e200}},
			kind:    entity.Degenerate,
			target:  entity.ErrDegenerate,
			wantRow: -1,
		},
		{
			name:    "normal sum overflows",
			obs:     []entity.Observation{{Temperature: 1e300, Energy: 1}, {Temperature: 2, Energy: 1}},
			kind:    entity.Degenerate,
			target:  entity.ErrDegenerate,
			wantRow: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := DefaultModel.Fit(tt.obs)
			assert.Nil(t, res)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)

			var fe *entity.FitError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.kind, fe.Kind)
			assert.Equal(t, tt.wantRow, fe.Row)
		})
	}
}

func TestModel_Curve(t *testing.T) {
	m := Model{Constant: 10}
	got := m.Curve([]float64{1, math.E}, 2)
	assert.Equal(t, 10.0, got[0])
	assert.InDelta(t, 10+2*math.E, got[1], 1e-12)
}
