package gibbs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"calphad-sn/internal/domain/entity"
)

// degenerateEpsilon is the smallest Σ(T·ln T)² accepted by Fit.
const degenerateEpsilon = 1e-12

// Model is E(T) = Constant + alpha·T·ln(T) with alpha the only free parameter.
type Model struct {
	Constant float64
}

// DefaultModel uses the BCT Sn constant term.
var DefaultModel = Model{Constant: BCTSn.Constant}

// Energy evaluates the model at temperature t for the given alpha.
func (m Model) Energy(t, alpha float64) float64 {
	return m.Constant + alpha*t*math.Log(t)
}

// Curve evaluates the model at every temperature.
func (m Model) Curve(temps []float64, alpha float64) []float64 {
	out := make([]float64, len(temps))
	for i, t := range temps {
		out[i] = m.Energy(t, alpha)
	}
	return out
}

// RSS returns the residual sum of squares of alpha against the observations.
func (m Model) RSS(obs []entity.Observation, alpha float64) float64 {
	var sum float64
	for _, o := range obs {
		r := o.Energy - m.Energy(o.Temperature, alpha)
		sum += r * r
	}
	return sum
}

// Fit estimates alpha by least squares.
//
// The model is linear in alpha, so with x = T·ln(T) and y = E - Constant the
// optimum is the regression of y on x through the origin, Σxy / Σx².
func (m Model) Fit(obs []entity.Observation) (*entity.FitResult, error) {
	if err := validateObservations(obs); err != nil {
		return nil, err
	}

	n := len(obs)
	temps := make([]float64, n)
	observed := make([]float64, n)
	x := make([]float64, n)
	y := make([]float64, n)
	for i, o := range obs {
		temps[i] = o.Temperature
		observed[i] = o.Energy
		x[i] = o.Temperature * math.Log(o.Temperature)
		y[i] = o.Energy - m.Constant
	}

	sumSq := floats.Dot(x, x)
	if !(sumSq > degenerateEpsilon) || math.IsInf(sumSq, 0) {
		return nil, &entity.FitError{
			Kind:    entity.Degenerate,
			Row:     -1,
			Message: fmt.Sprintf("sum of (T*ln T)^2 is %g; temperatures carry no information about alpha", sumSq),
		}
	}

	_, alpha := stat.LinearRegression(x, y, nil, true)
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, &entity.FitError{
			Kind:    entity.Degenerate,
			Row:     -1,
			Message: fmt.Sprintf("alpha estimate is not finite (%v)", alpha),
		}
	}

	fitted := m.Curve(temps, alpha)
	residuals := make([]float64, n)
	floats.SubTo(residuals, observed, fitted)
	rss := floats.Dot(residuals, residuals)
	if !isFinite(rss) || !allFinite(fitted) {
		return nil, &entity.FitError{
			Kind:    entity.Degenerate,
			Row:     -1,
			Message: fmt.Sprintf("fitted curve overflows float64 (alpha=%g, RSS=%v)", alpha, rss),
		}
	}

	// Unweighted least-squares covariance: s² = RSS/(n-p) scaled by the
	// inverse normal matrix. Undefined for a single point.
	cov := math.Inf(1)
	if n > 1 {
		cov = rss / float64(n-1) / sumSq
	}

	return &entity.FitResult{
		Constant:     m.Constant,
		Alpha:        alpha,
		Covariance:   cov,
		StdErr:       math.Sqrt(cov),
		RSS:          rss,
		Temperatures: temps,
		Observed:     observed,
		Fitted:       fitted,
		Residuals:    residuals,
	}, nil
}

func validateObservations(obs []entity.Observation) error {
	if len(obs) == 0 {
		return &entity.FitError{Kind: entity.InsufficientData, Row: -1, Message: "no observations"}
	}
	for i, o := range obs {
		if !isFinite(o.Temperature) || !isFinite(o.Energy) {
			return &entity.FitError{
				Kind:    entity.InvalidInput,
				Row:     i,
				Message: fmt.Sprintf("values must be finite, got T=%v E=%v", o.Temperature, o.Energy),
			}
		}
	}
	for i, o := range obs {
		if o.Temperature <= 0 {
			return &entity.FitError{
				Kind:    entity.InvalidTemperature,
				Row:     i,
				Message: fmt.Sprintf("temperature must be positive, got %v", o.Temperature),
			}
		}
	}
	return nil
}

func allFinite(vs []float64) bool {
	for _, v := range vs {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
