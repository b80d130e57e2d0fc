// Package gibbs evaluates and fits the CALPHAD Gibbs free energy description of
// body-centered tetragonal (BCT) tin.
//
// The reference polynomial is
//
//	G(T) = a + b·T + c·T·ln(T) + d·T² + e·T³ + f/T
//
// Every function here is pure and safe for concurrent use.
package gibbs

import (
	"fmt"
	"math"

	"calphad-sn/internal/domain/entity"
)

// Coefficients are the six fixed coefficients of the Gibbs polynomial.
type Coefficients struct {
	Constant  float64 `yaml:"constant" json:"constant"`
	Linear    float64 `yaml:"linear" json:"linear"`
	TLnT      float64 `yaml:"t_ln_t" json:"t_ln_t"`
	Quadratic float64 `yaml:"quadratic" json:"quadratic"`
	Cubic     float64 `yaml:"cubic" json:"cubic"`
	InverseT  float64 `yaml:"inverse_t" json:"inverse_t"`
}

// BCTSn holds the thermodynamic reference coefficients for BCT Sn. The values
// come from an external assessment and are kept verbatim.
var BCTSn = Coefficients{
	Constant:  -5855.135,
	Linear:    65.443315,
	TLnT:      -15.961,
	Quadratic: -0.0188702,
	Cubic:     3.121167e-6,
	InverseT:  -61960,
}

// Validate reports non-finite coefficients.
func (c Coefficients) Validate() error {
	for i, v := range c.slice() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &entity.ValidationError{
				Field:   entity.TermNames[i],
				Message: fmt.Sprintf("coefficient must be finite, got %v", v),
			}
		}
	}
	return nil
}

func (c Coefficients) slice() [entity.TermCount]float64 {
	return [entity.TermCount]float64{c.Constant, c.Linear, c.TLnT, c.Quadratic, c.Cubic, c.InverseT}
}

// Decompose evaluates the six additive terms at temperature t and their sum.
func (c Coefficients) Decompose(t float64) (entity.TermRow, error) {
	if err := checkTemperature(t); err != nil {
		return entity.TermRow{}, err
	}

	row := entity.TermRow{Temperature: t}
	row.Terms[0] = c.Constant
	row.Terms[1] = c.Linear * t
	row.Terms[2] = c.TLnT * t * math.Log(t)
	row.Terms[3] = c.Quadratic * t * t
	row.Terms[4] = c.Cubic * t * t * t
	row.Terms[5] = c.InverseT / t

	for _, v := range row.Terms {
		row.Total += v
	}
	return row, nil
}

// Energy returns the total Gibbs energy at temperature t.
func (c Coefficients) Energy(t float64) (float64, error) {
	row, err := c.Decompose(t)
	if err != nil {
		return 0, err
	}
	return row.Total, nil
}

// Table decomposes every temperature of the inclusive range [start, end] at step.
func (c Coefficients) Table(start, end, step float64) (entity.TermTable, error) {
	temps, err := Range(start, end, step)
	if err != nil {
		return entity.TermTable{}, err
	}

	table := entity.TermTable{Rows: make([]entity.TermRow, 0, len(temps))}
	for _, t := range temps {
		row, err := c.Decompose(t)
		if err != nil {
			return entity.TermTable{}, fmt.Errorf("decompose at %g K: %w", t, err)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func checkTemperature(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: temperature must be finite, got %v", entity.ErrInvalidInput, t)
	}
	if t <= 0 {
		return fmt.Errorf("%w: temperature must be positive, got %v", entity.ErrInvalidTemperature, t)
	}
	return nil
}
