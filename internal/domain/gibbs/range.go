package gibbs

import (
	"fmt"
	"math"

	"calphad-sn/internal/domain/entity"
)

// Default range of the term decomposition, in kelvin.
const (
	DefaultStart = 298.0
	DefaultEnd   = 495.0
	DefaultStep  = 30.0
)

// rangeSlack absorbs floating-point error in (end-start)/step so that a range
// whose end lands exactly on a step boundary keeps its last point.
const rangeSlack = 1e-9

// RangeLen returns the number of temperatures Range would produce.
func RangeLen(start, end, step float64) (int, error) {
	for _, p := range []struct {
		name string
		v    float64
	}{{"start", start}, {"end", end}, {"step", step}} {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) {
			return 0, fmt.Errorf("%w: %s must be finite", entity.ErrInvalidRange, p.name)
		}
		if p.v <= 0 {
			return 0, fmt.Errorf("%w: %s must be positive, got %v", entity.ErrInvalidRange, p.name, p.v)
		}
	}
	if start >= end {
		return 0, fmt.Errorf("%w: start (%v) must be less than end (%v)", entity.ErrInvalidRange, start, end)
	}

	n := math.Floor((end-start)/step + rangeSlack)
	if n >= math.MaxInt32 {
		return 0, fmt.Errorf("%w: range yields too many points", entity.ErrInvalidRange)
	}
	return int(n) + 1, nil
}

// Range returns start, start+step, ... up to and including end. Points are
// computed as start + i·step so no error accumulates along the range.
func Range(start, end, step float64) ([]float64, error) {
	n, err := RangeLen(start, end, step)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out, nil
}
