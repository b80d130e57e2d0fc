package entity

// Column names of the observation CSV schema.
const (
	ColumnTemperature = "Temperature(K)"
	ColumnEnergy      = "TotalEnergy"
)

// RequiredColumns lists the columns an observation upload must contain.
var RequiredColumns = []string{ColumnTemperature, ColumnEnergy}

// Observation is one measured (temperature, total energy) pair.
type Observation struct {
	Temperature float64 // kelvin, must be > 0
	Energy      float64
}

// FitResult is the outcome of fitting alpha to an observation set.
// Slices are aligned with the input order.
type FitResult struct {
	Constant   float64
	Alpha      float64
	Covariance float64 // variance of alpha; +Inf for a single observation
	StdErr     float64
	RSS        float64

	Temperatures []float64
	Observed     []float64
	Fitted       []float64
	Residuals    []float64
}

// Len returns the number of fitted observations.
func (r *FitResult) Len() int {
	return len(r.Temperatures)
}
