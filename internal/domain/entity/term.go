package entity

// TermCount is the number of additive terms in the Gibbs polynomial.
const TermCount = 6

// TermNames are the display names of the six terms followed by their sum,
// in CSV column order after the temperature column.
var TermNames = [TermCount + 1]string{
	"Term 1: Constant",
	"Term 2: Linear",
	"Term 3: T*ln(T)",
	"Term 4: Quadratic",
	"Term 5: Cubic",
	"Term 6: Inverse T",
	"Total Energy",
}

// TermRow holds the decomposition of the Gibbs energy at one temperature.
type TermRow struct {
	Temperature float64
	Terms       [TermCount]float64
	Total       float64
}

// Values returns the six terms followed by the total.
func (r TermRow) Values() [TermCount + 1]float64 {
	var out [TermCount + 1]float64
	copy(out[:TermCount], r.Terms[:])
	out[TermCount] = r.Total
	return out
}

// TermTable is an ordered set of decomposition rows.
type TermTable struct {
	Rows []TermRow
}

// Temperatures returns the temperature column.
func (t TermTable) Temperatures() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Temperature
	}
	return out
}

// Column returns the values of term i (0..5), or the total for i == TermCount.
func (t TermTable) Column(i int) []float64 {
	out := make([]float64, len(t.Rows))
	for j, r := range t.Rows {
		out[j] = r.Values()[i]
	}
	return out
}
