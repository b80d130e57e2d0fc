// Package fixtures provides reusable observation sets for tests.
// Every generator is deterministic so failures reproduce.
package fixtures

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"calphad-sn/internal/domain/entity"
)

// ScenarioCSV is the three-point BCT Sn observation set used across the
// fit tests.
const ScenarioCSV = "Temperature(K),TotalEnergy\n300,-1200.5\n350,-1150.2\n400,-1080.9\n"

// Scenario returns the observations of ScenarioCSV.
func Scenario() []entity.Observation {
	return []entity.Observation{
		{Temperature: 300, Energy: -1200.5},
		{Temperature: 350, Energy: -1150.2},
		{Temperature: 400, Energy: -1080.9},
	}
}

// Temperatures returns n temperatures starting at start, step apart.
func Temperatures(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// Energy is a model energy function, such as gibbs.Model.Energy.
type Energy func(t, alpha float64) float64

// Synthetic evaluates energy at every temperature with the given alpha.
func Synthetic(energy Energy, alpha float64, temps []float64) []entity.Observation {
	obs := make([]entity.Observation, len(temps))
	for i, t := range temps {
		obs[i] = entity.Observation{Temperature: t, Energy: energy(t, alpha)}
	}
	return obs
}

// Noisy is Synthetic with Gaussian noise of standard deviation sigma added
// to each energy. The same seed yields the same noise.
func Noisy(energy Energy, alpha float64, temps []float64, sigma float64, seed uint64) []entity.Observation {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	obs := Synthetic(energy, alpha, temps)
	for i := range obs {
		obs[i].Energy += rng.NormFloat64() * sigma
	}
	return obs
}

// CSV renders observations in the upload format.
func CSV(obs []entity.Observation) string {
	var b strings.Builder
	b.WriteString(entity.ColumnTemperature + "," + entity.ColumnEnergy + "\n")
	for _, o := range obs {
		b.WriteString(strconv.FormatFloat(o.Temperature, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(o.Energy, 'g', -1, 64))
		b.WriteByte('\n')
	}
	return b.String()
}
