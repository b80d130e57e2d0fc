package fixtures_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calphad-sn/internal/domain/gibbs"
	"calphad-sn/internal/infra/csvio"
	"calphad-sn/tests/fixtures"
)

func TestScenarioCSV_MatchesScenario(t *testing.T) {
	got, err := csvio.ReadObservations(strings.NewReader(fixtures.ScenarioCSV))
	require.NoError(t, err)
	if diff := cmp.Diff(fixtures.Scenario(), got); diff != "" {
		t.Errorf("scenario mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, fixtures.ScenarioCSV, fixtures.CSV(fixtures.Scenario()))
}

func TestTemperatures(t *testing.T) {
	assert.Equal(t, []float64{298, 328, 358}, fixtures.Temperatures(298, 30, 3))
	assert.Empty(t, fixtures.Temperatures(298, 30, 0))
}

func TestSynthetic_RecoversAlpha(t *testing.T) {
	obs := fixtures.Synthetic(gibbs.DefaultModel.Energy, 2.5, fixtures.Temperatures(250, 25, 10))

	res, err := gibbs.DefaultModel.Fit(obs)
	require.NoError(t, err)
	assert.InEpsilon(t, 2.5, res.Alpha, 1e-9)
}

func TestNoisy_Deterministic(t *testing.T) {
	temps := fixtures.Temperatures(300, 10, 20)
	a := fixtures.Noisy(gibbs.DefaultModel.Energy, 1.5, temps, 0.5, 42)
	b := fixtures.Noisy(gibbs.DefaultModel.Energy, 1.5, temps, 0.5, 42)
	c := fixtures.Noisy(gibbs.DefaultModel.Energy, 1.5, temps, 0.5, 7)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	res, err := gibbs.DefaultModel.Fit(a)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, res.Alpha, 0.01)
}

func TestCSV_RoundTrip(t *testing.T) {
	obs := fixtures.Noisy(gibbs.DefaultModel.Energy, -0.75, fixtures.Temperatures(200, 0.1, 5), 1, 1)

	got, err := csvio.ReadObservations(strings.NewReader(fixtures.CSV(obs)))
	require.NoError(t, err)
	if diff := cmp.Diff(obs, got); diff != "" {
		t.Errorf("csv round trip mismatch (-want +got):\n%s", diff)
	}
}
