package gibbs

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calphad-sn/internal/domain/entity"
)

func TestBCTSn_ReferenceValues(t *testing.T) {
	assert.Equal(t, -5855.135, BCTSn.Constant)
	assert.Equal(t, 65.443315, BCTSn.Linear)
	assert.Equal(t, -15.961, BCTSn.TLnT)
	assert.Equal(t, -0.0188702, BCTSn.Quadratic)
	assert.Equal(t, 3.121167e-6, BCTSn.Cubic)
	assert.Equal(t, -61960.0, BCTSn.InverseT)
	assert.NoError(t, BCTSn.Validate())
}

func TestCoefficients_Decompose(t *testing.T) {
	const temp = 298.0
	row, err := BCTSn.Decompose(temp)
	require.NoError(t, err)

	assert.Equal(t, temp, row.Temperature)
	assert.Equal(t, -5855.135, row.Terms[0])
	assert.InDelta(t, 65.443315*298, row.Terms[1], 1e-9)
	assert.InDelta(t, -15.961*298*math.Log(298), row.Terms[2], 1e-9)
	assert.InDelta(t, -0.0188702*298*298, row.Terms[3], 1e-9)
	assert.InDelta(t, 3.121167e-6*298*298*298, row.Terms[4], 1e-12)
	assert.InDelta(t, -61960.0/298, row.Terms[5], 1e-12)
}

func TestCoefficients_Decompose_TermsSumToTotal(t *testing.T) {
	for _, temp := range []float64{1e-3, 0.5, 1, 77, 298.15, 505.08, 1000, 3000} {
		row, err := BCTSn.Decompose(temp)
		require.NoError(t, err)

		var sum float64
		for _, v := range row.Terms {
			sum += v
		}
		assert.Equal(t, sum, row.Total, "T=%v", temp)
		assert.False(t, math.IsNaN(row.Total))
	}
}

func TestCoefficients_Decompose_Domain(t *testing.T) {
	tests := []struct {
		name   string
		temp   float64
		target error
	}{
		{"zero", 0, entity.ErrInvalidTemperature},
		{"negative", -10, entity.ErrInvalidTemperature},
		{"nan", math.NaN(), entity.ErrInvalidInput},
		{"inf", math.Inf(1), entity.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BCTSn.Decompose(tt.temp)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestCoefficients_Energy(t *testing.T) {
	e, err := BCTSn.Energy(298.15)
	require.NoError(t, err)
	row, _ := BCTSn.Decompose(298.15)
	assert.Equal(t, row.Total, e)

	_, err = BCTSn.Energy(0)
	assert.Error(t, err)
}

func TestCoefficients_Validate(t *testing.T) {
	c := BCTSn
	c.Cubic = math.NaN()

	err := c.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrValidationFailed))
	assert.Contains(t, err.Error(), "Term 5: Cubic")
}

func TestCoefficients_Table_DefaultRange(t *testing.T) {
	table, err := BCTSn.Table(DefaultStart, DefaultEnd, DefaultStep)
	require.NoError(t, err)

	require.Len(t, table.Rows, 7)
	assert.Equal(t, 298.0, table.Rows[0].Temperature)
	assert.Equal(t, 478.0, table.Rows[6].Temperature)
	assert.LessOrEqual(t, table.Rows[6].Temperature, 495.0)

	for i, row := range table.Rows {
		want, err := BCTSn.Decompose(row.Temperature)
		require.NoError(t, err)
		assert.Equal(t, want, row, "row %d", i)
	}
}

func TestCoefficients_Table_InvalidRange(t *testing.T) {
	_, err := BCTSn.Table(495, 298, 30)
	assert.ErrorIs(t, err, entity.ErrInvalidRange)
}
