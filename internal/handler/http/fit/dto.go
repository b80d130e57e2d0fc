package fit

import (
	"fmt"
	"math"

	"calphad-sn/internal/domain/entity"
)

// DTO is the JSON representation of a fit result. Per-observation slices
// keep the upload order.
type DTO struct {
	Constant     float64 `json:"constant"`
	Alpha        float64 `json:"alpha"`
	AlphaDisplay string  `json:"alpha_display"`
	RSS          float64 `json:"rss"`
	Observations int     `json:"observations"`

	// StdErr and Covariance are null when undefined (a single observation).
	StdErr     *float64 `json:"std_err"`
	Covariance *float64 `json:"covariance"`

	Temperatures []float64 `json:"temperatures"`
	Observed     []float64 `json:"observed"`
	Fitted       []float64 `json:"fitted"`
	Residuals    []float64 `json:"residuals"`
}

// NewDTO converts a fit result.
func NewDTO(res *entity.FitResult) DTO {
	return DTO{
		Constant:     res.Constant,
		Alpha:        res.Alpha,
		AlphaDisplay: fmt.Sprintf("%.6f", res.Alpha),
		StdErr:       finite(res.StdErr),
		Covariance:   finite(res.Covariance),
		RSS:          res.RSS,
		Observations: res.Len(),
		Temperatures: res.Temperatures,
		Observed:     res.Observed,
		Fitted:       res.Fitted,
		Residuals:    res.Residuals,
	}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
