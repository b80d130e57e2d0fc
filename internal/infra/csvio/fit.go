package csvio

import (
	"encoding/csv"
	"fmt"
	"io"

	"calphad-sn/internal/domain/entity"
)

// FitResultHeader is the header of an exported fit.
var FitResultHeader = []string{entity.ColumnTemperature, entity.ColumnEnergy, "FittedEnergy", "Residual"}

// WriteFitResult writes the observed and fitted energies, one row per observation.
func WriteFitResult(w io.Writer, res *entity.FitResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(FitResultHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range res.Temperatures {
		rec := []string{
			FormatFloat(res.Temperatures[i]),
			FormatFloat(res.Observed[i]),
			FormatFloat(res.Fitted[i]),
			FormatFloat(res.Residuals[i]),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
