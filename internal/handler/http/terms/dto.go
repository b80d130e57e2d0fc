package terms

import (
	"calphad-sn/internal/domain/entity"
	"calphad-sn/internal/infra/csvio"
	termsUC "calphad-sn/internal/usecase/terms"
)

type RowDTO struct {
	Temperature float64   `json:"temperature"`
	Terms       []float64 `json:"terms"`
	Total       float64   `json:"total"`
}

type TableDTO struct {
	Start   float64  `json:"start"`
	End     float64  `json:"end"`
	Step    float64  `json:"step"`
	Columns []string `json:"columns"`
	Rows    []RowDTO `json:"rows"`
}

// NewTableDTO converts a term table. Terms of every row follow the order of
// Columns after the temperature column.
func NewTableDTO(in termsUC.RangeInput, table entity.TermTable) TableDTO {
	rows := make([]RowDTO, 0, len(table.Rows))
	for _, r := range table.Rows {
		rows = append(rows, RowDTO{
			Temperature: r.Temperature,
			Terms:       append([]float64(nil), r.Terms[:]...),
			Total:       r.Total,
		})
	}
	return TableDTO{
		Start:   in.Start,
		End:     in.End,
		Step:    in.Step,
		Columns: csvio.TermTableHeader,
		Rows:    rows,
	}
}
