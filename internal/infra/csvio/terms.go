package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"calphad-sn/internal/domain/entity"
)

// TermTableFilename is the download name of an exported term table.
const TermTableFilename = "gibbs_terms_sn_BCT.csv"

// TermTableHeader is the exact header of an exported term table.
var TermTableHeader = append([]string{entity.ColumnTemperature}, entity.TermNames[:]...)

// FormatFloat renders v in the shortest form that parses back to the same bits.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteTermTable writes the table as CSV with TermTableHeader.
func WriteTermTable(w io.Writer, table entity.TermTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TermTableHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rec := make([]string, len(TermTableHeader))
	for _, row := range table.Rows {
		rec[0] = FormatFloat(row.Temperature)
		for i, v := range row.Values() {
			rec[i+1] = FormatFloat(v)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row at %g K: %w", row.Temperature, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadTermTable parses a CSV produced by WriteTermTable.
func ReadTermTable(r io.Reader) (entity.TermTable, error) {
	cr := newReader(r)

	header, err := cr.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return entity.TermTable{}, fmt.Errorf("%w: read header: %v", entity.ErrInvalidInput, err)
	}
	if got := normalizeHeader(header); strings.Join(got, ",") != strings.Join(TermTableHeader, ",") {
		return entity.TermTable{}, fmt.Errorf("%w: term table header must be %q, got %q",
			entity.ErrSchema, strings.Join(TermTableHeader, ","), strings.Join(got, ","))
	}

	var table entity.TermTable
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return entity.TermTable{}, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
		}
		if blank(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)
		if len(rec) != len(TermTableHeader) {
			return entity.TermTable{}, fmt.Errorf("%w: line %d: expected %d fields, got %d",
				entity.ErrInvalidInput, line, len(TermTableHeader), len(rec))
		}

		var row entity.TermRow
		for i, name := range TermTableHeader {
			v, err := parseCell(rec, i, name, line)
			if err != nil {
				return entity.TermTable{}, err
			}
			switch {
			case i == 0:
				row.Temperature = v
			case i <= entity.TermCount:
				row.Terms[i-1] = v
			default:
				row.Total = v
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
