// Package csvio reads and writes the CSV formats exchanged with users:
// uploaded observation sets, exported term tables and fit results.
package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"calphad-sn/internal/domain/entity"
)

const utf8BOM = "\ufeff"

// ReadObservations parses an observation CSV. The header must contain the
// Temperature(K) and TotalEnergy columns; their order does not matter and
// other columns are ignored.
func ReadObservations(r io.Reader) ([]entity.Observation, error) {
	cr := newReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &entity.SchemaError{Missing: append([]string(nil), entity.RequiredColumns...)}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", entity.ErrInvalidInput, err)
	}

	index := columnIndex(header)
	var missing []string
	for _, col := range entity.RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &entity.SchemaError{Missing: missing, Found: normalizeHeader(header)}
	}
	tCol, eCol := index[entity.ColumnTemperature], index[entity.ColumnEnergy]

	var out []entity.Observation
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
		}
		if blank(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)

		t, err := parseCell(rec, tCol, entity.ColumnTemperature, line)
		if err != nil {
			return nil, err
		}
		e, err := parseCell(rec, eCol, entity.ColumnEnergy, line)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.Observation{Temperature: t, Energy: e})
	}
	return out, nil
}

func newReader(r io.Reader) *csv.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && string(b) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return cr
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func columnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range normalizeHeader(header) {
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	return index
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseCell(rec []string, col int, name string, line int) (float64, error) {
	if col >= len(rec) {
		return 0, fmt.Errorf("%w: line %d: missing %s value", entity.ErrInvalidInput, line, name)
	}
	raw := strings.TrimSpace(rec[col])
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %s value %q is not a number", entity.ErrInvalidInput, line, name, raw)
	}
	return v, nil
}
