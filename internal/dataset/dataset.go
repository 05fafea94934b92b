// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset reads borehole log files into a validated Dataset.
// CSV and XLSX sources are supported; columns may use English snake_case
// names or the Chinese headers written by logging tools.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx"

	"github.com/pdiddy/coalseam/pkg/types"
)

var (
	// ErrMissingField reports that one or more required columns are absent.
	ErrMissingField = errors.New("missing required field")

	// ErrUnsupportedFormat reports a file extension the loader cannot read.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

type field int

const (
	fieldDepth field = iota
	fieldDeep
	fieldShallow
	fieldSonic
	fieldGamma
	fieldDensity
	fieldPH
)

// requiredFields lists the canonical names of the six mandatory columns, in
// the order they are reported when missing.
var requiredFields = []struct {
	f    field
	name string
}{
	{fieldDepth, "depth"},
	{fieldDeep, "deep_lateral_resistivity"},
	{fieldShallow, "shallow_lateral_resistivity"},
	{fieldSonic, "sonic_interval"},
	{fieldGamma, "natural_gamma"},
	{fieldDensity, "density"},
}

// columnAliases maps normalized header text to a field.
var columnAliases = map[string]field{
	"depth":                       fieldDepth,
	"深度":                          fieldDepth,
	"deep_lateral_resistivity":    fieldDeep,
	"deep_resistivity":            fieldDeep,
	"深侧向":                         fieldDeep,
	"shallow_lateral_resistivity": fieldShallow,
	"shallow_resistivity":         fieldShallow,
	"浅侧向":                         fieldShallow,
	"sonic_interval":              fieldSonic,
	"声波时差":                        fieldSonic,
	"natural_gamma":               fieldGamma,
	"gamma":                       fieldGamma,
	"自然伽玛":                        fieldGamma,
	"density":                     fieldDensity,
	"密度":                          fieldDensity,
	"ph":                          fieldPH,
	"ph值":                         fieldPH,
}

// Load reads a dataset from a .csv or .xlsx file.
func Load(path string) (*types.Dataset, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening dataset: %w", err)
		}
		defer f.Close()
		return ReadCSV(f, path)
	case ".xlsx":
		return readXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %q (use .csv or .xlsx)", ErrUnsupportedFormat, ext)
	}
}

// ReadCSV parses CSV content whose first record is the header row.
func ReadCSV(r io.Reader, source string) (*types.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV %s: %w", source, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reading CSV %s: %w: file is empty", source, ErrMissingField)
	}
	return parseRecords(records[0], records[1:], source)
}

func readXLSX(path string) (*types.Dataset, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening xlsx file: %w", err)
	}
	if len(f.Sheets) == 0 {
		return nil, fmt.Errorf("reading xlsx %s: no sheets", path)
	}

	var records [][]string
	for _, row := range f.Sheets[0].Rows {
		if row == nil {
			continue
		}
		rec := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			if cell != nil {
				rec[i] = cell.Value
			}
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reading xlsx %s: %w: sheet is empty", path, ErrMissingField)
	}
	return parseRecords(records[0], records[1:], path)
}

// normalizeHeader lowercases a header and folds spaces and hyphens to underscores.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

// resolveColumns maps fields to column indexes and reports missing required fields.
func resolveColumns(header []string) (map[field]int, error) {
	cols := make(map[field]int)
	for i, h := range header {
		f, ok := columnAliases[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, dup := cols[f]; !dup {
			cols[f] = i
		}
	}

	var missing []string
	for _, rf := range requiredFields {
		if _, ok := cols[rf.f]; !ok {
			missing = append(missing, rf.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRecords(header []string, rows [][]string, source string) (*types.Dataset, error) {
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}
	phCol, hasPH := cols[fieldPH]

	ds := &types.Dataset{Source: source, HasPH: hasPH}
	for i, rec := range rows {
		if blankRecord(rec) {
			continue
		}
		line := i + 2 // 1-based, after the header

		var vals [6]float64
		for j, rf := range requiredFields {
			v, err := parseCell(rec, cols[rf.f])
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", line, rf.name, err)
			}
			vals[j] = v
		}
		s := types.LogSample{
			Depth:              vals[0],
			DeepResistivity:    vals[1],
			ShallowResistivity: vals[2],
			SonicInterval:      vals[3],
			NaturalGamma:       vals[4],
			Density:            vals[5],
		}
		if hasPH && phCol < len(rec) && strings.TrimSpace(rec[phCol]) != "" {
			ph, err := parseCell(rec, phCol)
			if err != nil {
				return nil, fmt.Errorf("row %d column ph: %w", line, err)
			}
			s.PH = &ph
		}
		ds.Samples = append(ds.Samples, s)
	}

	sort.SliceStable(ds.Samples, func(a, b int) bool {
		return ds.Samples[a].Depth < ds.Samples[b].Depth
	})
	return ds, nil
}

func parseCell(rec []string, idx int) (float64, error) {
	if idx >= len(rec) {
		return 0, fmt.Errorf("value is empty")
	}
	raw := strings.TrimSpace(rec[idx])
	if raw == "" {
		return 0, fmt.Errorf("value is empty")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric value %q", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", raw)
	}
	return v, nil
}

func blankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
