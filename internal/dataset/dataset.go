package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"dq-audit/pkg/utils"
)

// Record is a schema-agnostic row keyed by column name.
type Record map[string]interface{}

// Dataset is a named in-memory table loaded once per run and read-only
// thereafter. Column order follows the source file header.
type Dataset struct {
	Name    string
	Columns []string
	Rows    []Record
}

// LoadCSV reads a whole CSV file into memory, typing each cell with
// utils.ParseValue. Empty cells become nil and count as nulls. A missing,
// unreadable or malformed file is a hard error: the run cannot proceed
// without its input datasets.
func LoadCSV(name, path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", name, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	ds := &Dataset{Name: name, Columns: header}
	for {
		raw, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		// A parse error must not truncate the dataset: every check
		// downstream would run against phantom data.
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		rec := make(Record, len(header))
		for i, col := range header {
			if i < len(raw) {
				rec[col] = utils.ParseValue(raw[i])
			} else {
				rec[col] = nil
			}
		}
		ds.Rows = append(ds.Rows, rec)
	}
	return ds, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.Rows) }

// Resolve finds the actual column name for a case-insensitive lookup.
// Source exports are inconsistent about casing (Total_Revenue vs
// total_revenue), so every check resolves columns through here.
func (d *Dataset) Resolve(name string) (string, bool) {
	for _, col := range d.Columns {
		if strings.EqualFold(col, name) {
			return col, true
		}
	}
	return "", false
}

// Has reports whether the dataset carries the column (case-insensitive).
func (d *Dataset) Has(name string) bool {
	_, ok := d.Resolve(name)
	return ok
}

// NullCount counts nil cells across all columns.
func (d *Dataset) NullCount() int {
	n := 0
	for _, rec := range d.Rows {
		for _, col := range d.Columns {
			if rec[col] == nil {
				n++
			}
		}
	}
	return n
}

// NullCountIn counts nil cells in one column.
func (d *Dataset) NullCountIn(name string) int {
	col, ok := d.Resolve(name)
	if !ok {
		return 0
	}
	n := 0
	for _, rec := range d.Rows {
		if rec[col] == nil {
			n++
		}
	}
	return n
}

// Floats returns the non-null numeric values of a column in row order.
func (d *Dataset) Floats(name string) []float64 {
	col, ok := d.Resolve(name)
	if !ok {
		return nil
	}
	vals := make([]float64, 0, len(d.Rows))
	for _, rec := range d.Rows {
		if v := rec[col]; v != nil && utils.IsNumeric(v) {
			vals = append(vals, utils.Numeric(v))
		}
	}
	return vals
}

// Sum totals the non-null numeric values of a column.
func (d *Dataset) Sum(name string) float64 {
	total := 0.0
	for _, v := range d.Floats(name) {
		total += v
	}
	return total
}

// DuplicateCount counts rows whose column value was already seen.
func (d *Dataset) DuplicateCount(name string) int {
	col, ok := d.Resolve(name)
	if !ok {
		return 0
	}
	seen := make(map[string]bool, len(d.Rows))
	dups := 0
	for _, rec := range d.Rows {
		key := fmt.Sprintf("%v", rec[col])
		if seen[key] {
			dups++
		}
		seen[key] = true
	}
	return dups
}

// DistinctCount counts distinct non-null values in a column.
func (d *Dataset) DistinctCount(name string) int {
	col, ok := d.Resolve(name)
	if !ok {
		return 0
	}
	seen := make(map[string]bool, len(d.Rows))
	for _, rec := range d.Rows {
		if rec[col] == nil {
			continue
		}
		seen[fmt.Sprintf("%v", rec[col])] = true
	}
	return len(seen)
}

// MinMaxString returns the lexicographic min and max of a column rendered
// as strings. ISO dates sort correctly this way.
func (d *Dataset) MinMaxString(name string) (string, string) {
	col, ok := d.Resolve(name)
	if !ok {
		return "", ""
	}
	var min, max string
	for _, rec := range d.Rows {
		if rec[col] == nil {
			continue
		}
		s := fmt.Sprintf("%v", rec[col])
		if min == "" || s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	return min, max
}

// CountWhere counts rows matching a predicate.
func (d *Dataset) CountWhere(fn func(Record) bool) int {
	n := 0
	for _, rec := range d.Rows {
		if fn(rec) {
			n++
		}
	}
	return n
}

// Float reads a numeric cell from a record, resolving the column name
// case-insensitively against this dataset.
func (d *Dataset) Float(rec Record, name string) (float64, bool) {
	col, ok := d.Resolve(name)
	if !ok {
		return 0, false
	}
	v := rec[col]
	if v == nil || !utils.IsNumeric(v) {
		return 0, false
	}
	return utils.Numeric(v), true
}
