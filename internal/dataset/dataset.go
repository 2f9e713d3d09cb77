// Package dataset loads the ecosystem-monitoring table and partitions it
// by its categorical columns.
//
// The expected columns are ID, Ecosystem, Season, P_conc, Ca_conc and
// flux_gm2yr, but only Ecosystem and Season receive special treatment:
// when present they are coerced to categorical form, i.e. the table
// records their finite set of observed labels.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ErrNoSource indicates that neither a CSV path nor an in-memory frame was
// supplied.
var ErrNoSource = errors.New("provide either a CSV path or a data frame")

// ErrUnknownColumn indicates a column name that does not exist in the table.
var ErrUnknownColumn = errors.New("unknown column")

// CategoricalColumns are coerced to categorical form on load when present.
var CategoricalColumns = []string{"Ecosystem", "Season"}

// Source identifies where a table comes from: a CSV file on disk or a
// frame already in memory. Exactly one must be usable; Frame wins when
// both are set.
type Source struct {
	Path  string
	Frame *dataframe.DataFrame
}

// Table is a loaded dataset with categorical coercion applied.
// Levels maps each coerced column to its sorted distinct observed values.
type Table struct {
	Frame  dataframe.DataFrame
	Levels map[string][]string
}

// Load reads the table from src and coerces the known categorical columns.
// It fails with ErrNoSource when src carries neither a path nor a frame.
func Load(src Source) (*Table, error) {
	var df dataframe.DataFrame
	switch {
	case src.Frame != nil:
		df = *src.Frame
	case src.Path != "":
		f, err := os.Open(src.Path)
		if err != nil {
			return nil, fmt.Errorf("open csv: %w", err)
		}
		defer f.Close()
		df = dataframe.ReadCSV(f)
		if df.Err != nil {
			return nil, fmt.Errorf("read csv %s: %w", src.Path, df.Err)
		}
	default:
		return nil, ErrNoSource
	}

	t := &Table{Frame: df, Levels: map[string][]string{}}
	for _, col := range CategoricalColumns {
		if !t.HasColumn(col) {
			continue
		}
		t.Levels[col] = distinct(df.Col(col).Records())
	}
	return t, nil
}

// Group loads the table from src and, when groupBy is non-empty,
// partitions its rows by the distinct observed values of that column.
// With an empty groupBy only the coerced table is returned.
func Group(src Source, groupBy string) (*Table, map[string]dataframe.DataFrame, error) {
	t, err := Load(src)
	if err != nil {
		return nil, nil, err
	}
	if groupBy == "" {
		return t, nil, nil
	}
	parts, err := t.GroupBy(groupBy)
	if err != nil {
		return nil, nil, err
	}
	return t, parts, nil
}

// GroupBy partitions the table's rows by the distinct observed values of
// col, returning a materialized mapping from value to row subset. Every
// row lands in exactly one partition; only observed values appear as keys,
// not the full categorical domain.
func (t *Table) GroupBy(col string) (map[string]dataframe.DataFrame, error) {
	if !t.HasColumn(col) {
		return nil, fmt.Errorf("%w: group_by must be a column in the table, got %q", ErrUnknownColumn, col)
	}
	parts := make(map[string]dataframe.DataFrame)
	for _, key := range distinct(t.Frame.Col(col).Records()) {
		sub := t.Frame.Filter(dataframe.F{
			Colname:    col,
			Comparator: series.Eq,
			Comparando: key,
		})
		if sub.Err != nil {
			return nil, fmt.Errorf("partition %s=%s: %w", col, key, sub.Err)
		}
		parts[key] = sub
	}
	return parts, nil
}

// HasColumn reports whether the table has a column named name.
func (t *Table) HasColumn(name string) bool {
	for _, n := range t.Frame.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Columns returns the table's column names in order.
func (t *Table) Columns() []string { return t.Frame.Names() }

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return t.Frame.Nrow() }

// IsCategorical reports whether col was coerced to categorical on load.
func (t *Table) IsCategorical(col string) bool {
	_, ok := t.Levels[col]
	return ok
}

// FloatColumn returns col as float64 values. Non-numeric cells come back
// as NaN, matching gota's parsing behavior.
func (t *Table) FloatColumn(col string) ([]float64, error) {
	if !t.HasColumn(col) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}
	return t.Frame.Col(col).Float(), nil
}

// distinct returns the sorted unique values of vals.
func distinct(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	var out []string
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
