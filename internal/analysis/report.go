// Package analysis profiles a loaded dataset into a compact markdown
// report: column kinds and statistics, per-group summaries, and Pearson
// correlations among numeric columns.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"

	"github.com/limnolab/ecoflux/internal/dataset"
)

// Options controls what Summarize computes.
type Options struct {
	// GroupBy computes per-group numeric summaries for this column.
	GroupBy string
	// SampleRows determines how many example rows the report includes.
	SampleRows int
	// Correlations computes Pearson correlations among numeric columns.
	Correlations bool
	// Outliers counts robust-z (MAD) outliers per numeric column.
	Outliers         bool
	OutlierThreshold float64
}

// DefaultOptions returns reasonable defaults for dataset profiling.
func DefaultOptions() Options {
	return Options{SampleRows: 5, OutlierThreshold: 3.5}
}

// Report is a markdown-friendly profile of a dataset.
type Report struct {
	Name    string
	Rows    int
	Cols    []ColumnSummary
	Samples [][]string
	Groups  []GroupResult
	Corr    []PairCorr
}

// ColumnSummary captures the inferred kind and statistics of one column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|categorical|text
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min  float64
	Max  float64
	Mean float64
	Std  float64
	// Outliers (robust Z via MAD)
	OutliersCount    int
	OutlierThreshold float64
	// Categorical level counts
	Levels []LevelCount
}

// LevelCount is one observed categorical value and its frequency.
type LevelCount struct {
	Value string
	Count int
}

// GroupResult holds per-group numeric summaries.
type GroupResult struct {
	Key     string
	Size    int
	Metrics map[string]NumSummary
}

// NumSummary is a compact numeric aggregate.
type NumSummary struct {
	Count          int
	Min, Max, Mean float64
}

// PairCorr is a correlation between two numeric columns.
type PairCorr struct {
	A, B string
	R    float64
}

// Summarize profiles t. A non-empty GroupBy that is not a table column
// fails with dataset.ErrUnknownColumn.
func Summarize(t *dataset.Table, opts Options) (*Report, error) {
	rep := &Report{Rows: t.NumRows()}
	sampleRows := opts.SampleRows
	if sampleRows <= 0 {
		sampleRows = 5
	}

	names := t.Frame.Names()
	types := t.Frame.Types()
	numeric := map[string][]float64{} // finite values only, per numeric column
	var numericNames []string

	for i, name := range names {
		col := t.Frame.Col(name)
		recs := col.Records()
		s := ColumnSummary{Name: name}
		for _, r := range recs {
			if r == "" || r == "NaN" {
				s.Missing++
			} else {
				s.NonNull++
			}
		}

		switch types[i] {
		case series.Float, series.Int:
			s.Kind = "numeric"
			vals := finite(col.Float())
			if len(vals) > 0 {
				s.Min, s.Max = minMax(vals)
				s.Mean = stat.Mean(vals, nil)
				if len(vals) > 1 {
					s.Std = stat.StdDev(vals, nil)
				}
			}
			if opts.Outliers {
				thr := opts.OutlierThreshold
				if thr <= 0 {
					thr = 3.5
				}
				s.OutlierThreshold = thr
				s.OutliersCount = robustOutliers(vals, thr)
			}
			numeric[name] = vals
			numericNames = append(numericNames, name)
		default:
			s.Unique = countUnique(recs)
			// Coerced columns are categorical by construction; other
			// string columns qualify only at low cardinality.
			if t.IsCategorical(name) || (s.Unique > 0 && s.Unique <= 12) {
				s.Kind = "categorical"
				s.Levels = levelCounts(recs)
			} else {
				s.Kind = "text"
			}
		}
		rep.Cols = append(rep.Cols, s)
	}

	// Sample rows (Records includes the header row).
	all := t.Frame.Records()
	for i := 1; i < len(all) && i <= sampleRows; i++ {
		rep.Samples = append(rep.Samples, all[i])
	}

	if opts.GroupBy != "" {
		parts, err := t.GroupBy(opts.GroupBy)
		if err != nil {
			return nil, err
		}
		for key, sub := range parts {
			gr := GroupResult{Key: key, Size: sub.Nrow(), Metrics: map[string]NumSummary{}}
			for _, name := range numericNames {
				vals := finite(sub.Col(name).Float())
				if len(vals) == 0 {
					continue
				}
				mn, mx := minMax(vals)
				gr.Metrics[name] = NumSummary{Count: len(vals), Min: mn, Max: mx, Mean: stat.Mean(vals, nil)}
			}
			rep.Groups = append(rep.Groups, gr)
		}
		sort.Slice(rep.Groups, func(i, j int) bool {
			if rep.Groups[i].Size == rep.Groups[j].Size {
				return rep.Groups[i].Key < rep.Groups[j].Key
			}
			return rep.Groups[i].Size > rep.Groups[j].Size
		})
	}

	if opts.Correlations && len(numericNames) >= 2 {
		for i := 0; i < len(numericNames); i++ {
			for j := i + 1; j < len(numericNames); j++ {
				a, b := numericNames[i], numericNames[j]
				xs, ys := alignedPairs(t, a, b)
				if len(xs) < 2 {
					continue
				}
				r := stat.Correlation(xs, ys, nil)
				if math.IsNaN(r) || math.IsInf(r, 0) {
					continue
				}
				rep.Corr = append(rep.Corr, PairCorr{A: a, B: b, R: r})
			}
		}
		sort.Slice(rep.Corr, func(i, j int) bool {
			ai, aj := math.Abs(rep.Corr[i].R), math.Abs(rep.Corr[j].R)
			if ai == aj {
				return rep.Corr[i].A+rep.Corr[i].B < rep.Corr[j].A+rep.Corr[j].B
			}
			return ai > aj
		})
	}

	return rep, nil
}

// Markdown renders the report for terminals or docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", c.Name, c.Kind, c.NonNull, missPct))
		switch c.Kind {
		case "numeric":
			b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
			if c.OutlierThreshold > 0 {
				b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f", c.OutliersCount, c.OutlierThreshold))
			}
		case "categorical":
			if len(c.Levels) > 0 {
				b.WriteString(" — levels: ")
				for i, lv := range c.Levels {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", lv.Value, lv.Count))
				}
			}
		}
		b.WriteString("\n")
	}

	if len(r.Groups) > 0 {
		b.WriteString("\n[GROUP-BY SUMMARY]\n")
		for _, g := range r.Groups {
			b.WriteString(fmt.Sprintf("- %s (n=%d)\n", g.Key, g.Size))
			keys := make([]string, 0, len(g.Metrics))
			for k := range g.Metrics {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				m := g.Metrics[k]
				b.WriteString(fmt.Sprintf("  • %s: mean %.4g (min %.4g, max %.4g)\n", k, m.Mean, m.Min, m.Max))
			}
		}
	}

	if len(r.Corr) > 0 {
		b.WriteString("\n[CORRELATIONS]\n")
		for _, p := range r.Corr {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
		}
	}

	if len(r.Samples) > 0 {
		b.WriteString("\n[SAMPLE ROWS]\n")
		b.WriteString("| ")
		for i, c := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(c.Name)
		}
		b.WriteString(" |\n| ")
		for i := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, row := range r.Samples {
			b.WriteString("| ")
			for i := range r.Cols {
				if i > 0 {
					b.WriteString(" | ")
				}
				if i < len(row) {
					b.WriteString(row[i])
				}
			}
			b.WriteString(" |\n")
		}
	}
	return b.String()
}

// alignedPairs returns the rows of columns a and b where both parsed as
// finite numbers, keeping the two slices index-aligned.
func alignedPairs(t *dataset.Table, a, b string) (xs, ys []float64) {
	av := t.Frame.Col(a).Float()
	bv := t.Frame.Col(b).Float()
	n := len(av)
	if len(bv) < n {
		n = len(bv)
	}
	for i := 0; i < n; i++ {
		if math.IsNaN(av[i]) || math.IsNaN(bv[i]) {
			continue
		}
		xs = append(xs, av[i])
		ys = append(ys, bv[i])
	}
	return xs, ys
}

// robustOutliers counts values whose modified z-score (0.6745*(x-med)/MAD)
// exceeds thr in absolute value.
func robustOutliers(vals []float64, thr float64) int {
	if len(vals) < 8 {
		return 0
	}
	cp := append([]float64(nil), vals...)
	sort.Float64s(cp)
	median := stat.Quantile(0.5, stat.Empirical, cp, nil)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad := stat.Quantile(0.5, stat.Empirical, dev, nil)
	if mad == 0 {
		return 0
	}
	var cnt int
	for _, v := range vals {
		if math.Abs(0.6745*(v-median)/mad) > thr {
			cnt++
		}
	}
	return cnt
}

func finite(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

func minMax(vals []float64) (mn, mx float64) {
	mn, mx = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	return mn, mx
}

func countUnique(recs []string) int {
	seen := map[string]struct{}{}
	for _, r := range recs {
		if r == "" || r == "NaN" {
			continue
		}
		seen[r] = struct{}{}
	}
	return len(seen)
}

func levelCounts(recs []string) []LevelCount {
	counts := map[string]int{}
	for _, r := range recs {
		if r == "" || r == "NaN" {
			continue
		}
		counts[r]++
	}
	out := make([]LevelCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, LevelCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	return out
}
