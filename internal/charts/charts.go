// Package charts renders exploratory PNG charts (boxplots and scatter
// plots) from a loaded dataset. Rendering writes files into an output
// directory and returns artifact descriptors, so callers and tests never
// need a display backend.
package charts

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/limnolab/ecoflux/internal/dataset"
)

// ErrBadGroup indicates a group column outside the fixed overview set.
var ErrBadGroup = errors.New(`group_by must be "Ecosystem", "Season", or empty`)

// Artifact describes one rendered chart file.
type Artifact struct {
	ID    string `yaml:"id"`
	Kind  string `yaml:"kind"` // "boxplot" or "scatter"
	Path  string `yaml:"path"`
	Title string `yaml:"title"`
}

// Options selects which charts Render produces and where they go.
type Options struct {
	// GroupBy partitions boxplot boxes and colors scatter points.
	GroupBy string
	// ValueCol is the boxplot value column; a boxplot is rendered only
	// when both GroupBy and ValueCol are set.
	ValueCol string
	// ScatterX/ScatterY select the scatter plot axes; a scatter is
	// rendered only when both are set.
	ScatterX string
	ScatterY string
	// OutDir receives the PNG files. Created if missing.
	OutDir string
	// Chart size in inches. Zero values fall back to 8x5 for boxplots
	// and 7x6 for scatter plots, matching the usual exploratory sizes.
	WidthIn  float64
	HeightIn float64
}

// Render produces charts with caller-selected columns: one boxplot when
// GroupBy and ValueCol are both set, and one scatter plot when ScatterX
// and ScatterY are both set (colored by GroupBy when given). Column names
// that do not exist in the table fail with dataset.ErrUnknownColumn.
func Render(t *dataset.Table, opts Options) ([]Artifact, error) {
	for _, col := range []string{opts.GroupBy, opts.ValueCol, opts.ScatterX, opts.ScatterY} {
		if col != "" && !t.HasColumn(col) {
			return nil, fmt.Errorf("%w: %q", dataset.ErrUnknownColumn, col)
		}
	}
	if err := ensureDir(opts.OutDir); err != nil {
		return nil, err
	}

	var arts []Artifact
	if opts.GroupBy != "" && opts.ValueCol != "" {
		title := fmt.Sprintf("%s by %s", opts.ValueCol, opts.GroupBy)
		a, err := boxplot(t, opts.ValueCol, opts.GroupBy, title, opts.ValueCol, opts)
		if err != nil {
			return nil, err
		}
		arts = append(arts, a)
	}
	if opts.ScatterX != "" && opts.ScatterY != "" {
		title := fmt.Sprintf("%s vs %s", opts.ScatterY, opts.ScatterX)
		a, err := scatter(t, opts.ScatterX, opts.ScatterY, opts.GroupBy, title, opts.ScatterX, opts.ScatterY, opts)
		if err != nil {
			return nil, err
		}
		arts = append(arts, a)
	}
	return arts, nil
}

// Overview renders the fixed nutrient panels: a boxplot of flux_gm2yr by
// the group column (when given), a P_conc vs Ca_conc scatter, and a
// P_conc vs flux_gm2yr scatter. groupBy is restricted to "Ecosystem",
// "Season", or empty.
func Overview(t *dataset.Table, groupBy, outDir string) ([]Artifact, error) {
	if groupBy != "" && groupBy != "Ecosystem" && groupBy != "Season" {
		return nil, fmt.Errorf("%w, got %q", ErrBadGroup, groupBy)
	}
	if err := ensureDir(outDir); err != nil {
		return nil, err
	}
	opts := Options{GroupBy: groupBy, OutDir: outDir}

	var arts []Artifact
	if groupBy != "" {
		a, err := boxplot(t, "flux_gm2yr", groupBy, "Flux by "+groupBy, "Flux (g/m2/yr)", opts)
		if err != nil {
			return nil, err
		}
		arts = append(arts, a)
	}

	suffix := ""
	if groupBy != "" {
		suffix = " by " + groupBy
	}
	a, err := scatter(t, "P_conc", "Ca_conc", groupBy,
		"P vs Ca Concentration"+suffix, "P concentration", "Ca concentration", opts)
	if err != nil {
		return nil, err
	}
	arts = append(arts, a)

	a, err = scatter(t, "P_conc", "flux_gm2yr", groupBy,
		"Flux vs P Concentration"+suffix, "P concentration", "Flux (g/m2/yr)", opts)
	if err != nil {
		return nil, err
	}
	return append(arts, a), nil
}

func boxplot(t *dataset.Table, valueCol, groupBy, title, yLabel string, opts Options) (Artifact, error) {
	parts, err := t.GroupBy(groupBy)
	if err != nil {
		return Artifact{}, err
	}
	if !t.HasColumn(valueCol) {
		return Artifact{}, fmt.Errorf("%w: %q", dataset.ErrUnknownColumn, valueCol)
	}
	keys := sortedKeys(parts)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = groupBy
	p.Y.Label.Text = yLabel
	for i, key := range keys {
		sub := parts[key]
		vals := plotter.Values(finite(sub.Col(valueCol).Float()))
		box, err := plotter.NewBoxPlot(vg.Points(30), float64(i), vals)
		if err != nil {
			return Artifact{}, fmt.Errorf("boxplot %s=%s: %w", groupBy, key, err)
		}
		p.Add(box)
	}
	p.NominalX(keys...)

	path := filepath.Join(opts.OutDir, fmt.Sprintf("boxplot_%s_by_%s.png", valueCol, groupBy))
	if err := p.Save(size(opts.WidthIn, 8), size(opts.HeightIn, 5), path); err != nil {
		return Artifact{}, fmt.Errorf("save boxplot: %w", err)
	}
	return Artifact{ID: uuid.NewString(), Kind: "boxplot", Path: path, Title: p.Title.Text}, nil
}

func scatter(t *dataset.Table, xCol, yCol, groupBy, title, xLabel, yLabel string, opts Options) (Artifact, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	if groupBy != "" {
		parts, err := t.GroupBy(groupBy)
		if err != nil {
			return Artifact{}, err
		}
		for i, key := range sortedKeys(parts) {
			sub := parts[key]
			sc, err := plotter.NewScatter(pairs(sub.Col(xCol).Float(), sub.Col(yCol).Float()))
			if err != nil {
				return Artifact{}, fmt.Errorf("scatter %s=%s: %w", groupBy, key, err)
			}
			sc.GlyphStyle.Color = plotutil.Color(i)
			sc.GlyphStyle.Radius = vg.Points(3)
			p.Add(sc)
			p.Legend.Add(key, sc)
		}
		p.Legend.Top = true
	} else {
		xs, err := t.FloatColumn(xCol)
		if err != nil {
			return Artifact{}, err
		}
		ys, err := t.FloatColumn(yCol)
		if err != nil {
			return Artifact{}, err
		}
		sc, err := plotter.NewScatter(pairs(xs, ys))
		if err != nil {
			return Artifact{}, fmt.Errorf("scatter: %w", err)
		}
		sc.GlyphStyle.Color = plotutil.Color(0)
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
	}

	path := filepath.Join(opts.OutDir, fmt.Sprintf("scatter_%s_vs_%s.png", yCol, xCol))
	if err := p.Save(size(opts.WidthIn, 7), size(opts.HeightIn, 6), path); err != nil {
		return Artifact{}, fmt.Errorf("save scatter: %w", err)
	}
	return Artifact{ID: uuid.NewString(), Kind: "scatter", Path: path, Title: title}, nil
}

// pairs zips two columns into XY points, skipping rows where either side
// failed numeric parsing.
func pairs(xs, ys []float64) plotter.XYs {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	pts := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	return pts
}

func finite(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func size(in, fallback float64) vg.Length {
	if in <= 0 {
		in = fallback
	}
	return vg.Length(in) * vg.Inch
}

func ensureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir charts dir: %w", err)
	}
	return nil
}
