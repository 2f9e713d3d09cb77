package analysis

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"

	"github.com/limnolab/ecoflux/internal/dataset"
)

func fixtureTable(t *testing.T) *dataset.Table {
	t.Helper()
	df := dataframe.LoadRecords([][]string{
		{"ID", "Ecosystem", "Season", "P_conc", "Ca_conc", "flux_gm2yr"},
		{"1", "Forest", "Spring", "0.52", "3.1", "12.4"},
		{"2", "Forest", "Summer", "0.61", "3.4", "13.1"},
		{"3", "Wetland", "Spring", "1.10", "5.2", "25.7"},
		{"4", "Wetland", "Autumn", "1.25", "5.8", "27.3"},
		{"5", "Grassland", "Summer", "0.33", "2.2", "8.9"},
		{"6", "Grassland", "Autumn", "0.40", "2.5", "9.6"},
		{"7", "Forest", "Autumn", "0.58", "3.2", "12.9"},
		{"8", "Wetland", "Summer", "1.18", "5.5", "26.4"},
	})
	tab, err := dataset.Load(dataset.Source{Frame: &df})
	if err != nil {
		t.Fatalf("load fixture table: %v", err)
	}
	return tab
}

func TestSummarizeAndMarkdown(t *testing.T) {
	opt := DefaultOptions()
	opt.GroupBy = "Ecosystem"
	opt.Correlations = true
	opt.SampleRows = 3

	rep, err := Summarize(fixtureTable(t), opt)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	rep.Name = "monitoring.csv"

	if rep.Rows != 8 {
		t.Fatalf("Rows = %d, want 8", rep.Rows)
	}
	if len(rep.Cols) != 6 {
		t.Fatalf("Cols = %d, want 6", len(rep.Cols))
	}
	if len(rep.Groups) != 3 {
		t.Fatalf("Groups = %d, want 3", len(rep.Groups))
	}
	// Wetland and Forest both have 3 rows; sorted by size then key.
	if rep.Groups[0].Key != "Forest" || rep.Groups[0].Size != 3 {
		t.Fatalf("first group = %s (n=%d), want Forest (n=3)", rep.Groups[0].Key, rep.Groups[0].Size)
	}
	if len(rep.Corr) == 0 {
		t.Fatal("expected correlation pairs")
	}

	md := rep.Markdown()
	if !strings.Contains(md, "[DATASET SUMMARY]") || !strings.Contains(md, "File: monitoring.csv") {
		t.Fatalf("markdown missing summary header: %s", md)
	}
	if !strings.Contains(md, "Rows: 8") {
		t.Fatalf("markdown missing row count: %s", md)
	}
	if !strings.Contains(md, "- Ecosystem: categorical") {
		t.Fatalf("markdown missing categorical schema line: %s", md)
	}
	if !strings.Contains(md, "Forest(3)") {
		t.Fatalf("markdown missing level counts: %s", md)
	}
	if !strings.Contains(md, "- flux_gm2yr: numeric") {
		t.Fatalf("markdown missing numeric schema line: %s", md)
	}
	if !strings.Contains(md, "[GROUP-BY SUMMARY]") || !strings.Contains(md, "- Forest (n=3)") {
		t.Fatalf("markdown missing group summary: %s", md)
	}
	if !strings.Contains(md, "[CORRELATIONS]") || !strings.Contains(md, "P_conc ~ Ca_conc") {
		t.Fatalf("markdown missing correlations: %s", md)
	}
	if !strings.Contains(md, "[SAMPLE ROWS]") {
		t.Fatalf("markdown missing sample rows: %s", md)
	}
}

func TestSummarizeOutliers(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"ID", "P_conc"},
		{"1", "0.50"}, {"2", "0.52"}, {"3", "0.49"}, {"4", "0.51"},
		{"5", "0.50"}, {"6", "0.53"}, {"7", "0.48"}, {"8", "0.52"},
		{"9", "9.99"},
	})
	tab, err := dataset.Load(dataset.Source{Frame: &df})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	opt := DefaultOptions()
	opt.Outliers = true
	rep, err := Summarize(tab, opt)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	var pcol *ColumnSummary
	for i := range rep.Cols {
		if rep.Cols[i].Name == "P_conc" {
			pcol = &rep.Cols[i]
		}
	}
	if pcol == nil {
		t.Fatal("P_conc column missing from report")
	}
	if pcol.OutliersCount != 1 {
		t.Fatalf("OutliersCount = %d, want 1", pcol.OutliersCount)
	}
	if !strings.Contains(rep.Markdown(), "outliers: 1 above |z|>3.5") {
		t.Fatalf("markdown missing outlier note: %s", rep.Markdown())
	}
}

func TestSummarizeUnknownGroup(t *testing.T) {
	opt := DefaultOptions()
	opt.GroupBy = "Biome"
	if _, err := Summarize(fixtureTable(t), opt); !errors.Is(err, dataset.ErrUnknownColumn) {
		t.Fatalf("Summarize by Biome: got %v, want ErrUnknownColumn", err)
	}
}
