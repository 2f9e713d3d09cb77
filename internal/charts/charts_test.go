package charts

import (
	"errors"
	"os"
	"path/filepath"
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
	})
	tab, err := dataset.Load(dataset.Source{Frame: &df})
	if err != nil {
		t.Fatalf("load fixture table: %v", err)
	}
	return tab
}

func assertFiles(t *testing.T, arts []Artifact) {
	t.Helper()
	for _, a := range arts {
		if a.ID == "" {
			t.Fatalf("artifact %s has empty ID", a.Path)
		}
		info, err := os.Stat(a.Path)
		if err != nil {
			t.Fatalf("stat %s: %v", a.Path, err)
		}
		if info.Size() == 0 {
			t.Fatalf("artifact %s is empty", a.Path)
		}
		if filepath.Ext(a.Path) != ".png" {
			t.Fatalf("artifact %s is not a PNG", a.Path)
		}
	}
}

func TestOverviewGrouped(t *testing.T) {
	arts, err := Overview(fixtureTable(t), "Ecosystem", t.TempDir())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if len(arts) != 3 {
		t.Fatalf("artifacts = %d, want 3 (boxplot + two scatters)", len(arts))
	}
	if arts[0].Kind != "boxplot" || arts[1].Kind != "scatter" || arts[2].Kind != "scatter" {
		t.Fatalf("unexpected kinds: %s, %s, %s", arts[0].Kind, arts[1].Kind, arts[2].Kind)
	}
	if arts[0].Title != "Flux by Ecosystem" {
		t.Fatalf("boxplot title = %q", arts[0].Title)
	}
	assertFiles(t, arts)
}

func TestOverviewUngrouped(t *testing.T) {
	arts, err := Overview(fixtureTable(t), "", t.TempDir())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if len(arts) != 2 {
		t.Fatalf("artifacts = %d, want 2 scatters without a group column", len(arts))
	}
	assertFiles(t, arts)
}

func TestOverviewRejectsBadGroup(t *testing.T) {
	if _, err := Overview(fixtureTable(t), "P_conc", t.TempDir()); !errors.Is(err, ErrBadGroup) {
		t.Fatalf("Overview by P_conc: got %v, want ErrBadGroup", err)
	}
	if _, err := Overview(fixtureTable(t), "Biome", t.TempDir()); !errors.Is(err, ErrBadGroup) {
		t.Fatalf("Overview by Biome: got %v, want ErrBadGroup", err)
	}
}

func TestRenderBoxplotAndScatter(t *testing.T) {
	arts, err := Render(fixtureTable(t), Options{
		GroupBy:  "Season",
		ValueCol: "Ca_conc",
		ScatterX: "P_conc",
		ScatterY: "Ca_conc",
		OutDir:   t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(arts) != 2 {
		t.Fatalf("artifacts = %d, want 2", len(arts))
	}
	if arts[0].Kind != "boxplot" || arts[1].Kind != "scatter" {
		t.Fatalf("unexpected kinds: %s, %s", arts[0].Kind, arts[1].Kind)
	}
	assertFiles(t, arts)
}

func TestRenderScatterOnly(t *testing.T) {
	arts, err := Render(fixtureTable(t), Options{
		ScatterX: "P_conc",
		ScatterY: "flux_gm2yr",
		OutDir:   t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(arts) != 1 || arts[0].Kind != "scatter" {
		t.Fatalf("unexpected artifacts: %+v", arts)
	}
	assertFiles(t, arts)
}

func TestRenderNothingRequested(t *testing.T) {
	arts, err := Render(fixtureTable(t), Options{OutDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(arts) != 0 {
		t.Fatalf("artifacts = %d, want 0", len(arts))
	}
}

func TestRenderUnknownColumn(t *testing.T) {
	_, err := Render(fixtureTable(t), Options{GroupBy: "Biome", ValueCol: "flux_gm2yr", OutDir: t.TempDir()})
	if !errors.Is(err, dataset.ErrUnknownColumn) {
		t.Fatalf("Render by Biome: got %v, want ErrUnknownColumn", err)
	}
}
