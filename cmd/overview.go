package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/limnolab/ecoflux/internal/charts"
	"github.com/limnolab/ecoflux/internal/dataset"
)

var (
	overviewBy     string
	overviewOut    string
	overviewFormat string
)

var overviewCmd = &cobra.Command{
	Use:   "overview <csv>",
	Short: "Render the fixed nutrient chart panels",
	Long: `Render the standard nutrient panels: a boxplot of flux_gm2yr by the
group column, a P_conc vs Ca_conc scatter, and a P_conc vs flux_gm2yr
scatter. The group column is restricted to Ecosystem, Season, or none.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := dataset.Load(dataset.Source{Path: args[0]})
		if err != nil {
			return err
		}
		by := overviewBy
		if by == "" && cfg != nil {
			by = cfg.GroupColumn
		}
		if by == "none" {
			by = ""
		}
		out := overviewOut
		if out == "" && cfg != nil {
			out = cfg.ChartsDir
		}
		arts, err := charts.Overview(t, by, out)
		if err != nil {
			return err
		}
		return printArtifacts(cmd, arts, overviewFormat)
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
	overviewCmd.Flags().StringVar(&overviewBy, "by", "", "group column: Ecosystem|Season|none (default from config)")
	overviewCmd.Flags().StringVar(&overviewOut, "out", "", "output directory for PNG files")
	overviewCmd.Flags().StringVar(&overviewFormat, "format", "", "output format: text|yaml")
}

// printArtifacts reports rendered chart files in the requested format.
func printArtifacts(cmd *cobra.Command, arts []charts.Artifact, flagFormat string) error {
	format, err := pickFormat(flagFormat)
	if err != nil {
		return err
	}
	if format == "yaml" {
		b, err := yaml.Marshal(map[string]interface{}{"artifacts": arts})
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		cmd.Print(string(b))
		return nil
	}
	if len(arts) == 0 {
		cmd.Println("(no charts requested)")
		return nil
	}
	for _, a := range arts {
		cmd.Printf("- %s: %s (%s)\n", a.Kind, a.Path, a.Title)
	}
	return nil
}
