package cmd

import (
	"github.com/spf13/cobra"

	"github.com/limnolab/ecoflux/internal/charts"
	"github.com/limnolab/ecoflux/internal/dataset"
)

var (
	plotBy     string
	plotValue  string
	plotX      string
	plotY      string
	plotOut    string
	plotFormat string
)

var plotCmd = &cobra.Command{
	Use:   "plot <csv>",
	Short: "Render charts with caller-selected columns",
	Long: `Render exploratory charts as PNG files. With --by and --value a boxplot
of the value column partitioned by the group column is produced; with --x
and --y a scatter plot of those two columns (colored by --by when given).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := dataset.Load(dataset.Source{Path: args[0]})
		if err != nil {
			return err
		}
		opts := charts.Options{
			GroupBy:  plotBy,
			ValueCol: plotValue,
			ScatterX: plotX,
			ScatterY: plotY,
			OutDir:   plotOut,
		}
		if cfg != nil {
			if opts.OutDir == "" {
				opts.OutDir = cfg.ChartsDir
			}
			opts.WidthIn = cfg.ChartWidthIn
			opts.HeightIn = cfg.ChartHeightIn
		}
		arts, err := charts.Render(t, opts)
		if err != nil {
			return err
		}
		return printArtifacts(cmd, arts, plotFormat)
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringVar(&plotBy, "by", "", "group column for boxplot boxes and scatter colors")
	plotCmd.Flags().StringVar(&plotValue, "value", "", "boxplot value column (requires --by)")
	plotCmd.Flags().StringVar(&plotX, "x", "", "scatter x column")
	plotCmd.Flags().StringVar(&plotY, "y", "", "scatter y column")
	plotCmd.Flags().StringVar(&plotOut, "out", "", "output directory for PNG files")
	plotCmd.Flags().StringVar(&plotFormat, "format", "", "output format: text|yaml")
}
