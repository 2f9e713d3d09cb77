package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/limnolab/ecoflux/internal/analysis"
	"github.com/limnolab/ecoflux/internal/dataset"
)

var (
	sumBy       string
	sumRows     int
	sumCorr     bool
	sumOutliers bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <csv>",
	Short: "Profile a dataset into a markdown summary report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := dataset.Load(dataset.Source{Path: args[0]})
		if err != nil {
			return err
		}
		opt := analysis.DefaultOptions()
		opt.GroupBy = sumBy
		if cmd.Flags().Changed("rows") {
			opt.SampleRows = sumRows
		} else if cfg != nil && cfg.SampleRows > 0 {
			opt.SampleRows = cfg.SampleRows
		}
		opt.Correlations = sumCorr || (cfg != nil && cfg.Correlations)
		opt.Outliers = sumOutliers || (cfg != nil && cfg.Outliers)

		rep, err := analysis.Summarize(t, opt)
		if err != nil {
			return err
		}
		rep.Name = filepath.Base(args[0])
		cmd.Print(rep.Markdown())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().StringVar(&sumBy, "by", "", "column for per-group numeric summaries")
	summarizeCmd.Flags().IntVar(&sumRows, "rows", 5, "number of sample rows in the report")
	summarizeCmd.Flags().BoolVar(&sumCorr, "correlations", false, "include Pearson correlations among numeric columns")
	summarizeCmd.Flags().BoolVar(&sumOutliers, "outliers", false, "count robust-z outliers per numeric column")
}
