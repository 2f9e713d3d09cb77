package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/limnolab/ecoflux/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "ecoflux",
	Short: "Ecoflux: explore ecosystem nutrient-monitoring datasets",
	Long: `Ecoflux is a CLI for working with tabular ecosystem-monitoring data
(ID, Ecosystem, Season, P_conc, Ca_conc, flux_gm2yr): inspect and group the
table, render exploratory boxplots and scatter plots as PNG files, profile
it into a markdown summary, and convert area units.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.ecoflux/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: every command still works on built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = &cfgpkg.Global{ChartsDir: "charts", GroupColumn: "Ecosystem", ExportFormat: "text", SampleRows: 5}
		return
	}
	cfg = c
	if debug {
		fmt.Fprintf(os.Stderr, "config: charts_dir=%s group_column=%s export_format=%s\n",
			cfg.ChartsDir, cfg.GroupColumn, cfg.ExportFormat)
	}
}

// pickFormat resolves an output format from a flag value, falling back to
// the configured default.
func pickFormat(flagVal string) (string, error) {
	f := flagVal
	if f == "" && cfg != nil {
		f = cfg.ExportFormat
	}
	if f == "" {
		f = "text"
	}
	switch f {
	case "text", "yaml":
		return f, nil
	default:
		return "", fmt.Errorf("unsupported --format: %s (use text|yaml)", f)
	}
}
