package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/limnolab/ecoflux/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set ecoflux configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			cmd.Println("No config loaded")
			return nil
		}
		cmd.Printf("charts_dir: %s\n", cfg.ChartsDir)
		cmd.Printf("group_column: %s\n", cfg.GroupColumn)
		cmd.Printf("export_format: %s\n", cfg.ExportFormat)
		if cfg.ChartWidthIn > 0 {
			cmd.Printf("chart_width_in: %.1f\n", cfg.ChartWidthIn)
		}
		if cfg.ChartHeightIn > 0 {
			cmd.Printf("chart_height_in: %.1f\n", cfg.ChartHeightIn)
		}
		cmd.Printf("sample_rows: %d\n", cfg.SampleRows)
		cmd.Printf("correlations: %v\n", cfg.Correlations)
		cmd.Printf("outliers: %v\n", cfg.Outliers)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "charts_dir":
			cfg.ChartsDir = val
		case "group_column":
			cfg.GroupColumn = val
		case "export_format":
			switch val {
			case "text", "yaml":
				cfg.ExportFormat = val
			default:
				return fmt.Errorf("invalid export_format: %s (use text or yaml)", val)
			}
		case "chart_width_in":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 0 {
				return fmt.Errorf("invalid float for chart_width_in: %v", val)
			}
			cfg.ChartWidthIn = f
		case "chart_height_in":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 0 {
				return fmt.Errorf("invalid float for chart_height_in: %v", val)
			}
			cfg.ChartHeightIn = f
		case "sample_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for sample_rows: %v", val)
			}
			cfg.SampleRows = i
		case "correlations":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for correlations: %v", val)
			}
			cfg.Correlations = b
		case "outliers":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for outliers: %v", val)
			}
			cfg.Outliers = b
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		cmd.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
