package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/limnolab/ecoflux/internal/units"
)

var convertFormat string

var convertCmd = &cobra.Command{
	Use:   "convert <value> <from-unit> <to-unit>",
	Short: "Convert an area value between " + strings.Join(units.Units(), ", "),
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", args[0], err)
		}
		from, to := args[1], args[2]
		out, err := units.ConvertArea(value, from, to)
		if err != nil {
			return err
		}
		format, err := pickFormat(convertFormat)
		if err != nil {
			return err
		}
		if format == "yaml" {
			b, err := yaml.Marshal(map[string]interface{}{
				"value":  value,
				"from":   strings.ToLower(from),
				"to":     strings.ToLower(to),
				"result": out,
			})
			if err != nil {
				return fmt.Errorf("marshal yaml: %w", err)
			}
			cmd.Print(string(b))
			return nil
		}
		cmd.Printf("%g %s = %g %s\n", value, strings.ToLower(from), out, strings.ToLower(to))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVar(&convertFormat, "format", "", "output format: text|yaml")
}
