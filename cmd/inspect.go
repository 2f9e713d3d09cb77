package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/limnolab/ecoflux/internal/dataset"
)

var inspectRows int

var inspectCmd = &cobra.Command{
	Use:   "inspect <csv>",
	Short: "Load a dataset and print its shape, column types, and head rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := dataset.Load(dataset.Source{Path: args[0]})
		if err != nil {
			return err
		}
		cmd.Printf("Rows: %d\n", t.NumRows())
		cmd.Printf("Columns: %d\n", len(t.Columns()))

		types := t.Frame.Types()
		for i, name := range t.Columns() {
			if levels, ok := t.Levels[name]; ok {
				cmd.Printf("- %s: categorical [%s]\n", name, strings.Join(levels, ", "))
				continue
			}
			cmd.Printf("- %s: %v\n", name, types[i])
		}

		n := inspectRows
		records := t.Frame.Records() // first row is the header
		if n >= len(records) {
			n = len(records) - 1
		}
		for i := 0; i <= n && i < len(records); i++ {
			cmd.Println(strings.Join(records[i], ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVar(&inspectRows, "rows", 5, "number of head rows to print")
}
