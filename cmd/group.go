package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/limnolab/ecoflux/internal/dataset"
)

var (
	groupBy     string
	groupOut    string
	groupFormat string
)

var groupCmd = &cobra.Command{
	Use:   "group <csv>",
	Short: "Partition a dataset by a categorical column",
	Long: `Partition the dataset's rows by the distinct observed values of a column.
Without --by the dataset is only loaded and its coerced shape reported.
With --out each partition is written back as its own CSV file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, parts, err := dataset.Group(dataset.Source{Path: args[0]}, groupBy)
		if err != nil {
			return err
		}
		format, err := pickFormat(groupFormat)
		if err != nil {
			return err
		}
		if parts == nil {
			cmd.Printf("Loaded %d rows, %d columns (no group column given)\n", t.NumRows(), len(t.Columns()))
			return nil
		}

		keys := make([]string, 0, len(parts))
		for k := range parts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		if groupOut != "" {
			if err := os.MkdirAll(groupOut, 0o755); err != nil {
				return fmt.Errorf("mkdir out dir: %w", err)
			}
			for _, key := range keys {
				sub := parts[key]
				path := filepath.Join(groupOut, fmt.Sprintf("%s_%s.csv", groupBy, slug(key)))
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("create %s: %w", path, err)
				}
				if err := sub.WriteCSV(f); err != nil {
					f.Close()
					return fmt.Errorf("write %s: %w", path, err)
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("close %s: %w", path, err)
				}
			}
		}

		if format == "yaml" {
			counts := make(map[string]int, len(parts))
			for k, sub := range parts {
				counts[k] = sub.Nrow()
			}
			b, err := yaml.Marshal(map[string]interface{}{
				"group_by":   groupBy,
				"partitions": counts,
			})
			if err != nil {
				return fmt.Errorf("marshal yaml: %w", err)
			}
			cmd.Print(string(b))
			return nil
		}
		cmd.Printf("Partitioned %d rows by %s:\n", t.NumRows(), groupBy)
		for _, key := range keys {
			cmd.Printf("- %s: %d rows\n", key, parts[key].Nrow())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(groupCmd)
	groupCmd.Flags().StringVar(&groupBy, "by", "", "column to partition by")
	groupCmd.Flags().StringVar(&groupOut, "out", "", "directory to write one CSV per partition")
	groupCmd.Flags().StringVar(&groupFormat, "format", "", "output format: text|yaml")
}

// slug makes a group value safe for use in a file name.
func slug(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, string(filepath.Separator), "_")
	if s == "" {
		return "empty"
	}
	return s
}
