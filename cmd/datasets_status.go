package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/dataset"
)

var datasetsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which datasets are present",
	Long:  "Lists every configured dataset with its on-disk status, size, record count, and whether it can be fetched automatically.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("fetch"); err != nil {
			return err
		}

		formatDatasetStatus(os.Stdout, dataset.Catalog(cfg.Data))
		return nil
	},
}

func init() {
	datasetsCmd.AddCommand(datasetsStatusCmd)
}

// formatDatasetStatus writes a tabular dataset inventory to w.
func formatDatasetStatus(out io.Writer, catalog []dataset.Descriptor) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DATASET\tSTATUS\tSIZE\tRECORDS\tSOURCE\tPATH")
	_, _ = fmt.Fprintln(w, "-------\t------\t----\t-------\t------\t----")

	for _, d := range catalog {
		if d.Path == "" {
			_, _ = fmt.Fprintf(w, "%s\tdisabled\t-\t-\t-\t-\n", d.Key)
			continue
		}

		status := "missing"
		size := "-"
		records := "-"
		if present, bytes := d.Status(); present {
			status = "present"
			size = formatBytes(bytes)
			if n, err := d.Records(); err == nil {
				records = fmt.Sprintf("%d", n)
			}
		}

		source := "manual"
		if d.URL != "" {
			source = "fetch"
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", d.Key, status, size, records, source, d.Path)
	}
	_ = w.Flush()
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GiB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
