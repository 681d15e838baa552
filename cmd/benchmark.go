package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/payvista/finhealth/internal/engine"
)

var (
	benchmarkFile string
	benchmarkJSON bool
)

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Compare pay metrics against reference values",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		records, err := loadRecords(ctx, benchmarkFile)
		if err != nil {
			return err
		}

		benchmarks := engine.New(cfg).AnalyzeBenchmarksOnly(records)
		if len(benchmarks) == 0 {
			fmt.Fprintln(os.Stderr, "Not enough usable records for benchmarks.")
			return nil
		}

		if benchmarkJSON {
			return printJSON(benchmarks)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "METRIC\tYOU\tBENCHMARK\tRESULT\tPERCENTILE")
		for _, b := range benchmarks {
			fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%s\t%.0f\n",
				b.Category, b.UserValue, b.BenchmarkValue, b.Comparison.Result, b.Percentile)
		}
		return w.Flush()
	},
}

func init() {
	benchmarkCmd.Flags().StringVar(&benchmarkFile, "file", "", "analyze a CSV, XLSX, or JSON file instead of the stored history")
	benchmarkCmd.Flags().BoolVar(&benchmarkJSON, "json", false, "emit benchmarks as JSON")
	rootCmd.AddCommand(benchmarkCmd)
}
