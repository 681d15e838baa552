package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/payvista/finhealth/internal/engine"
)

var (
	scoreFile string
	scoreJSON bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute the health score only",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		records, err := loadRecords(ctx, scoreFile)
		if err != nil {
			return err
		}

		score := engine.New(cfg).AnalyzeHealthScoreOnly(records)

		if scoreJSON {
			return printJSON(score)
		}

		fmt.Printf("Overall: %.1f / 100 (trend: %s)\n\n", score.OverallScore, score.Trend.Direction)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tSCORE\tSTATUS\tWEIGHT")
		for _, c := range score.Categories {
			fmt.Fprintf(w, "%s\t%.1f\t%s\t%.0f%%\n", c.Name, c.Score, c.Status, c.Weight*100)
		}
		return w.Flush()
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreFile, "file", "", "score a CSV, XLSX, or JSON file instead of the stored history")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "emit the score as JSON")
	rootCmd.AddCommand(scoreCmd)
}
