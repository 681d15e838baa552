package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/payvista/finhealth/internal/engine"
)

var (
	predictFile string
	predictJSON bool
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Project income, tax, and retirement trajectories",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		records, err := loadRecords(ctx, predictFile)
		if err != nil {
			return err
		}

		insights := engine.New(cfg).AnalyzePredictiveOnly(records)
		if len(insights) == 0 {
			fmt.Fprintln(os.Stderr, "Not enough usable records for projections.")
			return nil
		}

		if predictJSON {
			return printJSON(insights)
		}

		for _, in := range insights {
			fmt.Printf("%s (%s)\n", in.Type, in.Timeframe)
			fmt.Printf("  expected: %.2f  confidence: %.0f%%  risk: %s\n",
				in.ExpectedValue, in.Confidence*100, in.RiskLevel)
			if in.Recommendation != "" {
				fmt.Printf("  %s\n", in.Recommendation)
			}
		}
		return nil
	},
}

func init() {
	predictCmd.Flags().StringVar(&predictFile, "file", "", "analyze a CSV, XLSX, or JSON file instead of the stored history")
	predictCmd.Flags().BoolVar(&predictJSON, "json", false, "emit insights as JSON")
	rootCmd.AddCommand(predictCmd)
}
