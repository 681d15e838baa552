package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/payvista/finhealth/internal/engine"
	"github.com/payvista/finhealth/internal/report"
)

var (
	analyzeFile      string
	analyzeGoalsFile string
	analyzeJSON      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full financial health analysis",
	Long:  "Validates the pay history, scores the five health categories, projects income, tax, and retirement, compares against benchmarks, and checks goal feasibility.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		records, err := loadRecords(ctx, analyzeFile)
		if err != nil {
			return err
		}

		defs, err := loadGoalDefinitions(analyzeGoalsFile)
		if err != nil {
			return err
		}

		result, err := engine.New(cfg).Analyze(ctx, records, defs)
		if err != nil {
			return eris.Wrap(err, "analyze")
		}

		zap.L().Info("analysis finished",
			zap.String("analysis_id", result.ID),
			zap.String("status", string(result.Status)),
		)

		if analyzeJSON {
			return printJSON(result)
		}
		fmt.Print(report.FormatAnalysis(result))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "analyze a CSV, XLSX, or JSON file instead of the stored history")
	analyzeCmd.Flags().StringVar(&analyzeGoalsFile, "goals", "", "path to goal definitions YAML (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit the raw result as JSON")
	rootCmd.AddCommand(analyzeCmd)
}
