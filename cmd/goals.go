package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/payvista/finhealth/internal/engine"
)

var (
	goalsFile     string
	goalsDefsFile string
	goalsJSON     bool
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Check savings and investment goal feasibility",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		records, err := loadRecords(ctx, goalsFile)
		if err != nil {
			return err
		}

		defs, err := loadGoalDefinitions(goalsDefsFile)
		if err != nil {
			return err
		}

		goals := engine.New(cfg).AnalyzeGoalsOnly(records, defs)
		if len(goals) == 0 {
			fmt.Fprintln(os.Stderr, "Not enough usable records for goal analysis.")
			return nil
		}

		if goalsJSON {
			return printJSON(goals)
		}

		for _, g := range goals {
			verdict := "achievable"
			if !g.IsAchievable {
				verdict = "at risk"
			}
			fmt.Printf("%s (%s, %s): %.2f of %.2f, %s\n",
				g.Name, g.Type, g.Category, g.CurrentAmount, g.TargetAmount, verdict)
			if g.RecommendedMonthlyContribution > 0 {
				fmt.Printf("  recommended monthly contribution: %.2f\n", g.RecommendedMonthlyContribution)
			}
			if g.ProjectedAchievementDate != nil {
				fmt.Printf("  projected achievement: %s\n", g.ProjectedAchievementDate.Format("January 2006"))
			}
		}
		return nil
	},
}

func init() {
	goalsCmd.Flags().StringVar(&goalsFile, "file", "", "analyze a CSV, XLSX, or JSON file instead of the stored history")
	goalsCmd.Flags().StringVar(&goalsDefsFile, "goals", "", "path to goal definitions YAML (default from config)")
	goalsCmd.Flags().BoolVar(&goalsJSON, "json", false, "emit goals as JSON")
	rootCmd.AddCommand(goalsCmd)
}
