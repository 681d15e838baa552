package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/payvista/finhealth/internal/engine"
	"github.com/payvista/finhealth/internal/report"
)

var (
	validateFile string
	validateJSON bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate pay records without analyzing them",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		records, err := loadRecords(ctx, validateFile)
		if err != nil {
			return err
		}

		result := engine.New(cfg).Validate(records)

		if validateJSON {
			return printJSON(result)
		}
		fmt.Print(report.FormatValidation(result))

		if !result.CanProceed {
			return eris.New("validation failed")
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateFile, "file", "", "validate a CSV, XLSX, or JSON file instead of the stored history")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "emit the validation result as JSON")
	rootCmd.AddCommand(validateCmd)
}
