package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/payvista/finhealth/internal/engine"
	"github.com/payvista/finhealth/internal/ingest"
)

var (
	importPath  string
	importForce bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import pay records from a CSV, XLSX, or JSON file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		records, err := ingest.ReadFile(ctx, importPath)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return eris.Errorf("no records found in %s", importPath)
		}

		// Surface blocking problems before writing anything.
		validation := engine.New(cfg).Validate(records)
		if !validation.CanProceed && !importForce {
			for _, issue := range validation.Errors {
				zap.L().Warn("validation error",
					zap.String("code", string(issue.Code)),
					zap.Int("record", issue.RecordIndex),
					zap.String("message", issue.Message),
				)
			}
			return eris.New("records failed validation (use --force to import anyway)")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		n, err := st.AddRecords(ctx, records)
		if err != nil {
			return eris.Wrap(err, "import records")
		}

		zap.L().Info("import complete",
			zap.Int("imported", n),
			zap.Int("warnings", len(validation.Warnings)),
			zap.String("file", importPath),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importPath, "file", "", "path to CSV, XLSX, or JSON file (required)")
	importCmd.Flags().BoolVar(&importForce, "force", false, "import even when validation reports blocking errors")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
