package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/payvista/finhealth/internal/model"
	"github.com/payvista/finhealth/internal/store"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage stored pay records",
	Long:  "Commands for listing, adding, and deleting the stored pay history.",
}

// -- records list --

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored pay records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		limit, _ := cmd.Flags().GetInt("limit")
		records, err := st.ListRecords(ctx, store.RecordFilter{Limit: limit})
		if err != nil {
			return eris.Wrap(err, "records list")
		}

		if len(records) == 0 {
			fmt.Fprintln(os.Stderr, "No records stored.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tGROSS\tTAX\tOTHER\tRETIREMENT\tNET")
		for _, sr := range records {
			r := sr.Record
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
				sr.ID, r.Timestamp.Format("2006-01-02"),
				r.GrossIncome, r.Tax, r.OtherDeductions, r.RetirementContribution, r.NetIncome())
		}
		return w.Flush()
	},
}

// -- records add --

var (
	addDate       string
	addGross      float64
	addTax        float64
	addOther      float64
	addRetirement float64
)

var recordsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one pay record",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		ts, err := time.Parse("2006-01-02", addDate)
		if err != nil {
			return eris.Wrapf(err, "parse date %q", addDate)
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		created, err := st.AddRecord(ctx, model.PayRecord{
			Timestamp:              ts,
			GrossIncome:            addGross,
			Tax:                    addTax,
			OtherDeductions:        addOther,
			RetirementContribution: addRetirement,
		})
		if err != nil {
			return eris.Wrap(err, "records add")
		}

		zap.L().Info("record added",
			zap.String("id", created.ID),
			zap.String("date", addDate),
			zap.Float64("gross", addGross),
		)
		return nil
	},
}

// -- records delete --

var recordsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one pay record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.DeleteRecord(ctx, args[0]); err != nil {
			return eris.Wrap(err, "records delete")
		}
		zap.L().Info("record deleted", zap.String("id", args[0]))
		return nil
	},
}

// -- records clear --

var recordsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored pay records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		n, err := st.DeleteAllRecords(ctx)
		if err != nil {
			return eris.Wrap(err, "records clear")
		}
		zap.L().Info("records cleared", zap.Int("deleted", n))
		return nil
	},
}

func init() {
	recordsListCmd.Flags().Int("limit", 0, "max records to list")

	recordsAddCmd.Flags().StringVar(&addDate, "date", "", "pay date, YYYY-MM-DD (required)")
	recordsAddCmd.Flags().Float64Var(&addGross, "gross", 0, "gross income (required)")
	recordsAddCmd.Flags().Float64Var(&addTax, "tax", 0, "tax deducted")
	recordsAddCmd.Flags().Float64Var(&addOther, "other", 0, "other deductions")
	recordsAddCmd.Flags().Float64Var(&addRetirement, "retirement", 0, "retirement contribution")
	_ = recordsAddCmd.MarkFlagRequired("date")
	_ = recordsAddCmd.MarkFlagRequired("gross")

	recordsCmd.AddCommand(recordsListCmd, recordsAddCmd, recordsDeleteCmd, recordsClearCmd)
	rootCmd.AddCommand(recordsCmd)
}
