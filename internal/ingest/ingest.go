// Package ingest parses pay records out of CSV, XLSX, and JSON files.
package ingest

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/payvista/finhealth/internal/model"
)

// dateLayouts are tried in order when parsing the pay-date column.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01",
	"01/02/2006",
	"02.01.2006",
}

// columnAliases maps normalized header names to canonical field keys.
var columnAliases = map[string]string{
	"date":                    "date",
	"pay_date":                "date",
	"timestamp":               "date",
	"period":                  "date",
	"gross":                   "gross",
	"gross_income":            "gross",
	"gross_pay":               "gross",
	"salary":                  "gross",
	"tax":                     "tax",
	"income_tax":              "tax",
	"tax_deducted":            "tax",
	"other_deductions":        "other",
	"deductions":              "other",
	"other":                   "other",
	"retirement":              "retirement",
	"retirement_contribution": "retirement",
	"pension":                 "retirement",
	"401k":                    "retirement",
}

// ReadFile parses pay records from a file, dispatching on extension.
func ReadFile(ctx context.Context, path string) ([]model.PayRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVFile(ctx, path)
	case ".xlsx":
		return ReadXLSX(path)
	case ".json":
		return readJSONFile(path)
	default:
		return nil, eris.Errorf("ingest: unsupported file type %q", filepath.Ext(path))
	}
}

// ReadCSV parses pay records from CSV data. The first row must be a header
// naming at least a date and a gross income column.
func ReadCSV(ctx context.Context, r io.Reader) ([]model.PayRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("ingest: empty csv input")
	}
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read csv header")
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []model.PayRecord
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "ingest: csv read cancelled")
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: read csv row %d", line)
		}

		record, err := parseRow(cols, row)
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: csv row %d", line)
		}
		records = append(records, record)
	}
	return records, nil
}

// ReadXLSX parses pay records from the first sheet of an XLSX workbook. Row
// layout matches the CSV format: a header row, then one record per row.
func ReadXLSX(path string) ([]model.PayRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("ingest: xlsx has no sheets")
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.New("ingest: empty xlsx sheet")
	}

	cols, err := mapColumns(rowToStrings(sheet.Rows[0]))
	if err != nil {
		return nil, err
	}

	var records []model.PayRecord
	for i, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		if isBlank(cells) {
			continue
		}
		record, err := parseRow(cols, cells)
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: xlsx row %d", i+2)
		}
		records = append(records, record)
	}
	return records, nil
}

// ReadJSON parses pay records from a JSON array of record objects.
func ReadJSON(r io.Reader) ([]model.PayRecord, error) {
	var records []model.PayRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, eris.Wrap(err, "ingest: decode json")
	}
	return records, nil
}

func readCSVFile(ctx context.Context, path string) ([]model.PayRecord, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(ctx, f)
}

func readJSONFile(path string) ([]model.PayRecord, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open %s", path)
	}
	return f, nil
}

// columnMap holds the resolved index of each canonical field, -1 if absent.
type columnMap struct {
	date       int
	gross      int
	tax        int
	other      int
	retirement int
}

func mapColumns(header []string) (columnMap, error) {
	cols := columnMap{date: -1, gross: -1, tax: -1, other: -1, retirement: -1}
	for i, h := range header {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
		switch columnAliases[key] {
		case "date":
			cols.date = i
		case "gross":
			cols.gross = i
		case "tax":
			cols.tax = i
		case "other":
			cols.other = i
		case "retirement":
			cols.retirement = i
		}
	}
	if cols.date < 0 {
		return cols, eris.New("ingest: no date column in header")
	}
	if cols.gross < 0 {
		return cols, eris.New("ingest: no gross income column in header")
	}
	return cols, nil
}

func parseRow(cols columnMap, row []string) (model.PayRecord, error) {
	var record model.PayRecord

	ts, err := parseDate(cell(row, cols.date))
	if err != nil {
		return record, err
	}
	record.Timestamp = ts

	if record.GrossIncome, err = parseAmount(cell(row, cols.gross)); err != nil {
		return record, eris.Wrap(err, "gross income")
	}
	if record.Tax, err = parseAmount(cell(row, cols.tax)); err != nil {
		return record, eris.Wrap(err, "tax")
	}
	if record.OtherDeductions, err = parseAmount(cell(row, cols.other)); err != nil {
		return record, eris.Wrap(err, "other deductions")
	}
	if record.RetirementContribution, err = parseAmount(cell(row, cols.retirement)); err != nil {
		return record, eris.Wrap(err, "retirement contribution")
	}
	return record, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, eris.New("missing date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("unrecognized date %q", s)
}

func parseAmount(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, eris.Errorf("invalid amount %q", s)
	}
	return v, nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, c := range row.Cells {
		cells[j] = c.String()
	}
	return cells
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
