package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/payvista/finhealth/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS pay_records (
	id                      TEXT PRIMARY KEY,
	pay_date                DATETIME NOT NULL,
	gross_income            REAL NOT NULL,
	tax                     REAL NOT NULL,
	other_deductions        REAL NOT NULL,
	retirement_contribution REAL NOT NULL,
	created_at              DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_pay_records_pay_date ON pay_records(pay_date);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) AddRecord(ctx context.Context, record model.PayRecord) (*StoredRecord, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pay_records (id, pay_date, gross_income, tax, other_deductions, retirement_contribution, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, record.Timestamp.UTC(), record.GrossIncome, record.Tax,
		record.OtherDeductions, record.RetirementContribution, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert record")
	}

	return &StoredRecord{ID: id, Record: record, CreatedAt: now}, nil
}

func (s *SQLiteStore) AddRecords(ctx context.Context, records []model.PayRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO pay_records (id, pay_date, gross_income, tax, other_deductions, retirement_contribution, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			uuid.New().String(), r.Timestamp.UTC(), r.GrossIncome, r.Tax,
			r.OtherDeductions, r.RetirementContribution, now,
		); err != nil {
			return 0, eris.Wrap(err, "sqlite: insert record batch")
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit batch")
	}
	return len(records), nil
}

func (s *SQLiteStore) GetRecord(ctx context.Context, id string) (*StoredRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, pay_date, gross_income, tax, other_deductions, retirement_contribution, created_at
		 FROM pay_records WHERE id = ?`,
		id,
	)
	return scanStoredRecord(row)
}

func (s *SQLiteStore) ListRecords(ctx context.Context, filter RecordFilter) ([]StoredRecord, error) {
	query := `SELECT id, pay_date, gross_income, tax, other_deductions, retirement_contribution, created_at
	          FROM pay_records WHERE 1=1`
	var args []any

	if filter.From != nil {
		query += ` AND pay_date >= ?`
		args = append(args, filter.From.UTC())
	}
	if filter.To != nil {
		query += ` AND pay_date <= ?`
		args = append(args, filter.To.UTC())
	}
	query += ` ORDER BY pay_date DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list records")
	}
	defer rows.Close()

	var records []StoredRecord
	for rows.Next() {
		r, err := scanStoredRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: list records iterate")
}

func (s *SQLiteStore) DeleteRecord(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pay_records WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete record %s", id)
	}
	return checkRowsAffected(res, "record", id)
}

func (s *SQLiteStore) DeleteAllRecords(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pay_records`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete all records")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "sqlite: rows affected")
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanStoredRecord(row scannable) (*StoredRecord, error) {
	var sr StoredRecord
	err := row.Scan(
		&sr.ID, &sr.Record.Timestamp, &sr.Record.GrossIncome, &sr.Record.Tax,
		&sr.Record.OtherDeductions, &sr.Record.RetirementContribution, &sr.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, eris.New("record not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan record")
	}
	return &sr, nil
}
