package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/payvista/finhealth/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it in
// tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Ping(ctx context.Context) error
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS pay_records (
	id                      TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	pay_date                TIMESTAMPTZ NOT NULL,
	gross_income            DOUBLE PRECISION NOT NULL,
	tax                     DOUBLE PRECISION NOT NULL,
	other_deductions        DOUBLE PRECISION NOT NULL,
	retirement_contribution DOUBLE PRECISION NOT NULL,
	created_at              TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_pay_records_pay_date ON pay_records(pay_date DESC);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) AddRecord(ctx context.Context, record model.PayRecord) (*StoredRecord, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO pay_records (id, pay_date, gross_income, tax, other_deductions, retirement_contribution, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, record.Timestamp.UTC(), record.GrossIncome, record.Tax,
		record.OtherDeductions, record.RetirementContribution, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert record")
	}

	return &StoredRecord{ID: id, Record: record, CreatedAt: now}, nil
}

// AddRecords bulk-inserts via the COPY protocol.
func (s *PostgresStore) AddRecords(ctx context.Context, records []model.PayRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{
			uuid.New().String(), r.Timestamp.UTC(), r.GrossIncome, r.Tax,
			r.OtherDeductions, r.RetirementContribution, now,
		}
	}

	n, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"pay_records"},
		[]string{"id", "pay_date", "gross_income", "tax", "other_deductions", "retirement_contribution", "created_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: copy records")
	}
	return int(n), nil
}

func (s *PostgresStore) GetRecord(ctx context.Context, id string) (*StoredRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, pay_date, gross_income, tax, other_deductions, retirement_contribution, created_at
		 FROM pay_records WHERE id = $1`,
		id,
	)

	var sr StoredRecord
	err := row.Scan(
		&sr.ID, &sr.Record.Timestamp, &sr.Record.GrossIncome, &sr.Record.Tax,
		&sr.Record.OtherDeductions, &sr.Record.RetirementContribution, &sr.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, eris.Errorf("record not found: %s", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get record")
	}
	return &sr, nil
}

func (s *PostgresStore) ListRecords(ctx context.Context, filter RecordFilter) ([]StoredRecord, error) {
	query := `SELECT id, pay_date, gross_income, tax, other_deductions, retirement_contribution, created_at
	          FROM pay_records WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.From != nil {
		query += ` AND pay_date >= ` + arg(filter.From.UTC())
	}
	if filter.To != nil {
		query += ` AND pay_date <= ` + arg(filter.To.UTC())
	}
	query += ` ORDER BY pay_date DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += ` LIMIT ` + arg(limit)

	if filter.Offset > 0 {
		query += ` OFFSET ` + arg(filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list records")
	}
	defer rows.Close()

	var records []StoredRecord
	for rows.Next() {
		var sr StoredRecord
		if err := rows.Scan(
			&sr.ID, &sr.Record.Timestamp, &sr.Record.GrossIncome, &sr.Record.Tax,
			&sr.Record.OtherDeductions, &sr.Record.RetirementContribution, &sr.CreatedAt,
		); err != nil {
			return nil, eris.Wrap(err, "postgres: scan record")
		}
		records = append(records, sr)
	}
	return records, eris.Wrap(rows.Err(), "postgres: list records iterate")
}

func (s *PostgresStore) DeleteRecord(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM pay_records WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete record %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("record not found: %s", id)
	}
	return nil
}

func (s *PostgresStore) DeleteAllRecords(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM pay_records`)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete all records")
	}
	return int(tag.RowsAffected()), nil
}
