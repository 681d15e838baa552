// Package store persists pay records. Two backends are provided: SQLite for
// the single-user CLI workflow and Postgres for shared deployments.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/payvista/finhealth/internal/config"
	"github.com/payvista/finhealth/internal/model"
)

// StoredRecord is a pay record with its storage identity.
type StoredRecord struct {
	ID        string          `json:"id"`
	Record    model.PayRecord `json:"record"`
	CreatedAt time.Time       `json:"created_at"`
}

// RecordFilter specifies criteria for listing records.
type RecordFilter struct {
	From   *time.Time `json:"from,omitempty"`
	To     *time.Time `json:"to,omitempty"`
	Limit  int        `json:"limit,omitempty"`
	Offset int        `json:"offset,omitempty"`
}

// Store defines the persistence interface for pay records. ListRecords
// returns records most recent first, the order every analyzer expects.
type Store interface {
	AddRecord(ctx context.Context, record model.PayRecord) (*StoredRecord, error)
	AddRecords(ctx context.Context, records []model.PayRecord) (int, error)
	GetRecord(ctx context.Context, id string) (*StoredRecord, error)
	ListRecords(ctx context.Context, filter RecordFilter) ([]StoredRecord, error)
	DeleteRecord(ctx context.Context, id string) error
	DeleteAllRecords(ctx context.Context) (int, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates the configured backend and runs migrations.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Driver {
	case "postgres":
		s, err = NewPostgres(ctx, cfg.DatabaseURL, nil)
	case "sqlite", "":
		s, err = NewSQLite(cfg.SQLitePath)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Snapshot loads every stored record as the plain analysis input slice,
// most recent first.
func Snapshot(ctx context.Context, s Store, filter RecordFilter) ([]model.PayRecord, error) {
	stored, err := s.ListRecords(ctx, filter)
	if err != nil {
		return nil, err
	}
	records := make([]model.PayRecord, len(stored))
	for i, sr := range stored {
		records[i] = sr.Record
	}
	return records, nil
}
