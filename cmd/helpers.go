package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/payvista/finhealth/internal/goal"
	"github.com/payvista/finhealth/internal/ingest"
	"github.com/payvista/finhealth/internal/model"
	"github.com/payvista/finhealth/internal/store"
)

// initStore opens the configured store backend with migrations applied.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, eris.Wrap(err, "init store")
	}
	return st, nil
}

// loadRecords reads the analysis input: from a file when a path is given,
// otherwise the full stored history.
func loadRecords(ctx context.Context, filePath string) ([]model.PayRecord, error) {
	if filePath != "" {
		return ingest.ReadFile(ctx, filePath)
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close() //nolint:errcheck

	return store.Snapshot(ctx, st, store.RecordFilter{})
}

// loadGoalDefinitions reads caller-defined goals from the flag path or the
// configured default.
func loadGoalDefinitions(flagPath string) ([]goal.Definition, error) {
	path := flagPath
	if path == "" {
		path = cfg.Goals.GoalsFile
	}
	return goal.LoadDefinitions(path)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode output")
}
