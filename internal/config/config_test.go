package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "finhealth.db", cfg.Store.SQLitePath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.InDelta(t, 10, cfg.Server.RateLimitRPS, 0.001)
	assert.Equal(t, 20, cfg.Server.RateLimitBurst)

	assert.Equal(t, 3, cfg.Validation.MinRecords)
	assert.InDelta(t, 1_000, cfg.Validation.MinPlausibleIncome, 0.001)
	assert.InDelta(t, 10_000_000, cfg.Validation.MaxPlausibleIncome, 0.001)
	assert.InDelta(t, 0.5, cfg.Validation.VolatilityThreshold, 0.001)
	assert.InDelta(t, 3, cfg.Validation.OutlierSigma, 0.001)

	assert.InDelta(t, 800_000, cfg.Benchmarks.AnnualSalary, 0.001)
	assert.InDelta(t, 0.20, cfg.Benchmarks.EffectiveTaxRate, 0.001)
	assert.InDelta(t, 0.20, cfg.Benchmarks.SavingsRate, 0.001)
	assert.InDelta(t, 0.05, cfg.Benchmarks.IncomeGrowth, 0.001)

	assert.Equal(t, 6, cfg.Goals.EmergencyFundMonths)
	assert.Equal(t, 18, cfg.Goals.EmergencyFundCeilingMonths)
	assert.Equal(t, 60, cfg.Goals.HomeCeilingMonths)
	assert.Equal(t, 36, cfg.Goals.EducationCeilingMonths)
	assert.InDelta(t, 0.08, cfg.Goals.RetirementGrowthRate, 0.001)
	assert.Equal(t, 25, cfg.Goals.RetirementYears)
	assert.InDelta(t, 10, cfg.Goals.RetirementTargetMultiple, 0.001)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/finhealth
log:
  level: debug
  format: console
server:
  port: 9090
validation:
  min_records: 6
benchmarks:
  annual_salary: 900000
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/finhealth", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 6, cfg.Validation.MinRecords)
	assert.InDelta(t, 900_000, cfg.Benchmarks.AnnualSalary, 0.001)

	// Untouched sections keep their defaults.
	assert.InDelta(t, 0.20, cfg.Benchmarks.EffectiveTaxRate, 0.001)
	assert.Equal(t, 25, cfg.Goals.RetirementYears)
}

func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("FINHEALTH_VALIDATION_MIN_RECORDS", "5")
	t.Setenv("FINHEALTH_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Validation.MinRecords)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "not-a-level", Format: "json"})
	require.Error(t, err)
}
