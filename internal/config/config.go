package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Validation ValidationConfig `yaml:"validation" mapstructure:"validation"`
	Benchmarks BenchmarkConfig  `yaml:"benchmarks" mapstructure:"benchmarks"`
	Goals      GoalConfig       `yaml:"goals" mapstructure:"goals"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the pay-record store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // "sqlite" or "postgres"
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// ValidationConfig holds the validator's plausibility bands and recovery
// thresholds.
type ValidationConfig struct {
	MinRecords          int     `yaml:"min_records" mapstructure:"min_records"`
	MinPlausibleIncome  float64 `yaml:"min_plausible_income" mapstructure:"min_plausible_income"`
	MaxPlausibleIncome  float64 `yaml:"max_plausible_income" mapstructure:"max_plausible_income"`
	VolatilityThreshold float64 `yaml:"volatility_threshold" mapstructure:"volatility_threshold"`
	OutlierSigma        float64 `yaml:"outlier_sigma" mapstructure:"outlier_sigma"`
}

// BenchmarkConfig holds the static reference values metrics are compared
// against. These are constants, not a live data feed.
type BenchmarkConfig struct {
	AnnualSalary     float64 `yaml:"annual_salary" mapstructure:"annual_salary"`
	EffectiveTaxRate float64 `yaml:"effective_tax_rate" mapstructure:"effective_tax_rate"`
	SavingsRate      float64 `yaml:"savings_rate" mapstructure:"savings_rate"`
	IncomeGrowth     float64 `yaml:"income_growth" mapstructure:"income_growth"`
}

// GoalConfig holds goal targets and horizon ceilings.
type GoalConfig struct {
	EmergencyFundMonths        int     `yaml:"emergency_fund_months" mapstructure:"emergency_fund_months"`
	EmergencyFundCeilingMonths int     `yaml:"emergency_fund_ceiling_months" mapstructure:"emergency_fund_ceiling_months"`
	HomeCeilingMonths          int     `yaml:"home_ceiling_months" mapstructure:"home_ceiling_months"`
	EducationCeilingMonths     int     `yaml:"education_ceiling_months" mapstructure:"education_ceiling_months"`
	RetirementGrowthRate       float64 `yaml:"retirement_growth_rate" mapstructure:"retirement_growth_rate"`
	RetirementYears            int     `yaml:"retirement_years" mapstructure:"retirement_years"`
	RetirementTargetMultiple   float64 `yaml:"retirement_target_multiple" mapstructure:"retirement_target_multiple"`
	GoalsFile                  string  `yaml:"goals_file" mapstructure:"goals_file"`
}

// ServerConfig configures the HTTP facade.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FINHEALTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "finhealth.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit_rps", 10)
	v.SetDefault("server.rate_limit_burst", 20)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("validation.min_records", 3)
	v.SetDefault("validation.min_plausible_income", 1_000)
	v.SetDefault("validation.max_plausible_income", 10_000_000)
	v.SetDefault("validation.volatility_threshold", 0.5)
	v.SetDefault("validation.outlier_sigma", 3)
	v.SetDefault("benchmarks.annual_salary", 800_000)
	v.SetDefault("benchmarks.effective_tax_rate", 0.20)
	v.SetDefault("benchmarks.savings_rate", 0.20)
	v.SetDefault("benchmarks.income_growth", 0.05)
	v.SetDefault("goals.emergency_fund_months", 6)
	v.SetDefault("goals.emergency_fund_ceiling_months", 18)
	v.SetDefault("goals.home_ceiling_months", 60)
	v.SetDefault("goals.education_ceiling_months", 36)
	v.SetDefault("goals.retirement_growth_rate", 0.08)
	v.SetDefault("goals.retirement_years", 25)
	v.SetDefault("goals.retirement_target_multiple", 10)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
