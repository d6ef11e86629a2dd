package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Finance  FinanceConfig  `mapstructure:"finance"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig holds the MySQL connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Charset  string `mapstructure:"charset"`
}

// FinanceConfig holds domain parameters: the opening cash balance fallback,
// statutory income limits for the flat-tax regime, and the bank
// reconciliation matching policy.
type FinanceConfig struct {
	Currency            string          `mapstructure:"currency"`
	OpeningCashBalance  float64         `mapstructure:"opening_cash_balance"`
	IncomeLimitPausal   float64         `mapstructure:"income_limit_pausal"`
	IncomeLimitVAT      float64         `mapstructure:"income_limit_vat"`
	LimitWarningPercent float64         `mapstructure:"limit_warning_percent"`
	Reconcile           ReconcileConfig `mapstructure:"reconcile"`
}

// ReconcileConfig is the bank reconciliation matching policy. The defaults
// mirror observed tax-office payment behavior and are kept configurable
// pending confirmation by the domain owner.
type ReconcileConfig struct {
	// DeadlineWindowDays bounds how far an obligation deadline may lie from
	// the transaction date, in either direction.
	DeadlineWindowDays int `mapstructure:"deadline_window_days"`
	// AmountTolerance is the maximum absolute amount difference, in currency
	// units, for an obligation to qualify as a match candidate.
	AmountTolerance float64 `mapstructure:"amount_tolerance"`
}

// AmountToleranceDecimal returns the tolerance as a decimal for comparisons.
func (r ReconcileConfig) AmountToleranceDecimal() decimal.Decimal {
	return decimal.NewFromFloat(r.AmountTolerance)
}

var (
	// GlobalConfig is the process-wide configuration instance.
	GlobalConfig *Config
)

// LoadConfig loads configuration with priority:
// external config file > embedded defaults, then PAUSAL_* env overrides.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("read embedded config: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Warn().Err(err).Str("path", configPath).Msg("cannot read config file, using defaults")
		} else {
			log.Info().Str("path", configPath).Msg("merged external config file")
		}
	} else {
		external := viper.New()
		external.SetConfigName("config")
		external.SetConfigType("yaml")
		external.AddConfigPath(".")
		external.AddConfigPath("./config")
		external.AddConfigPath("/etc/pausal")
		external.AddConfigPath("$HOME/.pausal")
		if err := external.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(external.AllSettings()); err != nil {
				log.Warn().Err(err).Msg("cannot merge external config")
			} else {
				log.Info().Str("path", external.ConfigFileUsed()).Msg("merged external config file")
			}
		}
	}

	v.SetEnvPrefix("PAUSAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Finance.Reconcile.DeadlineWindowDays <= 0 {
		cfg.Finance.Reconcile.DeadlineWindowDays = 45
	}
	if cfg.Finance.Reconcile.AmountTolerance <= 0 {
		cfg.Finance.Reconcile.AmountTolerance = 0.5
	}

	GlobalConfig = &cfg
	return &cfg, nil
}

// GetConfig returns the global configuration, panicking if it was never loaded.
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("config not initialized, call LoadConfig first")
	}
	return GlobalConfig
}

// SafeErrorMessage hides internal error details from clients in release mode.
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
