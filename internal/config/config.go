package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/billfold/billfold/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Billing    BillingConfig    `validate:"required"`
	Currency   CurrencyConfig   `validate:"required"`
	Storage    StorageConfig    `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// BillingConfig carries the defaults applied when a caller does not
// supply explicit contract settings.
type BillingConfig struct {
	DefaultCurrency   string `mapstructure:"default_currency"`
	DefaultDateFormat string `mapstructure:"default_date_format"`
}

// CurrencyConfig configures the exchange rate provider.
// Rates are cached for CacheTTL and fall back to static defaults
// when the provider is unreachable.
type CurrencyConfig struct {
	RatesURL string        `mapstructure:"rates_url"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// StorageConfig configures the JSON snapshot mirror of the in-memory store.
// An empty path disables persistence.
type StorageConfig struct {
	SnapshotPath string `mapstructure:"snapshot_path"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/billfold")

	v.SetEnvPrefix("BILLFOLD")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("billing.default_currency", "USD")
	v.SetDefault("billing.default_date_format", "dd/MM/yyyy")
	v.SetDefault("currency.rates_url", "https://open.er-api.com/v6/latest/USD")
	v.SetDefault("currency.cache_ttl", time.Hour)
	v.SetDefault("storage.snapshot_path", "billfold.json")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a configuration suitable for tests:
// no snapshot file and no live rate fetches.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelInfo},
		Billing: BillingConfig{
			DefaultCurrency:   "USD",
			DefaultDateFormat: "dd/MM/yyyy",
		},
		Currency: CurrencyConfig{CacheTTL: time.Hour},
		Storage:  StorageConfig{},
	}
}
