// Package config loads server configuration from a YAML file with viper.
// Every key can be overridden through the environment with the CHITLEDGER
// prefix, e.g. CHITLEDGER_SERVER_PORT=9090.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Receipts ReceiptsConfig `mapstructure:"receipts"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Group    GroupConfig    `mapstructure:"group"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type ReceiptsConfig struct {
	Dir     string `mapstructure:"dir"`
	BaseURL string `mapstructure:"base_url"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// GroupConfig seeds the chit group on first run. It is ignored once the
// group exists in the database; later edits go through the API.
type GroupConfig struct {
	Name                   string `mapstructure:"name"`
	TotalChitValue         int64  `mapstructure:"total_chit_value"`
	FixedMonthlyCollection int64  `mapstructure:"fixed_monthly_collection"`
	MonthlyPayoutBase      int64  `mapstructure:"monthly_payout_base"`
	DurationMonths         int    `mapstructure:"duration_months"`
	StartDate              string `mapstructure:"start_date"`
	AdminPhone             string `mapstructure:"admin_phone"`
	AdminPIN               string `mapstructure:"admin_pin"`
	UPIID                  string `mapstructure:"upi_id"`
	UPIName                string `mapstructure:"upi_name"`
}

// Load reads the config file at path and applies defaults and environment
// overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("server.port", 8080)
	v.SetDefault("database.path", "./data/chitledger.db")
	v.SetDefault("receipts.dir", "./data/receipts")
	v.SetDefault("receipts.base_url", "/receipts")
	v.SetDefault("auth.token_ttl", "24h")

	v.SetEnvPrefix("CHITLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required")
	}
	if cfg.Group.AdminPhone == "" {
		return nil, fmt.Errorf("group.admin_phone is required")
	}
	return cfg, nil
}
