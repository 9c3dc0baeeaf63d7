package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     int
	DBName     string

	OceanURL      string
	WalletAddress string
	VaultID       string

	RetryDelay  time.Duration
	MaxAttempts int
	LogLevel    string
}

// Load merges config file, environment variables, and flags into Config.
// Env keys follow the flag names with dashes replaced by underscores and
// uppercased, so --db-user binds to DB_USER.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// The wallet flag is --address but the documented env key is
	// WALLET_ADDRESS; accept both.
	if err := v.BindEnv("address", "ADDRESS", "WALLET_ADDRESS"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	v.SetDefault("db-port", 5432)
	v.SetDefault("ocean-url", "https://ocean.defichain.com/v0/mainnet")
	v.SetDefault("retry-delay", 1*time.Second)
	v.SetDefault("max-attempts", 0)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		DBUser:        v.GetString("db-user"),
		DBPassword:    v.GetString("db-password"),
		DBHost:        v.GetString("db-host"),
		DBPort:        v.GetInt("db-port"),
		DBName:        v.GetString("db-name"),
		OceanURL:      v.GetString("ocean-url"),
		WalletAddress: v.GetString("address"),
		VaultID:       v.GetString("vault-id"),
		RetryDelay:    v.GetDuration("retry-delay"),
		MaxAttempts:   v.GetInt("max-attempts"),
		LogLevel:      v.GetString("log-level"),
	}

	return cfg, nil
}

// DSN builds the Postgres connection string from the DB_* settings.
func (c Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	return u.String()
}
