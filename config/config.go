package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Vault    VaultConfig    `mapstructure:"vault"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Sweep    SweepConfig    `mapstructure:"sweep"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Mode     string `mapstructure:"mode"` // debug, release, test
	OpsToken string `mapstructure:"ops_token"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// VaultConfig holds the custodial key vault settings. The passphrase is
// hashed once at startup to derive the AES key; it is never logged.
type VaultConfig struct {
	Passphrase string `mapstructure:"passphrase"`
}

// ChainConfig holds the TRON full-node and master wallet settings.
type ChainConfig struct {
	FullNodeURL      string        `mapstructure:"fullnode_url"`
	TokenContract    string        `mapstructure:"token_contract"`
	MasterAddress    string        `mapstructure:"master_address"`
	MasterPrivateKey string        `mapstructure:"master_private_key"`
	FeeLimitSun      int64         `mapstructure:"fee_limit_sun"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	RetryAttempts    int           `mapstructure:"retry_attempts"`
	RetryBaseDelay   time.Duration `mapstructure:"retry_base_delay"`
}

// SweepConfig holds the sweep pipeline tuning knobs. Rates and amounts are
// plain floats here; the services convert them to decimals at wiring time.
type SweepConfig struct {
	GasFloorTRX            float64       `mapstructure:"gas_floor_trx"`
	SettlementDelay        time.Duration `mapstructure:"settlement_delay"`
	FlatFeeTRX             float64       `mapstructure:"flat_fee_trx"`
	TrxToTokenRate         float64       `mapstructure:"trx_to_token_rate"`
	TokenToFiatRate        float64       `mapstructure:"token_to_fiat_rate"`
	SweepNativeSurplus     bool          `mapstructure:"sweep_native_surplus"`
	NativeSurplusMarginTRX float64       `mapstructure:"native_surplus_margin_trx"`
	Interval               time.Duration `mapstructure:"interval"`
	LockTTL                time.Duration `mapstructure:"lock_ttl"`
	TaskMemoryBudgetMB     uint64        `mapstructure:"task_memory_budget_mb"`
	MaxConcurrency         int           `mapstructure:"max_concurrency"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: SFN_ (SafeNode).
// Nested keys use underscore: SFN_DATABASE_HOST, SFN_CHAIN_FULLNODE_URL, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.ops_token", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "safenode")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("vault.passphrase", "")
	v.SetDefault("chain.fullnode_url", "https://api.trongrid.io")
	v.SetDefault("chain.token_contract", "")
	v.SetDefault("chain.master_address", "")
	v.SetDefault("chain.master_private_key", "")
	v.SetDefault("chain.fee_limit_sun", 100000000)
	v.SetDefault("chain.request_timeout", "15s")
	v.SetDefault("chain.retry_attempts", 3)
	v.SetDefault("chain.retry_base_delay", "2s")
	v.SetDefault("sweep.gas_floor_trx", 10.0)
	v.SetDefault("sweep.settlement_delay", "3s")
	v.SetDefault("sweep.flat_fee_trx", 1.0)
	v.SetDefault("sweep.trx_to_token_rate", 0.1)
	v.SetDefault("sweep.token_to_fiat_rate", 1600.0)
	v.SetDefault("sweep.sweep_native_surplus", false)
	v.SetDefault("sweep.native_surplus_margin_trx", 1.0)
	v.SetDefault("sweep.interval", "1m")
	v.SetDefault("sweep.lock_ttl", "3m")
	v.SetDefault("sweep.task_memory_budget_mb", 50)
	v.SetDefault("sweep.max_concurrency", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: SFN_DATABASE_HOST -> database.host
	v.SetEnvPrefix("SFN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
