package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
	Cart    CartConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	CORSOrigins     []string      `envconfig:"STOREFRONT_CORS_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	ReadTimeout     time.Duration `envconfig:"STOREFRONT_HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"STOREFRONT_HTTP_WRITE_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"STOREFRONT_HTTP_SHUTDOWN_TIMEOUT" default:"15s"`
}

// StorageConfig selects where carts are persisted. Key mirrors the browser
// local storage key the storefront has always used.
type StorageConfig struct {
	Backend  string `envconfig:"STOREFRONT_STORAGE_BACKEND" default:"file"`
	Key      string `envconfig:"STOREFRONT_STORAGE_KEY" default:"octocat-cart"`
	Dir      string `envconfig:"STOREFRONT_STORAGE_DIR" default:".storefront"`
	MaxBytes int64  `envconfig:"STOREFRONT_STORAGE_MAX_BYTES" default:"5242880"`
}

type DBConfig struct {
	DSN         string `envconfig:"STOREFRONT_DB_DSN"`
	Driver      string `envconfig:"STOREFRONT_DB_DRIVER" default:"sqlite"`
	AutoMigrate bool   `envconfig:"STOREFRONT_AUTO_MIGRATE" default:"true"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"3s"`
	// CartTTL expires idle carts; zero keeps them until overwritten.
	CartTTL time.Duration `envconfig:"STOREFRONT_REDIS_CART_TTL" default:"0"`
}

// CartConfig holds the shipping rule applied to cart subtotals.
type CartConfig struct {
	FreeShippingThreshold decimal.Decimal `envconfig:"STOREFRONT_CART_FREE_SHIPPING_THRESHOLD" default:"100.00"`
	ShippingFee           decimal.Decimal `envconfig:"STOREFRONT_CART_SHIPPING_FEE" default:"25.00"`

	// SessionIdleTTL and MaxSessions bound the carts the API keeps in memory.
	SessionIdleTTL time.Duration `envconfig:"STOREFRONT_CART_SESSION_IDLE_TTL" default:"30m"`
	MaxSessions    int           `envconfig:"STOREFRONT_CART_MAX_SESSIONS" default:"10000"`
}

func (c *Config) validate() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case StorageMemory, StorageFile:
	case StorageRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("%s or %s is required for the redis storage backend", EnvRedisURL, EnvRedisAddr)
		}
	case StorageSQL:
		if err := c.DB.EnsureDSN(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%s must be one of memory, file, redis, sql (got %q)", EnvStorage, c.Storage.Backend)
	}

	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("%s must not be empty", EnvStorageKey)
	}
	if c.Cart.FreeShippingThreshold.IsNegative() {
		return fmt.Errorf("%s must not be negative", EnvFreeShipping)
	}
	if c.Cart.ShippingFee.IsNegative() {
		return fmt.Errorf("%s must not be negative", EnvShippingFee)
	}
	if c.Cart.SessionIdleTTL <= 0 {
		return fmt.Errorf("%s must be positive", EnvSessionIdleTTL)
	}
	if c.Cart.MaxSessions <= 0 {
		return fmt.Errorf("%s must be positive", EnvMaxSessions)
	}
	return nil
}

// EnsureDSN normalises the driver name and fills the default SQLite path.
func (db *DBConfig) EnsureDSN() error {
	db.Driver = strings.ToLower(strings.TrimSpace(db.Driver))
	switch db.Driver {
	case DriverSQLite:
		if db.DSN == "" {
			db.DSN = "storefront.db"
		}
	case DriverPostgres:
		if db.DSN == "" {
			return fmt.Errorf("%s is required when %s=postgres", EnvDBDSN, EnvDBDriver)
		}
	default:
		return fmt.Errorf("%s must be sqlite or postgres (got %q)", EnvDBDriver, db.Driver)
	}
	return nil
}
