package config

const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv       = "STOREFRONT_APP_ENV"
	EnvPort         = "STOREFRONT_APP_PORT"
	EnvLogLevel     = "STOREFRONT_LOG_LEVEL"
	EnvCORSOrigins  = "STOREFRONT_CORS_ORIGINS"
	EnvStorage      = "STOREFRONT_STORAGE_BACKEND"
	EnvStorageKey   = "STOREFRONT_STORAGE_KEY"
	EnvStorageDir   = "STOREFRONT_STORAGE_DIR"
	EnvStorageQuota = "STOREFRONT_STORAGE_MAX_BYTES"
	EnvDBDSN        = "STOREFRONT_DB_DSN"
	EnvDBDriver     = "STOREFRONT_DB_DRIVER"
	EnvAutoMigrate  = "STOREFRONT_AUTO_MIGRATE"
	EnvRedisURL     = "STOREFRONT_REDIS_URL"
	EnvRedisAddr    = "STOREFRONT_REDIS_ADDR"
	EnvFreeShipping = "STOREFRONT_CART_FREE_SHIPPING_THRESHOLD"
	EnvShippingFee  = "STOREFRONT_CART_SHIPPING_FEE"

	EnvSessionIdleTTL = "STOREFRONT_CART_SESSION_IDLE_TTL"
	EnvMaxSessions    = "STOREFRONT_CART_MAX_SESSIONS"
)

const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageSQL    = "sql"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)
