package config

// EnvPrefix namespaces every environment variable read by envconfig.
const EnvPrefix = "MERCATO"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "MERCATO_APP_ENV"
	EnvPort     = "MERCATO_APP_PORT"
	EnvDBDSN    = "MERCATO_DB_DSN"
	EnvDBHost   = "MERCATO_DB_HOST"
	EnvDBUser   = "MERCATO_DB_USER"
	EnvDBName   = "MERCATO_DB_NAME"
	EnvRedisURL = "MERCATO_REDIS_URL"

	EnvJWTSecret              = "MERCATO_JWT_SECRET"
	EnvJWTIssuer              = "MERCATO_JWT_ISSUER"
	EnvJWTExpMins             = "MERCATO_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "MERCATO_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
