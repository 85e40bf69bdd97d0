package config

// EnvPrefix namespaces every environment variable the platform reads.
const EnvPrefix = "gasline"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced directly in error messages and tests.
const (
	EnvAppEnv   = "GASLINE_APP_ENV"
	EnvPort     = "GASLINE_APP_PORT"
	EnvDBDSN    = "GASLINE_DB_DSN"
	EnvDBHost   = "GASLINE_DB_HOST"
	EnvDBUser   = "GASLINE_DB_USER"
	EnvDBName   = "GASLINE_DB_NAME"
	EnvRedisURL = "GASLINE_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
