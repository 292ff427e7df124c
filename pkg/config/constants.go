package config

// EnvPrefix namespaces every environment variable consumed by the platform.
const EnvPrefix = "shopora"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names, spelled out so tests and error messages can
// reference them without drifting from the struct tags.
const (
	EnvAppEnv   = "SHOPORA_APP_ENV"
	EnvPort     = "SHOPORA_APP_PORT"
	EnvDBDSN    = "SHOPORA_DB_DSN"
	EnvDBHost   = "SHOPORA_DB_HOST"
	EnvDBUser   = "SHOPORA_DB_USER"
	EnvDBName   = "SHOPORA_DB_NAME"
	EnvRedisURL = "SHOPORA_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
