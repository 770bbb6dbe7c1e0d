package config

// EnvPrefix namespaces every environment variable consumed by Load.
const EnvPrefix = "MARKETPLACE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "MARKETPLACE_APP_ENV"
	EnvPort       = "MARKETPLACE_APP_PORT"
	EnvDBDSN      = "MARKETPLACE_DB_DSN"
	EnvDBHost     = "MARKETPLACE_DB_HOST"
	EnvDBUser     = "MARKETPLACE_DB_USER"
	EnvDBName     = "MARKETPLACE_DB_NAME"
	EnvRedisURL   = "MARKETPLACE_REDIS_URL"
	EnvJWTSecret  = "MARKETPLACE_JWT_SECRET"
	EnvJWTIssuer  = "MARKETPLACE_JWT_ISSUER"
	EnvJWTExpMins = "MARKETPLACE_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
