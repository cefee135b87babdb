package config

const (
	EnvPrefix = "TRENDZ"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "TRENDZ_DB_DSN"
	EnvDBHost = "TRENDZ_DB_HOST"
	EnvDBUser = "TRENDZ_DB_USER"
	EnvDBName = "TRENDZ_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
