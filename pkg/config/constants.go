package config

// EnvPrefix is the envconfig prefix shared by every section.
const EnvPrefix = "UDACIMARKET"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "UDACIMARKET_DB_DSN"
	EnvDBHost = "UDACIMARKET_DB_HOST"
	EnvDBUser = "UDACIMARKET_DB_USER"
	EnvDBName = "UDACIMARKET_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
