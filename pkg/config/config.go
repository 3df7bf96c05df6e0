package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Auth         AuthConfig
	Session      SessionConfig
	FeatureFlags FeatureFlagsConfig
	Listing      ListingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = "udacimarket.db"
		}
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"UDACIMARKET_APP_ENV" required:"true"`
	Port         string `envconfig:"UDACIMARKET_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"UDACIMARKET_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"UDACIMARKET_LOG_WARN_STACK" default:"false"`

	// CORSOrigins overrides the built-in allowed origin list when set.
	CORSOrigins []string `envconfig:"UDACIMARKET_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"UDACIMARKET_DB_DSN"`
	Driver string `envconfig:"UDACIMARKET_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"UDACIMARKET_DB_HOST"`
	LegacyPort     int    `envconfig:"UDACIMARKET_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"UDACIMARKET_DB_USER"`
	LegacyPassword string `envconfig:"UDACIMARKET_DB_PASSWORD"`
	LegacyName     string `envconfig:"UDACIMARKET_DB_NAME"`
	LegacySSLMode  string `envconfig:"UDACIMARKET_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"UDACIMARKET_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"UDACIMARKET_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"UDACIMARKET_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"UDACIMARKET_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"UDACIMARKET_REDIS_URL" required:"true"`
	Address      string        `envconfig:"UDACIMARKET_REDIS_ADDR"`
	Password     string        `envconfig:"UDACIMARKET_REDIS_PASSWORD"`
	DB           int           `envconfig:"UDACIMARKET_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"UDACIMARKET_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"UDACIMARKET_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"UDACIMARKET_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"UDACIMARKET_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"UDACIMARKET_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AuthConfig describes the identity provider the verifier and login flow
// talk to (an Auth0-style tenant).
type AuthConfig struct {
	Domain       string        `envconfig:"UDACIMARKET_AUTH_DOMAIN" required:"true"`
	Audience     string        `envconfig:"UDACIMARKET_AUTH_AUDIENCE" required:"true"`
	ClientID     string        `envconfig:"UDACIMARKET_AUTH_CLIENT_ID"`
	ClientSecret string        `envconfig:"UDACIMARKET_AUTH_CLIENT_SECRET"`
	CallbackURL  string        `envconfig:"UDACIMARKET_AUTH_CALLBACK_URL"`
	JWKSCacheTTL time.Duration `envconfig:"UDACIMARKET_AUTH_JWKS_CACHE_TTL" default:"10m"`
}

// IssuerURL is the issuer every verified token must carry.
func (a AuthConfig) IssuerURL() string {
	return fmt.Sprintf("https://%s/", a.Domain)
}

// JWKSURL is the well-known discovery endpoint for the signing-key set.
func (a AuthConfig) JWKSURL() string {
	return fmt.Sprintf("https://%s/.well-known/jwks.json", a.Domain)
}

// LogoutURL is the provider endpoint that terminates the upstream session.
func (a AuthConfig) LogoutURL(returnTo string) string {
	v := url.Values{}
	v.Set("returnTo", returnTo)
	v.Set("client_id", a.ClientID)
	return fmt.Sprintf("https://%s/v2/logout?%s", a.Domain, v.Encode())
}

// SessionConfig names the server-side session slots and the cookie that
// keys them.
type SessionConfig struct {
	CookieName string        `envconfig:"UDACIMARKET_SESSION_COOKIE" default:"udacimarket_session"`
	ProfileKey string        `envconfig:"UDACIMARKET_SESSION_PROFILE_KEY" default:"profile"`
	IDTokenKey string        `envconfig:"UDACIMARKET_SESSION_ID_TOKEN_KEY" default:"token_id"`
	AccessKey  string        `envconfig:"UDACIMARKET_SESSION_ACCESS_KEY" default:"token_access"`
	TTL        time.Duration `envconfig:"UDACIMARKET_SESSION_TTL" default:"12h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"UDACIMARKET_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"UDACIMARKET_AUTO_MIGRATE" default:"false"`

	// SessionBypass lets first-party page flows authenticate API routes from
	// the server-side session instead of an Authorization header. Explicit
	// flag rather than Host-header matching.
	SessionBypass bool `envconfig:"UDACIMARKET_AUTH_SESSION_BYPASS" default:"false"`

	// TestMode enables the X-Test-Permission override and the fixed test
	// token. Never enable outside automated test runs.
	TestMode  bool   `envconfig:"UDACIMARKET_AUTH_TEST_MODE" default:"false"`
	TestToken string `envconfig:"UDACIMARKET_AUTH_TEST_TOKEN"`
}

type ListingConfig struct {
	ItemsPerPage int `envconfig:"UDACIMARKET_ITEMS_PER_PAGE" default:"25"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
