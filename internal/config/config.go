package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Session storage backends.
const (
	BackendCookie   = "cookie"
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Login modes.
const (
	LoginLocal  = "local"
	LoginRemote = "remote"
)

// DefaultCookieSecret is only acceptable outside prod.
const DefaultCookieSecret = "dev-cookie-secret-change-me"

// EnvConfigPath names the optional YAML file read before the environment.
const EnvConfigPath = "FORUM_CONFIG"

type Config struct {
	Port string `yaml:"port" env:"PORT" env-default:"3000"`

	// APIURL is the base URL of the server exposing /api/auth/*. The web UI
	// serves those endpoints itself, so by default it points at its own port.
	APIURL string `yaml:"api_url" env:"FORUM_API_URL" env-default:"http://localhost:3000"`

	// Env is "dev" (default) or "prod". When "prod", COOKIE_SECRET must be set and not the default.
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"text"`
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string `yaml:"tls_cert_file" env:"TLS_CERT_FILE"`
	TLSKeyFile  string `yaml:"tls_key_file" env:"TLS_KEY_FILE"`

	// CORSAllowedOrigins is a comma-separated list of origins allowed to call /api.
	// When empty, no CORS headers are sent (same-origin only).
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`

	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"MAX_BODY_BYTES" env-default:"1048576"`

	Session Session `yaml:"session"`
	DB      DB      `yaml:"db"`
	Auth    Auth    `yaml:"auth"`
}

// Session selects and configures where the signed-in user is kept.
type Session struct {
	// Backend is one of cookie, file, memory, sqlite, postgres, redis.
	// Empty means the program default (cookie for the web UI, file for the CLI).
	Backend string `yaml:"backend" env:"SESSION_BACKEND"`

	// Dir holds the file backend's entries. Empty means <user config dir>/forum-web.
	Dir string `yaml:"dir" env:"SESSION_DIR"`

	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"forum-session.db"`

	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB" env-default:"0"`
	RedisPrefix   string `yaml:"redis_prefix" env:"REDIS_PREFIX" env-default:"forum:session:"`

	CookieName   string `yaml:"cookie_name" env:"COOKIE_NAME" env-default:"forum_session"`
	CookieSecret string `yaml:"cookie_secret" env:"COOKIE_SECRET" env-default:"dev-cookie-secret-change-me"`
	CookieSecure bool   `yaml:"cookie_secure" env:"COOKIE_SECURE"`
}

// DB is the Postgres connection used by the postgres session backend.
type DB struct {
	Host string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	Name string `yaml:"name" env:"DB_NAME" env-default:"forumdb"`
	User string `yaml:"user" env:"DB_USER" env-default:"forum"`
	Pass string `yaml:"pass" env:"DB_PASS" env-default:"forum"`

	// MaxOpenConns is the maximum number of open connections to the database (default 10).
	MaxOpenConns int `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	// MaxIdleConns is the maximum number of idle connections (default 2).
	MaxIdleConns int `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"2"`
}

// URL returns the postgres:// form used by migrations.
func (d DB) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Auth configures how login and register reach a backend.
type Auth struct {
	// LoginMode is "local" (synthesize the user, no network) or "remote" (POST /api/auth/login).
	LoginMode string `yaml:"login_mode" env:"LOGIN_MODE" env-default:"local"`

	// RequestTimeout bounds every call to the auth endpoints.
	RequestTimeout time.Duration `yaml:"request_timeout" env:"AUTH_REQUEST_TIMEOUT" env-default:"10s"`

	// ReservedEmails are rejected by the placeholder register endpoint with 409.
	ReservedEmails []string `yaml:"reserved_emails" env:"RESERVED_EMAILS" env-separator:"," env-default:"test@example.com"`
}

// Load reads the YAML file named by FORUM_CONFIG when set, then the environment.
// Environment variables win over the file.
func Load() (Config, error) {
	var cfg Config
	if path := os.Getenv(EnvConfigPath); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}

// WithDefaultBackend returns cfg with Session.Backend set to backend when empty.
func (c Config) WithDefaultBackend(backend string) Config {
	if c.Session.Backend == "" {
		c.Session.Backend = backend
	}
	return c
}

// Validate rejects unknown backends and modes, and insecure prod settings.
func (c Config) Validate() error {
	switch c.Session.Backend {
	case "", BackendCookie, BackendFile, BackendMemory, BackendSQLite, BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}
	switch c.Auth.LoginMode {
	case LoginLocal, LoginRemote:
	default:
		return fmt.Errorf("unknown login mode %q", c.Auth.LoginMode)
	}
	if c.Env == "prod" && (c.Session.CookieSecret == "" || c.Session.CookieSecret == DefaultCookieSecret) {
		return errors.New("COOKIE_SECRET must be set in prod")
	}
	if c.Auth.RequestTimeout <= 0 {
		return errors.New("AUTH_REQUEST_TIMEOUT must be positive")
	}
	return nil
}
