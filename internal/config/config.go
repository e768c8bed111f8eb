package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Identity provider modes.
const (
	IdentityModeMock = "mock"
	IdentityModeLDAP = "ldap"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Identity     IdentityConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values. An empty DSN selects the
// in-memory store.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines session token parameters.
type AuthConfig struct {
	JWTSecret         string
	SessionTTLMinutes int
}

// IdentityConfig selects and configures the identity provider.
type IdentityConfig struct {
	Mode       string
	RosterFile string
	LDAP       LDAPConfig
}

// LDAPConfig holds directory-service settings.
type LDAPConfig struct {
	URL             string
	Domain          string
	BaseDN          string
	ServiceAccount  string
	ServicePassword string
	AdminsGroup     string
	ManagersGroup   string
	TimeoutSeconds  int
}

// NotificationConfig tunes the inbox.
type NotificationConfig struct {
	UnreadCacheTTLSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "officedesk"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("AUTH_JWT_SECRET", "dev-secret"),
			SessionTTLMinutes: getEnvAsInt("AUTH_SESSION_TTL_MINUTES", 10),
		},
		Identity: IdentityConfig{
			Mode:       strings.ToLower(getEnv("IDENTITY_MODE", IdentityModeMock)),
			RosterFile: getEnv("IDENTITY_ROSTER_FILE", "mock_data/users.json"),
			LDAP: LDAPConfig{
				URL:             os.Getenv("LDAP_URL"),
				Domain:          os.Getenv("LDAP_DOMAIN"),
				BaseDN:          os.Getenv("LDAP_BASE_DN"),
				ServiceAccount:  os.Getenv("LDAP_SERVICE_ACCOUNT"),
				ServicePassword: os.Getenv("LDAP_SERVICE_PASSWORD"),
				AdminsGroup:     os.Getenv("LDAP_ADMINS_GROUP"),
				ManagersGroup:   os.Getenv("LDAP_MANAGERS_GROUP"),
				TimeoutSeconds:  getEnvAsInt("LDAP_TIMEOUT_SECONDS", 5),
			},
		},
		Notification: NotificationConfig{
			UnreadCacheTTLSeconds: getEnvAsInt("NOTIFY_UNREAD_CACHE_TTL_SECONDS", 60),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Identity.Mode {
	case IdentityModeMock:
		if c.Identity.RosterFile == "" {
			return fmt.Errorf("IDENTITY_ROSTER_FILE required in %s mode", IdentityModeMock)
		}
	case IdentityModeLDAP:
		if c.Identity.LDAP.URL == "" || c.Identity.LDAP.BaseDN == "" {
			return fmt.Errorf("LDAP_URL and LDAP_BASE_DN required in %s mode", IdentityModeLDAP)
		}
	default:
		return fmt.Errorf("invalid IDENTITY_MODE %q", c.Identity.Mode)
	}
	if c.App.Env == "production" && c.Auth.JWTSecret == "dev-secret" {
		return fmt.Errorf("AUTH_JWT_SECRET must be set in production")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the directory dial timeout.
func (l LDAPConfig) Timeout() time.Duration {
	if l.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// UnreadCacheTTL returns how long cached unread counts live.
func (n NotificationConfig) UnreadCacheTTL() time.Duration {
	if n.UnreadCacheTTLSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(n.UnreadCacheTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
