package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string `env:"ENV" env-required:"true"`
	Log      LogConfig
	HTTP     HTTPConfig
	Postgres PostgresConfig
	JWT      JWTConfig
}

// LogConfig overrides the level and format implied by Env.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"`
	Format string `env:"LOG_FORMAT"`
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"5000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	CORSOrigins     []string      `env:"HTTP_CORS_ORIGINS" env-default:"http://localhost:5173" env-separator:","`
	// TrustedProxies lists the proxies whose forwarding headers set the
	// client IP. Empty means the peer address is always used.
	TrustedProxies  []string      `env:"HTTP_TRUSTED_PROXIES" env-separator:","`
	RateLimit       RateLimitConfig
}

type RateLimitConfig struct {
	Enabled bool    `env:"HTTP_RATE_LIMIT_ENABLED" env-default:"true"`
	RPS     float64 `env:"HTTP_RATE_LIMIT_RPS" env-default:"2"`
	Burst   int     `env:"HTTP_RATE_LIMIT_BURST" env-default:"4"`
}

type PostgresConfig struct {
	Host           string        `env:"POSTGRES_HOST" env-required:"true"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME" env-required:"true"`
	Password       string        `env:"POSTGRES_PASSWORD" env-required:"true"`
	Database       string        `env:"POSTGRES_DATABASE" env-required:"true"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

type JWTConfig struct {
	Issuer     string        `env:"JWT_ISSUER" env-default:"go-todo-app"`
	SigningKey string        `env:"JWT_SIGNING_KEY" env-required:"true"`
	TokenTTL   time.Duration `env:"JWT_TOKEN_TTL" env-default:"168h"`
}

// ClientConfig configures the command-line client.
type ClientConfig struct {
	ServerURL   string        `env:"TODO_SERVER_URL" env-default:"http://localhost:5000/api/v1"`
	SessionFile string        `env:"TODO_SESSION_FILE"`
	Timeout     time.Duration `env:"TODO_TIMEOUT" env-default:"10s"`
}
