package app

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/go-todo-app/internal/config"
)

func MustReadEnv() {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}
	globalLogger.Info().
		Str("env", cfg.Env).
		Str("http_port", cfg.HTTP.Port).
		Strs("cors_origins", cfg.HTTP.CORSOrigins).
		Strs("trusted_proxies", cfg.HTTP.TrustedProxies).
		Bool("rate_limit", cfg.HTTP.RateLimit.Enabled).
		Dur("token_ttl", cfg.JWT.TokenTTL).
		Msg("read env")

	config.SetGlobal(cfg)
}
