package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-todo-app/internal/config"
	"github.com/adanyl0v/go-todo-app/internal/delivery/http/v1"
	"github.com/adanyl0v/go-todo-app/internal/repositories/auditlogs"
	"github.com/adanyl0v/go-todo-app/internal/repositories/tasks"
	"github.com/adanyl0v/go-todo-app/internal/repositories/users"
	"github.com/adanyl0v/go-todo-app/internal/services"
	"github.com/adanyl0v/go-todo-app/internal/token"
)

// version is overridden at build time with -ldflags "-X ...".
var version = "1.0.0"

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router, err := newRouter(ctx, cfg)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Strs("trusted_proxies", httpCfg.TrustedProxies).
			Msg("failed to set up http router")
		panic(err)
	}

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	globalLogger.Info().
		Str("signal", sig.String()).
		Msg("shutting down http server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer shutdownCancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func newRouter(ctx context.Context, cfg *config.Config) (*gin.Engine, error) {
	v1Handler := newV1Handler(cfg.JWT)

	router := gin.New()
	// Forwarding headers are honored only from these peers, so the rate
	// limiter keys on an address the client cannot pick.
	err := router.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	if err != nil {
		return nil, err
	}

	router.Use(v1.RequestLogger(globalLogger))
	router.Use(gin.CustomRecovery(v1Handler.HandleRecovery))
	router.Use(v1.CORS(cfg.HTTP.CORSOrigins))
	router.Use(v1Handler.HandleErrors)

	router.GET("/healthcheck", v1.Healthcheck(cfg.Env, version))

	var authLimiter gin.HandlerFunc
	if limitCfg := cfg.HTTP.RateLimit; limitCfg.Enabled {
		authLimiter = v1.NewRateLimiter(ctx, limitCfg.RPS, limitCfg.Burst).Handle
	}
	v1.RegisterRoutes(router.Group("/api/v1"), v1Handler, authLimiter)

	return router, nil
}

func newV1Handler(jwtCfg config.JWTConfig) v1.Handler {
	userRepo := users.NewPostgresRepository(globalPostgresDB)
	taskRepo := tasks.NewPostgresRepository(globalPostgresDB)
	auditRepo := auditlogs.NewPostgresRepository(globalPostgresDB)

	issuer := token.NewIssuer(jwtCfg.Issuer, []byte(jwtCfg.SigningKey), jwtCfg.TokenTTL)

	return v1.New(
		globalLogger,
		issuer,
		services.NewAuthService(globalLogger, userRepo, issuer, nil),
		services.NewProfileService(globalLogger, userRepo, taskRepo),
		services.NewTaskService(globalLogger, userRepo, taskRepo),
		services.NewAuditService(globalLogger, auditRepo),
	)
}
