package v1

import (
	"errors"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-app/internal/services"
	"github.com/adanyl0v/go-todo-app/internal/token"
)

const userIDCtxKey = "user_id"

func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	accessToken := bearerToken(c.GetHeader(authHeader))
	if accessToken == "" {
		h.logger.Error().Msg("authentication token required")
		abort(c, newBadRequestError(msgTokenRequired))
		return
	}

	claims, err := h.tokens.Parse(accessToken)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to parse token")
		if errors.Is(err, token.ErrTokenExpired) {
			abort(c, newForbiddenError(msgTokenExpired))
			return
		}
		abort(c, newForbiddenError(msgTokenInvalid))
		return
	}

	c.Set(userIDCtxKey, claims.UserID)
	c.Next()
}

// bearerToken returns the credentials part of an Authorization header.
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// ownerID returns the user id stored by HandleAuthMiddleware or aborts.
func (h *handlerImpl) ownerID(c *gin.Context) (string, bool) {
	userID := c.GetString(userIDCtxKey)
	if userID == "" {
		h.logger.Error().Msg("no user id found in token")
		abort(c, newBadRequestError(msgInvalidTokenUserID))
		return "", false
	}
	return userID, true
}

// HandleErrors records every unexpected error attached by the handlers and
// answers with a generic 500.
func (h *handlerImpl) HandleErrors(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}

	for _, ginErr := range c.Errors {
		params := services.RecordParams{
			Message: ginErr.Err.Error(),
			Path:    c.Request.URL.RequestURI(),
			Method:  c.Request.Method,
		}
		var se *stackError
		if errors.As(ginErr.Err, &se) {
			params.Stack = se.stack
		}

		h.logger.Error().
			Err(ginErr.Err).
			Str("path", params.Path).
			Str("method", params.Method).
			Msg("unhandled error")
		h.audit.Record(c.Request.Context(), params)
	}

	if !c.Writer.Written() {
		c.JSON(http.StatusInternalServerError, errorResponse{
			Success: false,
			Message: msgInternalServerError,
		})
	}
}

// HandleRecovery is a gin.RecoveryFunc.
func (h *handlerImpl) HandleRecovery(c *gin.Context, recovered any) {
	params := services.RecordParams{
		Stack:  string(debug.Stack()),
		Path:   c.Request.URL.RequestURI(),
		Method: c.Request.Method,
	}
	switch v := recovered.(type) {
	case error:
		params.Message = v.Error()
	case string:
		params.Message = v
	}

	h.logger.Error().
		Interface("panic", recovered).
		Str("path", params.Path).
		Str("method", params.Method).
		Msg("recovered from panic")
	h.audit.Record(c.Request.Context(), params)

	abort(c, newAPIError(http.StatusInternalServerError, msgInternalServerError))
}

// RequestLogger writes one access log entry per request.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		} else if status >= http.StatusBadRequest {
			event = logger.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("handled request")
	}
}

// CORS allows browser clients from the trusted origins. "*" trusts any
// origin; an empty list disables cross-origin access.
func CORS(trustedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	switch {
	case slices.Contains(trustedOrigins, "*"):
		cfg.AllowAllOrigins = true
	case len(trustedOrigins) == 0:
		return func(c *gin.Context) { c.Next() }
	default:
		cfg.AllowOrigins = trustedOrigins
	}
	return cors.New(cfg)
}
