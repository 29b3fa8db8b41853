package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-app/internal/services"
	"github.com/adanyl0v/go-todo-app/internal/token"
)

type Handler interface {
	HandleSignup(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleGetProfile(c *gin.Context)
	HandleUpdateProfile(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleSetTaskCompleted(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleErrors(c *gin.Context)
	HandleRecovery(c *gin.Context, recovered any)
}

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(tokenString string) (*token.Claims, error)
}

type handlerImpl struct {
	logger   zerolog.Logger
	tokens   TokenParser
	auth     services.AuthService
	profiles services.ProfileService
	tasks    services.TaskService
	audit    services.AuditService
}

func New(
	logger zerolog.Logger,
	tokenParser TokenParser,
	authService services.AuthService,
	profileService services.ProfileService,
	taskService services.TaskService,
	auditService services.AuditService,
) Handler {
	return &handlerImpl{
		logger:   logger,
		tokens:   tokenParser,
		auth:     authService,
		profiles: profileService,
		tasks:    taskService,
		audit:    auditService,
	}
}

// RegisterRoutes mounts the API on router. authLimiter may be nil.
func RegisterRoutes(router gin.IRouter, h Handler, authLimiter gin.HandlerFunc) {
	authRouter := router.Group("/auth")
	if authLimiter != nil {
		authRouter.Use(authLimiter)
	}
	authRouter.POST("/signup", h.HandleSignup)
	authRouter.POST("/login", h.HandleLogin)

	userRouter := router.Group("/user", h.HandleAuthMiddleware)
	userRouter.GET("/get", h.HandleGetProfile)
	userRouter.PUT("/update", h.HandleUpdateProfile)

	todoRouter := router.Group("/todo", h.HandleAuthMiddleware)
	todoRouter.GET("/get", h.HandleGetTasks)
	todoRouter.POST("/create", h.HandleCreateTask)
	todoRouter.PUT("/update/:id", h.HandleUpdateTask)
	todoRouter.PUT("/isCompleted/:id", h.HandleSetTaskCompleted)
	todoRouter.DELETE("/delete/:id", h.HandleDeleteTask)
}
