package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-todo-app/internal/models"
	"github.com/adanyl0v/go-todo-app/internal/services"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Avatar   string `json:"avatar"`
}

func (h *handlerImpl) HandleSignup(c *gin.Context) {
	var req signupRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return
	}
	h.logger.Info().
		Str("email", req.Email).
		Msg("signup request")

	_, err = h.auth.Register(c.Request.Context(), services.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Address:  req.Address,
		Avatar:   req.Avatar,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to register user")
		h.abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response{
		Success: true,
		Message: "New user created successfully",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Token   string             `json:"token"`
	Data    models.UserSummary `json:"data"`
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), services.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to login")
		h.abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "User logged in successfully",
		Token:   result.Token,
		Data:    result.User,
	})
}

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
