package v1

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-todo-app/internal/services"
)

const (
	msgInvalidRequestBody  = "Invalid request body"
	msgTokenRequired       = "Authentication token required"
	msgTokenExpired        = "Token expired, please login again"
	msgTokenInvalid        = "Invalid token"
	msgInvalidTokenUserID  = "Invalid or missing user ID in token"
	msgMissingFields       = "Please fill all required fields"
	msgMissingCredentials  = "Email and password should not be empty"
	msgPasswordTooShort    = "Password length must be greater than 5"
	msgEmailRegistered     = "Email already registered, please login"
	msgUserNotFound        = "User not found"
	msgPasswordMismatch    = "Email or password invalid"
	msgTaskNotFound        = "Todo not found or not yours"
	msgEmptyTaskTitle      = "Title must not be empty"
	msgEmptyProfileField   = "Username and phone must not be empty"
	msgTooManyRequests     = "Too many requests, please try again later"
	msgInternalServerError = "Internal Server Error"
)

type apiError struct {
	Code    int
	Message string
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, errorResponse{
		Success: false,
		Message: err.Message,
	})
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newForbiddenError(message string) apiError {
	return newAPIError(http.StatusForbidden, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

// translateServiceError maps the known service errors to a client error.
// It reports false for unexpected errors.
func translateServiceError(err error) (apiError, bool) {
	switch {
	case errors.Is(err, services.ErrMissingRequiredFields):
		return newBadRequestError(msgMissingFields), true
	case errors.Is(err, services.ErrMissingCredentials):
		return newBadRequestError(msgMissingCredentials), true
	case errors.Is(err, services.ErrPasswordTooShort):
		return newBadRequestError(msgPasswordTooShort), true
	case errors.Is(err, services.ErrEmptyTaskTitle):
		return newBadRequestError(msgEmptyTaskTitle), true
	case errors.Is(err, services.ErrEmptyProfileField):
		return newBadRequestError(msgEmptyProfileField), true
	case errors.Is(err, services.ErrValidation):
		return newBadRequestError(err.Error()), true
	case errors.Is(err, services.ErrUserAlreadyExists):
		// Kept as 400 for the existing web client.
		return newBadRequestError(msgEmailRegistered), true
	case errors.Is(err, services.ErrUserNotFound):
		return newNotFoundError(msgUserNotFound), true
	case errors.Is(err, services.ErrUserPasswordMismatch):
		return newUnauthorizedError(msgPasswordMismatch), true
	case errors.Is(err, services.ErrTaskNotFound):
		return newNotFoundError(msgTaskNotFound), true
	}
	return apiError{}, false
}

// stackError carries the stack of the handler that gave up on a request.
type stackError struct {
	err   error
	stack string
}

func (e *stackError) Error() string {
	return e.err.Error()
}

func (e *stackError) Unwrap() error {
	return e.err
}

// abortWithServiceError answers with the translated client error or hands
// an unexpected error over to HandleErrors.
func (h *handlerImpl) abortWithServiceError(c *gin.Context, err error) {
	if apiErr, ok := translateServiceError(err); ok {
		abort(c, apiErr)
		return
	}

	_ = c.Error(&stackError{err: err, stack: string(debug.Stack())})
	c.Abort()
}
