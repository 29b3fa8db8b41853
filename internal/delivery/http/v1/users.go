package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-todo-app/internal/services"
)

func (h *handlerImpl) HandleGetProfile(c *gin.Context) {
	userID, ok := h.ownerID(c)
	if !ok {
		return
	}

	user, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to get profile")
		h.abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		Message: "User details fetched successfully",
		Data:    user,
	})
}

type updateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

func (h *handlerImpl) HandleUpdateProfile(c *gin.Context) {
	userID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return
	}

	user, err := h.profiles.UpdateProfile(c.Request.Context(), services.UpdateProfileParams{
		UserID:   userID,
		Username: req.Username,
		Address:  req.Address,
		Phone:    req.Phone,
		Avatar:   req.Avatar,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to update profile")
		h.abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		Message: "User updated successfully",
		Data:    user,
	})
}
