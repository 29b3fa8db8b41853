package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type healthcheckResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

func Healthcheck(env, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, healthcheckResponse{
			Status:      "available",
			Environment: env,
			Version:     version,
		})
	}
}
