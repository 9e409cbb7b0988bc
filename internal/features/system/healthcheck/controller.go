package system_healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/health", c.CheckHealth)
}

// CheckHealth
// @Summary Check service health
// @Description Report uptime, workspace counts and host memory usage
// @Tags system
// @Produce json
// @Success 200 {object} system_healthcheck.HealthcheckResponseDTO
// @Router /system/health [get]
func (c *HealthcheckController) CheckHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.healthcheckService.GetHealth(ctx.Request.Context()))
}
