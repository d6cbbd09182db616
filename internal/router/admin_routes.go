package router

import (
	"pocket-pic-server/internal/middleware"
	systemhandler "pocket-pic-server/internal/modules/system/handler"

	"github.com/gin-gonic/gin"
)

func registerAdminRoutes(api *gin.RouterGroup, h *systemhandler.Handler) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.JWTAuth())
	adminGroup.Use(middleware.AdminOnly())

	adminGroup.GET("/stats", h.GetServerStats)
	adminGroup.POST("/audit/orphans", h.RunOrphanAudit)
}
