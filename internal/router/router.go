package router

import (
	"pocket-pic-server/internal/middleware"
	"pocket-pic-server/internal/modules"
	platformservice "pocket-pic-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

type Router struct {
	modules *modules.AppModules
	service *platformservice.AppService
}

func NewRouter(appModules *modules.AppModules, appService *platformservice.AppService) *Router {
	return &Router{
		modules: appModules,
		service: appService,
	}
}

func (rt *Router) Init(r *gin.Engine) {
	api := r.Group("/api")
	// 应用请求体大小限制中间件
	api.Use(middleware.BodyLimitMiddleware())

	// 认证限流：同一实例在多个认证路由上复用，保持行为一致
	authLimiter := middleware.RateLimitMiddleware()

	registerAuthRoutes(api, authLimiter, rt.modules.Auth.Handler)
	registerUserRoutes(api, rt.service, rt.modules.User.Handler, rt.modules.Category.Handler, rt.modules.Image.Handler)
	registerAdminRoutes(api, rt.modules.System.Handler)
}
