package router

import (
	"pocket-pic-server/internal/middleware"
	categoryhandler "pocket-pic-server/internal/modules/category/handler"
	imagehandler "pocket-pic-server/internal/modules/image/handler"
	userhandler "pocket-pic-server/internal/modules/user/handler"
	platformservice "pocket-pic-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

func registerUserRoutes(
	api *gin.RouterGroup,
	appService *platformservice.AppService,
	uh *userhandler.Handler,
	ch *categoryhandler.Handler,
	ih *imagehandler.Handler,
) {
	userGroup := api.Group("/user")
	userGroup.Use(middleware.JWTAuth())

	uploadBodyLimit := middleware.UploadBodyLimitMiddleware(appService)

	userGroup.GET("/profile", uh.GetProfile)

	userGroup.GET("/categories", ch.ListCategories)
	userGroup.POST("/categories", ch.CreateCategory)
	userGroup.DELETE("/categories/:id", ch.DeleteCategory)

	userGroup.POST("/upload", uploadBodyLimit, ih.UploadImages)
	userGroup.GET("/images", ih.GetMyImages)
	userGroup.GET("/images/:id", ih.GetMyImage)
	userGroup.DELETE("/images/:id", ih.DeleteMyImage)
}
