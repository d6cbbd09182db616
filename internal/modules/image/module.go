package image

import (
	"pocket-pic-server/internal/blob"
	categoryrepo "pocket-pic-server/internal/modules/category/repo"
	"pocket-pic-server/internal/modules/image/handler"
	"pocket-pic-server/internal/modules/image/repo"
	"pocket-pic-server/internal/modules/image/service"
	userrepo "pocket-pic-server/internal/modules/user/repo"
	platformservice "pocket-pic-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(
	appService *platformservice.AppService,
	userStore userrepo.UserStore,
	categoryStore categoryrepo.CategoryStore,
	imageStore repo.ImageStore,
	blobStore blob.Store,
) *Module {
	moduleService := service.New(appService, userStore, categoryStore, imageStore, blobStore)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
