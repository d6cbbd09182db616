package system

import (
	"pocket-pic-server/internal/blob"
	imagerepo "pocket-pic-server/internal/modules/image/repo"
	"pocket-pic-server/internal/modules/system/handler"
	"pocket-pic-server/internal/modules/system/service"
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
	imageStore imagerepo.ImageStore,
	blobStore blob.Store,
) *Module {
	moduleService := service.New(appService, userStore, imageStore, blobStore)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
