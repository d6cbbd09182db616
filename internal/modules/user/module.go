package user

import (
	"pocket-pic-server/internal/modules/user/handler"
	"pocket-pic-server/internal/modules/user/repo"
	"pocket-pic-server/internal/modules/user/service"
	platformservice "pocket-pic-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, userStore repo.UserStore) *Module {
	moduleService := service.New(appService, userStore)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
