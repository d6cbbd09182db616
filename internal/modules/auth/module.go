package auth

import (
	"pocket-pic-server/internal/modules/auth/handler"
	"pocket-pic-server/internal/modules/auth/service"
	userrepo "pocket-pic-server/internal/modules/user/repo"
	platformservice "pocket-pic-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, userStore userrepo.UserStore) *Module {
	moduleService := service.New(appService, userStore)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
