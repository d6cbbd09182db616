package category

import (
	"pocket-pic-server/internal/modules/category/handler"
	"pocket-pic-server/internal/modules/category/repo"
	"pocket-pic-server/internal/modules/category/service"
	platformservice "pocket-pic-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, categoryStore repo.CategoryStore) *Module {
	moduleService := service.New(appService, categoryStore)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
