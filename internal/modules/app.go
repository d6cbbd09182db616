package modules

import (
	"pocket-pic-server/internal/blob"
	"pocket-pic-server/internal/modules/auth"
	"pocket-pic-server/internal/modules/category"
	categoryrepo "pocket-pic-server/internal/modules/category/repo"
	"pocket-pic-server/internal/modules/image"
	imagerepo "pocket-pic-server/internal/modules/image/repo"
	"pocket-pic-server/internal/modules/system"
	"pocket-pic-server/internal/modules/user"
	userrepo "pocket-pic-server/internal/modules/user/repo"
	platformservice "pocket-pic-server/internal/platform/service"
)

type AppModules struct {
	Auth     *auth.Module
	User     *user.Module
	Category *category.Module
	Image    *image.Module
	System   *system.Module
}

func New(
	appService *platformservice.AppService,
	userStore userrepo.UserStore,
	categoryStore categoryrepo.CategoryStore,
	imageStore imagerepo.ImageStore,
	blobStore blob.Store,
) *AppModules {
	return &AppModules{
		Auth:     auth.New(appService, userStore),
		User:     user.New(appService, userStore),
		Category: category.New(appService, categoryStore),
		Image:    image.New(appService, userStore, categoryStore, imageStore, blobStore),
		System:   system.New(appService, userStore, imageStore, blobStore),
	}
}
