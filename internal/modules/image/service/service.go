package service

import (
	"pocket-pic-server/internal/blob"
	categoryrepo "pocket-pic-server/internal/modules/category/repo"
	"pocket-pic-server/internal/modules/image/repo"
	userrepo "pocket-pic-server/internal/modules/user/repo"
	platformservice "pocket-pic-server/internal/platform/service"
)

type Service struct {
	*platformservice.AppService
	userStore     userrepo.UserStore
	categoryStore categoryrepo.CategoryStore
	imageStore    repo.ImageStore
	blobStore     blob.Store
}

func New(
	appService *platformservice.AppService,
	userStore userrepo.UserStore,
	categoryStore categoryrepo.CategoryStore,
	imageStore repo.ImageStore,
	blobStore blob.Store,
) *Service {
	return &Service{
		AppService:    appService,
		userStore:     userStore,
		categoryStore: categoryStore,
		imageStore:    imageStore,
		blobStore:     blobStore,
	}
}
