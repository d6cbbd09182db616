package service

import (
	"pocket-pic-server/internal/blob"
	imagerepo "pocket-pic-server/internal/modules/image/repo"
	userrepo "pocket-pic-server/internal/modules/user/repo"
	platformservice "pocket-pic-server/internal/platform/service"
)

type Service struct {
	*platformservice.AppService
	userStore  userrepo.UserStore
	imageStore imagerepo.ImageStore
	blobStore  blob.Store
}

func New(
	appService *platformservice.AppService,
	userStore userrepo.UserStore,
	imageStore imagerepo.ImageStore,
	blobStore blob.Store,
) *Service {
	return &Service{
		AppService: appService,
		userStore:  userStore,
		imageStore: imageStore,
		blobStore:  blobStore,
	}
}
