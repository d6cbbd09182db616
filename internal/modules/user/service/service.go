package service

import (
	"errors"
	"pocket-pic-server/internal/modules/user/dto"
	"pocket-pic-server/internal/modules/user/repo"
	platformservice "pocket-pic-server/internal/platform/service"

	"gorm.io/gorm"
)

type Service struct {
	*platformservice.AppService
	userStore repo.UserStore
}

func New(appService *platformservice.AppService, userStore repo.UserStore) *Service {
	return &Service{
		AppService: appService,
		userStore:  userStore,
	}
}

// Profile 返回个人信息与存储用量
func (s *Service) Profile(userID uint) (*dto.ProfileResponse, error) {
	user, err := s.userStore.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError("用户不存在")
		}
		return nil, platformservice.NewInternalError("查询用户信息失败")
	}

	quota := s.DefaultStorageQuota()
	if user.StorageQuota != nil {
		quota = *user.StorageQuota
	}

	return &dto.ProfileResponse{
		ID:           user.ID,
		Username:     user.Username,
		Admin:        user.Admin,
		StorageUsed:  user.StorageUsed,
		StorageQuota: quota,
	}, nil
}
