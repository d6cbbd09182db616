package service

import (
	"errors"
	"pocket-pic-server/internal/config"
	moduledto "pocket-pic-server/internal/modules/image/dto"
	"pocket-pic-server/internal/modules/image/repo"
	platformservice "pocket-pic-server/internal/platform/service"

	"gorm.io/gorm"
)

// GetImage 获取用户自己的一张图片。非本人图片按不存在处理。
func (s *Service) GetImage(userID uint, imageID uint) (*moduledto.ImageView, error) {
	image, err := s.imageStore.FindByIDAndUserID(imageID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError("图片不存在")
		}
		return nil, platformservice.NewInternalError("查询图片失败")
	}
	view := moduledto.NewImageView(image, config.Get().Upload.URLPrefix)
	return &view, nil
}

// ListUserImages 分页列出用户的图片，可按分类过滤、按文件名/描述/标签模糊搜索。
func (s *Service) ListUserImages(req moduledto.UserImageListRequest) ([]moduledto.ImageView, int64, int, int, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	images, total, err := s.imageStore.ListImages(repo.ListImagesParams{
		UserID:     &req.UserID,
		CategoryID: req.CategoryID,
		Search:     req.Search,
		Offset:     (page - 1) * pageSize,
		Limit:      pageSize,
	})
	if err != nil {
		return nil, 0, page, pageSize, err
	}

	urlPrefix := config.Get().Upload.URLPrefix
	views := make([]moduledto.ImageView, 0, len(images))
	for i := range images {
		views = append(views, moduledto.NewImageView(&images[i], urlPrefix))
	}
	return views, total, page, pageSize, nil
}
