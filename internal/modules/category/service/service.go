package service

import (
	"errors"
	"log"
	"pocket-pic-server/internal/model"
	moduledto "pocket-pic-server/internal/modules/category/dto"
	"pocket-pic-server/internal/modules/category/repo"
	platformservice "pocket-pic-server/internal/platform/service"
	"strings"

	"gorm.io/gorm"
)

type Service struct {
	*platformservice.AppService
	categoryStore repo.CategoryStore
}

func New(appService *platformservice.AppService, categoryStore repo.CategoryStore) *Service {
	return &Service{
		AppService:    appService,
		categoryStore: categoryStore,
	}
}

// Create 创建分类。名称唯一，不区分大小写。
func (s *Service) Create(name string) (*moduledto.CategoryView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, platformservice.NewValidationError("分类名称不能为空")
	}

	if _, err := s.categoryStore.FindByName(name); err == nil {
		return nil, platformservice.NewConflictError("分类名称已存在")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Find category error: %v\n", err)
		return nil, platformservice.NewInternalError("查询分类失败")
	}

	category := &model.Category{Name: name}
	if err := s.categoryStore.Create(category); err != nil {
		log.Printf("Create category error: %v\n", err)
		return nil, platformservice.NewInternalError("创建分类失败")
	}

	view := moduledto.NewCategoryView(category)
	return &view, nil
}

func (s *Service) List() ([]moduledto.CategoryView, error) {
	categories, err := s.categoryStore.List()
	if err != nil {
		return nil, platformservice.NewInternalError("获取分类列表失败")
	}
	views := make([]moduledto.CategoryView, 0, len(categories))
	for i := range categories {
		views = append(views, moduledto.NewCategoryView(&categories[i]))
	}
	return views, nil
}

// CanDelete 判断分类是否可删除：仅当没有图片引用它时。
// 必须用删除时刻的实时计数，不读 image_count 缓存列，
// 避免列表页与删除动作之间新增了图片还被误删。
func (s *Service) CanDelete(categoryID uint) (bool, error) {
	count, err := s.categoryStore.CountImages(categoryID)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// Delete 删除空分类。仍有图片引用的分类拒绝删除。
func (s *Service) Delete(categoryID uint) error {
	if _, err := s.categoryStore.FindByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return platformservice.NewNotFoundError("分类不存在")
		}
		return platformservice.NewInternalError("查询分类失败")
	}

	ok, err := s.CanDelete(categoryID)
	if err != nil {
		log.Printf("Count category images error: %v, category id: %d\n", err, categoryID)
		return platformservice.NewInternalError("查询分类引用失败")
	}
	if !ok {
		return platformservice.NewConflictError("分类下仍有图片，无法删除")
	}

	if err := s.categoryStore.Delete(categoryID); err != nil {
		log.Printf("Delete category error: %v, category id: %d\n", err, categoryID)
		return platformservice.NewInternalError("删除分类失败")
	}
	return nil
}
