package repo

import (
	"pocket-pic-server/internal/model"

	"gorm.io/gorm"
)

type CategoryStore interface {
	Create(category *model.Category) error
	FindByID(id uint) (*model.Category, error)
	// FindByName 按名称查找，不区分大小写
	FindByName(name string) (*model.Category, error)
	List() ([]model.Category, error)
	Delete(id uint) error
	// CountImages 实时统计引用该分类的图片数，不使用 image_count 缓存列。
	// 删除前的判断必须用它，避免列表页与删除动作之间新增图片后误删。
	CountImages(categoryID uint) (int64, error)
}

func NewCategoryRepository(db *gorm.DB) CategoryStore {
	return &CategoryRepository{db: db}
}
