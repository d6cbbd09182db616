package dto

import "pocket-pic-server/internal/model"

type CategoryView struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	ImageCount int64  `json:"image_count"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func NewCategoryView(category *model.Category) CategoryView {
	return CategoryView{
		ID:         category.ID,
		Name:       category.Name,
		ImageCount: category.ImageCount,
	}
}
