package handler

import categoryservice "pocket-pic-server/internal/modules/category/service"

type Handler struct {
	categoryService *categoryservice.Service
}

func New(categoryService *categoryservice.Service) *Handler {
	return &Handler{categoryService: categoryService}
}
