package handler

import (
	"net/http"
	"pocket-pic-server/internal/modules/category/dto"
	"pocket-pic-server/internal/modules/common/httpx"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	view, err := h.categoryService.Create(req.Name)
	if err != nil {
		httpx.WriteServiceError(c, err, "创建分类失败")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) ListCategories(c *gin.Context) {
	views, err := h.categoryService.List()
	if err != nil {
		httpx.WriteServiceError(c, err, "获取分类列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": views})
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id 参数错误"})
		return
	}

	if err := h.categoryService.Delete(uint(id)); err != nil {
		httpx.WriteServiceError(c, err, "删除分类失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "删除成功"})
}
