package handler

import (
	"log"
	"net/http"
	"pocket-pic-server/internal/modules/common/httpx"
	moduledto "pocket-pic-server/internal/modules/image/dto"
	imageservice "pocket-pic-server/internal/modules/image/service"
	platformservice "pocket-pic-server/internal/platform/service"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// UploadImages 批量上传图片。
// 表单字段：files（可多个）、category_id、tags（逗号分隔）、alt、description。
func (h *Handler) UploadImages(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}
	files := form.File["files"]

	categoryIDStr := c.PostForm("category_id")
	categoryID, err := strconv.ParseUint(categoryIDStr, 10, 64)
	if err != nil || categoryID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category_id 参数错误"})
		return
	}

	var tags []string
	if raw := c.PostForm("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	result, err := h.imageService.Ingest(c.Request.Context(), imageservice.IngestRequest{
		UserID:      uid,
		CategoryID:  uint(categoryID),
		Files:       files,
		Tags:        tags,
		Alt:         c.PostForm("alt"),
		Description: c.PostForm("description"),
	})
	if err != nil {
		if _, ok := platformservice.AsServiceError(err); !ok {
			log.Printf("Upload failed: %v", err)
		}
		httpx.WriteServiceError(c, err, "上传失败，请稍后重试")
		return
	}

	// 校验已通过：只要有文件成功即为部分成功，全部失败也返回结构化结果
	c.JSON(http.StatusOK, gin.H{
		"completed": result.Completed,
		"failures":  result.Failures,
	})
}

func (h *Handler) GetMyImage(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id 参数错误"})
		return
	}

	view, err := h.imageService.GetImage(uid, uint(id))
	if err != nil {
		httpx.WriteServiceError(c, err, "查询图片失败")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) GetMyImages(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category_id 参数错误"})
			return
		}
		id := uint(parsed)
		categoryID = &id
	}

	images, total, page, pageSize, err := h.imageService.ListUserImages(moduledto.UserImageListRequest{
		PaginationRequest: moduledto.PaginationRequest{Page: page, PageSize: pageSize},
		UserID:            uid,
		CategoryID:        categoryID,
		Search:            c.Query("search"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取图片列表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"list":      images,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// DeleteMyImage 用户删除自己的图片
func (h *Handler) DeleteMyImage(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id 参数错误"})
		return
	}

	if err := h.imageService.DeleteImage(uid, uint(id)); err != nil {
		httpx.WriteServiceError(c, err, "删除失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "删除成功"})
}

// currentUserID 从 JWT 中间件注入的上下文中取用户ID
func currentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户信息"})
		return 0, false
	}
	uid, ok := userID.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的用户ID类型"})
		return 0, false
	}
	return uid, true
}
