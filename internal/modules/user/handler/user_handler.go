package handler

import (
	"net/http"
	"pocket-pic-server/internal/modules/common/httpx"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户信息"})
		return
	}
	uid, ok := userID.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的用户ID类型"})
		return
	}

	profile, err := h.userService.Profile(uid)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取个人信息失败")
		return
	}
	c.JSON(http.StatusOK, profile)
}
