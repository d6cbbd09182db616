package handler

import (
	"net/http"
	moduledto "pocket-pic-server/internal/modules/auth/dto"
	"pocket-pic-server/internal/modules/common/httpx"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Register(c *gin.Context) {
	var req moduledto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	if err := h.authService.Register(req); err != nil {
		httpx.WriteServiceError(c, err, "注册失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "注册成功"})
}

func (h *Handler) Login(c *gin.Context) {
	var req moduledto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		httpx.WriteServiceError(c, err, "登录失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}
