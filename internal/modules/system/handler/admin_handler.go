package handler

import (
	"net/http"
	"pocket-pic-server/internal/modules/common/httpx"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetServerStats(c *gin.Context) {
	stats, err := h.systemService.AdminGetServerStats()
	if err != nil {
		httpx.WriteServiceError(c, err, "获取统计数据失败")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RunOrphanAudit 管理员触发一次孤儿审计
func (h *Handler) RunOrphanAudit(c *gin.Context) {
	report, err := h.systemService.AuditOrphans()
	if err != nil {
		httpx.WriteServiceError(c, err, "审计失败")
		return
	}
	c.JSON(http.StatusOK, report)
}
