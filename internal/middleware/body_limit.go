package middleware

import (
	"fmt"
	"net/http"
	platformservice "pocket-pic-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

// BodyLimitMiddleware 限制普通 JSON 请求体大小
func BodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 默认 2MB，上传接口单独用 UploadBodyLimitMiddleware
		maxBytes := int64(2) * 1024 * 1024
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// UploadBodyLimitMiddleware 限制批量上传接口的请求体大小。
// 上限为 单文件上限 × 批次文件数上限，再留一点表单开销余量。
func UploadBodyLimitMiddleware(appService *platformservice.AppService) gin.HandlerFunc {
	return func(c *gin.Context) {
		maxBytes := appService.MaxUploadBytes()*int64(appService.MaxBatchCount()) + 1024*1024

		if c.Request.ContentLength > maxBytes && c.Request.ContentLength != -1 {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("请求体过大，单文件不能超过 %dMB", appService.MaxUploadBytes()/1024/1024),
			})
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
