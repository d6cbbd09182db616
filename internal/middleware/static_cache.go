package middleware

import (
	"pocket-pic-server/internal/config"

	"github.com/gin-gonic/gin"
)

// StaticCacheMiddleware 为图片静态资源添加 Cache-Control 头。
// 存储名带 uuid 不会复用，适合长缓存。
func StaticCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cc := config.Get().Upload.CacheControl
		if cc != "" {
			c.Header("Cache-Control", cc)
		}
		c.Next()
	}
}
