package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger 请求日志中间件
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		// 处理请求
		c.Next()

		// 带参数的接口按注册的路由模板记录，便于按接口聚合
		route := c.FullPath()
		if route == "" {
			route = path
		}

		latency := time.Since(start)
		status := c.Writer.Status()

		prefix := ""
		if status >= 500 {
			prefix = "[ERROR] "
		}
		log.Printf("%s[%s] %s %s %d %v",
			prefix,
			c.Request.Method,
			route,
			c.ClientIP(),
			status,
			latency,
		)
	}
}
