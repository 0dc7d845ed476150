package middleware

import (
	"strconv"
	"time"
	"xhs_spider/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware 请求指标中间件
func MetricsMiddleware() gin.HandlerFunc {
	collector := metrics.GetGlobalCollector()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			// 未匹配到路由的请求统一归类，避免标签爆炸
			endpoint = "unmatched"
		}
		collector.RecordHTTPRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
