package middleware

import (
	"time"

	"catalina-keeper/services"

	"github.com/gin-gonic/gin"
)

/**
 * HTTP请求统计中间件
 * @description
 * - 统计HTTP服务器收到的请求数量
 * - 记录请求处理时间
 * - 区分成功和失败的请求
 * - 为健康检查接口提供请求数据
 * - 未匹配路由的请求统一记为"unknown"，避免路径标签无限增长
 */
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 记录请求开始时间
		start := time.Now()

		// 处理请求
		c.Next()

		// 计算请求处理时间
		duration := time.Since(start).Seconds()

		// 获取请求状态码
		statusCode := c.Writer.Status()

		// 使用路由模板作为标签，/tools/:name 不会按工具名展开
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}

		services.IncrementRequestCount(path)
		services.RecordRequestDuration(path, duration)

		// 如果是错误请求（状态码 >= 400），增加错误请求计数
		if statusCode >= 400 {
			services.IncrementErrorCount(path)
		}
	}
}
