package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// 请求ID在gin上下文与HTTP头中使用的键
const (
	requestIDContextKey = "request_id"
	requestIDHeader     = "X-Request-ID"
)

// RequestID 请求ID中间件
// 为每个请求分配唯一追踪ID，贯穿日志、去重拒绝与响应信封
type RequestID struct{}

// NewRequestID 创建请求ID中间件
func NewRequestID() *RequestID {
	return &RequestID{}
}

// Middleware 返回Gin中间件
func (m *RequestID) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 调用方已携带追踪ID时沿用，否则生成新的
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(requestIDContextKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID 从上下文或请求头获取请求ID（与 RequestID 中间件配合）
func GetRequestID(c *gin.Context) string {
	if v, ok := c.Get(requestIDContextKey); ok {
		if s, ok2 := v.(string); ok2 && s != "" {
			return s
		}
	}
	return c.GetHeader(requestIDHeader)
}
