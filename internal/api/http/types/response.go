// Package types provides HTTP response type definitions.
package types

import "time"

// APIResponse 统一响应信封
// 所有端点（包括去重拒绝）都使用该格式
type APIResponse struct {
	Success   bool        `json:"success"`             // 操作是否成功
	Data      interface{} `json:"data,omitempty"`      // 响应数据（成功时）
	Error     string      `json:"error,omitempty"`     // 错误消息（失败时）
	Timestamp string      `json:"timestamp"`           // 响应时间戳（RFC3339）
	RequestID string      `json:"requestId,omitempty"` // 请求追踪ID
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(data interface{}, requestID string) *APIResponse {
	return &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(message, requestID string) *APIResponse {
	return &APIResponse{
		Success:   false,
		Error:     message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status     string                 `json:"status"` // healthy, unhealthy
	Version    string                 `json:"version"`
	Uptime     string                 `json:"uptime"`
	Timestamp  string                 `json:"timestamp"`
	Components map[string]interface{} `json:"components"`
}
