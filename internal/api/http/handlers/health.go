package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	httptypes "github.com/vaultedge/v1/internal/api/http/types"
)

// serviceVersion 服务版本号
const serviceVersion = "1.0.0"

// HealthHandler 健康检查端点处理器
type HealthHandler struct {
	startTime time.Time
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		startTime: time.Now(),
	}
}

// RegisterRoutes 注册健康检查路由
func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.GetHealth)
}

// GetHealth 获取健康状态
//
// GET /health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, &httptypes.HealthResponse{
		Status:    "healthy",
		Version:   serviceVersion,
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Components: map[string]interface{}{
			"paramstore": map[string]interface{}{"status": "healthy"},
		},
	})
}
