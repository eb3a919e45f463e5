package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vaultedge/v1/pkg/interfaces/infrastructure/log"
	psiface "github.com/vaultedge/v1/pkg/interfaces/paramstore"
)

// ExecutionHandler 执行路径读取端点处理器
// 面向延迟敏感调用方（交易构建），读取与写入队列完全解耦
type ExecutionHandler struct {
	store  psiface.ParameterStore
	logger log.Logger
}

// NewExecutionHandler 创建执行路径处理器
func NewExecutionHandler(store psiface.ParameterStore, logger log.Logger) *ExecutionHandler {
	return &ExecutionHandler{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes 注册执行路径路由
//
// GET /execution/:collection/:hash
func (h *ExecutionHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/execution/:collection/:hash", h.getForExecution)
}

// getForExecution 执行路径读取
func (h *ExecutionHandler) getForExecution(c *gin.Context) {
	collection := c.Param("collection")
	hash := c.Param("hash")

	value, found, err := h.store.GetForExecution(c.Request.Context(), collection, hash)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, "参数不存在")
		return
	}

	respondSuccess(c, http.StatusOK, value)
}
