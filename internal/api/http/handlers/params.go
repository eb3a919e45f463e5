package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vaultedge/v1/pkg/interfaces/infrastructure/log"
	psiface "github.com/vaultedge/v1/pkg/interfaces/paramstore"
)

// paramCollections HTTP边界暴露的参数集合
// 集合对应周边系统的两类链上变更：策略参数与池参数
var paramCollections = []string{"strategies", "pools"}

// ParamsHandler 参数读写端点处理器
//
// 🎯 **端点**（strategies与pools各一套）：
// - POST   /{collection}/params           存储参数，返回内容哈希与落盘路径
// - PUT    /{collection}/params/:hash     带哈希校验的存储（?durable=true 等待落盘）
// - GET    /{collection}/params/:hash     读取参数
// - GET    /{collection}/params/:hash/exists  持久性检查
// - DELETE /{collection}/params/:hash     删除两个落盘副本
type ParamsHandler struct {
	store  psiface.ParameterStore
	logger log.Logger
}

// NewParamsHandler 创建参数端点处理器
func NewParamsHandler(store psiface.ParameterStore, logger log.Logger) *ParamsHandler {
	return &ParamsHandler{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes 注册参数读写路由
func (h *ParamsHandler) RegisterRoutes(r *gin.RouterGroup) {
	for _, collection := range paramCollections {
		group := r.Group("/" + collection + "/params")
		{
			group.POST("", h.put(collection))
			group.PUT("/:hash", h.writeWithHash(collection))
			group.GET("/:hash", h.read(collection))
			group.GET("/:hash/exists", h.exists(collection))
			group.DELETE("/:hash", h.remove(collection))
		}
	}
}

// put 存储参数并返回内容哈希
// 缓存同步更新，落盘异步完成
func (h *ParamsHandler) put(collection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload interface{}
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondError(c, http.StatusBadRequest, "请求体不是合法JSON: "+err.Error())
			return
		}

		result, err := h.store.Put(c.Request.Context(), collection, payload)
		if err != nil {
			respondStoreError(c, err)
			return
		}

		respondSuccess(c, http.StatusCreated, result)
	}
}

// writeWithHash 带哈希校验的存储
// ?durable=true 时等待两个副本落盘后才返回
func (h *ParamsHandler) writeWithHash(collection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		hash := c.Param("hash")

		var payload interface{}
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondError(c, http.StatusBadRequest, "请求体不是合法JSON: "+err.Error())
			return
		}

		var result *psiface.PutResult
		var err error
		if c.Query("durable") == "true" {
			result, err = h.store.WriteWithHashDurable(c.Request.Context(), collection, hash, payload)
		} else {
			result, err = h.store.WriteWithHash(c.Request.Context(), collection, hash, payload)
		}
		if err != nil {
			respondStoreError(c, err)
			return
		}

		respondSuccess(c, http.StatusCreated, result)
	}
}

// read 读取参数
func (h *ParamsHandler) read(collection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		hash := c.Param("hash")

		value, found, err := h.store.Read(c.Request.Context(), collection, hash)
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
}

// exists 持久性检查
// 只反映文件是否已落盘，不反映缓存状态
func (h *ParamsHandler) exists(collection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		hash := c.Param("hash")

		exists, err := h.store.Exists(c.Request.Context(), collection, hash)
		if err != nil {
			respondStoreError(c, err)
			return
		}

		respondSuccess(c, http.StatusOK, gin.H{"exists": exists})
	}
}

// remove 删除参数的两个落盘副本
func (h *ParamsHandler) remove(collection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		hash := c.Param("hash")

		if err := h.store.Delete(c.Request.Context(), collection, hash); err != nil {
			respondStoreError(c, err)
			return
		}

		respondSuccess(c, http.StatusOK, gin.H{"deleted": true})
	}
}
