// Package handlers provides HTTP API handlers for the VaultEdge parameter service.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vaultedge/v1/internal/api/http/middleware"
	httptypes "github.com/vaultedge/v1/internal/api/http/types"
	"github.com/vaultedge/v1/internal/core/paramstore"
)

// respondSuccess 输出统一成功响应
func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, httptypes.NewSuccessResponse(data, middleware.GetRequestID(c)))
}

// respondError 输出统一错误响应
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, httptypes.NewErrorResponse(message, middleware.GetRequestID(c)))
}

// respondStoreError 按存储层错误类型映射HTTP状态码
func respondStoreError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, paramstore.ErrInvalidCollection),
		errors.Is(err, paramstore.ErrInvalidHash),
		errors.Is(err, paramstore.ErrSerialization):
		status = http.StatusBadRequest
	case errors.Is(err, paramstore.ErrHashMismatch):
		status = http.StatusUnprocessableEntity
	}

	respondError(c, status, err.Error())
}
