// Package middleware 提供HTTP API中间件
//
// dedup.go 实现在途请求去重：
// 同一请求（方法+路径+规范化请求体哈希）在处理完成之前再次到达时，
// 直接返回HTTP 429，不进入处理器。
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	httptypes "github.com/vaultedge/v1/internal/api/http/types"
	apiconfig "github.com/vaultedge/v1/internal/config/api"
	"github.com/vaultedge/v1/internal/core/paramstore/canonical"
	"github.com/vaultedge/v1/pkg/interfaces/infrastructure/log"
)

// duplicateRequestMessage 重复请求的拒绝消息
const duplicateRequestMessage = "Request is already being processed. Please wait."

// Prometheus 指标：观测去重行为
// 包级注册，允许测试中创建多个tracker实例
var (
	dedupRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vaultedge_api_dedup_rejected_total",
		Help: "Total number of requests rejected as in-flight duplicates.",
	})
	dedupSwept = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vaultedge_api_dedup_swept_total",
		Help: "Total number of stale in-flight entries removed by the sweeper.",
	})
)

func init() {
	prometheus.MustRegister(dedupRejected, dedupSwept)
}

// pendingRequest 在途请求记录
type pendingRequest struct {
	startedAt time.Time
	requestID string
}

// InFlightTracker 在途请求去重器
//
// 🎯 **核心职责**：
// - 受保护请求开始时原子地检查并登记（check-and-insert在同一临界区内完成）
// - 响应完成时注销登记
// - 后台清扫移除超过超时时间的残留记录（处理器崩溃等异常路径的安全网）
//
// 💡 **键构成**：
// - 幂等方法（GET等）：方法 + 路径
// - 非幂等方法：方法 + 路径 + 规范化请求体哈希
//   相同语义的请求体（字段顺序无关）产生相同的键
type InFlightTracker struct {
	config *apiconfig.Config
	logger log.Logger

	mu      sync.Mutex
	pending map[string]*pendingRequest

	stop    chan struct{}
	done    chan struct{}
	started bool

	// now 时钟注入点，清扫测试用
	now func() time.Time
}

// NewInFlightTracker 创建在途请求去重器
func NewInFlightTracker(config *apiconfig.Config, logger log.Logger) *InFlightTracker {
	return &InFlightTracker{
		config:  config,
		logger:  logger,
		pending: make(map[string]*pendingRequest),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		now:     time.Now,
	}
}

// Start 启动后台清扫
func (t *InFlightTracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return
	}
	t.started = true

	go t.sweepLoop()
	t.logger.Infof("🚀 在途请求去重器已启动: timeout=%s sweep=%s",
		t.config.GetDedupTimeout(), t.config.GetDedupSweepEvery())
}

// Stop 停止后台清扫
func (t *InFlightTracker) Stop() {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return
	}
	t.started = false
	t.mu.Unlock()

	close(t.stop)
	<-t.done
	t.logger.Info("🛑 在途请求去重器已停止")
}

// Reset 清空所有在途记录（仅测试使用）
func (t *InFlightTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = make(map[string]*pendingRequest)
}

// PendingCount 返回当前在途记录数（仅测试使用）
func (t *InFlightTracker) PendingCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// SetClock 注入时钟（仅测试使用）
func (t *InFlightTracker) SetClock(now func() time.Time) {
	t.now = now
}

// Middleware 返回Gin中间件
func (t *InFlightTracker) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !t.shouldGuard(c) {
			c.Next()
			return
		}

		key, err := t.buildKey(c)
		if err != nil {
			// 请求体读取失败交给处理器按普通错误处理
			t.logger.Warnf("构建去重键失败: %v", err)
			c.Next()
			return
		}

		requestID := GetRequestID(c)

		// 原子check-and-insert：检查与登记在同一临界区内完成
		t.mu.Lock()
		if existing, ok := t.pending[key]; ok {
			t.mu.Unlock()
			dedupRejected.Inc()
			t.logger.Warnf("拒绝重复请求: key=%s original=%s", key, existing.requestID)

			// requestId 指向原始在途请求
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				httptypes.NewErrorResponse(duplicateRequestMessage, existing.requestID))
			return
		}
		t.pending[key] = &pendingRequest{
			startedAt: t.now(),
			requestID: requestID,
		}
		t.mu.Unlock()

		// 响应完成后注销登记（panic路径由清扫兜底）
		defer func() {
			t.mu.Lock()
			delete(t.pending, key)
			t.mu.Unlock()
		}()

		c.Next()
	}
}

// shouldGuard 判断请求是否需要去重保护
// 优先级：dedup_all > 方法列表（可叠加前缀过滤）
func (t *InFlightTracker) shouldGuard(c *gin.Context) bool {
	if t.config.IsDedupAll() {
		return true
	}

	method := c.Request.Method
	guarded := false
	for _, m := range t.config.GetDedupMethods() {
		if strings.EqualFold(m, method) {
			guarded = true
			break
		}
	}
	if !guarded {
		return false
	}

	prefixes := t.config.GetDedupPrefixes()
	if len(prefixes) == 0 {
		return true
	}
	path := c.Request.URL.Path
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// buildKey 构建去重键
// 非幂等方法附加规范化请求体哈希，读取后的请求体原样回填
func (t *InFlightTracker) buildKey(c *gin.Context) (string, error) {
	key := c.Request.Method + " " + c.Request.URL.Path

	if !isIdempotentMethod(c.Request.Method) && c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return "", err
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if len(body) > 0 {
			key += " " + normalizedBodyHash(body)
		}
	}

	return key, nil
}

// isIdempotentMethod 判断HTTP方法是否幂等
func isIdempotentMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// normalizedBodyHash 计算请求体的规范化哈希
// JSON请求体先规范化（键排序），字段顺序不同的等价请求体产生相同哈希；
// 非JSON请求体直接对原始字节取哈希
func normalizedBodyHash(body []byte) string {
	var value interface{}
	if err := json.Unmarshal(body, &value); err == nil {
		if data, err := canonical.Marshal(value); err == nil {
			return canonical.HashBytes(data)
		}
	}
	return canonical.HashBytes(body)
}

// sweepLoop 后台清扫循环
// 定期移除超过超时时间的在途记录
func (t *InFlightTracker) sweepLoop() {
	defer close(t.done)

	ticker := time.NewTicker(t.config.GetDedupSweepEvery())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.sweep()
		case <-t.stop:
			return
		}
	}
}

// sweep 移除超时的在途记录
func (t *InFlightTracker) sweep() {
	timeout := t.config.GetDedupTimeout()
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	for key, entry := range t.pending {
		if now.Sub(entry.startedAt) > timeout {
			delete(t.pending, key)
			dedupSwept.Inc()
			t.logger.Warnf("清扫超时的在途请求: key=%s requestId=%s", key, entry.requestID)
		}
	}
}
