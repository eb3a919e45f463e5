// Package http 提供参数服务的HTTP API
//
// 🎯 **核心职责**：
// - gin路由与中间件链（请求ID → 日志 → 指标 → 在途去重）
// - 参数读写、执行路径读取、健康检查与指标端点
// - 服务器与去重器的生命周期管理
package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/vaultedge/v1/internal/api/http/handlers"
	"github.com/vaultedge/v1/internal/api/http/middleware"
	apiconfig "github.com/vaultedge/v1/internal/config/api"
	"github.com/vaultedge/v1/pkg/interfaces/infrastructure/log"
	psiface "github.com/vaultedge/v1/pkg/interfaces/paramstore"
)

// Server HTTP服务器结构
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     *apiconfig.Config
	logger     log.Logger
	store      psiface.ParameterStore
	tracker    *middleware.InFlightTracker
}

// NewServer 创建HTTP服务器
// 在fx依赖注入系统中注册，自动接收所需依赖并挂接生命周期钩子
func NewServer(
	lifecycle fx.Lifecycle,
	config *apiconfig.Config,
	logger log.Logger,
	store psiface.ParameterStore,
	tracker *middleware.InFlightTracker,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		router:  router,
		config:  config,
		logger:  logger.With("module", "http"),
		store:   store,
		tracker: tracker,
	}

	// 中间件链：请求ID必须在最前，日志与去重都依赖它
	router.Use(middleware.NewRequestID().Middleware())
	router.Use(middleware.NewLogger(server.logger).Middleware())
	router.Use(middleware.NewMetrics().Middleware())
	router.Use(tracker.Middleware())

	server.setupRoutes()

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})

	return server
}

// setupRoutes 设置HTTP路由
func (s *Server) setupRoutes() {
	// 运维端点
	handlers.NewHealthHandler().RegisterRoutes(s.router)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 业务端点统一挂在/api/v1下
	v1 := s.router.Group("/api/v1")

	paramsHandler := handlers.NewParamsHandler(s.store, s.logger)
	paramsHandler.RegisterRoutes(v1)

	executionHandler := handlers.NewExecutionHandler(s.store, s.logger)
	executionHandler.RegisterRoutes(v1)
}

// Start 启动HTTP服务器与去重器
// 先同步监听以便将绑定错误返回给启动流程，再在后台提供服务
func (s *Server) Start() error {
	addr := s.config.GetListenAddress()

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	s.tracker.Start()

	go func() {
		// 正常关闭时Serve返回http.ErrServerClosed，不视为错误
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("❌ HTTP服务器运行失败: %v", err)
		}
	}()

	s.logger.Infof("🚀 HTTP服务器已启动: %s", addr)
	return nil
}

// Stop 停止HTTP服务器与去重器
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("正在关闭HTTP服务器")

	// 防止关闭过程卡在慢连接上
	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(stopCtx); err != nil {
			s.logger.Errorf("HTTP服务器关闭出错: %v", err)
			return err
		}
	}

	s.tracker.Stop()

	s.logger.Info("🛑 HTTP服务器已关闭")
	return nil
}

// Router 返回gin路由引擎（仅测试使用）
func (s *Server) Router() *gin.Engine {
	return s.router
}
