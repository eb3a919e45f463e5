package http

import (
	"go.uber.org/fx"

	"github.com/vaultedge/v1/internal/api/http/middleware"
	apiconfig "github.com/vaultedge/v1/internal/config/api"
	"github.com/vaultedge/v1/pkg/interfaces/infrastructure/log"
	configtypes "github.com/vaultedge/v1/pkg/types"
)

// provideAPIConfig 从应用配置构建HTTP API配置
func provideAPIConfig(appConfig *configtypes.AppConfig) *apiconfig.Config {
	var userConfig *configtypes.UserAPIConfig
	if appConfig != nil {
		userConfig = appConfig.API
	}
	return apiconfig.New(userConfig)
}

// provideTracker 构建在途请求去重器
// 生命周期（清扫启停）由Server的启停钩子统一管理
func provideTracker(config *apiconfig.Config, logger log.Logger) *middleware.InFlightTracker {
	return middleware.NewInFlightTracker(config, logger.With("module", "api"))
}

// Module 返回HTTP服务模块
//
// 使用示例：
//
//	app := fx.New(
//	    log.Module(),
//	    paramstore.Module(),
//	    http.Module(),
//	)
func Module() fx.Option {
	return fx.Options(
		fx.Provide(provideAPIConfig),
		fx.Provide(provideTracker),

		// 参数存储服务是命名依赖
		fx.Provide(
			fx.Annotate(
				NewServer,
				fx.ParamTags(``, ``, ``, `name:"parameter_store"`, ``),
			),
		),

		// 确保服务器实例被构建（生命周期钩子在构造时注册）
		fx.Invoke(func(server *Server, logger log.Logger) {
			logger.Info("HTTP API模块加载")
		}),
	)
}
