// Package log 提供日志模块的fx依赖注入配置
package log

import (
	"context"

	"go.uber.org/fx"

	logconfig "github.com/vaultedge/v1/internal/config/log"
	logiface "github.com/vaultedge/v1/pkg/interfaces/infrastructure/log"
	configtypes "github.com/vaultedge/v1/pkg/types"
)

// ProvideLogger 根据应用配置创建统一日志记录器
func ProvideLogger(appConfig *configtypes.AppConfig) (logiface.Logger, error) {
	var userConfig *configtypes.UserLogConfig
	if appConfig != nil {
		userConfig = appConfig.Log
	}

	return New(logconfig.New(userConfig))
}

// Module 提供日志模块的fx依赖注入
//
// 🔗 **依赖关系**：
// - 输入：*types.AppConfig
// - 输出：log.Logger
func Module() fx.Option {
	return fx.Module("log",
		fx.Provide(ProvideLogger),

		fx.Invoke(func(lc fx.Lifecycle, logger logiface.Logger) {
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					// 进程退出前刷新缓冲区；stdout上的Sync错误可忽略
					_ = logger.Sync()
					return nil
				},
			})
		}),
	)
}
