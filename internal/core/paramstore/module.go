// Package paramstore 提供参数存储模块的fx依赖注入配置
//
// 🎯 **模块职责**：
// - 主/备份文件存储创建
// - 参数存储服务提供
// - 写入队列生命周期管理
//
// 📦 **导出服务**：
// - psiface.ParameterStore (name: "parameter_store")
// - *Service (未命名，内部使用)
//
// 🔗 **依赖关系**：
// - 输入：*types.AppConfig, Logger
// - 输出：ParameterStore
package paramstore

import (
	"context"

	"go.uber.org/fx"

	psconfig "github.com/vaultedge/v1/internal/config/paramstore"
	fileconfig "github.com/vaultedge/v1/internal/config/storage/file"
	filestore "github.com/vaultedge/v1/internal/core/infrastructure/storage/file"
	"github.com/vaultedge/v1/pkg/interfaces/infrastructure/log"
	psiface "github.com/vaultedge/v1/pkg/interfaces/paramstore"
	configtypes "github.com/vaultedge/v1/pkg/types"
)

// ModuleInput 定义参数存储模块的输入依赖
type ModuleInput struct {
	fx.In

	// ========== 基础设施组件 ==========
	Logger log.Logger `optional:"false"` // 日志记录器

	// ========== 应用配置 ==========
	AppConfig *configtypes.AppConfig `optional:"false"` // 应用配置
}

// ModuleOutput 定义参数存储模块的输出服务
type ModuleOutput struct {
	fx.Out

	// 核心服务导出（命名依赖）
	ParameterStore psiface.ParameterStore `name:"parameter_store"` // 参数存储服务

	// 内部实现导出（未命名，供生命周期钩子使用）
	Service *Service
}

// ProvideServices 提供参数存储模块的所有服务
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	// 🎯 为参数存储模块添加 module 字段
	logger := input.Logger.With("module", "paramstore")

	var storageUserConfig *configtypes.UserStorageConfig
	var psUserConfig *configtypes.UserParamStoreConfig
	if input.AppConfig != nil {
		storageUserConfig = input.AppConfig.Storage
		psUserConfig = input.AppConfig.ParamStore
	}

	// 创建主/备份文件存储（目录创建在构造时完成，幂等）
	fileCfg := fileconfig.New(storageUserConfig)

	primary, err := filestore.New(fileCfg, fileCfg.GetPrimaryRoot(), logger.With("store", "primary"))
	if err != nil {
		return ModuleOutput{}, err
	}

	backup, err := filestore.New(fileCfg, fileCfg.GetBackupRoot(), logger.With("store", "backup"))
	if err != nil {
		return ModuleOutput{}, err
	}

	// 创建参数存储服务
	service, err := NewService(primary, backup, psconfig.New(psUserConfig), logger)
	if err != nil {
		return ModuleOutput{}, err
	}

	return ModuleOutput{
		ParameterStore: service,
		Service:        service,
	}, nil
}

// Module 提供参数存储模块的fx依赖注入
//
// 使用示例：
//
//	app := fx.New(
//	    log.Module(),
//	    paramstore.Module(),
//	)
func Module() fx.Option {
	return fx.Module("paramstore",
		fx.Provide(ProvideServices),

		// 写入队列生命周期：启动消费者，停止时排空在途任务
		fx.Invoke(func(lc fx.Lifecycle, service *Service, logger log.Logger) {
			psLogger := logger.With("module", "paramstore")

			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					service.Start()
					psLogger.Info("🚀 参数存储模块已启动")
					return nil
				},
				OnStop: func(ctx context.Context) error {
					if err := service.Stop(ctx); err != nil {
						return err
					}
					psLogger.Info("🛑 参数存储模块已停止")
					return nil
				},
			})
		}),
	)
}
