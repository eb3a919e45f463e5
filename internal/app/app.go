// Package app 提供应用装配与启动流程
//
// 🎯 **核心职责**：
// - 加载JSON配置文件并应用命令行覆盖
// - 通过fx装配日志、参数存储与HTTP API三个模块
//
// 🔧 **零值陷阱处理说明**：
// 配置文件字段均为指针类型，nil表示"用户未设置、使用默认值"，
// &value表示用户明确设置（包括零值）。各internal/config包据此合并默认值。
package app

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/fx"

	httpapi "github.com/vaultedge/v1/internal/api/http"
	logmodule "github.com/vaultedge/v1/internal/core/infrastructure/log"
	"github.com/vaultedge/v1/internal/core/paramstore"
	configtypes "github.com/vaultedge/v1/pkg/types"
)

// LoadConfig 加载应用配置
// 配置文件缺失或解析失败时退回默认配置（打印警告，不中断启动），
// 然后应用命令行覆盖项
func LoadConfig(options *Options) *configtypes.AppConfig {
	appConfig := &configtypes.AppConfig{}

	if options != nil && options.ConfigPath != "" {
		data, err := os.ReadFile(options.ConfigPath)
		switch {
		case os.IsNotExist(err):
			fmt.Printf("配置文件 %s 不存在，使用默认配置\n", options.ConfigPath)
		case err != nil:
			fmt.Printf("读取配置文件失败: %v，使用默认配置\n", err)
		default:
			if err := json.Unmarshal(data, appConfig); err != nil {
				fmt.Printf("解析配置文件失败: %v，使用默认配置\n", err)
				appConfig = &configtypes.AppConfig{}
			} else {
				fmt.Printf("已成功加载配置文件: %s\n", options.ConfigPath)
			}
		}
	}

	applyOverrides(appConfig, options)
	return appConfig
}

// applyOverrides 应用命令行覆盖项
func applyOverrides(appConfig *configtypes.AppConfig, options *Options) {
	if options == nil {
		return
	}

	if options.HTTPPort > 0 {
		if appConfig.API == nil {
			appConfig.API = &configtypes.UserAPIConfig{}
		}
		addr := fmt.Sprintf(":%d", options.HTTPPort)
		appConfig.API.ListenAddress = &addr
	}

	if options.DataDir != "" {
		if appConfig.Storage == nil {
			appConfig.Storage = &configtypes.UserStorageConfig{}
		}
		dataDir := options.DataDir
		appConfig.Storage.DataRoot = &dataDir
	}
}

// New 装配应用
// 模块装配顺序无关，fx按依赖图构建：配置 → 日志 → 参数存储 → HTTP API
func New(appConfig *configtypes.AppConfig) *fx.App {
	return fx.New(
		fx.Provide(func() *configtypes.AppConfig { return appConfig }),

		logmodule.Module(),
		paramstore.Module(),
		httpapi.Module(),
	)
}

// Run 加载配置、装配并运行应用
// 阻塞直到收到终止信号，随后执行各模块的停止钩子
func Run(options *Options) error {
	appConfig := LoadConfig(options)

	app := New(appConfig)
	app.Run()

	return app.Err()
}
