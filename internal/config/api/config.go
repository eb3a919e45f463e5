package api

import (
	"time"

	configtypes "github.com/vaultedge/v1/pkg/types"
)

// Options HTTP API配置选项
type Options struct {
	ListenAddress   string        `json:"listen_address"`
	DedupMethods    []string      `json:"dedup_methods"`     // 需要去重保护的HTTP方法
	DedupPrefixes   []string      `json:"dedup_prefixes"`    // 需要去重保护的路由前缀（为空表示不按前缀过滤）
	DedupAll        bool          `json:"dedup_all"`         // 对所有请求启用去重（优先于方法/前缀过滤）
	DedupTimeout    time.Duration `json:"dedup_timeout"`     // 在途请求超时时间（后台清扫安全网）
	DedupSweepEvery time.Duration `json:"dedup_sweep_every"` // 后台清扫间隔
}

// Config HTTP API配置实现
type Config struct {
	options *Options
}

// New 创建HTTP API配置实现
func New(userConfig interface{}) *Config {
	defaultOptions := createDefaultOptions()

	if userConfig != nil {
		applyUserConfig(defaultOptions, userConfig)
	}

	return &Config{
		options: defaultOptions,
	}
}

// NewFromOptions 从Options创建配置实现（测试场景）
func NewFromOptions(options *Options) *Config {
	if options == nil {
		return New(nil)
	}
	return &Config{
		options: options,
	}
}

// createDefaultOptions 创建默认HTTP API配置
func createDefaultOptions() *Options {
	methods := make([]string, len(defaultDedupMethods))
	copy(methods, defaultDedupMethods)

	return &Options{
		ListenAddress:   defaultListenAddress,
		DedupMethods:    methods,
		DedupPrefixes:   nil,
		DedupAll:        defaultDedupAll,
		DedupTimeout:    defaultDedupTimeout,
		DedupSweepEvery: defaultDedupSweepEvery,
	}
}

// applyUserConfig 应用用户配置覆盖默认值
func applyUserConfig(options *Options, userConfig interface{}) {
	apiConfig, ok := userConfig.(*configtypes.UserAPIConfig)
	if !ok || apiConfig == nil {
		return
	}

	if apiConfig.ListenAddress != nil {
		options.ListenAddress = *apiConfig.ListenAddress
	}
	if apiConfig.DedupMethods != nil {
		options.DedupMethods = apiConfig.DedupMethods
	}
	if apiConfig.DedupPrefixes != nil {
		options.DedupPrefixes = apiConfig.DedupPrefixes
	}
	if apiConfig.DedupAll != nil {
		options.DedupAll = *apiConfig.DedupAll
	}
	if apiConfig.DedupTimeout != nil {
		if d, err := time.ParseDuration(*apiConfig.DedupTimeout); err == nil {
			options.DedupTimeout = d
		}
	}
	if apiConfig.DedupSweepEvery != nil {
		if d, err := time.ParseDuration(*apiConfig.DedupSweepEvery); err == nil {
			options.DedupSweepEvery = d
		}
	}
}

// GetListenAddress 获取HTTP监听地址
func (c *Config) GetListenAddress() string {
	return c.options.ListenAddress
}

// GetDedupMethods 获取需要去重保护的HTTP方法
func (c *Config) GetDedupMethods() []string {
	return c.options.DedupMethods
}

// GetDedupPrefixes 获取需要去重保护的路由前缀
func (c *Config) GetDedupPrefixes() []string {
	return c.options.DedupPrefixes
}

// IsDedupAll 是否对所有请求启用去重
func (c *Config) IsDedupAll() bool {
	return c.options.DedupAll
}

// GetDedupTimeout 获取在途请求超时时间
func (c *Config) GetDedupTimeout() time.Duration {
	return c.options.DedupTimeout
}

// GetDedupSweepEvery 获取后台清扫间隔
func (c *Config) GetDedupSweepEvery() time.Duration {
	return c.options.DedupSweepEvery
}
