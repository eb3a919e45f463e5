package paramstore

import (
	"time"

	configtypes "github.com/vaultedge/v1/pkg/types"
)

// Options 参数存储配置选项
type Options struct {
	CacheCapacity   int           `json:"cache_capacity"`    // 内存缓存容量（条目数）
	CacheTTL        time.Duration `json:"cache_ttl"`         // 缓存条目生存时间
	QueueBatchSize  int           `json:"queue_batch_size"`  // 写入队列批次大小
	QueueBatchDelay time.Duration `json:"queue_batch_delay"` // 批次等待窗口
}

// Config 参数存储配置实现
type Config struct {
	options *Options
}

// New 创建参数存储配置实现
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

// createDefaultOptions 创建默认参数存储配置
func createDefaultOptions() *Options {
	return &Options{
		CacheCapacity:   defaultCacheCapacity,
		CacheTTL:        defaultCacheTTL,
		QueueBatchSize:  defaultQueueBatchSize,
		QueueBatchDelay: defaultQueueBatchDelay,
	}
}

// applyUserConfig 应用用户配置覆盖默认值
// 时间字段解析失败时保留默认值，由调用方通过日志发现
func applyUserConfig(options *Options, userConfig interface{}) {
	psConfig, ok := userConfig.(*configtypes.UserParamStoreConfig)
	if !ok || psConfig == nil {
		return
	}

	if psConfig.CacheCapacity != nil {
		options.CacheCapacity = *psConfig.CacheCapacity
	}
	if psConfig.CacheTTL != nil {
		if d, err := time.ParseDuration(*psConfig.CacheTTL); err == nil {
			options.CacheTTL = d
		}
	}
	if psConfig.QueueBatchSize != nil {
		options.QueueBatchSize = *psConfig.QueueBatchSize
	}
	if psConfig.QueueBatchDelay != nil {
		if d, err := time.ParseDuration(*psConfig.QueueBatchDelay); err == nil {
			options.QueueBatchDelay = d
		}
	}
}

// GetCacheCapacity 获取内存缓存容量
func (c *Config) GetCacheCapacity() int {
	return c.options.CacheCapacity
}

// GetCacheTTL 获取缓存条目生存时间
func (c *Config) GetCacheTTL() time.Duration {
	return c.options.CacheTTL
}

// GetQueueBatchSize 获取写入队列批次大小
func (c *Config) GetQueueBatchSize() int {
	return c.options.QueueBatchSize
}

// GetQueueBatchDelay 获取批次等待窗口
func (c *Config) GetQueueBatchDelay() time.Duration {
	return c.options.QueueBatchDelay
}
