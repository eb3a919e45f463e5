package log

import (
	configtypes "github.com/vaultedge/v1/pkg/types"
)

// LogOptions 日志配置选项
type LogOptions struct {
	Level      string `json:"level"`
	FilePath   string `json:"file_path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
	Console    bool   `json:"console"`
}

// Config 日志配置实现
type Config struct {
	options *LogOptions
}

// New 创建日志配置实现
func New(userConfig interface{}) *Config {
	defaultOptions := createDefaultLogOptions()

	// 如果有用户配置，应用用户配置覆盖默认值
	if userConfig != nil {
		applyUserConfig(defaultOptions, userConfig)
	}

	return &Config{
		options: defaultOptions,
	}
}

// NewFromOptions 从LogOptions创建配置实现（测试场景）
func NewFromOptions(options *LogOptions) *Config {
	if options == nil {
		return New(nil)
	}
	return &Config{
		options: options,
	}
}

// createDefaultLogOptions 创建默认日志配置
func createDefaultLogOptions() *LogOptions {
	return &LogOptions{
		Level:      defaultLevel,
		FilePath:   defaultFilePath,
		MaxSizeMB:  defaultMaxSizeMB,
		MaxBackups: defaultMaxBackups,
		MaxAgeDays: defaultMaxAgeDays,
		Console:    defaultConsole,
	}
}

// applyUserConfig 应用用户配置覆盖默认值
// 只覆盖用户明确设置（非nil）的字段
func applyUserConfig(options *LogOptions, userConfig interface{}) {
	logConfig, ok := userConfig.(*configtypes.UserLogConfig)
	if !ok || logConfig == nil {
		return
	}

	if logConfig.Level != nil {
		options.Level = *logConfig.Level
	}
	if logConfig.FilePath != nil {
		options.FilePath = *logConfig.FilePath
	}
	if logConfig.MaxSizeMB != nil {
		options.MaxSizeMB = *logConfig.MaxSizeMB
	}
	if logConfig.MaxBackups != nil {
		options.MaxBackups = *logConfig.MaxBackups
	}
	if logConfig.MaxAgeDays != nil {
		options.MaxAgeDays = *logConfig.MaxAgeDays
	}
	if logConfig.Console != nil {
		options.Console = *logConfig.Console
	}
}

// GetLevel 获取日志级别
func (c *Config) GetLevel() string {
	return c.options.Level
}

// GetFilePath 获取日志文件路径
func (c *Config) GetFilePath() string {
	return c.options.FilePath
}

// GetMaxSizeMB 获取单个日志文件最大大小(MB)
func (c *Config) GetMaxSizeMB() int {
	return c.options.MaxSizeMB
}

// GetMaxBackups 获取保留的历史日志文件数量
func (c *Config) GetMaxBackups() int {
	return c.options.MaxBackups
}

// GetMaxAgeDays 获取日志文件最大保留天数
func (c *Config) GetMaxAgeDays() int {
	return c.options.MaxAgeDays
}

// IsConsoleEnabled 是否同时输出到控制台
func (c *Config) IsConsoleEnabled() bool {
	return c.options.Console
}
