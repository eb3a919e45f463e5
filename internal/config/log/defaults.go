// Package log 提供日志系统的默认配置
package log

// 默认配置值
const (
	defaultLevel      = "info"
	defaultFilePath   = "" // 为空时仅输出到控制台
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 5
	defaultMaxAgeDays = 30
	defaultConsole    = true
)
