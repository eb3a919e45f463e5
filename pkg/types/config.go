// Package types 提供VaultEdge系统的共享配置类型定义
//
// 🔧 **零值陷阱处理说明**：
// 为了区分"用户未设置"和"用户设置为零值"，用户配置统一使用指针类型：
// - nil: 表示用户未在配置文件中设置该字段，将使用系统默认值
// - &value: 表示用户明确设置了该值，即使是零值（如0、false、""）也会被采用
package types

// AppConfig 应用配置结构
// 对应JSON配置文件的顶层结构，各分区均为可选
type AppConfig struct {
	Log        *UserLogConfig        `json:"log,omitempty"`
	Storage    *UserStorageConfig    `json:"storage,omitempty"`
	ParamStore *UserParamStoreConfig `json:"param_store,omitempty"`
	API        *UserAPIConfig        `json:"api,omitempty"`
}

// UserLogConfig 用户日志配置
type UserLogConfig struct {
	Level      *string `json:"level,omitempty"`        // 日志级别：debug | info | warn | error
	FilePath   *string `json:"file_path,omitempty"`    // 日志文件路径（为空时仅输出到控制台）
	MaxSizeMB  *int    `json:"max_size_mb,omitempty"`  // 单个日志文件最大大小(MB)
	MaxBackups *int    `json:"max_backups,omitempty"`  // 保留的历史日志文件数量
	MaxAgeDays *int    `json:"max_age_days,omitempty"` // 日志文件最大保留天数
	Console    *bool   `json:"console,omitempty"`      // 是否同时输出到控制台
}

// UserStorageConfig 用户存储配置
type UserStorageConfig struct {
	DataRoot *string `json:"data_root,omitempty"` // 数据根目录，主存储为{data_root}/storage，备份为{data_root}/storage_backup
}

// UserParamStoreConfig 用户参数存储配置
type UserParamStoreConfig struct {
	CacheCapacity   *int    `json:"cache_capacity,omitempty"`    // 内存缓存容量（条目数）
	CacheTTL        *string `json:"cache_ttl,omitempty"`         // 缓存条目生存时间，如"5m"
	QueueBatchSize  *int    `json:"queue_batch_size,omitempty"`  // 写入队列批次大小
	QueueBatchDelay *string `json:"queue_batch_delay,omitempty"` // 批次等待窗口，如"50ms"
}

// UserAPIConfig 用户API配置
type UserAPIConfig struct {
	ListenAddress   *string  `json:"listen_address,omitempty"`    // HTTP监听地址，如":8545"
	DedupMethods    []string `json:"dedup_methods,omitempty"`     // 需要去重保护的HTTP方法
	DedupPrefixes   []string `json:"dedup_prefixes,omitempty"`    // 需要去重保护的路由前缀
	DedupAll        *bool    `json:"dedup_all,omitempty"`         // 是否对所有请求启用去重
	DedupTimeout    *string  `json:"dedup_timeout,omitempty"`     // 在途请求超时时间，如"30s"
	DedupSweepEvery *string  `json:"dedup_sweep_every,omitempty"` // 后台清扫间隔，如"10s"
}

// LogLevel 日志级别类型
type LogLevel string

// 日志级别常量
const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)
