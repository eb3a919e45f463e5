// Package paramstore 提供参数存储模块的默认配置
package paramstore

import "time"

// 默认配置值
const (
	defaultCacheCapacity   = 1000
	defaultCacheTTL        = 5 * time.Minute
	defaultQueueBatchSize  = 32
	defaultQueueBatchDelay = 50 * time.Millisecond
)
