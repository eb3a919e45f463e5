// Package api 提供HTTP API的默认配置
package api

import "time"

// 默认配置值
const (
	defaultListenAddress   = ":8545"
	defaultDedupAll        = false
	defaultDedupTimeout    = 30 * time.Second
	defaultDedupSweepEvery = 10 * time.Second
)

// defaultDedupMethods 默认对所有变更类方法启用去重
var defaultDedupMethods = []string{"POST", "PUT", "PATCH", "DELETE"}
