// Package paramstore 错误定义
package paramstore

import (
	"errors"

	"github.com/vaultedge/v1/internal/core/paramstore/canonical"
)

// 服务初始化错误
var (
	// ErrPrimaryStoreNil 主存储不能为空
	ErrPrimaryStoreNil = errors.New("primary 文件存储不能为空")

	// ErrBackupStoreNil 备份存储不能为空
	ErrBackupStoreNil = errors.New("backup 文件存储不能为空")

	// ErrConfigNil 配置不能为空
	ErrConfigNil = errors.New("config 不能为空")

	// ErrLoggerNil 日志记录器不能为空
	ErrLoggerNil = errors.New("logger 不能为空")
)

// 参数校验错误
var (
	// ErrInvalidCollection 集合名非法（为空或包含路径分隔符）
	ErrInvalidCollection = errors.New("集合名非法")

	// ErrInvalidHash 哈希格式非法（必须为0x+64位十六进制）
	ErrInvalidHash = errors.New("哈希格式非法")

	// ErrHashMismatch 调用方提供的哈希与计算结果不一致
	ErrHashMismatch = errors.New("内容哈希不一致")
)

// ErrSerialization 负载无法规范化序列化（canonical包的别名，便于调用方统一判断）
var ErrSerialization = canonical.ErrSerialization
