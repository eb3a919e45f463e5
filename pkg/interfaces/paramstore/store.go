// Package paramstore 提供VaultEdge系统的参数存储接口定义
//
// 📦 **内容寻址参数存储 (Content-Addressed Parameter Store)**
//
// 本文件定义了链下策略/资金池参数的内容寻址存储接口，专注于：
// - 内容寻址：参数以规范化字节的SHA-256哈希为唯一身份
// - 写后缓存：写入同步更新缓存，落盘异步完成（write-behind）
// - 双副本：主存储原子写入，备份存储直接写入
// - 读取回退：缓存 → 主存储 → 备份存储
//
// 🎯 **核心功能**
// - ParameterStore：参数存储服务接口
// - PutResult：写入结果（哈希与落盘路径）
// - ObjectStorage：预留的对象存储扩展点（第三读取回退/异步复制目标）
//
// 💡 **关键语义**
// - (collection, hash) 为记录身份，同一哈希只写一次
// - Put/WriteWithHash 在落盘完成前即返回（fire-and-forget）
// - WriteWithHashDurable 等待落盘完成后才返回
// - 读取路径永不等待写入队列
package paramstore

import "context"

// PutResult 写入结果
type PutResult struct {
	Hash        string `json:"hash"`         // 内容哈希，0x+64位小写十六进制
	PrimaryPath string `json:"primary_path"` // 主存储文件的绝对路径
	BackupPath  string `json:"backup_path"`  // 备份存储文件的绝对路径
}

// ParameterStore 定义内容寻址参数存储接口
type ParameterStore interface {
	// Put 存储参数并返回其内容哈希
	// 同步更新缓存，异步落盘；方法返回时数据尚未持久化
	Put(ctx context.Context, collection string, payload interface{}) (*PutResult, error)

	// WriteWithHash 校验调用方提供的哈希后存储参数
	// 哈希不一致时返回 ErrHashMismatch，不产生任何缓存或队列副作用
	WriteWithHash(ctx context.Context, collection, expectedHash string, payload interface{}) (*PutResult, error)

	// WriteWithHashDurable 校验哈希并等待落盘完成后返回
	// 用于调用方需要持久化保证的场景（如将哈希写入链上交易之前）
	WriteWithHashDurable(ctx context.Context, collection, expectedHash string, payload interface{}) (*PutResult, error)

	// Read 读取参数
	// 回退顺序：缓存 → 主存储文件 → 备份存储文件，命中文件后回填缓存
	// 两处均不存在时返回 (nil, false, nil)，缺失不是错误
	Read(ctx context.Context, collection, hash string) (interface{}, bool, error)

	// GetForExecution 执行路径专用读取
	// 回退顺序与Read完全一致；该路径面向延迟敏感调用方，
	// 永不阻塞在写入队列上
	GetForExecution(ctx context.Context, collection, hash string) (interface{}, bool, error)

	// Exists 检查参数是否已持久化
	// 主存储或备份存储任一存在即为true；不查询缓存（持久性检查而非缓存检查）
	Exists(ctx context.Context, collection, hash string) (bool, error)

	// Delete 删除参数的主存储与备份存储文件
	// 不主动失效缓存，允许TTL窗口内的短暂陈旧
	Delete(ctx context.Context, collection, hash string) error
}

// ObjectStorage 预留的内容寻址对象存储扩展点
//
// 接入后作为Read的第三级回退，以及Put的额外异步复制目标。
// 本仓库不提供实现（分布式对象存储不在当前范围内）。
type ObjectStorage interface {
	// Upload 上传内容，返回对象ID与访问URL
	Upload(ctx context.Context, collection, hash string, data []byte) (id string, url string, err error)

	// Fetch 按对象ID拉取内容，不存在时返回 (nil, false, nil)
	Fetch(ctx context.Context, id string) ([]byte, bool, error)
}
