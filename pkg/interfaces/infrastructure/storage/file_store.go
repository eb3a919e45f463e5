// Package storage 提供VaultEdge系统的文件存储接口定义
//
// 💾 **文件存储服务 (File Storage Service)**
//
// 本文件定义了VaultEdge系统的文件存储接口，专注于：
// - 原子写入：临时文件+重命名的原子落盘机制
// - 直接写入：用于备份副本的非原子写入
// - 数据读取：按相对路径读取文件内容
// - 存在性检查与删除
//
// 🎯 **核心功能**
// - FileStore：文件存储接口，所有路径均为相对于根目录的相对路径
// - 路径安全：实现必须将所有路径限制在根目录内
//
// 🔗 **组件关系**
// - FileStore：被参数存储（paramstore）模块使用，主存储与备份存储
//   各持有一个独立实例
package storage

import "context"

// FileStore 定义文件存储接口
// 所有path参数均为相对于存储根目录的相对路径
type FileStore interface {
	// Save 原子保存数据到指定路径
	// 先写入同目录下的临时文件，再重命名到目标路径，
	// 避免崩溃或并发读导致的半写文件
	Save(ctx context.Context, path string, data []byte) error

	// SaveDirect 直接保存数据到指定路径（非原子）
	// 用于备份副本等对原子性无要求的场景
	SaveDirect(ctx context.Context, path string, data []byte) error

	// Load 读取指定路径的文件内容
	// 文件不存在时返回 (nil, false, nil)
	Load(ctx context.Context, path string) ([]byte, bool, error)

	// Exists 检查指定路径的文件是否存在
	Exists(ctx context.Context, path string) (bool, error)

	// Delete 删除指定路径的文件
	// 文件不存在时不返回错误
	Delete(ctx context.Context, path string) error

	// RootPath 返回存储根目录的绝对路径
	RootPath() string

	// Close 关闭存储并释放资源
	Close() error
}
