// Package paramstore 实现内容寻址参数存储服务
//
// 🎯 **核心职责**：
// - 实现 paramstore.ParameterStore 接口
// - 编排规范化哈希、内存缓存与异步写入队列
// - 双副本落盘：主存储原子写入 + 备份存储直接写入
//
// 💡 **设计特点**：
// - 写后缓存（write-behind）：Put返回时缓存已更新，落盘异步完成
// - 读取回退：缓存 → 主存储 → 备份存储，命中文件后回填缓存
// - 同哈希只写一次：相同内容的重复写入是幂等的
// - 读取路径永不等待写入队列
package paramstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	psconfig "github.com/vaultedge/v1/internal/config/paramstore"
	"github.com/vaultedge/v1/internal/core/paramstore/cache"
	"github.com/vaultedge/v1/internal/core/paramstore/canonical"
	"github.com/vaultedge/v1/internal/core/paramstore/queue"
	"github.com/vaultedge/v1/pkg/interfaces/infrastructure/log"
	"github.com/vaultedge/v1/pkg/interfaces/infrastructure/storage"
	psiface "github.com/vaultedge/v1/pkg/interfaces/paramstore"
)

// Service 参数存储服务实现
type Service struct {
	primary storage.FileStore
	backup  storage.FileStore
	cache   *cache.Cache
	queue   *queue.Queue
	logger  log.Logger

	// objectStorage 预留的对象存储扩展点（第三读取回退/异步复制目标）
	// 当前不接入实现，保持为nil
	objectStorage psiface.ObjectStorage
}

// 编译时检查接口实现
var _ psiface.ParameterStore = (*Service)(nil)

// NewService 创建参数存储服务
//
// 参数：
//   - primary: 主文件存储（必需，原子写入）
//   - backup: 备份文件存储（必需，直接写入）
//   - config: 参数存储配置（必需）
//   - logger: 日志服务（必需）
//
// 返回：
//   - *Service: 参数存储服务实例
//   - error: 初始化错误
func NewService(
	primary storage.FileStore,
	backup storage.FileStore,
	config *psconfig.Config,
	logger log.Logger,
) (*Service, error) {
	// 1. 验证参数
	if primary == nil {
		return nil, ErrPrimaryStoreNil
	}
	if backup == nil {
		return nil, ErrBackupStoreNil
	}
	if config == nil {
		return nil, ErrConfigNil
	}
	if logger == nil {
		return nil, ErrLoggerNil
	}

	// 2. 创建服务实例
	s := &Service{
		primary: primary,
		backup:  backup,
		cache:   cache.New(config.GetCacheCapacity(), config.GetCacheTTL()),
		logger:  logger,
	}

	// 3. 创建写入队列（落盘函数由本服务提供）
	q, err := queue.New(s.writeTask, config.GetQueueBatchSize(), config.GetQueueBatchDelay(), logger)
	if err != nil {
		return nil, err
	}
	s.queue = q

	logger.Info("✅ 参数存储服务已创建")
	return s, nil
}

// Start 启动写入队列消费者
func (s *Service) Start() {
	s.queue.Start()
}

// Stop 关闭写入队列并等待在途任务落盘完成
func (s *Service) Stop(ctx context.Context) error {
	return s.queue.Stop(ctx)
}

// Put 存储参数并返回其内容哈希
// 同步更新缓存，异步落盘；方法返回时数据尚未持久化
func (s *Service) Put(ctx context.Context, collection string, payload interface{}) (*psiface.PutResult, error) {
	_, result, err := s.store(ctx, collection, payload)
	return result, err
}

// WriteWithHash 校验调用方提供的哈希后存储参数
// 哈希不一致时返回ErrHashMismatch，不产生任何缓存或队列副作用
func (s *Service) WriteWithHash(ctx context.Context, collection, expectedHash string, payload interface{}) (*psiface.PutResult, error) {
	if err := s.checkHash(collection, expectedHash, payload); err != nil {
		return nil, err
	}
	_, result, err := s.store(ctx, collection, payload)
	return result, err
}

// WriteWithHashDurable 校验哈希并等待落盘完成后返回
// 用于调用方需要持久化保证的场景（如将哈希写入链上交易之前）
func (s *Service) WriteWithHashDurable(ctx context.Context, collection, expectedHash string, payload interface{}) (*psiface.PutResult, error) {
	if err := s.checkHash(collection, expectedHash, payload); err != nil {
		return nil, err
	}

	task, result, err := s.store(ctx, collection, payload)
	if err != nil {
		return nil, err
	}

	// 等待该任务自身的落盘结果
	if err := task.Wait(ctx); err != nil {
		return nil, fmt.Errorf("等待落盘失败: %w", err)
	}
	return result, nil
}

// checkHash 校验调用方提供的哈希
// 任何不一致都在缓存与队列被触碰之前快速失败
func (s *Service) checkHash(collection, expectedHash string, payload interface{}) error {
	if !canonical.ValidHash(expectedHash) {
		return fmt.Errorf("%w: %s", ErrInvalidHash, expectedHash)
	}

	computed, err := canonical.Hash(payload)
	if err != nil {
		return err
	}

	if computed != strings.ToLower(expectedHash) {
		s.logger.Warnf("哈希校验失败: collection=%s expected=%s computed=%s", collection, expectedHash, computed)
		return fmt.Errorf("%w: 期望 %s，计算得到 %s", ErrHashMismatch, expectedHash, computed)
	}
	return nil
}

// store 公共写入流程：规范化 → 缓存 → 入队
// 返回入队任务以供需要持久化保证的调用方等待
func (s *Service) store(ctx context.Context, collection string, payload interface{}) (*queue.Task, *psiface.PutResult, error) {
	if err := validateCollection(collection); err != nil {
		return nil, nil, err
	}

	// 1. 规范化序列化与哈希（失败时无任何副作用）
	data, err := canonical.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	hash := canonical.HashBytes(data)

	// 2. 同步更新缓存（缓存中保存归一化后的标签值模型）
	value, err := canonical.Unmarshal(data)
	if err != nil {
		return nil, nil, err
	}
	s.cache.Set(collection, hash, value)

	// 3. 异步入队落盘
	task := queue.NewTask(collection, hash, data)
	if err := s.queue.Enqueue(task); err != nil {
		return nil, nil, fmt.Errorf("写入任务入队失败: %w", err)
	}

	s.logger.Debugf("📦 参数已入队: collection=%s hash=%s size=%d", collection, hash, len(data))

	relPath := paramPath(collection, hash)
	return task, &psiface.PutResult{
		Hash:        hash,
		PrimaryPath: filepath.Join(s.primary.RootPath(), relPath),
		BackupPath:  filepath.Join(s.backup.RootPath(), relPath),
	}, nil
}

// writeTask 单任务落盘：主存储原子写入，随后备份存储直接写入
// 由写入队列的消费者goroutine串行调用
func (s *Service) writeTask(ctx context.Context, task *queue.Task) error {
	relPath := paramPath(task.Collection, task.Hash)

	if err := s.primary.Save(ctx, relPath, task.Data); err != nil {
		return fmt.Errorf("主存储写入失败: %w", err)
	}

	if err := s.backup.SaveDirect(ctx, relPath, task.Data); err != nil {
		return fmt.Errorf("备份存储写入失败: %w", err)
	}

	return nil
}

// Read 读取参数
// 回退顺序：缓存 → 主存储文件 → 备份存储文件，命中文件后回填缓存
// 两处均不存在时返回 (nil, false, nil)，缺失不是错误
func (s *Service) Read(ctx context.Context, collection, hash string) (interface{}, bool, error) {
	return s.lookup(ctx, collection, hash)
}

// GetForExecution 执行路径专用读取
// 回退顺序与Read完全一致；该路径面向延迟敏感调用方（如交易构建），
// 实现上与写入队列完全解耦，永不阻塞在批次刷盘上
func (s *Service) GetForExecution(ctx context.Context, collection, hash string) (interface{}, bool, error) {
	return s.lookup(ctx, collection, hash)
}

// lookup 读取回退链
func (s *Service) lookup(ctx context.Context, collection, hash string) (interface{}, bool, error) {
	if err := validateCollection(collection); err != nil {
		return nil, false, err
	}
	if !canonical.ValidHash(hash) {
		return nil, false, fmt.Errorf("%w: %s", ErrInvalidHash, hash)
	}

	// 1. 缓存命中直接返回
	if value, ok := s.cache.Get(collection, hash); ok {
		return value, true, nil
	}

	relPath := paramPath(collection, hash)

	// 2. 主存储 → 备份存储
	for _, store := range []storage.FileStore{s.primary, s.backup} {
		data, found, err := store.Load(ctx, relPath)
		if err != nil {
			return nil, false, err
		}
		if !found {
			continue
		}

		value, err := canonical.Unmarshal(data)
		if err != nil {
			return nil, false, fmt.Errorf("解析落盘内容失败: %w", err)
		}

		// 回填缓存
		s.cache.Set(collection, hash, value)
		return value, true, nil
	}

	return nil, false, nil
}

// Exists 检查参数是否已持久化
// 主存储或备份存储任一存在即为true；不查询缓存（持久性检查而非缓存检查）
func (s *Service) Exists(ctx context.Context, collection, hash string) (bool, error) {
	if err := validateCollection(collection); err != nil {
		return false, err
	}
	if !canonical.ValidHash(hash) {
		return false, fmt.Errorf("%w: %s", ErrInvalidHash, hash)
	}

	relPath := paramPath(collection, hash)

	if ok, err := s.primary.Exists(ctx, relPath); err != nil {
		return false, err
	} else if ok {
		return true, nil
	}

	return s.backup.Exists(ctx, relPath)
}

// Delete 删除参数的主存储与备份存储文件
// 两个副本都会尝试删除；不主动失效缓存，允许TTL窗口内的短暂陈旧
func (s *Service) Delete(ctx context.Context, collection, hash string) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	if !canonical.ValidHash(hash) {
		return fmt.Errorf("%w: %s", ErrInvalidHash, hash)
	}

	relPath := paramPath(collection, hash)

	return errors.Join(
		s.primary.Delete(ctx, relPath),
		s.backup.Delete(ctx, relPath),
	)
}

// ClearCache 清空内存缓存（仅测试使用）
func (s *Service) ClearCache() {
	s.cache.Clear()
}

// paramPath 构建参数文件的相对路径：{collection}/{hash}.json
func paramPath(collection, hash string) string {
	return filepath.Join(collection, hash+".json")
}

// validateCollection 校验集合名
// 集合名作为目录名使用，不允许为空或包含路径成分
func validateCollection(collection string) error {
	if collection == "" ||
		strings.ContainsAny(collection, `/\`) ||
		collection == "." || collection == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
	}
	return nil
}
