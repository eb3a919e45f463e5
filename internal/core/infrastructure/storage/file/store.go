// Package file 提供基于文件系统的存储实现
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	fileconfig "github.com/vaultedge/v1/internal/config/storage/file"
	"github.com/vaultedge/v1/pkg/interfaces/infrastructure/log"
	"github.com/vaultedge/v1/pkg/interfaces/infrastructure/storage"
)

// Store 实现FileStore接口
type Store struct {
	config   *fileconfig.Config
	logger   log.Logger
	rootPath string
	mu       sync.RWMutex
	closed   bool
}

// Prometheus 指标：观测 FileStore 调用情况
var (
	filestoreSaveRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vaultedge_filestore_save_requests_total",
		Help: "Total number of FileStore save calls.",
	}, []string{"mode"})
	filestoreSaveErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vaultedge_filestore_save_errors_total",
		Help: "Total number of FileStore save errors.",
	}, []string{"mode"})
	filestoreLoadRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vaultedge_filestore_load_requests_total",
		Help: "Total number of FileStore.Load calls.",
	})
	filestoreLoadErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vaultedge_filestore_load_errors_total",
		Help: "Total number of FileStore.Load errors.",
	})
	filestoreLoadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vaultedge_filestore_load_duration_seconds",
		Help:    "Duration of FileStore.Load calls.",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		filestoreSaveRequests,
		filestoreSaveErrors,
		filestoreLoadRequests,
		filestoreLoadErrors,
		filestoreLoadDuration,
	)
}

// New 创建新的FileStore实例
//
// rootPath为该实例的存储根目录；主存储与备份存储各创建一个实例。
// 根目录不存在时自动创建（幂等）。
func New(config *fileconfig.Config, rootPath string, logger log.Logger) (storage.FileStore, error) {
	if config == nil {
		return nil, fmt.Errorf("config 不能为空")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger 不能为空")
	}

	// 统一为绝对路径，避免相对路径导致的边界校验误判
	if abs, err := filepath.Abs(rootPath); err == nil {
		rootPath = abs
	}

	// 确保根目录存在
	if err := os.MkdirAll(rootPath, os.FileMode(config.GetDirectoryPermissions())); err != nil {
		return nil, fmt.Errorf("无法创建文件存储根目录 %s: %w", rootPath, err)
	}

	store := &Store{
		config:   config,
		logger:   logger,
		rootPath: rootPath,
	}

	logger.Infof("文件存储初始化成功，根目录: %s", rootPath)
	return store, nil
}

// Save 原子保存数据到指定路径
// 先写入同目录下的临时文件，再重命名到目标路径
func (s *Store) Save(ctx context.Context, path string, data []byte) error {
	filestoreSaveRequests.WithLabelValues("atomic").Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	fullPath, err := s.prepareSave(path, data)
	if err != nil {
		filestoreSaveErrors.WithLabelValues("atomic").Inc()
		return err
	}

	// 临时文件写入同一目录，保证rename不跨文件系统
	tmpFile, err := os.CreateTemp(filepath.Dir(fullPath), ".tmp-*")
	if err != nil {
		filestoreSaveErrors.WithLabelValues("atomic").Inc()
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		filestoreSaveErrors.WithLabelValues("atomic").Inc()
		return fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		filestoreSaveErrors.WithLabelValues("atomic").Inc()
		return fmt.Errorf("关闭临时文件失败: %w", err)
	}
	if err := os.Chmod(tmpPath, os.FileMode(s.config.GetFilePermissions())); err != nil {
		_ = os.Remove(tmpPath)
		filestoreSaveErrors.WithLabelValues("atomic").Inc()
		return fmt.Errorf("设置文件权限失败: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		_ = os.Remove(tmpPath)
		filestoreSaveErrors.WithLabelValues("atomic").Inc()
		s.logger.Errorf("原子重命名失败 %s: %v", fullPath, err)
		return fmt.Errorf("原子重命名失败: %w", err)
	}

	return nil
}

// SaveDirect 直接保存数据到指定路径（非原子）
// 用于备份副本，对半写不作防护
func (s *Store) SaveDirect(ctx context.Context, path string, data []byte) error {
	filestoreSaveRequests.WithLabelValues("direct").Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	fullPath, err := s.prepareSave(path, data)
	if err != nil {
		filestoreSaveErrors.WithLabelValues("direct").Inc()
		return err
	}

	if err := os.WriteFile(fullPath, data, os.FileMode(s.config.GetFilePermissions())); err != nil {
		filestoreSaveErrors.WithLabelValues("direct").Inc()
		s.logger.Errorf("保存文件失败 %s: %v", fullPath, err)
		return fmt.Errorf("保存文件失败: %w", err)
	}

	return nil
}

// prepareSave 保存前的公共检查：关闭状态、大小限制、路径边界、父目录
// 调用方必须持有写锁
func (s *Store) prepareSave(path string, data []byte) (string, error) {
	if s.closed {
		return "", fmt.Errorf("文件存储已关闭")
	}

	// 检查文件大小限制
	sizeMB := int64(len(data)) / (1024 * 1024)
	if sizeMB > s.config.GetMaxFileSizeMB() {
		return "", fmt.Errorf("文件大小 %dMB 超过限制 %dMB", sizeMB, s.config.GetMaxFileSizeMB())
	}

	fullPath, err := s.getFullPath(path)
	if err != nil {
		return "", err
	}

	// 确保父目录存在（幂等）
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, os.FileMode(s.config.GetDirectoryPermissions())); err != nil {
		s.logger.Errorf("创建目录失败 %s: %v", dir, err)
		return "", fmt.Errorf("创建目录失败: %w", err)
	}

	return fullPath, nil
}

// Load 读取指定路径的文件内容
// 文件不存在时返回 (nil, false, nil)，缺失不是错误
func (s *Store) Load(ctx context.Context, path string) ([]byte, bool, error) {
	filestoreLoadRequests.Inc()
	start := time.Now()
	defer func() {
		filestoreLoadDuration.Observe(time.Since(start).Seconds())
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		filestoreLoadErrors.Inc()
		return nil, false, fmt.Errorf("文件存储已关闭")
	}

	fullPath, err := s.getFullPath(path)
	if err != nil {
		filestoreLoadErrors.Inc()
		return nil, false, err
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		filestoreLoadErrors.Inc()
		s.logger.Errorf("读取文件失败 %s: %v", fullPath, err)
		return nil, false, fmt.Errorf("读取文件失败: %w", err)
	}

	return data, true, nil
}

// Exists 检查指定路径的文件是否存在
func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, fmt.Errorf("文件存储已关闭")
	}

	fullPath, err := s.getFullPath(path)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("检查文件状态失败: %w", err)
	}

	return !info.IsDir(), nil
}

// Delete 删除指定路径的文件
// 文件不存在时不返回错误（幂等）
func (s *Store) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("文件存储已关闭")
	}

	fullPath, err := s.getFullPath(path)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		s.logger.Errorf("删除文件失败 %s: %v", fullPath, err)
		return fmt.Errorf("删除文件失败: %w", err)
	}

	return nil
}

// RootPath 返回存储根目录的绝对路径
func (s *Store) RootPath() string {
	return s.rootPath
}

// Close 关闭存储并释放资源
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	s.logger.Infof("文件存储已关闭，根目录: %s", s.rootPath)
	return nil
}

// getFullPath 构建完整路径并校验边界
// 拒绝绝对路径与越出根目录的相对路径（路径穿越防护）
func (s *Store) getFullPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("路径不能为空")
	}
	if filepath.IsAbs(path) {
		return "", fmt.Errorf("不允许绝对路径: %s", path)
	}

	fullPath := filepath.Join(s.rootPath, path)

	// 边界校验：清理后的路径必须位于根目录内
	cleaned := filepath.Clean(fullPath)
	if cleaned != s.rootPath && !strings.HasPrefix(cleaned, s.rootPath+string(filepath.Separator)) {
		return "", fmt.Errorf("路径越出存储根目录: %s", path)
	}

	return cleaned, nil
}
