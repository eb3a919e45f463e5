package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/vaultedge/v1/pkg/interfaces/infrastructure/storage"
)

// MockFileStore 内存文件存储，记录调用以供断言
type MockFileStore struct {
	mu    sync.Mutex
	files map[string][]byte

	// SaveErr 非nil时所有写入调用返回该错误
	SaveErr error
	// FailPaths 命中路径时写入返回错误
	FailPaths map[string]error

	SaveCalls       []string
	SaveDirectCalls []string
}

// 编译时检查接口实现
var _ storage.FileStore = (*MockFileStore)(nil)

// NewMockFileStore 创建内存文件存储
func NewMockFileStore() *MockFileStore {
	return &MockFileStore{
		files:     make(map[string][]byte),
		FailPaths: make(map[string]error),
	}
}

func (m *MockFileStore) save(path string, data []byte) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if err, ok := m.FailPaths[path]; ok {
		return err
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	m.files[path] = buf
	return nil
}

// Save 原子保存（内存实现不区分原子性，仅记录调用）
func (m *MockFileStore) Save(ctx context.Context, path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls = append(m.SaveCalls, path)
	return m.save(path, data)
}

// SaveDirect 直接保存
func (m *MockFileStore) SaveDirect(ctx context.Context, path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveDirectCalls = append(m.SaveDirectCalls, path)
	return m.save(path, data)
}

// Load 读取文件
func (m *MockFileStore) Load(ctx context.Context, path string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.files[path]
	if !ok {
		return nil, false, nil
	}
	return data, true, nil
}

// Exists 检查文件存在
func (m *MockFileStore) Exists(ctx context.Context, path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.files[path]
	return ok, nil
}

// Delete 删除文件
func (m *MockFileStore) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.files, path)
	return nil
}

// RootPath 返回固定的虚拟根目录
func (m *MockFileStore) RootPath() string {
	return "/mock"
}

// Close 无操作
func (m *MockFileStore) Close() error { return nil }

// Put 直接放入文件（测试准备用）
func (m *MockFileStore) Put(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[path] = data
}

// Len 返回当前文件数
func (m *MockFileStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.files)
}

// Dump 返回指定路径内容的字符串形式（调试用）
func (m *MockFileStore) Dump(path string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return fmt.Sprintf("%s", m.files[path])
}
