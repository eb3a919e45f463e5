// Package testutil 提供参数存储模块测试用的模拟实现
package testutil

import (
	"go.uber.org/zap"

	logiface "github.com/vaultedge/v1/pkg/interfaces/infrastructure/log"
)

// MockLogger 空操作日志记录器
type MockLogger struct{}

// 编译时检查接口实现
var _ logiface.Logger = (*MockLogger)(nil)

// NewMockLogger 创建空操作日志记录器
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (l *MockLogger) Debug(msg string)                          {}
func (l *MockLogger) Debugf(format string, args ...interface{}) {}
func (l *MockLogger) Info(msg string)                           {}
func (l *MockLogger) Infof(format string, args ...interface{})  {}
func (l *MockLogger) Warn(msg string)                           {}
func (l *MockLogger) Warnf(format string, args ...interface{})  {}
func (l *MockLogger) Error(msg string)                          {}
func (l *MockLogger) Errorf(format string, args ...interface{}) {}
func (l *MockLogger) Fatal(msg string)                          {}
func (l *MockLogger) Fatalf(format string, args ...interface{}) {}

// With 返回自身（无字段语义）
func (l *MockLogger) With(args ...interface{}) logiface.Logger { return l }

// Sync 无操作
func (l *MockLogger) Sync() error { return nil }

// GetZapLogger 返回zap空日志记录器
func (l *MockLogger) GetZapLogger() *zap.Logger { return zap.NewNop() }
