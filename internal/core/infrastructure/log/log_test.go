// Package log 测试文件
package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	logconfig "github.com/vaultedge/v1/internal/config/log"
)

// TestNew_FileOutput_WritesStructuredLogs 测试文件输出写入结构化日志
func TestNew_FileOutput_WritesStructuredLogs(t *testing.T) {
	// Arrange
	logPath := filepath.Join(t.TempDir(), "vaultedge.log")
	config := logconfig.NewFromOptions(&logconfig.LogOptions{
		Level:      "info",
		FilePath:   logPath,
		MaxSizeMB:  10,
		MaxBackups: 1,
		MaxAgeDays: 1,
		Console:    false,
	})

	logger, err := New(config)
	require.NoError(t, err, "应该成功创建日志记录器")

	// Act
	logger.Info("写入队列已启动")
	logger.With("module", "paramstore").Warnf("哈希校验失败: %s", "0xabc")
	require.NoError(t, logger.Sync())

	// Assert：日志文件存在且包含写入的消息
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "写入队列已启动")
	assert.Contains(t, content, "哈希校验失败")
	assert.Contains(t, content, `"module":"paramstore"`, "With字段应该出现在结构化输出中")
}

// TestNew_LevelFiltering_DropsBelowThreshold 测试低于阈值的日志被过滤
func TestNew_LevelFiltering_DropsBelowThreshold(t *testing.T) {
	// Arrange：级别为warn
	logPath := filepath.Join(t.TempDir(), "vaultedge.log")
	config := logconfig.NewFromOptions(&logconfig.LogOptions{
		Level:    "warn",
		FilePath: logPath,
	})

	logger, err := New(config)
	require.NoError(t, err)

	// Act
	logger.Info("不应该出现的信息")
	logger.Warn("应该出现的警告")
	require.NoError(t, logger.Sync())

	// Assert
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	content := string(data)
	assert.NotContains(t, content, "不应该出现的信息")
	assert.Contains(t, content, "应该出现的警告")
}

// TestParseLevel_UnknownLevel_FallsBackToInfo 测试未知级别回退到info
func TestParseLevel_UnknownLevel_FallsBackToInfo(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
}

// TestGetZapLogger_ReturnsUnderlyingLogger 测试暴露底层zap记录器
func TestGetZapLogger_ReturnsUnderlyingLogger(t *testing.T) {
	// Arrange
	config := logconfig.NewFromOptions(&logconfig.LogOptions{Level: "info", Console: true})
	logger, err := New(config)
	require.NoError(t, err)

	// Assert
	assert.NotNil(t, logger.GetZapLogger(), "应该能获取底层zap记录器")
}
