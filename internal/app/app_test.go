// Package app 测试文件
package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfig_MissingFile_ReturnsDefaults 测试配置文件缺失时退回默认配置
func TestLoadConfig_MissingFile_ReturnsDefaults(t *testing.T) {
	// Act
	appConfig := LoadConfig(&Options{ConfigPath: "/nonexistent/config.json"})

	// Assert：所有分区为nil，各config包将使用默认值
	require.NotNil(t, appConfig)
	assert.Nil(t, appConfig.Log)
	assert.Nil(t, appConfig.Storage)
	assert.Nil(t, appConfig.ParamStore)
	assert.Nil(t, appConfig.API)
}

// TestLoadConfig_ValidFile_ParsesSections 测试合法配置文件被正确解析
func TestLoadConfig_ValidFile_ParsesSections(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"storage": {"data_root": "/var/lib/vaultedge"},
		"param_store": {"cache_capacity": 500, "queue_batch_size": 16},
		"api": {"listen_address": ":9000", "dedup_all": true}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	// Act
	appConfig := LoadConfig(&Options{ConfigPath: path})

	// Assert
	require.NotNil(t, appConfig.Storage)
	assert.Equal(t, "/var/lib/vaultedge", *appConfig.Storage.DataRoot)

	require.NotNil(t, appConfig.ParamStore)
	assert.Equal(t, 500, *appConfig.ParamStore.CacheCapacity)
	assert.Equal(t, 16, *appConfig.ParamStore.QueueBatchSize)

	require.NotNil(t, appConfig.API)
	assert.Equal(t, ":9000", *appConfig.API.ListenAddress)
	assert.Equal(t, true, *appConfig.API.DedupAll)

	assert.Nil(t, appConfig.Log, "未配置的分区应该保持nil")
}

// TestLoadConfig_InvalidJSON_FallsBackToDefaults 测试非法JSON退回默认配置
func TestLoadConfig_InvalidJSON_FallsBackToDefaults(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0644))

	// Act
	appConfig := LoadConfig(&Options{ConfigPath: path})

	// Assert
	require.NotNil(t, appConfig)
	assert.Nil(t, appConfig.Storage)
}

// TestLoadConfig_FlagOverrides_TakePrecedence 测试命令行覆盖优先于配置文件
func TestLoadConfig_FlagOverrides_TakePrecedence(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"api": {"listen_address": ":9000"}, "storage": {"data_root": "/from/file"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	// Act
	appConfig := LoadConfig(&Options{
		ConfigPath: path,
		HTTPPort:   8080,
		DataDir:    "/from/flag",
	})

	// Assert
	assert.Equal(t, ":8080", *appConfig.API.ListenAddress, "端口覆盖应该优先于配置文件")
	assert.Equal(t, "/from/flag", *appConfig.Storage.DataRoot, "数据目录覆盖应该优先于配置文件")
}

// TestLoadConfig_OverridesWithoutFile_CreateSections 测试无配置文件时覆盖项单独生效
func TestLoadConfig_OverridesWithoutFile_CreateSections(t *testing.T) {
	// Act
	appConfig := LoadConfig(&Options{HTTPPort: 7000})

	// Assert
	require.NotNil(t, appConfig.API)
	assert.Equal(t, ":7000", *appConfig.API.ListenAddress)
	assert.Nil(t, appConfig.Storage)
}
