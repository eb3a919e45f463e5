package file

import (
	"path/filepath"

	configtypes "github.com/vaultedge/v1/pkg/types"
	"github.com/vaultedge/v1/pkg/utils"
)

// FileOptions 文件存储配置选项
type FileOptions struct {
	PrimaryRoot          string `json:"primary_root"`  // 主存储根目录
	BackupRoot           string `json:"backup_root"`   // 备份存储根目录
	MaxFileSizeMB        int64  `json:"max_file_size_mb"`
	FilePermissions      int    `json:"file_permissions"`
	DirectoryPermissions int    `json:"directory_permissions"`
}

// Config 文件存储配置实现
type Config struct {
	options *FileOptions
}

// New 创建文件存储配置实现
//
// 路径构建规则：
// - 如果配置了 storage.data_root，使用 {data_root}/storage 与 {data_root}/storage_backup
// - 如果未配置，使用默认值 ./data/storage 与 ./data/storage_backup
func New(userConfig interface{}) *Config {
	defaultOptions := createDefaultFileOptions()

	// 如果有用户配置，应用用户配置覆盖默认值
	if userConfig != nil {
		applyUserConfig(defaultOptions, userConfig)
	}

	return &Config{
		options: defaultOptions,
	}
}

// NewFromOptions 从FileOptions创建配置实现
// 用于直接使用已构建的配置选项（例如测试场景）
func NewFromOptions(options *FileOptions) *Config {
	if options == nil {
		return New(nil)
	}
	return &Config{
		options: options,
	}
}

// createDefaultFileOptions 创建默认文件存储配置
func createDefaultFileOptions() *FileOptions {
	return &FileOptions{
		PrimaryRoot:          utils.ResolveDataPath(filepath.Join(defaultDataRoot, defaultPrimaryDirName)),
		BackupRoot:           utils.ResolveDataPath(filepath.Join(defaultDataRoot, defaultBackupDirName)),
		MaxFileSizeMB:        defaultMaxFileSizeMB,
		FilePermissions:      defaultFilePermissions,
		DirectoryPermissions: defaultDirectoryPermissions,
	}
}

// applyUserConfig 应用用户配置覆盖默认值
func applyUserConfig(options *FileOptions, userConfig interface{}) {
	storageConfig, ok := userConfig.(*configtypes.UserStorageConfig)
	if !ok || storageConfig == nil {
		return
	}

	if storageConfig.DataRoot != nil {
		root := *storageConfig.DataRoot
		options.PrimaryRoot = utils.ResolveDataPath(filepath.Join(root, defaultPrimaryDirName))
		options.BackupRoot = utils.ResolveDataPath(filepath.Join(root, defaultBackupDirName))
	}
}

// GetOptions 获取完整的文件存储配置选项
func (c *Config) GetOptions() *FileOptions {
	return c.options
}

// GetPrimaryRoot 获取主存储根目录
func (c *Config) GetPrimaryRoot() string {
	return c.options.PrimaryRoot
}

// GetBackupRoot 获取备份存储根目录
func (c *Config) GetBackupRoot() string {
	return c.options.BackupRoot
}

// GetMaxFileSizeMB 获取最大文件大小限制(MB)
func (c *Config) GetMaxFileSizeMB() int64 {
	return c.options.MaxFileSizeMB
}

// GetFilePermissions 获取文件权限设置
func (c *Config) GetFilePermissions() int {
	return c.options.FilePermissions
}

// GetDirectoryPermissions 获取目录权限设置
func (c *Config) GetDirectoryPermissions() int {
	return c.options.DirectoryPermissions
}
