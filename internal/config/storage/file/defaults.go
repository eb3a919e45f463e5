// Package file 提供文件存储的默认配置
package file

// 默认配置值
const (
	defaultPrimaryDirName = "storage"        // 主存储目录名
	defaultBackupDirName  = "storage_backup" // 备份存储目录名
	defaultDataRoot       = "./data"
	defaultMaxFileSizeMB  = int64(16) // 单个参数文件上限16MB
	defaultFilePermissions      = 0644
	defaultDirectoryPermissions = 0755
)
