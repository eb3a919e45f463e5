// Package utils 提供VaultEdge系统的通用工具函数
package utils

import "path/filepath"

// ResolveDataPath 将数据路径解析为绝对路径
// 相对路径相对于进程工作目录解析；解析失败时原样返回，
// 由后续的目录创建步骤暴露问题
func ResolveDataPath(path string) string {
	if path == "" {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
