package app

// Options 节点级启动选项
// 命令行参数对配置文件的覆盖项，只影响本进程
type Options struct {
	ConfigPath string // 配置文件路径（为空时使用默认配置）
	HTTPPort   int    // HTTP端口覆盖（0表示不覆盖）
	DataDir    string // 数据根目录覆盖（为空时不覆盖）
}
