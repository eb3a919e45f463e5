package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vaultedge/v1/internal/app"
)

const version = "1.0.0"

func main() {
	var (
		configPath  string
		httpPort    int
		dataDir     string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "配置文件路径（JSON），省略时使用默认配置")
	flag.IntVar(&httpPort, "http-port", 0, "HTTP端口（节点级覆盖，不影响配置文件）")
	flag.StringVar(&dataDir, "data-dir", "", "数据根目录（节点级覆盖，不影响配置文件）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.Parse()

	if showVersion {
		fmt.Printf("vaultedge-node v%s\n", version)
		return
	}

	fmt.Println("🚀 vaultedge-node 启动中...")

	if err := app.Run(&app.Options{
		ConfigPath: configPath,
		HTTPPort:   httpPort,
		DataDir:    dataDir,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "❌ 节点运行失败: %v\n", err)
		os.Exit(1)
	}
}
