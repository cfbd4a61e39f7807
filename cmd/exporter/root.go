package exporter

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/immich-exporter/config"
	"github.com/immich-exporter/internal/immich"
	"github.com/immich-exporter/internal/probe"
	"github.com/immich-exporter/internal/registers"
	"github.com/immich-exporter/internal/server"
	"github.com/immich-exporter/pkg/logger"
	"github.com/immich-exporter/pkg/signal"
	"github.com/immich-exporter/pkg/util"
)

// exporterVersion 启动日志里输出的版本串
const exporterVersion = "1.2.1"

var (
	cfgFile    string
	defaultCfg = config.NewDefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "immich-exporter",
	Short: "Prometheus exporter for the Immich photo server (server/storage/user stats + host system stats)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfigWithCli(cmd)
		if err != nil {
			// 配置错误属于致命错误：探测开始前直接退出
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := runServer(cmd.Context(), cfg); err != nil {
			fmt.Fprintf(os.Stderr, "exporter failed: %v\n", err)
			os.Exit(1)
		}
		return nil
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "配置文件路径（可选，默认纯ENV/flag配置）")
	// 注册分组 flag
	initImmichFlags(rootCmd)
	initServerFlags(rootCmd)
	initLogFlags(rootCmd)
}

func runServer(ctx context.Context, cfg *config.Config) error {
	//初始化日志
	if _, err := logger.InitLogger(&cfg.Log); err != nil {
		return fmt.Errorf("日志初始化失败: %w", err)
	}
	defer logger.Sync()

	projectName := "immich-exporter"
	util.PrintBanner(projectName, "ColorBlue")
	logger.Info("exporter is starting up")

	// 信号协调器先挂上：探测阶段也要能响应Ctrl-C升级
	handler := signal.NewHandler()
	defer handler.Stop()

	// 就绪门：上游可达 + 凭证请求有响应之前不开HTTP服务
	client := immich.NewClient(cfg.Immich)
	readiness := probe.New(client, cfg.Immich.Host, cfg.Immich.Port)
	readiness.WaitUntilReachable(ctx)
	readiness.WaitUntilAuthenticated(ctx)
	logger.Info("Exporter " + exporterVersion)

	// init Registry
	const enableProcess = true
	registry := registers.InitPromRegistry(enableProcess, cfg, client)
	httpServer := server.NewHTTPServer(cfg.Server, registry)
	if err := httpServer.Start(); err != nil {
		return fmt.Errorf("start HTTP server failed: %w", err)
	}
	logger.Info("exporter listening", zap.String("listen_addr", cfg.Server.Addr))

	// 每秒轮询关停状态；第二个信号由handler直接强杀
	handler.Wait(func() error {
		return httpServer.Shutdown()
	})
	return nil
}
