package signal

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/immich-exporter/pkg/logger"
)

// Handler 进程级关停协调器
// 第一个SIGINT/SIGTERM只把计数+1，主循环轮询到后开始优雅退出；
// 排水期间收到第二个信号直接强杀（操作员对卡死关停的显式兜底）。
// 信号goroutine里只做计数和强杀，优雅退出的日志全在主循环输出。
type Handler struct {
	count atomic.Int32
	sigCh chan os.Signal
	clock clockwork.Clock
	exit  func(int)
}

// NewHandler 创建并注册SIGINT/SIGTERM监听
func NewHandler() *Handler {
	h := newHandler(clockwork.NewRealClock(), os.Exit)
	signal.Notify(h.sigCh, syscall.SIGINT, syscall.SIGTERM)
	go h.watch()
	return h
}

// newHandler 不挂真实信号，测试用；调用方自己喂 sigCh 并起 watch
func newHandler(clock clockwork.Clock, exit func(int)) *Handler {
	return &Handler{
		sigCh: make(chan os.Signal, 1),
		clock: clock,
		exit:  exit,
	}
}

func (h *Handler) watch() {
	for sig := range h.sigCh {
		if h.count.Add(1) > 1 {
			logger.Warn("forcibly killing exporter", zap.String("signal", sig.String()))
			h.exit(1)
			return
		}
	}
}

// IsShuttingDown 主循环轮询入口
func (h *Handler) IsShuttingDown() bool {
	return h.count.Load() > 0
}

// Wait 空转循环：每秒轮询一次关停状态，进入排水后执行shutdownFunc
func (h *Handler) Wait(shutdownFunc func() error) {
	for !h.IsShuttingDown() {
		h.clock.Sleep(time.Second)
	}

	logger.Info("exporter is shutting down")
	if shutdownFunc != nil {
		if err := shutdownFunc(); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
	logger.Info("exporter has shutdown")
}

// Stop 解除信号监听（进程退出前调用）
func (h *Handler) Stop() {
	signal.Stop(h.sigCh)
}
