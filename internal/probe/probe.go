package probe

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/immich-exporter/pkg/logger"
)

// State 就绪探测状态机；Ready之后不再回头
type State int

const (
	NotStarted State = iota
	ProbingReachability
	ProbingAuthentication
	Ready
)

// authRetryInterval 凭证探测失败后的固定重试间隔
const authRetryInterval = 3 * time.Second

// prober 探测所需的最小上游能力（*immich.Client 满足）
type prober interface {
	Ping(ctx context.Context) (int, error)
	AuthCheck(ctx context.Context) (int, error)
}

// Probe 启动就绪门：阻塞到上游可达且带凭证请求有响应为止
// 只在启动时跑一次，没有失败返回——上游不可用时进程本来就无事可做
type Probe struct {
	client prober
	clock  clockwork.Clock
	host   string
	port   int
	state  State
}

// New 创建就绪探测（真实时钟）
func New(client prober, host string, port int) *Probe {
	return NewWithClock(client, host, port, clockwork.NewRealClock())
}

// NewWithClock 注入时钟，退避调度可用fake clock测试
func NewWithClock(client prober, host string, port int, clock clockwork.Clock) *Probe {
	return &Probe{
		client: client,
		clock:  clock,
		host:   host,
		port:   port,
		state:  NotStarted,
	}
}

// RetryDelay 可达性探测的分层退避：按已尝试次数给出下次休眠时长
// 1–60次每秒一次，61–300次每15秒，之后每60秒——专为等待上游慢启动设计
func RetryDelay(attempt int) time.Duration {
	switch {
	case attempt <= 60:
		return time.Second
	case attempt <= 300:
		return 15 * time.Second
	default:
		return 60 * time.Second
	}
}

// WaitUntilReachable 阻塞直到上游返回任意HTTP响应（错误状态码也算可达）
// 只有网络层失败（连接拒绝/超时/DNS）才重试，次数无上限
func (p *Probe) WaitUntilReachable(ctx context.Context) {
	p.state = ProbingReachability

	attempt := 0
	for {
		attempt++
		_, err := p.client.Ping(ctx)
		if err == nil {
			break
		}
		logger.Error("CONNECTION ERROR. Cannot reach immich. Is immich up and running?",
			zap.String("host", p.host), zap.Int("port", p.port),
			zap.Int("attempt", attempt), zap.Error(err))
		p.clock.Sleep(RetryDelay(attempt))
	}

	logger.Info("found immich up and running",
		zap.String("host", p.host), zap.Int("port", p.port))
}

// WaitUntilAuthenticated 阻塞直到带凭证请求有响应
// 保留上游原始行为：不校验状态码，401/403也结束探测（只打warn）
func (p *Probe) WaitUntilAuthenticated(ctx context.Context) {
	p.state = ProbingAuthentication

	for {
		status, err := p.client.AuthCheck(ctx)
		if err != nil {
			logger.Error("CONNECTION ERROR. Possible API key error", zap.Error(err))
			p.clock.Sleep(authRetryInterval)
			continue
		}
		if status < 200 || status > 299 {
			logger.Warn("authenticated probe got a non-2xx response, check the API key",
				zap.Int("status", status))
		}
		break
	}

	p.state = Ready
	logger.Info("authenticated request succeeded")
}

// State 当前探测阶段
func (p *Probe) State() State {
	return p.state
}
