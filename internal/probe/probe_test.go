package probe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/immich-exporter/config"
	"github.com/immich-exporter/pkg/logger"
)

func initTestLogger(t *testing.T) {
	t.Helper()
	_, err := logger.InitLogger(&config.ZapLogConfig{
		Level: "error", Format: "json", Path: t.TempDir(),
		MaxSize: 1, MaxBackup: 1, MaxAge: 1,
	})
	require.NoError(t, err)
}

// fakeUpstream 前N次调用返回网络错误，之后返回配置的状态码
type fakeUpstream struct {
	pingFailures int
	pingCalls    int
	authFailures int
	authCalls    int
	authStatus   int
}

func (f *fakeUpstream) Ping(_ context.Context) (int, error) {
	f.pingCalls++
	if f.pingCalls <= f.pingFailures {
		return 0, errors.New("dial tcp: connection refused")
	}
	return 200, nil
}

func (f *fakeUpstream) AuthCheck(_ context.Context) (int, error) {
	f.authCalls++
	if f.authCalls <= f.authFailures {
		return 0, errors.New("dial tcp: connection refused")
	}
	if f.authStatus == 0 {
		return 200, nil
	}
	return f.authStatus, nil
}

func TestRetryDelayTiers(t *testing.T) {
	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, time.Second},
		{60, time.Second},
		{61, 15 * time.Second},
		{300, 15 * time.Second},
		{301, 60 * time.Second},
		{100000, 60 * time.Second},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RetryDelay(tc.attempt), "attempt %d", tc.attempt)
	}
}

// 前5次探测失败：虚拟时间必须恰好推进5秒，第6次成功结束
func TestWaitUntilReachableBackoffSchedule(t *testing.T) {
	initTestLogger(t)

	clock := clockwork.NewFakeClock()
	up := &fakeUpstream{pingFailures: 5}
	p := NewWithClock(up, "photos.local", 2283, clock)

	start := clock.Now()
	done := make(chan struct{})
	go func() {
		p.WaitUntilReachable(context.Background())
		close(done)
	}()

	for i := 0; i < 5; i++ {
		clock.BlockUntil(1)
		clock.Advance(time.Second)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("WaitUntilReachable did not finish")
	}

	assert.Equal(t, 6, up.pingCalls)
	assert.Equal(t, 5*time.Second, clock.Now().Sub(start))
	assert.Equal(t, ProbingReachability, p.State())
}

func TestWaitUntilReachableImmediate(t *testing.T) {
	initTestLogger(t)

	up := &fakeUpstream{}
	p := NewWithClock(up, "photos.local", 2283, clockwork.NewFakeClock())

	p.WaitUntilReachable(context.Background())
	assert.Equal(t, 1, up.pingCalls)
}

// 凭证探测按固定3秒间隔重试
func TestWaitUntilAuthenticatedRetries(t *testing.T) {
	initTestLogger(t)

	clock := clockwork.NewFakeClock()
	up := &fakeUpstream{authFailures: 2}
	p := NewWithClock(up, "photos.local", 2283, clock)

	start := clock.Now()
	done := make(chan struct{})
	go func() {
		p.WaitUntilAuthenticated(context.Background())
		close(done)
	}()

	for i := 0; i < 2; i++ {
		clock.BlockUntil(1)
		clock.Advance(3 * time.Second)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("WaitUntilAuthenticated did not finish")
	}

	assert.Equal(t, 3, up.authCalls)
	assert.Equal(t, 6*time.Second, clock.Now().Sub(start))
	assert.Equal(t, Ready, p.State())
}

// 401也算"有响应"：探测结束，保持与上游原始行为一致
func TestWaitUntilAuthenticatedAcceptsRejection(t *testing.T) {
	initTestLogger(t)

	up := &fakeUpstream{authStatus: 401}
	p := NewWithClock(up, "photos.local", 2283, clockwork.NewFakeClock())

	p.WaitUntilAuthenticated(context.Background())
	assert.Equal(t, 1, up.authCalls)
	assert.Equal(t, Ready, p.State())
}
