package collector

import (
	"context"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/immich-exporter/internal/immich"
	"github.com/immich-exporter/internal/metrics"
	"github.com/immich-exporter/pkg/logger"
)

// ImmichCollector 按scrape拉取的采集器（实现 prometheus.Collector）
// 每次 Collect 都是一个独立周期：逐个请求上游端点并转换，
// 单个端点失败只丢掉它自己这部分记录，不影响其余端点。
// 无跨周期可变状态，Collect 并发安全。
type ImmichCollector struct {
	client *immich.Client
	prefix string

	// systemFn 可注入，测试时替换掉阻塞1秒的真实采样
	systemFn func(prefix string) ([]metrics.Record, error)
}

// NewImmichCollector 创建采集器
func NewImmichCollector(client *immich.Client, prefix string) *ImmichCollector {
	return &ImmichCollector{
		client:   client,
		prefix:   prefix,
		systemFn: metrics.SystemRecords,
	}
}

// Describe 留空：标签集随上游数据每周期变化，按unchecked collector注册
func (c *ImmichCollector) Describe(_ chan<- *prometheus.Desc) {}

// Collect 一次scrape即一次采集周期
func (c *ImmichCollector) Collect(ch chan<- prometheus.Metric) {
	logger.Debug("requested the metrics")

	for _, r := range c.gather(context.Background()) {
		emit(ch, r)
	}
}

// gather 按转换器声明顺序拉取并转换；失败的端点记日志后跳过
func (c *ImmichCollector) gather(ctx context.Context) []metrics.Record {
	var out []metrics.Record

	if v, err := c.client.Version(ctx); err != nil {
		logger.Error("couldn't get server version", zap.Error(err))
	} else if recs, err := metrics.VersionRecords(v, c.prefix); err != nil {
		logger.Error("couldn't transform server version", zap.Error(err))
	} else {
		out = append(out, recs...)
	}

	if s, err := c.client.Storage(ctx); err != nil {
		logger.Error("couldn't get storage info", zap.Error(err))
	} else if recs, err := metrics.StorageRecords(s, c.prefix); err != nil {
		logger.Error("couldn't transform storage info", zap.Error(err))
	} else {
		out = append(out, recs...)
	}

	if s, err := c.client.Statistics(ctx); err != nil {
		logger.Error("couldn't get server statistics", zap.Error(err))
	} else if recs, err := metrics.UserStatsRecords(s, c.prefix); err != nil {
		logger.Error("couldn't transform server statistics", zap.Error(err))
	} else {
		out = append(out, recs...)
	}

	if recs, err := c.systemFn(c.prefix); err != nil {
		logger.Error("couldn't collect system stats", zap.Error(err))
	} else {
		out = append(out, recs...)
	}

	return out
}

// emit 把Record序列化成const metric；非法记录记日志丢弃，绝不panic打断scrape
func emit(ch chan<- prometheus.Metric, r metrics.Record) {
	keys := make([]string, 0, len(r.Labels))
	for k := range r.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, r.Labels[k])
	}

	valueType := prometheus.GaugeValue
	if r.Kind == metrics.Counter {
		valueType = prometheus.CounterValue
	}

	m, err := prometheus.NewConstMetric(
		prometheus.NewDesc(r.Name, r.Help, keys, nil),
		valueType, r.Value, values...,
	)
	if err != nil {
		logger.Error("couldn't build metric", zap.String("metric", r.Name), zap.Error(err))
		return
	}
	ch <- m
}
