package registers

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/immich-exporter/config"
	"github.com/immich-exporter/internal/collector"
	"github.com/immich-exporter/internal/immich"
)

// InitPromRegistry 初始化Prometheus注册器（不注册Go运行时指标）
// enableProcess 控制是否附带进程指标；Immich采集器固定注册一次
func InitPromRegistry(enableProcess bool, cfg *config.Config, client *immich.Client) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()
	if enableProcess {
		promRegistry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	}

	promRegistry.MustRegister(collector.NewImmichCollector(client, cfg.Immich.MetricsPrefix))

	return promRegistry
}
