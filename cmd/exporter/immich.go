package exporter

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func initImmichFlags(root *cobra.Command) {
	f := root.PersistentFlags()
	immichPrefix := "immich."

	f.String(
		immichPrefix+"host",
		defaultCfg.Immich.Host,
		"-> Immich hostname or IP | Immich主机名或IP")
	f.Int(
		immichPrefix+"port",
		defaultCfg.Immich.Port,
		"-> Immich port | Immich端口")
	f.String(
		immichPrefix+"api_key",
		defaultCfg.Immich.APIKey,
		"-> Immich API key (x-api-key header) | Immich API密钥")
	f.String(
		immichPrefix+"metrics_prefix",
		defaultCfg.Immich.MetricsPrefix,
		"-> Metric name prefix | 指标名前缀")
	f.Duration(
		immichPrefix+"request_timeout",
		defaultCfg.Immich.RequestTimeout,
		"-> Per-request upstream timeout (0 disables) | 单次上游请求超时")

	err := viper.BindPFlags(f)
	if err != nil {
		return
	}
}
