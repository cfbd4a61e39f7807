package config

import (
	"fmt"
	"strings"
)

// Validate Immich上游配置校验
// Host/Port/APIKey 缺失属于致命错误：没有上游，exporter 没有任何意义
func (i *ImmichConfig) Validate() error {
	if err := valid.Struct(i); err != nil {
		return fmt.Errorf("immich config invalid: %w", err)
	}

	// 	校验Host（非空，不能带scheme）
	host := strings.TrimSpace(i.Host)
	if host == "" {
		return fmt.Errorf("immich.host cannot be empty, set IMMICH_HOST")
	}
	if strings.Contains(host, "://") {
		return fmt.Errorf("immich.host must be a bare hostname or IP (no scheme), got %s", i.Host)
	}
	if strings.ContainsAny(host, " \t\r\n") {
		return fmt.Errorf("immich.host %q contains whitespace", i.Host)
	}

	// 	校验APIKey（非空）
	if strings.TrimSpace(i.APIKey) == "" {
		return fmt.Errorf("immich.api_key cannot be empty, set IMMICH_API_KEY")
	}

	// 	校验指标前缀（必须是合法的Prometheus指标名起始段）
	prefix := i.MetricsPrefix
	if prefix == "" {
		return fmt.Errorf("immich.metrics_prefix cannot be empty")
	}
	for idx, r := range prefix {
		ok := r == '_' || r == ':' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(idx > 0 && r >= '0' && r <= '9')
		if !ok {
			return fmt.Errorf("immich.metrics_prefix %q is not a valid metric name prefix", prefix)
		}
	}

	return nil
}
