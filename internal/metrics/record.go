package metrics

// Kind 指标类型
type Kind int

const (
	// Gauge 瞬时值（默认）
	Gauge Kind = iota
	// Counter 单调递增计数
	Counter
)

// Record 规范化指标记录：所有转换器的统一输出单元
// 同一采集周期内，Name相同的Record必须携带相同的标签键集合
// （Prometheus按metric family要求标签键一致）
type Record struct {
	Name   string
	Kind   Kind
	Value  float64
	Help   string
	Labels map[string]string
}
