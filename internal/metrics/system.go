package metrics

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	cload "github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// cpuSampleWindow CPU利用率采样窗口；SystemRecords 会阻塞这么久
const cpuSampleWindow = time.Second

// SystemRecords 宿主机系统指标转换器（gopsutil）
// 注意：CPU采样阻塞约1秒，调用方（scrape路径）需要预留这个延迟
func SystemRecords(prefix string) ([]Record, error) {
	avg, err := cload.Avg()
	if err != nil {
		return nil, fmt.Errorf("get load average: %w", err)
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("get virtual memory: %w", err)
	}
	cpuPct, err := cpu.Percent(cpuSampleWindow, false)
	if err != nil {
		return nil, fmt.Errorf("get cpu percent: %w", err)
	}
	if len(cpuPct) == 0 {
		return nil, fmt.Errorf("get cpu percent: empty sample")
	}

	loadName := prefix + "_system_info_loadAverage"
	memName := prefix + "_system_info_memory"

	return []Record{
		{Name: loadName, Value: avg.Load1, Help: "CPU Load average 1m", Labels: map[string]string{"period": "1m"}},
		{Name: loadName, Value: avg.Load5, Help: "CPU Load average 5m", Labels: map[string]string{"period": "5m"}},
		{Name: loadName, Value: avg.Load15, Help: "CPU Load average 15m", Labels: map[string]string{"period": "15m"}},
		{Name: memName, Value: float64(vm.Total), Help: "Virtual Memory - Total", Labels: map[string]string{"type": "Total"}},
		{Name: memName, Value: float64(vm.Available), Help: "Virtual Memory - Available", Labels: map[string]string{"type": "Available"}},
		{Name: memName, Value: vm.UsedPercent, Help: "Virtual Memory - Percent", Labels: map[string]string{"type": "Percent"}},
		{Name: memName, Value: float64(vm.Used), Help: "Virtual Memory - Used", Labels: map[string]string{"type": "Used"}},
		{Name: memName, Value: float64(vm.Free), Help: "Virtual Memory - Free", Labels: map[string]string{"type": "Free"}},
		{
			Name:  prefix + "_system_info_cpu_usage",
			Value: cpuPct[0],
			Help:  "Representing the current system-wide CPU utilization as a percentage",
		},
	}, nil
}
