package metrics

import (
	"github.com/immich-exporter/internal/immich"
)

// StorageRecords 磁盘使用转换器：四个无标签Gauge
func StorageRecords(s *immich.StorageResponse, prefix string) ([]Record, error) {
	if s == nil {
		return nil, shapeErr("storage")
	}
	if s.DiskAvailableRaw == nil {
		return nil, shapeErr("diskAvailableRaw")
	}
	if s.DiskSizeRaw == nil {
		return nil, shapeErr("diskSizeRaw")
	}
	if s.DiskUseRaw == nil {
		return nil, shapeErr("diskUseRaw")
	}
	if s.DiskUsagePercentage == nil {
		return nil, shapeErr("diskUsagePercentage")
	}

	return []Record{
		{
			Name:  prefix + "_server_info_diskAvailable",
			Value: *s.DiskAvailableRaw,
			Help:  "Available space on disk",
		},
		{
			Name:  prefix + "_server_info_totalDiskSize",
			Value: *s.DiskSizeRaw,
			Help:  "total disk size",
		},
		{
			Name:  prefix + "_server_info_diskUse",
			Value: *s.DiskUseRaw,
			Help:  "disk space in use",
		},
		{
			Name:  prefix + "_server_info_diskUsagePercentage",
			Value: *s.DiskUsagePercentage,
			Help:  "disk usage in percent",
		},
	}, nil
}
