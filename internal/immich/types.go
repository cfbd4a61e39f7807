package immich

// 上游响应DTO。必需数值字段用指针：JSON里缺字段时为nil，
// 转换层据此区分"缺字段"和"值为0"。

// VersionResponse GET /api/server/version 响应
type VersionResponse struct {
	Major *int `json:"major"`
	Minor *int `json:"minor"`
	Patch *int `json:"patch"`
}

// StorageResponse GET /api/server/storage 响应
type StorageResponse struct {
	DiskAvailableRaw    *float64 `json:"diskAvailableRaw"`
	DiskSizeRaw         *float64 `json:"diskSizeRaw"`
	DiskUseRaw          *float64 `json:"diskUseRaw"`
	DiskUsagePercentage *float64 `json:"diskUsagePercentage"`
}

// UserUsage GET /api/server/statistics 响应中 usageByUser 的单项
type UserUsage struct {
	UserName string   `json:"userName"`
	Photos   *float64 `json:"photos"`
	Videos   *float64 `json:"videos"`
	Usage    *float64 `json:"usage"`
}

// StatisticsResponse GET /api/server/statistics 响应
type StatisticsResponse struct {
	UsageByUser []UserUsage `json:"usageByUser"`
}
