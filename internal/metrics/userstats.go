package metrics

import (
	"fmt"
	"strings"

	"github.com/immich-exporter/internal/immich"
)

// UserStatsRecords 按用户统计转换器
// 每个用户产出 photos/videos/usage 三条带 firstName 标签的记录，
// 之后是四条周期级汇总（用户数与三个累计和）。
// firstName 冲突不去重，由Prometheus注册端处理重复序列。
// 汇总值上游已是"自建站以来的累计"，因此按Gauge暴露而非Counter。
func UserStatsRecords(s *immich.StatisticsResponse, prefix string) ([]Record, error) {
	if s == nil || s.UsageByUser == nil {
		return nil, shapeErr("usageByUser")
	}

	var (
		photosTotal float64
		videosTotal float64
		usageTotal  float64
	)

	records := make([]Record, 0, len(s.UsageByUser)*3+4)

	for i, u := range s.UsageByUser {
		if u.Photos == nil {
			return nil, shapeErr(fmt.Sprintf("usageByUser[%d].photos", i))
		}
		if u.Videos == nil {
			return nil, shapeErr(fmt.Sprintf("usageByUser[%d].videos", i))
		}
		if u.Usage == nil {
			return nil, shapeErr(fmt.Sprintf("usageByUser[%d].usage", i))
		}

		first := firstName(u.UserName)
		photosTotal += *u.Photos
		videosTotal += *u.Videos
		usageTotal += *u.Usage

		records = append(records,
			Record{
				Name:   prefix + "_server_stats_photos_by_users",
				Value:  *u.Photos,
				Help:   "Number of photos by user " + first,
				Labels: map[string]string{"firstName": first},
			},
			Record{
				Name:   prefix + "_server_stats_videos_by_users",
				Value:  *u.Videos,
				Help:   "Number of videos by user " + first,
				Labels: map[string]string{"firstName": first},
			},
			Record{
				Name:   prefix + "_server_stats_usage_by_users",
				Value:  *u.Usage,
				Help:   "Disk usage by user " + first,
				Labels: map[string]string{"firstName": first},
			},
		)
	}

	records = append(records,
		Record{
			Name:  prefix + "_server_stats_user_count",
			Value: float64(len(s.UsageByUser)),
			Help:  "number of users on the immich server",
		},
		Record{
			Name:  prefix + "_server_stats_photos_growth",
			Value: photosTotal,
			Help:  "photos counter that is added or removed",
		},
		Record{
			Name:  prefix + "_server_stats_videos_growth",
			Value: videosTotal,
			Help:  "videos counter that is added or removed",
		},
		Record{
			Name:  prefix + "_server_stats_usage_growth",
			Value: usageTotal,
			Help:  "usage counter that is added or removed",
		},
	)

	return records, nil
}

// firstName 取userName的第一个空白分隔词；空名字返回空串
func firstName(userName string) string {
	fields := strings.Fields(userName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
