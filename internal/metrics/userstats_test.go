package metrics

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/immich-exporter/internal/immich"
)

func statsFixture() *immich.StatisticsResponse {
	return &immich.StatisticsResponse{
		UsageByUser: []immich.UserUsage{
			{UserName: "Ann Lee", Photos: fptr(3), Videos: fptr(1), Usage: fptr(100)},
			{UserName: "Bo Ng", Photos: fptr(2), Videos: fptr(0), Usage: fptr(50)},
		},
	}
}

func TestUserStatsRecords(t *testing.T) {
	recs, err := UserStatsRecords(statsFixture(), "immich")
	require.NoError(t, err)
	// 每用户3条 + 4条汇总
	require.Len(t, recs, 10)

	byName := map[string][]Record{}
	for _, r := range recs {
		byName[r.Name] = append(byName[r.Name], r)
	}

	photos := byName["immich_server_stats_photos_by_users"]
	require.Len(t, photos, 2)
	assert.Equal(t, "Ann", photos[0].Labels["firstName"])
	assert.Equal(t, float64(3), photos[0].Value)
	assert.Equal(t, "Bo", photos[1].Labels["firstName"])
	assert.Equal(t, float64(2), photos[1].Value)

	aggregates := map[string]float64{
		"immich_server_stats_user_count":    2,
		"immich_server_stats_photos_growth": 5,
		"immich_server_stats_videos_growth": 1,
		"immich_server_stats_usage_growth":  150,
	}
	for name, want := range aggregates {
		require.Len(t, byName[name], 1, name)
		assert.Equal(t, want, byName[name][0].Value, name)
		assert.Empty(t, byName[name][0].Labels, name)
	}
}

// 汇总必须等于输入数组的精确算术和（与顺序无关）
func TestUserStatsAggregatesMatchSums(t *testing.T) {
	s := &immich.StatisticsResponse{
		UsageByUser: []immich.UserUsage{
			{UserName: "c", Photos: fptr(7), Videos: fptr(2), Usage: fptr(11)},
			{UserName: "a", Photos: fptr(1), Videos: fptr(9), Usage: fptr(3)},
			{UserName: "b", Photos: fptr(4), Videos: fptr(0), Usage: fptr(6)},
		},
	}

	recs, err := UserStatsRecords(s, "immich")
	require.NoError(t, err)

	var photos, videos, usage, count float64
	for _, r := range recs {
		switch r.Name {
		case "immich_server_stats_photos_growth":
			photos = r.Value
		case "immich_server_stats_videos_growth":
			videos = r.Value
		case "immich_server_stats_usage_growth":
			usage = r.Value
		case "immich_server_stats_user_count":
			count = r.Value
		}
	}

	assert.Equal(t, float64(12), photos)
	assert.Equal(t, float64(11), videos)
	assert.Equal(t, float64(20), usage)
	assert.Equal(t, float64(len(s.UsageByUser)), count)
}

// 同名用户不去重：两组相同标签的记录都要产出
func TestUserStatsFirstNameCollision(t *testing.T) {
	s := &immich.StatisticsResponse{
		UsageByUser: []immich.UserUsage{
			{UserName: "Ann Lee", Photos: fptr(3), Videos: fptr(0), Usage: fptr(10)},
			{UserName: "Ann Wu", Photos: fptr(5), Videos: fptr(0), Usage: fptr(20)},
		},
	}

	recs, err := UserStatsRecords(s, "immich")
	require.NoError(t, err)

	var annPhotos []float64
	for _, r := range recs {
		if r.Name == "immich_server_stats_photos_by_users" && r.Labels["firstName"] == "Ann" {
			annPhotos = append(annPhotos, r.Value)
		}
	}
	assert.Equal(t, []float64{3, 5}, annPhotos)
}

func TestUserStatsEmptyInput(t *testing.T) {
	recs, err := UserStatsRecords(&immich.StatisticsResponse{UsageByUser: []immich.UserUsage{}}, "immich")
	require.NoError(t, err)
	require.Len(t, recs, 4)

	for _, r := range recs {
		assert.Zero(t, r.Value, r.Name)
	}
}

func TestUserStatsMissingField(t *testing.T) {
	s := &immich.StatisticsResponse{
		UsageByUser: []immich.UserUsage{
			{UserName: "Ann Lee", Photos: fptr(3), Videos: fptr(1), Usage: fptr(100)},
			{UserName: "Bo Ng", Photos: fptr(2), Usage: fptr(50)}, // videos 缺失
		},
	}

	recs, err := UserStatsRecords(s, "immich")
	assert.Nil(t, recs)

	var shape *ShapeError
	require.ErrorAs(t, err, &shape)
	assert.Equal(t, "usageByUser[1].videos", shape.Field)
}

func TestUserStatsMissingArray(t *testing.T) {
	_, err := UserStatsRecords(&immich.StatisticsResponse{}, "immich")

	var shape *ShapeError
	require.ErrorAs(t, err, &shape)
	assert.Equal(t, "usageByUser", shape.Field)
}

// 一个周期内同名Record必须携带相同的标签键集合（metric family约束）
func TestCycleRecordsShareLabelKeysPerName(t *testing.T) {
	var cycle []Record

	vRecs, err := VersionRecords(&immich.VersionResponse{Major: iptr(1), Minor: iptr(2), Patch: iptr(3)}, "immich")
	require.NoError(t, err)
	cycle = append(cycle, vRecs...)

	sRecs, err := StorageRecords(&immich.StorageResponse{
		DiskAvailableRaw: fptr(1), DiskSizeRaw: fptr(2), DiskUseRaw: fptr(3), DiskUsagePercentage: fptr(4),
	}, "immich")
	require.NoError(t, err)
	cycle = append(cycle, sRecs...)

	uRecs, err := UserStatsRecords(statsFixture(), "immich")
	require.NoError(t, err)
	cycle = append(cycle, uRecs...)

	keysByName := map[string][]string{}
	for _, r := range cycle {
		keys := make([]string, 0, len(r.Labels))
		for k := range r.Labels {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		if seen, ok := keysByName[r.Name]; ok {
			assert.Equal(t, seen, keys, "label keys diverge for %s", r.Name)
		} else {
			keysByName[r.Name] = keys
		}
	}
}
