package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/immich-exporter/internal/immich"
)

func TestStorageRecords(t *testing.T) {
	s := &immich.StorageResponse{
		DiskAvailableRaw:    fptr(100),
		DiskSizeRaw:         fptr(500),
		DiskUseRaw:          fptr(400),
		DiskUsagePercentage: fptr(80),
	}

	recs, err := StorageRecords(s, "immich")
	require.NoError(t, err)
	require.Len(t, recs, 4)

	wantNames := []string{
		"immich_server_info_diskAvailable",
		"immich_server_info_totalDiskSize",
		"immich_server_info_diskUse",
		"immich_server_info_diskUsagePercentage",
	}
	wantValues := []float64{100, 500, 400, 80}

	for i, r := range recs {
		assert.Equal(t, wantNames[i], r.Name)
		assert.Equal(t, wantValues[i], r.Value)
		assert.Equal(t, Gauge, r.Kind)
		assert.Empty(t, r.Labels)
	}
}

func TestStorageRecordsMissingField(t *testing.T) {
	s := &immich.StorageResponse{
		DiskAvailableRaw: fptr(100),
		DiskSizeRaw:      fptr(500),
		// diskUseRaw 缺失
		DiskUsagePercentage: fptr(80),
	}

	recs, err := StorageRecords(s, "immich")
	assert.Nil(t, recs)

	var shape *ShapeError
	require.ErrorAs(t, err, &shape)
	assert.Equal(t, "diskUseRaw", shape.Field)
}
