package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/immich-exporter/internal/immich"
)

func iptr(v int) *int {
	return &v
}

func fptr(v float64) *float64 {
	return &v
}

func TestVersionRecords(t *testing.T) {
	v := &immich.VersionResponse{Major: iptr(1), Minor: iptr(2), Patch: iptr(3)}

	recs, err := VersionRecords(v, "immich")
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, "immich_server_info_version_number", recs[0].Name)
	assert.Equal(t, Gauge, recs[0].Kind)
	assert.Equal(t, float64(1), recs[0].Value)
	assert.Equal(t, map[string]string{"version": "1.2.3"}, recs[0].Labels)
}

func TestVersionRecordsMissingField(t *testing.T) {
	cases := []struct {
		name  string
		input *immich.VersionResponse
		field string
	}{
		{"nil document", nil, "version"},
		{"missing major", &immich.VersionResponse{Minor: iptr(2), Patch: iptr(3)}, "major"},
		{"missing minor", &immich.VersionResponse{Major: iptr(1), Patch: iptr(3)}, "minor"},
		{"missing patch", &immich.VersionResponse{Major: iptr(1), Minor: iptr(2)}, "patch"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recs, err := VersionRecords(tc.input, "immich")
			assert.Nil(t, recs)

			var shape *ShapeError
			require.ErrorAs(t, err, &shape)
			assert.Equal(t, tc.field, shape.Field)
		})
	}
}
