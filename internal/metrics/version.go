package metrics

import (
	"fmt"

	"github.com/immich-exporter/internal/immich"
)

// VersionRecords 版本号转换器
// 数值恒为1，真正的版本串在 version 标签里
func VersionRecords(v *immich.VersionResponse, prefix string) ([]Record, error) {
	if v == nil {
		return nil, shapeErr("version")
	}
	if v.Major == nil {
		return nil, shapeErr("major")
	}
	if v.Minor == nil {
		return nil, shapeErr("minor")
	}
	if v.Patch == nil {
		return nil, shapeErr("patch")
	}

	version := fmt.Sprintf("%d.%d.%d", *v.Major, *v.Minor, *v.Patch)
	return []Record{
		{
			Name:   prefix + "_server_info_version_number",
			Value:  1,
			Help:   "server version number",
			Labels: map[string]string{"version": version},
		},
	}, nil
}
