package metrics

import "fmt"

// ShapeError 上游响应结构错误：字段缺失或类型不符
// Field 记录出错字段的JSON路径（如 usageByUser[2].photos）
type ShapeError struct {
	Field string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected upstream data shape: missing or invalid field %q", e.Field)
}

func shapeErr(field string) error {
	return &ShapeError{Field: field}
}
