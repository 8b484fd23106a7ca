package service

import (
	"errors"
	"fmt"
	"strings"

	"estate_listing_v1/internal/api/dto"
	"estate_listing_v1/internal/model"
	"estate_listing_v1/internal/schema"
)

// requireFields 收集空白的必填字段名
func requireFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}

// numbers 逐个解析数值字段，按字段收集错误
// 结果与 schema 校验失败同类，调用方统一按 400 处理
type numbers struct {
	fields map[string]string
}

func (n *numbers) int(field string, v dto.Numeric) int {
	i, err := v.Int()
	if err != nil {
		n.fail(field, err)
	}
	return i
}

func (n *numbers) float(field string, v dto.Numeric) float64 {
	f, err := v.Float()
	if err != nil {
		n.fail(field, err)
	}
	return f
}

func (n *numbers) fail(field string, err error) {
	if n.fields == nil {
		n.fields = make(map[string]string)
	}
	if _, exists := n.fields[field]; !exists {
		n.fields[field] = err.Error()
	}
}

func (n *numbers) err() error {
	if len(n.fields) == 0 {
		return nil
	}
	return &schema.ValidationError{Fields: n.fields}
}

// enums 逐个解析枚举字段，收集全部错误
type enums struct {
	errs []error
}

func parseOne[T ~string](e *enums, set model.Enum[T], s string, def T) T {
	v, err := set.ParseOr(s, def)
	if err != nil {
		e.errs = append(e.errs, err)
	}
	return v
}

func parseMany[T ~string](e *enums, set model.Enum[T], in []string) []T {
	v, err := set.ParseList(in)
	if err != nil {
		e.errs = append(e.errs, err)
		return nil
	}
	return v
}

func (e *enums) err() error {
	return errors.Join(e.errs...)
}

// nonNil 避免 JSON 数组落库为 null
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
