package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Numeric 数值字段，前端可能传数字也可能传数字字符串
// 缺省或空串按 0 处理；非数字在校验层报错
type Numeric string

func (n *Numeric) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Numeric(strings.TrimSpace(s))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("numeric field: %w", err)
	}
	*n = Numeric(num.String())
	return nil
}

// Float 解析为浮点数，空值为 0
func (n Numeric) Float() (float64, error) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return f, nil
}

// 整数字段落库为 INTEGER，取值限制在 int32 内
const (
	MinInt = math.MinInt32
	MaxInt = math.MaxInt32
)

// Int 解析为整数，空值为 0，小数部分必须为 0 且不超出 [MinInt, MaxInt]
func (n Numeric) Int() (int, error) {
	f, err := n.Float()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a whole number", string(n))
	}
	if f < MinInt || f > MaxInt {
		return 0, fmt.Errorf("%q is out of range [%d, %d]", string(n), MinInt, MaxInt)
	}
	return int(f), nil
}

// Lines 既接受字符串数组，也接受按行分隔的字符串；空行丢弃
type Lines []string

func (l *Lines) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	var raw []string
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.Split(s, "\n")
	} else if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("expected string or string array: %w", err)
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}
