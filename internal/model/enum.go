package model

import (
	"fmt"
	"strings"
)

// EnumError 字符串不在封闭取值集合内
type EnumError struct {
	Kind    string
	Value   string
	Allowed []string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("invalid %s %q (allowed: %s)", e.Kind, e.Value, strings.Join(e.Allowed, ", "))
}

// Enum 封闭取值集合，负责 string -> T 的校验转换
type Enum[T ~string] struct {
	kind   string
	values []T
}

func newEnum[T ~string](kind string, values ...T) Enum[T] {
	return Enum[T]{kind: kind, values: values}
}

// Kind 集合名称，用于错误信息
func (e Enum[T]) Kind() string {
	return e.kind
}

// Contains 是否为合法取值（大小写敏感，忽略首尾空白）
func (e Enum[T]) Contains(s string) bool {
	s = strings.TrimSpace(s)
	for _, v := range e.values {
		if string(v) == s {
			return true
		}
	}
	return false
}

// Parse 校验并转换单个值
func (e Enum[T]) Parse(s string) (T, error) {
	s = strings.TrimSpace(s)
	if e.Contains(s) {
		return T(s), nil
	}
	var zero T
	return zero, &EnumError{Kind: e.kind, Value: s, Allowed: e.Strings()}
}

// ParseOr 空串返回默认值，其余同 Parse
func (e Enum[T]) ParseOr(s string, def T) (T, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return e.Parse(s)
}

// ParseList 逐个校验，遇到第一个非法值即返回错误
func (e Enum[T]) ParseList(in []string) ([]T, error) {
	out := make([]T, 0, len(in))
	for _, s := range in {
		v, err := e.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Strings 全部合法取值
func (e Enum[T]) Strings() []string {
	out := make([]string, len(e.values))
	for i, v := range e.values {
		out[i] = string(v)
	}
	return out
}

// Label 展示文案：MIXED_USE -> Mixed Use，空值返回空串
func (e Enum[T]) Label(v T) string {
	words := strings.Fields(strings.ReplaceAll(strings.ToLower(string(v)), "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// EnumSet 供校验层按名称查找的非泛型视图
type EnumSet interface {
	Kind() string
	Contains(s string) bool
	Strings() []string
}

// Enums 名称 -> 取值集合，名称与 validate 标签 enum=<name> 对应
var Enums = map[string]EnumSet{}

func register[T ~string](e Enum[T]) Enum[T] {
	Enums[e.kind] = e
	return e
}
