package schema

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"estate_listing_v1/internal/api/dto"
	"estate_listing_v1/internal/model"

	"github.com/go-playground/validator/v10"
)

// 日期字段接受的格式
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ValidationError 字段级校验失败，key 为 json 字段路径
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator 返回全局校验器（首次调用时注册自定义规则）
func Validator() *validator.Validate {
	once.Do(func() {
		validate = newValidator()
	})
	return validate
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// 错误路径使用 json 名称
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "number", validateNumber)
	mustRegister(v, "integer", validateInteger)
	mustRegister(v, "enum", validateEnum)
	mustRegister(v, "rating", validateRating)
	mustRegister(v, "nonnegative", validateNonNegative)
	mustRegister(v, "date", validateDate)

	v.RegisterStructValidation(validatePriceRange, dto.PriceRangeFields{})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

// ==================== 自定义规则 ====================

// enum=<Kind> 取值必须属于 model.Enums[Kind]
func validateEnum(fl validator.FieldLevel) bool {
	set, ok := model.Enums[fl.Param()]
	if !ok {
		return false
	}
	return set.Contains(fl.Field().String())
}

// number 可解析为有限浮点数（允许 1e3 这类写法）
func validateNumber(fl validator.FieldLevel) bool {
	_, ok := fieldFloat(fl.Field())
	return ok
}

// integer 整数且在 int32 范围内
func validateInteger(fl validator.FieldLevel) bool {
	f, ok := fieldFloat(fl.Field())
	if !ok || f != math.Trunc(f) {
		return false
	}
	return f >= dto.MinInt && f <= dto.MaxInt
}

// rating 0-5，字符串或数字
func validateRating(fl validator.FieldLevel) bool {
	f, ok := fieldFloat(fl.Field())
	return ok && f >= 0 && f <= 5
}

func validateNonNegative(fl validator.FieldLevel) bool {
	f, ok := fieldFloat(fl.Field())
	return ok && f >= 0
}

func validateDate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

// 最高价不得低于最低价（任一为空时跳过）
func validatePriceRange(sl validator.StructLevel) {
	pr := sl.Current().Interface().(dto.PriceRangeFields)
	if pr.MinPrice == "" || pr.MaxPrice == "" {
		return
	}
	lo, errLo := pr.MinPrice.Float()
	hi, errHi := pr.MaxPrice.Float()
	if errLo != nil || errHi != nil {
		return
	}
	if hi < lo {
		sl.ReportError(pr.MaxPrice, "maxPrice", "MaxPrice", "gtefield", "minPrice")
	}
}

func fieldFloat(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.String:
		f, err := dto.Numeric(v.String()).Float()
		return f, err == nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		return f, !math.IsNaN(f) && !math.IsInf(f, 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	}
	return 0, false
}

// ParseDate 解析日期字段，空串返回 nil
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", s)
}

// ==================== 校验入口 ====================

// Validate 校验 payload，失败时返回 *ValidationError
func Validate(payload any) error {
	err := Validator().Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		key := fieldPath(fe.Namespace())
		if _, exists := out.Fields[key]; !exists {
			out.Fields[key] = message(fe)
		}
	}
	return out
}

// 去掉顶层结构体名：AgencyPayload.socialMedia.facebook -> socialMedia.facebook
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array {
			if fe.Param() == "1" {
				return "select at least one option"
			}
			return "select at least " + fe.Param() + " options"
		}
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "number":
		return "must be a number"
	case "integer":
		return fmt.Sprintf("must be a whole number between %d and %d", dto.MinInt, dto.MaxInt)
	case "nonnegative":
		return "must not be negative"
	case "rating":
		return "must be between 0 and 5"
	case "date":
		return "must be a date (YYYY-MM-DD)"
	case "gtefield":
		return "must not be less than " + fe.Param()
	case "enum":
		if set, ok := model.Enums[fe.Param()]; ok {
			return "must be one of " + strings.Join(set.Strings(), ", ")
		}
		return "is not a recognised value"
	}
	return "failed " + fe.Tag() + " check"
}
