package component

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	sizePattern  = regexp.MustCompile(`^(auto|\d+(\.\d+)?(px|%|rem|em|vw|vh)?)$`)
)

// Properties 经过 schema 校正后的属性集合，每个声明的属性都有值
type Properties struct {
	componentType string
	values        map[string]any
}

// Type 属性集合所属的组件类型
func (p Properties) Type() string {
	return p.componentType
}

func (p Properties) String(name string) string {
	s, _ := p.values[name].(string)
	return s
}

func (p Properties) Int(name string) int {
	switch v := p.values[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func (p Properties) Float(name string) float64 {
	switch v := p.values[name].(type) {
	case int:
		return float64(v)
	case float64:
		return v
	}
	return 0
}

func (p Properties) Bool(name string) bool {
	b, _ := p.values[name].(bool)
	return b
}

// Values 返回属性值副本
func (p Properties) Values() map[string]any {
	out := make(map[string]any, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// Normalize 按 schema 补齐默认值并执行约束策略。
// 未在 schema 中声明的键被忽略，结构校验由 document 包负责。
func Normalize(schema Schema, raw map[string]any) (Properties, error) {
	props := Properties{
		componentType: schema.Type,
		values:        make(map[string]any, len(schema.Properties)),
	}
	for _, spec := range schema.Properties {
		v, ok := raw[spec.Name]
		if !ok || v == nil {
			props.values[spec.Name] = spec.Default
			continue
		}
		value, err := normalizeValue(schema.Type, spec, v)
		if err != nil {
			return Properties{}, err
		}
		props.values[spec.Name] = value
	}
	return props, nil
}

// CheckLiteral 对字面量做 reject 策略检查，供模板保存时静态校验使用
func CheckLiteral(schema Schema, name string, v any) error {
	spec, ok := schema.Property(name)
	if !ok || v == nil || spec.Policy != PolicyReject {
		return nil
	}
	_, err := normalizeValue(schema.Type, spec, v)
	return err
}

func normalizeValue(componentType string, spec PropertySpec, v any) (any, error) {
	outOfDomain := func(reason string) (any, error) {
		if spec.Policy == PolicyReject {
			return nil, &ConstraintViolationError{
				Type:     componentType,
				Property: spec.Name,
				Value:    v,
				Reason:   reason,
			}
		}
		return spec.Default, nil
	}

	switch spec.Type {
	case TypeString:
		s, ok := toString(v)
		if !ok {
			return outOfDomain("is not a string")
		}
		if spec.NonEmpty && strings.TrimSpace(s) == "" {
			return spec.Default, nil
		}
		return s, nil

	case TypeInteger, TypeNumber:
		f, ok := toFloat(v)
		if !ok {
			return outOfDomain("is not a number")
		}
		if spec.Range != nil && (f < spec.Range.Min || f > spec.Range.Max) {
			switch spec.Policy {
			case PolicyClamp:
				f = math.Min(math.Max(f, spec.Range.Min), spec.Range.Max)
			default:
				return outOfDomain(fmt.Sprintf("is outside [%g, %g]", spec.Range.Min, spec.Range.Max))
			}
		}
		if spec.Type == TypeInteger {
			return int(math.Round(f)), nil
		}
		return f, nil

	case TypeBool:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			if parsed, err := strconv.ParseBool(b); err == nil {
				return parsed, nil
			}
		}
		return outOfDomain("is not a boolean")

	case TypeEnum:
		s, ok := v.(string)
		if !ok || !slices.Contains(spec.Enum, s) {
			return outOfDomain(fmt.Sprintf("is not one of %s", strings.Join(spec.Enum, "|")))
		}
		return s, nil

	case TypeColor:
		s, ok := v.(string)
		if !ok {
			return outOfDomain("is not a color")
		}
		s = strings.TrimSpace(s)
		if s == "" && spec.Default == "" {
			return "", nil
		}
		if s == "transparent" || colorPattern.MatchString(s) {
			return strings.ToLower(s), nil
		}
		return outOfDomain("is not a color")

	case TypeSize:
		if f, ok := toFloat(v); ok {
			if _, isString := v.(string); !isString {
				if f < 0 {
					return outOfDomain("is negative")
				}
				return formatPx(f), nil
			}
		}
		s, ok := v.(string)
		if !ok {
			return outOfDomain("is not a size")
		}
		s = strings.TrimSpace(s)
		if !sizePattern.MatchString(s) {
			return outOfDomain("is not a size")
		}
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return s + "px", nil
		}
		return s, nil
	}
	return spec.Default, nil
}

func toString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	case json.Number:
		return s.String(), true
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func formatPx(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64) + "px"
}

func px(n int) string {
	return strconv.Itoa(n) + "px"
}
