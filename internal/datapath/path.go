// Package datapath 解析并求值数据绑定路径。
//
// 支持两种语法：点分/下标路径（user.items[0].name）与以 "/" 开头的
// RFC 6901 JSON Pointer（/user/items/0/name）。
package datapath

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-openapi/jsonpointer"
)

var ErrInvalidPath = errors.New("invalid data path")

// Segment 路径中的一段：对象键或数组下标
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Key
}

// Path 已解析的绑定路径
type Path struct {
	raw      string
	segments []Segment
	pointer  *jsonpointer.Pointer
}

func (p Path) String() string {
	return p.raw
}

// Segments 点分路径的分段，JSON Pointer 返回 nil
func (p Path) Segments() []Segment {
	return append([]Segment(nil), p.segments...)
}

// Parse 解析绑定路径
func Parse(raw string) (Path, error) {
	if strings.TrimSpace(raw) == "" {
		return Path{}, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.HasPrefix(raw, "/") {
		ptr, err := jsonpointer.New(raw)
		if err != nil {
			return Path{}, fmt.Errorf("%w: %q: %v", ErrInvalidPath, raw, err)
		}
		return Path{raw: raw, pointer: &ptr}, nil
	}

	var segments []Segment
	i := 0
	expectKey := true
	for i < len(raw) {
		switch raw[i] {
		case '[':
			end := strings.IndexByte(raw[i:], ']')
			if end < 0 {
				return Path{}, fmt.Errorf("%w: %q: unterminated index", ErrInvalidPath, raw)
			}
			idx, err := strconv.Atoi(raw[i+1 : i+end])
			if err != nil || idx < 0 {
				return Path{}, fmt.Errorf("%w: %q: bad index %q", ErrInvalidPath, raw, raw[i+1:i+end])
			}
			segments = append(segments, Segment{Index: idx, IsIndex: true})
			i += end + 1
			expectKey = false
		case '.':
			if expectKey {
				return Path{}, fmt.Errorf("%w: %q: empty segment", ErrInvalidPath, raw)
			}
			i++
			expectKey = true
			if i == len(raw) {
				return Path{}, fmt.Errorf("%w: %q: trailing dot", ErrInvalidPath, raw)
			}
		default:
			if !expectKey {
				return Path{}, fmt.Errorf("%w: %q: missing dot before %q", ErrInvalidPath, raw, raw[i:])
			}
			end := strings.IndexAny(raw[i:], ".[")
			if end < 0 {
				end = len(raw) - i
			}
			key := raw[i : i+end]
			if strings.Contains(key, "]") {
				return Path{}, fmt.Errorf("%w: %q: stray ]", ErrInvalidPath, raw)
			}
			segments = append(segments, Segment{Key: key})
			i += end
			expectKey = false
		}
	}
	return Path{raw: raw, segments: segments}, nil
}

// MustParse 解析失败时 panic，用于测试和常量路径
func MustParse(raw string) Path {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Lookup 在数据中查找路径，未找到返回 false。
// 值为 null 的键视为存在。
func Lookup(data any, p Path) (any, bool) {
	if p.pointer != nil {
		v, _, err := p.pointer.Get(data)
		if err != nil {
			return nil, false
		}
		return v, true
	}
	cur := data
	for _, seg := range p.segments {
		next, ok := step(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Get 解析并查找路径
func Get(data any, raw string) (any, bool, error) {
	p, err := Parse(raw)
	if err != nil {
		return nil, false, err
	}
	v, ok := Lookup(data, p)
	return v, ok, nil
}

func step(cur any, seg Segment) (any, bool) {
	if seg.IsIndex {
		switch c := cur.(type) {
		case []any:
			if seg.Index >= len(c) {
				return nil, false
			}
			return c[seg.Index], true
		case nil:
			return nil, false
		}
		rv := reflect.ValueOf(cur)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, false
		}
		if seg.Index >= rv.Len() {
			return nil, false
		}
		return rv.Index(seg.Index).Interface(), true
	}

	switch c := cur.(type) {
	case map[string]any:
		v, ok := c[seg.Key]
		return v, ok
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(cur)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	v := rv.MapIndex(reflect.ValueOf(seg.Key).Convert(rv.Type().Key()))
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}
