package document

import (
	"bytes"
	"encoding/json"
)

// BindKey 绑定引用在 JSON 中的标记键：{"$bind": "user.name"}
const BindKey = "$bind"

// Value 属性值：字面量或数据绑定引用
type Value struct {
	literal any
	path    string
	bound   bool
}

// Literal 构造字面量
func Literal(v any) Value {
	return Value{literal: v}
}

// Bind 构造数据绑定引用
func Bind(path string) Value {
	return Value{path: path, bound: true}
}

func (v Value) IsBinding() bool {
	return v.bound
}

// Path 绑定路径，字面量返回空串
func (v Value) Path() string {
	return v.path
}

// Literal 字面量值，绑定引用返回 nil
func (v Value) Literal() any {
	return v.literal
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.bound {
		return json.Marshal(map[string]string{BindKey: v.path})
	}
	return json.Marshal(v.literal)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if obj, ok := raw.(map[string]any); ok && len(obj) == 1 {
		if path, ok := obj[BindKey].(string); ok {
			*v = Bind(path)
			return nil
		}
	}
	*v = Literal(raw)
	return nil
}
