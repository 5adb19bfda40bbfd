package component

// 组件分类
const (
	CategoryLayout     = "layout"
	CategoryText       = "text"
	CategoryMedia      = "media"
	CategoryShape      = "shape"
	CategoryDecoration = "decoration"
	CategoryCode       = "code"
)

// PropertyType 属性的语义类型
type PropertyType string

const (
	TypeString  PropertyType = "string"
	TypeInteger PropertyType = "integer"
	TypeNumber  PropertyType = "number"
	TypeBool    PropertyType = "bool"
	TypeEnum    PropertyType = "enum"
	TypeColor   PropertyType = "color"
	TypeSize    PropertyType = "size"
)

// Policy 属性值超出声明范围时的处理策略
type Policy string

const (
	PolicyClamp      Policy = "clamp"      // 数值截断到 [Min, Max]
	PolicySubstitute Policy = "substitute" // 替换为默认值
	PolicyReject     Policy = "reject"     // 返回 PropertyConstraintViolation
)

// Range 数值范围（闭区间）
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PropertySpec 单个可配置属性的声明
type PropertySpec struct {
	Name    string       `json:"name"`
	Type    PropertyType `json:"type"`
	Default any          `json:"default"`
	Enum    []string     `json:"enum,omitempty"`
	Range   *Range       `json:"range,omitempty"`
	Policy  Policy       `json:"policy"`
	// NonEmpty 为 true 时空字符串视为缺省
	NonEmpty bool `json:"non_empty,omitempty"`
}

// Schema 组件类型定义
type Schema struct {
	Type       string         `json:"type"`
	Label      string         `json:"label"`
	Category   string         `json:"category"`
	Properties []PropertySpec `json:"properties"`
}

// IsContainer 只有布局类组件允许包含子节点
func (s Schema) IsContainer() bool {
	return s.Category == CategoryLayout
}

// Property 按名称查找属性声明
func (s Schema) Property(name string) (PropertySpec, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return PropertySpec{}, false
}

func (s Schema) clone() Schema {
	out := s
	out.Properties = make([]PropertySpec, len(s.Properties))
	for i, p := range s.Properties {
		if p.Enum != nil {
			p.Enum = append([]string(nil), p.Enum...)
		}
		if p.Range != nil {
			r := *p.Range
			p.Range = &r
		}
		out.Properties[i] = p
	}
	return out
}

// Attributes 声明式的布局/样式键值
type Attributes map[string]string

// VisualOutput 单个节点的渲染结果，只包含布局与样式描述
type VisualOutput struct {
	Element string     `json:"element"`
	Text    string     `json:"text,omitempty"`
	Layout  Attributes `json:"layout"`
	Style   Attributes `json:"style"`
	Attrs   Attributes `json:"attrs,omitempty"`
}

// Renderer 组件渲染器，必须是纯函数
type Renderer interface {
	Render(props Properties) (VisualOutput, error)
}

// RendererFunc 函数适配器
type RendererFunc func(props Properties) (VisualOutput, error)

func (f RendererFunc) Render(props Properties) (VisualOutput, error) {
	return f(props)
}

// Definition 组件定义：schema 与渲染器绑定
type Definition struct {
	Schema   Schema
	Renderer Renderer
}
