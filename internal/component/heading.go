package component

import (
	"html"
	"strconv"

	"github.com/microcosm-cc/bluemonday"
)

const TypeHeading = "heading"

// headingScale 标题级别 1-6 对应的字号（px）
var headingScale = [6]int{32, 28, 24, 20, 18, 16}

// textPolicy 去除文本中的全部标记
var textPolicy = bluemonday.StrictPolicy()

// plainText 去除标记后还原实体，Text 字段是纯文本而不是 HTML
func plainText(s string) string {
	return html.UnescapeString(textPolicy.Sanitize(s))
}

var headingSchema = Schema{
	Type:     TypeHeading,
	Label:    "Heading",
	Category: CategoryText,
	Properties: []PropertySpec{
		{Name: "content", Type: TypeString, Default: "Heading", Policy: PolicySubstitute},
		{Name: "level", Type: TypeInteger, Default: 1, Range: between(1, 6), Policy: PolicyClamp},
		{Name: "color", Type: TypeColor, Default: "#111111", Policy: PolicySubstitute},
		{Name: "align", Type: TypeEnum, Default: "left", Enum: []string{"left", "center", "right"}, Policy: PolicySubstitute},
		{Name: "weight", Type: TypeEnum, Default: "bold", Enum: []string{"normal", "bold"}, Policy: PolicySubstitute},
	},
}

// HeadingFontSize 返回标题级别对应的字号，越界级别按边界处理
func HeadingFontSize(level int) int {
	switch {
	case level < 1:
		level = 1
	case level > len(headingScale):
		level = len(headingScale)
	}
	return headingScale[level-1]
}

func renderHeading(p Properties) (VisualOutput, error) {
	level := p.Int("level")
	weight := "700"
	if p.String("weight") == "normal" {
		weight = "400"
	}
	return VisualOutput{
		Element: "h" + strconv.Itoa(level),
		Text:    plainText(p.String("content")),
		Layout: Attributes{
			"display": "block",
			"width":   "100%",
		},
		Style: Attributes{
			"font-size":   px(HeadingFontSize(level)),
			"font-weight": weight,
			"line-height": "1.2",
			"color":       p.String("color"),
			"text-align":  p.String("align"),
		},
	}, nil
}
